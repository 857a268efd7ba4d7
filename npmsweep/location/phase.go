package location

import (
	"fmt"

	"github.com/anchore/npmsweep/npmsweep/artifact"
)

const (
	UnknownMode Mode = iota
	// ProjectMode classifies every directory fully: scripts, lockfiles and package trees.
	ProjectMode
	// TreeMode treats each root as a package tree (a global install root).
	TreeMode
	// VersionManagerMode looks for scripts and package trees only; lockfiles are not considered.
	VersionManagerMode
	// CacheMode looks for package tarballs.
	CacheMode
)

var modeStr = []string{
	"UnknownMode",
	"project",
	"tree",
	"version-manager",
	"cache",
}

type Mode int

func (m Mode) String() string {
	if int(m) >= len(modeStr) || m < 0 {
		return modeStr[0]
	}

	return modeStr[m]
}

// Phase is one step of a scan: a set of roots that are all examined in the same way.
type Phase struct {
	Name   string
	Origin artifact.Origin
	Roots  []string
	Mode   Mode
}

func (p Phase) String() string {
	return fmt.Sprintf("Phase(name=%q mode=%s roots=%q)", p.Name, p.Mode, p.Roots)
}
