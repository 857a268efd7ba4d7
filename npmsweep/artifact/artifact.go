package artifact

import "fmt"

const (
	NpmLockfile    = "package-lock.json"
	YarnLockfile   = "yarn.lock"
	PnpmLockfile   = "pnpm-lock.yaml"
	Manifest       = "package.json"
	PackageTreeDir = "node_modules"
	TarballSuffix  = ".tgz"
)

// SuspiciousScripts are the file names dropped into projects by the bun based worm payload. Their presence alone
// is worth reporting.
var SuspiciousScripts = []string{
	"bun_environment.js",
	"setup_bun.js",
}

// Artifact is a classified filesystem object. Artifacts are read-only snapshots: they are created by the
// Classifier, handed to exactly one matcher and then discarded.
type Artifact struct {
	// Path is the lockfile, script or tarball path; for package tree entries it is the tree root (the node_modules
	// directory), with the entry itself found at Path/Package.
	Path   string
	Kind   Kind
	Origin Origin
	// Package is the catalog package this artifact was classified for (tree entries and cache tarballs only).
	Package string
}

func (a Artifact) String() string {
	if a.Package != "" {
		return fmt.Sprintf("Artifact(kind=%s origin=%s path=%q package=%q)", a.Kind, a.Origin, a.Path, a.Package)
	}
	return fmt.Sprintf("Artifact(kind=%s origin=%s path=%q)", a.Kind, a.Origin, a.Path)
}
