package finding

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"
)

// Fingerprint is the identity of a finding: the (file, package, version, kind) tuple.
type Fingerprint struct {
	file    string
	pkg     string
	version string
	kind    Kind
}

func (f Fingerprint) String() string {
	return fmt.Sprintf("Fingerprint(file=%q package=%q version=%q kind=%q)", f.file, f.pkg, f.version, f.kind)
}

func (f Fingerprint) ID() string {
	h, err := hashstructure.Hash(struct {
		File    string
		Package string
		Version string
		Kind    string
	}{
		File:    f.file,
		Package: f.pkg,
		Version: f.version,
		Kind:    string(f.kind),
	}, hashstructure.FormatV2, &hashstructure.HashOptions{
		ZeroNil: true,
	})
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%x", h)
}
