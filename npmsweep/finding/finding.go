package finding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

var baseFields = map[string]struct{}{
	"file":    {},
	"package": {},
	"version": {},
	"kind":    {},
}

// Finding is one reported match between a catalog entry and an artifact. Findings are never mutated after
// creation.
type Finding struct {
	// File is the path of the artifact that triggered the match.
	File    string
	Package string
	Version string
	Kind    Kind
	// Extra holds auxiliary fields (match method, purl, ...) which are flattened into the report record.
	Extra map[string]string
}

func New(file, pkg, version string, kind Kind, extra map[string]string) Finding {
	if len(extra) == 0 {
		extra = nil
	}
	return Finding{
		File:    file,
		Package: pkg,
		Version: version,
		Kind:    kind,
		Extra:   extra,
	}
}

func (f Finding) Fingerprint() Fingerprint {
	return Fingerprint{
		file:    f.File,
		pkg:     f.Package,
		version: f.Version,
		kind:    f.Kind,
	}
}

func (f Finding) String() string {
	return fmt.Sprintf("Finding(file=%q package=%q version=%q kind=%q)", f.File, f.Package, f.Version, f.Kind)
}

// MarshalJSON writes the four identity fields followed by the extra fields (sorted by name) as a single flat
// object. Extra fields may not shadow the identity fields.
func (f Finding) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	write := func(key, value string) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := marshalString(key)
		if err != nil {
			return err
		}
		v, err := marshalString(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	for _, field := range [][2]string{
		{"file", f.File},
		{"package", f.Package},
		{"version", f.Version},
		{"kind", string(f.Kind)},
	} {
		if err := write(field[0], field[1]); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(f.Extra))
	for k := range f.Extra {
		if _, ok := baseFields[k]; ok {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := write(k, f.Extra[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *Finding) UnmarshalJSON(data []byte) error {
	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("unable to decode finding: %w", err)
	}

	extra := make(map[string]string)
	for k, v := range fields {
		if _, ok := baseFields[k]; !ok {
			extra[k] = v
		}
	}

	*f = New(fields["file"], fields["package"], fields["version"], Kind(fields["kind"]), extra)
	return nil
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
