package finding

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinding_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		finding  Finding
		expected string
	}{
		{
			name:     "no extras",
			finding:  New("/p/yarn.lock", "left-pad", "1.0.0", YarnLockKind, nil),
			expected: `{"file":"/p/yarn.lock","package":"left-pad","version":"1.0.0","kind":"yarn.lock"}`,
		},
		{
			name: "extras are flattened and sorted",
			finding: New("/p/package-lock.json", "left-pad", "1.0.0", NpmLockKind, map[string]string{
				PurlField:   "pkg:npm/left-pad@1.0.0",
				MethodField: QueryMethod,
			}),
			expected: `{"file":"/p/package-lock.json","package":"left-pad","version":"1.0.0","kind":"package-lock.json","method":"jq","purl":"pkg:npm/left-pad@1.0.0"}`,
		},
		{
			name: "extras cannot shadow identity fields",
			finding: New("/p/yarn.lock", "left-pad", "1.0.0", YarnLockKind, map[string]string{
				"kind": "something-else",
			}),
			expected: `{"file":"/p/yarn.lock","package":"left-pad","version":"1.0.0","kind":"yarn.lock"}`,
		},
		{
			name:     "no html escaping",
			finding:  New("/p/<dir>&/yarn.lock", "left-pad", "1.0.0", YarnLockKind, nil),
			expected: `{"file":"/p/<dir>&/yarn.lock","package":"left-pad","version":"1.0.0","kind":"yarn.lock"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := json.NewEncoder(&buf)
			enc.SetEscapeHTML(false)
			require.NoError(t, enc.Encode(test.finding))

			actual := strings.TrimSuffix(buf.String(), "\n")
			assert.JSONEq(t, test.expected, actual)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestFinding_UnmarshalJSON(t *testing.T) {
	var f Finding
	err := json.Unmarshal([]byte(`{"file":"/a","package":"b","version":"c","kind":"yarn.lock","method":"none"}`), &f)
	require.NoError(t, err)

	assert.Equal(t, New("/a", "b", "c", YarnLockKind, map[string]string{MethodField: NoMethod}), f)

	assert.Error(t, json.Unmarshal([]byte(`{"file": 3}`), &f))
}

func TestFingerprint_ID(t *testing.T) {
	a := New("/p/yarn.lock", "left-pad", "1.0.0", YarnLockKind, nil)
	b := New("/p/yarn.lock", "left-pad", "1.0.0", YarnLockKind, map[string]string{MethodField: NoMethod})
	c := New("/p/yarn.lock", "left-pad", "1.0.0", PnpmLockKind, nil)

	assert.NotEmpty(t, a.Fingerprint().ID())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "extras are not part of the identity")
	assert.Equal(t, a.Fingerprint().ID(), b.Fingerprint().ID())
	assert.NotEqual(t, a.Fingerprint().ID(), c.Fingerprint().ID())
}

func TestPackageURL(t *testing.T) {
	tests := []struct {
		name     string
		pkg      string
		version  string
		expected string
	}{
		{name: "plain", pkg: "left-pad", version: "1.0.0", expected: "pkg:npm/left-pad@1.0.0"},
		{name: "scoped", pkg: "@ctrl/tinycolor", version: "4.1.1", expected: "pkg:npm/%40ctrl/tinycolor@4.1.1"},
		{name: "unknown version", pkg: "left-pad", version: UnknownVersion, expected: "pkg:npm/left-pad"},
		{name: "cached version", pkg: "left-pad", version: CachedVersion, expected: "pkg:npm/left-pad"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, PackageURL(test.pkg, test.version))
		})
	}
}

func TestMatcherType_String(t *testing.T) {
	assert.Equal(t, "npm-lock-matcher", NpmLockMatcher.String())
	assert.Equal(t, "UnknownMatcherType", MatcherType(99).String())
	assert.Len(t, AllMatcherTypes, len(matcherTypeStr)-1)
}
