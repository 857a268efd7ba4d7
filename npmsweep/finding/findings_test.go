package finding

import (
	"errors"
	"sync"
	"testing"

	"github.com/scylladb/go-set/strset"
	"github.com/stretchr/testify/assert"

	"github.com/anchore/npmsweep/npmsweep/artifact"
)

func TestDedupe(t *testing.T) {
	yarn := New("/p/yarn.lock", "left-pad", "1.0.0", YarnLockKind, nil)
	npm := New("/p/package-lock.json", "left-pad", "1.0.0", NpmLockKind, nil)
	npmFallback := New("/p/package-lock.json", "left-pad", "1.0.0", NpmLockFallbackKind, nil)

	tests := []struct {
		name     string
		input    []Finding
		expected []Finding
	}{
		{
			name: "empty",
		},
		{
			name:     "identical tuples collapse to the first",
			input:    []Finding{yarn, npm, yarn, yarn},
			expected: []Finding{yarn, npm},
		},
		{
			name:     "different kinds for the same package are kept",
			input:    []Finding{npm, npmFallback},
			expected: []Finding{npm, npmFallback},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Dedupe(test.input))
		})
	}
}

func TestFindings_OrderAndMerge(t *testing.T) {
	a := New("/a", "left-pad", "1.0.0", YarnLockKind, nil)
	b := New("/b", "left-pad", "1.0.0", YarnLockKind, nil)
	c := New("/c", "left-pad", "1.0.0", YarnLockKind, nil)

	first := NewFindings(a, b)
	second := NewFindings(c, a)
	first.Merge(second)
	first.Merge(nil)
	first.Merge(first)

	assert.Equal(t, []Finding{a, b, c, a}, first.Items(), "no cross artifact deduplication")
	assert.Equal(t, 4, first.Len())
	assert.Equal(t, 3, first.Fingerprints().Size())

	var empty *Findings
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Items())
}

func TestFindings_ConcurrentAdd(t *testing.T) {
	f := NewFindings()
	expected := strset.New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		item := New("/p", "pkg", string(rune('a'+i)), YarnLockKind, nil)
		expected.Add(item.Fingerprint().ID())
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Add(item)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, f.Len())
	assert.True(t, expected.IsEqual(f.Fingerprints()))
}

func TestOutcome_Skipped(t *testing.T) {
	a := artifact.Artifact{Path: "/p/yarn.lock", Kind: artifact.LockfileYarn}
	assert.False(t, Outcome{Artifact: a, Matcher: YarnLockMatcher}.Skipped())
	assert.True(t, Outcome{Artifact: a, Matcher: YarnLockMatcher, Err: errors.New("boom")}.Skipped())
}
