package finding

import (
	"sync"

	"github.com/scylladb/go-set/strset"
)

// Findings is an append-only, ordered accumulator. Append order is discovery order. It is safe for concurrent
// use, although the engine gives each worker its own accumulator and merges them in a fixed order.
type Findings struct {
	lock  sync.RWMutex
	items []Finding
}

func NewFindings(findings ...Finding) *Findings {
	f := &Findings{}
	f.Add(findings...)
	return f
}

func (f *Findings) Add(findings ...Finding) {
	if len(findings) == 0 {
		return
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.items = append(f.items, findings...)
}

// Merge appends all findings of the other accumulator, keeping their order.
func (f *Findings) Merge(other *Findings) {
	if other == nil || other == f {
		return
	}
	f.Add(other.Items()...)
}

// Items returns a copy of the accumulated findings in discovery order.
func (f *Findings) Items() []Finding {
	if f == nil {
		return nil
	}
	f.lock.RLock()
	defer f.lock.RUnlock()
	items := make([]Finding, len(f.items))
	copy(items, f.items)
	return items
}

func (f *Findings) Len() int {
	if f == nil {
		return 0
	}
	f.lock.RLock()
	defer f.lock.RUnlock()
	return len(f.items)
}

// Fingerprints returns the set of fingerprint IDs of all accumulated findings.
func (f *Findings) Fingerprints() *strset.Set {
	set := strset.New()
	for _, item := range f.Items() {
		set.Add(item.Fingerprint().ID())
	}
	return set
}

// Dedupe drops repeated fingerprints, keeping the first occurrence. Matchers apply this to the results of a single
// invocation; identical tuples found through different artifacts are kept.
func Dedupe(findings []Finding) []Finding {
	if len(findings) < 2 {
		return findings
	}
	seen := make(map[Fingerprint]struct{}, len(findings))
	result := make([]Finding, 0, len(findings))
	for _, f := range findings {
		fp := f.Fingerprint()
		if _, ok := seen[fp]; ok {
			continue
		}
		seen[fp] = struct{}{}
		result = append(result, f)
	}
	return result
}
