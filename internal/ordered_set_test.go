package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedSet_Add(t *testing.T) {
	tests := []struct {
		name          string
		initial       []string
		add           []string
		expectedAdded int
		expected      []string
	}{
		{
			name:          "add to empty set",
			add:           []string{"1.0.0", "1.0.1"},
			expectedAdded: 2,
			expected:      []string{"1.0.0", "1.0.1"},
		},
		{
			name:          "duplicates keep first position",
			initial:       []string{"2.0.0", "1.0.0"},
			add:           []string{"1.0.0", "3.0.0", "2.0.0"},
			expectedAdded: 1,
			expected:      []string{"2.0.0", "1.0.0", "3.0.0"},
		},
		{
			name:          "duplicates within a single call",
			add:           []string{"a", "a", "b", "a"},
			expectedAdded: 2,
			expected:      []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewOrderedSet(tt.initial...)
			assert.Equal(t, tt.expectedAdded, s.Add(tt.add...))
			assert.Equal(t, tt.expected, s.ToSlice())
			assert.Equal(t, len(tt.expected), s.Size())
		})
	}
}

func TestOrderedSet_Empty(t *testing.T) {
	assert.True(t, NewOrderedSet[string]().IsEmpty())
	assert.False(t, NewOrderedSet("1.0.0").IsEmpty())
	assert.Equal(t, []string{}, NewOrderedSet[string]().ToSlice())

	var nilSet *OrderedSet[string]
	assert.True(t, nilSet.IsEmpty())
	assert.Zero(t, nilSet.Size())
	assert.Nil(t, nilSet.ToSlice())
}

func TestOrderedSet_ToSliceIsACopy(t *testing.T) {
	s := NewOrderedSet("a", "b")
	items := s.ToSlice()
	items[0] = "z"
	assert.Equal(t, []string{"a", "b"}, s.ToSlice())
}
