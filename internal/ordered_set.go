package internal

// OrderedSet is a set that remembers the order in which values were first added.
type OrderedSet[T comparable] struct {
	items []T
	seen  map[T]struct{}
}

func NewOrderedSet[T comparable](items ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{
		seen: make(map[T]struct{}),
	}
	s.Add(items...)
	return s
}

// Add appends the values not already present and returns how many were new.
func (s *OrderedSet[T]) Add(items ...T) int {
	added := 0
	for _, item := range items {
		if _, ok := s.seen[item]; ok {
			continue
		}
		s.seen[item] = struct{}{}
		s.items = append(s.items, item)
		added++
	}
	return added
}

func (s *OrderedSet[T]) Size() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *OrderedSet[T]) IsEmpty() bool {
	return s.Size() == 0
}

// ToSlice returns a copy of the values in first-added order.
func (s *OrderedSet[T]) ToSlice() []T {
	if s == nil {
		return nil
	}
	result := make([]T, len(s.items))
	copy(result, s.items)
	return result
}
