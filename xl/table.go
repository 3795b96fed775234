package xl

// Table interns distinct values and hands out dense ids 1..N in the order
// the values were first seen. The zero value is ready to use.
type Table[T comparable] struct {
	ids    map[T]int
	values []T
}

// Entry is one interned value with its id.
type Entry[T comparable] struct {
	Value T
	ID    int
}

// Intern returns the id of v, assigning the next one if v is new.
func (t *Table[T]) Intern(v T) int {
	if id, ok := t.ids[v]; ok {
		return id
	}
	if t.ids == nil {
		t.ids = map[T]int{}
	}
	t.values = append(t.values, v)
	id := len(t.values)
	t.ids[v] = id
	return id
}

// ID looks v up without inserting it.
func (t *Table[T]) ID(v T) (int, bool) {
	id, ok := t.ids[v]
	return id, ok
}

func (t *Table[T]) Len() int {
	return len(t.values)
}

// Entries lists the interned values ordered by id.
func (t *Table[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(t.values))
	for i, v := range t.values {
		out[i] = Entry[T]{Value: v, ID: i + 1}
	}
	return out
}
