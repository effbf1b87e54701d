package shape

import "iter"

// Store is the ordered collection of committed shapes. Shapes are only
// appended or popped from the end; callers refer to entries by index.
type Store struct {
	shapes []Shape
}

// Append adds s on top of the stack and returns its index.
func (st *Store) Append(s Shape) int {
	st.shapes = append(st.shapes, s)
	return len(st.shapes) - 1
}

// PopLast removes the most recently created shape.
func (st *Store) PopLast() (Shape, bool) {
	if len(st.shapes) == 0 {
		return nil, false
	}
	last := st.shapes[len(st.shapes)-1]
	st.shapes[len(st.shapes)-1] = nil
	st.shapes = st.shapes[:len(st.shapes)-1]
	return last, true
}

func (st *Store) Len() int { return len(st.shapes) }

// At returns the shape at index i, or nil when i is out of range.
func (st *Store) At(i int) Shape {
	if i < 0 || i >= len(st.shapes) {
		return nil
	}
	return st.shapes[i]
}

// Last returns the top shape, or nil.
func (st *Store) Last() Shape {
	return st.At(len(st.shapes) - 1)
}

// All yields shapes in creation order, bottom first.
func (st *Store) All() iter.Seq2[int, Shape] {
	return func(yield func(int, Shape) bool) {
		for i, s := range st.shapes {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Backward yields shapes topmost first.
func (st *Store) Backward() iter.Seq2[int, Shape] {
	return func(yield func(int, Shape) bool) {
		for i := len(st.shapes) - 1; i >= 0; i-- {
			if !yield(i, st.shapes[i]) {
				return
			}
		}
	}
}

// Clear drops every shape.
func (st *Store) Clear() {
	clear(st.shapes)
	st.shapes = st.shapes[:0]
}
