package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a specific date.
// It ensures that dates are unique and the series is always sorted.
type History[T any] struct {
	days   []Date
	values []T
}

// search returns the position of 'on' in the history and whether it is present.
func (h *History[T]) search(on Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, on, Date.Compare)
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Append adds a point to the history.
//
// Existing value at that date are overwritten.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := h.search(on)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Get returns the value at 'day' and true or zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, value
	}
	return h.days[last], h.values[last]
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Backward returns an iterator over all date/value pairs, most recent first.
func (h *History[T]) Backward() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i := len(h.days) - 1; i >= 0; i-- {
			if !yield(h.days[i], h.values[i]) {
				return
			}
		}
	}
}
