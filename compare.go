package constvec

import (
	"fmt"
	"slices"
)

// Equal reports whether the live items of v equal s, element by element.
//
// Fixed-size arrays compare by slicing them: Equal(v, arr[:]).
func Equal[Item comparable](v *Vec[Item], s []Item) bool {
	return slices.Equal(v.Slice(), s)
}

// EqualVec reports whether the live items of a and b are equal. Capacities are not compared.
func EqualVec[Item comparable](a, b *Vec[Item]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}

// EqualFunc is like [Equal] but compares items with eq.
func EqualFunc[Item, Other any](v *Vec[Item], s []Other, eq func(Item, Other) bool) bool {
	return slices.EqualFunc(v.Slice(), s, eq)
}

// Clone returns a new Vec with the same capacity holding clones of the live items.
//
// Items implementing [Cloner] are duplicated with their Clone method, other items are copied.
func (v *Vec[Item]) Clone() *Vec[Item] {
	c := New[Item](v.Cap())
	for _, item := range v.Slice() {
		c.Push(cloneItem(item))
	}
	return c
}

// Format implements fmt.Formatter. A Vec is formatted as its live items.
func (v *Vec[Item]) Format(state fmt.State, verb rune) {
	if v.moved {
		fmt.Fprint(state, "<moved>")
		return
	}
	fmt.Fprintf(state, fmt.FormatString(state, verb), v.Slice())
}
