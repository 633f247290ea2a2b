// Package constvec provides [Vec], a fixed-capacity container that can be appended to through any
// handle pointing at it.
//
// The intended use is incremental construction on a single goroutine, when the final number of
// items is known upfront. The owner allocates the Vec once and hands the pointer to every part of
// the code that needs to add to it:
//
//	nodes := constvec.New[Node](len(tokens))
//	parser := &Parser{nodes: nodes}
//	checker := &Checker{nodes: nodes}
//
//	parser.Parse(tokens)       // pushes into nodes
//	checker.Check(nodes.Slice())
//
//	result := nodes.IntoSlice() // no copy
//
// Pushing into a full Vec panics; there is no fallible push and no growth. A Vec can be converted
// to and from a regular slice and to and from raw parts without copying, and it can be drained from
// both ends with [Vec.IntoIter].
//
// Items that implement [Cleanable] are cleaned up when the container destroys them.
//
// Neither [Vec] nor [Iter] is safe for concurrent use.
package constvec
