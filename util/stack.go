// Copyright 2024 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Simple but dumb stack implementation.  The graph walks use it to
// hold the current path from the root.

package util

type StackT[T any] struct {
	count int
	elts  []T
}

func (stack *StackT[T]) Len() int {
	return stack.count
}

func (stack *StackT[T]) Ref(i int) T {
	if stack.count <= i {
		panic("indexing past the end of stack")
	}
	return stack.elts[i]
}

func (stack *StackT[T]) Push(elt T) {
	if stack.count < len(stack.elts) {
		stack.elts[stack.count] = elt
	} else {
		stack.elts = append(stack.elts, elt)
	}
	stack.count += 1
}

func (stack *StackT[T]) Pop() T {
	if stack.count == 0 {
		panic("popping from empty stack")
	}
	stack.count -= 1
	return stack.elts[stack.count]
}

// The elements from 'i' to the top, bottom first.

func (stack *StackT[T]) From(i int) []T {
	if stack.count < i {
		panic("indexing past the end of stack")
	}
	return stack.elts[i:stack.count]
}

// Returns the index of the lowest occurrence of 'elt' or -1 if it is
// not on the stack.

func StackIndex[T comparable](stack *StackT[T], elt T) int {
	for i := 0; i < stack.count; i++ {
		if stack.elts[i] == elt {
			return i
		}
	}
	return -1
}
