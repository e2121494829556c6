// Copyright 2024 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package util

import (
	"slices"
)

// A set is a map from objects to the empty struct.

type SetT[E comparable] map[E]struct{}

// s := NewSet[int]()
//   or
// s := NewSet(1)

func NewSet[E comparable](members ...E) SetT[E] {
	set := SetT[E]{}
	for _, member := range members {
		set[member] = struct{}{}
	}
	return set
}

func (set SetT[E]) Add(members ...E) {
	for _, member := range members {
		set[member] = struct{}{}
	}
}

func (set SetT[E]) Remove(member E) {
	delete(set, member)
}

func (set SetT[E]) Contains(member E) bool {
	_, found := set[member]
	return found
}

// Map iteration order is random, so anything that has to be
// reproducible from run to run should use SortedMembers.

func (set SetT[E]) Members() []E {
	result := make([]E, 0, len(set))
	for member := range set {
		result = append(result, member)
	}
	return result
}

func SortedMembers[E comparable](set SetT[E], compare func(x E, y E) int) []E {
	result := set.Members()
	slices.SortFunc(result, compare)
	return result
}

// Assuming that lookup is more-or-less constant we want to loop
// through the smaller of the two sets.

func (set SetT[E]) Intersection(other SetT[E]) SetT[E] {
	if len(other) < len(set) {
		return other.Intersection(set)
	}
	result := NewSet[E]()
	for member := range set {
		if other.Contains(member) {
			result.Add(member)
		}
	}
	return result
}
