// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package move

import (
	"fmt"

	"github.com/s48/stackevade/ir"
	"github.com/s48/stackevade/util"
)

// Hands out variable names that are not used anywhere in a block.

type NameDispenserT struct {
	used util.SetT[string]
}

func MakeNameDispenser(block *ir.BlockT) *NameDispenserT {
	used := util.NewSet[string]()
	for name := range ir.CollectNames(block) {
		used.Add(name)
	}
	return &NameDispenserT{used: used}
}

// Returns '<base>_<n>' for the smallest n that gives an unused name.

func (dispenser *NameDispenserT) NewName(base string) string {
	for n := 1; ; n++ {
		name := fmt.Sprintf("%s_%d", base, n)
		if !dispenser.used.Contains(name) {
			dispenser.used.Add(name)
			return name
		}
	}
}
