// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package evade

import (
	"github.com/s48/stackevade/ir"
)

// Returns the literal argument of the one and only memoryinit call,
// or nil if there is no such call, more than one, or the argument is
// not a literal integer.  The second result is the number of calls.

func findMemoryInit(block *ir.BlockT) (*ir.LiteralT, int) {
	calls := ir.FindCalls(block, ir.MemoryInitName)
	if len(calls) != 1 || len(calls[0].Arguments) == 0 {
		return nil, len(calls)
	}
	args := calls[0].Arguments
	literal, ok := args[len(args)-1].(*ir.LiteralT)
	if !ok {
		return nil, 1
	}
	if _, ok := literal.IntValue(); !ok {
		return nil, 1
	}
	return literal, 1
}
