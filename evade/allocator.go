// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package evade

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s48/stackevade/check"
	"github.com/s48/stackevade/ir"
	"github.com/s48/stackevade/move"
	"github.com/s48/stackevade/util"
)

// Assigns memory slots to variables by walking the call graph
// depth-first.
//  - Leaves of the call graph get the lowest slots, increasing
//    towards the root.
//  - nextAvailableSlot maps a function to the first slot that is not
//    used by it or by anything it calls.  A caller can use any slot
//    from there on.
//  - A function's variables start at the maximum nextAvailableSlot of
//    its callees.  Callees that can never be active at the same time
//    end up sharing slots, just as they would share stack space.
//
// Any cycle must have been rejected already if it has variables to
// move.  Other cycles are harmless; a function that is reached again
// while it is still being walked counts as needing no slots.

type allocatorT struct {
	report    check.ReportT
	callGraph ir.CallGraphT
	logger    zerolog.Logger

	slotAllocations   move.SlotAllocationT
	nextAvailableSlot map[ir.FunctionNameT]uint64
	inProgress        util.SetT[ir.FunctionNameT]
}

func makeAllocator(report check.ReportT, callGraph ir.CallGraphT, logger zerolog.Logger) *allocatorT {
	return &allocatorT{
		report:            report,
		callGraph:         callGraph,
		logger:            logger,
		slotAllocations:   move.SlotAllocationT{},
		nextAvailableSlot: map[ir.FunctionNameT]uint64{},
		inProgress:        util.NewSet[ir.FunctionNameT]()}
}

// Returns the first slot that 'function' and its callees leave free.

func (allocator *allocatorT) run(function ir.FunctionNameT) uint64 {
	if nextSlot, found := allocator.nextAvailableSlot[function]; found {
		return nextSlot
	}
	if allocator.inProgress.Contains(function) {
		return 0
	}
	allocator.inProgress.Add(function)

	nextSlot := uint64(0)
	for _, callee := range allocator.callGraph.Callees(function) {
		nextSlot = max(nextSlot, allocator.run(callee))
	}

	if variables := allocator.report[function]; 0 < len(variables) {
		if _, found := allocator.slotAllocations[function]; found {
			panic(fmt.Sprintf("slots allocated twice for %s", function))
		}
		assignedSlots := map[ir.VariableNameT]uint64{}
		for _, variable := range variables {
			if variable.IsUnnamed() {
				// Too many parameters or return variables.  There is
				// nothing here that could be moved.
				allocator.logger.Warn().
					Str("function", function.String()).
					Msg("stack overflow without a variable to move")
				continue
			}
			if _, found := assignedSlots[variable]; found {
				panic(fmt.Sprintf("variable %s of %s listed twice", variable, function))
			}
			assignedSlots[variable] = nextSlot
			nextSlot += 1
		}
		allocator.slotAllocations[function] = assignedSlots
	}

	allocator.inProgress.Remove(function)
	allocator.nextAvailableSlot[function] = nextSlot
	return nextSlot
}
