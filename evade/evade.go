// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Moving variables out of the stack when functions need more stack
// than the machine can reach.
//
// The stack checker says which variables have to go.  They are given
// fixed memory slots above the memory that the object already
// reserves, the code is rewritten to use them, and the reservation
// in the object's single memoryinit call is increased to cover them.
// Slots are shared by functions that can never be active at the same
// time.  If that cannot be determined because a function with
// variables to move is recursive, or if there is no unique memoryinit
// call to extend, the object is left as it is.

package evade

import (
	"fmt"
	"go/constant"
	"math/big"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s48/stackevade/check"
	"github.com/s48/stackevade/ir"
	"github.com/s48/stackevade/move"
	"github.com/s48/stackevade/util"
)

type ContextT struct {
	Dialect *ir.DialectT
	Logger  zerolog.Logger
	// These two are made with default settings if nil.
	Checker   *check.CheckerT
	Dispenser *move.NameDispenserT
}

func MakeContext(dialect *ir.DialectT, logger zerolog.Logger) *ContextT {
	return &ContextT{Dialect: dialect, Logger: logger}
}

type OutcomeT int

const (
	Relocated OutcomeT = iota
	NothingToRelocate
	NoMemoryInit
	CyclicRelocation
)

func (outcome OutcomeT) String() string {
	switch outcome {
	case Relocated:
		return "relocated"
	case NothingToRelocate:
		return "nothing to relocate"
	case NoMemoryInit:
		return "no unique memoryinit"
	case CyclicRelocation:
		return "recursive function needs relocation"
	}
	return fmt.Sprintf("outcome(%d)", int(outcome))
}

// The object is changed only if Outcome is Relocated.  The other
// fields are filled in as far as the pass got.

type ResultT struct {
	Outcome           OutcomeT
	Slots             move.SlotAllocationT
	RequiredSlots     uint64
	ReservedMemory    *big.Int
	NewReservedMemory *big.Int
}

func Run(context *ContextT, object *ir.ObjectT, optimizeStackAllocation bool) ResultT {
	checker := context.Checker
	if checker == nil {
		checker = &check.CheckerT{Limit: check.DefaultStackLimit}
	}
	report := checker.Run(context.Dialect, object, optimizeStackAllocation)
	return RunWithReport(context, object, report)
}

func RunWithReport(context *ContextT, object *ir.ObjectT, report check.ReportT) ResultT {
	logger := context.Logger.With().Str("object", object.Name).Logger()
	reported := reportedFunctions(report)
	if len(reported) == 0 {
		logger.Debug().Msg("no variables to relocate")
		return ResultT{Outcome: NothingToRelocate}
	}

	if object.Code == nil {
		panic("object has no code")
	}
	if !context.Dialect.ProvidesObjectAccess() {
		panic("moving variables to memory requires a dialect with object access")
	}

	memoryInit, count := findMemoryInit(object.Code)
	if memoryInit == nil {
		logger.Debug().Int("calls", count).Msg("no unique literal memoryinit call")
		return ResultT{Outcome: NoMemoryInit}
	}
	reservedMemory, _ := memoryInit.IntValue()
	result := ResultT{ReservedMemory: reservedMemory}

	callGraph := ir.BuildCallGraph(object.Code, context.Dialect)

	inCycle := findCycles(callGraph, ir.ProgramRoot)
	recursive := inCycle.Intersection(reported)
	if 0 < len(recursive) {
		for _, component := range cyclicComponents(callGraph, recursive) {
			logger.Debug().Str("cycle", functionList(component)).Msg("recursive function has variables to relocate")
		}
		result.Outcome = CyclicRelocation
		return result
	}

	allocator := makeAllocator(report, callGraph, logger)
	result.RequiredSlots = allocator.run(ir.ProgramRoot)
	result.Slots = allocator.slotAllocations

	dispenser := context.Dispenser
	if dispenser == nil {
		dispenser = move.MakeNameDispenser(object.Code)
	}
	move.Run(dispenser, context.Dialect, reservedMemory, result.Slots, object.Code)

	used := new(big.Int).Mul(big.NewInt(context.Dialect.WordSize), new(big.Int).SetUint64(result.RequiredSlots))
	result.NewReservedMemory = used.Add(used, reservedMemory)
	memoryInit.Value = constant.Make(new(big.Int).Set(result.NewReservedMemory))
	memoryInit.Hex = true

	result.Outcome = Relocated
	logger.Info().
		Uint64("slots", result.RequiredSlots).
		Str("reserved", ir.HexString(memoryInit.Value)).
		Msg("relocated variables to memory")
	return result
}

// Functions with at least one entry in the report.

func reportedFunctions(report check.ReportT) util.SetT[ir.FunctionNameT] {
	functions := util.NewSet[ir.FunctionNameT]()
	for function, variables := range report {
		if 0 < len(variables) {
			functions.Add(function)
		}
	}
	return functions
}

func functionList(functions []ir.FunctionNameT) string {
	names := make([]string, len(functions))
	for i, function := range functions {
		names[i] = function.String()
	}
	return strings.Join(names, " ")
}
