// Copyright 2024 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Run the stack-to-memory pass over test case files.
//  --dir <directory>  Directory of .txtar cases (default evade/testdata).
//  --case <name>      Only runs the named case.
//  --config <file>    Settings used when a case has no config.yaml.
//  --print            Prints each rewritten object.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/s48/stackevade/config"
	"github.com/s48/stackevade/evade"
	"github.com/s48/stackevade/front"
	"github.com/s48/stackevade/ir"
)

func main() {
	caseDir := flag.String("dir", "evade/testdata", "case directory")
	caseName := flag.String("case", "", "case name")
	configFile := flag.String("config", "", "config file")
	printOutput := flag.Bool("print", false, "print rewritten objects")
	flag.Parse()

	settings, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	logger := settings.NewLogger(os.Stderr)

	paths := []string{filepath.Join(*caseDir, *caseName+".txtar")}
	if *caseName == "" {
		paths, err = front.CaseFiles(*caseDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
	}

	okay := true
	for _, path := range paths {
		testCase, err := front.ReadCaseFile(path, settings)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			okay = false
			continue
		}
		if !runCase(testCase, logger, *printOutput) {
			okay = false
		}
	}
	if !okay {
		os.Exit(1)
	}
}

func runCase(testCase *front.CaseT, logger zerolog.Logger, printOutput bool) bool {
	fmt.Printf("running '%s'\n", testCase.Name)
	settings := testCase.Config
	context := evade.MakeContext(settings.LookupDialect(), logger)
	context.Checker = settings.Checker()
	result := evade.Run(context, testCase.Input, settings.OptimizeStackAllocation)
	got := ir.ObjectString(testCase.Input)
	if printOutput {
		fmt.Print(got)
	}

	okay := true
	if testCase.Outcome != "" && testCase.Outcome != result.Outcome.String() {
		fmt.Printf("  outcome was '%s' but expected '%s'\n", result.Outcome, testCase.Outcome)
		okay = false
	}
	if got != testCase.Output {
		fmt.Printf("  output was\n%s  but expected\n%s", got, testCase.Output)
		okay = false
	}
	return okay
}
