// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package evade

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/s48/stackevade/config"
	"github.com/s48/stackevade/front"
	"github.com/s48/stackevade/ir"
)

// Runs the cases in testdata/.  Each one is also runnable with the
// driver in test/.

func TestCases(t *testing.T) {
	paths, err := front.CaseFiles("testdata")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no test cases found")
	}
	for _, path := range paths {
		testCase, err := front.ReadCaseFile(path, config.Default())
		if err != nil {
			t.Errorf("%v", err)
			continue
		}
		t.Run(testCase.Name, func(t *testing.T) {
			settings := testCase.Config
			context := MakeContext(settings.LookupDialect(), zerolog.New(zerolog.NewTestWriter(t)))
			context.Checker = settings.Checker()
			result := Run(context, testCase.Input, settings.OptimizeStackAllocation)
			if testCase.Outcome != "" && result.Outcome.String() != testCase.Outcome {
				t.Errorf("outcome was '%s' but expected '%s'", result.Outcome, testCase.Outcome)
			}
			if got := ir.ObjectString(testCase.Input); got != testCase.Output {
				t.Errorf("output was\n%s\nbut expected\n%s", got, testCase.Output)
			}
		})
	}
}
