// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Test cases are txtar archives with these files:
//   config.yaml   optional settings, see package config
//   input         the object, as an S-expression
//   outcome       optional expected outcome, e.g. "relocated"
//   output        the expected object after the pass, pretty-printed

package front

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/tools/txtar"

	"github.com/s48/stackevade/config"
	"github.com/s48/stackevade/ir"
)

type CaseT struct {
	Name    string
	Comment string
	Config  *config.ConfigT
	Input   *ir.ObjectT
	Outcome string
	Output  string
}

// Settings in a case's config.yaml are applied on top of 'settings'.

func ReadCaseFile(path string, settings *config.ConfigT) (*CaseT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read case %s", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	testCase, err := ParseCase(name, data, settings)
	if err != nil {
		return nil, errors.Wrapf(err, "case %s", path)
	}
	return testCase, nil
}

func ParseCase(name string, data []byte, settings *config.ConfigT) (*CaseT, error) {
	archive := txtar.Parse(data)
	testCase := &CaseT{Name: name, Comment: strings.TrimSpace(string(archive.Comment)), Config: settings}
	var input []byte
	haveOutput := false
	for _, file := range archive.Files {
		switch file.Name {
		case "config.yaml":
			caseSettings, err := settings.With(file.Data)
			if err != nil {
				return nil, err
			}
			testCase.Config = caseSettings
		case "input":
			input = file.Data
		case "outcome":
			testCase.Outcome = strings.TrimSpace(string(file.Data))
		case "output":
			testCase.Output = string(file.Data)
			haveOutput = true
		default:
			return nil, errors.Errorf("unexpected file '%s'", file.Name)
		}
	}
	if input == nil {
		return nil, errors.New("no input")
	}
	if !haveOutput {
		return nil, errors.New("no output")
	}
	object, err := ReadObject(string(input))
	if err != nil {
		return nil, errors.Wrap(err, "input")
	}
	testCase.Input = object
	return testCase, nil
}

// The .txtar files in 'dir', sorted by name.

func CaseFiles(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txtar"))
	if err != nil {
		return nil, errors.Wrapf(err, "list cases in %s", dir)
	}
	return paths, nil
}
