// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package move

import (
	"testing"
)

func TestNameDispenser(t *testing.T) {
	object := readObject(t, `
(object main
  (function x_1 (x) ()
    (let (y_2) x)))`)
	dispenser := MakeNameDispenser(object.Code)
	tests := []struct {
		base string
		want string
	}{
		{"x", "x_2"},
		{"x", "x_3"},
		{"y", "y_1"},
		{"y", "y_3"},
		{"z", "z_1"},
	}
	for _, tt := range tests {
		if got := dispenser.NewName(tt.base); got != tt.want {
			t.Errorf("NewName(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}
