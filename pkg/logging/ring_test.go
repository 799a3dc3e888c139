// Copyright 2025 The BrewOS Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"fmt"
	"testing"
)

func TestRingKeepsOrder(t *testing.T) {
	w := NewRingWriter(8)
	for i := 0; i < 3; i++ {
		fmt.Fprintf(w, "line %d\n", i)
	}
	lines := w.Lines()
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if want := fmt.Sprintf("line %d", i); line != want {
			t.Errorf("Line %d is %q, want %q", i, line, want)
		}
	}
}

func TestRingDropsOldest(t *testing.T) {
	w := NewRingWriter(4)
	for i := 0; i < 10; i++ {
		fmt.Fprintf(w, "line %d\n", i)
	}
	lines := w.Lines()
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "line 6" || lines[3] != "line 9" {
		t.Errorf("Unexpected window: %v", lines)
	}
}
