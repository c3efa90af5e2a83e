package configs

import (
	"testing"
)

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"test.cue"}, testSchema)

	str := First[string](loader, "program_path")
	if str != "main.ld" {
		t.Fatalf("got %v", str)
	}
}
