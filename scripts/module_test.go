package scripts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/dscope"
)

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.plc")
	if err := os.WriteFile(good, []byte("A=IN(V)\nB=VIRT()\nA=B\n"), 0644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.plc")
	if err := os.WriteFile(bad, []byte("A=IN(V)\nA=MISSING\n"), 0644); err != nil {
		t.Fatal(err)
	}

	dscope.New(new(Module)).Call(func(
		compileFile CompileFile,
	) {
		p, _, _ := testProgram()
		ctx := context.Background()
		if err := compileFile(ctx, p, good); err != nil {
			t.Fatal(err)
		}
		if len(p.Rungs()) != 1 {
			t.Fatal()
		}
		if err := compileFile(ctx, p, bad); !errors.Is(err, ErrInvalidObject) {
			t.Fatalf("got %v", err)
		}
		if len(p.Rungs()) != 0 {
			t.Fatal()
		}
		if err := compileFile(ctx, p, filepath.Join(dir, "none")); err == nil {
			t.Fatal()
		}
	})
}
