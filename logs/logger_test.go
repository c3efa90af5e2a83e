package logs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestHandler(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		ctx := WithScan(context.Background(), 7)
		logger.With("rung", 1).ErrorContext(ctx, "test", "hello", "world!")
		out := buf.String()
		if !strings.Contains(out, "ladder.scan=7") {
			t.Fatalf("got %s", out)
		}
		if !strings.Contains(out, "rung=1") {
			t.Fatalf("got %s", out)
		}
	})
}

func TestSetVerbosity(t *testing.T) {
	defer SetVerbosity(2)
	SetVerbosity(0)
	if Level() != slog.LevelError {
		t.Fatal()
	}
	SetVerbosity(5)
	if Level() != slog.LevelDebug {
		t.Fatal()
	}
}

func TestToJournalKey(t *testing.T) {
	if k := toJournalKey("ladder.span"); k != "LADDER_SPAN" {
		t.Fatalf("got %s", k)
	}
	if k := toJournalKey("_x-y"); k != "X_Y" {
		t.Fatalf("got %s", k)
	}
}

func TestWrapSpan(t *testing.T) {
	errFoo := errors.New("foo")
	if err := WrapSpan(context.Background(), errFoo); err != errFoo {
		t.Fatalf("got %v", err)
	}
	ctx := context.WithValue(context.Background(), SpanKey, Span("abc"))
	err := WrapSpan(ctx, errFoo)
	if !errors.Is(err, errFoo) || !strings.Contains(err.Error(), "span: abc") {
		t.Fatalf("got %v", err)
	}
	if WrapSpan(ctx, nil) != nil {
		t.Fatal()
	}
}
