package plcs

import (
	"context"
	"testing"
	"time"

	"github.com/reusee/ladder/cells"
	"github.com/reusee/ladder/clocks"
)

func TestTimerOnDelay(t *testing.T) {
	p, board, clock := testProgram()
	in := p.NewInput("IN1", 1, false, false, false)
	tmr := p.NewTimer("TMR1", time.Second, TON)
	chain(t, p, []*Object{in}, nil, tmr)
	dn, _ := tmr.ChildVar("DN")
	tt, _ := tmr.ChildVar("TT")

	board.Set(1, true)
	for i := 0; i <= 12; i++ {
		p.Scan(context.Background())
		elapsed := time.Duration(i) * 100 * time.Millisecond
		if dn.Bool() != (elapsed >= time.Second) {
			t.Fatalf("scan %d: got %v", i, dn.Bool())
		}
		if tt.Bool() != (elapsed < time.Second) {
			t.Fatalf("scan %d: got %v", i, tt.Bool())
		}
		clock.Advance(100 * time.Millisecond)
	}

	board.Set(1, false)
	p.Scan(context.Background())
	if dn.Bool() || tt.Bool() {
		t.Fatal()
	}
}

func TestTimerAccumulates(t *testing.T) {
	p, board, clock := testProgram()
	in := p.NewInput("IN1", 1, false, false, false)
	tmr := p.NewTimer("TMR1", time.Second, TON)
	chain(t, p, []*Object{in}, nil, tmr)
	acc, _ := tmr.ChildVar("ACC")

	board.Set(1, true)
	p.Scan(context.Background())
	clock.Advance(400 * time.Millisecond)
	p.Scan(context.Background())
	if acc.Uint() != 400 {
		t.Fatalf("got %v", acc.Uint())
	}
}

func TestTimerRetentive(t *testing.T) {
	p, board, clock := testProgram()
	in := p.NewInput("IN1", 1, false, false, false)
	tmr := p.NewTimer("TMR1", time.Second, RTO)
	chain(t, p, []*Object{in}, nil, tmr)
	dn, _ := tmr.ChildVar("DN")

	board.Set(1, true)
	p.Scan(context.Background())
	clock.Advance(time.Second)
	p.Scan(context.Background())
	if !dn.Bool() {
		t.Fatal()
	}

	board.Set(1, false)
	p.Scan(context.Background())
	if !dn.Bool() {
		t.Fatal()
	}

	if err := p.ResetObject("TMR1"); err != nil {
		t.Fatal(err)
	}
	if dn.Bool() {
		t.Fatal()
	}
}

func TestTimerOffDelay(t *testing.T) {
	p, board, clock := testProgram()
	in := p.NewInput("IN1", 1, false, false, false)
	tmr := p.NewTimer("TMR1", 500*time.Millisecond, TOF)
	chain(t, p, []*Object{in}, nil, tmr)
	dn, _ := tmr.ChildVar("DN")

	board.Set(1, true)
	p.Scan(context.Background())
	if dn.Bool() {
		t.Fatal()
	}

	board.Set(1, false)
	p.Scan(context.Background())
	clock.Advance(300 * time.Millisecond)
	p.Scan(context.Background())
	if dn.Bool() {
		t.Fatal()
	}
	clock.Advance(300 * time.Millisecond)
	p.Scan(context.Background())
	if !dn.Bool() {
		t.Fatal()
	}
}

func TestTimerContact(t *testing.T) {
	p, board, clock := testProgram()
	in := p.NewInput("IN1", 1, false, false, false)
	tmr := p.NewTimer("TMR1", 200*time.Millisecond, TON)
	out := p.NewOutput("OUT1", 10, false, false)
	chain(t, p, []*Object{in}, nil, tmr)
	chain(t, p, []*Object{tmr}, nil, out)

	board.Set(1, true)
	p.Scan(context.Background())
	if board.DigitalRead(10) {
		t.Fatal()
	}
	clock.Advance(200 * time.Millisecond)
	p.Scan(context.Background())
	if !board.DigitalRead(10) {
		t.Fatal()
	}
}

func TestCounterUp(t *testing.T) {
	p, board, _ := testProgram()
	in := p.NewInput("IN1", 1, false, false, false)
	cnt := p.NewCounter("CNT1", 3, false)
	chain(t, p, []*Object{in}, nil, cnt)
	acc, _ := cnt.ChildVar("ACC")
	dn, _ := cnt.ChildVar("DN")

	for i := 1; i <= 4; i++ {
		board.Set(1, true)
		p.Scan(context.Background())
		// held high, no new edge
		p.Scan(context.Background())
		board.Set(1, false)
		p.Scan(context.Background())
		if acc.Int() != int64(i) {
			t.Fatalf("got %v", acc.Int())
		}
		if dn.Bool() != (i >= 3) {
			t.Fatalf("edge %d: got %v", i, dn.Bool())
		}
	}

	if err := p.ResetObject("CNT1"); err != nil {
		t.Fatal(err)
	}
	if acc.Int() != 0 || dn.Bool() {
		t.Fatal()
	}
}

func TestCounterDown(t *testing.T) {
	p, board, _ := testProgram()
	in := p.NewInput("IN1", 1, false, false, false)
	cnt := p.NewCounter("CNT1", 2, true)
	chain(t, p, []*Object{in}, nil, cnt)
	acc, _ := cnt.ChildVar("ACC")
	dn, _ := cnt.ChildVar("DN")

	if acc.Int() != 2 || dn.Bool() {
		t.Fatal()
	}
	for i := 0; i < 2; i++ {
		board.Set(1, true)
		p.Scan(context.Background())
		board.Set(1, false)
		p.Scan(context.Background())
	}
	if acc.Int() != 0 || !dn.Bool() {
		t.Fatalf("got %v", acc.Int())
	}
}

func TestOneShot(t *testing.T) {
	p, board, _ := testProgram()
	in := p.NewInput("IN1", 1, false, false, false)
	os := p.NewOneShot("OS1")
	cnt := p.NewCounter("CNT1", 100, false)
	v := p.NewVirtual("V1")
	chain(t, p, []*Object{in, os}, nil, v)
	acc, _ := cnt.ChildVar("ACC")
	chain(t, p, []*Object{v}, nil, cnt)

	pulses := 0
	board.Set(1, true)
	for i := 0; i < 5; i++ {
		p.Scan(context.Background())
		if val, _ := v.ChildVar("VAL"); val.Bool() {
			pulses++
		}
	}
	if pulses != 1 {
		t.Fatalf("got %v", pulses)
	}
	if acc.Int() != 1 {
		t.Fatalf("got %v", acc.Int())
	}

	board.Set(1, false)
	p.Scan(context.Background())
	board.Set(1, true)
	p.Scan(context.Background())
	if val, _ := v.ChildVar("VAL"); !val.Bool() {
		t.Fatal()
	}
}

func TestOneShotAsContact(t *testing.T) {
	p, board, _ := testProgram()
	in := p.NewInput("IN1", 1, false, false, false)
	os := p.NewOneShot("OS1")
	out := p.NewOutput("OUT1", 10, false, false)
	chain(t, p, []*Object{in}, nil, os)
	chain(t, p, []*Object{os}, nil, out)

	for i := 0; i < 3; i++ {
		p.Scan(context.Background())
		if board.DigitalRead(10) {
			t.Fatalf("scan %d", i)
		}
	}

	board.Set(1, true)
	p.Scan(context.Background())
	if !board.DigitalRead(10) {
		t.Fatal()
	}
	p.Scan(context.Background())
	if board.DigitalRead(10) {
		t.Fatal()
	}
}

func TestTimerDropBeforeDone(t *testing.T) {
	p, board, clock := testProgram()
	in := p.NewInput("IN1", 1, false, false, false)
	tmr := p.NewTimer("TMR1", time.Second, TON)
	chain(t, p, []*Object{in}, nil, tmr)
	acc, _ := tmr.ChildVar("ACC")
	tt, _ := tmr.ChildVar("TT")
	dn, _ := tmr.ChildVar("DN")

	board.Set(1, true)
	p.Scan(context.Background())
	clock.Advance(400 * time.Millisecond)
	p.Scan(context.Background())
	if acc.Uint() != 400 || !tt.Bool() {
		t.Fatalf("got %v", acc.Uint())
	}

	board.Set(1, false)
	clock.Advance(100 * time.Millisecond)
	p.Scan(context.Background())
	if acc.Uint() != 0 {
		t.Fatalf("got %v", acc.Uint())
	}
	if tt.Bool() || dn.Bool() {
		t.Fatal()
	}

	// restarting times from zero
	board.Set(1, true)
	p.Scan(context.Background())
	clock.Advance(900 * time.Millisecond)
	p.Scan(context.Background())
	if dn.Bool() {
		t.Fatal()
	}
}

func TestClock(t *testing.T) {
	p, _, clock := testProgram()
	preset, err := clocks.ParsePreset([]string{"08:00", "08:30"})
	if err != nil {
		t.Fatal(err)
	}
	clk := p.NewClock("CLK1", preset)
	v := p.NewVirtual("V1")
	chain(t, p, []*Object{clk}, nil, v)
	val, _ := v.ChildVar("VAL")

	p.Scan(context.Background())
	if !val.Bool() {
		t.Fatal()
	}
	clock.Advance(30 * time.Minute)
	p.Scan(context.Background())
	if val.Bool() {
		t.Fatal()
	}
}

func TestMathDivideByZero(t *testing.T) {
	p, _, _ := testProgram()
	a := p.NewVariable("A", cells.From(int32(10)))
	b := p.NewVariable("B", cells.From(int32(0)))
	dest := p.NewVariable("Q", cells.From(int32(7)))
	m := p.NewMath("DIV1", OpDiv)
	if err := p.BindMath(m, a.DefaultCell(), b.DefaultCell(), dest.DefaultCell()); err != nil {
		t.Fatal(err)
	}
	on := p.NewInput("ON", 0, false, false, true)
	on.DefaultCell().SetBool(true)
	chain(t, p, []*Object{on, m}, nil)

	p.Scan(context.Background())
	if v := dest.DefaultCell().Int(); v != 7 {
		t.Fatalf("got %v", v)
	}

	b.DefaultCell().SetInt(2)
	p.Scan(context.Background())
	if v := dest.DefaultCell().Int(); v != 5 {
		t.Fatalf("got %v", v)
	}
}

func TestMathDomains(t *testing.T) {
	run := func(op MathOp, a, b *cells.Cell) *cells.Cell {
		m := &Math{Op: op}
		dest := cells.New(op.ResultKind(a, b))
		m.Bind(a, b, dest)
		m.run()
		return dest
	}

	if d := run(OpSub, cells.From(uint32(3)), cells.From(uint16(5))); d.Kind() != cells.KindUint64 || d.Uint() != 1<<64-2 {
		t.Fatalf("got %v %v", d.Kind(), d.Uint())
	}
	if d := run(OpSub, cells.From(int32(3)), cells.From(uint16(5))); d.Int() != -2 {
		t.Fatalf("got %v", d.Int())
	}
	if d := run(OpDiv, cells.From(7.0), cells.From(int32(2))); d.Float() != 3.5 {
		t.Fatalf("got %v", d.Float())
	}
	if d := run(OpMov, cells.From("abc"), nil); d.String() != "abc" {
		t.Fatalf("got %v", d.String())
	}
	if d := run(OpCos, cells.From(int32(0)), nil); d.Float() != 1 {
		t.Fatalf("got %v", d.Float())
	}

	counter := cells.From(uint8(255))
	m := &Math{Op: OpInc}
	m.Bind(counter, nil, nil)
	m.run()
	if counter.Uint() != 0 {
		t.Fatalf("got %v", counter.Uint())
	}
}

func TestCompareGates(t *testing.T) {
	p, _, _ := testProgram()
	temp := p.NewVariable("TEMP", cells.From(int32(20)))
	limit := p.NewVariable("LIMIT", cells.From(int32(30)))
	gt := p.NewMath("HOT", OpGt)
	if err := p.BindMath(gt, temp.DefaultCell(), limit.DefaultCell(), cells.New(cells.KindBool)); err != nil {
		t.Fatal(err)
	}
	on := p.NewInput("ON", 0, false, false, true)
	on.DefaultCell().SetBool(true)
	fan := p.NewVirtual("FAN")
	chain(t, p, []*Object{on, gt}, nil, fan)
	val, _ := fan.ChildVar("VAL")

	p.Scan(context.Background())
	if val.Bool() {
		t.Fatal()
	}
	temp.DefaultCell().SetInt(31)
	p.Scan(context.Background())
	if !val.Bool() {
		t.Fatal()
	}
	if v, _ := gt.ChildVar("VAL"); !v.Bool() {
		t.Fatal()
	}
}
