package scripts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/reusee/ladder/cells"
	"github.com/reusee/ladder/clocks"
	"github.com/reusee/ladder/pins"
	"github.com/reusee/ladder/plcs"
)

func testProgram() (*plcs.Program, *pins.Memory, *clocks.Manual) {
	board := pins.NewMemory()
	clock := clocks.NewManual(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	return plcs.NewProgram(plcs.Env{
		Board:  board,
		Clock:  clock,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), board, clock
}

// graph renders the wrapper graph of every rung.
func graph(p *plcs.Program) string {
	buf := new(strings.Builder)
	for _, rung := range p.Rungs() {
		fmt.Fprintf(buf, "rung %d line %d initial %v\n", rung.Index, rung.Line, rung.Initial)
		for _, h := range rung.Wrappers {
			w := p.Wrapper(h)
			fmt.Fprintf(buf, "  %d %s not=%v coil=%v next=%v\n",
				h, p.Object(w.Object).ID, w.Not, w.Coil, w.Next(rung.Index))
		}
	}
	return buf.String()
}

const pressScript = `
; press interlock
IN1 = INPUT(1)
IN2 = INPUT(2, NC)
GUARD = INPUT(V)
OUT1 = OUTPUT(10)
LAMP = OUTPUT(11, VIRTUAL)

IN1 * IN2 * GUARD = TMR1 = TIMER(500, TON)
TMR1.DN + /GUARD = OUT1 = LAMP
OUT1 = CNT1 = COUNTER(3)
CNT1.DN * OS1 = SUM1 = ADD(CNT1.ACC, 10, TOTAL)
OS1 = ONESHOT()
`

func TestLoad(t *testing.T) {
	p, _, _ := testProgram()
	if err := Load(p, pressScript); err != nil {
		t.Fatal(err)
	}
	if n := len(p.Rungs()); n != 4 {
		t.Fatalf("got %v", n)
	}
	for _, id := range []string{"IN1", "TMR1", "TMR1.DN", "CNT1.DN", "CNT1", "OS1", "SUM1", "TOTAL"} {
		if _, ok := p.Lookup(id); !ok {
			t.Fatalf("%s not found", id)
		}
	}
	if rung := p.Rungs()[0]; rung.Line != 9 || rung.Source != "IN1*IN2*GUARD=TMR1=TIMER(500,TON)" {
		t.Fatalf("got %+v", rung)
	}
	total, _ := p.Lookup("TOTAL")
	if total.Kind != plcs.KindVariable || total.DefaultCell().Kind() != cells.KindInt64 {
		t.Fatal()
	}
}

func TestLoadDeterministic(t *testing.T) {
	p1, _, _ := testProgram()
	if err := Load(p1, pressScript); err != nil {
		t.Fatal(err)
	}
	p2, _, _ := testProgram()
	if err := Load(p2, pressScript); err != nil {
		t.Fatal(err)
	}
	if graph(p1) != graph(p2) {
		t.Fatalf("got\n%s\n%s", graph(p1), graph(p2))
	}

	// reloading replaces the previous program
	if err := Load(p1, pressScript); err != nil {
		t.Fatal(err)
	}
	if graph(p1) != graph(p2) {
		t.Fatalf("got\n%s\n%s", graph(p1), graph(p2))
	}
}

func TestSingleContactRung(t *testing.T) {
	p, board, _ := testProgram()
	src := "IN1=INPUT(22)\nOUT1=OUTPUT(16)\nIN1=OUT1\n"
	for i := 0; i < 2; i++ {
		if err := Load(p, src); err != nil {
			t.Fatal(err)
		}
		rungs := p.Rungs()
		if len(rungs) != 1 {
			t.Fatalf("got %v", len(rungs))
		}
		rung := rungs[0]
		if len(rung.Initial) != 1 || len(rung.Wrappers) != 2 {
			t.Fatalf("got %+v", rung)
		}
		first := p.Wrapper(rung.Initial[0])
		if p.Object(first.Object).ID != "IN1" || first.Coil {
			t.Fatalf("got %+v", first)
		}
		next := first.Next(rung.Index)
		if len(next) != 1 {
			t.Fatalf("got %v", next)
		}
		last := p.Wrapper(next[0])
		if p.Object(last.Object).ID != "OUT1" || !last.Coil || len(last.Next(rung.Index)) != 0 {
			t.Fatalf("got %+v", last)
		}
	}

	board.Set(22, true)
	p.Scan(context.Background())
	if !board.DigitalRead(16) {
		t.Fatal()
	}
}

func TestOneShotCoilRung(t *testing.T) {
	p, board, _ := testProgram()
	if err := Load(p, `
A = INPUT(1)
B = OUTPUT(2)
OS1 = ONESHOT()
A = OS1
OS1 = B
`); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 4; i++ {
		p.Scan(context.Background())
		if board.DigitalRead(2) {
			t.Fatalf("scan %d: pulse while input low", i)
		}
	}

	board.Set(1, true)
	pulses := 0
	for i := 0; i < 4; i++ {
		p.Scan(context.Background())
		if board.DigitalRead(2) {
			pulses++
		}
	}
	if pulses != 1 {
		t.Fatalf("got %v", pulses)
	}

	board.Set(1, false)
	p.Scan(context.Background())
	board.Set(1, true)
	p.Scan(context.Background())
	if !board.DigitalRead(2) {
		t.Fatal()
	}
}

func TestRunPress(t *testing.T) {
	p, board, clock := testProgram()
	if err := Load(p, pressScript); err != nil {
		t.Fatal(err)
	}
	out1 := func() bool {
		return board.DigitalRead(10)
	}
	if err := p.Set("GUARD", "on"); err != nil {
		t.Fatal(err)
	}

	board.Set(1, true)
	p.Scan(context.Background())
	if out1() {
		t.Fatal()
	}
	clock.Advance(500 * time.Millisecond)
	p.Scan(context.Background())
	if !out1() {
		t.Fatal()
	}
	lamp, _ := p.Resolve("LAMP")
	if !lamp.Bool() {
		t.Fatal()
	}

	// NC input opens the chain
	board.Set(2, true)
	p.Scan(context.Background())
	if out1() {
		t.Fatal()
	}
	cnt, _ := p.Resolve("CNT1.ACC")
	if cnt.Int() != 1 {
		t.Fatalf("got %v", cnt.Int())
	}

	// guard released energizes through the negated branch
	if err := p.Set("GUARD", "off"); err != nil {
		t.Fatal(err)
	}
	p.Scan(context.Background())
	if !out1() {
		t.Fatal()
	}
}

func TestNestedReachability(t *testing.T) {
	p, _, _ := testProgram()
	src := `
A=IN(V)
B=IN(V)
C=IN(V)
D=IN(V)
E=IN(V)
F=IN(V)
OUT=VIRT()
A*(B+C)*(D+E)+F=OUT
`
	if err := Load(p, src); err != nil {
		t.Fatal(err)
	}
	rung := p.Rungs()[0]

	var initial []string
	for _, h := range rung.Initial {
		initial = append(initial, p.Object(p.Wrapper(h).Object).ID)
	}
	if str := strings.Join(initial, ","); str != "A,F" {
		t.Fatalf("got %s", str)
	}

	reached := make(map[plcs.WrapperHandle]bool)
	var walk func(plcs.WrapperHandle)
	walk = func(h plcs.WrapperHandle) {
		reached[h] = true
		for _, next := range p.Wrapper(h).Next(rung.Index) {
			walk(next)
		}
	}
	for _, h := range rung.Initial {
		walk(h)
	}
	if len(reached) != len(rung.Wrappers) {
		t.Fatalf("got %v of %v", len(reached), len(rung.Wrappers))
	}

	cases := []struct {
		on   string
		want bool
	}{
		{"", false},
		{"A", false},
		{"A,B", false},
		{"A,B,D", true},
		{"A,C,E", true},
		{"B,D", false},
		{"F", true},
	}
	for _, c := range cases {
		for _, id := range []string{"A", "B", "C", "D", "E", "F"} {
			p.Set(id, "false")
		}
		if c.on != "" {
			for _, id := range strings.Split(c.on, ",") {
				p.Set(id, "true")
			}
		}
		p.Scan(context.Background())
		out, _ := p.Resolve("OUT")
		if out.Bool() != c.want {
			t.Fatalf("%s: got %v", c.on, out.Bool())
		}
	}
}

func TestNestTiers(t *testing.T) {
	p, _, _ := testProgram()
	if err := Load(p, "A=IN(V)\nB=IN(V)\nC=IN(V)\nD=IN(V)"); err != nil {
		t.Fatal(err)
	}
	b := &rungBuilder{
		program: p,
		index:   p.NextRungIndex(),
	}
	root, err := b.group("A*(B+(C*D))", 0)
	if err != nil {
		t.Fatal(err)
	}
	if root.Tier != 0 || len(root.Ands) != 1 || len(root.Children) != 1 {
		t.Fatalf("got %+v", root)
	}
	child := root.Children[0]
	if child.Tier != 1 || len(child.Ors) != 2 || len(child.Children) != 1 {
		t.Fatalf("got %+v", child)
	}
	if grand := child.Children[0]; grand.Tier != 2 || len(grand.Ands) != 2 {
		t.Fatalf("got %+v", grand)
	}
	if len(root.First) != 1 || len(root.Last) != 2 {
		t.Fatalf("got %+v", root)
	}
}

func TestDoubleNegation(t *testing.T) {
	p, _, _ := testProgram()
	if err := Load(p, "A=IN(V)\nX=VIRT()\nY=VIRT()\n//A=X\nA=Y"); err != nil {
		t.Fatal(err)
	}
	for _, v := range []string{"0", "1"} {
		p.Set("A", v)
		p.Scan(context.Background())
		x, _ := p.Resolve("X")
		y, _ := p.Resolve("Y")
		if x.Bool() != y.Bool() {
			t.Fatalf("%s: got %v %v", v, x.Bool(), y.Bool())
		}
	}
}

// Every wrapper of one object in a rung reads the same line-state latch, so
// B energized through the first branch also energizes the /B branch.
func TestSharedLineState(t *testing.T) {
	p, _, _ := testProgram()
	if err := Load(p, "A=IN(V)\nB=IN(V)\nC=IN(V)\nD=VIRT()\nA*B+C*/B=D"); err != nil {
		t.Fatal(err)
	}
	d := func() bool {
		cell, _ := p.Resolve("D")
		return cell.Bool()
	}

	p.Scan(context.Background())
	if d() {
		t.Fatal()
	}

	p.Set("A", "on")
	p.Scan(context.Background())
	if !d() {
		t.Fatal()
	}
}

func TestForwardReference(t *testing.T) {
	p, _, _ := testProgram()
	if err := Load(p, "A*B=C\nA=IN(V)\nB=IN(V)\nC=VIRT()"); err != nil {
		t.Fatal(err)
	}
	if len(p.Rungs()) != 1 {
		t.Fatal()
	}
}

func TestCommentsAndBlankLines(t *testing.T) {
	p, _, _ := testProgram()
	src := "; header\n\n  \nx\nA = in(v) ; switch\nB=VIRT()\na=b"
	if err := Load(p, src); err != nil {
		t.Fatal(err)
	}
	if len(p.Rungs()) != 1 || len(p.Objects()) != 2 {
		t.Fatalf("got %d %d", len(p.Rungs()), len(p.Objects()))
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	p, _, _ := testProgram()
	if err := Load(p, "A=TIMER(100)\nA=COUNTER(5)"); err != nil {
		t.Fatal(err)
	}
	a, _ := p.Lookup("A")
	if a.Kind != plcs.KindTimer || len(p.Objects()) != 1 {
		t.Fatal()
	}
}

func TestInvalidReferenceDiscardsProgram(t *testing.T) {
	p, _, _ := testProgram()
	err := Load(p, "IN1=INPUT(1)\nOUT1=OUTPUT(2)\nIN1=OUT1\nIN1*NOPE=OUT1")
	if !errors.Is(err, ErrInvalidObject) {
		t.Fatalf("got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Line != 4 || e.Token != "NOPE" {
		t.Fatalf("got %v", err)
	}
	if len(p.Rungs()) != 0 || len(p.Objects()) != 0 {
		t.Fatal()
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		src  string
		want error
	}{
		{"X=FOO(1)", ErrUnknownType},
		{"X=TIMER(100,FAST)", ErrUnknownArgs},
		{"X=TIMER(TON)", ErrInsufficientArgs},
		{"X=INPUT()", ErrInsufficientArgs},
		{"X=INPUT(1,PULLUP)", ErrUnknownArgs},
		{"X=OUTPUT(1,ANALOG)", ErrUnknownArgs},
		{"X=VIRTUAL(1)", ErrUnknownArgs},
		{"X=CLOCK()", ErrInsufficientArgs},
		{"X=CLOCK(25:00)", ErrUnknownArgs},
		{"X=REMOTE()", ErrInsufficientArgs},
		{"X=ADD(1)", ErrInsufficientArgs},
		{"X=ADD(1,2,Y,Z)", ErrUnknownArgs},
		{"X=INC(5)", ErrUnknownArgs},
		{"X=MOV(NOPE)", ErrInvalidObject},
		{"T=TIMER(5)\nY=VIRT()\nT.XX=Y", ErrInvalidBit},
		{"A=VIRT()\n/(A)=A", ErrParserFailed},
		{"A=VIRT()\n(A=A", ErrParserFailed},
		{"A=VIRT()\nA*=A", ErrParserFailed},
		{"A=VIRT()\nA=/A", ErrParserFailed},
		{"A=VIRT()\nA/A=A", ErrParserFailed},
		{"A=VIRT()\n=A", ErrParserFailed},
		{"A=VIRT()\n(A)(A)=A", ErrParserFailed},
		{"A=VIRT()\nA[X]=A", ErrInvalidObject},
		{"R=REM(HOST:1)\nA=VIRT()\nA=R[X]", ErrInvalidObject},
	}
	for _, c := range cases {
		p, _, _ := testProgram()
		err := Load(p, c.src)
		if !errors.Is(err, c.want) {
			t.Fatalf("%q: got %v", c.src, err)
		}
		if len(p.Objects()) != 0 {
			t.Fatalf("%q: program not reset", c.src)
		}
	}
}

func TestMathScript(t *testing.T) {
	p, _, _ := testProgram()
	src := `
A=VAR(INT32,10)
B=VAR(0)
ON=IN(V)
D1=DIV(A,B,Q)
LIMIT=VAR(FLOAT,2.5)
G1=GT(B,LIMIT)
FAST=VIRT()
ON*D1
ON*G1=FAST
`
	if err := Load(p, src); err != nil {
		t.Fatal(err)
	}
	q, err := p.Resolve("Q")
	if err != nil {
		t.Fatal(err)
	}
	if q.Kind() != cells.KindInt64 {
		t.Fatalf("got %v", q.Kind())
	}
	p.Set("ON", "1")

	p.Scan(context.Background())
	if q.Int() != 0 {
		t.Fatalf("got %v", q.Int())
	}

	p.Set("B", "4")
	p.Scan(context.Background())
	if q.Int() != 2 {
		t.Fatalf("got %v", q.Int())
	}
	fast, _ := p.Resolve("FAST")
	if !fast.Bool() {
		t.Fatal()
	}
}

func TestVariableKinds(t *testing.T) {
	p, _, _ := testProgram()
	src := "A=VAR()\nB=VAR(1.5)\nC=VAR(TRUE)\nD=VAR(UINT8,300)\nE=VAR(9999999999)\nF=VAR(STRING,IDLE)"
	if err := Load(p, src); err != nil {
		t.Fatal(err)
	}
	want := map[string]cells.Kind{
		"A": cells.KindInt32,
		"B": cells.KindFloat64,
		"C": cells.KindBool,
		"D": cells.KindUint8,
		"E": cells.KindInt64,
		"F": cells.KindString,
	}
	for id, kind := range want {
		c, err := p.Resolve(id)
		if err != nil {
			t.Fatal(err)
		}
		if c.Kind() != kind {
			t.Fatalf("%s: got %v", id, c.Kind())
		}
	}
	if d, _ := p.Resolve("D"); d.Uint() != 44 {
		t.Fatalf("got %v", d.Uint())
	}
	if f, _ := p.Resolve("F"); f.String() != "IDLE" {
		t.Fatalf("got %v", f.String())
	}
}

func TestRemoteReference(t *testing.T) {
	p, _, _ := testProgram()
	src := "R=REMOTE(PEER.LOCAL:7000,250)\nBUS=CAN(GW:2000)\nX=VIRT()\nR[TMR1.DN]*BUS[SPEED]=X"
	if err := Load(p, src); err != nil {
		t.Fatal(err)
	}
	proxy, ok := p.Lookup("R[TMR1.DN]")
	if !ok || proxy.Kind != plcs.KindRemoteChild || proxy.DefaultCell() != nil {
		t.Fatal()
	}
	bus, _ := p.Lookup("BUS")
	if bus.Kind != plcs.KindCAN {
		t.Fatal()
	}
	if _, ok := p.Lookup("BUS[SPEED]"); !ok {
		t.Fatal()
	}
}

func TestParseRef(t *testing.T) {
	cases := []struct {
		token string
		want  ref
	}{
		{"A", ref{Name: "A"}},
		{"/A", ref{Not: true, Name: "A"}},
		{"///A.DN", ref{Not: true, Name: "A", Bit: "DN"}},
		{"R[T1.DN]", ref{Name: "R", Accessor: "T1.DN"}},
	}
	for _, c := range cases {
		got, err := parseRef(c.token)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Fatalf("%s: got %+v", c.token, got)
		}
	}
	for _, token := range []string{"", "/", "A.", ".A", "A/B", "A.B/", "R[", "R[]", "R[X]Y", "A-B"} {
		if _, err := parseRef(token); err == nil {
			t.Fatalf("%q: no error", token)
		}
	}
}

func TestSplitTop(t *testing.T) {
	parts, err := splitTop("A*(B+C)+R[X+Y]+D", '+')
	if err != nil {
		t.Fatal(err)
	}
	if str := strings.Join(parts, "|"); str != "A*(B+C)|R[X+Y]|D" {
		t.Fatalf("got %s", str)
	}
	if _, err := splitTop("A)(", '+'); err == nil {
		t.Fatal()
	}
}
