package vcd

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestWriter_BuilderGolden(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Date("today"); err != nil {
		t.Fatal(err)
	}
	if err := w.Version("handwritten"); err != nil {
		t.Fatal(err)
	}
	if err := w.Timescale(1, TimescaleNS); err != nil {
		t.Fatal(err)
	}
	if err := w.AddModule("top"); err != nil {
		t.Fatal(err)
	}
	clk, err := w.AddWire(1, "clk")
	if err != nil {
		t.Fatal(err)
	}
	data, err := w.AddVar(VarReg, 8, "data")
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Upscope(); err != nil {
		t.Fatal(err)
	}
	if err := w.Enddefinitions(); err != nil {
		t.Fatal(err)
	}
	if err := w.Timestamp(0); err != nil {
		t.Fatal(err)
	}
	if err := w.Begin(Dumpvars); err != nil {
		t.Fatal(err)
	}
	if err := w.ChangeScalar(clk, V0); err != nil {
		t.Fatal(err)
	}
	if err := w.ChangeVector(data, RepeatValue(VX, 8)); err != nil {
		t.Fatal(err)
	}
	if err := w.End(Dumpvars); err != nil {
		t.Fatal(err)
	}
	if err := w.Timestamp(5); err != nil {
		t.Fatal(err)
	}
	if err := w.ChangeScalar(clk, V1); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := `$date today $end
$version handwritten $end
$timescale 1ns $end
$scope module top $end
$var wire 1 ! clk $end
$var reg 8 " data $end
$upscope $end
$enddefinitions $end
#0
$dumpvars
0!
bxxxxxxxx "
$end
#5
1!
`
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriter_EventLines(t *testing.T) {
	testCases := []struct {
		name string
		ev   Event
		want string
	}{
		{"timestamp", Event{Kind: EventTimestamp, Time: 1234}, "#1234\n"},
		{"scalar z", Event{Kind: EventScalar, ID: 0, Scalar: VZ}, "z!\n"},
		{"real", Event{Kind: EventReal, ID: 2, Real: 0.25}, "r0.25 #\n"},
		{"string", Event{Kind: EventString, ID: 3, Str: MakeCompactStr("run")}, "srun $\n"},
		{"begin", Event{Kind: EventBegin, Cmd: Dumpoff}, "$dumpoff\n"},
		{"end", Event{Kind: EventEnd, Cmd: Dumpoff}, "$end\n"},
		{"comment", Event{Kind: EventComment, Str: MakeCompactStr("note")}, "$comment note $end\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			if err := w.WriteEvent(tc.ev); err != nil {
				t.Fatal(err)
			}
			if err := w.Flush(); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tc.want {
				t.Errorf("got %q, want %q", buf.String(), tc.want)
			}
		})
	}
}

func TestWriter_VectorLine(t *testing.T) {
	vec, err := VecValueFromBits([]byte("1z0x"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.ChangeVector(1, vec); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "b1z0x \"\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestWriter_LegacyOrder(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterIDOrder(OrderLegacy))
	if err := w.ChangeScalar(95, V1); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "1\"!\n" {
		t.Errorf("got %q, want %q", buf.String(), "1\"!\n")
	}
}

func TestWriter_StructuralErrors(t *testing.T) {
	w := NewWriter(io.Discard)
	if err := w.Upscope(); err == nil {
		t.Error("Upscope without open scope should fail")
	}
	if _, err := w.AddVar(VarWire, 0, "bad"); err == nil {
		t.Error("AddVar with zero width should fail")
	}
	if err := w.AddModule("top"); err != nil {
		t.Fatal(err)
	}
	if err := w.Enddefinitions(); err == nil {
		t.Error("Enddefinitions with open scope should fail")
	}
}

// ============================================================
// Round trip
// ============================================================

const roundTripInput = `$comment regression trace $end
$date today $end
$version vcdflow test $end
$timescale 10ps $end
$scope module top $end
$var wire 1 ! clk $end
$var reg 4 " bus [3:0] $end
$scope module sub $end
$var real 64 # temp $end
$var string 1 $ state $end
$upscope $end
$upscope $end
$enddefinitions $end
#0
$dumpvars
0!
bxxxx "
r25.5 #
sinit $
$end
#10
1!
b10z1 "
$comment checkpoint $end
#20
0!
r26 #
srunning $
`

func readAll(t *testing.T, input string) (*Header, []Event) {
	t.Helper()
	r := NewReader(strings.NewReader(input))
	hdr, err := r.Header()
	if err != nil {
		t.Fatalf("Header failed: %v", err)
	}
	var events []Event
	for {
		ev, err := r.Next()
		if err == io.EOF {
			return hdr, events
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		events = append(events, ev)
	}
}

func writeAll(t *testing.T, hdr *Header, events []Event) string {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteHeader(hdr); err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}
	for _, ev := range events {
		if err := w.WriteEvent(ev); err != nil {
			t.Fatalf("WriteEvent failed: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestWriter_RoundTrip(t *testing.T) {
	hdr1, events1 := readAll(t, roundTripInput)
	out1 := writeAll(t, hdr1, events1)

	hdr2, events2 := readAll(t, out1)

	if hdr2.Comment != hdr1.Comment || hdr2.Date != hdr1.Date || hdr2.Version != hdr1.Version {
		t.Errorf("metadata differs: %+v vs %+v", hdr2, hdr1)
	}
	if *hdr2.Timescale != *hdr1.Timescale {
		t.Errorf("timescale differs: %v vs %v", hdr2.Timescale, hdr1.Timescale)
	}
	vars1, vars2 := hdr1.Vars(), hdr2.Vars()
	if len(vars1) != len(vars2) {
		t.Fatalf("var count %d vs %d", len(vars2), len(vars1))
	}
	for i := range vars1 {
		a, b := vars1[i], vars2[i]
		if a.Type != b.Type || a.Width != b.Width || a.Code != b.Code || a.Reference != b.Reference {
			t.Errorf("var %d differs: %+v vs %+v", i, b, a)
		}
	}
	bus := hdr2.FindVar("top", "bus")
	if bus == nil || bus.Index == nil || bus.Index.String() != "[3:0]" {
		t.Errorf("bus index lost in round trip: %+v", bus)
	}

	if len(events1) != len(events2) {
		t.Fatalf("event count %d vs %d", len(events2), len(events1))
	}
	for i := range events1 {
		if !eventsEqual(events1[i], events2[i]) {
			t.Errorf("event %d differs: %+v vs %+v", i, events2[i], events1[i])
		}
	}

	// Canonical form is a fixed point: writing the re-read stream
	// reproduces the bytes exactly.
	out2 := writeAll(t, hdr2, events2)
	if out1 != out2 {
		t.Errorf("second write differs from first:\n%s\nvs:\n%s", out2, out1)
	}
}

func TestWriter_RoundTripLegacy(t *testing.T) {
	hdr, events := readAll(t, roundTripInput)

	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterIDOrder(OrderLegacy))
	if err := w.WriteHeader(hdr); err != nil {
		t.Fatal(err)
	}
	for _, ev := range events {
		if err := w.WriteEvent(ev); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	r := NewReader(strings.NewReader(buf.String()), WithIDOrder(OrderLegacy))
	hdr2, err := r.Header()
	if err != nil {
		t.Fatalf("Header failed: %v", err)
	}
	if len(hdr2.Vars()) != len(hdr.Vars()) {
		t.Fatalf("var count differs")
	}
	n := 0
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if !eventsEqual(ev, events[n]) {
			t.Errorf("event %d differs: %+v vs %+v", n, ev, events[n])
		}
		n++
	}
	if n != len(events) {
		t.Errorf("got %d events, want %d", n, len(events))
	}
}
