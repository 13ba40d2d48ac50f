// Package vcd reads and writes VCD (Value Change Dump) files, the
// line-oriented trace format emitted by HDL simulators and consumed by
// waveform viewers and logic analyzers.
//
// The package is built around three pieces:
//   - A streaming Reader that parses the declaration header once, then
//     yields value-change events one at a time, pull-based.
//   - A Writer that is the exact inverse: given a header and an event
//     sequence it reproduces the textual encoding.
//   - Compact in-process representations: dense integer identifier codes,
//     2-bit-per-symbol packed vectors, and small-buffer strings.
//
// # Scanning Modes
//
// The value-change section is scanned in one of two ways. The fast
// scanner assumes the strict formatting that the major simulators emit
// (one token group per line, single-space separators, LF terminators,
// no blank lines) and refuses anything else with a FastPathViolationError.
// The fallback scanner is a general whitespace-run tokenizer that accepts
// any legal spacing, blank lines, and interleaved comments.
//
// In ModeAuto (the default) the Reader starts on the fast scanner and
// permanently drops to the fallback scanner on the first violation,
// re-scanning the offending line so no event is lost. In ModeFast the
// violation is surfaced to the caller, who may call Reader.UseFallback
// and retry from the same unread bytes.
//
// # Identifier Order
//
// Signal identifiers are short printable tokens over the 94-character
// alphabet '!'..'~', bijective with dense integers. Two byte orders are
// in the wild: OrderNatural decodes most-significant-symbol-first, so the
// tokens a generator assigns sequentially decode to sequential integers;
// OrderLegacy is least-significant-first for compatibility with older
// producers. The order is a property of a Reader or Writer instance.
//
// # Example
//
//	r := vcd.NewReader(f)
//	hdr, err := r.Header()
//	if err != nil { ... }
//	for {
//		ev, err := r.Next()
//		if err == io.EOF {
//			break
//		}
//		if err != nil { ... }
//		switch ev.Kind {
//		case vcd.EventTimestamp:
//			t = ev.Time
//		case vcd.EventScalar:
//			update(ev.ID, ev.Scalar)
//		}
//	}
package vcd
