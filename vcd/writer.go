package vcd

import (
	"bufio"
	"errors"
	"io"
	"strconv"
)

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterIDOrder selects the identifier byte order used when
// emitting tokens (default OrderNatural).
func WithWriterIDOrder(o IDOrder) WriterOption {
	return func(w *Writer) { w.order = o }
}

// Writer serializes a header and an event sequence back into VCD text.
// For any header+events pair obtained from a successful read, writing
// and re-reading yields the identical header fields and event sequence,
// and a second write reproduces the bytes exactly.
//
// Writer also carries a builder API (AddModule, AddWire, ...) for
// producing files from scratch; it assigns identifier codes
// sequentially starting from FirstIDCode.
type Writer struct {
	bw      *bufio.Writer
	order   IDOrder
	scratch []byte

	nextCode   IDCode
	scopeDepth int
}

// NewWriter creates a Writer on w.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	wr := &Writer{bw: bufio.NewWriter(w), order: OrderNatural}
	for _, opt := range opts {
		opt(wr)
	}
	return wr
}

// Flush writes any buffered output to the underlying sink.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// WriteHeader emits the full declarations section for h, terminated by
// $enddefinitions, using the configured identifier order.
func (w *Writer) WriteHeader(h *Header) error {
	if h.Comment != "" {
		if err := w.Comment(h.Comment); err != nil {
			return err
		}
	}
	if h.Date != "" {
		if err := w.Date(h.Date); err != nil {
			return err
		}
	}
	if h.Version != "" {
		if err := w.Version(h.Version); err != nil {
			return err
		}
	}
	if h.Timescale != nil {
		if err := w.Timescale(h.Timescale.Value, h.Timescale.Unit); err != nil {
			return err
		}
	}
	if err := w.writeItems(h.Items); err != nil {
		return err
	}
	return w.Enddefinitions()
}

func (w *Writer) writeItems(items []ScopeItem) error {
	for i := range items {
		item := &items[i]
		switch {
		case item.Scope != nil:
			sc := item.Scope
			if err := w.AddScope(sc.Type, sc.Ident); err != nil {
				return err
			}
			if err := w.writeItems(sc.Children); err != nil {
				return err
			}
			if err := w.Upscope(); err != nil {
				return err
			}
		case item.Var != nil:
			if err := w.writeVar(item.Var); err != nil {
				return err
			}
		default:
			if err := w.Comment(item.Comment); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) writeVar(v *Var) error {
	buf := w.scratch[:0]
	buf = append(buf, "$var "...)
	buf = append(buf, v.Type.String()...)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(v.Width), 10)
	buf = append(buf, ' ')
	buf = AppendID(buf, v.Code, w.order)
	buf = append(buf, ' ')
	buf = append(buf, v.Reference...)
	if v.Index != nil {
		buf = append(buf, ' ')
		buf = append(buf, v.Index.String()...)
	}
	buf = append(buf, " $end\n"...)
	w.scratch = buf
	_, err := w.bw.Write(buf)
	return err
}

// WriteEvent emits one line for ev in the textual encoding the scanners
// consume.
func (w *Writer) WriteEvent(ev Event) error {
	buf := w.scratch[:0]
	switch ev.Kind {
	case EventTimestamp:
		buf = append(buf, '#')
		buf = strconv.AppendUint(buf, ev.Time, 10)
	case EventScalar:
		buf = append(buf, ev.Scalar.byteFor())
		buf = AppendID(buf, ev.ID, w.order)
	case EventVector:
		buf = append(buf, 'b')
		buf = ev.Vector.appendBits(buf)
		buf = append(buf, ' ')
		buf = AppendID(buf, ev.ID, w.order)
	case EventReal:
		buf = append(buf, 'r')
		buf = strconv.AppendFloat(buf, ev.Real, 'g', -1, 64)
		buf = append(buf, ' ')
		buf = AppendID(buf, ev.ID, w.order)
	case EventString:
		buf = append(buf, 's')
		buf = append(buf, ev.Str.Bytes()...)
		buf = append(buf, ' ')
		buf = AppendID(buf, ev.ID, w.order)
	case EventBegin:
		buf = append(buf, '$')
		buf = append(buf, ev.Cmd.String()...)
	case EventEnd:
		buf = append(buf, "$end"...)
	case EventComment:
		buf = append(buf, "$comment "...)
		buf = append(buf, ev.Str.Bytes()...)
		buf = append(buf, " $end"...)
	default:
		return errors.New("vcd: unknown event kind")
	}
	buf = append(buf, '\n')
	w.scratch = buf
	_, err := w.bw.Write(buf)
	return err
}

// ============================================================
// Builder API
// ============================================================

func (w *Writer) writeTextCommand(keyword, text string) error {
	if _, err := w.bw.WriteString("$" + keyword + " " + text + " $end\n"); err != nil {
		return err
	}
	return nil
}

// Comment writes a $comment command.
func (w *Writer) Comment(text string) error {
	return w.writeTextCommand("comment", text)
}

// Date writes a $date command.
func (w *Writer) Date(text string) error {
	return w.writeTextCommand("date", text)
}

// Version writes a $version command.
func (w *Writer) Version(text string) error {
	return w.writeTextCommand("version", text)
}

// Timescale writes a $timescale command.
func (w *Writer) Timescale(value uint32, unit TimescaleUnit) error {
	return w.writeTextCommand("timescale", Timescale{Value: value, Unit: unit}.String())
}

// AddScope opens a scope of the given type.
func (w *Writer) AddScope(typ ScopeType, ident string) error {
	w.scopeDepth++
	return w.writeTextCommand("scope", typ.String()+" "+ident)
}

// AddModule opens a module scope.
func (w *Writer) AddModule(ident string) error {
	return w.AddScope(ScopeModule, ident)
}

// Upscope closes the innermost open scope.
func (w *Writer) Upscope() error {
	if w.scopeDepth == 0 {
		return errors.New("vcd: $upscope without open scope")
	}
	w.scopeDepth--
	if _, err := w.bw.WriteString("$upscope $end\n"); err != nil {
		return err
	}
	return nil
}

// AddVar declares a variable, assigning it the next sequential IDCode.
func (w *Writer) AddVar(typ VarType, width int, reference string) (IDCode, error) {
	if width < 1 {
		return 0, errors.New("vcd: variable width must be at least 1")
	}
	code := w.nextCode
	w.nextCode = w.nextCode.Next()
	v := Var{Type: typ, Width: width, Code: code, Reference: reference}
	if err := w.writeVar(&v); err != nil {
		return 0, err
	}
	return code, nil
}

// AddWire declares a wire variable.
func (w *Writer) AddWire(width int, reference string) (IDCode, error) {
	return w.AddVar(VarWire, width, reference)
}

// Enddefinitions terminates the declarations section.
func (w *Writer) Enddefinitions() error {
	if w.scopeDepth != 0 {
		return errors.New("vcd: $enddefinitions with open scope")
	}
	if _, err := w.bw.WriteString("$enddefinitions $end\n"); err != nil {
		return err
	}
	return nil
}

// Timestamp writes a #t time marker.
func (w *Writer) Timestamp(t uint64) error {
	return w.WriteEvent(Event{Kind: EventTimestamp, Time: t})
}

// ChangeScalar writes a scalar value change.
func (w *Writer) ChangeScalar(id IDCode, v Value) error {
	return w.WriteEvent(Event{Kind: EventScalar, ID: id, Scalar: v})
}

// ChangeVector writes a vector value change.
func (w *Writer) ChangeVector(id IDCode, v VecValue) error {
	return w.WriteEvent(Event{Kind: EventVector, ID: id, Vector: v})
}

// ChangeReal writes a real value change.
func (w *Writer) ChangeReal(id IDCode, v float64) error {
	return w.WriteEvent(Event{Kind: EventReal, ID: id, Real: v})
}

// ChangeString writes a string value change.
func (w *Writer) ChangeString(id IDCode, s string) error {
	return w.WriteEvent(Event{Kind: EventString, ID: id, Str: MakeCompactStr(s)})
}

// Begin opens a dump-state section.
func (w *Writer) Begin(cmd SimCommand) error {
	return w.WriteEvent(Event{Kind: EventBegin, Cmd: cmd})
}

// End closes a dump-state section.
func (w *Writer) End(cmd SimCommand) error {
	return w.WriteEvent(Event{Kind: EventEnd, Cmd: cmd})
}
