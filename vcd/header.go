package vcd

import (
	"fmt"
	"strconv"
	"strings"
)

// TimescaleUnit is the unit part of a $timescale declaration.
type TimescaleUnit uint8

const (
	TimescaleS TimescaleUnit = iota
	TimescaleMS
	TimescaleUS
	TimescaleNS
	TimescalePS
	TimescaleFS
)

// Divisor returns the number of units per second.
func (u TimescaleUnit) Divisor() uint64 {
	switch u {
	case TimescaleS:
		return 1
	case TimescaleMS:
		return 1_000
	case TimescaleUS:
		return 1_000_000
	case TimescaleNS:
		return 1_000_000_000
	case TimescalePS:
		return 1_000_000_000_000
	default:
		return 1_000_000_000_000_000
	}
}

// Fraction returns the unit length in seconds.
func (u TimescaleUnit) Fraction() float64 {
	return 1.0 / float64(u.Divisor())
}

// String returns the unit suffix as written in the file.
func (u TimescaleUnit) String() string {
	switch u {
	case TimescaleS:
		return "s"
	case TimescaleMS:
		return "ms"
	case TimescaleUS:
		return "us"
	case TimescaleNS:
		return "ns"
	case TimescalePS:
		return "ps"
	case TimescaleFS:
		return "fs"
	default:
		return "?"
	}
}

// ParseTimescaleUnit parses a unit suffix.
func ParseTimescaleUnit(s string) (TimescaleUnit, bool) {
	switch s {
	case "s":
		return TimescaleS, true
	case "ms":
		return TimescaleMS, true
	case "us":
		return TimescaleUS, true
	case "ns":
		return TimescaleNS, true
	case "ps":
		return TimescalePS, true
	case "fs":
		return TimescaleFS, true
	default:
		return 0, false
	}
}

// Timescale is the value+unit pair of a $timescale declaration.
type Timescale struct {
	Value uint32
	Unit  TimescaleUnit
}

// String returns the canonical "1ns" form.
func (t Timescale) String() string {
	return strconv.FormatUint(uint64(t.Value), 10) + t.Unit.String()
}

// ScopeType is the type tag of a $scope declaration.
type ScopeType uint8

const (
	ScopeModule ScopeType = iota
	ScopeTask
	ScopeFunction
	ScopeBegin
	ScopeFork
)

// String returns the type keyword as written in the file.
func (s ScopeType) String() string {
	switch s {
	case ScopeModule:
		return "module"
	case ScopeTask:
		return "task"
	case ScopeFunction:
		return "function"
	case ScopeBegin:
		return "begin"
	case ScopeFork:
		return "fork"
	default:
		return "?"
	}
}

// ParseScopeType parses a scope type keyword.
func ParseScopeType(s string) (ScopeType, bool) {
	switch s {
	case "module":
		return ScopeModule, true
	case "task":
		return ScopeTask, true
	case "function":
		return ScopeFunction, true
	case "begin":
		return ScopeBegin, true
	case "fork":
		return ScopeFork, true
	default:
		return 0, false
	}
}

// VarType is the kind tag of a $var declaration.
type VarType uint8

const (
	VarEvent VarType = iota
	VarInteger
	VarParameter
	VarReal
	VarReg
	VarSupply0
	VarSupply1
	VarTime
	VarTri
	VarTriAnd
	VarTriOr
	VarTriReg
	VarTri0
	VarTri1
	VarWAnd
	VarWire
	VarWOr
	VarString
)

var varTypeNames = [...]string{
	VarEvent:     "event",
	VarInteger:   "integer",
	VarParameter: "parameter",
	VarReal:      "real",
	VarReg:       "reg",
	VarSupply0:   "supply0",
	VarSupply1:   "supply1",
	VarTime:      "time",
	VarTri:       "tri",
	VarTriAnd:    "triand",
	VarTriOr:     "trior",
	VarTriReg:    "trireg",
	VarTri0:      "tri0",
	VarTri1:      "tri1",
	VarWAnd:      "wand",
	VarWire:      "wire",
	VarWOr:       "wor",
	VarString:    "string",
}

// String returns the kind keyword as written in the file.
func (v VarType) String() string {
	if int(v) < len(varTypeNames) {
		return varTypeNames[v]
	}
	return "?"
}

// ParseVarType parses a variable kind keyword.
func ParseVarType(s string) (VarType, bool) {
	for i, name := range varTypeNames {
		if s == name {
			return VarType(i), true
		}
	}
	return 0, false
}

// ReferenceIndex is the optional bit-select [i] or range [msb:lsb]
// suffix on a variable reference.
type ReferenceIndex struct {
	Msb   int32
	Lsb   int32
	Range bool // true for [msb:lsb], false for [i]
}

// String returns the bracketed form.
func (r ReferenceIndex) String() string {
	if r.Range {
		return fmt.Sprintf("[%d:%d]", r.Msb, r.Lsb)
	}
	return fmt.Sprintf("[%d]", r.Msb)
}

// ParseReferenceIndex parses "[i]" or "[msb:lsb]", with or without the
// brackets.
func ParseReferenceIndex(s string) (ReferenceIndex, error) {
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if colon := strings.IndexByte(s, ':'); colon >= 0 {
		msb, err := strconv.ParseInt(strings.TrimSpace(s[:colon]), 10, 32)
		if err != nil {
			return ReferenceIndex{}, &SyntaxError{Reason: "invalid reference index " + s}
		}
		lsb, err := strconv.ParseInt(strings.TrimSpace(s[colon+1:]), 10, 32)
		if err != nil {
			return ReferenceIndex{}, &SyntaxError{Reason: "invalid reference index " + s}
		}
		return ReferenceIndex{Msb: int32(msb), Lsb: int32(lsb), Range: true}, nil
	}
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return ReferenceIndex{}, &SyntaxError{Reason: "invalid reference index " + s}
	}
	return ReferenceIndex{Msb: int32(i)}, nil
}

// Var is a single $var declaration: a named signal bound to an IDCode.
// Immutable once header parsing completes.
type Var struct {
	Type      VarType
	Width     int
	Code      IDCode
	Reference string
	Index     *ReferenceIndex
}

// Scope is a named hierarchical container of declarations.
type Scope struct {
	Type     ScopeType
	Ident    string
	Children []ScopeItem
}

// ScopeItem is one entry in a scope: exactly one of the fields is set.
type ScopeItem struct {
	Scope   *Scope
	Var     *Var
	Comment string
}

// FindVar looks up a direct child variable by reference name.
func (s *Scope) FindVar(reference string) *Var {
	for i := range s.Children {
		if v := s.Children[i].Var; v != nil && v.Reference == reference {
			return v
		}
	}
	return nil
}

// Header holds the parsed declaration section: metadata, the scope
// tree, and the identifier table. Built once by the Reader and
// read-only thereafter.
type Header struct {
	Comment   string
	Date      string
	Version   string
	Timescale *Timescale
	Items     []ScopeItem

	table idTable
}

// LookupID returns the declaration bound to code, or nil if the code
// was never declared.
func (h *Header) LookupID(code IDCode) *Var {
	return h.table.lookup(code)
}

// Vars returns every declared variable in declaration order.
func (h *Header) Vars() []*Var {
	return h.table.all
}

// FindScope walks the scope tree along path and returns the scope it
// ends at, or nil.
func (h *Header) FindScope(path ...string) *Scope {
	if len(path) == 0 {
		return nil
	}
	items := h.Items
	var cur *Scope
	for _, name := range path {
		cur = nil
		for i := range items {
			if sc := items[i].Scope; sc != nil && sc.Ident == name {
				cur = sc
				break
			}
		}
		if cur == nil {
			return nil
		}
		items = cur.Children
	}
	return cur
}

// FindVar resolves a scope path whose last element is a variable
// reference, e.g. FindVar("top", "clock").
func (h *Header) FindVar(path ...string) *Var {
	if len(path) == 0 {
		return nil
	}
	if len(path) == 1 {
		for i := range h.Items {
			if v := h.Items[i].Var; v != nil && v.Reference == path[0] {
				return v
			}
		}
		return nil
	}
	scope := h.FindScope(path[:len(path)-1]...)
	if scope == nil {
		return nil
	}
	return scope.FindVar(path[len(path)-1])
}

// maxDenseCode bounds the array-indexed part of the identifier table.
// Naturally ordered files assign codes densely from zero, so lookups
// stay O(1) slice indexing; anything beyond spills to a map.
const maxDenseCode = 1 << 21

// idTable maps IDCodes to their declarations. Dense codes use direct
// slice indexing, sparse codes a map.
type idTable struct {
	dense  []*Var
	sparse map[IDCode]*Var
	all    []*Var
}

func (t *idTable) add(v *Var) {
	t.all = append(t.all, v)
	if v.Code < maxDenseCode {
		for int(v.Code) >= len(t.dense) {
			t.dense = append(t.dense, nil)
		}
		t.dense[v.Code] = v
		return
	}
	if t.sparse == nil {
		t.sparse = make(map[IDCode]*Var)
	}
	t.sparse[v.Code] = v
}

func (t *idTable) lookup(code IDCode) *Var {
	if code < maxDenseCode {
		if int(code) < len(t.dense) {
			return t.dense[code]
		}
		return nil
	}
	return t.sparse[code]
}
