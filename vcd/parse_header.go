package vcd

import (
	"io"
	"strconv"
	"strings"
)

// headerParser consumes the declarations section keyword by keyword.
type headerParser struct {
	t     *tokenizer
	order IDOrder
	h     *Header
	stack []*Scope
}

// parseHeader reads everything up to and including $enddefinitions and
// builds the Header and identifier table.
func parseHeader(t *tokenizer, order IDOrder) (*Header, error) {
	p := &headerParser{t: t, order: order, h: &Header{}}
	for {
		tok, err := t.next()
		if err == io.EOF {
			return nil, &MalformedHeaderError{Reason: "missing $enddefinitions"}
		}
		if err != nil {
			return nil, err
		}
		switch string(tok) {
		case "$date":
			text, err := p.textUntilEnd("$date")
			if err != nil {
				return nil, err
			}
			p.h.Date = text
		case "$version":
			text, err := p.textUntilEnd("$version")
			if err != nil {
				return nil, err
			}
			p.h.Version = text
		case "$comment":
			text, err := p.textUntilEnd("$comment")
			if err != nil {
				return nil, err
			}
			p.addComment(text)
		case "$timescale":
			if err := p.parseTimescale(); err != nil {
				return nil, err
			}
		case "$scope":
			if err := p.parseScope(); err != nil {
				return nil, err
			}
		case "$upscope":
			if len(p.stack) == 0 {
				return nil, &MalformedHeaderError{Reason: "$upscope without matching $scope"}
			}
			if err := p.expectEnd("$upscope"); err != nil {
				return nil, err
			}
			p.stack = p.stack[:len(p.stack)-1]
		case "$var":
			if err := p.parseVar(); err != nil {
				return nil, err
			}
		case "$enddefinitions":
			if err := p.expectEnd("$enddefinitions"); err != nil {
				return nil, err
			}
			if len(p.stack) != 0 {
				return nil, &MalformedHeaderError{Reason: "unclosed $scope at $enddefinitions"}
			}
			return p.h, nil
		default:
			return nil, &MalformedHeaderError{Reason: "unknown command " + string(tok) + " in declarations"}
		}
	}
}

// textUntilEnd collects tokens up to $end, joined by single spaces.
func (p *headerParser) textUntilEnd(ctx string) (string, error) {
	var sb strings.Builder
	for {
		tok, err := p.t.next()
		if err == io.EOF {
			return "", &UnexpectedEOFError{Context: ctx}
		}
		if err != nil {
			return "", err
		}
		if string(tok) == "$end" {
			return sb.String(), nil
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.Write(tok)
	}
}

func (p *headerParser) expectEnd(ctx string) error {
	tok, err := p.t.next()
	if err == io.EOF {
		return &UnexpectedEOFError{Context: ctx}
	}
	if err != nil {
		return err
	}
	if string(tok) != "$end" {
		return &MalformedHeaderError{Reason: "expected $end after " + ctx}
	}
	return nil
}

func (p *headerParser) addComment(text string) {
	if len(p.stack) == 0 {
		if p.h.Comment == "" {
			p.h.Comment = text
			return
		}
		p.h.Items = append(p.h.Items, ScopeItem{Comment: text})
		return
	}
	top := p.stack[len(p.stack)-1]
	top.Children = append(top.Children, ScopeItem{Comment: text})
}

// parseTimescale accepts both "$timescale 1ns $end" and
// "$timescale 1 ns $end".
func (p *headerParser) parseTimescale() error {
	text, err := p.textUntilEnd("$timescale")
	if err != nil {
		return err
	}
	compact := strings.ReplaceAll(text, " ", "")
	digits := 0
	for digits < len(compact) && compact[digits] >= '0' && compact[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return &MalformedHeaderError{Reason: "invalid $timescale value " + strconv.Quote(text)}
	}
	value, err := strconv.ParseUint(compact[:digits], 10, 32)
	if err != nil {
		return &MalformedHeaderError{Reason: "invalid $timescale value " + strconv.Quote(text)}
	}
	unit, ok := ParseTimescaleUnit(compact[digits:])
	if !ok {
		return &MalformedHeaderError{Reason: "invalid $timescale unit " + strconv.Quote(text)}
	}
	p.h.Timescale = &Timescale{Value: uint32(value), Unit: unit}
	return nil
}

func (p *headerParser) parseScope() error {
	typTok, err := p.t.next()
	if err == io.EOF {
		return &UnexpectedEOFError{Context: "$scope"}
	}
	if err != nil {
		return err
	}
	typ, ok := ParseScopeType(string(typTok))
	if !ok {
		return &MalformedHeaderError{Reason: "invalid scope type " + string(typTok)}
	}
	nameTok, err := p.t.next()
	if err == io.EOF {
		return &UnexpectedEOFError{Context: "$scope"}
	}
	if err != nil {
		return err
	}
	scope := &Scope{Type: typ, Ident: string(nameTok)}
	if err := p.expectEnd("$scope"); err != nil {
		return err
	}
	if len(p.stack) == 0 {
		p.h.Items = append(p.h.Items, ScopeItem{Scope: scope})
	} else {
		top := p.stack[len(p.stack)-1]
		top.Children = append(top.Children, ScopeItem{Scope: scope})
	}
	p.stack = append(p.stack, scope)
	return nil
}

func (p *headerParser) parseVar() error {
	tokens := make([]string, 0, 5)
	for {
		tok, err := p.t.next()
		if err == io.EOF {
			return &UnexpectedEOFError{Context: "$var"}
		}
		if err != nil {
			return err
		}
		if string(tok) == "$end" {
			break
		}
		tokens = append(tokens, string(tok))
	}
	if len(tokens) < 4 {
		return &MalformedHeaderError{Reason: "incomplete $var declaration"}
	}
	typ, ok := ParseVarType(tokens[0])
	if !ok {
		return &MalformedHeaderError{Reason: "invalid variable type " + tokens[0]}
	}
	width, err := strconv.Atoi(tokens[1])
	if err != nil || width < 1 {
		return &MalformedHeaderError{Reason: "invalid variable width " + tokens[1]}
	}
	code, err := DecodeID([]byte(tokens[2]), p.order)
	if err != nil {
		return err
	}
	v := &Var{
		Type:      typ,
		Width:     width,
		Code:      code,
		Reference: tokens[3],
	}
	if len(tokens) == 5 {
		idx, err := ParseReferenceIndex(tokens[4])
		if err != nil {
			return &MalformedHeaderError{Reason: "invalid reference index " + tokens[4]}
		}
		v.Index = &idx
	} else if len(tokens) > 5 {
		return &MalformedHeaderError{Reason: "trailing tokens in $var declaration"}
	}
	if len(p.stack) == 0 {
		p.h.Items = append(p.h.Items, ScopeItem{Var: v})
	} else {
		top := p.stack[len(p.stack)-1]
		top.Children = append(top.Children, ScopeItem{Var: v})
	}
	p.h.table.add(v)
	return nil
}
