package ndt

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse builds a Type from a type-string in the small subset of the
// ndtypes grammar spec §8's end-to-end examples use:
//
//	3 * 2 * 2 * uint16
//	3 * var(2,3,1) * var(2,2,3,1,1,2) * uint16
//	?uint16
//	(int32, float64)
//	{x: int32, y: float64}
//
// It is not a general-purpose type-description-language parser; it
// exists to make the worked examples and tests expressible as plain
// strings instead of hand-built Type graphs.
func Parse(s string) (*Type, error) {
	toks := tokenize(s)
	p := &parser{toks: toks}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("ndt: Parse %q: unexpected trailing input at %q", s, p.toks[p.pos])
	}
	return t, nil
}

type parser struct {
	toks []string
	pos  int
}

func tokenize(s string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n':
			flush()
		case strings.ContainsRune("*(){},:?", r):
			flush()
			toks = append(toks, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

func (p *parser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

func (p *parser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) expect(tok string) error {
	if p.peek() != tok {
		return fmt.Errorf("ndt: Parse: expected %q, got %q", tok, p.peek())
	}
	p.pos++
	return nil
}

func isNumberToken(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func (p *parser) parseType() (*Type, error) {
	optional := false
	if p.peek() == "?" {
		p.next()
		optional = true
	}

	if isNumberToken(p.peek()) || p.peek() == "var" {
		return p.parseDim(optional)
	}
	switch p.peek() {
	case "(":
		return p.parseTuple(optional)
	case "{":
		return p.parseRecord(optional)
	default:
		return p.parseScalar(optional)
	}
}

func flagsFor(optional bool) Flags {
	f := FlagLittleEndian
	if optional {
		f |= FlagOptional
	}
	return f
}

func (p *parser) parseDim(optional bool) (*Type, error) {
	// A var() without a count prefix (a nested ragged dimension) skips
	// the row-count check below.
	n := int64(-1)
	if p.peek() != "var" {
		nTok := p.next()
		var err error
		n, err = strconv.ParseInt(nTok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ndt: Parse: invalid dimension count %q", nTok)
		}
		if err := p.expect("*"); err != nil {
			return nil, err
		}
	}

	if p.peek() == "var" {
		p.next()
		if err := p.expect("("); err != nil {
			return nil, err
		}
		lengths, err := p.parseNumberList()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		if n >= 0 && int64(len(lengths)) != n {
			return nil, fmt.Errorf("ndt: Parse: var() row count %d does not match prefix %d", len(lengths), n)
		}
		if err := p.expect("*"); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return NewVarDimFromLengths(lengths, elem, flagsFor(optional)), nil
	}

	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return NewFixedDim(n, elem, flagsFor(optional)), nil
}

func (p *parser) parseNumberList() ([]int64, error) {
	var out []int64
	for {
		tok := p.peek()
		if !isNumberToken(tok) {
			return nil, fmt.Errorf("ndt: Parse: expected number, got %q", tok)
		}
		n, _ := strconv.ParseInt(p.next(), 10, 64)
		out = append(out, n)
		if p.peek() == "," {
			p.next()
			continue
		}
		return out, nil
	}
}

func (p *parser) parseTuple(optional bool) (*Type, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var types []*Type
	for p.peek() != ")" {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		if p.peek() == "," {
			p.next()
			continue
		}
		break
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return NewTuple(types, flagsFor(optional)), nil
}

func (p *parser) parseRecord(optional bool) (*Type, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	var names []string
	var types []*Type
	for p.peek() != "}" {
		name := p.next()
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		types = append(types, t)
		if p.peek() == "," {
			p.next()
			continue
		}
		break
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return NewRecord(names, types, flagsFor(optional)), nil
}

var scalarCtors = map[string]func(Flags) *Type{
	"bool":       NewBool,
	"int8":       NewInt8,
	"int16":      NewInt16,
	"int32":      NewInt32,
	"int64":      NewInt64,
	"uint8":      NewUint8,
	"uint16":     NewUint16,
	"uint32":     NewUint32,
	"uint64":     NewUint64,
	"bfloat16":   NewBFloat16,
	"float16":    NewFloat16,
	"float32":    NewFloat32,
	"float64":    NewFloat64,
	"bcomplex32": NewBComplex32,
	"complex32":  NewComplex32,
	"complex64":  NewComplex64,
	"complex128": NewComplex128,
	"string":     NewString,
	"bytes":      NewBytes,
	"char":       NewChar,
}

func (p *parser) parseScalar(optional bool) (*Type, error) {
	name := p.next()

	if ctor, ok := scalarCtors[name]; ok {
		return ctor(flagsFor(optional)), nil
	}

	switch name {
	case "fixed_string":
		if err := p.expect("("); err != nil {
			return nil, err
		}
		nTok := p.next()
		n, err := strconv.ParseInt(nTok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ndt: Parse: invalid fixed_string length %q", nTok)
		}
		enc := UTF8
		if p.peek() == "," {
			p.next()
			encTok := p.next()
			switch encTok {
			case "ascii":
				enc = ASCII
			case "utf8":
				enc = UTF8
			case "utf16":
				enc = UTF16
			case "utf32":
				enc = UTF32
			case "ucs2":
				enc = UCS2
			default:
				return nil, fmt.Errorf("ndt: Parse: unknown encoding %q", encTok)
			}
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return NewFixedString(n, enc, flagsFor(optional)), nil

	case "fixed_bytes":
		if err := p.expect("("); err != nil {
			return nil, err
		}
		nTok := p.next()
		n, err := strconv.ParseInt(nTok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ndt: Parse: invalid fixed_bytes length %q", nTok)
		}
		var align int64 = 1
		if p.peek() == "," {
			p.next()
			aTok := p.next()
			align, err = strconv.ParseInt(aTok, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("ndt: Parse: invalid fixed_bytes align %q", aTok)
			}
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return NewFixedBytes(n, uint16(align), flagsFor(optional)), nil

	default:
		return nil, fmt.Errorf("ndt: Parse: unknown type name %q", name)
	}
}
