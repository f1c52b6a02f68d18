package params

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/parser/lexer"
)

// ParseLiteral converts a literal expression into a Go value. Only numbers,
// strings, booleans, nil and (possibly nested) lists or tuples of those are
// accepted; nothing is evaluated.
//
//	42          -> int
//	-1.5e3      -> float64
//	'text'      -> string
//	True, false -> bool
//	None, nil   -> nil
//	(1, 2, 3)   -> []any
//	[0.5, 'a']  -> []any
//	-inf, nan   -> float64
//
// Integers parse as int, or uint64 above math.MaxInt64; parameters declaring
// another integer type convert them when the value fits.
func ParseLiteral(src string) (any, error) {
	tokens, err := lexer.Lex(file.NewSource(src))
	if err != nil {
		return nil, fmt.Errorf("params: literal %q: %w", src, err)
	}
	p := &literalParser{src: src, tokens: tokens}
	value, err := p.value()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != lexer.EOF {
		return nil, p.unexpected(tok)
	}
	return value, nil
}

type literalParser struct {
	src    string
	tokens []lexer.Token
	pos    int
}

func (p *literalParser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *literalParser) next() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *literalParser) unexpected(tok lexer.Token) error {
	if tok.Kind == lexer.EOF {
		return fmt.Errorf("params: literal %q: unexpected end of input", p.src)
	}
	return fmt.Errorf("params: literal %q: unexpected %s", p.src, tok)
}

func (p *literalParser) value() (any, error) {
	tok := p.next()
	switch tok.Kind {
	case lexer.Number:
		return parseNumber(tok.Value, false)
	case lexer.String:
		return tok.Value, nil
	case lexer.Operator:
		if tok.Value != "-" && tok.Value != "+" {
			return nil, p.unexpected(tok)
		}
		num := p.next()
		if num.Kind == lexer.Identifier && strings.EqualFold(num.Value, "inf") {
			if tok.Value == "-" {
				return math.Inf(-1), nil
			}
			return math.Inf(1), nil
		}
		if num.Kind != lexer.Number {
			return nil, p.unexpected(num)
		}
		return parseNumber(num.Value, tok.Value == "-")
	case lexer.Identifier:
		switch {
		case strings.EqualFold(tok.Value, "inf"):
			return math.Inf(1), nil
		case strings.EqualFold(tok.Value, "nan"):
			return math.NaN(), nil
		}
		switch tok.Value {
		case "true", "True":
			return true, nil
		case "false", "False":
			return false, nil
		case "nil", "None", "null":
			return nil, nil
		}
		return nil, fmt.Errorf("params: literal %q: identifier %q is not a literal", p.src, tok.Value)
	case lexer.Bracket:
		switch tok.Value {
		case "[":
			items, _, err := p.sequence("]")
			return items, err
		case "(":
			items, trailing, err := p.sequence(")")
			if err != nil {
				return nil, err
			}
			if len(items) == 1 && !trailing {
				return items[0], nil
			}
			return items, nil
		}
	}
	return nil, p.unexpected(tok)
}

// sequence parses comma separated values up to closing. The second result
// reports whether a comma was seen, which distinguishes (x,) from (x).
func (p *literalParser) sequence(closing string) ([]any, bool, error) {
	items := []any{}
	comma := false
	for {
		if tok := p.peek(); tok.Is(lexer.Bracket, closing) {
			p.next()
			return items, comma, nil
		}
		item, err := p.value()
		if err != nil {
			return nil, false, err
		}
		items = append(items, item)
		tok := p.next()
		switch {
		case tok.Is(lexer.Operator, ","):
			comma = true
		case tok.Is(lexer.Bracket, closing):
			return items, comma, nil
		default:
			return nil, false, p.unexpected(tok)
		}
	}
}

func parseNumber(raw string, negative bool) (any, error) {
	clean := strings.ReplaceAll(raw, "_", "")
	if negative {
		clean = "-" + clean
	}
	if i, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return int(i), nil
	}
	if !negative {
		if u, err := strconv.ParseUint(clean, 0, 64); err == nil {
			return u, nil
		}
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil, fmt.Errorf("params: bad number %q", raw)
	}
	return f, nil
}

// Repr renders value so that ParseLiteral(Repr(value)) reproduces it. Maps
// render with sorted keys and are informational only.
func Repr(value any) string {
	var b strings.Builder
	writeRepr(&b, value)
	return b.String()
}

func writeRepr(b *strings.Builder, value any) {
	switch v := value.(type) {
	case nil:
		b.WriteString("nil")
	case string:
		b.WriteString(strconv.Quote(v))
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case int, int8, int16, int32, int64:
		b.WriteString(strconv.FormatInt(reflect.ValueOf(v).Int(), 10))
	case uint, uint8, uint16, uint32, uint64, uintptr:
		b.WriteString(strconv.FormatUint(reflect.ValueOf(v).Uint(), 10))
	case float32:
		writeFloat(b, float64(v))
	case float64:
		writeFloat(b, v)
	case Color:
		writeRepr(b, v.RGB())
	case AutoColor:
		writeRepr(b, v.RGB())
	case ErrorMode:
		b.WriteString(strconv.Quote(v.String()))
	case Handle:
		b.WriteString(v.String())
	case *Container:
		b.WriteString("{")
		for i, key := range v.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(key)
			b.WriteString("=")
			writeRepr(b, v.Get(key))
		}
		b.WriteString("}")
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		b.WriteString("{")
		for i, key := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(key))
			b.WriteString(": ")
			writeRepr(b, v[key])
		}
		b.WriteString("}")
	default:
		if isSequence(v) {
			b.WriteString("[")
			for i, item := range sequenceElements(v) {
				if i > 0 {
					b.WriteString(", ")
				}
				writeRepr(b, item)
			}
			b.WriteString("]")
			return
		}
		if s, ok := value.(fmt.Stringer); ok {
			b.WriteString(strconv.Quote(s.String()))
			return
		}
		b.WriteString(fmt.Sprintf("%#v", value))
	}
}

func writeFloat(b *strings.Builder, f float64) {
	switch {
	case math.IsNaN(f):
		b.WriteString("nan")
		return
	case math.IsInf(f, 1):
		b.WriteString("inf")
		return
	case math.IsInf(f, -1):
		b.WriteString("-inf")
		return
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	b.WriteString(s)
}
