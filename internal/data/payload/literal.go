package payload

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/penwyp/go-sensor-verify/internal/core/model"
)

// decoder is a recursive-descent reader over one payload cell. It accepts
// strict JSON and the looser literal dialect the upstream producers emit:
// single-quoted strings, True/False/None, tuples, trailing commas. Key
// order of mappings is preserved.
type decoder struct {
	s string
	i int
}

func decodeLiteral(s string) (*model.Value, error) {
	d := &decoder{s: s}
	d.skipSpace()
	v, err := d.value()
	if err != nil {
		return nil, err
	}
	d.skipSpace()
	if d.i != len(d.s) {
		return nil, fmt.Errorf("trailing data at offset %d", d.i)
	}
	return v, nil
}

func (d *decoder) skipSpace() {
	for d.i < len(d.s) {
		switch d.s[d.i] {
		case ' ', '\t', '\n', '\r':
			d.i++
		default:
			return
		}
	}
}

func (d *decoder) value() (*model.Value, error) {
	if d.i >= len(d.s) {
		return nil, fmt.Errorf("unexpected end of input")
	}
	switch c := d.s[d.i]; {
	case c == '{':
		return d.mapping()
	case c == '[':
		return d.sequence(']')
	case c == '(':
		return d.sequence(')')
	case c == '"' || c == '\'':
		str, err := d.quoted()
		if err != nil {
			return nil, err
		}
		return model.String(str), nil
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return d.number()
	default:
		return d.keyword()
	}
}

func (d *decoder) mapping() (*model.Value, error) {
	d.i++ // consume '{'
	m := model.NewMapping()
	d.skipSpace()
	if d.i < len(d.s) && d.s[d.i] == '}' {
		d.i++
		return m, nil
	}
	for {
		d.skipSpace()
		key, err := d.mappingKey()
		if err != nil {
			return nil, err
		}
		d.skipSpace()
		if d.i >= len(d.s) || d.s[d.i] != ':' {
			return nil, fmt.Errorf("expected ':' at offset %d", d.i)
		}
		d.i++
		d.skipSpace()
		val, err := d.value()
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
		d.skipSpace()
		if d.i >= len(d.s) {
			return nil, fmt.Errorf("unterminated mapping")
		}
		switch d.s[d.i] {
		case ',':
			d.i++
			d.skipSpace()
			// trailing comma before the closing brace
			if d.i < len(d.s) && d.s[d.i] == '}' {
				d.i++
				return m, nil
			}
		case '}':
			d.i++
			return m, nil
		default:
			return nil, fmt.Errorf("expected ',' or '}' at offset %d", d.i)
		}
	}
}

// mappingKey reads a key. Keys are normally quoted strings, but numeric
// or bare-word keys occur in the looser dialect and are kept as their
// textual form.
func (d *decoder) mappingKey() (string, error) {
	if d.i >= len(d.s) {
		return "", fmt.Errorf("unexpected end of input in mapping key")
	}
	c := d.s[d.i]
	if c == '"' || c == '\'' {
		return d.quoted()
	}
	v, err := d.value()
	if err != nil {
		return "", err
	}
	s, ok := v.AsString()
	if !ok {
		return "", fmt.Errorf("unsupported mapping key at offset %d", d.i)
	}
	return s, nil
}

func (d *decoder) sequence(close byte) (*model.Value, error) {
	d.i++ // consume opener
	seq := model.NewSequence()
	d.skipSpace()
	if d.i < len(d.s) && d.s[d.i] == close {
		d.i++
		return seq, nil
	}
	for {
		d.skipSpace()
		val, err := d.value()
		if err != nil {
			return nil, err
		}
		seq.Append(val)
		d.skipSpace()
		if d.i >= len(d.s) {
			return nil, fmt.Errorf("unterminated sequence")
		}
		switch d.s[d.i] {
		case ',':
			d.i++
			d.skipSpace()
			if d.i < len(d.s) && d.s[d.i] == close {
				d.i++
				return seq, nil
			}
		case close:
			d.i++
			return seq, nil
		default:
			return nil, fmt.Errorf("expected ',' or %q at offset %d", string(close), d.i)
		}
	}
}

func (d *decoder) quoted() (string, error) {
	quote := d.s[d.i]
	d.i++
	var b strings.Builder
	for d.i < len(d.s) {
		c := d.s[d.i]
		switch c {
		case quote:
			d.i++
			return b.String(), nil
		case '\\':
			d.i++
			if d.i >= len(d.s) {
				return "", fmt.Errorf("unterminated escape")
			}
			esc := d.s[d.i]
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case '/':
				b.WriteByte('/')
			case '\\', '"', '\'':
				b.WriteByte(esc)
			case 'u':
				r, err := d.unicodeEscape()
				if err != nil {
					return "", err
				}
				b.WriteRune(r)
				continue
			default:
				// keep unknown escapes verbatim
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
			d.i++
		default:
			b.WriteByte(c)
			d.i++
		}
	}
	return "", fmt.Errorf("unterminated string")
}

// unicodeEscape decodes \uXXXX, pairing surrogates when both halves are
// present. d.i points at the 'u' on entry and past the escape on return.
func (d *decoder) unicodeEscape() (rune, error) {
	if d.i+4 >= len(d.s) {
		return 0, fmt.Errorf("truncated unicode escape")
	}
	n, err := strconv.ParseUint(d.s[d.i+1:d.i+5], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid unicode escape: %w", err)
	}
	d.i += 5
	r := rune(n)
	if utf16.IsSurrogate(r) && d.i+5 < len(d.s) && d.s[d.i] == '\\' && d.s[d.i+1] == 'u' {
		n2, err := strconv.ParseUint(d.s[d.i+2:d.i+6], 16, 32)
		if err == nil {
			if paired := utf16.DecodeRune(r, rune(n2)); paired != 0xFFFD {
				d.i += 6
				return paired, nil
			}
		}
	}
	return r, nil
}

func (d *decoder) number() (*model.Value, error) {
	start := d.i
	if d.s[d.i] == '-' || d.s[d.i] == '+' {
		d.i++
	}
	for d.i < len(d.s) {
		c := d.s[d.i]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' {
			d.i++
			continue
		}
		if (c == '-' || c == '+') && d.i > start && (d.s[d.i-1] == 'e' || d.s[d.i-1] == 'E') {
			d.i++
			continue
		}
		break
	}
	f, err := strconv.ParseFloat(d.s[start:d.i], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", d.s[start:d.i])
	}
	return model.Number(f), nil
}

func (d *decoder) keyword() (*model.Value, error) {
	start := d.i
	for d.i < len(d.s) {
		c := d.s[d.i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' {
			d.i++
			continue
		}
		break
	}
	switch d.s[start:d.i] {
	case "true", "True":
		return model.Bool(true), nil
	case "false", "False":
		return model.Bool(false), nil
	case "null", "None":
		return model.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token at offset %d", start)
}
