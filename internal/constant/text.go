package constant

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders c as a single-line s-expression, e.g. list(int(1) str("a")).
// Used by the program package's text serialisation of the list-constant pool.
func Format(c Constant) string {
	switch c.Kind {
	case KindString:
		return fmt.Sprintf("str(%s)", strconv.Quote(c.Str))
	case KindInteger:
		return fmt.Sprintf("int(%d)", c.Int)
	case KindUnsignedInteger:
		return fmt.Sprintf("uint(%d)", c.UInt)
	case KindFloat:
		return fmt.Sprintf("float(%s)", strconv.FormatFloat(c.Float64, 'g', -1, 64))
	case KindBool:
		return fmt.Sprintf("bool(%t)", c.Bool)
	case KindList:
		parts := make([]string, len(c.List))
		for i, e := range c.List {
			parts[i] = Format(e)
		}
		return "list(" + strings.Join(parts, " ") + ")"
	default:
		return "invalid"
	}
}

// Parse reads one Constant from s, which must contain exactly one
// s-expression as produced by Format.
func Parse(s string) (Constant, error) {
	toks, err := tokenize(s)
	if err != nil {
		return Constant{}, err
	}
	c, rest, err := parseOne(toks)
	if err != nil {
		return Constant{}, err
	}
	if len(rest) != 0 {
		return Constant{}, fmt.Errorf("constant: trailing tokens %v", rest)
	}
	return c, nil
}

func tokenize(s string) ([]string, error) {
	var toks []string
	i := 0
	for i < len(s) {
		switch c := s[i]; {
		case c == ' ' || c == '\t':
			i++
		case c == '(' || c == ')':
			toks = append(toks, string(c))
			i++
		case c == '"':
			j := i + 1
			for j < len(s) && s[j] != '"' {
				if s[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(s) {
				return nil, fmt.Errorf("constant: unterminated string literal")
			}
			lit, err := strconv.Unquote(s[i : j+1])
			if err != nil {
				return nil, fmt.Errorf("constant: bad string literal: %w", err)
			}
			toks = append(toks, strconv.Quote(lit))
			i = j + 1
		default:
			j := i
			for j < len(s) && s[j] != ' ' && s[j] != '\t' && s[j] != '(' && s[j] != ')' {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}
	return toks, nil
}

func parseOne(toks []string) (Constant, []string, error) {
	if len(toks) < 2 {
		return Constant{}, nil, fmt.Errorf("constant: unexpected end of input")
	}
	kind := toks[0]
	if toks[1] != "(" {
		return Constant{}, nil, fmt.Errorf("constant: expected '(' after %q", kind)
	}
	toks = toks[2:]

	switch kind {
	case "str":
		if len(toks) < 2 || toks[1] != ")" {
			return Constant{}, nil, fmt.Errorf("constant: malformed str()")
		}
		v, err := strconv.Unquote(toks[0])
		if err != nil {
			return Constant{}, nil, err
		}
		return String(v), toks[2:], nil
	case "int":
		if len(toks) < 2 || toks[1] != ")" {
			return Constant{}, nil, fmt.Errorf("constant: malformed int()")
		}
		v, err := strconv.ParseInt(toks[0], 10, 64)
		if err != nil {
			return Constant{}, nil, err
		}
		return Integer(v), toks[2:], nil
	case "uint":
		if len(toks) < 2 || toks[1] != ")" {
			return Constant{}, nil, fmt.Errorf("constant: malformed uint()")
		}
		v, err := strconv.ParseUint(toks[0], 10, 64)
		if err != nil {
			return Constant{}, nil, err
		}
		return Unsigned(v), toks[2:], nil
	case "float":
		if len(toks) < 2 || toks[1] != ")" {
			return Constant{}, nil, fmt.Errorf("constant: malformed float()")
		}
		v, err := strconv.ParseFloat(toks[0], 64)
		if err != nil {
			return Constant{}, nil, err
		}
		return Float(v), toks[2:], nil
	case "bool":
		if len(toks) < 2 || toks[1] != ")" {
			return Constant{}, nil, fmt.Errorf("constant: malformed bool()")
		}
		v, err := strconv.ParseBool(toks[0])
		if err != nil {
			return Constant{}, nil, err
		}
		return Bool_(v), toks[2:], nil
	case "list":
		var elems []Constant
		rest := toks
		for {
			if len(rest) == 0 {
				return Constant{}, nil, fmt.Errorf("constant: unterminated list()")
			}
			if rest[0] == ")" {
				rest = rest[1:]
				break
			}
			var c Constant
			var err error
			c, rest, err = parseOne(rest)
			if err != nil {
				return Constant{}, nil, err
			}
			elems = append(elems, c)
		}
		return List_(elems...), rest, nil
	default:
		return Constant{}, nil, fmt.Errorf("constant: unknown kind %q", kind)
	}
}
