// Package calc evaluates arithmetic expressions over a restricted grammar:
// numbers, + - * / ^, unary minus and parentheses. Untrusted input never
// reaches anything more powerful than this parser.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// SyntaxError reports a malformed expression.
type SyntaxError struct {
	Pos    int
	Detail string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid expression at position %d: %s", e.Pos, e.Detail)
}

// SymbolError reports a reference to an undefined symbol, e.g. letters
// where a number was expected.
type SymbolError struct {
	Symbol string
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("undefined symbol %q in expression", e.Symbol)
}

// Evaluate parses and evaluates expr.
func Evaluate(expr string) (float64, error) {
	p := &parser{input: expr}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, &SyntaxError{Pos: p.pos, Detail: fmt.Sprintf("unexpected %q", rune(p.input[p.pos]))}
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &SyntaxError{Pos: 0, Detail: "result is not a finite number"}
	}
	return v, nil
}

// Format renders a result the way a calculator would: integers without a
// decimal point, everything else in minimal float notation.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Grammar:
//
//	expr   = term { ("+" | "-") term }
//	term   = power { ("*" | "/") power }
//	power  = unary [ "^" power ]        (right associative)
//	unary  = [ "-" | "+" ] primary
//	primary = number | "(" expr ")"
type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *parser) peek() (byte, bool) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		c, ok := p.peek()
		if !ok || (c != '+' && c != '-') {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if c == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	v, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for {
		c, ok := p.peek()
		if !ok || (c != '*' && c != '/') {
			return v, nil
		}
		pos := p.pos
		p.pos++
		rhs, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		if c == '*' {
			v *= rhs
		} else {
			if rhs == 0 {
				return 0, &SyntaxError{Pos: pos, Detail: "division by zero"}
			}
			v /= rhs
		}
	}
}

func (p *parser) parsePower() (float64, error) {
	base, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	c, ok := p.peek()
	if !ok || c != '^' {
		return base, nil
	}
	p.pos++
	// Right associative: 2^3^2 = 2^(3^2)
	exp, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exp), nil
}

func (p *parser) parseUnary() (float64, error) {
	c, ok := p.peek()
	if ok && (c == '-' || c == '+') {
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if c == '-' {
			return -v, nil
		}
		return v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	c, ok := p.peek()
	if !ok {
		return 0, &SyntaxError{Pos: p.pos, Detail: "unexpected end of expression"}
	}

	if c == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		c, ok := p.peek()
		if !ok || c != ')' {
			return 0, &SyntaxError{Pos: p.pos, Detail: "missing closing parenthesis"}
		}
		p.pos++
		return v, nil
	}

	if unicode.IsLetter(rune(c)) || c == '_' {
		start := p.pos
		for p.pos < len(p.input) {
			r := rune(p.input[p.pos])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			p.pos++
		}
		return 0, &SymbolError{Symbol: p.input[start:p.pos]}
	}

	return p.parseNumber()
}

func (p *parser) parseNumber() (float64, error) {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return 0, &SyntaxError{Pos: p.pos, Detail: fmt.Sprintf("expected a number, got %q", rune(p.input[p.pos]))}
	}
	lit := p.input[start:p.pos]
	if strings.Count(lit, ".") > 1 {
		return 0, &SyntaxError{Pos: start, Detail: fmt.Sprintf("malformed number %q", lit)}
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, &SyntaxError{Pos: start, Detail: fmt.Sprintf("malformed number %q", lit)}
	}
	return v, nil
}
