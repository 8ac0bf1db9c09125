package resolve

import (
	"fmt"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Expr is a parsed line-item formula: arithmetic over named variables and
// numeric literals. Formulas are parsed once, when the mapping table is
// built, and evaluated per fiscal year against a variable lookup.
type Expr interface {
	// Eval computes the expression. A referenced variable the lookup does
	// not know resolves to zero; the miss is logged, never raised.
	Eval(lookup func(name string) (decimal.Decimal, bool), logger zerolog.Logger) decimal.Decimal
}

// Literal is a numeric constant.
type Literal struct {
	Value decimal.Decimal
}

// Eval returns the constant.
func (l Literal) Eval(func(string) (decimal.Decimal, bool), zerolog.Logger) decimal.Decimal {
	return l.Value
}

// Ref references another variable by name.
type Ref struct {
	Name string
}

// Eval looks the variable up, substituting zero for an unknown name.
func (r Ref) Eval(lookup func(string) (decimal.Decimal, bool), logger zerolog.Logger) decimal.Decimal {
	v, ok := lookup(r.Name)
	if !ok {
		logger.Warn().Str("variable", r.Name).Msg("unresolved formula reference, substituting zero")
		return decimal.Zero
	}
	return v
}

// Binary combines two sub-expressions with +, -, * or /.
type Binary struct {
	Op          byte
	Left, Right Expr
}

// Eval evaluates both sides and applies the operator. Division by zero
// yields zero; a financial statement has no useful infinity.
func (b Binary) Eval(lookup func(string) (decimal.Decimal, bool), logger zerolog.Logger) decimal.Decimal {
	l := b.Left.Eval(lookup, logger)
	r := b.Right.Eval(lookup, logger)
	switch b.Op {
	case '+':
		return l.Add(r)
	case '-':
		return l.Sub(r)
	case '*':
		return l.Mul(r)
	case '/':
		if r.IsZero() {
			logger.Warn().Msg("formula division by zero, substituting zero")
			return decimal.Zero
		}
		return l.Div(r)
	}
	return decimal.Zero
}

// Refs returns every variable name the expression references, in
// left-to-right order with duplicates removed.
func Refs(e Expr) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case Ref:
			if !seen[n.Name] {
				seen[n.Name] = true
				names = append(names, n.Name)
			}
		case Binary:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(e)
	return names
}

// ParseExpr parses a formula string into an expression tree. Grammar:
//
//	expr   = term (("+" | "-") term)*
//	term   = unary (("*" | "/") unary)*
//	unary  = "-" unary | primary
//	primary = number | variable | "(" expr ")"
//
// Variable names start with a letter or underscore and continue with
// letters, digits and underscores.
func ParseExpr(s string) (Expr, error) {
	p := &exprParser{src: s}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos < len(p.src) {
		return nil, fmt.Errorf("unexpected %q at offset %d in formula %q", p.src[p.pos], p.pos, s)
	}
	return e, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *exprParser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
}

func (p *exprParser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
}

func (p *exprParser) parseUnary() (Expr, error) {
	if p.peek() == '-' {
		p.pos++
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Binary{Op: '-', Left: Literal{Value: decimal.Zero}, Right: e}, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (Expr, error) {
	switch c := p.peek(); {
	case c == 0:
		return nil, fmt.Errorf("unexpected end of formula %q", p.src)
	case c == '(':
		p.pos++
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, fmt.Errorf("missing ) in formula %q", p.src)
		}
		p.pos++
		return e, nil
	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()
	case isNameStart(rune(c)):
		return Ref{Name: p.parseName()}, nil
	default:
		return nil, fmt.Errorf("unexpected %q at offset %d in formula %q", c, p.pos, p.src)
	}
}

func (p *exprParser) parseNumber() (Expr, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= '0' && c <= '9' || c == '.' {
			p.pos++
			continue
		}
		break
	}
	d, err := decimal.NewFromString(p.src[start:p.pos])
	if err != nil {
		return nil, fmt.Errorf("bad number %q in formula %q", p.src[start:p.pos], p.src)
	}
	return Literal{Value: d}, nil
}

func (p *exprParser) parseName() string {
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func isNameStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}
