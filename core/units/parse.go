package units

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"units-system/internal/errors"
)

// Resolver resolves identifiers before the unit registry is consulted.
// It reports found=false to fall through to unit lookup.
type Resolver interface {
	Resolve(name string) (m Measure, found bool, err error)
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(name string) (Measure, bool, error)

// Resolve implements Resolver
func (f ResolverFunc) Resolve(name string) (Measure, bool, error) {
	return f(name)
}

// tokPow stands for both ** and ^
const tokPow = -100

var functions = map[string]bool{
	"sqrt": true, "sin": true, "cos": true, "tan": true,
	"asin": true, "acos": true, "atan": true, "atan2": true,
}

// Parse evaluates a unit expression such as "9.81*m/s**2", "3 m/s",
// "(m**2*kg)/s**2" or "3*m + 200*cm".
func (r *Registry) Parse(expression string) (Measure, error) {
	return r.ParseWith(expression, nil)
}

// ParseWith is Parse with identifiers resolved through res first
func (r *Registry) ParseWith(expression string, res Resolver) (Measure, error) {
	p := newParser(r, res, expression)
	if p.tok == scanner.EOF {
		return Measure{}, errors.Newf(errors.TypeParsing, "empty unit expression")
	}
	m := p.expr()
	if p.err == nil && p.tok != scanner.EOF {
		p.fail("unexpected %q", p.text)
	}
	if p.err != nil {
		return Measure{}, p.err
	}
	return m, nil
}

func isIdentRune(ch rune, i int) bool {
	switch ch {
	case '_', '°', '′', '″', 'µ', 'Ω':
		return true
	}
	return unicode.IsLetter(ch) || (i > 0 && unicode.IsDigit(ch))
}

func newScanner(src string) *scanner.Scanner {
	var sc scanner.Scanner
	sc.Init(strings.NewReader(src))
	sc.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	sc.IsIdentRune = isIdentRune
	return &sc
}

// Identifiers lists the identifiers of an expression, dotted names joined,
// function names excluded. Malformed input yields whatever was scanned.
func Identifiers(src string) []string {
	sc := newScanner(src)
	sc.Error = func(*scanner.Scanner, string) {}
	var out []string
	for tok := sc.Scan(); tok != scanner.EOF; tok = sc.Scan() {
		if tok != scanner.Ident {
			continue
		}
		name := sc.TokenText()
		for sc.Peek() == '.' {
			sc.Scan()
			if sc.Scan() != scanner.Ident {
				break
			}
			name += "." + sc.TokenText()
		}
		if functions[name] && sc.Peek() == '(' {
			continue
		}
		out = append(out, name)
	}
	return out
}

// IsSymbol reports whether s is read back by the parser as exactly one
// identifier token. Only such symbols survive String followed by Parse.
func IsSymbol(s string) bool {
	if s == "" {
		return false
	}
	sc := newScanner(s)
	sc.Error = func(*scanner.Scanner, string) {}
	if sc.Scan() != scanner.Ident || sc.TokenText() != s {
		return false
	}
	return sc.Scan() == scanner.EOF
}

type parser struct {
	reg  *Registry
	res  Resolver
	sc   *scanner.Scanner
	src  string
	tok  rune
	text string
	pos  scanner.Position
	err  error
}

func newParser(reg *Registry, res Resolver, src string) *parser {
	p := &parser{reg: reg, res: res, src: src, sc: newScanner(src)}
	p.sc.Error = func(s *scanner.Scanner, msg string) {
		p.fail("%s", msg)
	}
	p.next()
	return p
}

func (p *parser) next() {
	p.tok = p.sc.Scan()
	p.text = p.sc.TokenText()
	p.pos = p.sc.Position
	if p.tok == '*' && p.sc.Peek() == '*' {
		p.sc.Next()
		p.tok, p.text = tokPow, "**"
	} else if p.tok == '^' {
		p.tok = tokPow
	}
}

func (p *parser) fail(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	p.err = errors.Newf(errors.TypeParsing, "%q at column %d: %s", p.src, p.pos.Column, fmt.Sprintf(format, args...))
}

func (p *parser) setErr(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *parser) expect(tok rune) {
	if p.tok != tok {
		p.fail("expected %q, found %q", string(tok), p.text)
		return
	}
	p.next()
}

// expr := term (('+' | '-') term)*
func (p *parser) expr() Measure {
	m := p.term()
	for p.err == nil && (p.tok == '+' || p.tok == '-') {
		op := p.tok
		p.next()
		rhs := p.term()
		if p.err != nil {
			break
		}
		var err error
		if op == '+' {
			m, err = m.Add(rhs)
		} else {
			m, err = m.Sub(rhs)
		}
		p.setErr(err)
	}
	return m
}

func startsOperand(tok rune) bool {
	return tok == scanner.Ident || tok == scanner.Int || tok == scanner.Float || tok == '('
}

// term := unary (('*' | '/' | juxtaposition) unary)*
func (p *parser) term() Measure {
	m := p.unary()
	for p.err == nil {
		switch {
		case p.tok == '*':
			p.next()
			m = m.Mul(p.unary())
		case p.tok == '/':
			p.next()
			m = m.Div(p.unary())
		case startsOperand(p.tok):
			m = m.Mul(p.unary())
		default:
			return m
		}
	}
	return m
}

// unary := ('-' | '+') unary | power
func (p *parser) unary() Measure {
	switch p.tok {
	case '-':
		p.next()
		return p.unary().Negate()
	case '+':
		p.next()
		return p.unary()
	}
	return p.power()
}

// power := primary (pow unary)?
func (p *parser) power() Measure {
	base := p.primary()
	if p.err != nil || p.tok != tokPow {
		return base
	}
	p.next()
	exp := p.unary()
	if p.err != nil {
		return base
	}
	if !exp.IsMagnitude() {
		p.fail("exponent must be a plain number, got %s", exp)
		return base
	}
	m, err := base.PowReal(exp.magnitude)
	p.setErr(err)
	return m
}

// primary := number | name | name '(' args ')' | '(' expr ')'
func (p *parser) primary() Measure {
	switch p.tok {
	case scanner.Int, scanner.Float:
		v, err := strconv.ParseFloat(p.text, 64)
		if err != nil {
			p.fail("invalid number %q", p.text)
			return Measure{}
		}
		p.next()
		return p.reg.Scalar(v)
	case '(':
		p.next()
		m := p.expr()
		p.expect(')')
		return m
	case scanner.Ident:
		return p.name()
	case scanner.EOF:
		p.fail("unexpected end of expression")
	default:
		p.fail("unexpected %q", p.text)
	}
	return Measure{}
}

func (p *parser) name() Measure {
	name := p.text
	p.next()
	for p.tok == '.' {
		p.next()
		if p.tok != scanner.Ident {
			p.fail("expected name after %q", name+".")
			return Measure{}
		}
		name += "." + p.text
		p.next()
	}

	if p.tok == '(' && functions[name] {
		return p.call(name)
	}

	if p.res != nil {
		m, found, err := p.res.Resolve(name)
		if err != nil {
			p.setErr(err)
			return Measure{}
		}
		if found {
			return m
		}
	}

	m, err := p.reg.Unit(name)
	if err != nil {
		p.setErr(err)
		return Measure{}
	}
	return m
}

func (p *parser) call(name string) Measure {
	p.next()
	args := []Measure{p.expr()}
	for p.err == nil && p.tok == ',' {
		p.next()
		args = append(args, p.expr())
	}
	p.expect(')')
	if p.err != nil {
		return Measure{}
	}

	want := 1
	if name == "atan2" {
		want = 2
	}
	if len(args) != want {
		p.fail("%s takes %d argument(s), got %d", name, want, len(args))
		return Measure{}
	}

	var (
		m   Measure
		v   float64
		err error
	)
	x := args[0]
	switch name {
	case "sqrt":
		m, err = x.Sqrt()
	case "sin":
		v, err = Sin(x)
		m = p.reg.Scalar(v)
	case "cos":
		v, err = Cos(x)
		m = p.reg.Scalar(v)
	case "tan":
		v, err = Tan(x)
		m = p.reg.Scalar(v)
	case "asin":
		m, err = Asin(x)
	case "acos":
		m, err = Acos(x)
	case "atan":
		m, err = Atan(x)
	case "atan2":
		m, err = Atan2(args[0], args[1])
	}
	p.setErr(err)
	return m
}
