// Package curve represents short Weierstrass curves y² = x³ + a·x + b over a prime field or over the reals, and
// answers coordinate queries (membership, y-coordinates for a given x). A Curve never changes after construction and
// may be shared between goroutines without synchronization.
package curve

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/smartcontractkit/toyecc/internal/field"
)

type Curve struct {
	name         string
	field        field.Field
	a, b         field.Element
	discriminant field.Element
	singular     bool
	equation     string
}

type options struct {
	name   string
	logger logrus.FieldLogger
	strict bool
}

type Option func(*options)

// WithName sets the name used for logging and rendering.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger enables advisory warnings (singular curve, composite modulus) during construction.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStrict rejects singular curves with an *InvalidCurveError instead of only reporting them via IsSingular.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

var ErrSingularCurve = errors.New("singular curve (zero discriminant)")

// InvalidCurveError reports curve parameters that were rejected during construction.
type InvalidCurveError struct {
	A, B    *big.Int
	Modulus *big.Int // nil for curves over the reals
	Err     error
}

func (e *InvalidCurveError) Error() string {
	if e.Modulus == nil {
		return fmt.Sprintf("invalid curve a=%v, b=%v over the reals: %v", e.A, e.B, e.Err)
	}
	return fmt.Sprintf("invalid curve a=%v, b=%v mod %v: %v", e.A, e.B, e.Modulus, e.Err)
}

func (e *InvalidCurveError) Unwrap() error {
	return e.Err
}

// New constructs the curve y² = x³ + a·x + b. If modulus is nil, the curve is defined over the reals; otherwise over
// the integers modulo the given odd modulus (which should be prime, see field.NewPrimeField).
//
// The discriminant Δ = -16(4a³ + 27b²) is computed in the curve's field. A singular curve (Δ = 0) is accepted unless
// WithStrict() is given: singular curves are useful as a counterexample, but the group law does not produce
// meaningful results on them.
func New(a, b, modulus *big.Int, opts ...Option) (*Curve, error) {
	var f field.Field
	if modulus == nil {
		f = field.NewRealField()
	} else {
		pf, err := field.NewPrimeField(modulus)
		if err != nil {
			return nil, &InvalidCurveError{a, b, modulus, err}
		}
		f = pf
	}
	return NewOver(f, f.FromBigInt(a), f.FromBigInt(b), opts...)
}

// NewOver constructs the curve y² = x³ + a·x + b over the given field. a and b must be elements of f.
func NewOver(f field.Field, a, b field.Element, opts ...Option) (*Curve, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &Curve{name: o.name, field: f, a: a, b: b}

	// Δ = -16(4a³ + 27b²)
	a3 := f.Mul(f.Mul(a, a), a)
	b2 := f.Mul(b, b)
	t := f.Add(f.Mul(f.FromInt64(4), a3), f.Mul(f.FromInt64(27), b2))
	c.discriminant = f.Mul(f.FromInt64(-16), t)
	c.singular = c.discriminant.IsZero()
	c.equation = equation(a, b, f)

	if c.singular {
		if o.strict {
			aInt, _ := a.BigInt()
			bInt, _ := b.BigInt()
			return nil, &InvalidCurveError{aInt, bInt, f.Modulus(), ErrSingularCurve}
		}
		if o.logger != nil {
			o.logger.WithFields(logrus.Fields{
				"curve": c.String(),
			}).Warn("Singular curve, the chord-tangent law does not define a group on it")
		}
	}
	if pf, ok := f.(*field.PrimeField); ok && !pf.IsPrime() && o.logger != nil {
		o.logger.WithFields(logrus.Fields{
			"curve":   c.String(),
			"modulus": pf.Modulus().String(),
		}).Warn("Curve modulus is not prime, modular inverses may not exist")
	}
	return c, nil
}

// Returns the name of the curve, or an empty string for unnamed curves.
func (c *Curve) Name() string {
	return c.name
}

func (c *Curve) Field() field.Field {
	return c.field
}

func (c *Curve) A() field.Element {
	return c.a
}

func (c *Curve) B() field.Element {
	return c.b
}

// Returns a copy of the field modulus, or nil for curves over the reals.
func (c *Curve) Modulus() *big.Int {
	return c.field.Modulus()
}

// IsFinite returns true if the curve is defined over a finite field.
func (c *Curve) IsFinite() bool {
	return c.field.Modulus() != nil
}

// Discriminant returns Δ = -16(4a³ + 27b²), reduced into the curve's field.
func (c *Curve) Discriminant() field.Element {
	return c.discriminant
}

func (c *Curve) IsSingular() bool {
	return c.singular
}

// Element is a shorthand for c.Field().FromInt64(v).
func (c *Curve) Element(v int64) field.Element {
	return c.field.FromInt64(v)
}

// ElementFromBigInt is a shorthand for c.Field().FromBigInt(v).
func (c *Curve) ElementFromBigInt(v *big.Int) field.Element {
	return c.field.FromBigInt(v)
}

// Polynomial returns x³ + a·x + b.
func (c *Curve) Polynomial(x field.Element) field.Element {
	f := c.field
	t := f.Add(f.Mul(x, x), c.a) // x² + a
	t = f.Mul(t, x)              // x³ + ax
	return f.Add(t, c.b)         // x³ + ax + b
}

// IsOnCurve reports whether y² = x³ + a·x + b holds (in the curve's field).
func (c *Curve) IsOnCurve(x, y field.Element) bool {
	return c.field.Mul(y, y).Equal(c.Polynomial(x))
}

// YCoordinates returns all y with (x, y) on the curve: none if x³ + a·x + b has no square root, one if it is zero,
// two otherwise.
func (c *Curve) YCoordinates(x field.Element) ([]field.Element, error) {
	return c.field.SquareRoots(c.Polynomial(x))
}

// Equal returns true if both curves have the same field and coefficients. Names are ignored.
func (c *Curve) Equal(other *Curve) bool {
	if c == other {
		return true
	}
	m1, m2 := c.Modulus(), other.Modulus()
	if (m1 == nil) != (m2 == nil) || (m1 != nil && m1.Cmp(m2) != 0) {
		return false
	}
	return c.a.Equal(other.a) && c.b.Equal(other.b)
}

// String returns the curve equation, e.g. "y² = x³ + 2x + 3 (mod 23)".
func (c *Curve) String() string {
	return c.equation
}

func equation(a, b field.Element, f field.Field) string {
	var sb strings.Builder
	sb.WriteString("y² = x³")
	writeTerm(&sb, a, "x", f)
	writeTerm(&sb, b, "", f)
	if m := f.Modulus(); m != nil {
		fmt.Fprintf(&sb, " (mod %v)", m)
	}
	return sb.String()
}

func writeTerm(sb *strings.Builder, coefficient field.Element, variable string, f field.Field) {
	if coefficient.IsZero() {
		return
	}
	text := coefficient.String()
	sign := "+"
	if strings.HasPrefix(text, "-") {
		sign, text = "-", text[1:]
	} else if m := f.Modulus(); m != nil && m.BitLen() > 64 {
		// Show small negative coefficients of large curves as such, e.g. "- 3x" rather than "+ 115792...948x".
		if v, _ := f.Neg(coefficient).BigInt(); v.BitLen() < 16 {
			sign, text = "-", v.String()
		}
	}
	if variable != "" && text == "1" {
		text = ""
	}
	fmt.Fprintf(sb, " %s %s%s", sign, text, variable)
}
