package field

import (
	"fmt"
	"math/big"
)

const (
	// RealPrecision is the mantissa precision (in bits) of real field elements.
	RealPrecision = 256

	// realToleranceExp defines the relative tolerance 2^realToleranceExp used for equality of real elements.
	realToleranceExp = -192
)

// RealField approximates the real numbers with big.Float values of RealPrecision bits. Exact comparison is not
// meaningful after square roots and divisions; Equal and IsZero compare within a relative tolerance instead.
type RealField struct {
	tolerance *big.Float
}

var _ Field = &RealField{}

type realElement struct {
	f *RealField
	v *big.Float
}

var _ Element = &realElement{}

func NewRealField() *RealField {
	return &RealField{new(big.Float).SetMantExp(big.NewFloat(1), realToleranceExp)}
}

func (f *RealField) Name() string {
	return "R"
}

func (f *RealField) Modulus() *big.Int {
	return nil
}

func (f *RealField) Zero() Element {
	return f.wrap(newFloat())
}

func (f *RealField) FromInt64(v int64) Element {
	return f.wrap(newFloat().SetInt64(v))
}

func (f *RealField) FromBigInt(v *big.Int) Element {
	return f.wrap(newFloat().SetInt(v))
}

// FromFloat returns v as real element. v is copied.
func (f *RealField) FromFloat(v *big.Float) Element {
	return f.wrap(newFloat().Set(v))
}

func (f *RealField) Parse(s string) (Element, error) {
	if v, ok := new(big.Int).SetString(s, 0); ok {
		return f.FromBigInt(v), nil
	}
	v, ok := newFloat().SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid real number %q", s)
	}
	return f.wrap(v), nil
}

func (f *RealField) Add(x, y Element) Element {
	return f.wrap(newFloat().Add(f.unwrap(x), f.unwrap(y)))
}

func (f *RealField) Sub(x, y Element) Element {
	return f.wrap(newFloat().Sub(f.unwrap(x), f.unwrap(y)))
}

func (f *RealField) Mul(x, y Element) Element {
	return f.wrap(newFloat().Mul(f.unwrap(x), f.unwrap(y)))
}

func (f *RealField) Neg(x Element) Element {
	return f.wrap(newFloat().Neg(f.unwrap(x)))
}

func (f *RealField) Inverse(x Element) (Element, error) {
	if x.IsZero() {
		return nil, &NoInverseError{Value: new(big.Int)}
	}
	return f.wrap(newFloat().Quo(newFloat().SetInt64(1), f.unwrap(x))), nil
}

// SquareRoots returns {+√x, -√x} for x > 0, {0} for x = 0 (within tolerance), and no roots for x < 0.
func (f *RealField) SquareRoots(x Element) ([]Element, error) {
	if x.IsZero() {
		return []Element{f.Zero()}, nil
	}
	v := f.unwrap(x)
	if v.Sign() < 0 {
		return nil, nil
	}
	r := newFloat().Sqrt(v)
	return []Element{f.wrap(r), f.wrap(newFloat().Neg(r))}, nil
}

func (f *RealField) unwrap(x Element) *big.Float {
	e, ok := x.(*realElement)
	if !ok {
		panic(fmt.Sprintf("element %v does not belong to %s", x, f.Name()))
	}
	return e.v
}

func (f *RealField) wrap(v *big.Float) Element {
	return &realElement{f, v}
}

func newFloat() *big.Float {
	return new(big.Float).SetPrec(RealPrecision)
}

func (e *realElement) Field() Field {
	return e.f
}

func (e *realElement) IsZero() bool {
	return newFloat().Abs(e.v).Cmp(e.f.tolerance) <= 0
}

// e.Equal(u) returns true if |e - u| ≤ 2^-192 · max(1, |e|, |u|).
func (e *realElement) Equal(u Element) bool {
	o, ok := u.(*realElement)
	if !ok {
		return false
	}
	scale := newFloat().SetInt64(1)
	if a := newFloat().Abs(e.v); a.Cmp(scale) > 0 {
		scale = a
	}
	if a := newFloat().Abs(o.v); a.Cmp(scale) > 0 {
		scale = a
	}
	diff := newFloat().Sub(e.v, o.v)
	diff.Abs(diff)
	return diff.Cmp(scale.Mul(scale, e.f.tolerance)) <= 0
}

func (e *realElement) BigInt() (*big.Int, bool) {
	if !e.v.IsInt() {
		return nil, false
	}
	v, _ := e.v.Int(nil)
	return v, true
}

// e.Float() returns a copy of the underlying big.Float.
func (e *realElement) Float() *big.Float {
	return newFloat().Set(e.v)
}

func (e *realElement) String() string {
	return e.v.Text('g', 12)
}
