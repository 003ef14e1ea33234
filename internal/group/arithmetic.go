package group

import (
	"fmt"
	"math/big"

	"github.com/smartcontractkit/toyecc/internal/curve"
)

// Op identifies an operation reported to an Observer.
type Op string

const (
	OpAdd     Op = "add"     // addition of two distinct affine points
	OpDouble  Op = "double"  // doubling of an affine point
	OpInverse Op = "inverse" // field inversion for a slope
)

// Observer is notified of every non-trivial group operation. Implementations must be safe for concurrent use if the
// Arithmetic is shared between goroutines.
type Observer interface {
	Observe(c *curve.Curve, op Op)
}

// Arithmetic evaluates the group law on Curve, reporting operations to the (optional) Observer.
type Arithmetic struct {
	Curve    *curve.Curve
	Observer Observer
}

func (a Arithmetic) observe(op Op) {
	if a.Observer != nil {
		a.Observer.Observe(a.Curve, op)
	}
}

// Add returns p + q using the chord-and-tangent rule:
//
//   - ∞ + q = q, p + ∞ = p
//   - p + (-p) = ∞, which includes doubling a point with y = 0
//   - otherwise, with s = (y_q - y_p)/(x_q - x_p) for p ≠ q and s = (3x_p² + a)/(2y_p) for p = q:
//     x_r = s² - x_p - x_q, y_r = s(x_p - x_r) - y_p
//
// If a required inverse does not exist (only possible for a composite modulus or points not on the curve), the
// returned error wraps a *field.NoInverseError.
func (a Arithmetic) Add(p, q Point) (Point, error) {
	if p.IsInfinity() {
		return q, nil
	}
	if q.IsInfinity() {
		return p, nil
	}

	f := a.Curve.Field()
	doubling := p.x.Equal(q.x)
	if doubling && !p.y.Equal(q.y) {
		return Infinity, nil // vertical chord
	}
	if doubling && p.y.IsZero() {
		return Infinity, nil // vertical tangent
	}

	var numerator, denominator = f.Sub(q.y, p.y), f.Sub(q.x, p.x)
	if doubling {
		a.observe(OpDouble)
		numerator = f.Add(f.Mul(f.FromInt64(3), f.Mul(p.x, p.x)), a.Curve.A())
		denominator = f.Add(p.y, p.y)
	} else {
		a.observe(OpAdd)
	}

	a.observe(OpInverse)
	inv, err := f.Inverse(denominator)
	if err != nil {
		return Infinity, fmt.Errorf("adding %v and %v on %v: %w", p, q, a.Curve, err)
	}
	s := f.Mul(numerator, inv)

	x := f.Sub(f.Sub(f.Mul(s, s), p.x), q.x)
	y := f.Sub(f.Mul(s, f.Sub(p.x, x)), p.y)
	return Point{x, y}, nil
}

// Double returns p + p.
func (a Arithmetic) Double(p Point) (Point, error) {
	return a.Add(p, p)
}

// Negate returns -p, the reflection of p across the x-axis.
func (a Arithmetic) Negate(p Point) Point {
	if p.IsInfinity() {
		return p
	}
	return Point{p.x, a.Curve.Field().Neg(p.y)}
}

// Subtract returns p - q.
func (a Arithmetic) Subtract(p, q Point) (Point, error) {
	return a.Add(p, a.Negate(q))
}

// Multiply returns k·p using double-and-add over the bits of k, least significant bit first. This takes O(log k)
// group operations. The group order is not tracked: k is used as given and is not reduced. A negative k results in an
// *InvalidScalarError.
func (a Arithmetic) Multiply(k *big.Int, p Point) (Point, error) {
	if k.Sign() < 0 {
		return Infinity, &InvalidScalarError{new(big.Int).Set(k)}
	}
	if k.Sign() == 0 || p.IsInfinity() {
		return Infinity, nil
	}

	result, addend := Infinity, p
	for i := 0; i < k.BitLen(); i++ {
		var err error
		if k.Bit(i) == 1 {
			if result, err = a.Add(result, addend); err != nil {
				return Infinity, err
			}
		}
		// The doubling after the most significant bit does not contribute to the result.
		if i+1 < k.BitLen() {
			if addend, err = a.Double(addend); err != nil {
				return Infinity, err
			}
		}
	}
	return result, nil
}

// MultiplyRepeated returns k·p by adding p to the point at infinity k times. This takes O(k) group operations and is
// only meant as a baseline for Multiply.
func (a Arithmetic) MultiplyRepeated(k *big.Int, p Point) (Point, error) {
	if k.Sign() < 0 {
		return Infinity, &InvalidScalarError{new(big.Int).Set(k)}
	}
	if !k.IsInt64() {
		return Infinity, fmt.Errorf("scalar %v too large for repeated addition", k)
	}

	result := Infinity
	for i := int64(0); i < k.Int64(); i++ {
		var err error
		if result, err = a.Add(result, p); err != nil {
			return Infinity, err
		}
	}
	return result, nil
}

// Add returns p + q on c. See Arithmetic.Add.
func Add(c *curve.Curve, p, q Point) (Point, error) {
	return Arithmetic{Curve: c}.Add(p, q)
}

// Double returns p + p on c.
func Double(c *curve.Curve, p Point) (Point, error) {
	return Arithmetic{Curve: c}.Double(p)
}

// Negate returns -p on c.
func Negate(c *curve.Curve, p Point) Point {
	return Arithmetic{Curve: c}.Negate(p)
}

// Subtract returns p - q on c.
func Subtract(c *curve.Curve, p, q Point) (Point, error) {
	return Arithmetic{Curve: c}.Subtract(p, q)
}

// Multiply returns k·p on c. See Arithmetic.Multiply.
func Multiply(c *curve.Curve, k *big.Int, p Point) (Point, error) {
	return Arithmetic{Curve: c}.Multiply(k, p)
}

// MultiplyRepeated returns k·p on c by repeated addition.
func MultiplyRepeated(c *curve.Curve, k *big.Int, p Point) (Point, error) {
	return Arithmetic{Curve: c}.MultiplyRepeated(k, p)
}
