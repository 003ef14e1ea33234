// Package group implements the elliptic curve group law for curves of the curve package: point addition, doubling
// and double-and-add scalar multiplication. Points are immutable values; every operation returns a new Point.
//
// None of the functions in this package are constant time.
package group

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/smartcontractkit/toyecc/internal/curve"
	"github.com/smartcontractkit/toyecc/internal/field"
)

// Point is either the point at infinity (the group identity) or an affine point (x, y) on a curve. The zero value is
// the point at infinity. Points carry no reference to their curve; the caller passes the curve to every operation.
type Point struct {
	x, y field.Element
}

// Infinity is the identity element of every curve group.
var Infinity = Point{}

var (
	ErrNotOnCurve = errors.New("point is not on the curve")
)

// InvalidScalarError reports a negative scalar multiplier.
type InvalidScalarError struct {
	K *big.Int
}

func (e *InvalidScalarError) Error() string {
	return fmt.Sprintf("invalid scalar %v, must not be negative", e.K)
}

// NewPoint returns the affine point (x, y), or an error wrapping ErrNotOnCurve if y² ≠ x³ + a·x + b.
func NewPoint(c *curve.Curve, x, y field.Element) (Point, error) {
	if !c.IsOnCurve(x, y) {
		return Infinity, fmt.Errorf("%w: (%v, %v) on %v", ErrNotOnCurve, x, y, c)
	}
	return Point{x, y}, nil
}

// NewPointFromBigInt is NewPoint for integer coordinates, which are reduced into the curve's field.
func NewPointFromBigInt(c *curve.Curve, x, y *big.Int) (Point, error) {
	return NewPoint(c, c.ElementFromBigInt(x), c.ElementFromBigInt(y))
}

// MustPoint is NewPoint for small integer coordinates that panics if the point is not on the curve. For tests and
// initialization only.
func MustPoint(c *curve.Curve, x, y int64) Point {
	p, err := NewPoint(c, c.Element(x), c.Element(y))
	if err != nil {
		panic(err)
	}
	return p
}

// BasePoint returns the base point G of the named curve.
func BasePoint(c *curve.Named) (Point, error) {
	if !c.HasBasePoint() {
		return Infinity, fmt.Errorf("curve %s has no base point", c.Name())
	}
	return NewPointFromBigInt(c.Curve, c.Gx, c.Gy)
}

func (p Point) IsInfinity() bool {
	return p.x == nil
}

// p.X() returns the x-coordinate, or nil for the point at infinity.
func (p Point) X() field.Element {
	return p.x
}

// p.Y() returns the y-coordinate, or nil for the point at infinity.
func (p Point) Y() field.Element {
	return p.y
}

// p.Equal(q) returns true if both points are the point at infinity, or both are affine with equal coordinates.
func (p Point) Equal(q Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

func (p Point) String() string {
	if p.IsInfinity() {
		return "∞"
	}
	return fmt.Sprintf("(%v, %v)", p.x, p.y)
}
