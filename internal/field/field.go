// Package field implements the coordinate arithmetic used by the curve and group packages. Two fields are provided:
// PrimeField (integers modulo an odd modulus, backed by internal/math and filippo.io/bigmod) and RealField
// (arbitrary-precision binary floating point). Both implement the Field capability, so that curve equations and the
// group law are written once, independent of the underlying field.
//
// None of the functions in this package are constant time.
package field

import (
	"errors"
	"fmt"
	"math/big"
)

// Element is an immutable field element. Elements are only compatible with elements created by the same Field;
// mixing elements of different fields panics.
type Element interface {
	fmt.Stringer

	// e.Field() returns the field e belongs to.
	Field() Field

	// e.IsZero() returns true if e is the additive identity. For the reals this is a tolerance check.
	IsZero() bool

	// e.Equal(u) returns true if e and u represent the same value.
	Equal(u Element) bool

	// e.BigInt() returns e as integer. For the reals, ok is false if e is not integral.
	BigInt() (v *big.Int, ok bool)
}

// Field is the arithmetic a curve is evaluated over: a prime field F_p or the reals.
type Field interface {
	// Returns a short name of the field, e.g. "F_23" or "R". Used for logging and rendering.
	Name() string

	// Returns a copy of the characteristic of the field, or nil for the reals.
	Modulus() *big.Int

	Zero() Element
	FromInt64(v int64) Element
	FromBigInt(v *big.Int) Element

	// Parse reads an element from its textual form (integer in decimal or 0x-prefixed hex; the reals additionally
	// accept decimal fractions).
	Parse(s string) (Element, error)

	Add(x, y Element) Element
	Sub(x, y Element) Element
	Mul(x, y Element) Element
	Neg(x Element) Element

	// Inverse returns x⁻¹, or a *NoInverseError if x has no multiplicative inverse.
	Inverse(x Element) (Element, error)

	// SquareRoots returns all r with r² = x, without duplicates. The result is empty if x has no square root.
	SquareRoots(x Element) ([]Element, error)
}

var (
	ErrNoSquareRootMethod = errors.New("no square root method available for a large composite modulus")
	ErrInvalidModulus     = errors.New("modulus must be an odd integer greater than two")
)

// NoInverseError reports that Value has no multiplicative inverse modulo Modulus, i.e., gcd(Value, Modulus) != 1.
// Modulus is nil if the inverse was requested over the reals (Value is zero in that case).
type NoInverseError struct {
	Value   *big.Int
	Modulus *big.Int
}

func (e *NoInverseError) Error() string {
	if e.Modulus == nil {
		return fmt.Sprintf("no inverse of %s over the reals", e.Value)
	}
	return fmt.Sprintf("no inverse of %s modulo %s", e.Value, e.Modulus)
}
