// Residue arithmetic modulo an arbitrary odd modulus, based on the bigmod package from Go's internal stdlib, exported
// via filippo.io/bigmod. The curves handled by this module are pedagogical; the variable time functions
// (InverseVarTime, String, BigInt) are used freely.

package math

import (
	"io"
	"math/big"

	"filippo.io/bigmod"
	"github.com/smartcontractkit/toyecc/internal/codec"
)

// Element represents a value in the residue ring defined by a modulus.
// Executing any arithmetic operation on elements with different moduli will result in a panic.
type Element = *element

type Nat = *bigmod.Nat

var _ codec.Codec[*element] = &element{}

type element struct {
	value   Nat
	modulus *Modulus
}

// NewElement creates a new element with the given modulus.
// The value is initialized to zero.
func NewElement(m *Modulus) Element {
	return &element{bigmod.NewNat().ExpandFor(&m.value), m}
}

// NewElementFromBigInt returns a new element holding v mod m. Negative values are reduced into [0, m).
func NewElementFromBigInt(v *big.Int, m *Modulus) Element {
	return NewElement(m).SetBigInt(v)
}

func (x *element) IsNil() bool {
	return x == nil
}

// x.Set(y) sets x = y, and returns the element x.
// This creates a copy of the value of y, so that x and y can be modified independently.
// This functions panics if x and y have different moduli.
func (x *element) Set(y Element) Element {
	requireEqualModulus(x, y)
	copy(x.value.Bits(), y.value.Bits())
	return x
}

// x.SetBigInt(v) sets x = v mod m, and returns x. Any signed integer is accepted.
func (x *element) SetBigInt(v *big.Int) Element {
	r := new(big.Int).Mod(v, x.modulus.n)
	if _, err := x.value.SetBytes(r.FillBytes(make([]byte, x.modulus.Size())), &x.modulus.value); err != nil {
		panic("reduced value does not fit the modulus: " + err.Error())
	}
	return x
}

// x.SetUint(y) sets x = y mod m, returns the element x.
func (x *element) SetUint(y uint) Element {
	return x.SetBigInt(new(big.Int).SetUint64(uint64(y)))
}

// x.SetBytes(y) sets x to the element represented by the big-endian byte slice y, and returns x.
// If y does not represent a value smaller than x.modulus, SetBytes returns an error and the receiver is unchanged.
func (x *element) SetBytes(y []byte) (Element, error) {
	_, err := x.value.SetBytes(y, &x.modulus.value)
	if err != nil {
		return nil, err
	}
	return x, nil
}

// x.SetRandom(rand io.Reader) sets x to a random element and returns x. The value is sampled (statistically close to)
// uniformly from {0, 1, 2, ... modulus - 1}. A constant number of bytes is read from the provided io.Reader, so that
// the same element is deterministically derived from the same io.Reader state.
func (x *element) SetRandom(rand io.Reader) (Element, error) {
	// Read entropy from the provided io.Reader, 128 bits (16 bytes) more than the modulus size.
	rngBytes := make([]byte, x.modulus.Size()+16)
	if _, err := io.ReadFull(rand, rngBytes); err != nil {
		return nil, err
	}

	// Build a modulus that is larger than rngBytes (when interpreted as big-endian number).
	largeModBytes := make([]byte, len(rngBytes)+1)
	largeModBytes[0] = 1
	largeMod, err := bigmod.NewModulus(largeModBytes)
	if err != nil {
		return nil, err
	}

	// Convert the random bytes into a Nat (mod largeMod), the value fits and no modulus reduction is needed.
	t := bigmod.NewNat()
	if _, err := t.SetBytes(rngBytes, largeMod); err != nil {
		return nil, err
	}

	x.value.Mod(t, &x.modulus.value)
	return x, nil
}

func (x *element) Add(y Element) Element {
	requireEqualModulus(x, y)
	x.value.Add(y.value, &x.modulus.value)
	return x
}

func (x *element) Subtract(y Element) Element {
	requireEqualModulus(x, y)
	x.value.Sub(y.value, &x.modulus.value)
	return x
}

func (x *element) Multiply(y Element) Element {
	requireEqualModulus(x, y)
	if x == y {
		y = y.Clone()
	}
	x.value.Mul(y.value, &x.modulus.value)
	return x
}

// x.Square() sets x = x², and returns x.
func (x *element) Square() Element {
	return x.Multiply(x)
}

// x.Negate() sets x = -x mod m, and returns x.
func (x *element) Negate() Element {
	n := bigmod.NewNat().ExpandFor(&x.modulus.value)
	n.Sub(x.value, &x.modulus.value)
	x.value = n
	return x
}

// x.InverseVarTime() sets x = x⁻¹ mod m and returns (x, true) if x is invertible. Otherwise, (x, false) is returned
// and x is not modified.
func (x *element) InverseVarTime() (Element, bool) {
	_, ok := x.value.InverseVarTime(x.value, &x.modulus.value)
	return x, ok
}

// x.Exp(e) sets x = x^e mod m, where e is a big-endian encoded exponent, and returns x.
func (x *element) Exp(e []byte) Element {
	x.value.Exp(x.value, e, &x.modulus.value)
	return x
}

// x.IsZero() returns true if x is zero, and false otherwise.
func (x *element) IsZero() bool {
	return x.value.IsZero() == 1
}

// x.IsOne() returns true if x is one, and false otherwise.
func (x *element) IsOne() bool {
	return x.value.IsOne() == 1
}

// Returns an independent copy of the element.
func (x *element) Clone() Element {
	return NewElement(x.modulus).Set(x)
}

// Returns the internal reference to the modulus underlying the element.
// Must not be modified by the caller. Useful for the initialization of new elements.
func (x *element) Modulus() *Modulus {
	return x.modulus
}

// x.Bytes() returns the fixed-width big-endian encoding of x (x.Modulus().Size() bytes).
func (x *element) Bytes() []byte {
	return x.value.Bytes(&x.modulus.value)
}

func (x *element) BigInt() *big.Int {
	return new(big.Int).SetBytes(x.Bytes())
}

func (x *element) MarshalTo(target codec.Target) {
	target.WriteBytes(x.value.Bytes(&x.modulus.value))
}

func (x *element) UnmarshalFrom(source codec.Source) Element {
	b := source.ReadBytes(x.modulus.Size())
	_, err := x.value.SetBytes(b, &x.modulus.value)
	if err != nil {
		panic(err)
	}
	return x
}

// Tests two elements for equality. Only supported for elements with the same modulus.
func (x *element) Equal(y Element) bool {
	requireEqualModulus(x, y)
	return x.value.Equal(y.value) == 1
}

func (x *element) String() string {
	return x.BigInt().String()
}

func requireEqualModulus(x, y Element) {
	if !x.modulus.Equal(y.modulus) {
		panic("elements have different moduli")
	}
}
