package math

import (
	"errors"
	"math/big"

	"filippo.io/bigmod"
)

// Modulus is the modulus m of the residue ring Z/mZ that Element values live in. It keeps both the bigmod
// representation (used for all arithmetic) and a big.Int copy (used for conversions and diagnostics).
type Modulus struct {
	value bigmod.Modulus
	n     *big.Int
}

// NewModulus returns the modulus n. n must be greater than one.
func NewModulus(n *big.Int) (*Modulus, error) {
	if n == nil || n.Cmp(big.NewInt(1)) <= 0 {
		return nil, errors.New("modulus must be greater than one")
	}
	m, err := bigmod.NewModulus(n.Bytes())
	if err != nil {
		return nil, err
	}
	return &Modulus{*m, new(big.Int).Set(n)}, nil
}

// Non-constant time function, to be used for testing purposes and initialization only.
// Panics on invalid input; value must represent a natural number greater than one (decimal, or hex with 0x prefix).
func NewModulusFromString(value string) *Modulus {
	n, ok := new(big.Int).SetString(value, 0)
	if !ok {
		panic("invalid modulus value: " + value)
	}
	m, err := NewModulus(n)
	if err != nil {
		panic("invalid modulus value: " + value + ", error: " + err.Error())
	}
	return m
}

func (m *Modulus) Equal(other *Modulus) bool {
	return m == other || (&m.value).Nat().Equal((&other.value).Nat()) == 1
}

// m.Size() returns the number of bytes of the fixed-width encoding of values modulo m.
func (m *Modulus) Size() int {
	return (&m.value).Size()
}

func (m *Modulus) Bytes() []byte {
	return (&m.value).Nat().Bytes(&m.value)
}

// m.BigInt() returns a copy of the modulus as big.Int.
func (m *Modulus) BigInt() *big.Int {
	return new(big.Int).Set(m.n)
}

func (m *Modulus) IsOdd() bool {
	return m.n.Bit(0) == 1
}

func (m *Modulus) String() string {
	return m.n.String()
}
