package field

import (
	"fmt"
	"math/big"

	"github.com/smartcontractkit/toyecc/internal/math"
)

// PrimeField is the ring of integers modulo an odd modulus p > 2. The modulus is expected to be prime; composite
// moduli are accepted so that misconfigured curves can be demonstrated, in which case Inverse may fail with a
// *NoInverseError and SquareRoots falls back to an exhaustive search.
type PrimeField struct {
	modulus *math.Modulus
	p       *big.Int
	prime   bool
}

var _ Field = &PrimeField{}

type primeElement struct {
	f *PrimeField
	v math.Element
}

var _ Element = &primeElement{}

func NewPrimeField(p *big.Int) (*PrimeField, error) {
	if p == nil || p.Cmp(big.NewInt(2)) <= 0 || p.Bit(0) == 0 {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidModulus, p)
	}
	m, err := math.NewModulus(p)
	if err != nil {
		return nil, err
	}
	return &PrimeField{m, new(big.Int).Set(p), p.ProbablyPrime(20)}, nil
}

// f.IsPrime() reports whether the modulus is (probably) prime.
func (f *PrimeField) IsPrime() bool {
	return f.prime
}

func (f *PrimeField) Name() string {
	return "F_" + f.p.String()
}

func (f *PrimeField) Modulus() *big.Int {
	return new(big.Int).Set(f.p)
}

func (f *PrimeField) Zero() Element {
	return &primeElement{f, math.NewElement(f.modulus)}
}

func (f *PrimeField) FromInt64(v int64) Element {
	return f.FromBigInt(big.NewInt(v))
}

func (f *PrimeField) FromBigInt(v *big.Int) Element {
	return &primeElement{f, math.NewElementFromBigInt(v, f.modulus)}
}

// f.ElementSize() returns the length of the fixed-width big-endian encoding of field elements.
func (f *PrimeField) ElementSize() int {
	return f.modulus.Size()
}

// f.FromBytes(b) decodes a fixed-width big-endian element. Values not smaller than the modulus are rejected.
func (f *PrimeField) FromBytes(b []byte) (Element, error) {
	if len(b) != f.ElementSize() {
		return nil, fmt.Errorf("invalid element length %d, expected %d", len(b), f.ElementSize())
	}
	v, err := math.NewElement(f.modulus).SetBytes(b)
	if err != nil {
		return nil, err
	}
	return &primeElement{f, v}, nil
}

func (f *PrimeField) Parse(s string) (Element, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return f.FromBigInt(v), nil
}

func (f *PrimeField) Add(x, y Element) Element {
	return &primeElement{f, f.unwrap(x).Clone().Add(f.unwrap(y))}
}

func (f *PrimeField) Sub(x, y Element) Element {
	return &primeElement{f, f.unwrap(x).Clone().Subtract(f.unwrap(y))}
}

func (f *PrimeField) Mul(x, y Element) Element {
	return &primeElement{f, f.unwrap(x).Clone().Multiply(f.unwrap(y))}
}

func (f *PrimeField) Neg(x Element) Element {
	return &primeElement{f, f.unwrap(x).Clone().Negate()}
}

func (f *PrimeField) Inverse(x Element) (Element, error) {
	v := f.unwrap(x)
	inv, ok := v.Clone().InverseVarTime()
	if !ok {
		return nil, &NoInverseError{v.BigInt(), f.Modulus()}
	}
	return &primeElement{f, inv}, nil
}

func (f *PrimeField) SquareRoots(x Element) ([]Element, error) {
	roots, err := squareRoots(f.modulus, f.prime, f.unwrap(x))
	if err != nil {
		return nil, err
	}
	result := make([]Element, len(roots))
	for i, r := range roots {
		result[i] = &primeElement{f, r}
	}
	return result, nil
}

func (f *PrimeField) unwrap(x Element) math.Element {
	e, ok := x.(*primeElement)
	if !ok || e.f.p.Cmp(f.p) != 0 {
		panic(fmt.Sprintf("element %v does not belong to %s", x, f.Name()))
	}
	return e.v
}

func (e *primeElement) Field() Field {
	return e.f
}

func (e *primeElement) IsZero() bool {
	return e.v.IsZero()
}

func (e *primeElement) Equal(u Element) bool {
	o, ok := u.(*primeElement)
	return ok && e.f.p.Cmp(o.f.p) == 0 && e.v.Equal(o.v)
}

func (e *primeElement) BigInt() (*big.Int, bool) {
	return e.v.BigInt(), true
}

// e.Bytes() returns the fixed-width big-endian encoding of e.
func (e *primeElement) Bytes() []byte {
	return e.v.Bytes()
}

func (e *primeElement) String() string {
	return e.v.String()
}
