package field

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/smartcontractkit/toyecc/internal/math"
)

// BruteForceLimit is the largest modulus (exclusive) for which SquareRootsModP falls back to an exhaustive O(p) scan.
// The fallback is used for all composite or even moduli, which can have more than two roots.
const BruteForceLimit = 1000

var one = big.NewInt(1)

// SquareRootsModP returns every r in [0, p) with r² ≡ value (mod p), in ascending order.
//
//   - prime p, value ≡ 0: {0}.
//   - prime p ≡ 3 (mod 4): r = value^((p+1)/4) is accepted (together with p - r) only after verifying r² ≡ value.
//   - other odd primes: Tonelli-Shanks, after Euler's criterion rules out non-residues.
//   - composite or even p < BruteForceLimit: exhaustive scan.
//
// For a composite p ≥ BruteForceLimit, ErrNoSquareRootMethod is returned. The primality of p is tested on every call;
// PrimeField.SquareRoots tests it once per field.
func SquareRootsModP(value, p *big.Int) ([]*big.Int, error) {
	if p == nil || p.Cmp(one) <= 0 {
		return nil, fmt.Errorf("invalid modulus %v", p)
	}
	if p.Bit(0) == 0 {
		if p.Cmp(big.NewInt(BruteForceLimit)) >= 0 {
			return nil, ErrNoSquareRootMethod
		}
		return SquareRootsBruteForce(value, p), nil
	}

	m, err := math.NewModulus(p)
	if err != nil {
		return nil, err
	}
	roots, err := squareRoots(m, p.ProbablyPrime(20), math.NewElementFromBigInt(value, m))
	if err != nil {
		return nil, err
	}
	result := make([]*big.Int, len(roots))
	for i, r := range roots {
		result[i] = r.BigInt()
	}
	return result, nil
}

// SquareRootsBruteForce tests every i in [0, p) for i² ≡ value (mod p). This is O(p) and only meant for small
// moduli, e.g., to cross-check SquareRootsModP.
func SquareRootsBruteForce(value, p *big.Int) []*big.Int {
	target := new(big.Int).Mod(value, p)
	var roots []*big.Int
	sq := new(big.Int)
	for i := new(big.Int); i.Cmp(p) < 0; i.Add(i, one) {
		sq.Mul(i, i).Mod(sq, p)
		if sq.Cmp(target) == 0 {
			roots = append(roots, new(big.Int).Set(i))
		}
	}
	return roots
}

// squareRoots implements SquareRootsModP for an odd modulus m.
func squareRoots(m *math.Modulus, prime bool, v math.Element) ([]math.Element, error) {
	p := m.BigInt()
	if prime {
		if v.IsZero() {
			return []math.Element{math.NewElement(m)}, nil
		}
		if p.Bit(1) == 1 { // p ≡ 3 (mod 4)
			e := new(big.Int).Add(p, one)
			e.Rsh(e, 2)
			r := v.Clone().Exp(e.Bytes())
			if !r.Clone().Square().Equal(v) {
				return nil, nil
			}
			return rootPair(r), nil
		}
		r, ok := tonelliShanks(v)
		if !ok {
			return nil, nil
		}
		return rootPair(r), nil
	}

	// A composite modulus can have more than two roots, including for zero.
	if p.Cmp(big.NewInt(BruteForceLimit)) >= 0 {
		return nil, ErrNoSquareRootMethod
	}
	var roots []math.Element
	for _, r := range SquareRootsBruteForce(v.BigInt(), p) {
		roots = append(roots, math.NewElementFromBigInt(r, m))
	}
	return roots, nil
}

// rootPair returns {r, -r} in ascending order, collapsed to a single root if r = -r.
func rootPair(r math.Element) []math.Element {
	neg := r.Clone().Negate()
	if neg.Equal(r) {
		return []math.Element{r}
	}
	roots := []math.Element{r, neg}
	slices.SortFunc(roots, func(a, b math.Element) int {
		return a.BigInt().Cmp(b.BigInt())
	})
	return roots
}

// tonelliShanks returns a square root of the non-zero v modulo the odd prime m, or false if v is a non-residue.
func tonelliShanks(v math.Element) (math.Element, bool) {
	m := v.Modulus()
	p := m.BigInt()
	pMinusOne := new(big.Int).Sub(p, one)
	minusOne := math.NewElementFromBigInt(pMinusOne, m)
	legendreExp := new(big.Int).Rsh(pMinusOne, 1).Bytes()

	// Euler's criterion: v^((p-1)/2) = 1 iff v is a quadratic residue.
	if !v.Clone().Exp(legendreExp).IsOne() {
		return nil, false
	}

	// p - 1 = q·2^s with q odd.
	q := new(big.Int).Set(pMinusOne)
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	// Any non-residue z works; the smallest one is found quickly for primes of practical size.
	z := math.NewElement(m).SetUint(2)
	for !z.Clone().Exp(legendreExp).Equal(minusOne) {
		z.Add(math.NewElement(m).SetUint(1))
	}

	qPlusOneHalf := new(big.Int).Add(q, one)
	qPlusOneHalf.Rsh(qPlusOneHalf, 1)

	M := s
	c := z.Exp(q.Bytes())
	t := v.Clone().Exp(q.Bytes())
	r := v.Clone().Exp(qPlusOneHalf.Bytes())

	for !t.IsOne() {
		// Find the least i, 0 < i < M, with t^(2^i) = 1.
		i := 0
		for t2 := t.Clone(); !t2.IsOne(); t2.Square() {
			i++
			if i == M {
				return nil, false
			}
		}

		b := c.Clone()
		for j := 0; j < M-i-1; j++ {
			b.Square()
		}
		M = i
		c = b.Clone().Square()
		t.Multiply(c)
		r.Multiply(b)
	}
	return r, true
}
