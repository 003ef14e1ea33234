package field

import (
	"fmt"
	"math/big"

	"github.com/smartcontractkit/toyecc/internal/math"
)

// ModularInverse returns v in [0, modulus) with value·v ≡ 1 (mod modulus). If gcd(value, modulus) != 1 (in
// particular if value ≡ 0), a *NoInverseError is returned. Odd moduli use bigmod's binary extended GCD; even moduli
// (which bigmod does not invert over) use big.Int.ModInverse.
func ModularInverse(value, modulus *big.Int) (*big.Int, error) {
	if modulus == nil || modulus.Cmp(one) <= 0 {
		return nil, fmt.Errorf("invalid modulus %v", modulus)
	}

	if modulus.Bit(0) == 1 {
		m, err := math.NewModulus(modulus)
		if err != nil {
			return nil, err
		}
		inv, ok := math.NewElementFromBigInt(value, m).InverseVarTime()
		if !ok {
			return nil, &NoInverseError{new(big.Int).Set(value), new(big.Int).Set(modulus)}
		}
		return inv.BigInt(), nil
	}

	reduced := new(big.Int).Mod(value, modulus)
	inv := new(big.Int).ModInverse(reduced, modulus)
	if inv == nil {
		return nil, &NoInverseError{new(big.Int).Set(value), new(big.Int).Set(modulus)}
	}
	return inv, nil
}
