package curve

import (
	"errors"
	"fmt"
	"math/big"
)

// Named is a curve together with an optional base point G = (Gx, Gy) of order N. Gx, Gy and N are nil for curves
// without a designated base point.
type Named struct {
	*Curve
	Gx, Gy *big.Int
	N      *big.Int
}

// HasBasePoint returns true if the curve defines a base point.
func (n *Named) HasBasePoint() bool {
	return n.Gx != nil && n.Gy != nil
}

var ErrUnknownCurve = errors.New("unknown curve")

var (
	// SEC 2, Section 2.4.1
	Secp256k1 = mustNamed("secp256k1",
		"0", "7", "0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f",
		"0x79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		"0x483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8",
		"0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
	)

	// NIST 800-186, Section 3.2.1.2
	P224 = mustNamed("P-224",
		"-3", "0xb4050a850c04b3abf54132565044b0b7d7bfd8ba270b39432355ffb4",
		"0xffffffffffffffffffffffffffffffff000000000000000000000001",
		"0xb70e0cbd6bb4bf7f321390b94a03c1d356c21122343280d6115c1d21",
		"0xbd376388b5f723fb4c22dfe6cd4375a05a07476444d5819985007e34",
		"0xffffffffffffffffffffffffffff16a2e0b8f03e13dd29455c5c2a3d",
	)

	// NIST 800-186, Section 3.2.1.3
	P256 = mustNamed("P-256",
		"-3", "0x5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b",
		"0xffffffff00000001000000000000000000000000ffffffffffffffffffffffff",
		"0x6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296",
		"0x4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5",
		"0xffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551",
	)

	// NIST 800-186, Section 3.2.1.4
	P384 = mustNamed("P-384",
		"-3", "0xb3312fa7e23ee7e4988e056be3f82d19181d9c6efe8141120314088f5013875ac656398d8a2ed19d2a85c8edd3ec2aef",
		"0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000ffffffff",
		"0xaa87ca22be8b05378eb1c71ef320ad746e1d3b628ba79b9859f741e082542a385502f25dbf55296c3a545e3872760ab7",
		"0x3617de4a96262c6f5d9e98bf9292dc29f8f41dbd289a147ce9da3113b5f0b8c00a60b1ce1d7e819d7a431d7c90ea0e5f",
		"0xffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973",
	)

	// NIST 800-186, Section 3.2.1.5
	P521 = mustNamed("P-521",
		"-3",
		"0x51953eb9618e1c9a1f929a21a0b68540eea2da725b99b315f3b8b489918ef109e156193951ec7e937b1652c0bd3bb1bf073573df883d2c34f1ef451fd46b503f00",
		"0x1ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		"0xc6858e06b70404e9cd9e3ecb662395b4429c648139053fb521f828af606b4d3dbaa14b5e77efe75928fe1dc127a2ffa8de3348b3c1856a429bf97e7e31c2e5bd66",
		"0x11839296a789a3bc0045c8a5fb42c7d1bd998f54449579b446817afbd17273e662c97ee72995ef42640c550b9013fad0761353c7086a272c24088be94769fd16650",
		"0x1fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffa51868783bf2f966b7fcc0148f709a5d03bb5c9b8899c47aebb6fb71e91386409",
	)

	// NIST 800-186, Appendix B.1: the short Weierstrass form of Curve25519, obtained from the Montgomery coefficient
	// A = 486662 via a = (3 - A²)/3, b = (2A³ - 9A)/27. A Montgomery u-coordinate maps to x = u + A/3.
	Wei25519 = mustNamed("Wei25519",
		"19298681539552699237261830834781317975544997444273427339909597334573241639236",
		"55751746669818908907645289078257140818241103727901012315294400837956729358436",
		"0x7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed",
		"0x2aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaad245a",
		"0x20ae19a1b8a086b4e01edd2c7748d14c923d4d7e6d7c61b229e9c5a27eced3d9",
		"7237005577332262213973186563042994240857116359379907606001950938285454250989",
	)

	// Small curves for demonstrations, small enough to enumerate and to solve discrete logarithms by brute force.
	Lecture23 = mustNamed("lecture23", "2", "3", "23", "1", "11", "12")
	Lecture17 = mustNamed("lecture17", "2", "2", "17", "5", "1", "19")
	ECDLP11   = mustNamed("ecdlp11", "-7", "10", "11", "9", "4", "5")

	// The secp256k1 equation over the reals, used to visualize the chord and tangent construction.
	BitcoinReal = mustNamed("bitcoin-real", "0", "7", "", "", "", "")
)

var SupportedCurves = []*Named{
	Secp256k1,
	P224,
	P256,
	P384,
	P521,
	Wei25519,
	Lecture23,
	Lecture17,
	ECDLP11,
	BitcoinReal,
}

// ByName returns the supported curve with the given name, or an error wrapping ErrUnknownCurve.
func ByName(name string) (*Named, error) {
	for _, c := range SupportedCurves {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
}

// NewNamed parses the textual curve parameters (decimal, or hex with 0x prefix) and returns the named curve. An empty
// modulus selects the reals; empty gx, gy and n leave the base point undefined. A given base point must be on the
// curve.
func NewNamed(name, a, b, p, gx, gy, n string, opts ...Option) (*Named, error) {
	values := make([]*big.Int, 6)
	for i, s := range []string{a, b, p, gx, gy, n} {
		if s == "" {
			continue
		}
		v, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("curve %s: invalid integer %q", name, s)
		}
		values[i] = v
	}
	if values[0] == nil || values[1] == nil {
		return nil, fmt.Errorf("curve %s: coefficients a and b are required", name)
	}
	if (values[3] == nil) != (values[4] == nil) {
		return nil, fmt.Errorf("curve %s: base point requires both gx and gy", name)
	}

	c, err := New(values[0], values[1], values[2], append([]Option{WithName(name)}, opts...)...)
	if err != nil {
		return nil, err
	}
	result := &Named{c, values[3], values[4], values[5]}
	if result.HasBasePoint() && !c.IsOnCurve(c.ElementFromBigInt(result.Gx), c.ElementFromBigInt(result.Gy)) {
		return nil, fmt.Errorf("curve %s: base point (%v, %v) is not on the curve", name, result.Gx, result.Gy)
	}
	return result, nil
}

func mustNamed(name, a, b, p, gx, gy, n string) *Named {
	c, err := NewNamed(name, a, b, p, gx, gy, n)
	if err != nil {
		panic(err)
	}
	return c
}
