package group

import (
	"bytes"
	"math/big"
	"slices"
	"testing"

	"filippo.io/edwards25519"
	"filippo.io/nistec"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/smartcontractkit/toyecc/internal/curve"
	"github.com/smartcontractkit/toyecc/internal/unsaferand"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/curve25519"
)

// The affine arithmetic is compared against production implementations of the same curves. The point encoding
// (0x04 || x || y, fixed width) coincides with the uncompressed SEC 1 encoding used by nistec and secp256k1.

type scalarBaseMult func(k []byte) ([]byte, error)

func nistecP224(k []byte) ([]byte, error) {
	p, err := nistec.NewP224Point().ScalarBaseMult(k)
	if err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

func nistecP256(k []byte) ([]byte, error) {
	p, err := nistec.NewP256Point().ScalarBaseMult(k)
	if err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

func nistecP384(k []byte) ([]byte, error) {
	p, err := nistec.NewP384Point().ScalarBaseMult(k)
	if err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

func nistecP521(k []byte) ([]byte, error) {
	p, err := nistec.NewP521Point().ScalarBaseMult(k)
	if err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

func decredSecp256k1(k []byte) ([]byte, error) {
	return secp256k1.PrivKeyFromBytes(k).PubKey().SerializeUncompressed(), nil
}

func TestScalarBaseMultMatchesProductionImplementations(t *testing.T) {
	rand := unsaferand.New("TestScalarBaseMultMatchesProductionImplementations")

	cases := []struct {
		named      *curve.Named
		scalarSize int
		reference  scalarBaseMult
	}{
		{curve.P224, 28, nistecP224},
		{curve.P256, 32, nistecP256},
		{curve.P384, 48, nistecP384},
		{curve.P521, 66, nistecP521},
		{curve.Secp256k1, 32, decredSecp256k1},
	}
	for _, c := range cases {
		t.Run(c.named.Name(), func(t *testing.T) {
			g, err := BasePoint(c.named)
			require.NoError(t, err)

			scalars := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3), new(big.Int).Sub(c.named.N, big.NewInt(1))}
			for i := 0; i < 4; i++ {
				scalars = append(scalars, new(big.Int).Add(rand.BigIntn(new(big.Int).Sub(c.named.N, big.NewInt(1))), big.NewInt(1)))
			}

			for _, k := range scalars {
				expected, err := c.reference(k.FillBytes(make([]byte, c.scalarSize)))
				require.NoError(t, err)

				p, err := Multiply(c.named.Curve, k, g)
				require.NoError(t, err)
				actual, err := Marshal(c.named.Curve, p)
				require.NoError(t, err)
				require.Equal(t, expected, actual, "k = %v", k)
			}
		})
	}
}

// Wei25519 points map to Curve25519 by u = x - A/3, so the Montgomery u-coordinate of k·G can be compared with
// edwards25519 (via the birational map to Curve25519) and with X25519.
func montgomeryU(t *testing.T, p Point) []byte {
	t.Helper()
	f := curve.Wei25519.Field()
	inv3, err := f.Inverse(f.FromInt64(3))
	require.NoError(t, err)
	u, ok := f.Sub(p.X(), f.Mul(f.FromInt64(486662), inv3)).BigInt()
	require.True(t, ok)

	le := u.FillBytes(make([]byte, 32))
	slices.Reverse(le)
	return le
}

func TestWei25519MatchesEdwards25519(t *testing.T) {
	rand := unsaferand.New("TestWei25519MatchesEdwards25519")
	g, err := BasePoint(curve.Wei25519)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		k := new(big.Int).Add(rand.BigIntn(new(big.Int).Sub(curve.Wei25519.N, big.NewInt(1))), big.NewInt(1))

		le := k.FillBytes(make([]byte, 32))
		slices.Reverse(le)
		s, err := edwards25519.NewScalar().SetCanonicalBytes(le)
		require.NoError(t, err)
		expected := new(edwards25519.Point).ScalarBaseMult(s).BytesMontgomery()

		p, err := Multiply(curve.Wei25519.Curve, k, g)
		require.NoError(t, err)
		require.Equal(t, expected, montgomeryU(t, p), "k = %v", k)
	}
}

func TestWei25519MatchesX25519(t *testing.T) {
	rand := unsaferand.New("TestWei25519MatchesX25519")
	g, err := BasePoint(curve.Wei25519)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		scalar := make([]byte, 32)
		_, err := rand.Read(scalar)
		require.NoError(t, err)

		expected, err := curve25519.X25519(scalar, curve25519.Basepoint)
		require.NoError(t, err)

		// X25519 clamps the little-endian scalar: clear the three low bits, clear bit 255 and set bit 254.
		clamped := bytes.Clone(scalar)
		clamped[0] &= 248
		clamped[31] &= 127
		clamped[31] |= 64
		slices.Reverse(clamped)
		k := new(big.Int).SetBytes(clamped)

		p, err := Multiply(curve.Wei25519.Curve, k, g)
		require.NoError(t, err)
		require.Equal(t, expected, montgomeryU(t, p))
	}
}
