package curve

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/smartcontractkit/toyecc/internal/field"
	"github.com/stretchr/testify/require"
)

func lecture23(t *testing.T) *Curve {
	t.Helper()
	c, err := New(big.NewInt(2), big.NewInt(3), big.NewInt(23))
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	c := lecture23(t)
	require.True(t, c.IsFinite())
	require.False(t, c.IsSingular())
	require.Equal(t, int64(23), c.Modulus().Int64())
	require.Equal(t, "y² = x³ + 2x + 3 (mod 23)", c.String())

	// Δ = -16(4·8 + 27·9) = -4400 ≡ 16 (mod 23)
	require.True(t, c.Discriminant().Equal(c.Element(16)))

	// Coefficients are reduced into the field.
	reduced, err := New(big.NewInt(25), big.NewInt(-20), big.NewInt(23))
	require.NoError(t, err)
	require.True(t, c.Equal(reduced))
	require.Equal(t, "y² = x³ + 2x + 3 (mod 23)", reduced.String())

	other, err := New(big.NewInt(2), big.NewInt(3), big.NewInt(29))
	require.NoError(t, err)
	require.False(t, c.Equal(other))
}

func TestNewOverTheReals(t *testing.T) {
	c, err := New(big.NewInt(-7), big.NewInt(10), nil, WithName("real"))
	require.NoError(t, err)
	require.False(t, c.IsFinite())
	require.Nil(t, c.Modulus())
	require.Equal(t, "real", c.Name())
	require.Equal(t, "y² = x³ - 7x + 10", c.String())

	// Δ = -16(4·(-343) + 27·100) = -16·1328
	require.True(t, c.Discriminant().Equal(c.Element(-21248)))

	require.True(t, c.IsOnCurve(c.Element(1), c.Element(2)))
	require.True(t, c.IsOnCurve(c.Element(1), c.Element(-2)))
	require.False(t, c.IsOnCurve(c.Element(1), c.Element(3)))

	ys, err := c.YCoordinates(c.Element(3))
	require.NoError(t, err)
	require.Len(t, ys, 2)
	require.True(t, ys[0].Equal(c.Element(4)))
	require.True(t, ys[1].Equal(c.Element(-4)))

	// x³ - 7x + 10 < 0 for x = -4
	ys, err = c.YCoordinates(c.Element(-4))
	require.NoError(t, err)
	require.Empty(t, ys)

	// x = -3 is not a root, but √(-27 + 21 + 10) = 2
	ys, err = c.YCoordinates(c.Element(-3))
	require.NoError(t, err)
	require.Len(t, ys, 2)
	require.True(t, ys[0].Equal(c.Element(2)))
}

func TestInvalidModulus(t *testing.T) {
	_, err := New(big.NewInt(2), big.NewInt(3), big.NewInt(22))
	var invalid *InvalidCurveError
	require.ErrorAs(t, err, &invalid)
	require.ErrorIs(t, err, field.ErrInvalidModulus)
	require.Equal(t, int64(22), invalid.Modulus.Int64())
}

func TestSingularCurves(t *testing.T) {
	cases := []struct {
		name    string
		a, b    int64
		modulus *big.Int
	}{
		{"cusp over the reals", 0, 0, nil},
		{"node over the reals", -3, 2, nil},
		{"node mod 23", -3, 2, big.NewInt(23)},
		{"discriminant zero only modulo p", 1, 1, big.NewInt(31)}, // 4 + 27 = 31
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()

			curve, err := New(big.NewInt(c.a), big.NewInt(c.b), c.modulus, WithLogger(logger))
			require.NoError(t, err)
			require.True(t, curve.IsSingular())
			require.True(t, curve.Discriminant().IsZero())
			require.Len(t, hook.Entries, 1)
			require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

			_, err = New(big.NewInt(c.a), big.NewInt(c.b), c.modulus, WithStrict())
			var invalid *InvalidCurveError
			require.ErrorAs(t, err, &invalid)
			require.True(t, errors.Is(err, ErrSingularCurve))
			require.True(t, curve.A().Equal(curve.ElementFromBigInt(invalid.A)))
		})
	}
}

func TestCompositeModulusWarning(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c, err := New(big.NewInt(1), big.NewInt(1), big.NewInt(21), WithLogger(logger))
	require.NoError(t, err)
	require.False(t, c.IsSingular())
	require.Len(t, hook.Entries, 1)
	require.Equal(t, "21", hook.LastEntry().Data["modulus"])

	// A prime, non-singular curve logs nothing.
	var buf bytes.Buffer
	silent := logrus.New()
	silent.SetOutput(&buf)
	_, err = New(big.NewInt(1), big.NewInt(1), big.NewInt(23), WithLogger(silent))
	require.NoError(t, err)
	require.Empty(t, buf.String())
}

func TestYCoordinatesCompositeModulus(t *testing.T) {
	c, err := New(big.NewInt(0), big.NewInt(1), big.NewInt(35))
	require.NoError(t, err)

	ys, err := c.YCoordinates(c.Element(0))
	require.NoError(t, err)
	require.Len(t, ys, 4)
	for i, expected := range []int64{1, 6, 29, 34} {
		require.True(t, ys[i].Equal(c.Element(expected)), "root %d", i)
		require.True(t, c.IsOnCurve(c.Element(0), ys[i]))
	}
}

func TestIsOnCurve(t *testing.T) {
	c := lecture23(t)
	require.True(t, c.IsOnCurve(c.Element(1), c.Element(11)))
	require.True(t, c.IsOnCurve(c.Element(1), c.Element(12)))
	require.True(t, c.IsOnCurve(c.Element(5), c.Element(0)))
	require.True(t, c.IsOnCurve(c.Element(24), c.Element(-11))) // (1, 12) before reduction
	require.False(t, c.IsOnCurve(c.Element(1), c.Element(7)))
	require.False(t, c.IsOnCurve(c.Element(2), c.Element(0)))
}

func TestYCoordinates(t *testing.T) {
	c := lecture23(t)

	// 1 + 2 + 3 = 6, and 11² = 121 = 5·23 + 6
	ys, err := c.YCoordinates(c.Element(1))
	require.NoError(t, err)
	require.Len(t, ys, 2)
	require.Equal(t, "11", ys[0].String())
	require.Equal(t, "12", ys[1].String())

	// 2³ + 4 + 3 = 15 is a non-residue mod 23
	ys, err = c.YCoordinates(c.Element(2))
	require.NoError(t, err)
	require.Empty(t, ys)

	// 2-torsion: x³ + 2x + 3 ≡ 0 for x = 5, 19, 22
	for _, x := range []int64{5, 19, 22} {
		ys, err = c.YCoordinates(c.Element(x))
		require.NoError(t, err)
		require.Len(t, ys, 1)
		require.True(t, ys[0].IsZero())
	}
}

func TestYCoordinatesMembership(t *testing.T) {
	for _, named := range []*Named{Lecture23, Lecture17, ECDLP11} {
		t.Run(named.Name(), func(t *testing.T) {
			p := named.Modulus().Int64()
			count := 0
			for x := int64(0); x < p; x++ {
				ys, err := named.YCoordinates(named.Element(x))
				require.NoError(t, err)
				for _, y := range ys {
					require.True(t, named.IsOnCurve(named.Element(x), y))
					count++
				}

				// Every y not returned must not satisfy the equation.
				for y := int64(0); y < p; y++ {
					on := named.IsOnCurve(named.Element(x), named.Element(y))
					found := false
					for _, r := range ys {
						found = found || r.Equal(named.Element(y))
					}
					require.Equal(t, on, found, "x=%d, y=%d", x, y)
				}
			}
			require.Equal(t, map[string]int{"lecture23": 23, "lecture17": 18, "ecdlp11": 14}[named.Name()], count)
		})
	}
}

func TestYCoordinatesLargeCurves(t *testing.T) {
	for _, named := range []*Named{Secp256k1, P224, P256, P384, P521, Wei25519} {
		t.Run(named.Name(), func(t *testing.T) {
			ys, err := named.YCoordinates(named.ElementFromBigInt(named.Gx))
			require.NoError(t, err)
			require.Len(t, ys, 2)

			gy := named.ElementFromBigInt(named.Gy)
			require.True(t, ys[0].Equal(gy) || ys[1].Equal(gy))
			require.True(t, named.Field().Add(ys[0], ys[1]).IsZero())
		})
	}
}

func TestNamedCurves(t *testing.T) {
	seen := map[string]bool{}
	for _, named := range SupportedCurves {
		require.False(t, seen[named.Name()], "duplicate name %s", named.Name())
		seen[named.Name()] = true
		require.False(t, named.IsSingular(), named.Name())

		c, err := ByName(named.Name())
		require.NoError(t, err)
		require.Same(t, named, c)

		if named.HasBasePoint() {
			require.True(t, named.IsOnCurve(named.ElementFromBigInt(named.Gx), named.ElementFromBigInt(named.Gy)))
		}
	}

	require.False(t, BitcoinReal.HasBasePoint())
	require.False(t, BitcoinReal.IsFinite())
	require.Equal(t, "y² = x³ + 7", BitcoinReal.String())
	require.True(t, strings.HasPrefix(P256.String(), "y² = x³ - 3x + 41058363725152142129326129780047268409114441015993725554835256314039467401291 (mod"))

	_, err := ByName("P-255")
	require.ErrorIs(t, err, ErrUnknownCurve)
}

func TestWei25519Coefficients(t *testing.T) {
	// a = (3 - A²)/3, b = (2A³ - 9A)/27 for the Montgomery coefficient A of Curve25519.
	f := Wei25519.Field()
	A := f.FromInt64(486662)
	inv3, err := f.Inverse(f.FromInt64(3))
	require.NoError(t, err)
	inv27, err := f.Inverse(f.FromInt64(27))
	require.NoError(t, err)

	a := f.Mul(f.Sub(f.FromInt64(3), f.Mul(A, A)), inv3)
	b := f.Mul(f.Sub(f.Mul(f.FromInt64(2), f.Mul(A, f.Mul(A, A))), f.Mul(f.FromInt64(9), A)), inv27)
	require.True(t, a.Equal(Wei25519.A()))
	require.True(t, b.Equal(Wei25519.B()))

	// The base point corresponds to the Montgomery u-coordinate 9.
	gx := f.Add(f.FromInt64(9), f.Mul(A, inv3))
	require.True(t, gx.Equal(Wei25519.ElementFromBigInt(Wei25519.Gx)))
}

func TestNewNamed(t *testing.T) {
	c, err := NewNamed("custom", "-7", "0xa", "11", "9", "4", "5")
	require.NoError(t, err)
	require.True(t, c.Equal(ECDLP11.Curve))
	require.Equal(t, "custom", c.Name())

	_, err = NewNamed("offcurve", "2", "3", "23", "1", "10", "")
	require.Error(t, err)

	_, err = NewNamed("halfpoint", "2", "3", "23", "1", "", "")
	require.Error(t, err)

	_, err = NewNamed("garbage", "two", "3", "23", "", "", "")
	require.Error(t, err)

	_, err = NewNamed("nocoefficients", "", "3", "23", "", "", "")
	require.Error(t, err)
}
