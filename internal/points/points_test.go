package points

import (
	"context"
	"math/big"
	"testing"

	"github.com/smartcontractkit/toyecc/internal/curve"
	"github.com/smartcontractkit/toyecc/internal/group"
	"github.com/stretchr/testify/require"
)

func TestEnumerate(t *testing.T) {
	c := curve.Lecture23.Curve
	table, err := Enumerate(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, 23, table.Len())
	require.Equal(t, 24, table.GroupOrder())
	require.Same(t, c, table.Curve())

	expected := [][2]int64{
		{0, 7}, {0, 16}, {1, 11}, {1, 12}, {3, 6}, {3, 17}, {4, 11}, {4, 12}, {5, 0}, {6, 1}, {6, 22}, {8, 5},
		{8, 18}, {13, 8}, {13, 15}, {15, 2}, {15, 21}, {18, 11}, {18, 12}, {19, 0}, {20, 4}, {20, 19}, {22, 0},
	}
	for i, p := range table.Points() {
		requirePoint(t, group.MustPoint(c, expected[i][0], expected[i][1]), p)
	}

	require.True(t, table.Contains(group.MustPoint(c, 13, 15)))
	require.Equal(t, 2, table.Index(group.MustPoint(c, 1, 11)))
	require.False(t, table.Contains(group.Infinity))
	require.Equal(t, -1, table.Index(group.Infinity))
}

func TestEnumerateGroupOrders(t *testing.T) {
	cases := map[*curve.Named]int{
		curve.Lecture23: 24,
		curve.Lecture17: 19,
		curve.ECDLP11:   15,
	}
	for named, order := range cases {
		table, err := Enumerate(context.Background(), named.Curve)
		require.NoError(t, err)
		require.Equal(t, order, table.GroupOrder(), named.Name())
	}

	// A larger prime, to spread the work over all workers.
	c, err := curve.New(big.NewInt(1), big.NewInt(1), big.NewInt(7919))
	require.NoError(t, err)
	table, err := Enumerate(context.Background(), c)
	require.NoError(t, err)
	for _, p := range table.Points() {
		require.True(t, c.IsOnCurve(p.X(), p.Y()))
	}
	// Hasse: |#E - (p + 1)| ≤ 2√p
	require.InDelta(t, 7920, table.GroupOrder(), 2*89)
}

func TestEnumerateErrors(t *testing.T) {
	_, err := Enumerate(context.Background(), curve.BitcoinReal.Curve)
	require.ErrorIs(t, err, ErrInfiniteField)

	_, err = Enumerate(context.Background(), curve.P256.Curve)
	require.ErrorIs(t, err, ErrTooLarge)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Enumerate(ctx, curve.Lecture23.Curve)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCache(t *testing.T) {
	cache, err := NewCache(2)
	require.NoError(t, err)

	t1, err := cache.Table(context.Background(), curve.Lecture23.Curve)
	require.NoError(t, err)
	t2, err := cache.Table(context.Background(), curve.Lecture23.Curve)
	require.NoError(t, err)
	require.Same(t, t1, t2)

	_, err = cache.Table(context.Background(), curve.Lecture17.Curve)
	require.NoError(t, err)
	_, err = cache.Table(context.Background(), curve.ECDLP11.Curve)
	require.NoError(t, err)
	require.Equal(t, 2, cache.Len())

	// lecture23 was evicted and is enumerated again.
	t3, err := cache.Table(context.Background(), curve.Lecture23.Curve)
	require.NoError(t, err)
	require.NotSame(t, t1, t3)

	_, err = cache.Table(context.Background(), curve.BitcoinReal.Curve)
	require.ErrorIs(t, err, ErrInfiniteField)

	_, err = NewCache(0)
	require.Error(t, err)
}

func TestPointOrder(t *testing.T) {
	c := curve.Lecture23.Curve
	a := group.Arithmetic{Curve: c}
	cases := []struct {
		x, y  int64
		order int64
	}{
		{1, 11, 12},
		{0, 7, 6},
		{5, 0, 2},
		{19, 0, 2},
		{22, 0, 2},
		{8, 5, 3},
		{15, 2, 4},
	}
	for _, tc := range cases {
		order, err := PointOrder(context.Background(), a, group.MustPoint(c, tc.x, tc.y), 100)
		require.NoError(t, err)
		require.Equal(t, tc.order, order, "(%d, %d)", tc.x, tc.y)
	}

	order, err := PointOrder(context.Background(), a, group.Infinity, 100)
	require.NoError(t, err)
	require.Equal(t, int64(1), order)

	_, err = PointOrder(context.Background(), a, group.MustPoint(c, 1, 11), 11)
	require.ErrorIs(t, err, ErrNotFound)

	// Every point order divides the group order.
	table, err := Enumerate(context.Background(), c)
	require.NoError(t, err)
	for _, p := range table.Points() {
		order, err := PointOrder(context.Background(), a, p, 24)
		require.NoError(t, err)
		require.Zero(t, 24%order)
	}
}

func TestMultiples(t *testing.T) {
	c := curve.ECDLP11.Curve
	a := group.Arithmetic{Curve: c}
	multiples, err := Multiples(a, group.MustPoint(c, 9, 4), 100)
	require.NoError(t, err)

	expected := []group.Point{
		group.MustPoint(c, 9, 4), group.MustPoint(c, 8, 9), group.MustPoint(c, 8, 2), group.MustPoint(c, 9, 7),
		group.Infinity,
	}
	require.Len(t, multiples, len(expected))
	for i := range expected {
		requirePoint(t, expected[i], multiples[i])
	}

	multiples, err = Multiples(a, group.MustPoint(c, 9, 4), 2)
	require.NoError(t, err)
	require.Len(t, multiples, 2)
}

func TestDiscreteLog(t *testing.T) {
	c := curve.ECDLP11.Curve
	a := group.Arithmetic{Curve: c}
	g := group.MustPoint(c, 9, 4)

	for k, target := range []group.Point{group.Infinity, g, group.MustPoint(c, 8, 9), group.MustPoint(c, 8, 2), group.MustPoint(c, 9, 7)} {
		log, err := DiscreteLog(context.Background(), a, g, target, 100)
		require.NoError(t, err)
		require.Equal(t, int64(k), log)
	}

	// Points outside the subgroup generated by g.
	table, err := Enumerate(context.Background(), c)
	require.NoError(t, err)
	outside := 0
	for _, p := range table.Points() {
		if _, err := DiscreteLog(context.Background(), a, g, p, 100); err != nil {
			require.ErrorIs(t, err, ErrNotFound)
			outside++
		}
	}
	require.Equal(t, 10, outside) // 14 affine points, 4 of them in <g>

	// lecture23: 7·G = (3, 6)
	l := curve.Lecture23.Curve
	log, err := DiscreteLog(context.Background(), group.Arithmetic{Curve: l}, group.MustPoint(l, 1, 11), group.MustPoint(l, 3, 6), 100)
	require.NoError(t, err)
	require.Equal(t, int64(7), log)
}

func requirePoint(t *testing.T, expected, actual group.Point) {
	t.Helper()
	require.True(t, expected.Equal(actual), "expected %v, got %v", expected, actual)
}
