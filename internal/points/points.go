// Package points enumerates the points of small curves over prime fields and answers brute-force questions about
// them: group order, point order, and discrete logarithms. Everything here is O(p) or O(n) and only meant for
// demonstration curves.
package points

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"runtime"
	"slices"

	"github.com/smartcontractkit/toyecc/internal/curve"
	"github.com/smartcontractkit/toyecc/internal/group"
	"golang.org/x/sync/errgroup"
)

// MaxEnumerableModulus is the largest modulus (exclusive) for which Enumerate scans all x-coordinates.
const MaxEnumerableModulus = 1 << 16

var (
	ErrInfiniteField = errors.New("points of a curve over the reals cannot be enumerated")
	ErrTooLarge      = errors.New("modulus too large to enumerate")
	ErrNotFound      = errors.New("not found within the search limit")
)

// Table holds every affine point of a curve, sorted by x and then by y.
type Table struct {
	curve  *curve.Curve
	points []group.Point
}

// Enumerate collects all affine points (x, y) for x in [0, p) using c.YCoordinates. The x-range is split into chunks
// that are scanned concurrently; the Curve is only read.
func Enumerate(ctx context.Context, c *curve.Curve) (*Table, error) {
	p := c.Modulus()
	if p == nil {
		return nil, ErrInfiniteField
	}
	if p.Cmp(big.NewInt(MaxEnumerableModulus)) >= 0 {
		return nil, fmt.Errorf("%w: %v >= %d", ErrTooLarge, p, MaxEnumerableModulus)
	}

	modulus := p.Int64()
	workers := int64(runtime.NumCPU())
	if workers > modulus {
		workers = modulus
	}
	chunk := (modulus + workers - 1) / workers
	results := make([][]group.Point, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := int64(0); w < workers; w++ {
		from, to := w*chunk, min((w+1)*chunk, modulus)
		g.Go(func() error {
			for x := from; x < to; x++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				xe := c.Element(x)
				ys, err := c.YCoordinates(xe)
				if err != nil {
					return fmt.Errorf("x = %d: %w", x, err)
				}
				for _, y := range ys {
					pt, err := group.NewPoint(c, xe, y)
					if err != nil {
						return err
					}
					results[w] = append(results[w], pt)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Table{c, slices.Concat(results...)}, nil
}

func (t *Table) Curve() *curve.Curve {
	return t.curve
}

// Points returns a copy of the affine points.
func (t *Table) Points() []group.Point {
	return slices.Clone(t.points)
}

// Len returns the number of affine points.
func (t *Table) Len() int {
	return len(t.points)
}

// GroupOrder returns the number of points including the point at infinity.
func (t *Table) GroupOrder() int {
	return len(t.points) + 1
}

// Index returns the position of p in Points(), or -1. The point at infinity is never contained.
func (t *Table) Index(p group.Point) int {
	return slices.IndexFunc(t.points, p.Equal)
}

func (t *Table) Contains(p group.Point) bool {
	return t.Index(p) >= 0
}

// PointOrder returns the smallest n > 0 with n·p = ∞, adding p at most limit times.
func PointOrder(ctx context.Context, a group.Arithmetic, p group.Point, limit int64) (int64, error) {
	if p.IsInfinity() {
		return 1, nil
	}
	q := p
	for n := int64(1); n <= limit; n++ {
		if q.IsInfinity() {
			return n, nil
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		var err error
		if q, err = a.Add(q, p); err != nil {
			return 0, err
		}
	}
	return 0, fmt.Errorf("order of %v: %w (%d)", p, ErrNotFound, limit)
}

// Multiples returns g, 2·g, 3·g, ... up to and including the first multiple that is the point at infinity, or at most
// limit points.
func Multiples(a group.Arithmetic, g group.Point, limit int) ([]group.Point, error) {
	var result []group.Point
	q := g
	for len(result) < limit {
		result = append(result, q)
		if q.IsInfinity() {
			break
		}
		var err error
		if q, err = a.Add(q, g); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// DiscreteLog returns the smallest k ≥ 0 with k·g = target, trying k < limit by repeated addition.
func DiscreteLog(ctx context.Context, a group.Arithmetic, g, target group.Point, limit int64) (int64, error) {
	q := group.Infinity
	for k := int64(0); k < limit; k++ {
		if q.Equal(target) {
			return k, nil
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		var err error
		if q, err = a.Add(q, g); err != nil {
			return 0, err
		}
		if q.IsInfinity() {
			break // g generates a cycle not containing target
		}
	}
	return 0, fmt.Errorf("discrete logarithm of %v to base %v: %w", target, g, ErrNotFound)
}
