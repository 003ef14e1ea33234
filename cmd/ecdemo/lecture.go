package main

import (
	"context"
	"io"
	"math/big"

	"github.com/smartcontractkit/toyecc/internal/curve"
	"github.com/smartcontractkit/toyecc/internal/group"
	"github.com/smartcontractkit/toyecc/internal/points"
	"github.com/smartcontractkit/toyecc/internal/render"
	"github.com/spf13/cobra"
)

func makeLectureCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "lecture",
		Short: "Walk through the complete demonstration: reals, finite fields, scalar multiplication, ECDH and ECDLP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.lecture(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (e *env) lecture(ctx context.Context, out io.Writer) error {
	steps := []struct {
		title string
		run   func(context.Context, io.Writer) error
	}{
		{"Chord and tangent over the reals", e.lectureReals},
		{"A curve over F_23", e.lectureFiniteField},
		{"Scalar multiplication", e.lectureMultiply},
		{"Diffie-Hellman key exchange", e.lectureECDH},
		{"The discrete logarithm problem", e.lectureECDLP},
	}
	for i, step := range steps {
		e.logger.WithField("step", step.title).Debug("Running lecture step")
		printf(out, "\n== %d. %s ==\n\n", i+1, step.title)
		if err := step.run(ctx, out); err != nil {
			return err
		}
	}
	return nil
}

func (e *env) lectureReals(_ context.Context, out io.Writer) error {
	named := curve.BitcoinReal
	c := named.Curve
	printf(out, "%s\n", c.String())

	// P = (-1, √6) and Q = (2, √15)
	var ps []group.Point
	for _, x := range []int64{-1, 2} {
		ys, err := c.YCoordinates(c.Element(x))
		if err != nil {
			return err
		}
		p, err := group.NewPoint(c, c.Element(x), ys[0])
		if err != nil {
			return err
		}
		ps = append(ps, p)
	}
	a := e.arithmetic(c)
	sum, err := a.Add(ps[0], ps[1])
	if err != nil {
		return err
	}
	double, err := a.Double(ps[0])
	if err != nil {
		return err
	}
	printf(out, "P = %s, Q = %s\n", render.Point(ps[0]), render.Point(ps[1]))
	printf(out, "P + Q = %s\n", render.Point(sum))
	printf(out, "2P = %s\n", render.Point(double))
	printf(out, "P + (-P) = %s\n", render.Point(mustAdd(a, ps[0], a.Negate(ps[0]))))
	return nil
}

func (e *env) lectureFiniteField(ctx context.Context, out io.Writer) error {
	named := curve.Lecture23
	c := named.Curve
	ys, err := c.YCoordinates(c.Element(1))
	if err != nil {
		return err
	}
	printf(out, "y-coordinates for x = 1: %s, %s\n\n", render.Coordinate(ys[0]), render.Coordinate(ys[1]))
	return e.printTable(ctx, out, named)
}

func (e *env) lectureMultiply(ctx context.Context, out io.Writer) error {
	named := curve.Lecture23
	c := named.Curve
	a := e.arithmetic(c)
	g, err := group.BasePoint(named)
	if err != nil {
		return err
	}
	p := group.MustPoint(c, 3, 6)

	sum, err := a.Add(g, p)
	if err != nil {
		return err
	}
	printf(out, "%s + %s = %s\n", render.Point(g), render.Point(p), render.Point(sum))

	multiples, err := points.Multiples(a, g, 100)
	if err != nil {
		return err
	}
	printf(out, "\nMultiples of G = %s:\n%s", render.Point(g), render.Multiples("G", multiples))
	order, err := points.PointOrder(ctx, a, g, 100)
	if err != nil {
		return err
	}
	printf(out, "G has order %d\n\n", order)

	if err := e.compareMultiply(out, c, big.NewInt(7), g); err != nil {
		return err
	}
	secp, err := group.BasePoint(curve.Secp256k1)
	if err != nil {
		return err
	}
	printf(out, "\nOn %s:\n", curve.Secp256k1.Name())
	return e.compareMultiply(out, curve.Secp256k1.Curve, big.NewInt(1000), secp)
}

func (e *env) lectureECDH(_ context.Context, out io.Writer) error {
	printf(out, "%s, G = (%v, %v), n = %v\n", curve.Lecture17.String(), curve.Lecture17.Gx, curve.Lecture17.Gy, curve.Lecture17.N)
	return e.exchange(out, curve.Lecture17)
}

func (e *env) lectureECDLP(ctx context.Context, out io.Writer) error {
	named := curve.ECDLP11
	printf(out, "%s\n", named.String())
	c := named.Curve
	return e.discreteLog(ctx, out, named, group.MustPoint(c, 8, 2), named.N.Int64()+1)
}

// mustAdd is used for sums that cannot fail on a valid curve, e.g. P + (-P).
func mustAdd(a group.Arithmetic, p, q group.Point) group.Point {
	r, err := a.Add(p, q)
	if err != nil {
		panic(err)
	}
	return r
}
