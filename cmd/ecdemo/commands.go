package main

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/sirupsen/logrus"
	"github.com/smartcontractkit/toyecc/internal/curve"
	"github.com/smartcontractkit/toyecc/internal/ecdh"
	"github.com/smartcontractkit/toyecc/internal/group"
	"github.com/smartcontractkit/toyecc/internal/points"
	"github.com/smartcontractkit/toyecc/internal/render"
	"github.com/spf13/cobra"
)

// Largest scalar for which multiply also runs the repeated addition baseline.
const maxRepeatedScalar = 100_000

func makeCurvesCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "curves",
		Short: "List the built-in and configured curves.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := e.cfg.Registry()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, named := range registry {
				printf(out, "%-13s %s\n", named.Name(), named.String())
				if named.HasBasePoint() {
					g, err := group.BasePoint(named)
					if err != nil {
						return err
					}
					printf(out, "%-13s G = %s\n", "", render.Point(g))
					if named.N != nil {
						printf(out, "%-13s n = %s\n", "", render.Scalar(named.N))
					}
				}
			}
			return nil
		},
	}
}

func makePointsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "points",
		Short: "Enumerate all points of a small curve and plot them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			named, err := e.curve(curve.Lecture23.Name())
			if err != nil {
				return err
			}
			return e.printTable(cmd.Context(), cmd.OutOrStdout(), named)
		},
	}
}

func (e *env) printTable(ctx context.Context, out io.Writer, named *curve.Named) error {
	table, err := e.tables.Table(ctx, named.Curve)
	if err != nil {
		return err
	}
	printf(out, "%s has %d points (including ∞):\n%s\n", named.String(), table.GroupOrder(), render.PointList(table.Points()))

	var highlight []group.Point
	if named.HasBasePoint() {
		g, err := group.BasePoint(named)
		if err != nil {
			return err
		}
		highlight = append(highlight, g)
	}
	grid, err := render.Grid(table, highlight...)
	if err != nil {
		e.logger.WithError(err).Debug("Skipping plot")
		return nil
	}
	printf(out, "\n%s", grid)
	return nil
}

func makeAddCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "add <x1> <y1> <x2> <y2>",
		Short: "Add two points; use \"inf\" for the point at infinity.",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			named, err := e.curve(curve.Lecture23.Name())
			if err != nil {
				return err
			}
			p, q, err := parsePointPair(named.Curve, args)
			if err != nil {
				return err
			}
			r, err := e.arithmetic(named.Curve).Add(p, q)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s + %s = %s\n", render.Point(p), render.Point(q), render.Point(r))
			return nil
		},
	}
}

// parsePointPair splits the arguments of add into two points, each given as "x y" or "inf".
func parsePointPair(c *curve.Curve, args []string) (group.Point, group.Point, error) {
	split := 2
	if len(args) > 0 && (args[0] == "inf" || args[0] == "∞") {
		split = 1
	}
	if split > len(args) {
		return group.Infinity, group.Infinity, fmt.Errorf("expected two points, got %q", args)
	}
	p, err := parsePoint(c, args[:split]...)
	if err != nil {
		return group.Infinity, group.Infinity, err
	}
	q, err := parsePoint(c, args[split:]...)
	if err != nil {
		return group.Infinity, group.Infinity, err
	}
	return p, q, nil
}

func makeMultiplyCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "multiply [--] <k> [<x> <y>]",
		Short: "Multiply a point (default: the base point) by a scalar, and compare with repeated addition.",
		Long: `Multiply a point (default: the base point) by a scalar, and compare with repeated addition.

Arguments starting with "-" are read as flags; pass negative values after "--", e.g.
    ecdemo multiply -- -3
`,
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			named, err := e.curve(curve.Lecture23.Name())
			if err != nil {
				return err
			}
			k, err := parseScalar(args[0])
			if err != nil {
				return err
			}
			var p group.Point
			if len(args) > 1 {
				p, err = parsePoint(named.Curve, args[1:]...)
			} else {
				p, err = group.BasePoint(named)
			}
			if err != nil {
				return err
			}
			return e.compareMultiply(cmd.OutOrStdout(), named.Curve, k, p)
		},
	}
}

// compareMultiply prints k·p and the number of group operations of double-and-add and, for small k, of repeated
// addition.
func (e *env) compareMultiply(out io.Writer, c *curve.Curve, k *big.Int, p group.Point) error {
	a := e.arithmetic(c)

	e.metrics.Reset()
	r, err := a.Multiply(k, p)
	if err != nil {
		return err
	}
	printf(out, "%v·%s = %s\n", k, render.Point(p), render.Point(r))
	fast := e.metrics.Total(c)
	printf(out, "double-and-add: %v additions, %v doublings, %v inversions\n",
		e.metrics.Count(c, group.OpAdd), e.metrics.Count(c, group.OpDouble), e.metrics.Count(c, group.OpInverse))

	if k.Cmp(big.NewInt(maxRepeatedScalar)) > 0 {
		return nil
	}
	e.metrics.Reset()
	s, err := a.MultiplyRepeated(k, p)
	if err != nil {
		return err
	}
	if !s.Equal(r) {
		return fmt.Errorf("repeated addition yields %s, double-and-add %s", render.Point(s), render.Point(r))
	}
	slow := e.metrics.Total(c)
	printf(out, "repeated addition: %v additions, %v doublings, %v inversions\n",
		e.metrics.Count(c, group.OpAdd), e.metrics.Count(c, group.OpDouble), e.metrics.Count(c, group.OpInverse))
	e.logger.WithFields(logrus.Fields{"k": k.String(), "doubleAndAdd": fast, "repeated": slow}).Info("Compared scalar multiplication")
	return nil
}

func makeECDHCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "ecdh",
		Short: "Run a toy Diffie-Hellman key exchange.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			named, err := e.curve(curve.Lecture17.Name())
			if err != nil {
				return err
			}
			return e.exchange(cmd.OutOrStdout(), named)
		},
	}
}

func (e *env) exchange(out io.Writer, named *curve.Named) error {
	if !named.HasBasePoint() || named.N == nil {
		return fmt.Errorf("curve %s has no base point of known order", named.Name())
	}
	g, err := group.BasePoint(named)
	if err != nil {
		return err
	}
	transcript, err := ecdh.Exchange(e.arithmetic(named.Curve), g, named.N, e.random("ecdh/"+named.Name()))
	if err != nil {
		return err
	}
	for _, p := range []*ecdh.Party{transcript.Alice, transcript.Bob} {
		printf(out, "%-5s private %s, public %s\n", p.Name, render.Scalar(p.Private), render.Point(p.Public))
	}
	printf(out, "shared point %s\n", render.Point(transcript.Shared))
	printf(out, "shared key   %s\n", transcript.Key.Hex())
	e.logger.WithFields(logrus.Fields{"curve": named.Name()}).Debug("Key exchange complete")
	return nil
}

func makeDiscreteLogCommand(e *env) *cobra.Command {
	var limit int64
	command := &cobra.Command{
		Use:   "dlog <x> <y>",
		Short: "Find k with k·G = (x, y) by brute force.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			named, err := e.curve(curve.ECDLP11.Name())
			if err != nil {
				return err
			}
			target, err := parsePoint(named.Curve, args...)
			if err != nil {
				return err
			}
			return e.discreteLog(cmd.Context(), cmd.OutOrStdout(), named, target, limit)
		},
	}
	command.Flags().Int64Var(&limit, "limit", 1<<20, "maximum number of additions")
	return command
}

func (e *env) discreteLog(ctx context.Context, out io.Writer, named *curve.Named, target group.Point, limit int64) error {
	g, err := group.BasePoint(named)
	if err != nil {
		return err
	}
	k, err := points.DiscreteLog(ctx, e.arithmetic(named.Curve), g, target, limit)
	if err != nil {
		return err
	}
	printf(out, "%d·%s = %s\n", k, render.Point(g), render.Point(target))
	return nil
}
