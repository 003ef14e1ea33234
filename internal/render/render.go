// Package render formats curves and points as text for the command line.
package render

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
	"github.com/smartcontractkit/toyecc/internal/field"
	"github.com/smartcontractkit/toyecc/internal/group"
	"github.com/smartcontractkit/toyecc/internal/points"
)

// RealPlaces is the number of decimal places of real coordinates.
const RealPlaces = 6

// MaxGridModulus is the largest modulus Grid renders.
const MaxGridModulus = 64

var ErrGridTooLarge = errors.New("curve too large to plot")

// Coordinate formats a field element: finite field elements below 2^64 in decimal, larger ones as 0x-prefixed hex,
// reals rounded to RealPlaces decimal places.
func Coordinate(e field.Element) string {
	if e.Field().Modulus() != nil {
		v, _ := e.BigInt()
		return Scalar(v)
	}
	if f, ok := e.(interface{ Float() *big.Float }); ok {
		d, err := decimal.NewFromString(f.Float().Text('f', 2*RealPlaces+10))
		if err == nil {
			return d.Round(RealPlaces).String()
		}
	}
	return e.String()
}

// Scalar formats an integer such as a private key or group order, using the same convention as Coordinate.
func Scalar(k *big.Int) string {
	if k.BitLen() > 64 {
		return hexutil.EncodeBig(k)
	}
	return k.String()
}

func Point(p group.Point) string {
	if p.IsInfinity() {
		return "∞"
	}
	return fmt.Sprintf("(%s, %s)", Coordinate(p.X()), Coordinate(p.Y()))
}

// PointList formats points as a comma separated set, e.g. "{(0, 7), (0, 16), ∞}".
func PointList(ps []group.Point) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = Point(p)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Multiples formats the multiples k·G, one per line, starting with k = 1.
func Multiples(name string, ps []group.Point) string {
	var sb strings.Builder
	for i, p := range ps {
		fmt.Fprintf(&sb, "%3d·%s = %s\n", i+1, name, Point(p))
	}
	return sb.String()
}

// Grid plots the points of a small curve: x grows to the right, y upwards. Points are drawn as 'o', highlighted
// points as '*'.
func Grid(t *points.Table, highlight ...group.Point) (string, error) {
	p := t.Curve().Modulus()
	if p == nil || p.Cmp(big.NewInt(MaxGridModulus)) > 0 {
		return "", fmt.Errorf("%w: modulus %v", ErrGridTooLarge, p)
	}
	n := int(p.Int64())

	cells := make([][]byte, n)
	for y := range cells {
		cells[y] = []byte(strings.Repeat(".", n))
	}
	mark := func(pt group.Point, c byte) {
		if pt.IsInfinity() {
			return
		}
		x, _ := pt.X().BigInt()
		y, _ := pt.Y().BigInt()
		cells[y.Int64()][x.Int64()] = c
	}
	for _, pt := range t.Points() {
		mark(pt, 'o')
	}
	for _, pt := range highlight {
		mark(pt, '*')
	}

	var sb strings.Builder
	for y := n - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%3d | ", y)
		for x := 0; x < n; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(cells[y][x])
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("    +")
	sb.WriteString(strings.Repeat("-", 2*n))
	sb.WriteString("\n      ")
	for x := 0; x < n; x++ {
		if x%5 == 0 {
			label := fmt.Sprintf("%-10d", x)
			sb.WriteString(label[:min(10, 2*(n-x))])
		}
	}
	return strings.TrimRight(sb.String(), " ") + "\n", nil
}
