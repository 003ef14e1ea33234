package group

import (
	"errors"
	"fmt"

	"github.com/smartcontractkit/toyecc/internal/codec"
	"github.com/smartcontractkit/toyecc/internal/curve"
	"github.com/smartcontractkit/toyecc/internal/field"
)

// Point encoding, for curves over a prime field only: a single tag byte followed by the fixed-width big-endian
// coordinates (each field.PrimeField.ElementSize() bytes).
const (
	tagInfinity byte = 0x00
	tagAffine   byte = 0x04
)

var ErrUnsupportedField = errors.New("points are only encodable on curves over a prime field")

// EncodedLength returns the length of an encoded affine point on c.
func EncodedLength(c *curve.Curve) (int, error) {
	f, err := primeField(c)
	if err != nil {
		return 0, err
	}
	return 1 + 2*f.ElementSize(), nil
}

// Marshal returns the encoding of p on c. The point at infinity is encoded as the single byte 0x00.
func Marshal(c *curve.Curve, p Point) ([]byte, error) {
	if _, err := primeField(c); err != nil {
		return nil, err
	}
	return codec.Marshal(&pointCodec{c, p})
}

// Unmarshal decodes a point on c and verifies that it is on the curve.
func Unmarshal(c *curve.Curve, data []byte) (Point, error) {
	f, err := primeField(c)
	if err != nil {
		return Infinity, err
	}
	pc, err := codec.UnmarshalUsing(data, (&pointCodec{c, Infinity}).UnmarshalFrom)
	if err != nil {
		return Infinity, fmt.Errorf("invalid point encoding for %s: %w", f.Name(), err)
	}
	return pc.p, nil
}

type pointCodec struct {
	c *curve.Curve
	p Point
}

var _ codec.Codec[*pointCodec] = &pointCodec{}

func (pc *pointCodec) IsNil() bool {
	return pc == nil
}

func (pc *pointCodec) MarshalTo(target codec.Target) {
	if pc.p.IsInfinity() {
		target.WriteUint8(tagInfinity)
		return
	}
	target.WriteUint8(tagAffine)
	target.WriteBytes(elementBytes(pc.p.x))
	target.WriteBytes(elementBytes(pc.p.y))
}

func (pc *pointCodec) UnmarshalFrom(source codec.Source) *pointCodec {
	f, err := primeField(pc.c)
	if err != nil {
		panic(err)
	}

	switch tag := source.ReadUint8(); tag {
	case tagInfinity:
		return &pointCodec{pc.c, Infinity}
	case tagAffine:
		x, err := f.FromBytes(source.ReadBytes(f.ElementSize()))
		if err != nil {
			panic(err)
		}
		y, err := f.FromBytes(source.ReadBytes(f.ElementSize()))
		if err != nil {
			panic(err)
		}
		p, err := NewPoint(pc.c, x, y)
		if err != nil {
			panic(err)
		}
		return &pointCodec{pc.c, p}
	default:
		panic(fmt.Sprintf("unknown point tag 0x%02x", tag))
	}
}

func primeField(c *curve.Curve) (*field.PrimeField, error) {
	f, ok := c.Field().(*field.PrimeField)
	if !ok {
		return nil, fmt.Errorf("%w, got %s", ErrUnsupportedField, c.Field().Name())
	}
	return f, nil
}

func elementBytes(e field.Element) []byte {
	return e.(interface{ Bytes() []byte }).Bytes()
}
