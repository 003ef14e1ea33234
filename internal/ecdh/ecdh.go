// Package ecdh runs a toy elliptic curve Diffie-Hellman exchange on top of the group package. The keys are plain
// scalars and the arithmetic is variable time; this is for demonstration only.
package ecdh

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/smartcontractkit/toyecc/internal/curve"
	"github.com/smartcontractkit/toyecc/internal/group"
	"github.com/smartcontractkit/toyecc/internal/math"
	"github.com/smartcontractkit/toyecc/internal/xof"
)

const keyDerivationDST = "toyecc/ecdh/v1"

var (
	ErrInvalidOrder     = errors.New("base point order must be greater than three")
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrMismatch         = errors.New("shared points differ")
)

// Party is one side of the exchange: a private scalar d and the public point Q = d·G.
type Party struct {
	Name    string
	Private *big.Int
	Public  group.Point
}

// NewParty draws a private key uniformly from [2, n-1] using bytes read from rand and computes the public key. n is
// the order of the base point g.
func NewParty(name string, a group.Arithmetic, g group.Point, n *big.Int, rand io.Reader) (*Party, error) {
	if n == nil || n.Cmp(big.NewInt(3)) <= 0 {
		return nil, ErrInvalidOrder
	}
	private, err := randomScalar(n, rand)
	if err != nil {
		return nil, fmt.Errorf("generating private key for %s: %w", name, err)
	}
	public, err := a.Multiply(private, g)
	if err != nil {
		return nil, err
	}
	return &Party{name, private, public}, nil
}

// randomScalar returns a value in [2, n-1], sampled as 2 + r for r uniform modulo n-2.
func randomScalar(n *big.Int, rand io.Reader) (*big.Int, error) {
	m, err := math.NewModulus(new(big.Int).Sub(n, big.NewInt(2)))
	if err != nil {
		return nil, err
	}
	r, err := math.NewElement(m).SetRandom(rand)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Add(r.BigInt(), big.NewInt(2)), nil
}

// SharedPoint returns d·Q for the private key d and the peer's public point Q.
func SharedPoint(a group.Arithmetic, private *big.Int, peerPublic group.Point) (group.Point, error) {
	if peerPublic.IsInfinity() {
		return group.Infinity, ErrInvalidPublicKey
	}
	return a.Multiply(private, peerPublic)
}

// EncodePublic returns the point encoding of the public key.
func EncodePublic(c *curve.Curve, public group.Point) ([]byte, error) {
	return group.Marshal(c, public)
}

// DecodePublic decodes a public key; the point at infinity is rejected.
func DecodePublic(c *curve.Curve, data []byte) (group.Point, error) {
	p, err := group.Unmarshal(c, data)
	if err != nil {
		return group.Infinity, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	if p.IsInfinity() {
		return group.Infinity, ErrInvalidPublicKey
	}
	return p, nil
}

// DeriveKey hashes the curve equation and the encoded shared point into a 32-byte key.
func DeriveKey(c *curve.Curve, shared group.Point) (common.Hash, error) {
	if shared.IsInfinity() {
		return common.Hash{}, fmt.Errorf("%w: shared point at infinity", ErrInvalidPublicKey)
	}
	encoded, err := group.Marshal(c, shared)
	if err != nil {
		return common.Hash{}, err
	}
	h := xof.New(keyDerivationDST)
	h.WriteString(c.String())
	h.WriteBytes(encoded)
	return common.BytesToHash(h.Digest()), nil
}

// Transcript records a complete exchange between Alice and Bob.
type Transcript struct {
	Alice, Bob             *Party
	AlicePublic, BobPublic []byte
	Shared                 group.Point
	Key                    common.Hash
}

// Exchange generates two parties, exchanges the encoded public keys, and checks that both sides derive the same
// shared point and key.
func Exchange(a group.Arithmetic, g group.Point, n *big.Int, rand io.Reader) (*Transcript, error) {
	alice, err := NewParty("Alice", a, g, n, rand)
	if err != nil {
		return nil, err
	}
	bob, err := NewParty("Bob", a, g, n, rand)
	if err != nil {
		return nil, err
	}

	alicePublic, err := EncodePublic(a.Curve, alice.Public)
	if err != nil {
		return nil, err
	}
	bobPublic, err := EncodePublic(a.Curve, bob.Public)
	if err != nil {
		return nil, err
	}

	// Each side only sees the other's encoded public key.
	fromBob, err := DecodePublic(a.Curve, bobPublic)
	if err != nil {
		return nil, err
	}
	fromAlice, err := DecodePublic(a.Curve, alicePublic)
	if err != nil {
		return nil, err
	}
	sharedAlice, err := SharedPoint(a, alice.Private, fromBob)
	if err != nil {
		return nil, err
	}
	sharedBob, err := SharedPoint(a, bob.Private, fromAlice)
	if err != nil {
		return nil, err
	}
	if !sharedAlice.Equal(sharedBob) {
		return nil, fmt.Errorf("%w: %v != %v", ErrMismatch, sharedAlice, sharedBob)
	}

	key, err := DeriveKey(a.Curve, sharedAlice)
	if err != nil {
		return nil, err
	}
	return &Transcript{alice, bob, alicePublic, bobPublic, sharedAlice, key}, nil
}
