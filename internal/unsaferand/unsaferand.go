package unsaferand

import (
	"fmt"
	"hash/fnv"
	"io"
	"math/big"
	mrand "math/rand"
)

// UnsafeRand is an io.Reader based on math/rand.Rand. It is used to make demonstrations (e.g., the private keys of a
// toy Diffie-Hellman exchange) and sampled property tests reproducible.
// The generated sequence is not cryptographically secure. The underlying math.Rand is not safe for concurrent use.
type UnsafeRand struct {
	*mrand.Rand
}

var _ io.Reader = &UnsafeRand{}

// Initializes a new UnsafeRand that produces a deterministic randomness based on the given seed argument(s).
// Deterministic behavior depends on the fmt.Sprintf("%#v", seedArgs...) representation of the passed arguments.
// Map iteration order is not guaranteed, so passing a map as a seed argument may lead to non-deterministic behavior.
func New(seedArgs ...any) *UnsafeRand {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%#v", seedArgs)

	seed := int64(h.Sum64())
	return &UnsafeRand{mrand.New(mrand.NewSource(seed))}
}

// r.BigIntn(n) returns a value in [0, n), n must be positive. The value is derived from 64 bits more than the size of
// n, the bias is negligible for the purposes of this package.
func (r *UnsafeRand) BigIntn(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		panic("unsaferand: BigIntn called with non-positive bound")
	}
	b := make([]byte, len(n.Bytes())+8)
	_, _ = r.Read(b) // rand.Read never returns an error
	return new(big.Int).Mod(new(big.Int).SetBytes(b), n)
}
