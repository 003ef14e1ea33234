// Package xof implements a hash function based on the SHAKE256 XOF, with domain separation and a unique encoding of
// its inputs. It is used to derive key material from shared curve points and to expand a textual seed into a
// deterministic stream of private keys.
package xof

import (
	"crypto/sha3"
	"encoding/binary"
	"io"
	"math/big"
)

// DigestLength is the length of the digest returned by Digest in bytes.
const DigestLength = 32

type argType byte

const (
	_ argType = iota
	argTypeNil
	argTypeInt
	argTypeBytes
	argTypeString
	argTypeBigInt
)

// XOF absorbs typed inputs and squeezes either a fixed-length digest or an arbitrarily long output stream.
// Initialization with a domain separation tag (DST) is enforced.
type XOF struct {
	dst        string
	shake      *sha3.SHAKE
	digest     []byte
	readCalled bool
}

var _ io.Reader = &XOF{}

// New initializes a new XOF instance, applying the given domain separation tag.
func New(dst string) *XOF {
	h := &XOF{dst: dst, shake: sha3.NewSHAKE256()}
	h.WriteString(dst)
	return h
}

func (h *XOF) writeArgType(t argType) {
	h.requireWritable()
	_, _ = h.shake.Write([]byte{byte(t)})
}

func (h *XOF) writeLength(n int) {
	_ = binary.Write(h.shake, binary.BigEndian, uint64(n))
}

func (h *XOF) requireWritable() {
	if h.digest != nil || h.readCalled {
		panic("xof: write after Digest or Read")
	}
}

func (h *XOF) WriteInt(value int) {
	h.writeArgType(argTypeInt)
	_ = binary.Write(h.shake, binary.BigEndian, uint64(value))
}

// WriteBytes absorbs a length-prefixed byte slice. A nil slice is distinct from an empty one.
func (h *XOF) WriteBytes(data []byte) {
	if data == nil {
		h.writeArgType(argTypeNil)
		return
	}
	h.writeArgType(argTypeBytes)
	h.writeLength(len(data))
	_, _ = h.shake.Write(data)
}

func (h *XOF) WriteString(str string) {
	h.writeArgType(argTypeString)
	h.writeLength(len(str))
	_, _ = h.shake.Write([]byte(str))
}

// WriteBigInt absorbs the sign and the big-endian magnitude of value.
func (h *XOF) WriteBigInt(value *big.Int) {
	h.writeArgType(argTypeBigInt)
	_, _ = h.shake.Write([]byte{byte(value.Sign() + 1)})
	magnitude := value.Bytes()
	h.writeLength(len(magnitude))
	_, _ = h.shake.Write(magnitude)
}

// Read squeezes output from the XOF. Calling any write function or Digest after calling Read results in a panic.
// Calling Read multiple times continues the output stream. It never returns an error.
func (h *XOF) Read(out []byte) (n int, err error) {
	if h.digest != nil {
		panic("xof: Read after Digest")
	}
	h.readCalled = true
	return h.shake.Read(out)
}

// Digest returns the first DigestLength bytes of output. Calling Digest multiple times returns the same result.
func (h *XOF) Digest() []byte {
	if h.readCalled {
		panic("xof: Digest after Read")
	}
	if h.digest == nil {
		h.digest = make([]byte, DigestLength)
		_, _ = h.shake.Read(h.digest)
	}
	return append([]byte(nil), h.digest...)
}

// Reset restores the state after New, re-applying the domain separation tag.
func (h *XOF) Reset() {
	h.shake.Reset()
	h.digest = nil
	h.readCalled = false
	h.WriteString(h.dst)
}
