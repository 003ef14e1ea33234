package codec

import "fmt"

// A source of bytes to be unmarshaled. The buffer slice shrinks as it is read.
type source struct {
	buffer []byte
}

// Available returns the number of unread bytes.
func (s *source) Available() int {
	return len(s.buffer)
}

// ReadUint8 reads a single byte, e.g. a tag. It panics if the source is empty.
func (s *source) ReadUint8() uint8 {
	if len(s.buffer) < 1 {
		panic("ReadUint8 called on empty source buffer")
	}
	value := s.buffer[0]
	s.buffer = s.buffer[1:]
	return value
}

// ReadBytes reads length bytes. The result aliases the source's buffer, its capacity is limited so that appending to
// it does not overwrite unread input. It panics if fewer than length bytes are available.
func (s *source) ReadBytes(length int) []byte {
	if length < 0 || len(s.buffer) < length {
		panic(fmt.Sprintf("ReadBytes called with length %d, but only %d bytes available", length, len(s.buffer)))
	}
	value := s.buffer[:length:length]
	s.buffer = s.buffer[length:]
	return value
}
