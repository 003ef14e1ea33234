package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type pair struct {
	tag  uint8
	body []byte
}

func (p *pair) IsNil() bool {
	return p == nil
}

func (p *pair) MarshalTo(target Target) {
	if p.tag == 0xff {
		panic(errTag)
	}
	target.WriteUint8(p.tag)
	target.WriteBytes(p.body)
}

func (p *pair) UnmarshalFrom(source Source) *pair {
	tag := source.ReadUint8()
	if tag == 0xff {
		panic(errTag)
	}
	return &pair{tag, source.ReadBytes(2)}
}

var errTag = errors.New("reserved tag")

var _ Codec[*pair] = &pair{}

func TestRoundTrip(t *testing.T) {
	data, err := Marshal(&pair{4, []byte{1, 2}})
	require.NoError(t, err)
	require.Equal(t, []byte{4, 1, 2}, data)

	decoded, err := Unmarshal(data, &pair{})
	require.NoError(t, err)
	require.Equal(t, &pair{4, []byte{1, 2}}, decoded)

	// Appending to decoded bytes must not overwrite the input.
	_ = append(decoded.body, 9)
	require.Equal(t, []byte{4, 1, 2}, data)
}

func TestErrors(t *testing.T) {
	_, err := Marshal(&pair{0xff, nil})
	require.ErrorIs(t, err, errTag)

	_, err = Unmarshal([]byte{0xff, 0, 0}, &pair{})
	require.ErrorIs(t, err, errTag)

	_, err = Unmarshal([]byte{4, 1}, &pair{})
	require.ErrorContains(t, err, "only 1 bytes available")

	_, err = Unmarshal([]byte{}, &pair{})
	require.ErrorContains(t, err, "empty source buffer")

	_, err = Unmarshal([]byte{4, 1, 2, 3}, &pair{})
	require.ErrorContains(t, err, "1 bytes remaining")
}
