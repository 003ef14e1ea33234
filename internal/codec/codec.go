// Package codec implements the fixed-width binary encodings of field elements and curve points.
//
// Marshaling writes into a Target, unmarshaling reads from a Source. Both panic on malformed input; the top-level
// Marshal, Unmarshal and UnmarshalUsing functions recover these panics and report them as errors.
package codec

import "fmt"

type Marshaler interface {
	MarshalTo(target Target)
}

type MarshalerWithNilSupport interface {
	Marshaler

	// IsNil returns true if the object is nil.
	IsNil() bool
}

type Unmarshaler[T any] interface {
	UnmarshalFrom(source Source) T
}

type Codec[T any] interface {
	MarshalerWithNilSupport
	Unmarshaler[T]
}

type Target = *target
type Source = *source

// Marshal encodes the given (non-nil) object.
func Marshal(object Marshaler) ([]byte, error) {
	t := &target{}
	if err := t.Marshal(object); err != nil {
		return nil, err
	}
	return t.buffer, nil
}

// Unmarshal decodes data using the given unmarshaler. All input bytes must be consumed.
func Unmarshal[T any](data []byte, unmarshaler Unmarshaler[T]) (T, error) {
	return UnmarshalUsing(data, unmarshaler.UnmarshalFrom)
}

// UnmarshalUsing decodes data using unmarshalFunc, and fails if any bytes remain afterwards. Errors raised as panics
// by unmarshalFunc are wrapped, so errors.Is and errors.As see through them.
func UnmarshalUsing[T any](data []byte, unmarshalFunc func(Source) T) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result, err = zero, recovered("unmarshaling", r)
		}
	}()

	src := &source{data}
	result = unmarshalFunc(src)

	if src.Available() > 0 {
		var zero T
		return zero, fmt.Errorf("unmarshaling did not consume all bytes, %d bytes remaining", src.Available())
	}
	return result, nil
}

func recovered(during string, r any) error {
	if e, ok := r.(error); ok {
		return fmt.Errorf("recovered panic while %s: %w", during, e)
	}
	return fmt.Errorf("recovered panic while %s: %v", during, r)
}
