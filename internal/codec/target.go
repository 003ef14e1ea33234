package codec

type target struct {
	buffer []byte
}

// Marshal writes object into this target, recovering panics raised while marshaling. Use Write to propagate them.
func (t *target) Marshal(object Marshaler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered("marshaling", r)
		}
	}()

	t.Write(object)
	return nil
}

// Write writes the given non-nil object into this target.
func (t *target) Write(object Marshaler) {
	if object == nil {
		panic("Write called with nil object")
	}
	object.MarshalTo(t)
}

func (t *target) WriteUint8(value uint8) {
	t.buffer = append(t.buffer, value)
}

func (t *target) WriteBytes(value []byte) {
	t.buffer = append(t.buffer, value...)
}
