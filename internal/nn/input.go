package nn

import (
	"io"
)

// Input is the identity layer that starts a model.
type Input struct{}

// ReadInput creates an input layer. Its block is empty.
func ReadInput(io.Reader) (*Input, error) {
	return &Input{}, nil
}

// Kind returns KindInput.
func (*Input) Kind() Kind {
	return KindInput
}

// Apply copies the input unchanged.
func (*Input) Apply(ld *LayerData) error {
	ld.check(KindInput)
	ld.In.CopyTo(ld.Out)
	return nil
}
