package kernel

import "errors"

var (
	// ErrMaxIterations is returned by Execute when the turn exhausts its
	// iteration budget without the model producing a final response.
	ErrMaxIterations = errors.New("agent exceeded maximum tool iterations")

	// ErrProvider wraps any failure of the provider's chat call.
	ErrProvider = errors.New("provider error")
)
