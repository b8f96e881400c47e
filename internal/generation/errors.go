package generation

import "errors"

var ErrInvalidInput = errors.New("invalid input")

// State names a step of the generation pipeline that a request can end in.
// Prompting and parsing never fail, so they have no state of their own.
type State string

const (
	StateReceived    State = "received"
	StateValidated   State = "validated"
	StateExtracted   State = "extracted"
	StateModelCalled State = "model_called"
	StateReturned    State = "returned"
)

// PipelineError records the step that failed.
type PipelineError struct {
	State State
	Err   error
}

func (e *PipelineError) Error() string {
	return string(e.State) + ": " + e.Err.Error()
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func fail(state State, err error) error {
	return &PipelineError{State: state, Err: err}
}
