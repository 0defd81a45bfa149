package types

import "fmt"

// FallbackFailureMessage is surfaced when the server marks a project failed
// without providing an error message.
const FallbackFailureMessage = "video generation failed"

// ValidationError reports a malformed or incomplete GenerationRequest.
// It is always returned before any network activity happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

// TransportError wraps a network, decode, or non-success response failure
// from the generation API. It is fatal during submission and non-fatal
// (reported, then retried on the next tick) during polling.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// JobFailure is the terminal, server-reported failure of a generation job.
type JobFailure struct {
	Message string
}

func (e *JobFailure) Error() string { return e.Message }
