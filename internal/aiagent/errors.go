package aiagent

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat means a 2xx body lacked architecture or uml_code
	ErrInvalidFormat = errors.New("invalid response format from AI backend")
	// ErrTransport wraps network failures and undecodable bodies
	ErrTransport = errors.New("AI backend transport failure")
	// ErrCircuitOpen is returned without a network call while the breaker is open
	ErrCircuitOpen = errors.New("AI backend circuit is open")
)

// StatusError is a non-2xx answer that did not mention the diagram subsystem
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("AI backend returned status %d", e.Code)
	}
	return fmt.Sprintf("AI backend returned status %d: %s", e.Code, e.Detail)
}
