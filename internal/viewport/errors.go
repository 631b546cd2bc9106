package viewport

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is returned by Initialize for non-positive sizes.
var ErrInvalidOptions = errors.New("viewport: total count and batch size must be positive")

// ErrAlreadyInitialized is returned when Initialize is called twice.
var ErrAlreadyInitialized = errors.New("viewport: controller already initialized")

// ProducerUnavailableError reports that requests could not be handed to
// the producer at all.
type ProducerUnavailableError struct {
	Err error
}

func (e *ProducerUnavailableError) Error() string {
	return fmt.Sprintf("producer unavailable: %v", e.Err)
}

func (e *ProducerUnavailableError) Unwrap() error {
	return e.Err
}

// BatchDeliveryError reports a failure response for one batch.
type BatchDeliveryError struct {
	StartIndex int
	Message    string
}

func (e *BatchDeliveryError) Error() string {
	return fmt.Sprintf("batch at %d failed: %s", e.StartIndex, e.Message)
}
