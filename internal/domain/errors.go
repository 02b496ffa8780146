package domain

import (
	"errors"
	"fmt"
)

// ErrUnparseableDate marks a record whose date could not be resolved; such
// records are dropped, never defaulted into the filter window.
var ErrUnparseableDate = errors.New("record date is unparseable")

// ErrDebugTargetMissing is returned when debug delivery is requested but
// neither a debug channel nor a debug user is configured.
var ErrDebugTargetMissing = errors.New("debug mode enabled but no debug channel or user configured")

// ErrEmptySummary marks a provider response with no usable text.
var ErrEmptySummary = errors.New("provider returned empty summary")

// FetchError reports a per-source retrieval or parse failure.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SummarizationError reports a failed provider call for a single item.
type SummarizationError struct {
	Provider string
	URL      string
	Err      error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarize %s via %s: %v", e.URL, e.Provider, e.Err)
}

func (e *SummarizationError) Unwrap() error { return e.Err }

// DeliveryError reports a transport failure on one delivery branch.
type DeliveryError struct {
	Branch string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver via %s: %v", e.Branch, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
