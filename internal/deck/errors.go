// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCard is returned when a question or answer is empty after trimming.
	ErrInvalidCard = errors.New("question and answer are required")

	// ErrNotReady is returned for mutations attempted before the initial load finished.
	ErrNotReady = errors.New("collection is still loading")
)

// ReadError reports a stored collection that could not be read or parsed.
// The collection has already been replaced by a fallback when it is returned.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read collection %q: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a collection snapshot that could not be stored.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write collection %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
