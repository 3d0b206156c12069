// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import "github.com/google/uuid"

// IDFunc produces card ids.
type IDFunc func() string

// NewID returns a UUIDv7: a millisecond timestamp followed by random bits.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return id.String()
}
