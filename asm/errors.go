// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "errors"

var (
	errInvalidNumber   = errors.New("invalid number")
	errValueOutOfRange = errors.New("value out of range")
)

// A Diagnostic is a single recoverable, per-line problem found during
// macro expansion or either assembly pass. LineNum is 0-based; callers
// that print diagnostics add 1.
type Diagnostic struct {
	LineNum int
	Message string
}

func (d Diagnostic) String() string {
	return d.Message
}
