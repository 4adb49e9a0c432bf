// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gerrit

import (
	"errors"
	"fmt"
)

// A Kind classifies a Gerrit client failure. Every error returned by
// [Client] operations is an [*Error] with one of these kinds, so that
// callers can map failures to distinct, stable tool-level errors.
type Kind string

const (
	// KindValidation means the arguments were bad, missing, or
	// contradictory. Detected before any network call is made.
	KindValidation Kind = "validation_error"

	// KindNotFound means Gerrit answered 404: the change, revision,
	// or file does not exist.
	KindNotFound Kind = "not_found"

	// KindAPI means Gerrit answered with a non-2xx status other
	// than 404. The Error carries the status and a body excerpt.
	KindAPI Kind = "gerrit_api_error"

	// KindMalformed means Gerrit answered 2xx but the body, after
	// stripping the anti-XSSI prefix, was not the expected JSON.
	KindMalformed Kind = "malformed_response"

	// KindNetwork means the request failed below HTTP: DNS, TLS,
	// timeout, or connection reset. Not retried; retry policy
	// belongs to the caller.
	KindNetwork Kind = "network_error"
)

// An Error is a classified failure from a Gerrit client operation.
type Error struct {
	Kind   Kind
	Status int    // HTTP status, set when Kind is KindAPI
	Detail string // human-readable description
	Err    error  // underlying error, if any
}

func (e *Error) Error() string {
	s := string(e.Kind)
	if e.Status != 0 {
		s = fmt.Sprintf("%s (HTTP %d)", s, e.Status)
	}
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorKind reports the [Kind] of err, or "" if err is not
// a classified Gerrit error.
func ErrorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// validationErr returns a KindValidation error.
// Validation errors never reach the network.
func validationErr(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Detail: fmt.Sprintf(format, args...)}
}
