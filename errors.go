/*
 * errors.go, part of goCryst.
 *
 * Copyright 2025 The goCryst developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cryst

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Kind classifies the failures this library surfaces to callers.
type Kind int

const (
	//KindDependencyUnavailable means a required conversion engine is not
	//registered/installed. Maps to a 500-class status.
	KindDependencyUnavailable Kind = iota + 1
	//KindInvalidInput means the given file or content could not be parsed
	//into a valid structure. Maps to a 400 status.
	KindInvalidInput
	//KindSceneBuildFailure means an unexpected failure while building or
	//serializing the scene graph. Maps to a 500 status.
	KindSceneBuildFailure
)

// Error is the error type surfaced by the goCryst packages. It carries an
// HTTP-friendly status code so outer layers can map failures to responses
// without inspecting messages. It is JSON-serializable.
type Error struct {
	deco    []string
	cause   error
	Kind    Kind   `json:"-"`
	Status  int    `json:"status"`
	Message string `json:"error"`
}

// Error implements the error interface. The call-trace decorations, if any,
// are appended to the message.
func (e *Error) Error() string {
	if len(e.deco) == 0 {
		return e.Message
	}
	return e.Message + " (" + strings.Join(e.deco, "/") + ")"
}

// Decorate adds the dec string to the decoration slice of strings of the
// error, and returns the resulting slice.
func (e *Error) Decorate(dec string) []string {
	if dec != "" {
		e.deco = append(e.deco, dec)
	}
	return e.deco
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Marshal serializes the error. Panics on failure.
func (e *Error) Marshal() []byte {
	ret, err2 := json.Marshal(e)
	if err2 != nil {
		panic(strings.Join([]string{e.Error(), err2.Error()}, " - ")) //well, shit.
	}
	return ret
}

// NewBadRequest returns an InvalidInput error (status 400) with the given
// message and cause. The cause may be nil.
func NewBadRequest(msg string, cause error) *Error {
	return &Error{Kind: KindInvalidInput, Status: http.StatusBadRequest, Message: msg, cause: cause}
}

// NewUnavailable returns a DependencyUnavailable error (status 500) with the
// given message and cause.
func NewUnavailable(msg string, cause error) *Error {
	return &Error{Kind: KindDependencyUnavailable, Status: http.StatusInternalServerError, Message: msg, cause: cause}
}

// NewInternal returns a SceneBuildFailure error (status 500) with the given
// message and cause.
func NewInternal(msg string, cause error) *Error {
	return &Error{Kind: KindSceneBuildFailure, Status: http.StatusInternalServerError, Message: msg, cause: cause}
}

// ErrorStatus extracts the HTTP status of an error. Untyped errors
// count as internal failures (500). A nil error returns 200.
func ErrorStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Status
	}
	return http.StatusInternalServerError
}

// ErrDecorate adds the dec decoration to err if it is a *cryst.Error and
// returns it. Other error types are returned untouched: already-typed
// errors are never re-wrapped, everything else keeps its identity for
// the caller to classify.
func ErrDecorate(err error, dec string) error {
	var ce *Error
	if errors.As(err, &ce) {
		ce.Decorate(dec)
		return ce
	}
	return err
}
