/*
 * errors.go, part of gopharm.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 * Gopharm is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 */

package pharm

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Error kinds. Every error returned by this package matches at least one of them
// under errors.Is.
var (
	ErrInvalidFeatureKind          = errors.New("invalid feature kind")
	ErrInvalidQuantity             = errors.New("invalid quantity")
	ErrInvalidIndex                = errors.New("invalid index")
	ErrNoDirection                 = errors.New("pharmacophoric point has no direction")
	ErrNoSuchFeature               = errors.New("no such feature in pharmacophore")
	ErrUnsupportedFormat           = errors.New("unsupported file format")
	ErrUnknownFeatureName          = errors.New("unknown feature name")
	ErrMalformedFormat             = errors.New("malformed file")
	ErrUnsupportedFeatureForFormat = errors.New("feature not supported by format")
	ErrStructureParse              = errors.New("can't parse molecular structure")
	ErrIOFailure                   = errors.New("I/O failure")
)

// Error is the error type for all the errors in this package. Besides the message, it carries
// the kind of error (one of the Err* variables), the file involved, if any, and a "decoration":
// the list of functions the error has been passed through.
type Error struct {
	message  string
	filename string
	kind     error
	cause    error
	deco     []string
	critical bool
}

func newError(kind error, caller, format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...), kind: kind, deco: []string{caller}, critical: true}
}

// wrapError returns an Error of the given kind with cause as the underlying error.
func wrapError(kind, cause error, caller, format string, args ...interface{}) *Error {
	err := newError(kind, caller, format, args...)
	err.cause = errors.Wrapf(cause, "%s", caller)
	return err
}

// Error returns a string with the error message
func (err *Error) Error() string {
	msg := err.kind.Error()
	if err.message != "" {
		msg = msg + ": " + err.message
	}
	if err.filename != "" {
		msg = fmt.Sprintf("%s (file %s)", msg, err.filename)
	}
	if err.cause != nil {
		msg = msg + ": " + errors.UnwrapAll(err.cause).Error()
	}
	return msg
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Trace returns the decoration as a single string, innermost caller first.
func (err *Error) Trace() string { return strings.Join(err.deco, " <- ") }

// Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

// FileName returns the name of the file associated to the error, or an empty string.
func (err *Error) FileName() string { return err.filename }

// Kind returns the Err* variable that classifies err.
func (err *Error) Kind() error { return err.kind }

// Is makes errors.Is match an Error against its kind.
func (err *Error) Is(target error) bool { return target == err.kind }

// Unwrap returns the underlying error, if any.
func (err *Error) Unwrap() error { return err.cause }

func (err *Error) withFile(name string) *Error {
	err.filename = name
	return err
}

// errDecorate decorates err with the caller's name if it is an *Error, and
// returns it.
func errDecorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
