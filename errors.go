// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import "errors"

var (
	// ErrInvalidArgument is returned when an argument has a shape the
	// operation cannot interpret, e.g. a vector that is neither two numbers
	// nor a point.
	ErrInvalidArgument = errors.New("okcanvas: invalid argument")
	// ErrNotImplemented is returned by surfaces that only stand in for a
	// capability, such as MockContext.
	ErrNotImplemented = errors.New("okcanvas: not implemented")
	// ErrIndexSize mirrors the DOM IndexSizeError: a size, radius or offset
	// is out of range.
	ErrIndexSize = errors.New("okcanvas: index or size out of range")
	// ErrSyntax mirrors the DOM SyntaxError: a string argument could not be
	// parsed.
	ErrSyntax = errors.New("okcanvas: syntax error")
)
