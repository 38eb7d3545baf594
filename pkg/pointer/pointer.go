// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

/*
Package pointer removes the boilerplate around optional values, which this
API models as pointers (nullable rejection reasons, optional report
comments).
*/
package pointer

// To returns a pointer to the provided value. Useful for building request
// payloads whose optional fields are pointer-typed, e.g.
// pointer.To("Bild ist unscharf").
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value of T when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
