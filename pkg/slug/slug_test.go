// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/enniomrk/wendessen-api/pkg/slug"
)

/*
TestFrom verifies slug generation for typical German titles.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain_title", "Neues vom Dorffest", "neues-vom-dorffest"},
		{"umlauts", "Schützenfest im Grünen", "schuetzenfest-im-gruenen"},
		{"sharp_s", "Straßenfest", "strassenfest"},
		{"accents", "Café am Markt", "cafe-am-markt"},
		{"punctuation", "Wendessen: Rückblick 2026!", "wendessen-rueckblick-2026"},
		{"leading_trailing", "  --Dorfladen--  ", "dorfladen"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
