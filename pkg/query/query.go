// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

// Package query parses multi-value URL query parameters, such as the
// comma-separated status filters on the moderation list endpoints
// (?status=pending,rejected).
package query

import "strings"

// StringSlice splits a single comma-separated query value into a slice
// of trimmed, non-empty strings. An empty input yields nil so callers
// can treat "no filter" and "filter absent" the same way.
func StringSlice(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
