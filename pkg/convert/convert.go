// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

/*
Package convert provides fault-tolerant string-to-number conversions for
query parameters, where a malformed value should fall back to a default
rather than fail the request.

Do not use it where a malformed value and an absent value must be told
apart; call [strconv] directly in that case.
*/
package convert

import "strconv"

// ToInt converts a string to an integer. Empty or unparseable input
// yields 0.
func ToInt(s string) int {
	if s == "" {
		return 0
	}

	v, _ := strconv.Atoi(s)
	return v
}

// ToIntD converts a string to an integer, returning def when the string
// is empty or unparseable. Used for optional query parameters such as
// the event listing horizon (?days=).
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	return def
}
