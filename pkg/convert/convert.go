// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert parses HTML form values leniently.

A malformed number becomes the zero value, which the domain validators then
reject with a field error. Use strconv directly where a parse failure must be
told apart from zero.
*/
package convert

import "strconv"

// ToInt converts a string to an integer. It returns 0 if the string is empty
// or cannot be parsed.
func ToInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// ToBool parses "true", "1", "on" and the other strconv spellings. Anything
// else is false.
func ToBool(s string) bool {
	if s == "on" {
		return true
	}
	v, _ := strconv.ParseBool(s)
	return v
}

// ToFloat64 converts a string to a float64. It returns 0 if the string is
// empty or cannot be parsed.
func ToFloat64(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
