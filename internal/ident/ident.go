// Package ident turns feature and scenario descriptions into Go identifiers.
package ident

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pascal joins the alphanumeric words of s with their first letter upper
// cased. Existing capitals are kept, so "HTTP status" becomes "HTTPStatus".
func Pascal(s string) string {
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, w := range words(s) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// TestFunc returns the test function name for a scenario of a feature,
// e.g. TestLogin_UserLogsIn.
func TestFunc(feature, scenario string) string {
	f, s := Pascal(feature), Pascal(scenario)
	switch {
	case f == "" && s == "":
		return "Test"
	case s == "":
		return "Test" + f
	case f == "":
		return "Test" + s
	}
	return "Test" + f + "_" + s
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
