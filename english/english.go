// Package english provides the conventional English inflection modifiers for
// tracerz grammars: article insertion, pluralization, past tense,
// capitalization, and pattern replacement.
//
// These are ordinary pure string functions plugged into the grammar's
// modifier registry:
//
//	g.AddModifiers(english.Modifiers())
package english

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/caranatar/tracerz/grammar"
)

// Modifiers returns a fresh mapping of the English modifier set, keyed by
// the names used in grammar text: a, s, ed, capitalize, capitalizeAll, and
// replace(target,replacement).
func Modifiers() map[string]*grammar.Modifier {
	return map[string]*grammar.Modifier{
		"a":             grammar.NewTextModifier(0, article),
		"s":             grammar.NewTextModifier(0, pluralize),
		"ed":            grammar.NewTextModifier(0, pastTense),
		"capitalize":    grammar.NewTextModifier(0, capitalize),
		"capitalizeAll": grammar.NewTextModifier(0, capitalizeAll),
		"replace":       grammar.NewTextModifier(2, replace),
	}
}

func isVowel(r byte) bool {
	switch unicode.ToLower(rune(r)) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}

func isAlphaNum(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// article prefixes the input with its indefinite article. Words beginning
// with a vowel take "an", except the "u_i" shape (unicorn, unidentified)
// which takes "a".
func article(input string, _ []string) string {
	if input == "" {
		return input
	}

	if len(input) > 2 {
		if unicode.ToLower(rune(input[0])) == 'u' &&
			unicode.ToLower(rune(input[2])) == 'i' {
			return "a " + input
		}
	}

	if isVowel(input[0]) {
		return "an " + input
	}

	return "a " + input
}

// pluralize appends the regular English plural suffix: -es after sibilant
// endings, -ies after consonant+y, otherwise -s.
func pluralize(input string, _ []string) string {
	if input == "" {
		return input
	}

	switch input[len(input)-1] {
	case 's', 'h', 'x':
		return input + "es"
	case 'y':
		if len(input) > 1 && isVowel(input[len(input)-2]) {
			return input + "s"
		}

		return input[:len(input)-1] + "ies"
	default:
		return input + "s"
	}
}

// pastTense appends the regular English past-tense suffix: -d after e,
// -ied after consonant+y, otherwise -ed.
func pastTense(input string, _ []string) string {
	if input == "" {
		return input
	}

	switch input[len(input)-1] {
	case 'e':
		return input + "d"
	case 'y':
		if len(input) > 1 && isVowel(input[len(input)-2]) {
			return input + "ed"
		}

		return input[:len(input)-1] + "ied"
	default:
		return input + "ed"
	}
}

// capitalize upper-cases the first character of the input.
func capitalize(input string, _ []string) string {
	if input == "" {
		return input
	}

	runes := []rune(input)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}

// capitalizeAll upper-cases the first character of every alphanumeric run.
func capitalizeAll(input string, _ []string) string {
	var sb strings.Builder

	capNext := true

	for _, r := range input {
		if isAlphaNum(r) {
			if capNext {
				sb.WriteRune(unicode.ToUpper(r))

				capNext = false

				continue
			}

			sb.WriteRune(r)

			continue
		}

		capNext = true

		sb.WriteRune(r)
	}

	return sb.String()
}

// replace substitutes every match of the target pattern, interpreted as a
// regular expression, with the replacement. An invalid pattern leaves the
// input unchanged.
func replace(input string, params []string) string {
	target, err := regexp.Compile(params[0])
	if err != nil {
		return input
	}

	return target.ReplaceAllString(input, params[1])
}
