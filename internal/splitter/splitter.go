// Package splitter breaks base names into uppercase word tokens for tag
// sorting.
package splitter

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"dfsorter/internal/fault"
)

// Mode selects the tokenization rule.
type Mode string

const (
	// ModeUnderscore splits on every underscore.
	ModeUnderscore Mode = "UNDERSCORE"
	// ModeCamelCase takes lowercase runs and capitalized runs.
	ModeCamelCase Mode = "CAMEL_CASE"
	// ModePascalCase takes capitalized runs only.
	ModePascalCase Mode = "PASCAL_CASE"
)

var (
	camelWords  = regexp.MustCompile(`[a-z]+|[A-Z][a-z]*`)
	pascalWords = regexp.MustCompile(`[A-Z][a-z]*`)
)

// Modes lists the supported modes in display order.
func Modes() []Mode {
	return []Mode{ModeUnderscore, ModeCamelCase, ModePascalCase}
}

// ParseMode accepts any casing and surrounding whitespace.
func ParseMode(value string) (Mode, error) {
	normalized := Mode(strings.ToUpper(strings.TrimSpace(value)))
	for _, m := range Modes() {
		if normalized == m {
			return m, nil
		}
	}
	return "", fault.Wrap(fault.ErrInvalidSplitMode, "split", "parse mode", fmt.Sprintf("unknown mode %q (want underscore, camel_case, or pascal_case)", value), nil)
}

// Split tokenizes base and uppercases each token. Characters no pattern
// covers (digits in the case modes) are dropped.
func Split(base string, mode Mode) ([]string, error) {
	var words []string
	switch mode {
	case ModeUnderscore:
		words = strings.Split(base, "_")
	case ModeCamelCase:
		words = camelWords.FindAllString(base, -1)
	case ModePascalCase:
		words = pascalWords.FindAllString(base, -1)
	default:
		return nil, fault.Wrap(fault.ErrInvalidSplitMode, "split", "tokenize", fmt.Sprintf("unknown mode %q", string(mode)), nil)
	}
	upper := cases.Upper(language.Und)
	tokens := make([]string, len(words))
	for i, w := range words {
		tokens[i] = upper.String(w)
	}
	return tokens, nil
}

// SplitAll tokenizes every base name with the same mode.
func SplitAll(bases []string, mode Mode) ([][]string, error) {
	out := make([][]string, len(bases))
	for i, base := range bases {
		tokens, err := Split(base, mode)
		if err != nil {
			return nil, err
		}
		out[i] = tokens
	}
	return out, nil
}
