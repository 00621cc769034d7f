// Package identifier checks names against the C macro identifier grammar.
package identifier

import (
	"fmt"
	"regexp"
	"strings"

	"dfsorter/internal/fault"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const (
	ReasonGrammar   = "not a valid C identifier"
	ReasonDuplicate = "duplicate base name"
	ReasonReserved  = "collides with the header macro name"
)

// Valid reports whether name is a legal C preprocessor identifier.
func Valid(name string) bool {
	return identPattern.MatchString(name)
}

// ValidateMacro rejects macro names the header guard cannot use.
func ValidateMacro(name string) error {
	if Valid(name) {
		return nil
	}
	return fault.Wrap(fault.ErrInvalidMacroName, "validate", "macro name", fmt.Sprintf("%q is %s", name, ReasonGrammar), nil)
}

// Problem describes one rejected base name.
type Problem struct {
	Name   string
	Reason string
}

// InvalidNamesError lists every rejected base name in input order.
type InvalidNamesError struct {
	Problems []Problem
}

func (e *InvalidNamesError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, fmt.Sprintf("%s (%s)", p.Name, p.Reason))
	}
	return fmt.Sprintf("%s: %d rejected: %s", fault.ErrInvalidFileName, len(e.Problems), strings.Join(parts, ", "))
}

// Is lets errors.Is match fault.ErrInvalidFileName.
func (e *InvalidNamesError) Is(target error) bool {
	return target == fault.ErrInvalidFileName
}

// Names returns the offending names in order.
func (e *InvalidNamesError) Names() []string {
	out := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		out[i] = p.Name
	}
	return out
}

// ValidateNames checks every base name and returns an *InvalidNamesError
// covering all of them, or nil. Names equal to a reserved identifier (the
// include guard) are rejected as well, as is the second and later occurrence
// of a repeated name.
func ValidateNames(names []string, reserved ...string) error {
	var problems []Problem
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		switch {
		case !Valid(name):
			problems = append(problems, Problem{Name: name, Reason: ReasonGrammar})
			continue
		case contains(reserved, name):
			problems = append(problems, Problem{Name: name, Reason: ReasonReserved})
		}
		if _, dup := seen[name]; dup {
			problems = append(problems, Problem{Name: name, Reason: ReasonDuplicate})
			continue
		}
		seen[name] = struct{}{}
	}
	if len(problems) == 0 {
		return nil
	}
	return &InvalidNamesError{Problems: problems}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
