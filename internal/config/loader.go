package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/arma2d0/uncrustify/internal/errors"
)

// Load reads a config file of 'key = value' lines. Unknown keys are
// returned as warnings so a file written for a newer release still
// loads; malformed values and a failed 'requires' constraint are hard
// errors.
func Load(path string) (Options, []errors.StructuralError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(string(data))
}

// Parse parses config file content. See Load.
func Parse(src string) (Options, []errors.StructuralError, error) {
	opts := Default()

	var warnings []errors.StructuralError

	for i, raw := range strings.Split(src, "\n") {
		lineno := i + 1
		line := raw

		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")

		if !found {
			return opts, warnings, badValue(line, "", lineno, "expected 'key = value'")
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "else_if_same_line":
			b, err := parseBool(key, value, lineno)
			if err != nil {
				return opts, warnings, err
			}
			opts.ElseIfSameLine = b
		case "indent_namespace":
			b, err := parseBool(key, value, lineno)
			if err != nil {
				return opts, warnings, err
			}
			opts.IndentNamespace = b
		case "indent_namespace_single_indent":
			b, err := parseBool(key, value, lineno)
			if err != nil {
				return opts, warnings, err
			}
			opts.IndentNamespaceSingleIndent = b
		case "indent_namespace_limit":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return opts, warnings, badValue(key, value, lineno, "expected a non-negative integer")
			}
			opts.IndentNamespaceLimit = n
		case "indent_using_block":
			b, err := parseBool(key, value, lineno)
			if err != nil {
				return opts, warnings, err
			}
			opts.IndentUsingBlock = b
		case "warn_unbalanced_pp_if":
			b, err := parseBool(key, value, lineno)
			if err != nil {
				return opts, warnings, err
			}
			opts.WarnUnbalancedPPIf = b
		case "virtual_semicolons":
			b, err := parseBool(key, value, lineno)
			if err != nil {
				return opts, warnings, err
			}
			opts.VirtualSemicolons = b
		case "requires":
			if err := checkRequires(value, lineno); err != nil {
				return opts, warnings, err
			}
		default:
			warnings = append(warnings, errors.UnknownConfigKey(key, lineno))
		}
	}
	return opts, warnings, nil
}

func parseBool(key, value string, lineno int) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, badValue(key, value, lineno, "expected true or false")
	}
	return b, nil
}

func badValue(key, value string, lineno int, want string) error {
	return errors.StructuralError{
		Level:    errors.Error,
		Code:     errors.ErrorBadConfigValue,
		Message:  fmt.Sprintf("bad value %q for '%s': %s", value, key, want),
		Position: errors.Position{Line: lineno, Column: 1},
		Got:      value,
	}
}

// checkRequires validates the tool version against a semver constraint
// such as ">= 0.9, < 1.0".
func checkRequires(constraint string, lineno int) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return badValue("requires", constraint, lineno, "expected a semver constraint")
	}
	v := semver.MustParse(Version)

	if !c.Check(v) {
		return errors.StructuralError{
			Level:    errors.Error,
			Code:     errors.ErrorConfigRequires,
			Message:  fmt.Sprintf("config requires tool version %q, this is %s", constraint, Version),
			Position: errors.Position{Line: lineno, Column: 1},
			Expected: constraint,
			Got:      Version,
		}
	}
	return nil
}
