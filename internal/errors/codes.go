package errors

// Error codes for the brace resolver.
// These codes appear in diagnostics and documentation to provide
// consistent error identification across the toolchain.
//
// Error code ranges:
// E1001-E1099: Structural errors (fatal, abort the pass)
// E1100-E1199: Reserved for tokenizer errors
// E1200-E1299: Configuration errors
// W1101-W1199: Tolerated imbalance warnings

const (
	// Currently used structural errors (E1001-E1003)

	// E1001: A close token's kind does not match the expected close
	// for the innermost open construct, outside preprocessor text.
	ErrorMismatchedClose = "E1001"

	// E1002: A mandatory continuation is missing: no 'while' after a
	// do-body, no '(' where a parenthesized head is required, or no
	// ';' terminating a while-of-do.
	ErrorDanglingConstruct = "E1002"

	// E1003: Close dispatch hit a stack entry kind it does not
	// recognize. The stack no longer reflects real source structure.
	ErrorUnknownEntry = "E1003"

	// Configuration errors (reserved range: E1200-E1299)

	// E1201: Config file value could not be parsed for its key.
	ErrorBadConfigValue = "E1201"

	// E1202: Config 'requires' constraint rejects this tool version.
	ErrorConfigRequires = "E1202"

	// Warning codes

	// W1101: Unbalanced brace depth at the end of a #define body.
	WarningMacroImbalance = "W1101"

	// W1102: Close token at file scope with no matching open.
	WarningFileScopeClose = "W1102"

	// W1103: Unknown key in a config file (ignored).
	WarningUnknownConfigKey = "W1103"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorMismatchedClose:
		return "Closing token does not match the innermost open construct"
	case ErrorDanglingConstruct:
		return "A multi-part statement is missing a mandatory continuation"
	case ErrorUnknownEntry:
		return "Internal stack entry not recognized by close dispatch"
	case ErrorBadConfigValue:
		return "Configuration value could not be parsed"
	case ErrorConfigRequires:
		return "Configuration requires an incompatible tool version"
	case WarningMacroImbalance:
		return "Brace depth is unbalanced at the end of a macro body"
	case WarningFileScopeClose:
		return "Closing token at file scope has no matching open"
	case WarningUnknownConfigKey:
		return "Configuration key is not recognized"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return len(code) > 0 && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E1001" && code < "E1100":
		return "Structural"
	case code >= "E1100" && code < "E1200":
		return "Tokenizer"
	case code >= "E1200" && code < "E1300":
		return "Configuration"
	case len(code) > 0 && code[0] == 'W':
		return "Warning"
	default:
		return "Unknown"
	}
}
