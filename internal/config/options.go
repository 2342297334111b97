// Package config holds the resolver options, the language dialect
// capability flags, and the config-file loader.
package config

// Version is the tool version. Config files can pin a compatible
// release range with the 'requires' key.
const Version = "0.9.0"

// Options are the named policy toggles read by the resolver. Every
// field maps to one config-file key (snake_case of the field name).
type Options struct {
	// Merge 'else if' into a single chained construct only when the
	// 'if' sits on the same line as the 'else'. When false, every
	// 'else if' chains regardless of placement.
	ElseIfSameLine bool

	// Indent namespace bodies.
	IndentNamespace bool

	// Collapse directly nested namespaces into a single indent level.
	// Only meaningful together with IndentNamespace.
	IndentNamespaceSingleIndent bool

	// Namespace bodies longer than this many lines are flagged as
	// long blocks. Zero disables the check.
	IndentNamespaceLimit int

	// Indent the body of a C# using(...) statement.
	IndentUsingBlock bool

	// Warn when a #define body ends with unbalanced brace depth.
	WarnUnbalancedPPIf bool

	// Synthesize virtual semicolons in dialects that omit statement
	// terminators.
	VirtualSemicolons bool
}

// Default returns the options used when no config file is given.
func Default() Options {
	return Options{
		IndentUsingBlock:  true,
		VirtualSemicolons: true,
	}
}
