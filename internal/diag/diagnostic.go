package diag

import (
	"fmt"

	"corec/internal/source"
)

// Code categorises a diagnostic by the taxonomy in the semantic-error
// design (resolution / type / mutability / const-eval / control-flow /
// trait-check / exit-check / internal).
type Code string

const (
	CodeResolution  Code = "resolution"
	CodeType        Code = "type"
	CodeMutability  Code = "mutability"
	CodeConstEval   Code = "const-eval"
	CodeControlFlow Code = "control-flow"
	CodeTraitCheck  Code = "trait-check"
	CodeExitCheck   Code = "exit-check"
	CodeInternal    Code = "internal"
	CodeLexical     Code = "lexical"
	CodeSyntax      Code = "syntax"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single user-facing error, warning, or note. All core
// errors are semantic errors in this shape: a message plus the span it
// occurred at. There is no partial recovery — the first Severity >= SevError
// diagnostic aborts the compilation unit.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// New builds an error-severity diagnostic.
func New(code Code, span source.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Severity: SevError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Primary:  span,
	}
}

// WithNote appends a secondary note and returns the diagnostic for chaining.
func (d *Diagnostic) WithNote(span source.Span, format string, args ...any) *Diagnostic {
	d.Notes = append(d.Notes, Note{Span: span, Msg: fmt.Sprintf(format, args...)})
	return d
}

func (d *Diagnostic) Error() string {
	return string(d.Severity.String()) + ": " + d.Message
}
