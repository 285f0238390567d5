package dtl

import (
	"errors"

	"github.com/itsatony/go-dtl/internal"
)

// ValidationSeverity indicates the severity of a validation issue.
type ValidationSeverity int

const (
	// SeverityError indicates the template does not compile
	SeverityError ValidationSeverity = iota
	// SeverityWarning indicates the template compiles but will fail or
	// misbehave when rendered
	SeverityWarning
	// SeverityInfo indicates informational feedback
	SeverityInfo
)

// Severity names
const (
	SeverityNameError   = "error"
	SeverityNameWarning = "warning"
	SeverityNameInfo    = "info"
)

// String returns the severity name
func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return SeverityNameError
	case SeverityWarning:
		return SeverityNameWarning
	default:
		return SeverityNameInfo
	}
}

// ValidationResult contains the results of template validation.
type ValidationResult struct {
	issues []ValidationIssue
}

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Message  string
	Position Position
	Tag      string // Raw tag or variable contents, when known
}

// Issues returns all validation issues found.
func (r *ValidationResult) Issues() []ValidationIssue {
	return r.issues
}

// Errors returns only issues with error severity.
func (r *ValidationResult) Errors() []ValidationIssue {
	return r.bySeverity(SeverityError)
}

// Warnings returns only issues with warning severity.
func (r *ValidationResult) Warnings() []ValidationIssue {
	return r.bySeverity(SeverityWarning)
}

// Infos returns only issues with info severity.
func (r *ValidationResult) Infos() []ValidationIssue {
	return r.bySeverity(SeverityInfo)
}

// HasErrors returns true if there are any error-severity issues.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors()) > 0
}

// HasWarnings returns true if there are any warning-severity issues.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings()) > 0
}

// IsValid returns true if there are no error-severity issues.
func (r *ValidationResult) IsValid() bool {
	return !r.HasErrors()
}

func (r *ValidationResult) bySeverity(severity ValidationSeverity) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range r.issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

func (r *ValidationResult) add(severity ValidationSeverity, msg, tag string, pos internal.Position) {
	r.issues = append(r.issues, ValidationIssue{
		Severity: severity,
		Message:  msg,
		Position: publicPosition(pos),
		Tag:      tag,
	})
}

// Validate compiles a template without executing it.
// Compile failures are reported as SeverityError issues rather than as
// an error; uses of placeholder filters are warnings and empty block
// bodies are informational.
func (e *Engine) Validate(source string) (*ValidationResult, error) {
	result := &ValidationResult{
		issues: make([]ValidationIssue, 0),
	}

	nodes, err := e.compileRaw(source)
	if err != nil {
		e.addCompileIssue(result, err)
		return result, nil
	}

	internal.WalkNodes(nodes, func(node internal.Node) bool {
		e.validateNode(node, result)
		return true
	})
	return result, nil
}

func (e *Engine) addCompileIssue(result *ValidationResult, err error) {
	var synErr *internal.SyntaxError
	if errors.As(err, &synErr) {
		result.add(SeverityError, synErr.Error(), synErr.Contents, synErr.Position)
		return
	}
	var lexErr *internal.LexerError
	if errors.As(err, &lexErr) {
		result.add(SeverityError, lexErr.Error(), "", lexErr.Position)
		return
	}
	result.add(SeverityError, ErrMsgParseFailed+": "+err.Error(), "", internal.Position{})
}

func (e *Engine) validateNode(node internal.Node, result *ValidationResult) {
	switch n := node.(type) {
	case *internal.VariableNode:
		for _, name := range n.Expr.FilterNames() {
			if e.placeholders[name] {
				result.add(SeverityWarning, ValidationMsgFilterNotImplemented+": "+name, n.Expr.String(), n.Pos())
			}
		}

	case *internal.ForNode:
		if len(n.Body) == 0 {
			result.add(SeverityInfo, ValidationMsgEmptyLoopBody, internal.TagFor, n.Pos())
		}

	case *internal.IfNode:
		if len(n.Then) == 0 && len(n.Else) == 0 {
			result.add(SeverityInfo, ValidationMsgEmptyIfBody, internal.TagIf, n.Pos())
		}
	}
}
