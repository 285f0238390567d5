package dtl

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-dtl/internal"
)

// Sentinel errors, matchable with errors.Is through the cuserr wrappers
var (
	// ErrFilterNotImplemented is raised by the placeholder builtins
	// (escape, safe, safeseq, iriencode, title)
	ErrFilterNotImplemented = internal.ErrFilterNotImplemented

	ErrTemplateNotFound = errors.New(ErrMsgTemplateNotFound)
	ErrVersionNotFound  = errors.New(ErrMsgVersionNotFound)
	ErrStorageClosed    = errors.New(ErrMsgStorageClosed)
	ErrStorageNil       = errors.New(ErrMsgNilStorage)
)

// Resource names for not-found errors
const (
	ResourceTemplate      = "template"
	ResourceStorageDriver = "storage_driver"
)

// Position represents a location in the source template
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

func publicPosition(pos internal.Position) Position {
	return Position{Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

// NewSyntaxError creates a compile-time error. contents is the raw tag or
// variable text that failed to compile and is appended to the message.
func NewSyntaxError(msg, contents string, pos Position, cause error) error {
	if contents != "" {
		msg = msg + ": " + contents
	}
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeSyntax, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeSyntax, msg)
	}
	return err.
		WithMetadata(MetaKeyTag, contents).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewTemplateNotFoundError creates an error for a missing named template
func NewTemplateNotFoundError(name string) error {
	return cuserr.WrapStdError(ErrTemplateNotFound, ErrCodeRegistry, ErrMsgTemplateNotFound).
		WithMetadata(MetaKeyTemplateName, name)
}

// NewTemplateExistsError creates a name collision error
func NewTemplateExistsError(name string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgTemplateExists).
		WithMetadata(MetaKeyTemplateName, name)
}

// NewEmptyTemplateNameError creates an error for an empty template name
func NewEmptyTemplateNameError() error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgEmptyTemplateName)
}

// NewFilterRegistrationError creates an error for a rejected custom filter
func NewFilterRegistrationError(name string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeRegistry, ErrMsgInvalidFilter).
		WithMetadata(MetaKeyFilter, name)
}

// NewInvalidDelimitersError creates an error for unusable delimiter pairs
func NewInvalidDelimitersError(open, close string) error {
	return cuserr.NewValidationError(ErrCodeValidation, ErrMsgInvalidDelimiters).
		WithMetadata(MetaKeyReason, open+" "+close)
}

// NewStorageDriverNotFoundError creates an error for an unregistered driver
func NewStorageDriverNotFoundError(name string) error {
	return cuserr.NewNotFoundError(ResourceStorageDriver, ErrMsgStorageDriverMissing).
		WithMetadata(MetaKeyDriverName, name)
}

// NewStorageTemplateNotFoundError creates an error for a template missing
// from a storage backend
func NewStorageTemplateNotFoundError(name string) error {
	return cuserr.WrapStdError(ErrTemplateNotFound, ErrCodeStorage, ErrMsgTemplateNotFound).
		WithMetadata(MetaKeyTemplateName, name)
}

// NewStorageVersionNotFoundError creates an error for a missing version
func NewStorageVersionNotFoundError(name string, version int) error {
	return cuserr.WrapStdError(ErrVersionNotFound, ErrCodeStorage, ErrMsgVersionNotFound).
		WithMetadata(MetaKeyTemplateName, name).
		WithMetadata(MetaKeyVersion, strconv.Itoa(version))
}

// NewStorageClosedError creates an error for use after Close
func NewStorageClosedError() error {
	return cuserr.WrapStdError(ErrStorageClosed, ErrCodeStorage, ErrMsgStorageClosed)
}

// NewStorageError wraps a backend failure
func NewStorageError(cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeStorage, ErrMsgStorageFailed)
}

// NewValidationFailedError summarizes a failed pre-save validation
func NewValidationFailedError(name string, result *ValidationResult) error {
	reason := ""
	if errs := result.Errors(); len(errs) > 0 {
		reason = errs[0].Message
	}
	return cuserr.NewValidationError(ErrCodeValidation, ErrMsgValidationFailed).
		WithMetadata(MetaKeyTemplateName, name).
		WithMetadata(MetaKeyReason, reason)
}

// wrapCompileError converts lexer and parser failures to public errors
func wrapCompileError(err error) error {
	var synErr *internal.SyntaxError
	if errors.As(err, &synErr) {
		return NewSyntaxError(synErr.Message, synErr.Contents, publicPosition(synErr.Position), err)
	}
	var lexErr *internal.LexerError
	if errors.As(err, &lexErr) {
		return NewSyntaxError(lexErr.Message, "", publicPosition(lexErr.Position), err)
	}
	return cuserr.WrapStdError(err, ErrCodeSyntax, ErrMsgParseFailed)
}

// wrapRenderError converts renderer failures to public errors. The cause
// chain is kept so ErrFilterNotImplemented and context errors still match.
func wrapRenderError(err error) error {
	var renderErr *internal.RenderError
	if !errors.As(err, &renderErr) {
		return cuserr.WrapStdError(err, ErrCodeRender, ErrMsgRenderFailed)
	}
	filterName := ""
	var filterErr *internal.FilterError
	if errors.As(err, &filterErr) {
		filterName = filterErr.FilterName
	}
	return cuserr.WrapStdError(err, ErrCodeRender, renderErr.Message).
		WithMetadata(MetaKeyNode, renderErr.Node).
		WithMetadata(MetaKeyFilter, filterName).
		WithMetadata(MetaKeyLine, strconv.Itoa(renderErr.Position.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(renderErr.Position.Column))
}
