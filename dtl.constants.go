package dtl

import "github.com/itsatony/go-dtl/internal"

// Default delimiters
const (
	DefaultVariableOpen  = internal.StrVariableOpen
	DefaultVariableClose = internal.StrVariableClose
	DefaultBlockOpen     = internal.StrBlockOpen
	DefaultBlockClose    = internal.StrBlockClose
	DefaultCommentOpen   = internal.StrCommentOpen
	DefaultCommentClose  = internal.StrCommentClose
)

// Engine defaults
const (
	// DefaultMaxDepth bounds block nesting during a render (0 = unlimited)
	DefaultMaxDepth = internal.DefaultMaxDepth
)

// Error code constants for categorization
const (
	ErrCodeSyntax     = "DTL_SYNTAX"
	ErrCodeRender     = "DTL_RENDER"
	ErrCodeValidation = "DTL_VALIDATION"
	ErrCodeRegistry   = "DTL_REGISTRY"
	ErrCodeStorage    = "DTL_STORAGE"
)

// Error messages - ALL error messages are constants
const (
	ErrMsgParseFailed          = "template parsing failed"
	ErrMsgRenderFailed         = "template rendering failed"
	ErrMsgTemplateNotFound     = "template not found"
	ErrMsgTemplateExists       = "template already registered"
	ErrMsgEmptyTemplateName    = "template name cannot be empty"
	ErrMsgInvalidFilter        = "invalid filter registration"
	ErrMsgInvalidDelimiters    = "delimiters must be non-empty and distinct"
	ErrMsgNilStorage           = "storage cannot be nil"
	ErrMsgNilStorageDriver     = "storage driver is nil"
	ErrMsgDriverRegistered     = "storage driver already registered"
	ErrMsgStorageDriverMissing = "storage driver not found"
	ErrMsgStorageClosed        = "storage is closed"
	ErrMsgStorageFailed        = "storage operation failed"
	ErrMsgVersionNotFound      = "template version not found"
	ErrMsgValidationFailed     = "template validation failed"
)

// Validation messages
const (
	ValidationMsgFilterNotImplemented = "filter is not implemented and will fail at render time"
	ValidationMsgEmptyLoopBody        = "for loop has an empty body"
	ValidationMsgEmptyIfBody          = "if block has an empty body"
)

// Metadata keys for cuserr errors
const (
	MetaKeyLine         = "line"
	MetaKeyColumn       = "column"
	MetaKeyOffset       = "offset"
	MetaKeyTag          = "tag"
	MetaKeyReason       = "reason"
	MetaKeyNode         = "node"
	MetaKeyFilter       = "filter"
	MetaKeyTemplateName = "template_name"
	MetaKeyVersion      = "version"
	MetaKeyDriverName   = "driver"
	MetaKeyMaxDepth     = "max_depth"
)

// Storage driver names
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
)

// Log messages
const (
	LogMsgEngineCreated      = "engine created"
	LogMsgTemplateParsed     = "template parsed"
	LogMsgTemplateRegistered = "template registered"
	LogMsgTemplateRemoved    = "template unregistered"
	LogMsgRenderFailed       = "render failed"
	LogMsgStorageOpened      = "storage opened"
	LogMsgStorageSaved       = "template saved"
	LogMsgStorageDeleted     = "template deleted"
	LogMsgCacheHit           = "parsed template cache hit"
	LogMsgCacheMiss          = "parsed template cache miss"
	LogMsgMigrationApplied   = "migration applied"
)

// Log field names
const (
	LogFieldTemplateName = "template_name"
	LogFieldVersion      = "version"
	LogFieldNodes        = "nodes"
	LogFieldFilters      = "filters"
	LogFieldMaxDepth     = "max_depth"
	LogFieldDriver       = "driver"
	LogFieldError        = "error"
	LogFieldMigration    = "migration"
)
