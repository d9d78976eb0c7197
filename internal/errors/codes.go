// Package errors provides structured error handling for docrank.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (keyword file, corpus, unit and descriptor files)
//   - 4XX: Validation errors (keyword rows, patterns)
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and directory I/O errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, the run must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates the item was skipped, processing continues.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigInvalid  = "ERR_101_CONFIG_INVALID"
	ErrCodeConfigNotFound = "ERR_102_CONFIG_NOT_FOUND"

	// IO errors (200-299)
	ErrCodeKeywordsNotFound = "ERR_201_KEYWORDS_NOT_FOUND"
	ErrCodeCorpusRoot       = "ERR_202_CORPUS_ROOT"
	ErrCodeModuleMetadata   = "ERR_203_MODULE_METADATA"
	ErrCodeUnitUnreadable   = "ERR_204_UNIT_UNREADABLE"

	// Validation errors (400-499)
	ErrCodeKeywordsInvalid = "ERR_401_KEYWORDS_INVALID"
	ErrCodeMalformedEntry  = "ERR_402_MALFORMED_ENTRY"
	ErrCodeInvalidPattern  = "ERR_403_INVALID_PATTERN"
	ErrCodeInvalidInput    = "ERR_404_INVALID_INPUT"

	// Internal errors (500-599)
	ErrCodeInternal   = "ERR_501_INTERNAL"
	ErrCodeScanFailed = "ERR_502_SCAN_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Numeric portion, e.g. "201" from "ERR_201_KEYWORDS_NOT_FOUND"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeConfigInvalid, ErrCodeConfigNotFound,
		ErrCodeKeywordsNotFound, ErrCodeCorpusRoot, ErrCodeKeywordsInvalid:
		return SeverityFatal
	case ErrCodeModuleMetadata, ErrCodeUnitUnreadable,
		ErrCodeMalformedEntry, ErrCodeInvalidPattern:
		return SeverityWarning
	default:
		return SeverityError
	}
}
