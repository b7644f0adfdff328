package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Invalid input (100-199). Structural violations that would corrupt
	// incremental state; always surfaced to the caller.
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidTimestamp     ErrorCode = 102
	ErrCodeDuplicateTimestamp   ErrorCode = 103
	ErrCodeInvalidPrice         ErrorCode = 104
	ErrCodeInvalidPercent       ErrorCode = 105
	ErrCodeInvalidSize          ErrorCode = 106
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeLengthMismatch       ErrorCode = 111
	ErrCodeInvalidFill          ErrorCode = 112

	// Data errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeDataParseFailed       ErrorCode = 203
	ErrCodeDataWriteFailed       ErrorCode = 204
	ErrCodeInsufficientData      ErrorCode = 205

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeColumnNotFound         ErrorCode = 302

	// Strategy errors (400-499)
	ErrCodeUnsupportedStrategy ErrorCode = 400
	ErrCodeStrategyConfigError ErrorCode = 401
)

const (
	invalidInputLow  ErrorCode = 100
	invalidInputHigh ErrorCode = 199
)
