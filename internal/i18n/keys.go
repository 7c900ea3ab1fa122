package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyConflict           = "error.conflict"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyTimeout            = "error.timeout"
	ErrKeyUnavailable        = "error.unavailable"

	// Engine errors.
	ErrKeyValidation      = "error.bbs.validation"
	ErrKeyInvalidUnit     = "error.bbs.invalid_unit"
	ErrKeyInvalidGeometry = "error.bbs.invalid_geometry"
	ErrKeyUnknownCode     = "error.bbs.unknown_code"
	ErrKeyTooManyItems    = "error.bbs.too_many_items"

	ErrKeyFileRequired      = "error.import.file_required"
	ErrKeyUnsupportedFormat = "error.unsupported_format"
	ErrKeyImportRow         = "error.import.row"
	ErrKeyFileTooLarge      = "error.import.file_too_large"
	ErrKeyInvalidRateCard   = "error.rate_card.invalid"
	ErrKeyScheduleNotFound  = "error.schedule.not_found"
)
