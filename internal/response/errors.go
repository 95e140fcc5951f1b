package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrAdminAccessOnly    ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Game-specific ─────────────────────────────────────────────────
	ErrNameNotAllowed ErrCode = "NAME_NOT_ALLOWED"
	ErrNoQuestions    ErrCode = "NO_QUESTIONS"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Wrong password."
	case ErrTokenRequired:
		return "An access token is required."
	case ErrTokenInvalid:
		return "The access token is invalid or expired."
	case ErrAdminAccessOnly:
		return "This endpoint is restricted to admins."
	case ErrValidation:
		return "The request contains invalid fields."
	case ErrInvalidPayload:
		return "The request body could not be parsed."
	case ErrNotFound:
		return "The requested resource was not found."
	case ErrNameNotAllowed:
		return "That player name is not allowed."
	case ErrNoQuestions:
		return "A session needs at least one question."
	case ErrInternal:
		return "Something went wrong on our side."
	default:
		return "Unknown error."
	}
}
