package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrForbidden          = &AppError{http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrEmailTaken        = &AppError{http.StatusConflict, "EMAIL_ALREADY_IN_USE", "Email already in use"}
	ErrInvalidInviteCode = &AppError{http.StatusForbidden, "INVALID_INVITE_CODE", "Invalid invite code"}
	ErrInvalidAmount     = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than zero"}
	ErrEmptyDescription  = &AppError{http.StatusBadRequest, "DESCRIPTION_REQUIRED", "Description is required"}
	ErrInvalidKind       = &AppError{http.StatusBadRequest, "INVALID_ENTRY_KIND", "Entry kind must be credit or debit"}
	ErrInvalidRole       = &AppError{http.StatusBadRequest, "INVALID_ROLE", "Role must be user or admin"}
	ErrSelfAction        = &AppError{http.StatusUnprocessableEntity, "SELF_ACTION_NOT_ALLOWED", "Cannot perform this action on your own account"}
)
