package apperrors

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError shapes err into the standard error response. Non-AppErrors are
// wrapped as InternalError.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}
	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// AsAppError converts err to *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Predefined cross-cutting errors.
var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid credentials", 401)
	ErrUserBlocked        = New(CodeForbidden, "auth", "User blocked", 403)
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "auth", "Email already exists", 409)
	ErrInsufficientRole   = New(CodeForbidden, "auth", "Insufficient permissions", 403)
)
