package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a database-layer error into a code and a message the
// caller can show. Constraint details stay out of the message; the code is
// enough for the frontend to react.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	errLower := strings.ToLower(err.Error())

	// Postgres unique constraint violation (23505)
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return parseDuplicateKeyError(errLower)
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errLower, "foreign key constraint") {
		if strings.Contains(errLower, "still referenced") {
			return ErrorInfo{Code: ResourceConflict, Message: "The record is referenced by other data and cannot be deleted"}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "A referenced record does not exist"}
	}

	// Not null constraint violation (23502)
	if strings.Contains(errLower, "violates not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{Code: InternalDatabaseError, Message: "Storage is unavailable. Please try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred. Please try again later"}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "This email is already registered"}
	case strings.Contains(errLower, "requested_username"):
		return ErrorInfo{Code: CompanyUsernameConflict, Message: "This username is already requested"}
	case strings.Contains(errLower, "username"):
		return ErrorInfo{Code: AuthUsernameExists, Message: "This username is already taken"}
	default:
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "A matching record already exists"}
	}
}

func notFoundMessage(context string) string {
	switch {
	case strings.Contains(context, "car"):
		return "Car not found"
	case strings.Contains(context, "part"):
		return "Part not found"
	case strings.Contains(context, "company"):
		return "Company not found"
	case strings.Contains(context, "order"):
		return "Order not found"
	case strings.Contains(context, "user"):
		return "User not found"
	default:
		return "The requested record was not found"
	}
}
