package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed store error ready to surface to the caller.
type ErrorInfo struct {
	Code    string
	Message string
}

// IsUniqueViolation reports whether err is a duplicate-key signal from the
// store. Postgres reports SQLSTATE 23505; SQLite (used by the test DB)
// reports "UNIQUE constraint failed".
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// IsForeignKeyViolation reports whether err is a foreign-key signal from the
// store (Postgres SQLSTATE 23503, SQLite "FOREIGN KEY constraint failed").
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "23503")
}

// ParseError converts a store or service error into a code and a message
// staff can act on. This is an internal tool, so unparsed store errors keep
// their text for operator diagnosis.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Something went wrong"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	if IsUniqueViolation(err) {
		return parseDuplicateKeyError(err.Error(), context)
	}

	if IsForeignKeyViolation(err) {
		return parseForeignKeyError(err.Error(), context)
	}

	errLower := strings.ToLower(err.Error())
	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Upstream store is unreachable, please retry shortly",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: err.Error(),
	}
}

func parseDuplicateKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "slug") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "That slug is already taken, please try another name",
		}
	}
	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "That email is already registered",
		}
	}
	if strings.Contains(context, "category") {
		return ErrorInfo{
			Code:    CategoryDuplicate,
			Message: "Duplicate name, please try another name",
		}
	}
	if strings.Contains(context, "cuisine") {
		return ErrorInfo{
			Code:    CuisineDuplicate,
			Message: "A cuisine with that name already exists",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "That name is already in use",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// Deleting a row others still reference
	if strings.Contains(errLower, "still referenced") ||
		strings.Contains(context, "delete") {
		if strings.Contains(context, "category") {
			return ErrorInfo{
				Code:    CategoryInUse,
				Message: "Cannot delete: category is in use by places",
			}
		}
		if strings.Contains(context, "cuisine") {
			return ErrorInfo{
				Code:    CuisineInUse,
				Message: "Cannot delete: cuisine is in use by places/branches",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Cannot delete: other records still reference this row",
		}
	}

	// Inserting with a reference that does not exist
	if strings.Contains(errLower, "place_id") || strings.Contains(context, "branch") {
		return ErrorInfo{
			Code:    PlaceNotFound,
			Message: "Referenced place does not exist",
		}
	}
	if strings.Contains(errLower, "category_id") {
		return ErrorInfo{
			Code:    CategoryNotFound,
			Message: "Referenced category does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "Referenced record does not exist",
	}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "place"):
		return "Place not found"
	case strings.Contains(contextLower, "branch"):
		return "Branch not found"
	case strings.Contains(contextLower, "category"):
		return "Category not found"
	case strings.Contains(contextLower, "cuisine"):
		return "Cuisine not found"
	case strings.Contains(contextLower, "request"):
		return "Request not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	}
	return "Not found"
}
