package handler

import (
	"errors"
	"log/slog"

	"github.com/forgo/cuppa/internal/database"
	"github.com/forgo/cuppa/internal/model"
	"github.com/forgo/cuppa/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// Unknown errors become a 500 with a generic detail.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrUserIDRequired):
		return model.NewUnauthorizedError("authentication required")

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrCoffeeNotFound):
		return model.NewNotFoundError("coffee")
	case errors.Is(err, service.ErrFlavorNoteNotFound):
		return model.NewNotFoundError("flavor note")
	case errors.Is(err, service.ErrQuizQuestionNotFound):
		return model.NewNotFoundError("quiz question")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrFlavorNoteExists),
		errors.Is(err, service.ErrQuizQuestionExists):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrCoffeeNameRequired),
		errors.Is(err, service.ErrCoffeeNameTooLong):
		return fieldError("name", err)
	case errors.Is(err, service.ErrRoasterRequired),
		errors.Is(err, service.ErrRoasterTooLong):
		return fieldError("roaster", err)
	case errors.Is(err, service.ErrOriginRequired),
		errors.Is(err, service.ErrOriginTooLong):
		return fieldError("origin", err)
	case errors.Is(err, service.ErrDescriptionTooLong):
		return fieldError("description", err)
	case errors.Is(err, service.ErrInvalidRoastLevel):
		return fieldError("roast_level", err)
	case errors.Is(err, service.ErrInvalidProcessMethod):
		return fieldError("process_method", err)
	case errors.Is(err, service.ErrFlavorNoteNameRequired),
		errors.Is(err, service.ErrFlavorNoteNameTooLong):
		return fieldError("name", err)
	case errors.Is(err, service.ErrInvalidRating):
		return fieldError("rating", err)
	case errors.Is(err, service.ErrTooManyFlavorNotes):
		return fieldError("flavor_notes", err)
	case errors.Is(err, service.ErrReviewTextTooLong):
		return fieldError("review", err)
	case errors.Is(err, service.ErrInvalidQuizRoast):
		return fieldError("quiz.preferred_roast", err)
	case errors.Is(err, service.ErrTooManyQuizFlavors):
		return fieldError("quiz.preferred_flavors", err)
	case errors.Is(err, service.ErrInvalidAnswerType):
		return fieldError("answer_type", err)
	case errors.Is(err, service.ErrQuizOptionsRequired):
		return fieldError("options", err)
	case errors.Is(err, service.ErrInvalidLimit):
		return fieldError("limit", err)

	// ===== Bad Request Errors → 400 =====
	case errors.Is(err, service.ErrSearchTermRequired):
		return model.NewBadRequestError(err.Error())

	// ===== Dependency Errors → 503 =====
	case errors.Is(err, database.ErrConnection):
		return model.NewServiceUnavailableError("storage is temporarily unavailable")

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

func fieldError(field string, err error) *model.ProblemDetails {
	return model.NewValidationError([]model.FieldError{{Field: field, Message: err.Error()}})
}

// MapServiceErrorWithContext maps err and, for unexpected failures, logs
// it and names the failed operation in the response detail.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		slog.Error(operation+" failed", slog.String("error", err.Error()))
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
