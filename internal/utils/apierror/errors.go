package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedJSONError  = NewSimple(400, "Malformed JSON body")
	InternalServerError = NewSimple(500, "Internal server error")

	NotFoundError     = NewSimple(404, "Resource not found")
	UnauthorizedError = NewSimple(401, "Missing or invalid credentials")
	InvalidTokenError = NewSimple(404, "Invalid or expired access link")

	AdminOnlyError        = NewSimple(403, "This action requires administrator access")
	ReminderRunBusyError  = NewSimple(409, "A reminder run is already in progress")
	COINotReviewableError = NewSimple(409, "COI is not awaiting review")
	InvalidAuthTokenError = NewSimple(401, "Invalid authorization token")

	/*
	 * Used for authentications
	 */
	UserAlreadyConfirmedError   = NewSimple(400, "User is already confirmed")
	UserAlreadyExistsError      = NewSimple(400, "User already exists")
	MissingAccessError          = NewSimple(403, "Missing access")
	IDPInvalidPasswordError     = NewSimple(400, "Provided password does not meet requirements")
	IDPExistingEmailError       = NewSimple(400, "Email already exists")
	IDPUserNotFoundError        = NewSimple(404, "User not found")
	IDPUserNotConfirmedError    = NewSimple(400, "User is not confirmed yet")
	IDPCredentialsMismatchError = NewSimple(400, "Credentials mismatch")
	IDPConfirmCodeMismatchError = NewSimple(400, "Confirmation code mismatch")
	IDPConfirmCodeExpiredError  = NewSimple(400, "Confirmation code has expired")
	IDPInvalidParameterError    = NewSimple(400, "Invalid parameters provided, the user is likely already verified")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+fe.Param())
		case "usstate":
			problems[field] = append(problems[field], "Value must be a two-letter US state code")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewForbiddenError(msg string) *APIError {
	return NewSimple(http.StatusForbidden, msg)
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}
