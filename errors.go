package tokenauth

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found")

// ErrNoEmptyString rejects empty secrets before hashing
var ErrNoEmptyString = errors.New("value should not be an empty string")

// ErrMismatchedHashAndPassword is the single failure signal for a secret
// that does not verify, whatever the underlying cause
var ErrMismatchedHashAndPassword = errors.New("password does not match")

// InvalidLoginMessage is the uniform rejection returned for every failed
// login. It never distinguishes an unknown identifier from a wrong secret.
const InvalidLoginMessage = "invalid login"

const (
	TextCodeInvalidLogin    = "INVALID_LOGIN"
	TextCodeValidation      = "VALIDATION_ERROR"
	TextCodeConfigFault     = "CONFIGURATION_FAULT"
	TextCodeUnexpectedFault = "UNEXPECTED_FAULT"
	TextCodeTokenExpired    = "TOKEN_EXPIRED"
	TextCodeTokenMalformed  = "TOKEN_MALFORMED"
)

// ErrTokenExpired will flag expired tokens during validation
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed will flag tokens we could not decode
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed)

// NewInvalidLoginError builds the generic login rejection
func NewInvalidLoginError() *goerrors.Error {
	return goerrors.New(InvalidLoginMessage, goerrors.CategoryAuth).
		WithTextCode(TextCodeInvalidLogin)
}

// NewValidationError builds a rich validation error carrying a field to
// message map in its metadata under the "fields" key.
func NewValidationError(message string, fields map[string]string) *goerrors.Error {
	err := goerrors.New(message, goerrors.CategoryValidation).
		WithTextCode(TextCodeValidation)

	if len(fields) > 0 {
		err = err.WithMetadata(map[string]any{"fields": fields})
	}

	return err
}

// FormatValidationErrorToMap flattens an ozzo validation error into a
// field name to message map. Non validation errors yield a nil map.
func FormatValidationErrorToMap(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if ferr != nil {
			out[field] = ferr.Error()
		}
	}

	return out
}

// ValidationFields extracts the field map from a rich validation error,
// returning nil when the error carries none.
func ValidationFields(err error) map[string]string {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Metadata == nil {
		return nil
	}

	fields, ok := rich.Metadata["fields"].(map[string]string)
	if !ok {
		return nil
	}

	return fields
}

// IsValidationError will check for validation category errors
func IsValidationError(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.Category == goerrors.CategoryValidation
}

// IsInvalidLogin will check for the uniform login rejection
func IsInvalidLogin(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == TextCodeInvalidLogin
}
