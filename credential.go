package tokenauth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Credential is the transient input for both flows: an identifier that
// doubles as the username, the plaintext secret, and, for registration,
// an email address. It is constructed per request and discarded after
// use; the secret is never persisted or logged.
type Credential struct {
	Identifier string `form:"identifier" json:"identifier"`
	Email      string `form:"email" json:"email"`
	Secret     string `form:"secret" json:"secret"`
}

// GetIdentifier returns the identifier
func (c Credential) GetIdentifier() string {
	return c.Identifier
}

// GetEmail returns the email
func (c Credential) GetEmail() string {
	return c.Email
}

// ValidateForRegistration runs the registration validation rules. All
// three fields are required; this runs before any store call.
func (c Credential) ValidateForRegistration() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Identifier, validation.Required, validation.Length(2, 100)),
		validation.Field(&c.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&c.Secret, validation.Required),
	)
}

// ValidateForLogin runs the login validation rules. Email is not required
// to log in.
func (c Credential) ValidateForLogin() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Identifier, validation.Required),
		validation.Field(&c.Secret, validation.Required),
	)
}
