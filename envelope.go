package tokenauth

import "time"

// EnvelopeMessage is the static descriptive text carried by every envelope.
const EnvelopeMessage = "JSON Web Token"

// TokenEnvelope is the issuance response payload. It only ever exists for
// an authenticated identity: issuance failures never produce an envelope,
// so Authenticated is always true on a returned value. The struct is
// immutable once constructed.
type TokenEnvelope struct {
	Authenticated bool      `json:"authenticated"`
	Token         string    `json:"token"`
	Expiration    time.Time `json:"expiration"`
	Message       string    `json:"message"`
}
