// Package tokenauth turns verified credentials into signed bearer tokens.
//
// Two flows compose around a single issuer:
//   - Register validates a candidate credential, delegates account creation
//     to a CredentialStore, and on an error-free create issues a token
//     right away (auto-login after signup).
//   - Login verifies the credential against the store and issues a token on
//     success. Every failure collapses into one generic rejection so a
//     caller cannot tell an unknown identifier from a wrong secret.
//
// Token issuance is a pure function of (identity, configuration, clock):
// the TokenService builds a claim set bound to the identity's email, adds a
// fresh token ID on every call, signs the result with a symmetric
// HMAC-SHA256 key, and wraps the compact serialization in a TokenEnvelope
// together with its UTC expiration.
//
// Storage backends are substitutable: anything implementing CredentialStore
// works. The package ships a Bun-backed store and an in-memory store.
//
// Sign-in hooks and activity sinks:
//   - SignInHook records that an identity is signed in for the current
//     request. Hooks run best-effort after the store confirms the identity
//     and before issuance; a nil or failing hook never blocks a token.
//   - ActivitySink is a light-weight audit emitter describing registration,
//     login, and session events. Sinks are fire-and-forget as well.
package tokenauth
