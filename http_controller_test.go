package tokenauth_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	tokenauth "github.com/goliatone/go-tokenauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestApp(t *testing.T) (*fiber.App, *tokenauth.MemoryCredentialStore) {
	t.Helper()

	restore := tokenauth.BcryptCost
	tokenauth.BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { tokenauth.BcryptCost = restore })

	store := tokenauth.NewMemoryCredentialStore()
	settings := tokenauth.MustTokenSettings("http-test-key", "test-issuer", "2.0", "test:audience")

	authenticator := tokenauth.NewAuthenticator(store, settings).
		WithLogger(silentLogger{}).
		WithSignInHook(store)

	controller := tokenauth.NewAuthController(authenticator,
		tokenauth.WithControllerLogger(silentLogger{}))

	app := fiber.New()
	tokenauth.RegisterAuthRoutes(app, controller)

	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}

	return resp, decoded
}

func TestRegisterEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("Successful registration returns an envelope", func(t *testing.T) {
		resp, body := postJSON(t, app, "/auth/register",
			`{"identifier":"alice","email":"a@x.com","secret":"Str0ng!Pass"}`)

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["authenticated"])
		assert.NotEmpty(t, body["token"])
		assert.Equal(t, tokenauth.EnvelopeMessage, body["message"])

		expiration, err := time.Parse(time.RFC3339, body["expiration"].(string))
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC().Add(2*time.Hour), expiration, time.Minute)
	})

	t.Run("Empty secret yields 400 with a secret field error", func(t *testing.T) {
		resp, body := postJSON(t, app, "/auth/register",
			`{"identifier":"bob","email":"b@x.com","secret":""}`)

		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Nil(t, body["token"])

		errs, ok := body["errors"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, errs, "secret")
	})

	t.Run("Duplicate registration yields 400", func(t *testing.T) {
		resp, body := postJSON(t, app, "/auth/register",
			`{"identifier":"alice","email":"a@x.com","secret":"Str0ng!Pass"}`)

		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Nil(t, body["token"])
	})

	t.Run("Malformed body yields 400", func(t *testing.T) {
		resp, _ := postJSON(t, app, "/auth/register", `{"identifier":`)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestLoginEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := postJSON(t, app, "/auth/register",
		`{"identifier":"alice","email":"a@x.com","secret":"Str0ng!Pass"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	t.Run("Successful login returns an envelope", func(t *testing.T) {
		resp, body := postJSON(t, app, "/auth/login",
			`{"identifier":"alice","secret":"Str0ng!Pass"}`)

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["authenticated"])
		assert.NotEmpty(t, body["token"])
	})

	t.Run("Wrong secret yields 400 with the generic message", func(t *testing.T) {
		resp, body := postJSON(t, app, "/auth/login",
			`{"identifier":"alice","secret":"wrong"}`)

		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Nil(t, body["token"])
		assert.Equal(t, tokenauth.InvalidLoginMessage, body["message"])
	})

	t.Run("Unknown identifier is indistinguishable from wrong secret", func(t *testing.T) {
		_, wrongBody := postJSON(t, app, "/auth/login",
			`{"identifier":"alice","secret":"wrong"}`)
		_, unknownBody := postJSON(t, app, "/auth/login",
			`{"identifier":"nobody","secret":"whatever"}`)

		assert.Equal(t, wrongBody["message"], unknownBody["message"])
		assert.Equal(t, wrongBody["code"], unknownBody["code"])
	})

	t.Run("Missing fields yield 400 with field errors", func(t *testing.T) {
		resp, body := postJSON(t, app, "/auth/login", `{}`)

		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		errs, ok := body["errors"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, errs, "identifier")
		assert.Contains(t, errs, "secret")
	})
}
