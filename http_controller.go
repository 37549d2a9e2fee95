package tokenauth

import (
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// AuthControllerRoutes holds the paths the controller mounts.
type AuthControllerRoutes struct {
	Register string
	Login    string
}

// AuthController exposes the two flows as a JSON API: 200 with a token
// envelope on success, 400 with a structured error list on validation or
// credential failure, 500 with a message on anything else.
type AuthController struct {
	Logger Logger
	Auther Authenticator
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

// WithControllerLogger overrides the controller logger.
func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

// WithControllerRoutes overrides the mounted paths.
func WithControllerRoutes(routes *AuthControllerRoutes) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Routes = routes
		return c
	}
}

func NewAuthController(auther Authenticator, opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Auther: auther,
		Routes: &AuthControllerRoutes{
			Register: "/auth/register",
			Login:    "/auth/login",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the register and login handlers on a fiber app.
func RegisterAuthRoutes(app *fiber.App, controller *AuthController) {
	app.Post(controller.Routes.Register, controller.RegisterPost).
		Name("register.post")
	app.Post(controller.Routes.Login, controller.LoginPost).
		Name("login.post")
}

func (a *AuthController) RegisterPost(ctx *fiber.Ctx) error {
	payload := new(Credential)

	if err := ctx.BodyParser(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "failed to parse request body",
		})
	}

	envelope, err := a.Auther.Register(ctx.UserContext(), *payload)
	if err != nil {
		return a.renderError(ctx, err)
	}

	return ctx.JSON(envelope)
}

func (a *AuthController) LoginPost(ctx *fiber.Ctx) error {
	payload := new(Credential)

	if err := ctx.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "failed to parse request body",
		})
	}

	envelope, err := a.Auther.Login(ctx.UserContext(), *payload)
	if err != nil {
		return a.renderError(ctx, err)
	}

	return ctx.JSON(envelope)
}

func (a *AuthController) renderError(ctx *fiber.Ctx, err error) error {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		rich = goerrors.Wrap(err, goerrors.CategoryInternal, "an unexpected server error occurred")
	}

	status := statusFor(rich)

	body := fiber.Map{"message": rich.Message}
	if rich.TextCode != "" {
		body["code"] = rich.TextCode
	}
	if fields := ValidationFields(rich); len(fields) > 0 {
		body["errors"] = fields
	}

	if status == fiber.StatusInternalServerError {
		a.Logger.Error("auth controller error", "error", err)
	} else {
		a.Logger.Info("auth controller rejection", "code", rich.TextCode)
	}

	return ctx.Status(status).JSON(body)
}

// statusFor maps error categories onto the three HTTP-style outcomes the
// flows produce. Credential failures deliberately share the 400 class
// with validation errors.
func statusFor(rich *goerrors.Error) int {
	switch rich.Category {
	case goerrors.CategoryValidation, goerrors.CategoryBadInput,
		goerrors.CategoryAuth, goerrors.CategoryConflict:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
