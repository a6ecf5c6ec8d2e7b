package controller

import (
	"net/http"
	"strings"
	"time"

	"health_record_ms/config"
	"health_record_ms/domain"
	"health_record_ms/dtos/request"
	"health_record_ms/dtos/response"
	"health_record_ms/middleware"
	"health_record_ms/services"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

type IAuthController interface {
	RegisterStart(c *fiber.Ctx) error
	RegisterFinish(c *fiber.Ctx) error
	LoginStart(c *fiber.Ctx) error
	LoginFinish(c *fiber.Ctx) error
	AdminLogin(c *fiber.Ctx) error
	Logout(c *fiber.Ctx) error
	Me(c *fiber.Ctx) error
	RevokeCredential(c *fiber.Ctx) error
}

type AuthController struct {
	passkeys services.IPasskeyService
	sessions services.ISessionService
}

func NewAuthController(passkeys services.IPasskeyService, sessions services.ISessionService) IAuthController {
	return &AuthController{passkeys: passkeys, sessions: sessions}
}

func sameSiteFor(value string) string {
	switch strings.ToLower(value) {
	case "strict":
		return fiber.CookieSameSiteStrictMode
	case "none":
		return fiber.CookieSameSiteNoneMode
	default:
		return fiber.CookieSameSiteLaxMode
	}
}

func setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	sec := config.Conf.Application.Security
	c.Cookie(&fiber.Cookie{
		Name:     sec.CookieName,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   sec.CookieSecure,
		SameSite: sameSiteFor(sec.CookieSameSite),
		Path:     "/",
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	sec := config.Conf.Application.Security
	c.Cookie(&fiber.Cookie{
		Name:     sec.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   sec.CookieSecure,
		SameSite: sameSiteFor(sec.CookieSameSite),
		Path:     "/",
	})
}

func (ac *AuthController) RegisterStart(c *fiber.Ctx) error {
	body := c.Locals("body").(*request.StartPasskeyRegistration)
	options, err := ac.passkeys.RegisterStart(body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(options)
}

func (ac *AuthController) RegisterFinish(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "phone is required"})
	}

	req := new(http.Request)
	if err := fasthttpadaptor.ConvertRequest(c.Context(), req, true); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to convert request"})
	}

	verified, err := ac.passkeys.RegisterFinish(phone, req)
	if err != nil {
		return fail(c, err)
	}

	token, expiresAt, err := ac.sessions.Issue(verified.UserId)
	if err != nil {
		return fail(c, err)
	}
	setSessionCookie(c, token, expiresAt)

	return c.JSON(verified)
}

func (ac *AuthController) LoginStart(c *fiber.Ctx) error {
	body := c.Locals("body").(*request.StartPasskeyLogin)
	assertion, err := ac.passkeys.LoginStart(body.CredentialId)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(assertion)
}

func (ac *AuthController) LoginFinish(c *fiber.Ctx) error {
	credentialID := c.Params("credentialId")
	if credentialID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "credential id is required"})
	}

	req := new(http.Request)
	if err := fasthttpadaptor.ConvertRequest(c.Context(), req, true); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to convert request"})
	}

	user, err := ac.passkeys.LoginFinish(credentialID, req)
	if err != nil {
		return fail(c, err)
	}

	token, expiresAt, err := ac.sessions.Issue(user.Id)
	if err != nil {
		return fail(c, err)
	}
	setSessionCookie(c, token, expiresAt)

	return c.JSON(response.SessionUser{
		UserId:   user.Id,
		Name:     user.Name,
		Phone:    user.Phone,
		IsActive: user.IsActive,
	})
}

// AdminLogin exchanges the bearer secret for the session cookie slot. The
// cookie carries the secret itself; guards recognize it by comparison.
func (ac *AuthController) AdminLogin(c *fiber.Ctx) error {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return fail(c, domain.ErrUnauthenticated)
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	if !middleware.IsAdminToken(token) {
		return fail(c, domain.ErrForbidden)
	}
	setSessionCookie(c, token, time.Now().Add(24*time.Hour))
	return c.JSON(fiber.Map{"status": "ok"})
}

// Logout always reports success; revoking an unknown token is a no-op.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	token := middleware.SessionToken(c)
	if token != "" && !middleware.IsAdminToken(token) {
		ac.sessions.Revoke(token)
	}
	clearSessionCookie(c)
	return c.JSON(fiber.Map{"status": "ok"})
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fail(c, domain.ErrUnauthenticated)
	}
	if principal.IsAdmin {
		return c.JSON(fiber.Map{"admin": true})
	}
	user := principal.User
	return c.JSON(response.SessionUser{
		UserId:   user.Id,
		Name:     user.Name,
		Phone:    user.Phone,
		IsActive: user.IsActive,
	})
}

func (ac *AuthController) RevokeCredential(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok || principal.User == nil {
		return fail(c, domain.ErrUnauthenticated)
	}
	if err := ac.passkeys.RevokeCredential(principal.User.Id, c.Params("credentialId")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
