package middleware

import (
	"crypto/subtle"
	"errors"
	"strconv"
	"strings"

	"health_record_ms/config"
	"health_record_ms/domain"
	"health_record_ms/services"

	"github.com/gofiber/fiber/v2"
)

// Principal is resolved once per request: either the static admin or a real
// user row. Guards downstream only ever look at this value.
type Principal struct {
	IsAdmin bool
	User    *domain.User
}

func (p Principal) UserId() uint {
	if p.User == nil {
		return 0
	}
	return p.User.Id
}

// OwnerResolver maps the request to the user id owning the touched resource.
// Registered explicitly per route; guards never sniff path parameters by name.
type OwnerResolver func(c *fiber.Ctx) (uint, error)

type Guards struct {
	sessions services.ISessionService
}

func NewGuards(sessions services.ISessionService) *Guards {
	return &Guards{sessions: sessions}
}

// SessionToken pulls the bearer value: cookie first, Authorization fallback.
func SessionToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(config.Conf.Application.Security.CookieName); cookie != "" {
		return cookie
	}
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// IsAdminToken is a pure token comparison; it never touches the user store,
// so the admin path stays up when session storage is down.
func IsAdminToken(token string) bool {
	secret := config.Conf.Application.Security.AdminToken
	if secret == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": domain.ErrUnauthenticated.Error(),
	})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error": domain.ErrForbidden.Error(),
	})
}

func setPrincipal(c *fiber.Ctx, p Principal) {
	c.Locals("principal", p)
	c.Locals("userId", p.UserId())
}

// CurrentPrincipal reads what an earlier guard resolved.
func CurrentPrincipal(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals("principal").(Principal)
	return p, ok
}

func (g *Guards) resolveUser(c *fiber.Ctx) (*domain.User, error) {
	token := SessionToken(c)
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	return g.sessions.CurrentUser(token)
}

// RequireAuth admits any live, active user session.
func (g *Guards) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := g.resolveUser(c)
		if err != nil {
			return unauthenticated(c)
		}
		setPrincipal(c, Principal{User: user})
		return c.Next()
	}
}

// RequirePrincipal admits the admin token or any live user session. Used on
// routes that only need to know who is calling, not what they may touch.
func (g *Guards) RequirePrincipal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IsAdminToken(SessionToken(c)) {
			setPrincipal(c, Principal{IsAdmin: true})
			return c.Next()
		}
		user, err := g.resolveUser(c)
		if err != nil {
			return unauthenticated(c)
		}
		setPrincipal(c, Principal{User: user})
		return c.Next()
	}
}

// RequireOwnership admits only the user whose id sits in the named path
// parameter.
func (g *Guards) RequireOwnership(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := g.resolveUser(c)
		if err != nil {
			return unauthenticated(c)
		}
		target, err := strconv.Atoi(c.Params(param))
		if err != nil || uint(target) != user.Id {
			return forbidden(c)
		}
		setPrincipal(c, Principal{User: user})
		return c.Next()
	}
}

// RequireAdmin admits only the static admin token: absent token is 401,
// present but mismatching is 403.
func (g *Guards) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := SessionToken(c)
		if token == "" {
			return unauthenticated(c)
		}
		if !IsAdminToken(token) {
			return forbidden(c)
		}
		setPrincipal(c, Principal{IsAdmin: true})
		return c.Next()
	}
}

// RequireAdminOrUser admits the admin token or the exact user named by the
// path parameter.
func (g *Guards) RequireAdminOrUser(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IsAdminToken(SessionToken(c)) {
			setPrincipal(c, Principal{IsAdmin: true})
			return c.Next()
		}
		user, err := g.resolveUser(c)
		if err != nil {
			return unauthenticated(c)
		}
		target, err := strconv.Atoi(c.Params(param))
		if err != nil || uint(target) != user.Id {
			return forbidden(c)
		}
		setPrincipal(c, Principal{User: user})
		return c.Next()
	}
}

// RequireAdminOrOwnership tries the admin token first (no resolver ever runs
// for the admin), then admits the session user if any resolver maps the
// request to their id. A resolver failure counts as non-matching, never as
// "no restriction".
func (g *Guards) RequireAdminOrOwnership(resolvers ...OwnerResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IsAdminToken(SessionToken(c)) {
			setPrincipal(c, Principal{IsAdmin: true})
			return c.Next()
		}
		user, err := g.resolveUser(c)
		if err != nil {
			return unauthenticated(c)
		}

		resolvedAny := false
		notFound := false
		for _, resolve := range resolvers {
			ownerID, err := resolve(c)
			if errors.Is(err, domain.ErrNotFound) {
				notFound = true
				continue
			}
			if err != nil {
				continue
			}
			resolvedAny = true
			if ownerID == user.Id {
				setPrincipal(c, Principal{User: user})
				return c.Next()
			}
		}

		if !resolvedAny && notFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": domain.ErrNotFound.Error(),
			})
		}
		return forbidden(c)
	}
}
