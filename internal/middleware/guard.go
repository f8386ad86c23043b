package middleware

import (
	"context"
	"strings"

	"si-prima/internal/logger"
	"si-prima/internal/model"
	"si-prima/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Key c.Locals yang diisi Guard
const (
	LocalIdentity = "identity"
	LocalSession  = "session"
	LocalToken    = "token"
)

// TokenCookie adalah nama cookie yang diset saat login
const TokenCookie = "access_token"

type State int

const (
	Loading State = iota
	Authorized
	RedirectLogin
	RedirectRoleHome
)

func (s State) String() string {
	switch s {
	case Authorized:
		return "authorized"
	case RedirectLogin:
		return "redirect_login"
	case RedirectRoleHome:
		return "redirect_role_home"
	default:
		return "loading"
	}
}

type Decision struct {
	State  State
	Target string // kosong jika Authorized
}

// Decide menentukan nasib request setelah identitas diketahui.
// requiredRole kosong berarti cukup login.
func Decide(identity *session.Identity, requiredRole string) Decision {
	if identity == nil {
		return Decision{State: RedirectLogin, Target: model.LoginPath}
	}
	if requiredRole != "" && !model.SameRole(identity.Role, requiredRole) {
		return Decision{State: RedirectRoleHome, Target: model.HomePath(identity.Role)}
	}
	return Decision{State: Authorized}
}

type IdentityResolver interface {
	Resolve(ctx context.Context, token string) *session.Identity
}

// Guard dijalankan ulang di setiap request, tidak ada hasil yang diingat antar request.
func Guard(resolver IdentityResolver, sessions *session.Manager, requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Ambil token (header dulu, lalu cookie)
		token := BearerToken(c)

		// 2. Resolusi identitas, handler berikutnya belum boleh jalan
		identity := resolver.Resolve(c.UserContext(), token)

		// 3. Putuskan
		decision := Decide(identity, requiredRole)
		if decision.State != Authorized {
			return c.Redirect(decision.Target, fiber.StatusFound)
		}

		// log selanjutnya di request ini membawa email & role
		c.SetUserContext(logger.WithLogger(c.UserContext(), map[string]interface{}{
			"email": identity.Email,
			"role":  identity.Role,
		}))
		c.Locals(LocalIdentity, identity)
		c.Locals(LocalSession, sessions.For(identity))
		c.Locals(LocalToken, token)
		return c.Next()
	}
}

// BearerToken membaca "Authorization: Bearer <token>", jika kosong memakai cookie access_token.
func BearerToken(c *fiber.Ctx) string {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return c.Cookies(TokenCookie)
}

// CurrentSession mengambil sesi yang disimpan Guard
func CurrentSession(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals(LocalSession).(*session.Session)
	return s
}

func CurrentIdentity(c *fiber.Ctx) *session.Identity {
	id, _ := c.Locals(LocalIdentity).(*session.Identity)
	return id
}
