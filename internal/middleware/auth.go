package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pronetwork/backend/internal/models"
	"github.com/pronetwork/backend/internal/repositories"
	"github.com/pronetwork/backend/internal/security"
)

// identityKey is where the normalized acting identity lives in request locals.
const identityKey = "identity"

type Auth struct {
	secret   string
	userRepo *repositories.UserRepository
}

func NewAuth(secret string, userRepo *repositories.UserRepository) *Auth {
	return &Auth{secret: secret, userRepo: userRepo}
}

// RequireUser authenticates the request and stores a normalized Identity in
// locals. The token comes from the Authorization header, or from the `token`
// query parameter for websocket clients that cannot set headers. Banned
// identities may still read but all write methods are refused.
func (a *Auth) RequireUser(c *fiber.Ctx) error {
	token := bearerToken(c.Get("Authorization"))
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "missing credentials",
		})
	}

	claims, err := security.ValidateJWT(token, a.secret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "invalid token",
		})
	}

	user, err := a.userRepo.GetByID(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "unknown user",
		})
	}

	identity := models.IdentityOf(user)
	if identity.Banned && c.Method() != fiber.MethodGet {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "account suspended",
		})
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFrom reads the identity placed by RequireUser.
func IdentityFrom(c *fiber.Ctx) (models.Identity, bool) {
	identity, ok := c.Locals(identityKey).(models.Identity)
	return identity, ok
}

// LocalIdentity reads the identity from a plain Locals getter, for handlers
// (like the websocket upgrade) that only expose Locals(key).
func LocalIdentity(locals func(key string) interface{}) (models.Identity, bool) {
	identity, ok := locals(identityKey).(models.Identity)
	return identity, ok
}

func bearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
