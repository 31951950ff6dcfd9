package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/pkg/jwt"
)

// Locals keys del usuario autenticado.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

var (
	errMissingToken = domain.NewError(domain.ErrUnauthorized, "MISSING_TOKEN", "Token de autenticação não fornecido")
	errBadToken     = domain.NewError(domain.ErrUnauthorized, "INVALID_TOKEN", "Token inválido ou expirado")
	errUnknownUser  = domain.NewError(domain.ErrUnauthorized, "UNAUTHORIZED", "Usuário não encontrado")
)

// UserResolver busca el usuario del subject del token (UserRepository lo implementa).
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token JWT, comprueba que el usuario exista
// y deja user_id, email y role en c.Locals.
func AuthMiddleware(jwtSecret string, users UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return errMissingToken
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return errBadToken
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return errMissingToken
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return errBadToken.WithCause(err)
		}
		user, err := users.GetByID(c.UserContext(), claims.UserID())
		if err != nil {
			return err
		}
		if user == nil {
			return errUnknownUser
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalEmail, user.Email)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail devuelve el email del usuario autenticado.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
