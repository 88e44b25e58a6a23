package middleware

import (
	"context"
	"strings"
	"time"

	"schooladmin_go/config"
	"schooladmin_go/database"
	"schooladmin_go/models"
	"schooladmin_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Claims is the session binding carried by each token: who the principal is,
// which table they authenticated against, and the display name.
type Claims struct {
	PrincipalID uint   `json:"principal_id"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateToken creates a new JWT for an authenticated principal
func GenerateToken(principalID uint, role, name string) (string, error) {
	claims := &Claims{
		PrincipalID: principalID,
		Role:        role,
		Name:        name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.AppConfig.JWTExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ParseToken validates a signed token string and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}
	return claims, nil
}

// JWTMiddleware validates bearer tokens and resolves the session principal
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		// Logged-out tokens are blacklisted in Redis until they expire
		if rc := database.GetRedisClient(); rc != nil {
			if n, err := rc.Exists(context.Background(), "blacklist:jwt:"+tokenString).Result(); err == nil && n > 0 {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Session has been invalidated",
				})
			}
		}

		claims, err := ParseToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		// Verify the principal still exists in the table matching the role claim
		if !principalExists(claims.Role, claims.PrincipalID) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Principal no longer exists",
			})
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}

func principalExists(role string, id uint) bool {
	var count int64
	switch role {
	case utils.RoleAdmin:
		database.DB.Model(&models.Admin{}).Where("id = ?", id).Count(&count)
	case utils.RoleTeacher:
		database.DB.Model(&models.Teacher{}).Where("id = ?", id).Count(&count)
	case utils.RoleStudent:
		database.DB.Model(&models.Student{}).Where("id = ?", id).Count(&count)
	}
	return count > 0
}

// RequireRole checks that the session role is one of the allowed roles. All
// role gates share this single check; the roles differ only by parameter.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing user claims",
			})
		}

		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Insufficient permissions",
		})
	}
}

// RequireAdmin gates the admin surface. Unauthenticated requests are
// rejected; there is no implicit admin session.
func RequireAdmin() fiber.Handler {
	return RequireRole(utils.RoleAdmin)
}

// RequireTeacherOrAdmin allows teacher and admin sessions
func RequireTeacherOrAdmin() fiber.Handler {
	return RequireRole(utils.RoleTeacher, utils.RoleAdmin)
}

// GetCurrentClaims returns the current session claims
func GetCurrentClaims(c *fiber.Ctx) (*Claims, error) {
	claims, ok := c.Locals("claims").(*Claims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Claims not found in context")
	}
	return claims, nil
}
