package middleware

import (
	"errors"
	"strings"
	"time"

	"dispatch-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	localUserID = "userID"
	localRole   = "role"
)

// GenerateToken signs an HS256 token carrying user_id and role.
func GenerateToken(secret string, userID uint, role models.Role, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// AuthMiddleware verifies the bearer token and stores user_id and role in
// the request locals.
func AuthMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// Ambil header Authorization
		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			return unauthorized(ctx, "Missing Authorization header")
		}

		// Ambil token dari "Bearer <token>"
		tokenParts := strings.Fields(authHeader)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
			return unauthorized(ctx, "Invalid Authorization header format")
		}

		token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
			// Pastikan metode signing yang digunakan sesuai
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return []byte(secret), nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			return unauthorized(ctx, "Unauthorized: Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(ctx, "Unauthorized: Invalid token")
		}

		userID, ok := claims["user_id"].(float64)
		if !ok || userID < 1 {
			return unauthorized(ctx, "Unauthorized: Invalid user ID")
		}

		role := models.Role(stringClaim(claims, "role"))
		if !role.Valid() {
			return unauthorized(ctx, "Unauthorized: Invalid role")
		}

		ctx.Locals(localUserID, userID)
		ctx.Locals(localRole, role)
		return ctx.Next()
	}
}

// RequireRole lets the request through only for the listed roles.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role := CurrentRole(ctx)
		for _, allowed := range roles {
			if role == allowed {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Forbidden: You do not have permission",
		})
	}
}

// RequireAdmin allows admin and super_admin.
func RequireAdmin() fiber.Handler {
	return RequireRole(models.RoleAdmin, models.RoleSuperAdmin)
}

// CurrentUserID returns the authenticated user id, 0 when absent.
func CurrentUserID(ctx *fiber.Ctx) uint {
	if id, ok := ctx.Locals(localUserID).(float64); ok {
		return uint(id)
	}
	return 0
}

func CurrentRole(ctx *fiber.Ctx) models.Role {
	role, _ := ctx.Locals(localRole).(models.Role)
	return role
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

func unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
