package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
	RequireLembaga      bool // wajib claim lembaga_id (grup admin)
}

// AuthJWT memverifikasi Bearer token dan menghidrasi Locals yang
// diharapkan helper (user_id, lembaga_id, role).
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		c.Locals("jwt_claims", claims)

		if v := strClaim(claims, "id"); v != "" {
			c.Locals("user_id", v)
		} else if v := strClaim(claims, "sub"); v != "" {
			c.Locals("user_id", v)
		}
		if v := strClaim(claims, "lembaga_id"); v != "" {
			c.Locals("lembaga_id", v)
		}
		if v := strClaim(claims, "role"); v != "" {
			c.Locals("role", v)
		}

		if o.RequireLembaga && c.Locals("lembaga_id") == nil {
			return fiber.NewError(fiber.StatusForbidden, "Scope lembaga tidak ditemukan di token")
		}
		return c.Next()
	}
}

// IsLembagaAdmin menolak token tanpa role admin/operator lembaga.
func IsLembagaAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		switch strings.ToLower(strings.TrimSpace(role)) {
		case "admin", "operator", "owner":
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, "❌ Hanya admin lembaga yang boleh mengakses fitur ini")
	}
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
