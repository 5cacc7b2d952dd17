// file: internals/features/users/service/token_service.go
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"beasiswaku_backend/internals/configs"
	model "beasiswaku_backend/internals/features/users/model"
)

// CreateAccessToken menerbitkan JWT HMAC dengan claims yang dihidrasi
// middleware (id, lembaga_id, role).
func CreateAccessToken(user *model.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"id":         user.UserID.String(),
		"lembaga_id": user.UserLembagaID.String(),
		"role":       user.UserRole,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
