// file: internals/features/users/service/token_service_test.go
package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"beasiswaku_backend/internals/configs"
	model "beasiswaku_backend/internals/features/users/model"
)

func TestCreateAccessTokenClaims(t *testing.T) {
	old := configs.JWTSecret
	configs.JWTSecret = "test-secret"
	defer func() { configs.JWTSecret = old }()

	user := &model.UserModel{
		UserID:        uuid.New(),
		UserLembagaID: uuid.New(),
		UserRole:      "admin",
	}
	signed, err := CreateAccessToken(user)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(signed, claims, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("token tidak valid: %v", err)
	}
	if claims["id"] != user.UserID.String() {
		t.Fatalf("claim id = %v, want %s", claims["id"], user.UserID)
	}
	if claims["lembaga_id"] != user.UserLembagaID.String() {
		t.Fatalf("claim lembaga_id = %v, want %s", claims["lembaga_id"], user.UserLembagaID)
	}
	if claims["role"] != "admin" {
		t.Fatalf("claim role = %v, want admin", claims["role"])
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if !CheckPassword(string(hash), "rahasia123") {
		t.Fatalf("password benar harus lolos")
	}
	if CheckPassword(string(hash), "salah") {
		t.Fatalf("password salah tidak boleh lolos")
	}
	if CheckPassword("bukan-hash", "rahasia123") {
		t.Fatalf("hash rusak tidak boleh lolos")
	}
}
