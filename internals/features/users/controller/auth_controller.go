// file: internals/features/users/controller/auth_controller.go
package controller

import (
	"errors"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"beasiswaku_backend/internals/configs"
	dto "beasiswaku_backend/internals/features/users/dto"
	model "beasiswaku_backend/internals/features/users/model"
	service "beasiswaku_backend/internals/features/users/service"
	helper "beasiswaku_backend/internals/helpers"
)

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validator: validator.New()}
}

// POST /auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	lembagaID, err := uuid.Parse(req.LembagaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "lembaga_id tidak valid")
	}

	var user model.UserModel
	err = ctl.DB.WithContext(c.Context()).
		Where("user_lembaga_id = ? AND user_email = ?", lembagaID, strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !service.CheckPassword(user.UserPassword, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	token, err := service.CreateAccessToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menerbitkan token")
	}
	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: token,
		UserID:      user.UserID.String(),
		Name:        user.UserName,
		Email:       user.UserEmail,
		Role:        user.UserRole,
	})
}

// POST /auth/login-google
// Verifikasi id_token Google lalu find-or-create user dalam lembaga.
func (ctl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	lembagaID, err := uuid.Parse(req.LembagaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "lembaga_id tidak valid")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "ID token Google tidak valid")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil || strings.TrimSpace(claimSet.Email) == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Claims Google tidak terbaca")
	}

	var user *model.UserModel
	if err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		u, err := service.EnsureUserForApplicant(tx, lembagaID, claimSet.Name, claimSet.Email)
		if err != nil {
			return err
		}
		if u.UserGoogleSub == nil && claimSet.Sub != "" {
			sub := claimSet.Sub
			u.UserGoogleSub = &sub
			if err := tx.Model(&model.UserModel{}).
				Where("user_id = ?", u.UserID).
				Update("user_google_sub", sub).Error; err != nil {
				return err
			}
		}
		user = u
		return nil
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	token, err := service.CreateAccessToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menerbitkan token")
	}
	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: token,
		UserID:      user.UserID.String(),
		Name:        user.UserName,
		Email:       user.UserEmail,
		Role:        user.UserRole,
	})
}
