// file: internals/features/users/dto/auth_dto.go
package dto

type LoginRequest struct {
	LembagaID string `json:"lembaga_id" validate:"required,uuid4"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

type GoogleLoginRequest struct {
	LembagaID string `json:"lembaga_id" validate:"required,uuid4"`
	IDToken   string `json:"id_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}
