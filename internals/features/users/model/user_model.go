// file: internals/features/users/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel: identitas login portal (pelamar maupun operator lembaga).
type UserModel struct {
	UserID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`
	UserLembagaID uuid.UUID `gorm:"type:uuid;not null;column:user_lembaga_id;uniqueIndex:uq_user_lembaga_email" json:"user_lembaga_id"`

	UserName  string `gorm:"type:varchar(120);not null;column:user_name" json:"user_name"`
	UserEmail string `gorm:"type:varchar(160);not null;column:user_email;uniqueIndex:uq_user_lembaga_email" json:"user_email"`

	// bcrypt hash; tidak pernah ikut response
	UserPassword string `gorm:"type:varchar(100);not null;column:user_password" json:"-"`

	UserRole string `gorm:"type:varchar(16);not null;default:user;column:user_role" json:"user_role"`

	UserGoogleSub *string `gorm:"type:varchar(64);column:user_google_sub;index:idx_user_google_sub" json:"-"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}
