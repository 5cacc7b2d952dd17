// file: internals/features/users/service/provision.go
package service

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	model "beasiswaku_backend/internals/features/users/model"
)

// EnsureUserForApplicant memastikan pelamar punya identitas login.
// Idempotent: email yang sama dalam lembaga yang sama dipakai ulang,
// tidak dibuat ganda. Password awal digenerate acak; pelamar mengubahnya
// lewat alur reset.
func EnsureUserForApplicant(tx *gorm.DB, lembagaID uuid.UUID, name, email string) (*model.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing model.UserModel
	err := tx.Where("user_lembaga_id = ? AND user_email = ?", lembagaID, email).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.UserModel{
		UserLembagaID: lembagaID,
		UserName:      strings.TrimSpace(name),
		UserEmail:     email,
		UserPassword:  string(hash),
		UserRole:      "user",
	}
	if err := tx.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CheckPassword membandingkan plaintext dengan hash tersimpan.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
