// file: internals/features/lembaga/registrations/service/sequencer.go
package service

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "beasiswaku_backend/internals/features/lembaga/registrations/model"
	helper "beasiswaku_backend/internals/helpers"
)

// Identifier generation adalah read-then-write; unique index di DB jadi
// backstop dan insert di-retry maksimal segini sebelum request gagal.
const MaxIdentifierAttempts = 3

var ErrIdentifierExhausted = errors.New("gagal menghasilkan identifier unik")

var usernameSanitizer = regexp.MustCompile(`[^a-z0-9._]+`)

// FormatRegistrationNumber: <examCode>-<seq 5 digit>, mis. UNST2025-00001.
func FormatRegistrationNumber(examCode string, seq int) string {
	return fmt.Sprintf("%s-%05d", strings.ToUpper(strings.TrimSpace(examCode)), seq)
}

// UsernameCandidate: local-part email (lowercase, disanitasi) + suffix
// angka untuk disambiguasi. attempt 0 → base, attempt 1 → base1, dst.
func UsernameCandidate(email string, attempt int) (string, error) {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "", errors.New("email tidak valid untuk username")
	}
	base := usernameSanitizer.ReplaceAllString(strings.ToLower(email[:at]), "")
	if base == "" {
		base = "peserta"
	}
	if attempt <= 0 {
		return base, nil
	}
	return fmt.Sprintf("%s%d", base, attempt), nil
}

// NextRegistrationSeq menaikkan counter persisten per ujian secara atomik.
// Bukan count-then-write: dua request konkuren dijamin dapat seq berbeda.
func NextRegistrationSeq(tx *gorm.DB, examID uuid.UUID) (int, error) {
	var seq int
	err := tx.Raw(`
		UPDATE exams
		SET exam_registration_seq = exam_registration_seq + 1,
		    exam_updated_at = NOW()
		WHERE exam_id = ? AND exam_deleted_at IS NULL
		RETURNING exam_registration_seq
	`, examID).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	if seq == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return seq, nil
}

// TxRunner: bagian *gorm.DB yang dibutuhkan InsertWithIdentifierRetry.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// InsertWithIdentifierRetry menjalankan fn maksimal MaxIdentifierAttempts
// kali. Tiap attempt dibungkus nested transaction (savepoint) — INSERT
// yang kena unique violation tidak meracuni transaksi luar, jadi attempt
// berikutnya tetap bisa ambil seq/username baru. Retry hanya untuk
// duplicate key; error lain langsung diteruskan.
func InsertWithIdentifierRetry(tx TxRunner, fn func(tx *gorm.DB) error) error {
	var lastErr error
	for attempt := 0; attempt < MaxIdentifierAttempts; attempt++ {
		err := tx.Transaction(fn)
		if err == nil {
			return nil
		}
		if !helper.IsDuplicateKey(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w: %v", ErrIdentifierExhausted, lastErr)
}

// NextUsername mem-probe kandidat sampai ketemu yang belum terpakai dalam
// lembaga. Probing tetap rawan race; unique index + retry insert yang
// menjamin hasil akhirnya.
func NextUsername(tx *gorm.DB, lembagaID uuid.UUID, email string) (string, error) {
	for attempt := 0; attempt < 50; attempt++ {
		candidate, err := UsernameCandidate(email, attempt)
		if err != nil {
			return "", err
		}
		var count int64
		if err := tx.Model(&model.RegistrationModel{}).
			Where("registration_lembaga_id = ? AND registration_username = ?", lembagaID, candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", ErrIdentifierExhausted
}
