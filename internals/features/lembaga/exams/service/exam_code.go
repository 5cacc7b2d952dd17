// file: internals/features/lembaga/exams/service/exam_code.go
package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "beasiswaku_backend/internals/features/lembaga/exams/model"
)

// Batas percobaan sebelum jatuh ke kode bersuffix timestamp.
const MaxExamCodeAttempts = 5

// FormatExamCode menghasilkan kandidat kode: EXAM<YY><seq 3 digit>.
func FormatExamCode(now time.Time, seq int) string {
	return fmt.Sprintf("EXAM%02d%03d", now.Year()%100, seq)
}

// FallbackExamCode dipakai setelah MaxExamCodeAttempts kandidat tabrakan.
func FallbackExamCode(now time.Time) string {
	return fmt.Sprintf("EXAM%02d%d", now.Year()%100, now.UnixMilli()%1000000)
}

// NextExamCode mencari kode yang belum terpakai dalam lembaga.
// Count-then-format di sini hanya starting point; unique index
// (lembaga, code) tetap jadi backstop saat insert.
func NextExamCode(tx *gorm.DB, lembagaID uuid.UUID, now time.Time) (string, error) {
	var count int64
	if err := tx.Model(&model.ExamModel{}).
		Where("exam_lembaga_id = ?", lembagaID).
		Count(&count).Error; err != nil {
		return "", err
	}

	for attempt := 0; attempt < MaxExamCodeAttempts; attempt++ {
		candidate := FormatExamCode(now, int(count)+1+attempt)
		var exists int64
		if err := tx.Model(&model.ExamModel{}).
			Where("exam_lembaga_id = ? AND exam_code = ?", lembagaID, candidate).
			Count(&exists).Error; err != nil {
			return "", err
		}
		if exists == 0 {
			return candidate, nil
		}
	}
	return FallbackExamCode(now), nil
}
