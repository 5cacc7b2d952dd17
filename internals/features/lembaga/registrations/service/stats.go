// file: internals/features/lembaga/registrations/service/stats.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecomputeExamStats menghitung ulang cache stats ujian dengan full scan
// registrasi. Idempotent dan aman dipanggil berulang di bawah penulis
// konkuren (eventually consistent, tidak pernah drift).
func RecomputeExamStats(tx *gorm.DB, examID uuid.UUID) error {
	return tx.Exec(`
		UPDATE exams SET
			exam_stats_registrations = s.regs,
			exam_stats_appeared = s.appeared,
			exam_stats_passed = s.passed,
			exam_stats_enrolled = s.enrolled,
			exam_updated_at = NOW()
		FROM (
			SELECT
				COUNT(*) AS regs,
				COUNT(*) FILTER (WHERE registration_has_attended) AS appeared,
				COUNT(*) FILTER (WHERE registration_result = 'pass') AS passed,
				COUNT(*) FILTER (WHERE registration_enrollment_status IN ('enrolled','converted','direct_admission')) AS enrolled
			FROM exam_registrations
			WHERE registration_exam_id = ? AND registration_deleted_at IS NULL
		) s
		WHERE exam_id = ?
	`, examID, examID).Error
}
