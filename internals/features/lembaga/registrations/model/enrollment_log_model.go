// file: internals/features/lembaga/registrations/model/enrollment_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatusLog: audit trail perpindahan funnel. Transisi bebas
// (any→any) diterima, jadi log inilah yang jadi pegangan koreksi manual.
type EnrollmentStatusLog struct {
	EnrollmentLogID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:enrollment_log_id" json:"enrollment_log_id"`
	EnrollmentLogLembagaID      uuid.UUID  `gorm:"type:uuid;not null;column:enrollment_log_lembaga_id;index:idx_enrollment_log_lembaga" json:"enrollment_log_lembaga_id"`
	EnrollmentLogRegistrationID uuid.UUID  `gorm:"type:uuid;not null;column:enrollment_log_registration_id;index:idx_enrollment_log_registration" json:"enrollment_log_registration_id"`
	EnrollmentLogFromStatus     string     `gorm:"type:varchar(24);not null;column:enrollment_log_from_status" json:"enrollment_log_from_status"`
	EnrollmentLogToStatus       string     `gorm:"type:varchar(24);not null;column:enrollment_log_to_status" json:"enrollment_log_to_status"`
	EnrollmentLogChangedBy      *uuid.UUID `gorm:"type:uuid;column:enrollment_log_changed_by" json:"enrollment_log_changed_by,omitempty"`
	EnrollmentLogNote           *string    `gorm:"type:text;column:enrollment_log_note" json:"enrollment_log_note,omitempty"`
	EnrollmentLogCreatedAt      time.Time  `gorm:"column:enrollment_log_created_at;autoCreateTime" json:"enrollment_log_created_at"`
}

func (EnrollmentStatusLog) TableName() string {
	return "enrollment_status_logs"
}
