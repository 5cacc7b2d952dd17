// file: internals/features/lembaga/admissions/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentAdmissionModel: record siswa hasil konversi registrasi.
// Collaborator eksternal dari sisi pipeline; dibuat tepat satu kali
// per registrasi lewat operasi convert-to-admission.
type StudentAdmissionModel struct {
	StudentID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`
	StudentLembagaID uuid.UUID `gorm:"type:uuid;not null;column:student_lembaga_id;index:idx_student_lembaga" json:"student_lembaga_id"`

	// Asal konversi (unik: satu registrasi maksimal satu student)
	StudentRegistrationID *uuid.UUID `gorm:"type:uuid;column:student_registration_id;uniqueIndex:uq_student_registration" json:"student_registration_id,omitempty"`

	StudentName   string     `gorm:"type:varchar(120);not null;column:student_name" json:"student_name"`
	StudentEmail  string     `gorm:"type:varchar(160);not null;column:student_email" json:"student_email"`
	StudentPhone  string     `gorm:"type:varchar(24);not null;column:student_phone" json:"student_phone"`
	StudentDOB    *time.Time `gorm:"column:student_dob" json:"student_dob,omitempty"`
	StudentGender *string    `gorm:"type:varchar(12);column:student_gender" json:"student_gender,omitempty"`

	StudentFatherName *string `gorm:"type:varchar(120);column:student_father_name" json:"student_father_name,omitempty"`
	StudentMotherName *string `gorm:"type:varchar(120);column:student_mother_name" json:"student_mother_name,omitempty"`
	StudentAddress    *string `gorm:"type:text;column:student_address" json:"student_address,omitempty"`

	// Data operasional dari operator saat konversi
	StudentBatchName   string  `gorm:"type:varchar(80);not null;column:student_batch_name" json:"student_batch_name"`
	StudentCourseName  string  `gorm:"type:varchar(120);not null;column:student_course_name" json:"student_course_name"`
	StudentFeeTotalIDR int64   `gorm:"not null;default:0;column:student_fee_total_idr" json:"student_fee_total_idr"`
	StudentFeeDiscount *string `gorm:"type:varchar(64);column:student_fee_discount" json:"student_fee_discount,omitempty"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentAdmissionModel) TableName() string {
	return "student_admissions"
}
