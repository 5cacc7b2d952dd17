// file: internals/features/lembaga/registrations/model/registration_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationResult string

const (
	ResultPass    RegistrationResult = "pass"
	ResultFail    RegistrationResult = "fail"
	ResultAbsent  RegistrationResult = "absent"
	ResultPending RegistrationResult = "pending"
)

func IsValidResult(s string) bool {
	switch RegistrationResult(s) {
	case ResultPass, ResultFail, ResultAbsent, ResultPending:
		return true
	}
	return false
}

type EnrollmentStatus string

const (
	EnrollmentNotInterested   EnrollmentStatus = "not_interested"
	EnrollmentInterested      EnrollmentStatus = "interested"
	EnrollmentFollowUp        EnrollmentStatus = "follow_up"
	EnrollmentEnrolled        EnrollmentStatus = "enrolled"
	EnrollmentConverted       EnrollmentStatus = "converted"
	EnrollmentDirectAdmission EnrollmentStatus = "direct_admission"
	EnrollmentWaitingList     EnrollmentStatus = "waiting_list"
	EnrollmentCancelled       EnrollmentStatus = "cancelled"
)

const (
	RegistrationStatusRegistered = "registered"
	RegistrationStatusAppeared   = "appeared"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentWaived  PaymentStatus = "waived"
)

type RegistrationModel struct {
	// PK
	RegistrationID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:registration_id" json:"registration_id"`

	// Tenant + owner exam. Identifier immutable setelah diset.
	RegistrationLembagaID uuid.UUID `gorm:"type:uuid;not null;column:registration_lembaga_id;uniqueIndex:uq_registration_lembaga_number;uniqueIndex:uq_registration_lembaga_username" json:"registration_lembaga_id"`
	RegistrationExamID    uuid.UUID `gorm:"type:uuid;not null;column:registration_exam_id;index:idx_registration_exam" json:"registration_exam_id"`

	// <examCode>-<seq 5 digit>; unik per lembaga (backstop unique index)
	RegistrationNumber string `gorm:"type:varchar(40);not null;column:registration_number;uniqueIndex:uq_registration_lembaga_number" json:"registration_number"`

	// Username portal dari local-part email + suffix angka
	RegistrationUsername string `gorm:"type:varchar(80);not null;column:registration_username;uniqueIndex:uq_registration_lembaga_username" json:"registration_username"`

	// Linkage opsional ke identitas login eksternal
	RegistrationUserID *uuid.UUID `gorm:"type:uuid;column:registration_user_id;index:idx_registration_user" json:"registration_user_id,omitempty"`

	// Snapshot pelamar saat registrasi (denormalized, tidak di-sync ulang)
	RegistrationApplicantName  string     `gorm:"type:varchar(120);not null;column:registration_applicant_name" json:"registration_applicant_name"`
	RegistrationApplicantEmail string     `gorm:"type:varchar(160);not null;column:registration_applicant_email;index:idx_registration_email" json:"registration_applicant_email"`
	RegistrationApplicantPhone string     `gorm:"type:varchar(24);not null;column:registration_applicant_phone" json:"registration_applicant_phone"`
	RegistrationApplicantDOB   *time.Time `gorm:"column:registration_applicant_dob" json:"registration_applicant_dob,omitempty"`
	RegistrationApplicantGender *string   `gorm:"type:varchar(12);column:registration_applicant_gender" json:"registration_applicant_gender,omitempty"`
	RegistrationFatherName     *string    `gorm:"type:varchar(120);column:registration_father_name" json:"registration_father_name,omitempty"`
	RegistrationMotherName     *string    `gorm:"type:varchar(120);column:registration_mother_name" json:"registration_mother_name,omitempty"`
	RegistrationAddress        *string    `gorm:"type:text;column:registration_address" json:"registration_address,omitempty"`
	RegistrationSchoolName     *string    `gorm:"type:varchar(160);column:registration_school_name" json:"registration_school_name,omitempty"`
	RegistrationCurrentClass   *string    `gorm:"type:varchar(24);column:registration_current_class" json:"registration_current_class,omitempty"`

	// Kehadiran
	RegistrationHasAttended      bool       `gorm:"not null;default:false;column:registration_has_attended" json:"registration_has_attended"`
	RegistrationAttendanceMarked bool       `gorm:"not null;default:false;column:registration_attendance_marked" json:"registration_attendance_marked"`
	RegistrationExamDateAttended *time.Time `gorm:"column:registration_exam_date_attended" json:"registration_exam_date_attended,omitempty"`

	// Hasil (rank dipasok eksternal lewat bulk upload, bukan dihitung sistem)
	RegistrationMarksObtained *float64           `gorm:"type:numeric(7,2);column:registration_marks_obtained" json:"registration_marks_obtained,omitempty"`
	RegistrationPercentage    *float64           `gorm:"type:numeric(5,2);column:registration_percentage" json:"registration_percentage,omitempty"`
	RegistrationRank          *int               `gorm:"column:registration_rank" json:"registration_rank,omitempty"`
	RegistrationResult        RegistrationResult `gorm:"type:varchar(12);not null;default:pending;column:registration_result" json:"registration_result"`
	RegistrationStatus        string             `gorm:"type:varchar(16);not null;default:registered;column:registration_status" json:"registration_status"`

	// Snapshot reward dari tier yang kena
	RegistrationRewardEligible    bool    `gorm:"not null;default:false;column:registration_reward_eligible" json:"registration_reward_eligible"`
	RegistrationRewardType        *string `gorm:"type:varchar(32);column:registration_reward_type" json:"registration_reward_type,omitempty"`
	RegistrationRewardValue       *string `gorm:"type:varchar(64);column:registration_reward_value" json:"registration_reward_value,omitempty"`
	RegistrationRewardDescription *string `gorm:"type:text;column:registration_reward_description" json:"registration_reward_description,omitempty"`

	// Funnel enrollment
	RegistrationEnrollmentStatus EnrollmentStatus `gorm:"type:varchar(24);not null;default:not_interested;column:registration_enrollment_status;index:idx_registration_enrollment_status" json:"registration_enrollment_status"`
	RegistrationEnrollmentDate   *time.Time       `gorm:"column:registration_enrollment_date" json:"registration_enrollment_date,omitempty"`

	// Pembayaran: hanya status yang dilacak, capture di luar sistem
	RegistrationPaymentStatus  PaymentStatus `gorm:"type:varchar(12);not null;default:pending;column:registration_payment_status" json:"registration_payment_status"`
	RegistrationPaymentOrderID *string       `gorm:"type:varchar(64);column:registration_payment_order_id;index:idx_registration_order" json:"registration_payment_order_id,omitempty"`
	RegistrationPaidAt         *time.Time    `gorm:"column:registration_paid_at" json:"registration_paid_at,omitempty"`

	// Konversi ke student admission (one-to-zero-or-one)
	RegistrationConvertedToStudent bool       `gorm:"not null;default:false;column:registration_converted_to_student" json:"registration_converted_to_student"`
	RegistrationStudentID          *uuid.UUID `gorm:"type:uuid;column:registration_student_id" json:"registration_student_id,omitempty"`

	RegistrationCreatedAt time.Time      `gorm:"column:registration_created_at;autoCreateTime" json:"registration_created_at"`
	RegistrationUpdatedAt time.Time      `gorm:"column:registration_updated_at;autoUpdateTime" json:"registration_updated_at"`
	RegistrationDeletedAt gorm.DeletedAt `gorm:"column:registration_deleted_at;index" json:"registration_deleted_at,omitempty"`
}

func (RegistrationModel) TableName() string {
	return "exam_registrations"
}
