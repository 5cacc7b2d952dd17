// file: internals/features/lembaga/registrations/dto/registration_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "beasiswaku_backend/internals/features/lembaga/registrations/model"
)

const dateLayout = "2006-01-02"

/* =========================================================
   REGISTER (publik & mobile — kontrak sama)
   ========================================================= */

type RegisterExamRequest struct {
	ApplicantName  string  `json:"applicant_name" validate:"required,max=120"`
	ApplicantEmail string  `json:"applicant_email" validate:"required,email,max=160"`
	ApplicantPhone string  `json:"applicant_phone" validate:"required,max=24"`
	ApplicantDOB   *string `json:"applicant_dob" validate:"omitempty,datetime=2006-01-02"`
	ApplicantGender *string `json:"applicant_gender" validate:"omitempty,oneof=male female"`
	FatherName     *string `json:"father_name" validate:"omitempty,max=120"`
	MotherName     *string `json:"mother_name" validate:"omitempty,max=120"`
	Address        *string `json:"address" validate:"omitempty"`
	SchoolName     *string `json:"school_name" validate:"omitempty,max=160"`
	CurrentClass   *string `json:"current_class" validate:"omitempty,max=24"`
}

// ToModel membangun snapshot pelamar. Identifier (number, username) dan
// payment status diisi pipeline, bukan dari payload.
func (in *RegisterExamRequest) ToModel(lembagaID, examID uuid.UUID) *model.RegistrationModel {
	m := &model.RegistrationModel{
		RegistrationLembagaID:      lembagaID,
		RegistrationExamID:         examID,
		RegistrationApplicantName:  strings.TrimSpace(in.ApplicantName),
		RegistrationApplicantEmail: strings.ToLower(strings.TrimSpace(in.ApplicantEmail)),
		RegistrationApplicantPhone: strings.TrimSpace(in.ApplicantPhone),
		RegistrationApplicantGender: trimPtr(in.ApplicantGender),
		RegistrationFatherName:     trimPtr(in.FatherName),
		RegistrationMotherName:     trimPtr(in.MotherName),
		RegistrationAddress:        trimPtr(in.Address),
		RegistrationSchoolName:     trimPtr(in.SchoolName),
		RegistrationCurrentClass:   trimPtr(in.CurrentClass),
		RegistrationResult:         model.ResultPending,
		RegistrationEnrollmentStatus: model.EnrollmentNotInterested,
	}
	if in.ApplicantDOB != nil {
		if t, err := time.Parse(dateLayout, strings.TrimSpace(*in.ApplicantDOB)); err == nil {
			m.RegistrationApplicantDOB = &t
		}
	}
	return m
}

/* =========================================================
   ATTENDANCE (single update)
   ========================================================= */

type UpdateAttendanceRequest struct {
	HasAttended *bool   `json:"has_attended" validate:"required"`
	ExamDate    *string `json:"exam_date" validate:"omitempty,datetime=2006-01-02"`
}

/* =========================================================
   ENROLLMENT FUNNEL
   ========================================================= */

type UpdateEnrollmentStatusRequest struct {
	Status string  `json:"status" validate:"required,max=24"`
	Note   *string `json:"note" validate:"omitempty"`
}

type ConvertToAdmissionRequest struct {
	BatchName   string  `json:"batch_name" validate:"required,max=80"`
	CourseName  string  `json:"course_name" validate:"required,max=120"`
	FeeTotalIDR int64   `json:"fee_total_idr" validate:"min=0"`
	FeeDiscount *string `json:"fee_discount" validate:"omitempty,max=64"`
}

/* =========================================================
   RESPONSE
   ========================================================= */

type RegistrationResponse struct {
	RegistrationID     uuid.UUID  `json:"registration_id"`
	RegistrationNumber string     `json:"registration_number"`
	Username           string     `json:"username"`
	ExamID             uuid.UUID  `json:"exam_id"`
	ApplicantName      string     `json:"applicant_name"`
	ApplicantEmail     string     `json:"applicant_email"`
	HasAttended        bool       `json:"has_attended"`
	MarksObtained      *float64   `json:"marks_obtained,omitempty"`
	Percentage         *float64   `json:"percentage,omitempty"`
	Rank               *int       `json:"rank,omitempty"`
	Result             string     `json:"result"`
	RewardEligible     bool       `json:"reward_eligible"`
	RewardValue        *string    `json:"reward_value,omitempty"`
	EnrollmentStatus   string     `json:"enrollment_status"`
	EnrollmentDate     *time.Time `json:"enrollment_date,omitempty"`
	PaymentStatus      string     `json:"payment_status"`
	ConvertedToStudent bool       `json:"converted_to_student"`
	StudentID          *uuid.UUID `json:"student_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func NewRegistrationResponse(m *model.RegistrationModel) *RegistrationResponse {
	return &RegistrationResponse{
		RegistrationID:     m.RegistrationID,
		RegistrationNumber: m.RegistrationNumber,
		Username:           m.RegistrationUsername,
		ExamID:             m.RegistrationExamID,
		ApplicantName:      m.RegistrationApplicantName,
		ApplicantEmail:     m.RegistrationApplicantEmail,
		HasAttended:        m.RegistrationHasAttended,
		MarksObtained:      m.RegistrationMarksObtained,
		Percentage:         m.RegistrationPercentage,
		Rank:               m.RegistrationRank,
		Result:             string(m.RegistrationResult),
		RewardEligible:     m.RegistrationRewardEligible,
		RewardValue:        m.RegistrationRewardValue,
		EnrollmentStatus:   string(m.RegistrationEnrollmentStatus),
		EnrollmentDate:     m.RegistrationEnrollmentDate,
		PaymentStatus:      string(m.RegistrationPaymentStatus),
		ConvertedToStudent: m.RegistrationConvertedToStudent,
		StudentID:          m.RegistrationStudentID,
		CreatedAt:          m.RegistrationCreatedAt,
	}
}

/* =========================================================
   LIST / FILTER (admin)
   ========================================================= */

type ListRegistrationsQuery struct {
	Result           *string `query:"result"`
	EnrollmentStatus *string `query:"enrollment_status"`
	HasAttended      *bool   `query:"has_attended"`
	Search           *string `query:"q"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
