// file: internals/features/lembaga/exams/dto/exam_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "beasiswaku_backend/internals/features/lembaga/exams/model"
)

/* =========================================================
   CREATE DTO
   ========================================================= */

type CreateExamRequest struct {
	// Kode opsional; kalau kosong digenerate EXAM<YY><seq>
	ExamCode        *string `json:"exam_code" validate:"omitempty,max=32"`
	ExamName        string  `json:"exam_name" validate:"required,max=160"`
	ExamDescription *string `json:"exam_description" validate:"omitempty"`

	ExamRegistrationStartDate time.Time `json:"exam_registration_start_date" validate:"required"`
	ExamRegistrationEndDate   time.Time `json:"exam_registration_end_date" validate:"required,gtfield=ExamRegistrationStartDate"`
	ExamDates                 []string  `json:"exam_dates" validate:"omitempty,dive,datetime=2006-01-02"`

	ExamTotalMarks   int `json:"exam_total_marks" validate:"required,min=1"`
	ExamPassingMarks int `json:"exam_passing_marks" validate:"min=0,ltefield=ExamTotalMarks"`

	ExamMinAge             *int     `json:"exam_min_age" validate:"omitempty,min=0"`
	ExamMaxAge             *int     `json:"exam_max_age" validate:"omitempty,min=0"`
	ExamAllowedClasses     []string `json:"exam_allowed_classes" validate:"omitempty,dive,max=24"`
	ExamMinPriorPercentage *float64 `json:"exam_min_prior_percentage" validate:"omitempty,min=0,max=100"`

	ExamFeeAmount       int64 `json:"exam_fee_amount" validate:"min=0"`
	ExamPaymentRequired bool  `json:"exam_payment_required"`

	ExamRewardTiers []model.RewardTier `json:"exam_reward_tiers" validate:"omitempty,dive"`

	ExamIsPublic         *bool `json:"exam_is_public"`
	ExamRequiresApproval bool  `json:"exam_requires_approval"`
}

func (in *CreateExamRequest) ToModel(lembagaID uuid.UUID, code string) *ExamWithTiers {
	m := &model.ExamModel{
		ExamLembagaID:             lembagaID,
		ExamCode:                  strings.ToUpper(strings.TrimSpace(code)),
		ExamName:                  strings.TrimSpace(in.ExamName),
		ExamDescription:           trimPtr(in.ExamDescription),
		ExamRegistrationStartDate: in.ExamRegistrationStartDate,
		ExamRegistrationEndDate:   in.ExamRegistrationEndDate,
		ExamTotalMarks:            in.ExamTotalMarks,
		ExamPassingMarks:          in.ExamPassingMarks,
		ExamMinAge:                in.ExamMinAge,
		ExamMaxAge:                in.ExamMaxAge,
		ExamMinPriorPercentage:    in.ExamMinPriorPercentage,
		ExamFeeAmount:             in.ExamFeeAmount,
		ExamPaymentRequired:       in.ExamPaymentRequired,
		ExamRequiresApproval:      in.ExamRequiresApproval,
		ExamStatus:                model.ExamStatusDraft,
		ExamIsPublic:              true,
	}
	if in.ExamIsPublic != nil {
		m.ExamIsPublic = *in.ExamIsPublic
	}
	if len(in.ExamDates) > 0 {
		if b, err := json.Marshal(in.ExamDates); err == nil {
			m.ExamDates = datatypes.JSON(b)
		}
	}
	if len(in.ExamAllowedClasses) > 0 {
		if b, err := json.Marshal(in.ExamAllowedClasses); err == nil {
			m.ExamAllowedClasses = datatypes.JSON(b)
		}
	}
	if len(in.ExamRewardTiers) > 0 {
		if b, err := json.Marshal(in.ExamRewardTiers); err == nil {
			m.ExamRewardTiers = datatypes.JSON(b)
		}
	}
	return &ExamWithTiers{Exam: m}
}

// ExamWithTiers cuma wrapper kecil supaya controller gak bolak-balik decode.
type ExamWithTiers struct {
	Exam *model.ExamModel
}

/* =========================================================
   UPDATE DTO (partial; tenant/code/stats tidak bisa diubah)
   ========================================================= */

type UpdateExamRequest struct {
	ExamName        *string `json:"exam_name" validate:"omitempty,max=160"`
	ExamDescription *string `json:"exam_description" validate:"omitempty"`

	ExamRegistrationStartDate *time.Time `json:"exam_registration_start_date"`
	ExamRegistrationEndDate   *time.Time `json:"exam_registration_end_date"`
	ExamDates                 []string   `json:"exam_dates" validate:"omitempty,dive,datetime=2006-01-02"`

	ExamTotalMarks   *int `json:"exam_total_marks" validate:"omitempty,min=1"`
	ExamPassingMarks *int `json:"exam_passing_marks" validate:"omitempty,min=0"`

	ExamMinAge             *int     `json:"exam_min_age" validate:"omitempty,min=0"`
	ExamMaxAge             *int     `json:"exam_max_age" validate:"omitempty,min=0"`
	ExamAllowedClasses     []string `json:"exam_allowed_classes" validate:"omitempty,dive,max=24"`
	ExamMinPriorPercentage *float64 `json:"exam_min_prior_percentage" validate:"omitempty,min=0,max=100"`

	ExamFeeAmount       *int64 `json:"exam_fee_amount" validate:"omitempty,min=0"`
	ExamPaymentRequired *bool  `json:"exam_payment_required"`

	ExamRewardTiers []model.RewardTier `json:"exam_reward_tiers" validate:"omitempty,dive"`

	ExamStatus           *string `json:"exam_status" validate:"omitempty"`
	ExamIsPublic         *bool   `json:"exam_is_public"`
	ExamRequiresApproval *bool   `json:"exam_requires_approval"`
}

// ApplyPatch menerapkan perubahan ke model existing (in-place).
// exam_lembaga_id, exam_code, dan kolom stats sengaja tidak tersentuh.
func (p *UpdateExamRequest) ApplyPatch(m *model.ExamModel) {
	if p.ExamName != nil {
		m.ExamName = strings.TrimSpace(*p.ExamName)
	}
	if p.ExamDescription != nil {
		m.ExamDescription = trimPtr(p.ExamDescription)
	}
	if p.ExamRegistrationStartDate != nil {
		m.ExamRegistrationStartDate = *p.ExamRegistrationStartDate
	}
	if p.ExamRegistrationEndDate != nil {
		m.ExamRegistrationEndDate = *p.ExamRegistrationEndDate
	}
	if len(p.ExamDates) > 0 {
		if b, err := json.Marshal(p.ExamDates); err == nil {
			m.ExamDates = datatypes.JSON(b)
		}
	}
	if p.ExamTotalMarks != nil {
		m.ExamTotalMarks = *p.ExamTotalMarks
	}
	if p.ExamPassingMarks != nil {
		m.ExamPassingMarks = *p.ExamPassingMarks
	}
	if p.ExamMinAge != nil {
		m.ExamMinAge = p.ExamMinAge
	}
	if p.ExamMaxAge != nil {
		m.ExamMaxAge = p.ExamMaxAge
	}
	if len(p.ExamAllowedClasses) > 0 {
		if b, err := json.Marshal(p.ExamAllowedClasses); err == nil {
			m.ExamAllowedClasses = datatypes.JSON(b)
		}
	}
	if p.ExamMinPriorPercentage != nil {
		m.ExamMinPriorPercentage = p.ExamMinPriorPercentage
	}
	if p.ExamFeeAmount != nil {
		m.ExamFeeAmount = *p.ExamFeeAmount
	}
	if p.ExamPaymentRequired != nil {
		m.ExamPaymentRequired = *p.ExamPaymentRequired
	}
	if len(p.ExamRewardTiers) > 0 {
		if b, err := json.Marshal(p.ExamRewardTiers); err == nil {
			m.ExamRewardTiers = datatypes.JSON(b)
		}
	}
	if p.ExamStatus != nil {
		m.ExamStatus = model.ExamStatus(strings.TrimSpace(*p.ExamStatus))
	}
	if p.ExamIsPublic != nil {
		m.ExamIsPublic = *p.ExamIsPublic
	}
	if p.ExamRequiresApproval != nil {
		m.ExamRequiresApproval = *p.ExamRequiresApproval
	}
	m.ExamUpdatedAt = time.Now()
}

/* =========================================================
   RESPONSE
   ========================================================= */

type PublicExamResponse struct {
	ExamCode                  string         `json:"exam_code"`
	ExamName                  string         `json:"exam_name"`
	ExamDescription           *string        `json:"exam_description,omitempty"`
	ExamRegistrationStartDate time.Time      `json:"exam_registration_start_date"`
	ExamRegistrationEndDate   time.Time      `json:"exam_registration_end_date"`
	ExamDates                 datatypes.JSON `json:"exam_dates,omitempty"`
	ExamTotalMarks            int            `json:"exam_total_marks"`
	ExamFeeAmount             int64          `json:"exam_fee_amount"`
	ExamPaymentRequired       bool           `json:"exam_payment_required"`
	ExamRewardTiers           datatypes.JSON `json:"exam_reward_tiers,omitempty"`
	ExamStatus                string         `json:"exam_status"`
	ExamResultsPublished      bool           `json:"exam_results_published"`
	CanRegister               bool           `json:"can_register"`
}

func NewPublicExamResponse(m *model.ExamModel, canRegister bool) *PublicExamResponse {
	return &PublicExamResponse{
		ExamCode:                  m.ExamCode,
		ExamName:                  m.ExamName,
		ExamDescription:           m.ExamDescription,
		ExamRegistrationStartDate: m.ExamRegistrationStartDate,
		ExamRegistrationEndDate:   m.ExamRegistrationEndDate,
		ExamDates:                 m.ExamDates,
		ExamTotalMarks:            m.ExamTotalMarks,
		ExamFeeAmount:             m.ExamFeeAmount,
		ExamPaymentRequired:       m.ExamPaymentRequired,
		ExamRewardTiers:           m.ExamRewardTiers,
		ExamStatus:                string(m.ExamStatus),
		ExamResultsPublished:      m.ExamResultsPublished,
		CanRegister:               canRegister,
	}
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
