// file: internals/features/lembaga/exams/model/exam_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExamStatus string

const (
	ExamStatusDraft              ExamStatus = "draft"
	ExamStatusActive             ExamStatus = "active"
	ExamStatusRegistrationClosed ExamStatus = "registration_closed"
	ExamStatusExamCompleted      ExamStatus = "exam_completed"
	ExamStatusResultPublished    ExamStatus = "result_published"
	ExamStatusArchived           ExamStatus = "archived"
)

func IsValidExamStatus(s string) bool {
	switch ExamStatus(s) {
	case ExamStatusDraft, ExamStatusActive, ExamStatusRegistrationClosed,
		ExamStatusExamCompleted, ExamStatusResultPublished, ExamStatusArchived:
		return true
	}
	return false
}

// RewardTier: satu jenjang hadiah beasiswa, disimpan terurut di kolom JSON.
type RewardTier struct {
	RankFrom    int    `json:"rank_from"`
	RankTo      int    `json:"rank_to"`
	RewardType  string `json:"reward_type"` // scholarship_percent | scholarship_amount | other
	RewardValue string `json:"reward_value"`
	Description string `json:"description,omitempty"`
}

type ExamModel struct {
	// PK
	ExamID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:exam_id" json:"exam_id"`

	// Tenant
	ExamLembagaID uuid.UUID `gorm:"type:uuid;not null;column:exam_lembaga_id;uniqueIndex:uq_exam_lembaga_code;index:idx_exam_lembaga" json:"exam_lembaga_id"`

	// Kode unik per lembaga, immutable setelah dibuat
	ExamCode string `gorm:"type:varchar(32);not null;column:exam_code;uniqueIndex:uq_exam_lembaga_code" json:"exam_code"`

	ExamName        string  `gorm:"type:varchar(160);not null;column:exam_name" json:"exam_name"`
	ExamDescription *string `gorm:"type:text;column:exam_description" json:"exam_description,omitempty"`

	// Jendela registrasi
	ExamRegistrationStartDate time.Time `gorm:"not null;column:exam_registration_start_date" json:"exam_registration_start_date"`
	ExamRegistrationEndDate   time.Time `gorm:"not null;column:exam_registration_end_date" json:"exam_registration_end_date"`

	// Satu ujian bisa punya beberapa tanggal pelaksanaan
	ExamDates datatypes.JSON `gorm:"type:jsonb;column:exam_dates" json:"exam_dates,omitempty"`

	ExamTotalMarks   int `gorm:"not null;column:exam_total_marks" json:"exam_total_marks"`
	ExamPassingMarks int `gorm:"not null;column:exam_passing_marks" json:"exam_passing_marks"`

	// Eligibility
	ExamMinAge              *int           `gorm:"column:exam_min_age" json:"exam_min_age,omitempty"`
	ExamMaxAge              *int           `gorm:"column:exam_max_age" json:"exam_max_age,omitempty"`
	ExamAllowedClasses      datatypes.JSON `gorm:"type:jsonb;column:exam_allowed_classes" json:"exam_allowed_classes,omitempty"`
	ExamMinPriorPercentage  *float64       `gorm:"type:numeric(5,2);column:exam_min_prior_percentage" json:"exam_min_prior_percentage,omitempty"`

	// Biaya pendaftaran (IDR); kalau tidak required, payment status = waived
	ExamFeeAmount       int64 `gorm:"not null;default:0;column:exam_fee_amount" json:"exam_fee_amount"`
	ExamPaymentRequired bool  `gorm:"not null;default:false;column:exam_payment_required" json:"exam_payment_required"`

	// Jenjang hadiah terurut (rank range → reward)
	ExamRewardTiers datatypes.JSON `gorm:"type:jsonb;column:exam_reward_tiers" json:"exam_reward_tiers,omitempty"`

	ExamStatus ExamStatus `gorm:"type:varchar(24);not null;default:draft;column:exam_status;index:idx_exam_status" json:"exam_status"`

	ExamResultsPublished   bool       `gorm:"not null;default:false;column:exam_results_published" json:"exam_results_published"`
	ExamResultsPublishedAt *time.Time `gorm:"column:exam_results_published_at" json:"exam_results_published_at,omitempty"`

	ExamIsPublic         bool `gorm:"not null;default:true;column:exam_is_public" json:"exam_is_public"`
	ExamRequiresApproval bool `gorm:"not null;default:false;column:exam_requires_approval" json:"exam_requires_approval"`

	// Stats cache: di-recompute full-scan, bukan increment (aman dari drift)
	ExamStatsRegistrations int `gorm:"not null;default:0;column:exam_stats_registrations" json:"exam_stats_registrations"`
	ExamStatsAppeared      int `gorm:"not null;default:0;column:exam_stats_appeared" json:"exam_stats_appeared"`
	ExamStatsPassed        int `gorm:"not null;default:0;column:exam_stats_passed" json:"exam_stats_passed"`
	ExamStatsEnrolled      int `gorm:"not null;default:0;column:exam_stats_enrolled" json:"exam_stats_enrolled"`

	// Counter persisten untuk nomor registrasi; dinaikkan atomik via
	// UPDATE ... RETURNING, bukan count-then-write
	ExamRegistrationSeq int `gorm:"not null;default:0;column:exam_registration_seq" json:"-"`

	ExamCreatedAt time.Time      `gorm:"column:exam_created_at;autoCreateTime" json:"exam_created_at"`
	ExamUpdatedAt time.Time      `gorm:"column:exam_updated_at;autoUpdateTime" json:"exam_updated_at"`
	ExamDeletedAt gorm.DeletedAt `gorm:"column:exam_deleted_at;index" json:"exam_deleted_at,omitempty"`
}

func (ExamModel) TableName() string {
	return "exams"
}
