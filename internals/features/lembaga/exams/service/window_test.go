// file: internals/features/lembaga/exams/service/window_test.go
package service

import (
	"testing"
	"time"

	model "beasiswaku_backend/internals/features/lembaga/exams/model"
)

func TestCheckRegistrationWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want error
	}{
		{"sebelum dibuka", start.Add(-time.Second), ErrRegistrationNotYetOpen},
		{"tepat di start (inklusif)", start, nil},
		{"di tengah jendela", start.AddDate(0, 0, 14), nil},
		{"tepat di end (inklusif)", end, nil},
		{"setelah ditutup", end.Add(time.Second), ErrRegistrationWindowClosed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckRegistrationWindow(start, end, tc.now); got != tc.want {
				t.Fatalf("CheckRegistrationWindow(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestCanRegister(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	inWindow := start.AddDate(0, 0, 10)

	base := func() *model.ExamModel {
		return &model.ExamModel{
			ExamIsPublic:              true,
			ExamStatus:                model.ExamStatusActive,
			ExamRegistrationStartDate: start,
			ExamRegistrationEndDate:   end,
		}
	}

	exam := base()
	if !CanRegister(exam, inWindow) {
		t.Fatalf("exam aktif+publik di dalam jendela harus bisa registrasi")
	}

	exam = base()
	exam.ExamIsPublic = false
	if CanRegister(exam, inWindow) {
		t.Fatalf("exam non-publik tidak boleh menerima registrasi")
	}

	exam = base()
	exam.ExamStatus = model.ExamStatusRegistrationClosed
	if CanRegister(exam, inWindow) {
		t.Fatalf("status registration_closed tidak boleh menerima registrasi")
	}

	exam = base()
	if CanRegister(exam, end.AddDate(0, 0, 1)) {
		t.Fatalf("di luar jendela tidak boleh menerima registrasi")
	}
}

func TestDecodeRewardTiers(t *testing.T) {
	raw := []byte(`[
		{"rank_from":1,"rank_to":1,"reward_type":"scholarship_percent","reward_value":"100"},
		{"rank_from":2,"rank_to":5,"reward_type":"scholarship_percent","reward_value":"50"}
	]`)
	tiers, err := DecodeRewardTiers(raw)
	if err != nil {
		t.Fatalf("DecodeRewardTiers: %v", err)
	}
	if len(tiers) != 2 {
		t.Fatalf("len(tiers) = %d, want 2", len(tiers))
	}
	if tiers[0].RankTo != 1 || tiers[1].RewardValue != "50" {
		t.Fatalf("urutan tier tidak dipertahankan: %+v", tiers)
	}

	tiers, err = DecodeRewardTiers(nil)
	if err != nil || tiers != nil {
		t.Fatalf("kolom kosong harus menghasilkan nil tanpa error, got %v %v", tiers, err)
	}

	if _, err := DecodeRewardTiers([]byte(`{bukan json`)); err == nil {
		t.Fatalf("JSON rusak harus error")
	}
}

func TestFormatExamCode(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	if got := FormatExamCode(now, 1); got != "EXAM25001" {
		t.Fatalf("FormatExamCode = %q, want EXAM25001", got)
	}
	if got := FormatExamCode(now, 42); got != "EXAM25042" {
		t.Fatalf("FormatExamCode = %q, want EXAM25042", got)
	}
}
