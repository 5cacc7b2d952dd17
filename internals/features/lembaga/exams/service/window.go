// file: internals/features/lembaga/exams/service/window.go
package service

import (
	"encoding/json"
	"errors"
	"time"

	model "beasiswaku_backend/internals/features/lembaga/exams/model"
)

var (
	ErrRegistrationNotYetOpen   = errors.New("registrasi belum dibuka")
	ErrRegistrationWindowClosed = errors.New("registrasi sudah ditutup")
)

// CheckRegistrationWindow menegakkan jendela [start, end] inklusif.
// Berlaku untuk kedua entry point (publik & mobile), apapun status ujian.
func CheckRegistrationWindow(start, end, now time.Time) error {
	if now.Before(start) {
		return ErrRegistrationNotYetOpen
	}
	if now.After(end) {
		return ErrRegistrationWindowClosed
	}
	return nil
}

// CanRegister: flag untuk GET publik. Display boleh untuk status
// registration_closed, tapi menerima registrasi baru hanya saat active
// dan di dalam jendela.
func CanRegister(exam *model.ExamModel, now time.Time) bool {
	if !exam.ExamIsPublic || exam.ExamStatus != model.ExamStatusActive {
		return false
	}
	return CheckRegistrationWindow(exam.ExamRegistrationStartDate, exam.ExamRegistrationEndDate, now) == nil
}

// DecodeRewardTiers membaca kolom JSON jenjang hadiah (urutan dipertahankan).
func DecodeRewardTiers(raw []byte) ([]model.RewardTier, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var tiers []model.RewardTier
	if err := json.Unmarshal(raw, &tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}
