// file: internals/features/lembaga/exams/service/eligibility.go
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	model "beasiswaku_backend/internals/features/lembaga/exams/model"
)

var (
	ErrDOBRequired   = errors.New("tanggal lahir wajib diisi untuk ujian dengan batas usia")
	ErrClassRequired = errors.New("kelas saat ini wajib diisi untuk ujian dengan batasan kelas")
)

// AgeAt: umur penuh dalam tahun pada tanggal tertentu.
func AgeAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() ||
		(now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

// DecodeAllowedClasses membaca kolom JSON daftar kelas yang diizinkan.
func DecodeAllowedClasses(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var classes []string
	if err := json.Unmarshal(raw, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// CheckEligibility menegakkan konfigurasi eligibility ujian terhadap data
// pelamar. Batas yang tidak dikonfigurasi dilewati; batas yang dikonfigurasi
// tapi datanya tidak dipasok = ditolak (bukan diloloskan diam-diam).
// Berlaku identik untuk kedua entry point registrasi.
func CheckEligibility(exam *model.ExamModel, dob *time.Time, currentClass *string, now time.Time) error {
	if exam.ExamMinAge != nil || exam.ExamMaxAge != nil {
		if dob == nil {
			return ErrDOBRequired
		}
		age := AgeAt(*dob, now)
		if exam.ExamMinAge != nil && age < *exam.ExamMinAge {
			return fmt.Errorf("usia pelamar %d tahun, minimal %d tahun", age, *exam.ExamMinAge)
		}
		if exam.ExamMaxAge != nil && age > *exam.ExamMaxAge {
			return fmt.Errorf("usia pelamar %d tahun, maksimal %d tahun", age, *exam.ExamMaxAge)
		}
	}

	allowed, err := DecodeAllowedClasses(exam.ExamAllowedClasses)
	if err != nil {
		return fmt.Errorf("konfigurasi allowed classes rusak: %w", err)
	}
	if len(allowed) > 0 {
		if currentClass == nil || strings.TrimSpace(*currentClass) == "" {
			return ErrClassRequired
		}
		cls := strings.TrimSpace(*currentClass)
		for _, a := range allowed {
			if strings.EqualFold(strings.TrimSpace(a), cls) {
				return nil
			}
		}
		return fmt.Errorf("kelas %q tidak termasuk yang diizinkan (%s)", cls, strings.Join(allowed, ", "))
	}
	return nil
}
