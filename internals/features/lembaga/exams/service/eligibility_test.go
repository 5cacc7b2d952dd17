// file: internals/features/lembaga/exams/service/eligibility_test.go
package service

import (
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	model "beasiswaku_backend/internals/features/lembaga/exams/model"
)

func TestAgeAt(t *testing.T) {
	dob := time.Date(2010, 6, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), 14}, // sehari sebelum ultah
		{time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), 15}, // tepat ultah
		{time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), 15},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 14}, // bulan sebelum ultah
	}
	for _, tc := range cases {
		if got := AgeAt(dob, tc.now); got != tc.want {
			t.Fatalf("AgeAt(%v) = %d, want %d", tc.now, got, tc.want)
		}
	}
}

func TestCheckEligibility(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	minAge, maxAge := 13, 15
	dob14 := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC) // 14 tahun
	dob10 := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC) // 10 tahun
	dob17 := time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC) // 17 tahun
	cls8 := "8"
	cls11 := "11"

	t.Run("tanpa konfigurasi semua lolos", func(t *testing.T) {
		exam := &model.ExamModel{}
		if err := CheckEligibility(exam, nil, nil, now); err != nil {
			t.Fatalf("exam tanpa batasan harus lolos: %v", err)
		}
	})

	t.Run("batas usia", func(t *testing.T) {
		exam := &model.ExamModel{ExamMinAge: &minAge, ExamMaxAge: &maxAge}

		if err := CheckEligibility(exam, &dob14, nil, now); err != nil {
			t.Fatalf("usia 14 dalam [13,15] harus lolos: %v", err)
		}
		if err := CheckEligibility(exam, &dob10, nil, now); err == nil {
			t.Fatalf("usia 10 di bawah minimum harus ditolak")
		}
		if err := CheckEligibility(exam, &dob17, nil, now); err == nil {
			t.Fatalf("usia 17 di atas maksimum harus ditolak")
		}
		if err := CheckEligibility(exam, nil, nil, now); !errors.Is(err, ErrDOBRequired) {
			t.Fatalf("DOB kosong dengan batas usia harus ErrDOBRequired, got %v", err)
		}
	})

	t.Run("batasan kelas", func(t *testing.T) {
		exam := &model.ExamModel{ExamAllowedClasses: datatypes.JSON(`["7","8","9"]`)}

		if err := CheckEligibility(exam, nil, &cls8, now); err != nil {
			t.Fatalf("kelas 8 diizinkan harus lolos: %v", err)
		}
		if err := CheckEligibility(exam, nil, &cls11, now); err == nil {
			t.Fatalf("kelas 11 di luar daftar harus ditolak")
		}
		if err := CheckEligibility(exam, nil, nil, now); !errors.Is(err, ErrClassRequired) {
			t.Fatalf("kelas kosong dengan batasan kelas harus ErrClassRequired, got %v", err)
		}
	})

	t.Run("konfigurasi kelas rusak", func(t *testing.T) {
		exam := &model.ExamModel{ExamAllowedClasses: datatypes.JSON(`{bukan array`)}
		if err := CheckEligibility(exam, nil, &cls8, now); err == nil {
			t.Fatalf("JSON rusak harus error, bukan diloloskan")
		}
	})
}
