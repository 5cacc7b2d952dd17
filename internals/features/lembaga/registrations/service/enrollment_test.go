// file: internals/features/lembaga/registrations/service/enrollment_test.go
package service

import (
	"testing"
	"time"

	model "beasiswaku_backend/internals/features/lembaga/registrations/model"
)

func TestIsValidEnrollmentStatus(t *testing.T) {
	valid := []string{
		"not_interested", "interested", "follow_up", "enrolled",
		"converted", "direct_admission", "waiting_list", "cancelled",
	}
	for _, s := range valid {
		if !IsValidEnrollmentStatus(s) {
			t.Fatalf("%q harus valid", s)
		}
	}
	for _, s := range []string{"", "registered", "ENROLLED", "done", "canceled"} {
		if IsValidEnrollmentStatus(s) {
			t.Fatalf("%q tidak boleh valid", s)
		}
	}
}

func TestEnrollmentTransitionUpdates_StampsOnEveryEntry(t *testing.T) {
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	// status stamping: tanggal SELALU ikut ditulis, termasuk saat masuk
	// ulang setelah koreksi manual (tanggal lama tidak dipertahankan)
	updates := EnrollmentTransitionUpdates(model.EnrollmentEnrolled, now)
	if updates["registration_enrollment_status"] != model.EnrollmentEnrolled {
		t.Fatalf("status tidak ikut ditulis: %v", updates)
	}
	got, ok := updates["registration_enrollment_date"]
	if !ok || got != now {
		t.Fatalf("enrollment_date harus di-stamp setiap masuk status enrolled, got %v", got)
	}

	updates = EnrollmentTransitionUpdates(model.EnrollmentConverted, now)
	if _, ok := updates["registration_enrollment_date"]; !ok {
		t.Fatalf("converted harus men-stamp enrollment_date")
	}

	// status non-stamping tidak menyentuh tanggal
	updates = EnrollmentTransitionUpdates(model.EnrollmentFollowUp, now)
	if _, ok := updates["registration_enrollment_date"]; ok {
		t.Fatalf("follow_up tidak boleh menulis enrollment_date")
	}
}

func TestStampsEnrollmentDate(t *testing.T) {
	stamping := []model.EnrollmentStatus{
		model.EnrollmentEnrolled, model.EnrollmentConverted, model.EnrollmentDirectAdmission,
	}
	for _, s := range stamping {
		if !StampsEnrollmentDate(s) {
			t.Fatalf("%q harus men-stamp enrollment_date", s)
		}
	}
	nonStamping := []model.EnrollmentStatus{
		model.EnrollmentNotInterested, model.EnrollmentInterested,
		model.EnrollmentFollowUp, model.EnrollmentWaitingList, model.EnrollmentCancelled,
	}
	for _, s := range nonStamping {
		if StampsEnrollmentDate(s) {
			t.Fatalf("%q tidak boleh men-stamp enrollment_date", s)
		}
	}
}
