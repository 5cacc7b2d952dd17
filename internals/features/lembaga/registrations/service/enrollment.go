// file: internals/features/lembaga/registrations/service/enrollment.go
package service

import (
	"time"

	model "beasiswaku_backend/internals/features/lembaga/registrations/model"
)

// Funnel tidak menegakkan urutan: any→any diterima (koreksi manual oleh
// operator adalah use case nyata); yang divalidasi hanya keanggotaan enum.
func IsValidEnrollmentStatus(s string) bool {
	switch model.EnrollmentStatus(s) {
	case model.EnrollmentNotInterested, model.EnrollmentInterested,
		model.EnrollmentFollowUp, model.EnrollmentEnrolled,
		model.EnrollmentConverted, model.EnrollmentDirectAdmission,
		model.EnrollmentWaitingList, model.EnrollmentCancelled:
		return true
	}
	return false
}

// StampsEnrollmentDate: status yang men-stamp enrollment_date saat dimasuki.
func StampsEnrollmentDate(s model.EnrollmentStatus) bool {
	switch s {
	case model.EnrollmentEnrolled, model.EnrollmentConverted, model.EnrollmentDirectAdmission:
		return true
	}
	return false
}

// EnrollmentTransitionUpdates: kolom yang ditulis saat funnel berpindah.
// enrollment_date di-stamp SETIAP KALI status stamping dimasuki — masuk
// ulang setelah koreksi manual pakai tanggal baru, histori tanggal lama
// ada di audit log.
func EnrollmentTransitionUpdates(to model.EnrollmentStatus, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{
		"registration_enrollment_status": to,
	}
	if StampsEnrollmentDate(to) {
		updates["registration_enrollment_date"] = now
	}
	return updates
}
