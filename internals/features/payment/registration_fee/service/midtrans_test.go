// file: internals/features/payment/registration_fee/service/midtrans_test.go
package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	regModel "beasiswaku_backend/internals/features/lembaga/registrations/model"
)

func TestBuildFeeOrderID(t *testing.T) {
	reg := &regModel.RegistrationModel{
		RegistrationID:     uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000"),
		RegistrationNumber: "UNST2025-00007",
	}
	got := BuildFeeOrderID(reg)
	if !strings.HasPrefix(got, "REGFEE-UNST2025-00007-") {
		t.Fatalf("order id = %q, prefix salah", got)
	}
	if got != "REGFEE-UNST2025-00007-A1B2C3D4" {
		t.Fatalf("order id = %q, suffix harus 8 hex pertama dari registration id", got)
	}
}

func TestOwnsRegistration(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	reg := &regModel.RegistrationModel{RegistrationUserID: &owner}
	if !OwnsRegistration(reg, owner) {
		t.Fatalf("user ter-link harus boleh membayar registrasinya")
	}
	if OwnsRegistration(reg, other) {
		t.Fatalf("user lain tidak boleh membuka pembayaran registrasi orang")
	}

	// registrasi tanpa linked user: tidak bisa lewat endpoint user
	if OwnsRegistration(&regModel.RegistrationModel{}, owner) {
		t.Fatalf("registrasi tanpa linked user harus ditolak")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Biaya Pendaftaran Ujian Nasional Sains Terpadu 2025", 20); len(got) != 20 {
		t.Fatalf("truncate = %q (len %d), want len 20", got, len(got))
	}
	if got := truncate("pendek", 50); got != "pendek" {
		t.Fatalf("string pendek tidak boleh berubah: %q", got)
	}
}
