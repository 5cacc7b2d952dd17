// file: internals/features/payment/registration_fee/service/midtrans.go
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	regModel "beasiswaku_backend/internals/features/lembaga/registrations/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans harus dipanggil saat bootstrap app.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

// OwnsRegistration: hanya user yang ter-link ke registrasi yang boleh
// membuka transaksi pembayarannya. Registrasi tanpa linked user tidak
// bisa dibayar lewat endpoint user.
func OwnsRegistration(reg *regModel.RegistrationModel, userID uuid.UUID) bool {
	return reg.RegistrationUserID != nil && *reg.RegistrationUserID == userID
}

// BuildFeeOrderID: order id unik global untuk biaya pendaftaran.
// Nomor registrasi hanya unik per lembaga, jadi diberi prefix + suffix id.
func BuildFeeOrderID(reg *regModel.RegistrationModel) string {
	short := strings.ReplaceAll(reg.RegistrationID.String(), "-", "")[:8]
	return fmt.Sprintf("REGFEE-%s-%s", reg.RegistrationNumber, strings.ToUpper(short))
}

// GenerateFeeSnapToken membuat transaksi Snap untuk biaya pendaftaran ujian.
func GenerateFeeSnapToken(reg *regModel.RegistrationModel, orderID string, amountIDR int64, examName string) (string, string, error) {
	if amountIDR <= 0 {
		return "", "", errors.New("nominal biaya pendaftaran tidak valid")
	}
	if orderID == "" {
		return "", "", errors.New("order id kosong")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amountIDR,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: reg.RegistrationApplicantName,
			Email: reg.RegistrationApplicantEmail,
			Phone: reg.RegistrationApplicantPhone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       reg.RegistrationNumber,
				Price:    amountIDR,
				Qty:      1,
				Name:     truncate("Biaya Pendaftaran "+examName, 50),
				Category: "EXAM_FEE",
			},
		},
	}
	req.CreditCard = &snap.CreditCardDetails{Secure: true}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
