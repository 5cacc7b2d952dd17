// file: internals/features/payment/registration_fee/controller/fee_payment_controller.go
package controller

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"beasiswaku_backend/internals/configs"
	examModel "beasiswaku_backend/internals/features/lembaga/exams/model"
	regModel "beasiswaku_backend/internals/features/lembaga/registrations/model"
	service "beasiswaku_backend/internals/features/payment/registration_fee/service"
	helper "beasiswaku_backend/internals/helpers"
)

type FeePaymentController struct {
	DB *gorm.DB
}

func NewFeePaymentController(db *gorm.DB) *FeePaymentController {
	return &FeePaymentController{DB: db}
}

/* =========================================================
   BUAT SNAP TOKEN BIAYA PENDAFTARAN
   POST /registrations/:id/pay
   ========================================================= */
func (ctl *FeePaymentController) CreateFeePayment(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	regID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "registration id tidak valid")
	}

	var reg regModel.RegistrationModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("registration_id = ? AND registration_lembaga_id = ?", regID, lembagaID).
		First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registrasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !service.OwnsRegistration(&reg, userID) {
		return helper.JsonError(c, fiber.StatusForbidden, "Registrasi bukan milik user ini")
	}

	switch reg.RegistrationPaymentStatus {
	case regModel.PaymentPaid:
		return helper.JsonError(c, fiber.StatusBadRequest, "Biaya pendaftaran sudah dibayar")
	case regModel.PaymentWaived:
		return helper.JsonError(c, fiber.StatusBadRequest, "Ujian ini tidak memungut biaya pendaftaran")
	}

	var exam examModel.ExamModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("exam_id = ?", reg.RegistrationExamID).
		First(&exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !exam.ExamPaymentRequired || exam.ExamFeeAmount <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Ujian ini tidak memungut biaya pendaftaran")
	}

	// Order id persisten supaya webhook bisa resolve balik ke registrasi.
	orderID := service.BuildFeeOrderID(&reg)
	if reg.RegistrationPaymentOrderID != nil && *reg.RegistrationPaymentOrderID != "" {
		orderID = *reg.RegistrationPaymentOrderID
	}

	token, redirectURL, err := service.GenerateFeeSnapToken(&reg, orderID, exam.ExamFeeAmount, exam.ExamName)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal membuat transaksi Midtrans: "+err.Error())
	}

	if err := ctl.DB.WithContext(c.Context()).
		Model(&regModel.RegistrationModel{}).
		Where("registration_id = ?", reg.RegistrationID).
		Update("registration_payment_order_id", orderID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Transaksi pembayaran dibuat", fiber.Map{
		"order_id":     orderID,
		"snap_token":   token,
		"redirect_url": redirectURL,
		"amount_idr":   exam.ExamFeeAmount,
	})
}

/* =========================================================
   WEBHOOK NOTIFIKASI MIDTRANS
   POST /payments/midtrans/notification
   ========================================================= */

type midtransNotif struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"` // capture, settlement, pending, deny, cancel, expire, failure
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"` // accept / challenge / deny
	TransactionID     string `json:"transaction_id"`
	SettlementTime    string `json:"settlement_time"`
}

func (ctl *FeePaymentController) MidtransWebhook(c *fiber.Ctx) error {
	var notif midtransNotif
	if err := c.BodyParser(&notif); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload: "+err.Error())
	}

	// Verify signature — SHA512(order_id + status_code + gross_amount + ServerKey)
	want := strings.ToLower(notif.SignatureKey)
	got := sha512sum(notif.OrderID + notif.StatusCode + notif.GrossAmount + configs.MidtransServerKey)
	if want == "" || got != want {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid signature")
	}

	var reg regModel.RegistrationModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("registration_payment_order_id = ?", notif.OrderID).
		First(&reg).Error; err != nil {
		// Balas 200 agar Midtrans tidak retry terus
		return helper.JsonOK(c, "ignored: registration not found", fiber.Map{
			"order_id": notif.OrderID,
			"status":   "ignored",
		})
	}

	switch notif.TransactionStatus {
	case "settlement", "capture":
		if notif.TransactionStatus == "capture" && notif.FraudStatus == "challenge" {
			break // tunggu notifikasi berikutnya
		}
		now := time.Now()
		if err := ctl.DB.WithContext(c.Context()).
			Model(&regModel.RegistrationModel{}).
			Where("registration_id = ?", reg.RegistrationID).
			Updates(map[string]interface{}{
				"registration_payment_status": regModel.PaymentPaid,
				"registration_paid_at":        now,
			}).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	case "expire", "cancel", "deny", "failure":
		// status internal hanya pending/paid/waived; pelamar bisa bayar ulang
		if err := ctl.DB.WithContext(c.Context()).
			Model(&regModel.RegistrationModel{}).
			Where("registration_id = ? AND registration_payment_status <> ?",
				reg.RegistrationID, regModel.PaymentPaid).
			Updates(map[string]interface{}{
				"registration_payment_status":   regModel.PaymentPending,
				"registration_payment_order_id": nil,
			}).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	return helper.JsonOK(c, "webhook processed", fiber.Map{
		"order_id":           notif.OrderID,
		"transaction_status": notif.TransactionStatus,
		"fraud_status":       notif.FraudStatus,
	})
}

func sha512sum(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}
