// file: internals/features/payment/registration_fee/route/fee_payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	payCtrl "beasiswaku_backend/internals/features/payment/registration_fee/controller"
)

// FeePaymentUserRoutes: pembuatan transaksi Snap oleh user login.
func FeePaymentUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := payCtrl.NewFeePaymentController(db)

	user.Post("/registrations/:id/pay", ctl.CreateFeePayment)
}

// FeePaymentWebhookRoutes: callback server-to-server Midtrans, tanpa auth
// (diverifikasi lewat signature).
func FeePaymentWebhookRoutes(public fiber.Router, db *gorm.DB) {
	ctl := payCtrl.NewFeePaymentController(db)

	public.Post("/payments/midtrans/notification", ctl.MidtransWebhook)
}
