// file: internals/route/index.go
package route

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"beasiswaku_backend/internals/configs"
	examRoute "beasiswaku_backend/internals/features/lembaga/exams/route"
	regRoute "beasiswaku_backend/internals/features/lembaga/registrations/route"
	payRoute "beasiswaku_backend/internals/features/payment/registration_fee/route"
	authRoute "beasiswaku_backend/internals/features/users/route"
	authMiddleware "beasiswaku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).Round(time.Second).String(),
		})
	})

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app.Group("/api"), db)

	// ===================== PUBLIC (landing page, tanpa JWT) =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	examRoute.ExamPublicRoutes(public, db)
	regRoute.RegistrationPublicRoutes(public, db)
	payRoute.FeePaymentWebhookRoutes(public, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
			RequireLembaga:      true,
		}),
	)
	regRoute.RegistrationUserRoutes(user, db)
	payRoute.FeePaymentUserRoutes(user, db)

	// ===================== ADMIN (per lembaga) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
			RequireLembaga:      true,
		}),
		authMiddleware.IsLembagaAdmin(),
	)
	examRoute.ExamAdminRoutes(admin, db)
	regRoute.RegistrationAdminRoutes(admin, db)
}
