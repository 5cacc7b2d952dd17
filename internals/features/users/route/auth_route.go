// file: internals/features/users/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authCtrl "beasiswaku_backend/internals/features/users/controller"
	"beasiswaku_backend/internals/middlewares"
)

func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := authCtrl.NewAuthController(db)

	auth := r.Group("/auth", middlewares.PublicWriteRateLimiter())
	auth.Post("/login", ctl.Login)
	auth.Post("/login-google", ctl.LoginGoogle)
}
