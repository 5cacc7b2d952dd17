// file: internals/features/lembaga/registrations/route/registration_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	regCtrl "beasiswaku_backend/internals/features/lembaga/registrations/controller"
	"beasiswaku_backend/internals/middlewares"
)

// RegistrationPublicRoutes: entry point landing page, tanpa auth.
// Rate limit ketat karena terbuka ke internet.
func RegistrationPublicRoutes(public fiber.Router, db *gorm.DB) {
	reg := regCtrl.NewRegistrationController(db)

	public.Post("/lembaga/:lembaga_id/exams/:code/register",
		middlewares.PublicWriteRateLimiter(), reg.RegisterPublic)
	public.Get("/lembaga/:lembaga_id/registrations/:number", reg.GetByNumber)
}

// RegistrationUserRoutes: entry point mobile (login user biasa).
func RegistrationUserRoutes(user fiber.Router, db *gorm.DB) {
	reg := regCtrl.NewRegistrationController(db)

	user.Post("/exams/:code/register", reg.RegisterMobile)
}

// RegistrationAdminRoutes: operasional panitia — attendance, hasil, funnel.
func RegistrationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	reg := regCtrl.NewRegistrationController(db)
	att := regCtrl.NewAttendanceController(db)
	enr := regCtrl.NewEnrollmentController(db)

	admin.Get("/exams/:id/registrations", reg.ListByExam)
	admin.Post("/exams/:id/results/bulk", att.BulkUploadResults)

	admin.Patch("/registrations/:id/attendance", att.UpdateAttendance)
	admin.Patch("/registrations/:id/enrollment", enr.UpdateEnrollmentStatus)
	admin.Post("/registrations/:id/convert", enr.ConvertToAdmission)
	admin.Get("/registrations/:id/enrollment-logs", enr.ListEnrollmentLogs)
}
