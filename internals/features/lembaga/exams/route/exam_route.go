// file: internals/features/lembaga/exams/route/exam_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	examCtrl "beasiswaku_backend/internals/features/lembaga/exams/controller"
)

// ExamAdminRoutes: CRUD + lifecycle ujian, di bawah guard admin lembaga.
func ExamAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := examCtrl.NewExamController(db)

	exams := admin.Group("/exams")
	exams.Post("/", ctl.Create)
	exams.Get("/", ctl.List)
	exams.Patch("/:id", ctl.Update)
	exams.Post("/:id/publish-results", ctl.PublishResults)
	exams.Post("/:id/recompute-stats", ctl.RecomputeStats)
	exams.Delete("/:id", ctl.Delete)
}

// ExamPublicRoutes: landing page — detail ujian by code, tanpa auth.
func ExamPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := examCtrl.NewExamController(db)

	public.Get("/lembaga/:lembaga_id/exams/:code", ctl.GetByCode)
}
