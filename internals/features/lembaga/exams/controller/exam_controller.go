// file: internals/features/lembaga/exams/controller/exam_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "beasiswaku_backend/internals/features/lembaga/exams/dto"
	model "beasiswaku_backend/internals/features/lembaga/exams/model"
	service "beasiswaku_backend/internals/features/lembaga/exams/service"
	regModel "beasiswaku_backend/internals/features/lembaga/registrations/model"
	regService "beasiswaku_backend/internals/features/lembaga/registrations/service"
	helper "beasiswaku_backend/internals/helpers"
)

type ExamController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewExamController(db *gorm.DB) *ExamController {
	return &ExamController{DB: db, Validator: validator.New()}
}

/* ======================= CREATE ======================= */
// POST /exams
func (ctl *ExamController) Create(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.ExamPassingMarks > req.ExamTotalMarks {
		return helper.JsonError(c, fiber.StatusBadRequest, "Passing marks tidak boleh melebihi total marks")
	}

	var created *model.ExamModel
	if err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		code := ""
		if req.ExamCode != nil && strings.TrimSpace(*req.ExamCode) != "" {
			code = strings.ToUpper(strings.TrimSpace(*req.ExamCode))
		} else {
			generated, err := service.NextExamCode(tx, lembagaID, time.Now())
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			code = generated
		}

		m := req.ToModel(lembagaID, code).Exam
		if err := tx.Create(m).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "Kode ujian sudah dipakai: "+code)
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		created = m
		return nil
	}); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Set("Location", "/exams/"+created.ExamID.String())
	return helper.JsonCreated(c, "Ujian berhasil dibuat", created)
}

/* ======================= UPDATE (PATCH) ======================= */
// PATCH /exams/:id
// exam_lembaga_id, exam_code, dan kolom stats tidak bisa diubah lewat sini.
func (ctl *ExamController) Update(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}

	examID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "exam id tidak valid")
	}

	var req dto.UpdateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.ExamStatus != nil && !model.IsValidExamStatus(strings.TrimSpace(*req.ExamStatus)) {
		return helper.JsonError(c, fiber.StatusBadRequest, "exam_status tidak valid")
	}

	var updated *model.ExamModel
	if err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.ExamModel
		if err := tx.Where("exam_id = ? AND exam_lembaga_id = ?", examID, lembagaID).
			First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ujian tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		req.ApplyPatch(&m)
		if m.ExamPassingMarks > m.ExamTotalMarks {
			return fiber.NewError(fiber.StatusBadRequest, "Passing marks tidak boleh melebihi total marks")
		}
		if err := tx.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		updated = &m
		return nil
	}); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Ujian berhasil diubah", updated)
}

/* ======================= GET BY CODE (PUBLIK) ======================= */
// GET /lembaga/:lembaga_id/exams/:code
// Display boleh untuk active & registration_closed; can_register hanya
// true saat active + di dalam jendela registrasi.
func (ctl *ExamController) GetByCode(c *fiber.Ctx) error {
	lembagaID, err := uuid.Parse(strings.TrimSpace(c.Params("lembaga_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "lembaga id tidak valid")
	}
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	if code == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kode ujian wajib diisi")
	}

	var m model.ExamModel
	err = ctl.DB.WithContext(c.Context()).
		Where("exam_lembaga_id = ? AND exam_code = ? AND exam_is_public = TRUE AND exam_status IN ?",
			lembagaID, code, []string{string(model.ExamStatusActive), string(model.ExamStatusRegistrationClosed), string(model.ExamStatusResultPublished)}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Ujian tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.NewPublicExamResponse(&m, service.CanRegister(&m, time.Now())))
}

/* ======================= LIST (ADMIN) ======================= */
// GET /exams
func (ctl *ExamController) List(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctl.DB.WithContext(c.Context()).Model(&model.ExamModel{}).
		Where("exam_lembaga_id = ?", lembagaID)

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !model.IsValidExamStatus(status) {
			return helper.JsonError(c, fiber.StatusBadRequest, "status tidak valid")
		}
		tx = tx.Where("exam_status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.ExamModel
	if err := tx.Order("exam_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", rows, &p)
}

/* ======================= PUBLISH RESULTS ======================= */
// POST /exams/:id/publish-results
func (ctl *ExamController) PublishResults(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}

	examID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "exam id tidak valid")
	}

	now := time.Now()
	res := ctl.DB.WithContext(c.Context()).Model(&model.ExamModel{}).
		Where("exam_id = ? AND exam_lembaga_id = ?", examID, lembagaID).
		Updates(map[string]any{
			"exam_results_published":    true,
			"exam_results_published_at": now,
			"exam_status":               model.ExamStatusResultPublished,
			"exam_updated_at":           now,
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Ujian tidak ditemukan")
	}

	return helper.JsonUpdated(c, "Hasil ujian dipublikasikan", fiber.Map{
		"exam_id":                   examID,
		"exam_results_published":    true,
		"exam_results_published_at": now,
	})
}

/* ======================= RECOMPUTE STATS ======================= */
// POST /exams/:id/recompute-stats
// Full re-scan, idempotent; dipanggil eksplisit saat butuh angka segar.
func (ctl *ExamController) RecomputeStats(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}

	examID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "exam id tidak valid")
	}

	var m model.ExamModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("exam_id = ? AND exam_lembaga_id = ?", examID, lembagaID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Ujian tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := regService.RecomputeExamStats(ctl.DB.WithContext(c.Context()), examID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("exam_id = ?", examID).First(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Stats ujian dihitung ulang", fiber.Map{
		"exam_id":                  m.ExamID,
		"exam_stats_registrations": m.ExamStatsRegistrations,
		"exam_stats_appeared":      m.ExamStatsAppeared,
		"exam_stats_passed":        m.ExamStatsPassed,
		"exam_stats_enrolled":      m.ExamStatsEnrolled,
	})
}

/* ======================= DELETE ======================= */
// DELETE /exams/:id
// Ditolak selama masih ada registrasi yang mereferensikan ujian —
// operator harus archive, bukan delete.
func (ctl *ExamController) Delete(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}

	examID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "exam id tidak valid")
	}

	if err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var m model.ExamModel
		if err := tx.Where("exam_id = ? AND exam_lembaga_id = ?", examID, lembagaID).
			First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ujian tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		var count int64
		if err := tx.Model(&regModel.RegistrationModel{}).
			Where("registration_exam_id = ?", examID).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict,
				"Ujian masih punya registrasi; arsipkan lewat PATCH status=archived")
		}

		if err := tx.Delete(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return nil
	}); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "Ujian dihapus", fiber.Map{"exam_id": examID})
}
