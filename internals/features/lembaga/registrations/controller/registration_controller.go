// file: internals/features/lembaga/registrations/controller/registration_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	examModel "beasiswaku_backend/internals/features/lembaga/exams/model"
	examService "beasiswaku_backend/internals/features/lembaga/exams/service"
	dto "beasiswaku_backend/internals/features/lembaga/registrations/dto"
	model "beasiswaku_backend/internals/features/lembaga/registrations/model"
	service "beasiswaku_backend/internals/features/lembaga/registrations/service"
	userService "beasiswaku_backend/internals/features/users/service"
	helper "beasiswaku_backend/internals/helpers"
)

type RegistrationController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewRegistrationController(db *gorm.DB) *RegistrationController {
	return &RegistrationController{DB: db, Validator: validator.New()}
}

/* =========================================================
   REGISTER — PUBLIK (landing page)
   POST /lembaga/:lembaga_id/exams/:code/register
   ========================================================= */
func (ctl *RegistrationController) RegisterPublic(c *fiber.Ctx) error {
	lembagaID, err := uuid.Parse(strings.TrimSpace(c.Params("lembaga_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "lembaga id tidak valid")
	}
	return ctl.register(c, lembagaID, nil)
}

/* =========================================================
   REGISTER — MOBILE (identitas sudah login)
   POST /u/exams/:code/register
   ========================================================= */
func (ctl *RegistrationController) RegisterMobile(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	return ctl.register(c, lembagaID, &userID)
}

// register menjalankan pipeline yang sama untuk kedua entry point:
// exam aktif+publik → jendela → eligibility → duplikat → identifier → create.
func (ctl *RegistrationController) register(c *fiber.Ctx, lembagaID uuid.UUID, knownUserID *uuid.UUID) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	if code == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kode ujian wajib diisi")
	}

	var req dto.RegisterExamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var created *model.RegistrationModel
	var exam examModel.ExamModel

	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		// (a) exam harus ada, publik, dan active untuk menerima registrasi
		if err := tx.Where("exam_lembaga_id = ? AND exam_code = ? AND exam_is_public = TRUE",
			lembagaID, code).First(&exam).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ujian tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if exam.ExamStatus != examModel.ExamStatusActive {
			return fiber.NewError(fiber.StatusBadRequest, "Ujian tidak sedang menerima registrasi")
		}

		// (b) jendela registrasi
		if err := examService.CheckRegistrationWindow(
			exam.ExamRegistrationStartDate, exam.ExamRegistrationEndDate, time.Now()); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// (c) eligibility: batas usia + kelas yang diizinkan
		var dob *time.Time
		if req.ApplicantDOB != nil && strings.TrimSpace(*req.ApplicantDOB) != "" {
			if t, err := time.Parse("2006-01-02", strings.TrimSpace(*req.ApplicantDOB)); err == nil {
				dob = &t
			}
		}
		if err := examService.CheckEligibility(&exam, dob, req.CurrentClass, time.Now()); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// (d) duplikat: email / phone / linked identity untuk ujian ini
		email := strings.ToLower(strings.TrimSpace(req.ApplicantEmail))
		phone := strings.TrimSpace(req.ApplicantPhone)
		dupQ := tx.Where("registration_exam_id = ?", exam.ExamID).
			Where(tx.Where("registration_applicant_email = ?", email).
				Or("registration_applicant_phone = ?", phone))
		if knownUserID != nil {
			dupQ = tx.Where("registration_exam_id = ?", exam.ExamID).
				Where(tx.Where("registration_applicant_email = ?", email).
					Or("registration_applicant_phone = ?", phone).
					Or("registration_user_id = ?", *knownUserID))
		}
		var existing model.RegistrationModel
		if err := dupQ.First(&existing).Error; err == nil {
			return &duplicateRegistrationError{Number: existing.RegistrationNumber}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		// Provisioning identitas login (idempotent per lembaga+email)
		userID := knownUserID
		if userID == nil {
			u, err := userService.EnsureUserForApplicant(tx, lembagaID, req.ApplicantName, email)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyiapkan identitas login")
			}
			userID = &u.UserID
		}

		// Identifier: counter atomik + unique index backstop + bounded retry.
		// Tiap attempt jalan di savepoint supaya INSERT yang gagal tidak
		// meracuni transaksi luar.
		err := service.InsertWithIdentifierRetry(tx, func(ptx *gorm.DB) error {
			seq, err := service.NextRegistrationSeq(ptx, exam.ExamID)
			if err != nil {
				return err
			}
			username, err := service.NextUsername(ptx, lembagaID, email)
			if err != nil {
				return err
			}

			m := req.ToModel(lembagaID, exam.ExamID)
			m.RegistrationNumber = service.FormatRegistrationNumber(exam.ExamCode, seq)
			m.RegistrationUsername = username
			m.RegistrationUserID = userID
			m.RegistrationPaymentStatus = model.PaymentPending
			if !exam.ExamPaymentRequired {
				m.RegistrationPaymentStatus = model.PaymentWaived
			}

			if err := ptx.Create(m).Error; err != nil {
				return err
			}
			created = m
			return nil
		})
		if err != nil {
			if errors.Is(err, service.ErrIdentifierExhausted) {
				return fiber.NewError(fiber.StatusConflict, "Gagal menghasilkan nomor registrasi unik, coba lagi")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return service.RecomputeExamStats(tx, exam.ExamID)
	})
	if txErr != nil {
		var dup *duplicateRegistrationError
		if errors.As(txErr, &dup) {
			return helper.JsonErrorWithData(c, fiber.StatusConflict,
				"Pelamar sudah terdaftar untuk ujian ini",
				fiber.Map{"registration_number": dup.Number})
		}
		if fe, ok := txErr.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, txErr.Error())
	}

	resp := fiber.Map{
		"registration_number": created.RegistrationNumber,
		"username":            created.RegistrationUsername,
		"payment_status":      created.RegistrationPaymentStatus,
	}
	// Mobile dapat ringkasan status sekalian
	if knownUserID != nil {
		resp["exam"] = fiber.Map{
			"exam_code":        exam.ExamCode,
			"exam_name":        exam.ExamName,
			"exam_dates":       exam.ExamDates,
			"exam_total_marks": exam.ExamTotalMarks,
		}
		resp["registration"] = dto.NewRegistrationResponse(created)
	}

	c.Set("Location", "/registrations/"+created.RegistrationID.String())
	return helper.JsonCreated(c, "Registrasi berhasil", resp)
}

type duplicateRegistrationError struct {
	Number string
}

func (e *duplicateRegistrationError) Error() string {
	return "registrasi duplikat: " + e.Number
}

/* =========================================================
   GET BY NUMBER (publik — portal peserta / admit card lookup)
   GET /lembaga/:lembaga_id/registrations/:number
   ========================================================= */
func (ctl *RegistrationController) GetByNumber(c *fiber.Ctx) error {
	lembagaID, err := uuid.Parse(strings.TrimSpace(c.Params("lembaga_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "lembaga id tidak valid")
	}
	number := strings.ToUpper(strings.TrimSpace(c.Params("number")))

	var m model.RegistrationModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("registration_lembaga_id = ? AND registration_number = ?", lembagaID, number).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registrasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.NewRegistrationResponse(&m))
}

/* =========================================================
   LIST PER UJIAN (admin)
   GET /exams/:id/registrations
   ========================================================= */
func (ctl *RegistrationController) ListByExam(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}
	examID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "exam id tidak valid")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctl.DB.WithContext(c.Context()).Model(&model.RegistrationModel{}).
		Where("registration_lembaga_id = ? AND registration_exam_id = ?", lembagaID, examID)

	if v := strings.ToLower(strings.TrimSpace(c.Query("result"))); v != "" {
		if !model.IsValidResult(v) {
			return helper.JsonError(c, fiber.StatusBadRequest, "result tidak valid (pass/fail/absent/pending)")
		}
		tx = tx.Where("registration_result = ?", v)
	}
	if v := strings.ToLower(strings.TrimSpace(c.Query("enrollment_status"))); v != "" {
		if !service.IsValidEnrollmentStatus(v) {
			return helper.JsonError(c, fiber.StatusBadRequest, "enrollment_status tidak valid")
		}
		tx = tx.Where("registration_enrollment_status = ?", v)
	}
	if v := strings.TrimSpace(c.Query("has_attended")); v != "" {
		tx = tx.Where("registration_has_attended = ?", strings.EqualFold(v, "true"))
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("registration_applicant_name ILIKE ? OR registration_number ILIKE ? OR registration_applicant_email ILIKE ?",
			like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.RegistrationModel
	if err := tx.Order("registration_number ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]*dto.RegistrationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.NewRegistrationResponse(&rows[i]))
	}
	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", out, &p)
}
