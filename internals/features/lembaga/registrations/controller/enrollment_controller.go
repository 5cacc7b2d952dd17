// file: internals/features/lembaga/registrations/controller/enrollment_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	admissionModel "beasiswaku_backend/internals/features/lembaga/admissions/model"
	dto "beasiswaku_backend/internals/features/lembaga/registrations/dto"
	model "beasiswaku_backend/internals/features/lembaga/registrations/model"
	service "beasiswaku_backend/internals/features/lembaga/registrations/service"
	helper "beasiswaku_backend/internals/helpers"
)

type EnrollmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db, Validator: validator.New()}
}

// findRegistrationGuarded membedakan 404 (tidak ada) dari 403 (milik
// lembaga lain) supaya operator tahu salah tenant, bukan salah id.
func findRegistrationGuarded(tx *gorm.DB, regID, lembagaID uuid.UUID) (*model.RegistrationModel, *fiber.Error) {
	var m model.RegistrationModel
	if err := tx.Where("registration_id = ?", regID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Registrasi tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if m.RegistrationLembagaID != lembagaID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Registrasi milik lembaga lain")
	}
	return &m, nil
}

/* =========================================================
   UPDATE STATUS FUNNEL
   PATCH /registrations/:id/enrollment
   ========================================================= */
func (ctl *EnrollmentController) UpdateEnrollmentStatus(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}
	regID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "registration id tidak valid")
	}

	var req dto.UpdateEnrollmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !service.IsValidEnrollmentStatus(status) {
		return helper.JsonError(c, fiber.StatusBadRequest, "enrollment status tidak dikenal")
	}
	newStatus := model.EnrollmentStatus(status)

	var m *model.RegistrationModel
	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var ferr *fiber.Error
		m, ferr = findRegistrationGuarded(tx, regID, lembagaID)
		if ferr != nil {
			return ferr
		}

		updates := service.EnrollmentTransitionUpdates(newStatus, time.Now())
		if err := tx.Model(&model.RegistrationModel{}).
			Where("registration_id = ?", m.RegistrationID).
			Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if err := writeEnrollmentLog(tx, c, m, string(newStatus), req.Note); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if err := tx.Where("registration_id = ?", m.RegistrationID).First(m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return service.RecomputeExamStats(tx, m.RegistrationExamID)
	})
	if txErr != nil {
		if fe, ok := txErr.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, txErr.Error())
	}

	return helper.JsonUpdated(c, "Status enrollment diperbarui", dto.NewRegistrationResponse(m))
}

/* =========================================================
   KONVERSI KE STUDENT ADMISSION
   POST /registrations/:id/convert
   ========================================================= */
func (ctl *EnrollmentController) ConvertToAdmission(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}
	regID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "registration id tidak valid")
	}

	var req dto.ConvertToAdmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m *model.RegistrationModel
	var student *admissionModel.StudentAdmissionModel

	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var ferr *fiber.Error
		m, ferr = findRegistrationGuarded(tx, regID, lembagaID)
		if ferr != nil {
			return ferr
		}
		if m.RegistrationConvertedToStudent {
			return fiber.NewError(fiber.StatusBadRequest, "Registrasi sudah pernah dikonversi")
		}

		regIDCopy := m.RegistrationID
		student = &admissionModel.StudentAdmissionModel{
			StudentLembagaID:      lembagaID,
			StudentRegistrationID: &regIDCopy,
			StudentName:           m.RegistrationApplicantName,
			StudentEmail:          m.RegistrationApplicantEmail,
			StudentPhone:          m.RegistrationApplicantPhone,
			StudentDOB:            m.RegistrationApplicantDOB,
			StudentGender:         m.RegistrationApplicantGender,
			StudentFatherName:     m.RegistrationFatherName,
			StudentMotherName:     m.RegistrationMotherName,
			StudentAddress:        m.RegistrationAddress,
			StudentBatchName:      strings.TrimSpace(req.BatchName),
			StudentCourseName:     strings.TrimSpace(req.CourseName),
			StudentFeeTotalIDR:    req.FeeTotalIDR,
			StudentFeeDiscount:    req.FeeDiscount,
		}
		if err := tx.Create(student).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Registrasi sudah pernah dikonversi")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		updates := service.EnrollmentTransitionUpdates(model.EnrollmentConverted, time.Now())
		updates["registration_converted_to_student"] = true
		updates["registration_student_id"] = student.StudentID
		if err := tx.Model(&model.RegistrationModel{}).
			Where("registration_id = ?", m.RegistrationID).
			Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if err := writeEnrollmentLog(tx, c, m, string(model.EnrollmentConverted), nil); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if err := tx.Where("registration_id = ?", m.RegistrationID).First(m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return service.RecomputeExamStats(tx, m.RegistrationExamID)
	})
	if txErr != nil {
		if fe, ok := txErr.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, txErr.Error())
	}

	return helper.JsonCreated(c, "Registrasi dikonversi menjadi student", fiber.Map{
		"student":      student,
		"registration": dto.NewRegistrationResponse(m),
	})
}

/* =========================================================
   AUDIT TRAIL FUNNEL
   GET /registrations/:id/enrollment-logs
   ========================================================= */
func (ctl *EnrollmentController) ListEnrollmentLogs(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}
	regID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "registration id tidak valid")
	}

	if _, ferr := findRegistrationGuarded(ctl.DB.WithContext(c.Context()), regID, lembagaID); ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}

	var logs []model.EnrollmentStatusLog
	if err := ctl.DB.WithContext(c.Context()).
		Where("enrollment_log_registration_id = ?", regID).
		Order("enrollment_log_created_at DESC").
		Limit(200).
		Find(&logs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", logs)
}

// writeEnrollmentLog mencatat transisi dari snapshot status lama di m.
func writeEnrollmentLog(tx *gorm.DB, c *fiber.Ctx, m *model.RegistrationModel, toStatus string, note *string) error {
	log := &model.EnrollmentStatusLog{
		EnrollmentLogLembagaID:      m.RegistrationLembagaID,
		EnrollmentLogRegistrationID: m.RegistrationID,
		EnrollmentLogFromStatus:     string(m.RegistrationEnrollmentStatus),
		EnrollmentLogToStatus:       toStatus,
		EnrollmentLogNote:           note,
	}
	if actorID, err := helper.GetUserIDFromToken(c); err == nil {
		log.EnrollmentLogChangedBy = &actorID
	}
	return tx.Create(log).Error
}
