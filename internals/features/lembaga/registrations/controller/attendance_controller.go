// file: internals/features/lembaga/registrations/controller/attendance_controller.go
package controller

import (
	"bytes"
	"errors"
	"fmt"
	"io"
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
	helper "beasiswaku_backend/internals/helpers"
)

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db, Validator: validator.New()}
}

/* =========================================================
   ATTENDANCE SATUAN (admin — hari-H di lokasi ujian)
   PATCH /registrations/:id/attendance
   ========================================================= */
func (ctl *AttendanceController) UpdateAttendance(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}
	regID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "registration id tidak valid")
	}

	var req dto.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.RegistrationModel
	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("registration_id = ? AND registration_lembaga_id = ?", regID, lembagaID).
			First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Registrasi tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		updates := map[string]interface{}{
			"registration_has_attended":      *req.HasAttended,
			"registration_attendance_marked": true,
		}
		if *req.HasAttended {
			when := time.Now()
			if req.ExamDate != nil && strings.TrimSpace(*req.ExamDate) != "" {
				parsed, err := time.Parse("2006-01-02", strings.TrimSpace(*req.ExamDate))
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "exam_date harus format YYYY-MM-DD")
				}
				when = parsed
			}
			updates["registration_exam_date_attended"] = when
		} else {
			// tidak hadir: tanggal kehadiran dikosongkan lagi
			updates["registration_exam_date_attended"] = nil
		}

		if err := tx.Model(&model.RegistrationModel{}).
			Where("registration_id = ?", m.RegistrationID).
			Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if err := tx.Where("registration_id = ?", m.RegistrationID).First(&m).Error; err != nil {
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

	return helper.JsonUpdated(c, "Kehadiran tersimpan", dto.NewRegistrationResponse(&m))
}

/* =========================================================
   UPLOAD HASIL MASSAL (admin — CSV rekap dari pengawas)
   POST /exams/:id/results/bulk
   ========================================================= */
// Per baris: gagal satu tidak membatalkan baris lain. Error dilaporkan
// dengan nomor baris file (header = baris 1).
func (ctl *AttendanceController) BulkUploadResults(c *fiber.Ctx) error {
	lembagaID, err := helper.GetLembagaIDFromToken(c)
	if err != nil {
		return err
	}
	examID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "exam id tidak valid")
	}

	reader, err := bulkPayloadReader(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var exam examModel.ExamModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("exam_id = ? AND exam_lembaga_id = ?", examID, lembagaID).
		First(&exam).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Ujian tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	file, err := service.ParseResultsCSV(reader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if len(file.Rows) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak berisi baris data")
	}

	tiers, err := examService.DecodeRewardTiers(exam.ExamRewardTiers)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Konfigurasi reward tier rusak")
	}

	updated := 0
	var rowErrors []service.RowError

	for _, row := range file.Rows {
		parsed, verr := service.ValidateResultRow(row, exam.ExamTotalMarks)
		if verr != nil {
			rowErrors = append(rowErrors, service.RowError{Row: row.RowNum, Message: verr.Error()})
			continue
		}

		err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
			var reg model.RegistrationModel
			if err := tx.Where(
				"registration_lembaga_id = ? AND registration_exam_id = ? AND registration_number = ?",
				lembagaID, examID, parsed.RegistrationNumber).
				First(&reg).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("nomor registrasi %s tidak ditemukan", parsed.RegistrationNumber)
				}
				return err
			}

			reg.RegistrationHasAttended = parsed.HasAttended
			reg.RegistrationAttendanceMarked = true
			reg.RegistrationMarksObtained = &parsed.MarksObtained
			pct := service.RoundPercentage(parsed.MarksObtained, exam.ExamTotalMarks)
			reg.RegistrationPercentage = &pct
			reg.RegistrationResult = parsed.Result
			reg.RegistrationStatus = model.RegistrationStatusAppeared
			if parsed.Rank != nil {
				reg.RegistrationRank = parsed.Rank
				service.ApplyReward(&reg, tiers, *parsed.Rank)
			}

			return tx.Save(&reg).Error
		})
		if err != nil {
			rowErrors = append(rowErrors, service.RowError{Row: row.RowNum, Message: err.Error()})
			continue
		}
		updated++
	}

	if err := service.RecomputeExamStats(ctl.DB.WithContext(c.Context()), examID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	shown := rowErrors
	if len(shown) > service.MaxBulkErrors {
		shown = shown[:service.MaxBulkErrors]
	}
	return helper.JsonOK(c, "Upload hasil selesai", fiber.Map{
		"updated_count": updated,
		"error_count":   len(rowErrors),
		"errors":        shown,
	})
}

// bulkPayloadReader menerima multipart field "file" atau raw body CSV.
func bulkPayloadReader(c *fiber.Ctx) (io.Reader, error) {
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return nil, errors.New("File upload tidak bisa dibuka")
		}
		defer f.Close()
		buf, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.New("File upload tidak bisa dibaca")
		}
		return bytes.NewReader(buf), nil
	}
	if len(c.Body()) == 0 {
		return nil, errors.New("File CSV wajib diunggah (field 'file' atau body mentah)")
	}
	return bytes.NewReader(c.Body()), nil
}
