// file: internals/features/lembaga/registrations/service/bulk_results.go
package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	model "beasiswaku_backend/internals/features/lembaga/registrations/model"
)

// Maksimal pesan error per-baris yang dikembalikan ke caller.
const MaxBulkErrors = 10

const (
	colRegistrationNumber = "Registration Number"
	colMarksObtained      = "Marks Obtained"
	colHasAttended        = "Has Attended"
	colResult             = "Result"
	colRank               = "Rank"
)

// ResultRow: satu baris data mentah beserta nomor barisnya di file
// (header = baris 1, data mulai baris 2) supaya error tetap teratribusi.
type ResultRow struct {
	RowNum             int
	RegistrationNumber string
	MarksRaw           string
	HasAttendedRaw     string
	ResultRaw          string
	RankRaw            string
}

// ParsedResult: baris yang sudah lolos validasi, siap ditulis.
type ParsedResult struct {
	RegistrationNumber string
	MarksObtained      float64
	Percentage         float64
	HasAttended        bool
	Result             model.RegistrationResult
	Rank               *int
}

// RowError: error per-baris; dikumpulkan, tidak membatalkan batch.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ResultsFile struct {
	Rows []ResultRow
}

// ParseResultsCSV membaca CSV berheader. Kolom wajib: Registration
// Number, Marks Obtained, Has Attended, Result; Rank opsional. Nilai
// boleh di-quote. Kolom wajib hilang = error fatal (400), bukan per-baris.
func ParseResultsCSV(r io.Reader) (*ResultsFile, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("file kosong atau header tidak terbaca")
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, required := range []string{colRegistrationNumber, colMarksObtained, colHasAttended, colResult} {
		if _, ok := idx[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("kolom wajib tidak ditemukan: %s", strings.Join(missing, ", "))
	}

	rankIdx, hasRank := idx[colRank]

	pick := func(record []string, i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	out := &ResultsFile{}
	rowNum := 1 // header
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			// baris rusak tetap dicatat sebagai baris; validasi yang menolak
			out.Rows = append(out.Rows, ResultRow{RowNum: rowNum})
			continue
		}
		row := ResultRow{
			RowNum:             rowNum,
			RegistrationNumber: pick(record, idx[colRegistrationNumber]),
			MarksRaw:           pick(record, idx[colMarksObtained]),
			HasAttendedRaw:     pick(record, idx[colHasAttended]),
			ResultRaw:          pick(record, idx[colResult]),
		}
		if hasRank {
			row.RankRaw = pick(record, rankIdx)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// ValidateResultRow memvalidasi satu baris terhadap total marks ujian.
func ValidateResultRow(row ResultRow, totalMarks int) (*ParsedResult, error) {
	if row.RegistrationNumber == "" {
		return nil, fmt.Errorf("Registration Number kosong")
	}

	marks, err := strconv.ParseFloat(row.MarksRaw, 64)
	if err != nil {
		return nil, fmt.Errorf("Marks Obtained tidak valid: %q", row.MarksRaw)
	}
	if marks < 0 || marks > float64(totalMarks) {
		return nil, fmt.Errorf("Marks Obtained %.2f di luar rentang [0, %d]", marks, totalMarks)
	}

	result := strings.ToLower(strings.TrimSpace(row.ResultRaw))
	if !model.IsValidResult(result) {
		return nil, fmt.Errorf("Result tidak valid: %q (pass/fail/absent/pending)", row.ResultRaw)
	}

	parsed := &ParsedResult{
		RegistrationNumber: row.RegistrationNumber,
		MarksObtained:      marks,
		Percentage:         RoundPercentage(marks, totalMarks),
		HasAttended:        strings.EqualFold(row.HasAttendedRaw, "true"),
		Result:             model.RegistrationResult(result),
	}

	if row.RankRaw != "" {
		rank, err := strconv.Atoi(row.RankRaw)
		if err != nil || rank <= 0 {
			return nil, fmt.Errorf("Rank tidak valid: %q (harus bilangan positif)", row.RankRaw)
		}
		parsed.Rank = &rank
	}
	return parsed, nil
}

// RoundPercentage: marks/total×100, dibulatkan 2 desimal.
func RoundPercentage(marks float64, totalMarks int) float64 {
	if totalMarks <= 0 {
		return 0
	}
	return math.Round(marks/float64(totalMarks)*100*100) / 100
}
