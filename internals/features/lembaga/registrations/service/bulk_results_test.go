// file: internals/features/lembaga/registrations/service/bulk_results_test.go
package service

import (
	"strings"
	"testing"

	model "beasiswaku_backend/internals/features/lembaga/registrations/model"
)

const csvHeader = "Registration Number,Marks Obtained,Has Attended,Result,Rank\n"

func TestParseResultsCSV_MissingRequiredColumns(t *testing.T) {
	in := "Registration Number,Marks Obtained\nUNST2025-00001,80\n"
	_, err := ParseResultsCSV(strings.NewReader(in))
	if err == nil {
		t.Fatalf("kolom wajib hilang harus error fatal")
	}
	if !strings.Contains(err.Error(), "Has Attended") || !strings.Contains(err.Error(), "Result") {
		t.Fatalf("pesan error harus menyebut kolom yang hilang, got %q", err.Error())
	}
}

func TestParseResultsCSV_RowNumbersStartAtTwo(t *testing.T) {
	in := csvHeader +
		"UNST2025-00001,80,true,pass,1\n" +
		"UNST2025-00002,40,true,fail,\n"
	file, err := ParseResultsCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseResultsCSV: %v", err)
	}
	if len(file.Rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(file.Rows))
	}
	if file.Rows[0].RowNum != 2 || file.Rows[1].RowNum != 3 {
		t.Fatalf("nomor baris = %d,%d; header harus baris 1, data mulai 2",
			file.Rows[0].RowNum, file.Rows[1].RowNum)
	}
	if file.Rows[1].RankRaw != "" {
		t.Fatalf("rank kosong harus tetap kosong, got %q", file.Rows[1].RankRaw)
	}
}

func TestParseResultsCSV_QuotedValuesAndOptionalRank(t *testing.T) {
	in := "Registration Number,Marks Obtained,Has Attended,Result\n" +
		"\"UNST2025-00001\",\"85.5\",\"TRUE\",\"Pass\"\n"
	file, err := ParseResultsCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseResultsCSV: %v", err)
	}
	row := file.Rows[0]
	if row.RegistrationNumber != "UNST2025-00001" || row.MarksRaw != "85.5" {
		t.Fatalf("nilai ber-quote tidak terbaca: %+v", row)
	}

	parsed, verr := ValidateResultRow(row, 100)
	if verr != nil {
		t.Fatalf("ValidateResultRow: %v", verr)
	}
	if !parsed.HasAttended || parsed.Result != model.ResultPass || parsed.Rank != nil {
		t.Fatalf("parsed tidak sesuai: %+v", parsed)
	}
}

func TestValidateResultRow_PartialBatchSemantics(t *testing.T) {
	// Baris valid dan tidak valid dalam satu file: yang rusak ditolak
	// satuan, sisanya tetap lolos.
	in := csvHeader +
		"UNST2025-00001,80,true,pass,1\n" +
		"UNST2025-00002,abc,true,pass,\n" + // marks bukan angka
		"UNST2025-00003,95,true,pass,2\n" +
		"UNST2025-00004,120,true,pass,\n" + // di atas total marks
		"UNST2025-00005,0,false,absent,\n"
	file, err := ParseResultsCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseResultsCSV: %v", err)
	}

	var ok, bad []int
	for _, row := range file.Rows {
		if _, verr := ValidateResultRow(row, 100); verr != nil {
			bad = append(bad, row.RowNum)
		} else {
			ok = append(ok, row.RowNum)
		}
	}
	if len(ok) != 3 {
		t.Fatalf("baris valid = %v, want 3 baris", ok)
	}
	if len(bad) != 2 || bad[0] != 3 || bad[1] != 5 {
		t.Fatalf("baris gagal = %v, want [3 5]", bad)
	}
}

func TestValidateResultRow_Bounds(t *testing.T) {
	mk := func(marks, result, rank string) ResultRow {
		return ResultRow{
			RowNum:             2,
			RegistrationNumber: "UNST2025-00001",
			MarksRaw:           marks,
			HasAttendedRaw:     "true",
			ResultRaw:          result,
			RankRaw:            rank,
		}
	}

	if _, err := ValidateResultRow(mk("-1", "pass", ""), 100); err == nil {
		t.Fatalf("marks negatif harus ditolak")
	}
	if _, err := ValidateResultRow(mk("100", "pass", ""), 100); err != nil {
		t.Fatalf("marks == total harus diterima: %v", err)
	}
	if _, err := ValidateResultRow(mk("50", "lulus", ""), 100); err == nil {
		t.Fatalf("result di luar enum harus ditolak")
	}
	if _, err := ValidateResultRow(mk("50", "PASS", ""), 100); err != nil {
		t.Fatalf("result case-insensitive harus diterima: %v", err)
	}
	if _, err := ValidateResultRow(mk("50", "pass", "0"), 100); err == nil {
		t.Fatalf("rank 0 harus ditolak")
	}
	if _, err := ValidateResultRow(mk("50", "pass", "-3"), 100); err == nil {
		t.Fatalf("rank negatif harus ditolak")
	}
	if _, err := ValidateResultRow(ResultRow{RowNum: 2}, 100); err == nil {
		t.Fatalf("Registration Number kosong harus ditolak")
	}
}

func TestRoundPercentage(t *testing.T) {
	cases := []struct {
		marks float64
		total int
		want  float64
	}{
		{250, 300, 83.33},
		{85.5, 100, 85.5},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{0, 100, 0},
		{100, 100, 100},
		{50, 0, 0}, // total nol tidak boleh bikin NaN
	}
	for _, tc := range cases {
		if got := RoundPercentage(tc.marks, tc.total); got != tc.want {
			t.Fatalf("RoundPercentage(%v, %d) = %v, want %v", tc.marks, tc.total, got, tc.want)
		}
	}
}
