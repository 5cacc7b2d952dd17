// file: internals/helpers/duplicate_key_test.go
package helper

import (
	"errors"
	"testing"
)

func TestIsDuplicateKey(t *testing.T) {
	dup := []error{
		errors.New(`ERROR: duplicate key value violates unique constraint "uq_registration_lembaga_number" (SQLSTATE 23505)`),
		errors.New("UNIQUE constraint failed: exams.exam_code"),
		errors.New("pq: duplicate key value"),
	}
	for _, err := range dup {
		if !IsDuplicateKey(err) {
			t.Fatalf("harus terdeteksi duplicate: %v", err)
		}
	}

	notDup := []error{
		nil,
		errors.New("connection refused"),
		errors.New("ERROR: null value in column (SQLSTATE 23502)"),
	}
	for _, err := range notDup {
		if IsDuplicateKey(err) {
			t.Fatalf("tidak boleh terdeteksi duplicate: %v", err)
		}
	}
}
