// file: internals/features/lembaga/registrations/service/sequencer_test.go
package service

import (
	"database/sql"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestFormatRegistrationNumber(t *testing.T) {
	cases := []struct {
		code string
		seq  int
		want string
	}{
		{"UNST2025", 1, "UNST2025-00001"},
		{"UNST2025", 123, "UNST2025-00123"},
		{"unst2025", 7, "UNST2025-00007"},
		{"  EXAM25001 ", 99999, "EXAM25001-99999"},
		{"EXAM25001", 100000, "EXAM25001-100000"}, // lewat 5 digit tetap utuh, tidak dipotong
	}
	for _, tc := range cases {
		if got := FormatRegistrationNumber(tc.code, tc.seq); got != tc.want {
			t.Fatalf("FormatRegistrationNumber(%q, %d) = %q, want %q", tc.code, tc.seq, got, tc.want)
		}
	}
}

// fakeTxRunner mensimulasikan nested transaction: tiap attempt memanggil
// fn dengan tx segar, persis perilaku savepoint.
type fakeTxRunner struct {
	calls int
	errs  []error // error per attempt; nil = fn dijalankan beneran
	fnErr func(attempt int) error
}

func (f *fakeTxRunner) Transaction(fc func(tx *gorm.DB) error, _ ...*sql.TxOptions) error {
	attempt := f.calls
	f.calls++
	if f.fnErr != nil {
		return f.fnErr(attempt)
	}
	return f.errs[attempt]
}

func TestInsertWithIdentifierRetry_RetriesOnDuplicateOnly(t *testing.T) {
	dupErr := errors.New(`duplicate key value violates unique constraint "uq_registration_lembaga_username" (SQLSTATE 23505)`)

	// dua tabrakan unique index lalu sukses: harus tetap jalan ke attempt 3
	runner := &fakeTxRunner{errs: []error{dupErr, dupErr, nil}}
	if err := InsertWithIdentifierRetry(runner, func(tx *gorm.DB) error { return nil }); err != nil {
		t.Fatalf("duplicate berulang lalu sukses harus nil, got %v", err)
	}
	if runner.calls != 3 {
		t.Fatalf("attempts = %d, want 3 (attempt setelah duplicate wajib jalan lagi)", runner.calls)
	}

	// error non-duplicate langsung diteruskan, tanpa retry
	hardErr := errors.New("current transaction is aborted")
	runner = &fakeTxRunner{errs: []error{hardErr}}
	err := InsertWithIdentifierRetry(runner, func(tx *gorm.DB) error { return nil })
	if !errors.Is(err, hardErr) {
		t.Fatalf("error non-duplicate harus diteruskan apa adanya, got %v", err)
	}
	if runner.calls != 1 {
		t.Fatalf("attempts = %d, want 1", runner.calls)
	}

	// duplicate terus-menerus: berhenti di MaxIdentifierAttempts
	runner = &fakeTxRunner{fnErr: func(int) error { return dupErr }}
	err = InsertWithIdentifierRetry(runner, func(tx *gorm.DB) error { return nil })
	if !errors.Is(err, ErrIdentifierExhausted) {
		t.Fatalf("duplicate terus harus ErrIdentifierExhausted, got %v", err)
	}
	if runner.calls != MaxIdentifierAttempts {
		t.Fatalf("attempts = %d, want %d", runner.calls, MaxIdentifierAttempts)
	}
}

func TestUsernameCandidate(t *testing.T) {
	got, err := UsernameCandidate("Budi.Santoso@example.com", 0)
	if err != nil {
		t.Fatalf("UsernameCandidate: %v", err)
	}
	if got != "budi.santoso" {
		t.Fatalf("attempt 0 = %q, want budi.santoso", got)
	}

	got, err = UsernameCandidate("budi.santoso@example.com", 2)
	if err != nil {
		t.Fatalf("UsernameCandidate: %v", err)
	}
	if got != "budi.santoso2" {
		t.Fatalf("attempt 2 = %q, want budi.santoso2", got)
	}

	// karakter di luar [a-z0-9._] dibuang
	got, err = UsernameCandidate("A+B=C!@example.com", 0)
	if err != nil {
		t.Fatalf("UsernameCandidate: %v", err)
	}
	if got != "abc" {
		t.Fatalf("sanitasi = %q, want abc", got)
	}

	// local-part yang habis tersanitasi jatuh ke default
	got, err = UsernameCandidate("+++@example.com", 1)
	if err != nil {
		t.Fatalf("UsernameCandidate: %v", err)
	}
	if got != "peserta1" {
		t.Fatalf("fallback = %q, want peserta1", got)
	}

	if _, err := UsernameCandidate("bukan-email", 0); err == nil {
		t.Fatalf("email tanpa @ harus error")
	}
	if _, err := UsernameCandidate("@example.com", 0); err == nil {
		t.Fatalf("local-part kosong harus error")
	}
}
