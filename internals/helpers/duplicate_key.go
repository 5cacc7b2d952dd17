// file: internals/helpers/duplicate_key.go
package helper

import "strings"

// IsDuplicateKey mendeteksi pelanggaran unique constraint dari driver.
// Dipakai sebagai backstop identifier generation (registration number,
// username, exam code) sebelum retry.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "violates unique constraint") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}
