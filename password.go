package apitour

import "fmt"

// MatchPasswords returns ErrMismatch when the confirmation differs.
func MatchPasswords(password, confirm string) error {
	if password != confirm {
		return fmt.Errorf("passwords don't match: %w", ErrMismatch)
	}
	return nil
}
