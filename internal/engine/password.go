package engine

import (
	"context"
	"encoding/json"

	"classboard/internal/storage"
)

// HasPassword reports whether a settings password exists. Without one the
// settings view opens ungated (first-run state).
func (s *Service) HasPassword() bool {
	return s.board.Password != ""
}

// CheckPassword is a plaintext equality gate, a casual deterrent rather than
// a security boundary.
func (s *Service) CheckPassword(input string) bool {
	return s.HasPassword() && input == s.board.Password
}

// SetPassword replaces the gate password. Both fields must be non-empty and
// equal; nothing changes otherwise.
func (s *Service) SetPassword(ctx context.Context, newPass, confirm string) error {
	if newPass == "" || confirm == "" {
		return ErrPasswordEmpty
	}
	if newPass != confirm {
		return ErrPasswordMismatch
	}
	b, err := json.Marshal(newPass)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, storage.KeyPassword, b); err != nil {
		return err
	}
	s.board.Password = newPass
	return nil
}
