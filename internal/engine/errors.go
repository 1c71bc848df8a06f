package engine

import (
	"errors"
	"fmt"
)

// MissingRecordError indicates an edit targeted an id that is no longer in
// its collection. This is an internal-consistency failure, not user error.
type MissingRecordError struct {
	Kind string
	ID   string
}

func (e MissingRecordError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

var (
	// ErrPasswordEmpty is returned when either password field is blank.
	ErrPasswordEmpty = errors.New("密码不能为空！")
	// ErrPasswordMismatch is returned when the two password fields differ.
	ErrPasswordMismatch = errors.New("两次输入的密码不一致！")
)
