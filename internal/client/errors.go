package client

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("alert not found on server")

// SubmissionError - ошибка отправки тревоги.
// Transient означает, что повторная отправка того же сообщения может пройти.
type SubmissionError struct {
	Transient  bool
	StatusCode int
	Detail     string
	Err        error
}

func (e *SubmissionError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("submission rejected with status %d: %s", e.StatusCode, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("submission rejected with status %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("submission failed: %v", e.Err)
	default:
		return "submission failed: " + e.Detail
	}
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// IsTransient сообщает, является ли ошибка временной
func IsTransient(err error) bool {
	var serr *SubmissionError
	return errors.As(err, &serr) && serr.Transient
}

// transientStatus - 5xx и 429 считаются временными, остальные 4xx нет
func transientStatus(code int) bool {
	return code >= 500 || code == 429
}
