package common

import (
	"errors"
	"fmt"

	"blog/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}

// Combine merges non-nil errors into one, or returns nil if all are nil.
func Combine(errs ...error) error {
	errText := ""
	for _, err := range errs {
		if err != nil {
			if errText != "" {
				errText += ", "
			}
			errText += err.Error()
		}
	}
	if errText != "" {
		return errors.New(errText)
	}
	return nil
}

func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}
