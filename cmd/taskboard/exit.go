package main

import (
	"errors"
	"fmt"

	"github.com/yuqie6/taskboard/internal/analytics"
	"github.com/yuqie6/taskboard/internal/service"
)

// 退出码
const (
	exitFailure     = 1
	exitUsage       = 2
	exitNotFound    = 3
	exitComputation = 4
	exitUpstream    = 5
)

// exitError 携带进程退出码的错误
type exitError struct {
	code  int
	msg   string
	cause error
}

func (e *exitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *exitError) ExitCode() int { return e.code }

func (e *exitError) Unwrap() error { return e.cause }

func usageErrorf(format string, args ...any) error {
	return &exitError{code: exitUsage, msg: fmt.Sprintf(format, args...)}
}

// wrapExit 按错误分类包装退出码
func wrapExit(msg string, err error) error {
	if err == nil {
		return nil
	}
	code := exitFailure
	var fe *service.FetchError
	switch {
	case errors.Is(err, service.ErrNotFound):
		code = exitNotFound
	case errors.Is(err, analytics.ErrComputation):
		code = exitComputation
	case errors.As(err, &fe):
		code = exitUpstream
	}
	return &exitError{code: code, msg: msg, cause: err}
}

// exitCodeOf 提取退出码，默认 1
func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ec interface{ ExitCode() int }
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return exitFailure
}
