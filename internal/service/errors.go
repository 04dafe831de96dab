package service

import (
	"errors"
	"fmt"
)

// ErrNotFound 迭代 ID 无法解析
var ErrNotFound = errors.New("not found")

// FetchError 上游取数失败，保留原始错误供 errors.Is/As 判断
type FetchError struct {
	Op       string
	Resource string
	ID       int64
	Err      error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID > 0 {
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func fetchErr(op, resource string, id int64, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Op: op, Resource: resource, ID: id, Err: err}
}
