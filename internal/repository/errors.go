package repository

import "errors"

var (
	ErrNotFound      = errors.New("entity not found")
	ErrRequestFailed = errors.New("backend request failed")
	ErrUpdateFailed  = errors.New("update failed")
	ErrDeleteFailed  = errors.New("delete failed")
)
