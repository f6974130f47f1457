package repository

import "errors"

var (
	ErrNotFound = errors.New("record not found")

	ErrCredentialNotFound = errors.New("download verification not found")
	ErrCredentialExpired  = errors.New("download verification expired")
)
