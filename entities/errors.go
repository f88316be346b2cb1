package entities

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidChunkIndex  = errors.New("invalid chunk index")
	ErrInvalidKeyMaterial = errors.New("invalid key material")
	ErrStorageFailure     = errors.New("storage failure")
	ErrUnreadableUpload   = errors.New("unreadable upload")
	ErrInvalidTransition  = errors.New("invalid status transition")
)
