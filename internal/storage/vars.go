package storage

import (
	"errors"
)

const (
	OneKB = 1 << 10 // 1,024

	PageSize      = 4 * OneKB // 4,096
	TableMaxPages = 100

	// MaxFileSize is the largest file a table can ever produce.
	MaxFileSize = int64(PageSize) * TableMaxPages
)

const (
	FileMode0644 = 0o644
	FileMode0664 = 0o664
)

var (
	ErrPageOutOfBounds = errors.New("storage: page index out of bounds")
	ErrStorageIO       = errors.New("storage: I/O error")
	ErrPagerClosed     = errors.New("storage: pager is closed")
	ErrInvalidLength   = errors.New("storage: invalid file length")
)
