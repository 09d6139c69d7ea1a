package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Pager owns the database file and an arena of cached pages indexed by page number.
// Pages are loaded lazily and only written back by FlushAll.
type Pager struct {
	file       *os.File
	path       string
	fileLength int64 // bytes on disk as of open / last flush
	numPages   int   // pages known to exist, on disk or in cache
	pages      [TableMaxPages]*Page
	ephemeral  bool // remove the file once released
	closed     bool
}

// Open opens or creates the database file at path.
func Open(path string) (*Pager, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, FileMode0664)
	if err != nil {
		return nil, fmt.Errorf("%w: open database file: %w", ErrStorageIO, err)
	}
	return newPager(file, false)
}

// OpenTemp opens an empty database file in dir (os.TempDir when empty)
// that is removed when the pager is closed or released.
func OpenTemp(dir string) (*Pager, error) {
	file, err := os.CreateTemp(dir, "rowstore-*.db")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp database file: %w", ErrStorageIO, err)
	}
	return newPager(file, true)
}

func newPager(file *os.File, ephemeral bool) (*Pager, error) {
	fileInfo, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: get file info: %w", ErrStorageIO, err)
	}

	size := fileInfo.Size()
	if size > MaxFileSize {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s is %d bytes, max %d", ErrInvalidLength, file.Name(), size, MaxFileSize)
	}

	p := &Pager{
		file:       file,
		path:       file.Name(),
		fileLength: size,
		ephemeral:  ephemeral,
	}
	p.numPages = p.filePages()

	slog.Debug("pager: opened",
		"path", p.path,
		"file_length", p.fileLength,
		"num_pages", p.numPages,
		"ephemeral", ephemeral,
	)
	return p, nil
}

// filePages counts pages touched by the file, a partial last page included.
func (p *Pager) filePages() int {
	n := int(p.fileLength / PageSize)
	if p.fileLength%PageSize != 0 {
		n++
	}
	return n
}

// GetPage returns the cached page n, loading it from disk or allocating it on a miss.
// A new page may only be appended directly after the last known page.
func (p *Pager) GetPage(n int) (*Page, error) {
	if p.closed {
		return nil, ErrPagerClosed
	}
	if n < 0 || n >= TableMaxPages {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrPageOutOfBounds, n, TableMaxPages)
	}
	if pg := p.pages[n]; pg != nil {
		return pg, nil
	}
	if n > p.numPages {
		return nil, fmt.Errorf("%w: page %d would leave a hole after %d pages", ErrPageOutOfBounds, n, p.numPages)
	}

	pg := &Page{}
	if n < p.filePages() {
		off := int64(n) * PageSize
		// A partial last page reads short; the rest of the buffer stays zero.
		if _, err := p.file.ReadAt(pg.Data[:], off); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: read page %d: %w", ErrStorageIO, n, err)
		}
		slog.Debug("pager: page loaded", "page", n, "offset", off)
	} else {
		slog.Debug("pager: page allocated", "page", n)
	}

	p.pages[n] = pg
	if n >= p.numPages {
		p.numPages = n + 1
	}
	return pg, nil
}

// FlushAll writes dirty cached pages in page order, clipped to length bytes,
// then truncates the file to exactly length and syncs it.
func (p *Pager) FlushAll(length int64) error {
	if p.closed {
		return ErrPagerClosed
	}
	if length < 0 || length > MaxFileSize {
		return fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	flushed := 0
	for n := 0; n < p.numPages; n++ {
		pg := p.pages[n]
		if pg == nil || !pg.dirty {
			continue
		}

		off := int64(n) * PageSize
		size := min(int64(PageSize), length-off)
		if size <= 0 {
			continue
		}
		if _, err := p.file.WriteAt(pg.Data[:size], off); err != nil {
			return fmt.Errorf("%w: write page %d: %w", ErrStorageIO, n, err)
		}
		pg.dirty = false
		flushed++
	}

	if err := p.file.Truncate(length); err != nil {
		return fmt.Errorf("%w: truncate: %w", ErrStorageIO, err)
	}
	if err := p.file.Sync(); err != nil {
		return fmt.Errorf("%w: sync: %w", ErrStorageIO, err)
	}
	p.fileLength = length

	slog.Debug("pager: flushed", "pages", flushed, "file_length", length)
	return nil
}

// Close flushes up to length bytes and releases the file. Closing twice is a no-op.
func (p *Pager) Close(length int64) error {
	if p.closed {
		return nil
	}
	flushErr := p.FlushAll(length)
	return errors.Join(flushErr, p.release())
}

// Release closes the file without writing anything.
func (p *Pager) Release() error {
	if p.closed {
		return nil
	}
	return p.release()
}

func (p *Pager) release() error {
	p.closed = true
	clear(p.pages[:])

	var errs []error
	if err := p.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("%w: close: %w", ErrStorageIO, err))
	}
	if p.ephemeral {
		if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("%w: remove temp file: %w", ErrStorageIO, err))
		}
	}
	return errors.Join(errs...)
}

// FileLength returns the file size as of open or the last flush.
func (p *Pager) FileLength() int64 { return p.fileLength }

// NumPages returns the number of pages on disk or in cache.
func (p *Pager) NumPages() int { return p.numPages }

func (p *Pager) Path() string { return p.path }

func (p *Pager) Ephemeral() bool { return p.ephemeral }
