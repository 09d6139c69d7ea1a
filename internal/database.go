package internal

import (
	"errors"
	"log/slog"

	"github.com/tuannm99/rowstore/internal/heap"
	"github.com/tuannm99/rowstore/internal/sql/executor"
	"github.com/tuannm99/rowstore/internal/storage"
)

// OpenDatabase opens the table file at path, or an ephemeral one in tempDir
// when path is empty, and wraps it in a session.
func OpenDatabase(path, tempDir string) (*executor.Session, error) {
	var (
		pager *storage.Pager
		err   error
	)
	if path == "" {
		pager, err = storage.OpenTemp(tempDir)
	} else {
		pager, err = storage.Open(path)
	}
	if err != nil {
		return nil, err
	}

	tbl, err := heap.Open(pager)
	if err != nil {
		return nil, errors.Join(err, pager.Release())
	}

	slog.Info("database opened",
		"path", pager.Path(),
		"ephemeral", pager.Ephemeral(),
		"rows", tbl.RowCount(),
	)
	return executor.NewSession(tbl), nil
}
