package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

// ActivityLog appends one record per event to a CSV file:
//
//	\nstatus,MM-DD-YY,HH:MM:SS,
//
// Every record starts with a newline and ends with a trailing comma.
type ActivityLog struct {
	path string
}

func NewActivityLog(path string) *ActivityLog {
	return &ActivityLog{path: path}
}

func (s *ActivityLog) Path() string { return s.path }

func (s *ActivityLog) Append(_ context.Context, e types.ActivityEntry) error {
	if err := ensureDir(s.path); err != nil {
		return fmt.Errorf("Append: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("Append open: %w", err)
	}
	if _, err := fmt.Fprintf(f, "\n%s,%s,%s,", e.Status, e.Date, e.Time); err != nil {
		_ = f.Close()
		return fmt.Errorf("Append write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("Append close: %w", err)
	}
	return nil
}

// Entries parses the log. A missing file is an empty log.
func (s *ActivityLog) Entries(_ context.Context) ([]types.ActivityEntry, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Entries open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	var out []types.ActivityEntry
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Entries parse: %w", err)
		}
		if len(rec) < 3 {
			continue
		}
		out = append(out, types.ActivityEntry{Status: rec[0], Date: rec[1], Time: rec[2]})
	}
	return out, nil
}
