// Package backup snapshots the persisted store before destructive operations
// and prunes old snapshot files.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrBackupFailed wraps any snapshot failure. Import runs abort before
// mutating anything when they see it.
var ErrBackupFailed = errors.New("backup failed")

// Guard snapshots a source file into a backup directory. The zero Clock
// means time.Now.
type Guard struct {
	Source string
	Dir    string
	Clock  func() time.Time
}

// NewGuard returns a Guard for the given source file and backup directory.
func NewGuard(source, dir string) *Guard {
	return &Guard{Source: source, Dir: dir, Clock: time.Now}
}

// Snapshot copies the source file to a timestamped backup and returns the
// backup path. A missing source is a fresh install and is not an error; the
// returned path is empty in that case. Any other failure is fail-closed.
func (g *Guard) Snapshot() (string, error) {
	if _, err := os.Stat(g.Source); os.IsNotExist(err) {
		return "", nil
	}

	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return "", fmt.Errorf("backup: create dir %s: %w: %v", g.Dir, ErrBackupFailed, err)
	}

	clock := g.Clock
	if clock == nil {
		clock = time.Now
	}
	stamp := clock().Format("20060102_150405")
	dest := filepath.Join(g.Dir, fmt.Sprintf("backup_%s%s", stamp, filepath.Ext(g.Source)))

	if err := copyFile(g.Source, dest); err != nil {
		return "", fmt.Errorf("backup: snapshot %s: %w: %v", g.Source, ErrBackupFailed, err)
	}
	return dest, nil
}

// Prune removes backup files older than the retention window. It returns
// the number of files removed.
func (g *Guard) Prune(retention time.Duration) (int, error) {
	entries, err := os.ReadDir(g.Dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("backup: read dir %s: %w", g.Dir, err)
	}

	clock := g.Clock
	if clock == nil {
		clock = time.Now
	}
	cutoff := clock().Add(-retention)

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "backup_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(g.Dir, entry.Name())); err != nil {
				return removed, fmt.Errorf("backup: prune %s: %w", entry.Name(), err)
			}
			removed++
		}
	}
	return removed, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
