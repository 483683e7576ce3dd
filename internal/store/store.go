// Package store loads and saves the server-list document. Writes go through
// a timestamped backup and a same-directory temp file with an atomic rename,
// so a crash mid-save never leaves a truncated config behind.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Options control where backups go and how many are kept per document.
type Options struct {
	BackupDir string
	Retention int // newest backups to keep; 0 keeps all
}

// timestamp layout for backup file names; sorts lexicographically.
const stampLayout = "20060102-150405.000"

// now is a variable so tests can pin backup timestamps.
var now = time.Now

// Load reads and parses the server-list document. A missing file yields an
// empty document so a fresh install still enumerates (to nothing).
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read server list '%s': %w", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse server list '%s': %w", path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// Save persists the document: back up the current file if one exists, then
// write 2-space-indented JSON with a trailing newline to a temp file next to
// the destination and rename it into place.
func Save(path string, doc map[string]any, opts Options) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal server list: %w", err)
	}
	data = append(data, '\n')

	if _, err := os.Stat(path); err == nil {
		if _, err := Backup(path, opts); err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in '%s': %w", dir, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file '%s': %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file '%s': %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace '%s': %w", path, err)
	}
	return nil
}

// Backup copies path into opts.BackupDir under a timestamped name and prunes
// entries beyond the retention count. Returns the backup's path.
func Backup(path string, opts Options) (string, error) {
	if opts.BackupDir == "" {
		return "", errors.New("backup directory not configured")
	}
	if err := os.MkdirAll(opts.BackupDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create backup directory '%s': %w", opts.BackupDir, err)
	}

	base := filepath.Base(path)
	backupPath := filepath.Join(opts.BackupDir, fmt.Sprintf("%s-%s", base, now().Format(stampLayout)))
	if err := copyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("failed to back up '%s': %w", path, err)
	}

	if opts.Retention > 0 {
		if err := prune(opts.BackupDir, base, opts.Retention); err != nil {
			return "", err
		}
	}
	return backupPath, nil
}

// LatestBackup returns the newest backup of path, or "" when none exist.
func LatestBackup(path string, opts Options) (string, error) {
	names, err := backupsOf(path, opts)
	if err != nil || len(names) == 0 {
		return "", err
	}
	return filepath.Join(opts.BackupDir, names[0]), nil
}

// Restore copies the newest backup of path over it and returns the backup
// used.
func Restore(path string, opts Options) (string, error) {
	backup, err := LatestBackup(path, opts)
	if err != nil {
		return "", err
	}
	if backup == "" {
		return "", fmt.Errorf("no backups found for '%s' in '%s'", filepath.Base(path), opts.BackupDir)
	}
	if err := copyFile(backup, path); err != nil {
		return "", fmt.Errorf("failed to restore '%s': %w", path, err)
	}
	return backup, nil
}

// backupsOf lists this document's backup file names, newest first.
func backupsOf(path string, opts Options) ([]string, error) {
	entries, err := os.ReadDir(opts.BackupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory '%s': %w", opts.BackupDir, err)
	}
	prefix := filepath.Base(path) + "-"
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

func prune(backupDir, base string, retention int) error {
	names, err := backupsOf(filepath.Join(backupDir, base), Options{BackupDir: backupDir})
	if err != nil {
		return err
	}
	for _, name := range names[min(retention, len(names)):] {
		if err := os.Remove(filepath.Join(backupDir, name)); err != nil {
			return fmt.Errorf("failed to prune backup '%s': %w", name, err)
		}
	}
	return nil
}

func copyFile(src, dst string) (err error) {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := source.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return err
	}
	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := destination.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(destination, source)
	return err
}
