package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Rotator is an io.Writer that rotates the underlying file by size and
// prunes backups by count and age, optionally gzip-compressing them.
type Rotator struct {
	mu          sync.Mutex
	baseDir     string
	baseName    string
	maxSize     int64
	maxAge      time.Duration
	maxBackups  int
	compress    bool
	currentFile *os.File
	currentSize int64
}

// RotatorConfig bundles the rotation knobs, mirroring the config schema's
// logging section.
type RotatorConfig struct {
	Dir        string
	BaseName   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewRotator opens (or creates) baseDir/baseName for append, ready to rotate.
func NewRotator(cfg RotatorConfig) (*Rotator, error) {
	if cfg.BaseName == "" {
		cfg.BaseName = "wm.log"
	}
	r := &Rotator{
		baseDir:    cfg.Dir,
		baseName:   cfg.BaseName,
		maxSize:    int64(cfg.MaxSizeMB) * 1024 * 1024,
		maxAge:     time.Duration(cfg.MaxAgeDays) * 24 * time.Hour,
		maxBackups: cfg.MaxBackups,
		compress:   cfg.Compress,
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	if err := r.openCurrent(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rotator) path() string { return filepath.Join(r.baseDir, r.baseName) }

func (r *Rotator) openCurrent() error {
	p := r.path()
	if info, err := os.Stat(p); err == nil {
		r.currentSize = info.Size()
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	r.currentFile = f
	return nil
}

// Write implements io.Writer, rotating before the write would exceed maxSize.
func (r *Rotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrent(); err != nil {
			return 0, err
		}
	}

	if r.maxSize > 0 && r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

func (r *Rotator) rotate() error {
	if r.currentFile != nil {
		if err := r.currentFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "logging: close current log file: %v\n", err)
		}
		r.currentFile = nil
	}

	stamp := time.Now().Format("20060102-150405")
	rotated := filepath.Join(r.baseDir, fmt.Sprintf("%s.%s", r.baseName, stamp))
	if err := os.Rename(r.path(), rotated); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rotate log file: %w", err)
	}

	if r.compress {
		if err := r.compressFile(rotated); err != nil {
			fmt.Fprintf(os.Stderr, "logging: compress rotated log: %v\n", err)
		}
	}

	r.currentSize = 0
	if err := r.prune(); err != nil {
		fmt.Fprintf(os.Stderr, "logging: prune rotated logs: %v\n", err)
	}
	return r.openCurrent()
}

func (r *Rotator) compressFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	gzPath := path + ".gz"
	out, err := os.Create(gzPath)
	if err != nil {
		return err
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	if _, err := gw.Write(data); err != nil {
		return err
	}
	if err := gw.Close(); err != nil {
		return err
	}
	return os.Remove(path)
}

func (r *Rotator) prune() error {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return err
	}

	type backup struct {
		path    string
		modTime time.Time
	}
	var backups []backup
	prefix := r.baseName + "."
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backup{path: filepath.Join(r.baseDir, e.Name()), modTime: info.ModTime()})
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].modTime.After(backups[j].modTime) })

	var errs []string
	now := time.Now()
	for i, b := range backups {
		expired := r.maxAge > 0 && now.Sub(b.modTime) > r.maxAge
		excess := r.maxBackups > 0 && i >= r.maxBackups
		if expired || excess {
			if err := os.Remove(b.path); err != nil {
				errs = append(errs, err.Error())
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("prune failures: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Close flushes and closes the current file.
func (r *Rotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.currentFile == nil {
		return nil
	}
	err := r.currentFile.Close()
	r.currentFile = nil
	return err
}

var _ io.WriteCloser = (*Rotator)(nil)
