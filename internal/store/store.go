// Package store keeps task documents as individual files in a directory.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/tickler/internal/logging"
	"github.com/nibzard/tickler/internal/task"
)

// DefaultPattern matches every task document format.
const DefaultPattern = "*.{json,yaml,yml}"

// DefaultLockTimeout bounds how long Save waits for the directory lock.
const DefaultLockTimeout = 2 * time.Second

const tempPrefix = ".tickler-"

// Entry is a successfully loaded task file.
type Entry struct {
	Path     string
	Task     task.Task
	Migrated bool
}

// Failure is a task file that could not be loaded.
type Failure struct {
	Path string
	Err  error
}

// Store is a directory of task documents.
type Store struct {
	dir         string
	pattern     string
	format      task.Format
	locking     bool
	lockTimeout time.Duration
	logger      *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPattern sets the discovery glob, relative to the directory.
func WithPattern(pattern string) Option {
	return func(s *Store) { s.pattern = pattern }
}

// WithFormat sets the format used for newly created documents.
func WithFormat(format task.Format) Option {
	return func(s *Store) { s.format = format }
}

// WithLocking enables or disables the advisory write lock.
func WithLocking(enabled bool) Option {
	return func(s *Store) { s.locking = enabled }
}

// WithLockTimeout sets how long a write waits for the lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) { s.lockTimeout = d }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New returns a Store rooted at dir. The directory does not have to exist
// until the first write.
func New(dir string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("tasks directory is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, ioError("resolve", dir, err)
	}

	s := &Store{
		dir:         abs,
		pattern:     DefaultPattern,
		format:      task.FormatJSON,
		locking:     true,
		lockTimeout: DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if !doublestar.ValidatePattern(s.pattern) {
		return nil, fmt.Errorf("invalid task file pattern %q", s.pattern)
	}
	if _, err := task.ParseFormat(string(s.format)); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the absolute tasks directory.
func (s *Store) Dir() string {
	return s.dir
}

// Format returns the format used for new documents.
func (s *Store) Format() task.Format {
	return s.format
}

// Files lists the task files matching the pattern, sorted by name. A missing
// directory has no files.
func (s *Store) Files() ([]string, error) {
	if _, err := os.Stat(s.dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, ioError("stat", s.dir, err)
	}

	matches, err := doublestar.Glob(os.DirFS(s.dir), s.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, ioError("glob", filepath.Join(s.dir, s.pattern), err)
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		if strings.HasPrefix(filepath.Base(match), ".") {
			continue
		}
		files = append(files, filepath.Join(s.dir, filepath.FromSlash(match)))
	}
	sort.Strings(files)
	s.logger.Debug("Discovered task files", "dir", s.dir, "pattern", s.pattern, "count", len(files))
	return files, nil
}

// Resolve turns a user-supplied file argument into a path. Bare names are
// looked up in the tasks directory, with or without an extension.
func (s *Store) Resolve(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("no task file given")
	}

	candidates := []string{name}
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, os.PathSeparator) {
		candidates = []string{filepath.Join(s.dir, name)}
		if _, ok := task.FormatFor(name); !ok {
			for _, ext := range []string{".json", ".yaml", ".yml"} {
				candidates = append(candidates, filepath.Join(s.dir, name+ext))
			}
		}
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return filepath.Abs(candidate)
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", ioError("stat", candidate, err)
		}
	}
	return "", ioError("open", candidates[0], fs.ErrNotExist)
}

// Load reads and decodes one task file.
func (s *Store) Load(path string) (task.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return task.Document{}, ioError("read", path, err)
	}
	doc, err := task.Decode(data, s.formatOf(path))
	if err != nil {
		return task.Document{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if doc.Migrated {
		s.logger.Debug("Migrated legacy task document", "path", path)
	}
	return doc, nil
}

// LoadAll loads every task file. Files that fail to load are reported as
// failures and never abort the scan; the error is only for discovery.
func (s *Store) LoadAll() ([]Entry, []Failure, error) {
	files, err := s.Files()
	if err != nil {
		return nil, nil, err
	}

	var entries []Entry
	var failures []Failure
	for _, path := range files {
		doc, err := s.Load(path)
		if err != nil {
			s.logger.Warn("Skipping task file", "path", path, "error", err)
			failures = append(failures, Failure{Path: path, Err: err})
			continue
		}
		entries = append(entries, Entry{Path: path, Task: doc.Task, Migrated: doc.Migrated})
	}
	return entries, failures, nil
}

// Save writes t to path atomically: the document goes to a temp file in
// the same directory which is then renamed over path.
func (s *Store) Save(path string, t task.Task) error {
	data, err := task.Encode(t, s.formatOf(path))
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return ioError("create", s.dir, err)
	}
	return s.withLock(func() error {
		return writeAtomic(path, data)
	})
}

// Create saves t under a new filename derived from its name.
func (s *Store) Create(t task.Task) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	path, err := s.UniquePath(t.Name(), "")
	if err != nil {
		return "", err
	}
	if err := s.Save(path, t); err != nil {
		return "", err
	}
	s.logger.Debug("Created task file", "path", path)
	return path, nil
}

// UniquePath returns the path a task called name should live at, adding a
// numeric suffix (_1, _2, ...) while the candidate belongs to another file.
// current is the task's existing path, if any; it never counts as a
// collision. The extension follows current, or the store format for new
// files.
func (s *Store) UniquePath(name, current string) (string, error) {
	base := SanitizeFilename(name)
	ext := s.format.Ext()
	if current != "" {
		if e := filepath.Ext(current); e != "" {
			ext = e
		}
	}

	candidate := filepath.Join(s.dir, base+ext)
	for i := 1; ; i++ {
		if samePath(candidate, current) {
			return candidate, nil
		}
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", ioError("stat", candidate, err)
		}
		candidate = filepath.Join(s.dir, fmt.Sprintf("%s_%d%s", base, i, ext))
	}
}

// Rename moves the task stored at oldPath to the filename derived from its
// (new) name and returns the new path. The new file is written before the
// old one is removed, so a failure leaves the old file in place.
func (s *Store) Rename(oldPath string, t task.Task) (string, error) {
	newPath, err := s.UniquePath(t.Name(), oldPath)
	if err != nil {
		return "", err
	}
	if samePath(newPath, oldPath) {
		return oldPath, s.Save(oldPath, t)
	}
	if err := s.Save(newPath, t); err != nil {
		return "", err
	}
	if err := os.Remove(oldPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		// Drop the copy so the task is not duplicated.
		_ = os.Remove(newPath)
		return "", ioError("remove", oldPath, err)
	}
	s.logger.Debug("Renamed task file", "from", oldPath, "to", newPath)
	return newPath, nil
}

// Delete removes a task file.
func (s *Store) Delete(path string) error {
	err := s.withLock(func() error {
		return os.Remove(path)
	})
	if err != nil {
		var pe *PathError
		if errors.As(err, &pe) {
			return err
		}
		return ioError("remove", path, err)
	}
	return nil
}

func (s *Store) formatOf(path string) task.Format {
	if f, ok := task.FormatFor(path); ok {
		return f
	}
	return s.format
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, tempPrefix+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		_ = os.Remove(tmp)
		return ioError("write", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return ioError("write", path, err)
	}
	return nil
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
