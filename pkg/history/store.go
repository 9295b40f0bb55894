package history

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/vimoxide/vimoxide/pkg/fsutil"
	"github.com/vimoxide/vimoxide/pkg/logging"
	"golang.org/x/sync/errgroup"
)

const (
	// maxLineBytes bounds a single history record.
	maxLineBytes = 1 << 20
	// pruneConcurrency bounds concurrent existence checks during Prune.
	pruneConcurrency = 8
)

// Entry is the access rank of one canonical path.
type Entry struct {
	Path string
	Rank uint64
}

// Store is the in-memory history table. It is not safe for concurrent use.
type Store struct {
	entries      map[string]Entry
	fs           afero.Fs
	canonicalize fsutil.Canonicalizer
	logger       logrus.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem used for existence checks, loading and saving.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) {
		s.fs = fs
	}
}

// WithCanonicalizer sets how paths are turned into history keys.
func WithCanonicalizer(canonicalize fsutil.Canonicalizer) Option {
	return func(s *Store) {
		s.canonicalize = canonicalize
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Store) {
		s.logger = logging.OrDiscard(logger)
	}
}

// New returns an empty store backed by the operating system filesystem.
func New(opts ...Option) *Store {
	store := &Store{
		entries:      make(map[string]Entry),
		fs:           afero.NewOsFs(),
		canonicalize: fsutil.Canonicalize,
		logger:       logging.Discard(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}

	return store
}

// Load reads the history table at path.
// A missing or unreadable file yields an empty store; malformed and over-long lines are skipped.
func Load(path string, opts ...Option) *Store {
	store := New(opts...)

	file, err := store.fs.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			store.logger.WithError(err).WithField("path", path).Warn("ignoring unreadable history")
		}

		return store
	}

	defer func() { _ = file.Close() }()

	err = store.read(file)
	if err != nil {
		store.logger.WithError(err).WithField("path", path).Warn("ignoring unreadable history")

		return New(opts...)
	}

	return store
}

// Read builds a store from a serialized history table.
// Malformed and over-long lines are skipped; a read failure yields an empty store and the error.
func Read(r io.Reader, opts ...Option) (*Store, error) {
	store := New(opts...)

	err := store.read(r)
	if err != nil {
		return New(opts...), err
	}

	return store, nil
}

func (s *Store) read(r io.Reader) error {
	entries, err := decode(r, func(line int, err error) {
		s.logger.WithError(err).WithField("line", line).Debug("skipping malformed history line")
	})
	if err != nil {
		return err
	}

	for _, entry := range entries {
		s.entries[entry.Path] = entry
	}

	return nil
}

// Increment records one successful open of path.
//
// The path is canonicalized first. Paths that do not exist are not recorded and
// Increment reports false.
func (s *Store) Increment(path string) bool {
	key, ok := s.key(path)
	if !ok {
		s.logger.WithField("path", path).Debug("not recording nonexistent path")

		return false
	}

	entry := s.entries[key]
	entry.Path = key
	entry.Rank++
	s.entries[key] = entry

	return true
}

// Rank returns the rank recorded for path.
func (s *Store) Rank(path string) (uint64, bool) {
	entry, ok := s.lookup(path)

	return entry.Rank, ok
}

// Remove forgets path. It reports whether an entry was removed.
func (s *Store) Remove(path string) bool {
	entry, ok := s.lookup(path)
	if !ok {
		return false
	}

	delete(s.entries, entry.Path)

	return true
}

// Len returns the number of tracked paths.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns all entries ordered by rank, highest first, then by path.
func (s *Store) Entries() []Entry {
	entries := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if byRank := cmp.Compare(b.Rank, a.Rank); byRank != 0 {
			return byRank
		}

		return cmp.Compare(a.Path, b.Path)
	})

	return entries
}

// Exists reports whether path exists on the store's filesystem.
func (s *Store) Exists(path string) bool {
	return fsutil.Exists(s.fs, path)
}

// Prune removes entries whose path no longer exists and returns them.
func (s *Store) Prune(ctx context.Context) ([]Entry, error) {
	entries := s.Entries()
	missing := make([]bool, len(entries))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(pruneConcurrency)

	for i, entry := range entries {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			missing[i] = !s.Exists(entry.Path)

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("check history entries: %w", err)
	}

	var removed []Entry

	for i, entry := range entries {
		if missing[i] {
			delete(s.entries, entry.Path)
			removed = append(removed, entry)
		}
	}

	return removed, nil
}

// Encode writes the table as JSON Lines sorted by path.
func (s *Store) Encode(w io.Writer) error {
	entries := s.Entries()
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Path, b.Path)
	})

	return encode(w, entries)
}

// Save replaces the history table at path with the store's contents.
func (s *Store) Save(path string) error {
	var buf bytes.Buffer

	err := s.Encode(&buf)
	if err != nil {
		return err
	}

	err = fsutil.WriteFileAtomic(s.fs, path, buf.Bytes())
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}

	return nil
}

// key returns the canonical key for an existing path.
func (s *Store) key(path string) (string, bool) {
	if path == "" {
		return "", false
	}

	key, err := s.canonicalize(path)
	if err != nil || !s.Exists(key) {
		return "", false
	}

	return key, true
}

// lookup finds path verbatim first, then by its canonical form.
func (s *Store) lookup(path string) (Entry, bool) {
	if entry, ok := s.entries[path]; ok {
		return entry, true
	}

	key, err := s.canonicalize(path)
	if err != nil {
		return Entry{}, false
	}

	entry, ok := s.entries[key]

	return entry, ok
}
