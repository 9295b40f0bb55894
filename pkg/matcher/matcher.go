// Package matcher resolves a free-text query to the file that should be opened.
//
// Rules are tried in order and the first one that matches wins:
//
//  1. Literal: the query names an existing filesystem entry; it is returned unchanged.
//  2. Stem: a history entry's file name without extension equals the query.
//  3. Substring: a history entry's stem or file name contains the query and the
//     entry still exists on disk.
//  4. Fallback: the query itself.
//
// Ties in rules 2 and 3 go to the highest rank, then to the lexicographically
// smallest path. Every entry contains the empty query, so "" selects the
// highest ranked entry that still exists.
package matcher

import (
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/vimoxide/vimoxide/pkg/fsutil"
	"github.com/vimoxide/vimoxide/pkg/history"
	"github.com/vimoxide/vimoxide/pkg/logging"
)

// Rule identifies which resolution rule produced a result.
type Rule int

const (
	// RuleLiteral means the query was an existing path.
	RuleLiteral Rule = iota
	// RuleStem means a history entry's stem equals the query.
	RuleStem
	// RuleSubstring means a history entry's stem or name contains the query.
	RuleSubstring
	// RuleFallback means nothing matched and the query is returned unchanged.
	RuleFallback
)

// String returns the rule name.
func (r Rule) String() string {
	switch r {
	case RuleLiteral:
		return "literal"
	case RuleStem:
		return "stem"
	case RuleSubstring:
		return "substring"
	case RuleFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Source provides the ranked history entries to match against.
type Source interface {
	Entries() []history.Entry
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Path string
	Rule Rule
	// Rank is the history rank of Path for RuleStem and RuleSubstring.
	Rank uint64
}

// Matcher resolves queries against a history source.
type Matcher struct {
	fs     afero.Fs
	logger logrus.FieldLogger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithFs sets the filesystem used for the literal and existence checks.
func WithFs(fs afero.Fs) Option {
	return func(m *Matcher) {
		m.fs = fs
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Matcher) {
		m.logger = logging.OrDiscard(logger)
	}
}

// New returns a Matcher backed by the operating system filesystem.
func New(opts ...Option) *Matcher {
	matcher := &Matcher{
		fs:     afero.NewOsFs(),
		logger: logging.Discard(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(matcher)
		}
	}

	return matcher
}

// Resolve turns query into the path to open. It always returns a usable result.
func (m *Matcher) Resolve(source Source, query string) Resolution {
	resolution := m.resolve(source, query)

	m.logger.WithFields(logrus.Fields{
		"query": query,
		"path":  resolution.Path,
		"rule":  resolution.Rule.String(),
	}).Debug("resolved query")

	return resolution
}

func (m *Matcher) resolve(source Source, query string) Resolution {
	if fsutil.Exists(m.fs, query) {
		return Resolution{Path: query, Rule: RuleLiteral}
	}

	if source == nil {
		return Resolution{Path: query, Rule: RuleFallback}
	}

	// Entries are ordered by rank, then path, so the first hit is the tie-break winner.
	entries := source.Entries()

	for _, entry := range entries {
		if Stem(entry.Path) == query {
			return Resolution{Path: entry.Path, Rule: RuleStem, Rank: entry.Rank}
		}
	}

	for _, entry := range entries {
		name := filepath.Base(entry.Path)
		if !strings.Contains(Stem(entry.Path), query) && !strings.Contains(name, query) {
			continue
		}

		if fsutil.Exists(m.fs, entry.Path) {
			return Resolution{Path: entry.Path, Rule: RuleSubstring, Rank: entry.Rank}
		}
	}

	return Resolution{Path: query, Rule: RuleFallback}
}

// Stem returns the file name of path without its final extension.
// Dot files such as ".bashrc" keep their full name.
func Stem(path string) string {
	name := filepath.Base(path)

	ext := filepath.Ext(name)
	if ext == name {
		return name
	}

	return strings.TrimSuffix(name, ext)
}
