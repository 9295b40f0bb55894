package history

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const legacySeparator = "\t"

var (
	errEmptyPath   = errors.New("empty path")
	errLegacyField = errors.New("expected <path>\\t<rank>")
	errLineTooLong = fmt.Errorf("line exceeds %d bytes", maxLineBytes)
)

// record is the on-disk form of an Entry.
// Paths that are not valid UTF-8 are stored base64 encoded in PathB64.
type record struct {
	Path    string `json:"path,omitempty"`
	PathB64 string `json:"path_b64,omitempty"`
	Rank    uint64 `json:"rank"`
}

func newRecord(entry Entry) record {
	if utf8.ValidString(entry.Path) {
		return record{Path: entry.Path, Rank: entry.Rank}
	}

	return record{PathB64: base64.StdEncoding.EncodeToString([]byte(entry.Path)), Rank: entry.Rank}
}

func (r record) entry() (Entry, error) {
	path := r.Path

	if r.PathB64 != "" {
		raw, err := base64.StdEncoding.DecodeString(r.PathB64)
		if err != nil {
			return Entry{}, fmt.Errorf("decode path_b64: %w", err)
		}

		path = string(raw)
	}

	if path == "" {
		return Entry{}, errEmptyPath
	}

	return Entry{Path: path, Rank: r.Rank}, nil
}

// decode reads records from r, calling skip for every line that cannot be parsed.
// Lines longer than maxLineBytes are skipped without being buffered whole.
func decode(r io.Reader, skip func(line int, err error)) ([]Entry, error) {
	reader := bufio.NewReaderSize(r, maxLineBytes)

	var entries []Entry

	lineNumber := 0
	for {
		line, err := reader.ReadSlice('\n')

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			lineNumber++
			skip(lineNumber, errLineTooLong)

			err = discardLine(reader)
		case len(bytes.TrimSpace(line)) > 0:
			lineNumber++

			entry, lineErr := decodeLine(bytes.TrimSuffix(line, []byte("\n")))
			if lineErr != nil {
				skip(lineNumber, lineErr)
			} else {
				entries = append(entries, entry)
			}
		case len(line) > 0:
			lineNumber++
		}

		if errors.Is(err, io.EOF) {
			return entries, nil
		}

		if err != nil {
			return entries, fmt.Errorf("read history: %w", err)
		}
	}
}

// discardLine consumes the rest of the current line.
func discardLine(reader *bufio.Reader) error {
	for {
		_, err := reader.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
}

func decodeLine(line []byte) (Entry, error) {
	if line[0] == '{' {
		var rec record

		err := json.Unmarshal(line, &rec)
		if err != nil {
			return Entry{}, fmt.Errorf("decode record: %w", err)
		}

		return rec.entry()
	}

	return decodeLegacyLine(string(line))
}

// decodeLegacyLine parses the tab separated format. Lines must have exactly two fields.
func decodeLegacyLine(line string) (Entry, error) {
	fields := strings.Split(strings.TrimSuffix(line, "\r"), legacySeparator)
	if len(fields) != 2 {
		return Entry{}, errLegacyField
	}

	if fields[0] == "" {
		return Entry{}, errEmptyPath
	}

	rank, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parse rank: %w", err)
	}

	return Entry{Path: fields[0], Rank: rank}, nil
}

// encode writes one JSON object per entry, in the given order.
func encode(w io.Writer, entries []Entry) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)

	for _, entry := range entries {
		err := encoder.Encode(newRecord(entry))
		if err != nil {
			return fmt.Errorf("encode %s: %w", entry.Path, err)
		}
	}

	return nil
}
