// Package adr reads architecture decision records from a directory of
// markdown files.
package adr

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrNotRecord is returned by Parse for markdown files that carry no record
// number in their front matter, heading or file name.
var ErrNotRecord = errors.New("not a decision record")

// Record is one architecture decision.
type Record struct {
	Number       int
	Title        string
	Status       string
	Date         string
	Path         string
	Supersedes   []int
	SupersededBy []int
}

// ID returns the zero padded record number used in file names.
func (r Record) ID() string {
	return fmt.Sprintf("%04d", r.Number)
}

func (r Record) String() string {
	return fmt.Sprintf("%d. %s", r.Number, r.Title)
}

// frontMatter is the optional TOML block delimited by "+++" lines.
type frontMatter struct {
	Number       int    `toml:"number"`
	Title        string `toml:"title"`
	Status       string `toml:"status"`
	Date         any    `toml:"date"`
	Supersedes   []int  `toml:"supersedes"`
	SupersededBy []int  `toml:"superseded_by"`
}

const fence = "+++"

var (
	headingPattern      = regexp.MustCompile(`^#\s+(?:(\d+)\.\s*)?(.+?)\s*$`)
	fileNumberPattern   = regexp.MustCompile(`^(\d+)`)
	supersedesPattern   = regexp.MustCompile(`(?i)\bsupersedes\s+\[(\d+)`)
	supersededByPattern = regexp.MustCompile(`(?i)\bsuperseded\s+by\s+\[(\d+)`)
)

// Parse reads a record from the contents of the file at path. Front matter
// values win over values found in the markdown body.
func Parse(path string, data []byte) (Record, error) {
	rec := Record{Path: path}

	body := data
	fm, rest, err := splitFrontMatter(data)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}
	if fm != nil {
		var meta frontMatter
		if err := toml.Unmarshal(fm, &meta); err != nil {
			return Record{}, fmt.Errorf("%s: failed to parse front matter: %w", path, err)
		}
		rec.Number = meta.Number
		rec.Title = strings.TrimSpace(meta.Title)
		rec.Status = normalizeStatus(meta.Status)
		if meta.Date != nil {
			rec.Date = fmt.Sprint(meta.Date)
		}
		rec.Supersedes = slices.Clone(meta.Supersedes)
		rec.SupersededBy = slices.Clone(meta.SupersededBy)
		body = rest
	}

	parseBody(&rec, body)

	if rec.Number == 0 {
		if m := fileNumberPattern.FindStringSubmatch(filepath.Base(path)); m != nil {
			rec.Number, _ = strconv.Atoi(m[1])
		}
	}
	if rec.Number == 0 {
		return Record{}, fmt.Errorf("%s: %w", path, ErrNotRecord)
	}
	if rec.Title == "" {
		rec.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if rec.Status == "" {
		rec.Status = "unknown"
	}
	return rec, nil
}

// splitFrontMatter returns the TOML block and the remaining body. A file
// without an opening fence has no front matter.
func splitFrontMatter(data []byte) (fm, body []byte, err error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if !bytes.HasPrefix(data, []byte(fence+"\n")) && !bytes.HasPrefix(data, []byte(fence+"\r\n")) {
		return nil, data, nil
	}
	_, after, _ := bytes.Cut(data, []byte("\n"))

	for rest := after; len(rest) > 0; {
		line, tail, _ := bytes.Cut(rest, []byte("\n"))
		if string(bytes.TrimSpace(line)) == fence {
			return after[:len(after)-len(rest)], tail, nil
		}
		rest = tail
	}
	return nil, nil, errors.New("unterminated front matter")
}

// parseBody fills the fields still missing from rec using the Nygard layout:
// a "# N. Title" heading, a "Date:" line and a "## Status" section whose
// first word is the status.
func parseBody(rec *Record, body []byte) {
	var (
		status     []string
		inStatus   bool
		seenTitle  bool
		seenStatus bool
	)

	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		if inStatus {
			switch {
			case line == "":
				continue
			case strings.HasPrefix(line, "#"):
				inStatus = false
			default:
				status = append(status, line)
				continue
			}
		}

		switch {
		case !seenTitle && strings.HasPrefix(line, "# "):
			seenTitle = true
			m := headingPattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if rec.Number == 0 && m[1] != "" {
				rec.Number, _ = strconv.Atoi(m[1])
			}
			if rec.Title == "" {
				rec.Title = m[2]
			}
		case rec.Date == "" && strings.HasPrefix(line, "Date:"):
			rec.Date = strings.TrimSpace(strings.TrimPrefix(line, "Date:"))
		case !seenStatus && strings.EqualFold(line, "## Status"):
			seenStatus = true
			inStatus = true
		}
	}

	paragraph := strings.Join(status, " ")
	if rec.Status == "" && len(status) > 0 {
		word, _, _ := strings.Cut(status[0], " ")
		rec.Status = normalizeStatus(word)
	}
	if len(rec.Supersedes) == 0 {
		rec.Supersedes = links(supersedesPattern, paragraph)
	}
	if len(rec.SupersededBy) == 0 {
		rec.SupersededBy = links(supersededByPattern, paragraph)
	}
}

func links(re *regexp.Regexp, text string) []int {
	var out []int
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

func normalizeStatus(s string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(s), ".,:;"))
}
