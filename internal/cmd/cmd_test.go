package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Digital-Shane/adr/internal/adr"
	"github.com/Digital-Shane/adr/internal/config"
	"github.com/Digital-Shane/adr/internal/tui/livetable"
	"github.com/Digital-Shane/adr/internal/tui/theme"

	"github.com/google/go-cmp/cmp"
)

const sqliteRecord = `# 1. Use SQLite

Date: 2024-01-15

## Status

Superseded by [2. Use PostgreSQL](0002-use-postgresql.md)
`

const postgresRecord = `# 2. Use PostgreSQL

Date: 2024-03-01

## Status

Accepted

Supersedes [1. Use SQLite](0001-use-sqlite.md)
`

const grpcRecord = `+++
number = 3
title = "Adopt gRPC"
status = "proposed"
date = 2024-05-20
+++

# Adopt gRPC
`

// scriptKeys replays a fixed key sequence and then reports io.EOF.
type scriptKeys struct {
	keys []livetable.Key
}

func (s *scriptKeys) ReadKey(ctx context.Context) (livetable.Key, error) {
	if err := ctx.Err(); err != nil {
		return livetable.Key{}, err
	}
	if len(s.keys) == 0 {
		return livetable.Key{}, io.EOF
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

// testEnv isolates HOME and returns a directory with three records.
func testEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	files := map[string]string{
		"0001-use-sqlite.md":     sqliteRecord,
		"0002-use-postgresql.md": postgresRecord,
		"0003-adopt-grpc.md":     grpcRecord,
		"README.md":              "# Decisions\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
	}
	return dir
}

// scriptSession routes the table through keys instead of the terminal.
func scriptSession(t *testing.T, keys ...livetable.Key) {
	t.Helper()
	keySource = &scriptKeys{keys: keys}
	t.Cleanup(func() {
		keySource = nil
		frameSink = nil
	})
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func TestListPlain(t *testing.T) {
	dir := testEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "all records",
			args: []string{"list", "--plain", "--no-log", "--dir", dir},
			want: "   1  superseded    2024-01-15  Use SQLite\n" +
				"   2  accepted      2024-03-01  Use PostgreSQL\n" +
				"   3  proposed      2024-05-20  Adopt gRPC\n",
		},
		{
			name: "status filter",
			args: []string{"list", "--plain", "--no-log", "--dir", dir, "--status", "Accepted"},
			want: "   2  accepted      2024-03-01  Use PostgreSQL\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("execute() error = %v, stderr = %q", err, stderr)
			}
			if diff := cmp.Diff(tt.want, stdout); diff != "" {
				t.Errorf("stdout mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListNoMatches(t *testing.T) {
	dir := testEnv(t)

	stdout, stderr, err := execute(t, "list", "--no-log", "--dir", dir, "--status", "rejected")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "No decision records found in "+dir) {
		t.Errorf("stderr = %q, want no records message", stderr)
	}
}

func TestListMissingDirectory(t *testing.T) {
	testEnv(t)

	_, _, err := execute(t, "list", "--plain", "--no-log", "--dir", filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("execute() error = nil, want missing directory error")
	}
}

func TestListInteractive(t *testing.T) {
	dir := testEnv(t)
	down := livetable.Key{Code: livetable.KeyDown}
	enter := livetable.Key{Code: livetable.KeyEnter}

	tests := []struct {
		name string
		keys []livetable.Key
		want string
	}{
		{
			name: "enter prints the path",
			keys: []livetable.Key{down, enter},
			want: filepath.Join(dir, "0002-use-postgresql.md") + "\n",
		},
		{
			name: "describe",
			keys: []livetable.Key{livetable.RuneKey('i')},
			want: "Number:        1\n" +
				"Title:         Use SQLite\n" +
				"Status:        superseded\n" +
				"Date:          2024-01-15\n" +
				"Path:          " + filepath.Join(dir, "0001-use-sqlite.md") + "\n" +
				"Superseded by: 2\n",
		},
		{
			name: "supersede chain",
			keys: []livetable.Key{down, livetable.RuneKey('s')},
			want: "1. Use SQLite (superseded)\n",
		},
		{
			name: "unlinked record",
			keys: []livetable.Key{down, down, livetable.RuneKey('s')},
			want: "3. Adopt gRPC is not linked to any other record\n",
		},
		{
			name: "view",
			keys: []livetable.Key{down, down, livetable.RuneKey('v')},
			want: grpcRecord,
		},
		{
			name: "cancel",
			keys: []livetable.Key{down, livetable.RuneKey('q')},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scriptSession(t, tt.keys...)

			stdout, stderr, err := execute(t, "list", "--no-log", "--dir", dir)
			if err != nil {
				t.Fatalf("execute() error = %v, stderr = %q", err, stderr)
			}
			if diff := cmp.Diff(tt.want, stdout); diff != "" {
				t.Errorf("stdout mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListOpenInEditor(t *testing.T) {
	dir := testEnv(t)
	scriptSession(t, livetable.RuneKey('o'))

	var opened []string
	orig := openInEditor
	openInEditor = func(path string) error {
		opened = append(opened, path)
		return nil
	}
	t.Cleanup(func() { openInEditor = orig })

	if _, stderr, err := execute(t, "list", "--no-log", "--dir", dir); err != nil {
		t.Fatalf("execute() error = %v, stderr = %q", err, stderr)
	}
	want := []string{filepath.Join(dir, "0001-use-sqlite.md")}
	if diff := cmp.Diff(want, opened); diff != "" {
		t.Errorf("opened mismatch (-want +got):\n%s", diff)
	}
}

func TestListInputFailure(t *testing.T) {
	dir := testEnv(t)
	scriptSession(t)

	_, _, err := execute(t, "list", "--no-log", "--dir", dir)
	if err == nil {
		t.Fatal("execute() error = nil, want input error")
	}
}

func TestListWritesJournal(t *testing.T) {
	dir := testEnv(t)
	scriptSession(t, livetable.Key{Code: livetable.KeyEnter})

	if _, stderr, err := execute(t, "list", "--dir", dir); err != nil {
		t.Fatalf("list error = %v, stderr = %q", err, stderr)
	}

	stdout, stderr, err := execute(t, "journal", "--plain")
	if err != nil {
		t.Fatalf("journal error = %v, stderr = %q", err, stderr)
	}
	want := "selected " + filepath.Join(dir, "0001-use-sqlite.md")
	if !strings.Contains(stdout, want) {
		t.Errorf("journal output = %q, want it to contain %q", stdout, want)
	}
}

func TestJournalEmpty(t *testing.T) {
	testEnv(t)

	stdout, _, err := execute(t, "journal")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if diff := cmp.Diff("No journal sessions found.\n", stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigShowsEffectiveSettings(t *testing.T) {
	testEnv(t)

	stdout, _, err := execute(t, "config", "--page-size", "7", "--legacy-paging", "--dir", "records")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	header, body, ok := strings.Cut(stdout, "\n")
	if !ok {
		t.Fatalf("stdout = %q, want path header and JSON body", stdout)
	}
	path, _ := config.ConfigPath()
	if header != "# "+path {
		t.Errorf("header = %q, want %q", header, "# "+path)
	}

	var got config.Config
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := config.DefaultConfig()
	want.Dir = "records"
	want.PageSize = 7
	want.Paging = "legacy"
	if diff := cmp.Diff(want, &got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLegacyPagingFlag(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		args   []string
		want   string
	}{
		{name: "config value kept", stored: "legacy", want: "legacy"},
		{name: "flag enables legacy", stored: "strict", args: []string{"--legacy-paging"}, want: "legacy"},
		{name: "flag switches legacy off", stored: "legacy", args: []string{"--legacy-paging=false"}, want: "strict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testEnv(t)
			stored := config.DefaultConfig()
			stored.Paging = tt.stored
			if err := stored.Save(); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			stdout, _, err := execute(t, append([]string{"config"}, tt.args...)...)
			if err != nil {
				t.Fatalf("execute() error = %v", err)
			}
			_, body, _ := strings.Cut(stdout, "\n")
			var got config.Config
			if err := json.Unmarshal([]byte(body), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got.Paging != tt.want {
				t.Errorf("paging = %q, want %q", got.Paging, tt.want)
			}
		})
	}
}

func TestConfigRejectsInvalidFlags(t *testing.T) {
	testEnv(t)

	if _, _, err := execute(t, "config", "--page-size", "-1"); err == nil {
		t.Error("execute() error = nil, want invalid settings error")
	}
}

func TestConfigInit(t *testing.T) {
	testEnv(t)

	stdout, _, err := execute(t, "config", "init")
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	path, _ := config.ConfigPath()
	if diff := cmp.Diff("Wrote "+path+"\n", stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Stat() error = %v", err)
	}

	if _, _, err := execute(t, "config", "init"); err == nil {
		t.Error("second config init error = nil, want already exists")
	}
	if _, _, err := execute(t, "config", "init", "--force"); err != nil {
		t.Errorf("config init --force error = %v", err)
	}
}

func TestStatusCell(t *testing.T) {
	th := theme.Default()

	tests := []struct {
		status string
		icon   string
	}{
		{status: "accepted", icon: th.Icon("accepted")},
		{status: "superseded", icon: th.Icon("superseded")},
		{status: "withdrawn", icon: th.Icon("unknown")},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := statusCell(th, tt.status)
			if !strings.HasPrefix(got, tt.icon+" ") {
				t.Errorf("statusCell(%q) = %q, want icon %q", tt.status, got, tt.icon)
			}
			if !strings.Contains(got, tt.status) {
				t.Errorf("statusCell(%q) = %q, want status text", tt.status, got)
			}
		})
	}
}

func TestDescribeOmitsEmptyFields(t *testing.T) {
	got := describe(adr.Record{Number: 4, Title: "Drop Redis", Status: "draft", Path: "0004.md"})
	want := "Number:        4\n" +
		"Title:         Drop Redis\n" +
		"Status:        draft\n" +
		"Path:          0004.md\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("describe() mismatch (-want +got):\n%s", diff)
	}
}
