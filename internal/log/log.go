package log

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// OperationType names what happened to a decision record during a session.
type OperationType string

const (
	OpLoad   OperationType = "load"
	OpSelect OperationType = "select"
	OpAction OperationType = "action"
	OpCancel OperationType = "cancel"
)

// OperationLog is one journal entry. Path is the record file, or the record
// directory for OpLoad.
type OperationLog struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Type      OperationType `json:"type"`
	Path      string        `json:"path,omitempty"`
	Detail    string        `json:"detail,omitempty"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

type SessionMetadata struct {
	CommandArgs   []string  `json:"command_args"`
	WorkingDir    string    `json:"working_dir"`
	Timestamp     time.Time `json:"timestamp"`
	SessionID     string    `json:"session_id"`
	TotalOps      int       `json:"total_operations"`
	SuccessfulOps int       `json:"successful_operations"`
	FailedOps     int       `json:"failed_operations"`
}

// LogSession is one adr invocation as stored in ~/.adr/logs.
type LogSession struct {
	Metadata   SessionMetadata `json:"metadata"`
	Operations []OperationLog  `json:"operations"`
}

// tally fills the operation counters of the metadata.
func (s *LogSession) tally() {
	s.Metadata.TotalOps = len(s.Operations)
	s.Metadata.SuccessfulOps, s.Metadata.FailedOps = 0, 0
	for _, op := range s.Operations {
		if op.Success {
			s.Metadata.SuccessfulOps++
		} else {
			s.Metadata.FailedOps++
		}
	}
}

type journalState struct {
	sync.Mutex
	enabled bool
	session *LogSession
}

// state holds the session of the running command. One command runs per
// process, so a single open session is enough.
var state = journalState{enabled: true}

// StartSession opens the journal session for command. It is a no-op while
// the journal is disabled.
func StartSession(command string, args []string) error {
	state.Lock()
	defer state.Unlock()

	if !state.enabled {
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	now := time.Now()
	state.session = &LogSession{
		Metadata: SessionMetadata{
			CommandArgs: append([]string{command}, args...),
			WorkingDir:  wd,
			Timestamp:   now,
			SessionID:   fmt.Sprintf("%s_%03d", now.Format("20060102_150405"), now.Nanosecond()/1e6),
		},
		Operations: []OperationLog{},
	}
	return nil
}

// EndSession writes the open session to the journal directory and closes it.
func EndSession() error {
	state.Lock()
	defer state.Unlock()

	s := state.session
	state.session = nil
	if !state.enabled || s == nil {
		return nil
	}

	s.tally()
	return WriteSession(s)
}

// LogLoad records reading the record directory
func LogLoad(dir string, count int, err error) {
	LogOperation(OpLoad, dir, fmt.Sprintf("%d records", count), err == nil, err)
}

// LogSelect records a record chosen with Enter
func LogSelect(path string) {
	LogOperation(OpSelect, path, "", true, nil)
}

// LogAction records a record chosen with a bound action key
func LogAction(key rune, description, path string, err error) {
	LogOperation(OpAction, path, fmt.Sprintf("[%c] %s", key, description), err == nil, err)
}

// LogCancel records a table closed without a selection
func LogCancel() {
	LogOperation(OpCancel, "", "", true, nil)
}

// LogOperation appends an entry to the open session. Without one it does
// nothing.
func LogOperation(opType OperationType, path, detail string, success bool, err error) {
	state.Lock()
	defer state.Unlock()

	s := state.session
	if !state.enabled || s == nil {
		return
	}

	op := OperationLog{
		ID:        fmt.Sprintf("%s_%d", s.Metadata.SessionID, len(s.Operations)),
		Timestamp: time.Now(),
		Type:      opType,
		Path:      path,
		Detail:    detail,
		Success:   success,
	}
	if err != nil {
		op.Error = err.Error()
	}
	s.Operations = append(s.Operations, op)
}

// Initialize switches the journal on or off and prunes sessions older than
// retentionDays. Zero keeps everything.
func Initialize(enabled bool, retentionDays int) {
	state.Lock()
	defer state.Unlock()

	state.enabled = enabled
	if !enabled {
		return
	}
	if err := prune(retentionDays); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to prune journal: %v\n", err)
	}
}

// LogDir returns the journal directory
func LogDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".adr", "logs"), nil
}

// sessionPath names a new journal file. Names sort by creation time.
func sessionPath() (string, error) {
	dir, err := LogDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create journal directory: %w", err)
	}

	now := time.Now()
	name := fmt.Sprintf("%s.%03d.json", now.Format("2006-01-02_150405"), now.Nanosecond()/1e6)
	return filepath.Join(dir, name), nil
}

// WriteSession stores s as a new journal file.
func WriteSession(s *LogSession) error {
	if s == nil {
		return nil
	}

	path, err := sessionPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write journal file: %w", err)
	}
	return nil
}

func ReadSession(path string) (*LogSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal file: %w", err)
	}

	var s LogSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse journal file %s: %w", path, err)
	}
	return &s, nil
}

// logFiles returns the journal files, newest first
func logFiles() ([]string, error) {
	dir, err := LogDir()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list journal files: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

// ReadSessions returns up to limit sessions, newest first. Unreadable files
// are skipped.
func ReadSessions(limit int) ([]*LogSession, error) {
	files, err := logFiles()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	sessions := make([]*LogSession, 0, len(files))
	for _, file := range files {
		if s, err := ReadSession(file); err == nil {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}

// prune removes journal files last written before the retention window.
// The caller holds the state lock.
func prune(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}

	files, err := logFiles()
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(file); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to remove journal file %s: %v\n", file, err)
		}
	}
	return nil
}
