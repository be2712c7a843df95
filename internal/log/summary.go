package log

import (
	"fmt"
	"time"
)

// SessionSummary is one journal session prepared for listing.
type SessionSummary struct {
	Session      *LogSession
	FilePath     string
	RelativeTime string
	Icon         string
}

// Outcome describes how the session ended, based on its last operation.
func (s SessionSummary) Outcome() string {
	ops := s.Session.Operations
	for i := len(ops) - 1; i >= 0; i-- {
		switch ops[i].Type {
		case OpSelect:
			return "selected " + ops[i].Path
		case OpAction:
			return ops[i].Detail + " " + ops[i].Path
		case OpCancel:
			return "cancelled"
		}
	}
	return "no selection"
}

// GetSessionSummaries returns up to limit sessions, newest first. A limit of
// zero returns all of them.
func GetSessionSummaries(limit int) ([]SessionSummary, error) {
	files, err := logFiles()
	if err != nil {
		return nil, err
	}

	summaries := make([]SessionSummary, 0, len(files))
	for _, file := range files {
		if limit > 0 && len(summaries) == limit {
			break
		}
		session, err := ReadSession(file)
		if err != nil {
			continue
		}

		summaries = append(summaries, SessionSummary{
			Session:      session,
			FilePath:     file,
			RelativeTime: formatRelativeTime(session.Metadata.Timestamp),
			Icon:         getCommandIcon(session.Metadata.CommandArgs),
		})
	}

	return summaries, nil
}

func formatRelativeTime(t time.Time) string {
	duration := time.Since(t)
	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		mins := int(duration.Minutes())
		return fmt.Sprintf("%d minute%s ago", mins, plural(mins))
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func getCommandIcon(args []string) string {
	if len(args) == 0 {
		return "❓"
	}

	switch args[0] {
	case "list":
		return "📋"
	case "journal":
		return "📓"
	case "config":
		return "⚙️"
	default:
		return "📝"
	}
}
