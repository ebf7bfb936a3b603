// ABOUTME: JSONL session persistence with append-only writes
// ABOUTME: Reads line-by-line with bufio.Scanner; crash-safe via O_APPEND

package session

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/mauromedda/cognichat-go/internal/config"
)

// RecordType identifies the type of JSONL record.
type RecordType string

const (
	RecordSessionStart RecordType = "session_start"
	RecordUser         RecordType = "user"
	RecordAssistant    RecordType = "assistant"
	RecordModeChange   RecordType = "mode_change"
	RecordSessionEnd   RecordType = "session_end"
)

const recordVersion = 1

// Record is the envelope for all JSONL entries.
type Record struct {
	Version int             `json:"v"`
	Type    RecordType      `json:"type"`
	TS      string          `json:"ts"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Time parses TS. A malformed timestamp yields the zero time.
func (r Record) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, r.TS)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SessionStartData holds session_start metadata.
type SessionStartData struct {
	ID   string `json:"id"`
	Mode string `json:"mode"`
	CWD  string `json:"cwd,omitempty"`
}

// UserData holds a user turn.
type UserData struct {
	Content string `json:"content"`
}

// AssistantData holds an assistant turn and the decisions behind it.
type AssistantData struct {
	Content     string `json:"content"`
	Mode        string `json:"mode"`
	TemplateKey string `json:"template_key,omitempty"`
	Strategy    string `json:"strategy,omitempty"`
}

// ModeChangeData records a mode switch mid-session.
type ModeChangeData struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SessionEndData closes a session.
type SessionEndData struct {
	Turns int `json:"turns"`
}

// Path returns the transcript path for sessionID under dir.
func Path(dir, sessionID string) string {
	return filepath.Join(dir, sessionID+".jsonl")
}

// Writer appends records to a session JSONL file.
type Writer struct {
	file *os.File
	now  func() time.Time
}

// NewWriter opens (or creates) the transcript for sessionID under dir.
func NewWriter(dir, sessionID string) (*Writer, error) {
	if err := config.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("creating sessions dir: %w", err)
	}

	f, err := os.OpenFile(Path(dir, sessionID), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening session file: %w", err)
	}

	return &Writer{file: f, now: time.Now}, nil
}

// WriteRecord appends a record to the session file.
func (w *Writer) WriteRecord(recType RecordType, data any) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling record data: %w", err)
	}

	rec := Record{
		Version: recordVersion,
		Type:    recType,
		TS:      w.now().UTC().Format(time.RFC3339Nano),
		Data:    dataBytes,
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	line = append(line, '\n')
	if _, err := w.file.Write(line); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// Close closes the session file.
func (w *Writer) Close() error {
	return w.file.Close()
}

// ReadRecords reads all records from a session file. Malformed lines are
// skipped so a torn final write does not lose the rest of the transcript.
func ReadRecords(dir, sessionID string) ([]Record, error) {
	return ReadFile(Path(dir, sessionID))
}

// ReadFile reads all records from the transcript at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening session %s: %w", path, err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024) // 10MB max line

	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("scanning session %s: %w", path, err)
	}
	return records, nil
}

// Summary describes a stored session for listings.
type Summary struct {
	SessionStartData
	Started time.Time
}

// ListSessions scans dir and returns sessions newest first.
func ListSessions(dir string) ([]Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading sessions dir: %w", err)
	}

	var sessions []Summary
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jsonl" {
			continue
		}

		s, err := readFirstLine(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	slices.SortFunc(sessions, func(a, b Summary) int {
		if c := b.Started.Compare(a.Started); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return sessions, nil
}

func readFirstLine(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return Summary{}, fmt.Errorf("empty session file")
	}

	var rec Record
	if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
		return Summary{}, fmt.Errorf("parsing first record: %w", err)
	}
	if rec.Type != RecordSessionStart {
		return Summary{}, fmt.Errorf("first record is %s, not session_start", rec.Type)
	}

	var start SessionStartData
	if err := json.Unmarshal(rec.Data, &start); err != nil {
		return Summary{}, fmt.Errorf("parsing session start: %w", err)
	}
	return Summary{SessionStartData: start, Started: rec.Time()}, nil
}
