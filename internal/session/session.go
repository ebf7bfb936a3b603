// ABOUTME: Chat session: in-memory history plus an optional JSONL transcript
// ABOUTME: Hosts append turns here; Resume rebuilds history from a stored transcript

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mauromedda/cognichat-go/internal/convstate"
	"github.com/mauromedda/cognichat-go/internal/personality"
)

// ErrNoStart is returned when a transcript lacks its session_start record.
var ErrNoStart = errors.New("transcript has no session_start record")

// Session holds the conversation for one host run.
type Session struct {
	ID      string
	Mode    personality.Mode
	History convstate.History

	writer *Writer
	closed bool
}

// New starts a session. An empty dir keeps the session in memory only.
func New(dir string, mode personality.Mode, cwd string) (*Session, error) {
	s := &Session{ID: uuid.NewString(), Mode: mode.Resolve()}
	if dir == "" {
		return s, nil
	}

	w, err := NewWriter(dir, s.ID)
	if err != nil {
		return nil, fmt.Errorf("creating session writer: %w", err)
	}
	s.writer = w

	if err := w.WriteRecord(RecordSessionStart, SessionStartData{
		ID:   s.ID,
		Mode: string(s.Mode),
		CWD:  cwd,
	}); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("writing session start: %w", err)
	}
	return s, nil
}

// Resume reloads sessionID from dir and reopens its transcript for append.
func Resume(dir, sessionID string) (*Session, error) {
	records, err := ReadRecords(dir, sessionID)
	if err != nil {
		return nil, err
	}
	s, err := Replay(records)
	if err != nil {
		return nil, fmt.Errorf("resuming %s: %w", sessionID, err)
	}

	w, err := NewWriter(dir, s.ID)
	if err != nil {
		return nil, fmt.Errorf("reopening session writer: %w", err)
	}
	s.writer = w
	return s, nil
}

// Replay rebuilds a detached session from transcript records.
func Replay(records []Record) (*Session, error) {
	var s *Session
	for _, rec := range records {
		if rec.Type == RecordSessionStart {
			var start SessionStartData
			if err := json.Unmarshal(rec.Data, &start); err != nil {
				return nil, fmt.Errorf("parsing session start: %w", err)
			}
			s = &Session{ID: start.ID, Mode: personality.Mode(start.Mode).Resolve()}
			continue
		}
		if s == nil {
			continue
		}
		switch rec.Type {
		case RecordUser:
			var d UserData
			if json.Unmarshal(rec.Data, &d) == nil {
				s.History = s.History.Append(convstate.RoleUser, d.Content, rec.Time())
			}
		case RecordAssistant:
			var d AssistantData
			if json.Unmarshal(rec.Data, &d) == nil {
				s.History = s.History.Append(convstate.RoleAssistant, d.Content, rec.Time())
			}
		case RecordModeChange:
			var d ModeChangeData
			if json.Unmarshal(rec.Data, &d) == nil {
				s.Mode = personality.Mode(d.To).Resolve()
			}
		}
	}
	if s == nil {
		return nil, ErrNoStart
	}
	return s, nil
}

// Persistent reports whether turns are written to disk.
func (s *Session) Persistent() bool { return s.writer != nil }

// AddUser appends a user turn.
func (s *Session) AddUser(content string, now time.Time) error {
	s.History = s.History.Append(convstate.RoleUser, content, now)
	return s.write(RecordUser, UserData{Content: content})
}

// AddAssistant appends an assistant turn. d.Mode defaults to the session mode.
func (s *Session) AddAssistant(d AssistantData, now time.Time) error {
	if d.Mode == "" {
		d.Mode = string(s.Mode)
	}
	s.History = s.History.Append(convstate.RoleAssistant, d.Content, now)
	return s.write(RecordAssistant, d)
}

// SetMode switches mode and records the change. Switching to the current
// mode is a no-op.
func (s *Session) SetMode(mode personality.Mode) error {
	mode = mode.Resolve()
	if mode == s.Mode {
		return nil
	}
	from := s.Mode
	s.Mode = mode
	return s.write(RecordModeChange, ModeChangeData{From: string(from), To: string(mode)})
}

// Close writes session_end and closes the transcript. Safe to call twice.
func (s *Session) Close() error {
	if s.closed || s.writer == nil {
		s.closed = true
		return nil
	}
	s.closed = true
	werr := s.writer.WriteRecord(RecordSessionEnd, SessionEndData{Turns: len(s.History)})
	cerr := s.writer.Close()
	return errors.Join(werr, cerr)
}

func (s *Session) write(t RecordType, data any) error {
	if s.writer == nil {
		return nil
	}
	if s.closed {
		return fmt.Errorf("session %s is closed", s.ID)
	}
	return s.writer.WriteRecord(t, data)
}
