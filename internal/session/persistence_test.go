// ABOUTME: Tests for JSONL session persistence and session replay
// ABOUTME: Uses temp directories for isolated read/write testing

package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mauromedda/cognichat-go/internal/convstate"
	"github.com/mauromedda/cognichat-go/internal/personality"
)

func TestWriter_WriteAndRead(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "sessions")
	w, err := NewWriter(dir, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteRecord(RecordSessionStart, SessionStartData{ID: "abc", Mode: "study"}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteRecord(RecordUser, UserData{Content: "hello"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	records, err := ReadRecords(dir, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Type != RecordSessionStart || records[1].Type != RecordUser {
		t.Errorf("types = %s, %s", records[0].Type, records[1].Type)
	}
	if records[0].Version != 1 {
		t.Errorf("version = %d, want 1", records[0].Version)
	}
	if records[1].Time().IsZero() {
		t.Error("record timestamp did not parse")
	}
}

func TestReadRecords_SkipsMalformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lines := []string{
		`{"v":1,"type":"session_start","ts":"2025-01-01T00:00:00Z","data":{"id":"s1","mode":"general"}}`,
		`{"v":1,"type":"user","ts":"2025-01-01T00:0`,
		`{"v":1,"type":"user","ts":"2025-01-01T00:01:00Z","data":{"content":"hi"}}`,
	}
	if err := os.WriteFile(Path(dir, "s1"), []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	records, err := ReadRecords(dir, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2 (torn line skipped)", len(records))
	}
}

func TestReadRecords_Missing(t *testing.T) {
	t.Parallel()

	if _, err := ReadRecords(t.TempDir(), "nope"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestListSessions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write("old.jsonl", `{"v":1,"type":"session_start","ts":"2025-01-01T00:00:00Z","data":{"id":"old","mode":"study"}}`+"\n")
	write("new.jsonl", `{"v":1,"type":"session_start","ts":"2025-06-01T00:00:00Z","data":{"id":"new","mode":"travel"}}`+"\n")
	write("bad.jsonl", `{"v":1,"type":"user","ts":"2025-06-01T00:00:00Z","data":{"content":"x"}}`+"\n")
	write("empty.jsonl", "")
	write("notes.txt", "ignored")

	got, err := ListSessions(dir)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	if diff := cmp.Diff([]string{"new", "old"}, ids); diff != "" {
		t.Errorf("ListSessions ids (-want +got):\n%s", diff)
	}
	if got[0].Mode != "travel" {
		t.Errorf("mode = %q, want travel", got[0].Mode)
	}
}

func TestListSessions_MissingDir(t *testing.T) {
	t.Parallel()

	got, err := ListSessions(filepath.Join(t.TempDir(), "none"))
	if err != nil || got != nil {
		t.Errorf("ListSessions() = %v, %v; want nil, nil", got, err)
	}
}

func TestSession_PersistAndResume(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	s, err := New(dir, personality.Study, "/work")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Persistent() {
		t.Fatal("session with a dir should persist")
	}
	if err := s.AddUser("what is recursion?", now); err != nil {
		t.Fatal(err)
	}
	if err := s.AddAssistant(AssistantData{Content: "Great question!", TemplateKey: "study.question"}, now); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMode(personality.Writing); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	records, err := ReadRecords(dir, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	var types []RecordType
	for _, r := range records {
		types = append(types, r.Type)
	}
	want := []RecordType{RecordSessionStart, RecordUser, RecordAssistant, RecordModeChange, RecordSessionEnd}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("record types (-want +got):\n%s", diff)
	}

	resumed, err := Resume(dir, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer resumed.Close()

	if resumed.ID != s.ID {
		t.Errorf("ID = %q, want %q", resumed.ID, s.ID)
	}
	if resumed.Mode != personality.Writing {
		t.Errorf("Mode = %q, want writing after mode_change", resumed.Mode)
	}
	if len(resumed.History) != 2 {
		t.Fatalf("history len = %d, want 2", len(resumed.History))
	}
	if resumed.History[0].Role != convstate.RoleUser || resumed.History[1].Content != "Great question!" {
		t.Errorf("history = %+v", resumed.History)
	}
}

func TestSession_InMemory(t *testing.T) {
	t.Parallel()

	s, err := New("", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if s.Persistent() {
		t.Error("empty dir should not persist")
	}
	if s.Mode != personality.General {
		t.Errorf("Mode = %q, want general", s.Mode)
	}
	if err := s.AddUser("hi", time.Now()); err != nil {
		t.Fatal(err)
	}
	if len(s.History) != 1 {
		t.Errorf("history len = %d, want 1", len(s.History))
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSession_WriteAfterClose(t *testing.T) {
	t.Parallel()

	s, err := New(t.TempDir(), personality.General, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.AddUser("late", time.Now()); err == nil {
		t.Error("AddUser after Close should fail")
	}
}

func TestReplay_NoStart(t *testing.T) {
	t.Parallel()

	_, err := Replay([]Record{{Type: RecordUser, Data: []byte(`{"content":"x"}`)}})
	if !errors.Is(err, ErrNoStart) {
		t.Errorf("err = %v, want ErrNoStart", err)
	}
}

func TestSession_SetModeSameIsNoop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := New(dir, personality.Study, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetMode(personality.Study); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	records, err := ReadRecords(dir, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range records {
		if r.Type == RecordModeChange {
			t.Error("switching to the current mode should not record a change")
		}
	}
}
