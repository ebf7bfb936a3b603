// ABOUTME: In-process tests of the cobra command tree: ask, rpc, modes, sessions, export, version
// ABOUTME: COGNICHAT_HOME points at a temp dir so settings and transcripts never touch the real home

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauromedda/cognichat-go/pkg/chat"
)

// execute runs the CLI with args and stdin, returning stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("COGNICHAT_HOME", home)
	return home
}

func TestVersion(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "cognichat dev (unknown) built unknown\n", out)
}

func TestAsk_JoinsArguments(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "ask", "what", "is", "a", "prime", "number?")
	require.NoError(t, err)
	assert.Equal(t, chat.Respond("what is a prime number?", nil, "")+"\n", out)
}

func TestAsk_ModeAndJSON(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "ask", "--mode", "Study", "--format", "json", "what is recursion?")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "study", got["mode"])
	assert.Equal(t, "study.question", got["template_key"])
}

func TestAsk_TraceCarriesConfidence(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "ask", "--trace", "--format", "json", "hi")
	require.NoError(t, err)

	var got struct {
		Text  string `json:"text"`
		Trace struct {
			Confidence *float64 `json:"confidence"`
		} `json:"trace"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, chat.Respond("hi", nil, ""), got.Text)
	require.NotNil(t, got.Trace.Confidence)
	assert.GreaterOrEqual(t, *got.Trace.Confidence, 0.8)
	assert.Less(t, *got.Trace.Confidence, 1.0)

	text, _, err := execute(t, "", "ask", "--trace", "hi")
	require.NoError(t, err)
	assert.Contains(t, text, "confidence")

	plain, _, err := execute(t, "", "ask", "--format", "json", "hi")
	require.NoError(t, err)
	assert.NotContains(t, plain, "confidence")
}

func TestRPC_TraceCarriesConfidence(t *testing.T) {
	isolate(t)

	input := `{"id":"1","method":"respond","params":{"utterance":"hi","trace":true}}` + "\n" +
		`{"id":"2","method":"respond","params":{"utterance":"bye"}}` + "\n"
	out, _, err := execute(t, input, "rpc", "--no-session")
	require.NoError(t, err)

	resps := rpcResponses(t, out)
	require.Len(t, resps, 2)
	traced := resps[0]["result"].(map[string]any)["trace"].(map[string]any)
	assert.Contains(t, traced, "confidence")
	assert.NotContains(t, resps[1]["result"].(map[string]any), "trace")
}

func TestAsk_StdinBatch(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "hi\n\nbye\n", "ask", "--no-delay")
	require.NoError(t, err)
	want := chat.Respond("hi", nil, "") + "\n\n" + chat.Respond("bye", nil, "") + "\n"
	assert.Equal(t, want, out)
}

func TestAsk_Errors(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "ask", "--mode", "studdy", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean")

	_, _, err = execute(t, "", "ask", "--format", "yaml", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_format")

	_, _, err = execute(t, "", "ask")
	require.Error(t, err)
}

func TestAsk_SettingsFile(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.json"),
		[]byte(`{"default_mode":"support","output_format":"json"}`), 0o600))

	out, _, err := execute(t, "", "ask", "my order never arrived")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "support", got["mode"])
}

func TestModes(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "modes", "--json")
	require.NoError(t, err)
	var modes []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &modes))
	require.Len(t, modes, 9)
	assert.Equal(t, "general", modes[0]["id"])

	out, _, err = execute(t, "", "modes", "--mode", "travel")
	require.NoError(t, err)
	assert.Contains(t, out, "Travel Planner")
	assert.Contains(t, out, "* travel")
}

func TestModes_Catalog(t *testing.T) {
	home := isolate(t)
	catalog := filepath.Join(home, "modes.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte("modes:\n  - id: game\n    title: Quest Writer\n"), 0o600))

	out, _, err := execute(t, "", "modes", "--catalog", catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "Quest Writer")

	_, _, err = execute(t, "", "modes", "--catalog", filepath.Join(home, "missing.yaml"))
	require.Error(t, err)
}

func rpcResponses(t *testing.T, out string) []map[string]any {
	t.Helper()
	var resps []map[string]any
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var r map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r), "line %q", sc.Text())
		resps = append(resps, r)
	}
	return resps
}

func TestRPC_SessionLifecycle(t *testing.T) {
	isolate(t)

	input := strings.Join([]string{
		`{"id":"1","method":"respond","params":{"utterance":"hi"}}`,
		`{"id":"2","method":"get_status"}`,
		`{"id":"3","method":"list_sessions"}`,
	}, "\n") + "\n"

	out, _, err := execute(t, input, "rpc")
	require.NoError(t, err)

	resps := rpcResponses(t, out)
	require.Len(t, resps, 3)

	respond := resps[0]["result"].(map[string]any)
	assert.Equal(t, chat.Respond("hi", nil, ""), respond["text"])

	status := resps[1]["result"].(map[string]any)
	assert.Equal(t, float64(2), status["turns"])
	assert.Equal(t, true, status["persistent"])
	id := status["session_id"].(string)

	sessions := resps[2]["result"].(map[string]any)["sessions"].([]any)
	require.Len(t, sessions, 1)
	assert.Equal(t, id, sessions[0].(map[string]any)["id"])

	// The transcript is closed when rpc returns; list and export it.
	listed, _, err := execute(t, "", "sessions")
	require.NoError(t, err)
	assert.Contains(t, listed, id)

	html, _, err := execute(t, "", "export", id, "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, html, "cognichat session "+id)
	assert.Contains(t, html, "general.greeting")
}

func TestRPC_NoSession(t *testing.T) {
	home := isolate(t)

	out, _, err := execute(t, `{"id":"1","method":"get_status"}`+"\n", "rpc", "--no-session")
	require.NoError(t, err)
	resps := rpcResponses(t, out)
	require.Len(t, resps, 1)
	assert.Equal(t, false, resps[0]["result"].(map[string]any)["persistent"])

	_, err = os.Stat(filepath.Join(home, "sessions"))
	assert.True(t, os.IsNotExist(err), "no sessions dir should be created")
}

func TestSessions_Empty(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "sessions")
	require.NoError(t, err)
	assert.Equal(t, "No saved sessions.\n", out)
}

func TestExport_ToFile(t *testing.T) {
	home := isolate(t)

	_, _, err := execute(t, `{"id":"1","method":"respond","params":{"utterance":"thanks, this is great"}}`+"\n", "rpc")
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(home, "sessions"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	transcript := filepath.Join(home, "sessions", entries[0].Name())

	dest := filepath.Join(home, "out.html")
	_, stderr, err := execute(t, "", "export", transcript, "--output", dest)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Exported")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "thanks, this is great")
}

func TestExport_UnknownSession(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "export", "does-not-exist")
	require.Error(t, err)
}

func TestResume_RequiresSessions(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "--no-session", "--resume", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session saving is disabled")
}
