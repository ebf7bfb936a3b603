// ABOUTME: HTML exporter for chat transcripts using Go html/template
// ABOUTME: Renders session records as a styled page with role badges and mode-change notices

package export

import (
	"encoding/json"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/mauromedda/cognichat-go/internal/session"
)

// Entry kinds.
const (
	KindUser      = "user"
	KindAssistant = "assistant"
	KindNotice    = "notice"
)

// Entry is one rendered row of a transcript.
type Entry struct {
	Kind string
	Text string
	Meta string
	Time time.Time
}

// Transcript is the render model for a stored session.
type Transcript struct {
	ID      string
	Mode    string
	Started time.Time
	Entries []Entry
}

// FromRecords builds a Transcript from session records. Records of unknown
// type and records with undecodable data are skipped.
func FromRecords(records []session.Record) Transcript {
	var t Transcript
	for _, rec := range records {
		switch rec.Type {
		case session.RecordSessionStart:
			var d session.SessionStartData
			if json.Unmarshal(rec.Data, &d) == nil {
				t.ID, t.Mode, t.Started = d.ID, d.Mode, rec.Time()
			}
		case session.RecordUser:
			var d session.UserData
			if json.Unmarshal(rec.Data, &d) == nil {
				t.Entries = append(t.Entries, Entry{Kind: KindUser, Text: d.Content, Time: rec.Time()})
			}
		case session.RecordAssistant:
			var d session.AssistantData
			if json.Unmarshal(rec.Data, &d) == nil {
				t.Entries = append(t.Entries, Entry{
					Kind: KindAssistant,
					Text: d.Content,
					Meta: assistantMeta(d),
					Time: rec.Time(),
				})
			}
		case session.RecordModeChange:
			var d session.ModeChangeData
			if json.Unmarshal(rec.Data, &d) == nil {
				t.Entries = append(t.Entries, Entry{
					Kind: KindNotice,
					Text: "Mode changed from " + d.From + " to " + d.To,
					Time: rec.Time(),
				})
			}
		}
	}
	return t
}

func assistantMeta(d session.AssistantData) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{d.Mode, d.TemplateKey, d.Strategy} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}

// ExportHTML renders a transcript as a styled HTML document to w.
// The output uses a dark theme with role-specific color indicators:
// User (blue), Assistant (green).
func ExportHTML(t Transcript, w io.Writer) error {
	return htmlTmpl.Execute(w, t)
}

// escapeNewlines converts newlines to <br> for HTML rendering.
func escapeNewlines(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>\n"))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

var funcMap = template.FuncMap{
	"escapeNewlines": escapeNewlines,
	"formatTime":     formatTime,
}

var htmlTmpl = template.Must(template.New("session").Funcs(funcMap).Parse(htmlTemplate))

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>cognichat session {{ .ID }}</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    background: #1e1e2e;
    color: #cdd6f4;
    font-family: 'SF Mono', 'Cascadia Code', 'Fira Code', monospace;
    font-size: 14px;
    line-height: 1.6;
    padding: 24px;
    max-width: 900px;
    margin: 0 auto;
  }
  .message {
    margin-bottom: 16px;
    padding: 12px 16px;
    border-radius: 8px;
    border-left: 4px solid;
  }
  .message.user {
    border-left-color: #89b4fa;
    background: #1e1e2e;
  }
  .message.assistant {
    border-left-color: #a6e3a1;
    background: #1e1e2e;
  }
  .role-badge {
    display: inline-block;
    font-size: 11px;
    font-weight: 600;
    text-transform: uppercase;
    letter-spacing: 0.5px;
    padding: 2px 8px;
    border-radius: 4px;
    margin-bottom: 8px;
  }
  .user .role-badge { background: #89b4fa22; color: #89b4fa; }
  .assistant .role-badge { background: #a6e3a122; color: #a6e3a1; }
  .content-block { margin-top: 8px; }
  .meta {
    color: #9399b2;
    font-size: 11px;
    margin-top: 6px;
  }
  .notice {
    color: #f9e2af;
    font-size: 12px;
    text-align: center;
    margin: 12px 0;
  }
  header {
    border-bottom: 1px solid #313244;
    margin-bottom: 24px;
    padding-bottom: 12px;
  }
  header h1 { font-size: 16px; color: #cba6f7; }
  header .meta { font-size: 12px; }
</style>
</head>
<body>
<header>
  <h1>cognichat session</h1>
  <div class="meta">{{ .ID }}{{ with .Mode }} · {{ . }} mode{{ end }}{{ with formatTime .Started }} · {{ . }}{{ end }}</div>
</header>
{{- range .Entries }}
{{- if eq .Kind "notice" }}
<div class="notice">{{ .Text }}</div>
{{- else }}
<div class="message {{ .Kind }}">
  <span class="role-badge">{{ .Kind }}</span>
  <div class="content-block">{{ escapeNewlines .Text }}</div>
  {{- with .Meta }}
  <div class="meta">{{ . }}</div>
  {{- end }}
</div>
{{- end }}
{{- end }}
</body>
</html>
`
