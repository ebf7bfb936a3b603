// ABOUTME: Bubble Tea message types exchanged between the chat model and its commands
// ABOUTME: Answers arrive asynchronously; reloads are triggered by the settings watcher

package interactive

import "github.com/mauromedda/cognichat-go/pkg/chat"

// answerMsg carries the engine result for one submitted utterance.
type answerMsg struct {
	utterance string
	result    chat.Result
	err       error
}

// reloadMsg asks the model to re-read settings and the mode catalog.
type reloadMsg struct{}

// entryKind selects how an entry is rendered in the transcript.
type entryKind int

const (
	entryUser entryKind = iota
	entryAssistant
	entryNotice
	entryError
)

// entry is one block of the transcript view.
type entry struct {
	kind  entryKind
	text  string
	meta  string
	trace string
}
