package editor

import (
	"time"

	"tableflip.dev/storyboard/pkg/template"
)

// HistoryEntry is an immutable (document, UI) snapshot tagged with the action
// that produced it. Entries are never modified after creation; the reducer
// clones before editing.
type HistoryEntry struct {
	Template  template.Template `json:"template"`
	UI        UIState           `json:"ui"`
	Action    ActionType        `json:"action"`
	Timestamp time.Time         `json:"timestamp"`
}

// History is a linear undo/redo stack. Past is oldest first; Future holds the
// next redo at index 0.
type History struct {
	Past    []HistoryEntry `json:"past"`
	Current HistoryEntry   `json:"current"`
	Future  []HistoryEntry `json:"future"`
}

func newHistory(e HistoryEntry) History {
	return History{Past: []HistoryEntry{}, Current: e, Future: []HistoryEntry{}}
}

// CanUndo reports whether Past is non-empty.
func (h History) CanUndo() bool { return len(h.Past) > 0 }

// CanRedo reports whether Future is non-empty.
func (h History) CanRedo() bool { return len(h.Future) > 0 }

// push makes e current and clears the redo stack. A positive limit caps the
// length of Past by dropping the oldest entries.
func (h History) push(e HistoryEntry, limit int) History {
	past := make([]HistoryEntry, 0, len(h.Past)+1)
	past = append(past, h.Past...)
	past = append(past, h.Current)
	if limit > 0 && len(past) > limit {
		past = past[len(past)-limit:]
	}
	return History{Past: past, Current: e, Future: []HistoryEntry{}}
}

func (h History) undo() (History, bool) {
	if !h.CanUndo() {
		return h, false
	}
	last := len(h.Past) - 1
	future := make([]HistoryEntry, 0, len(h.Future)+1)
	future = append(future, h.Current)
	future = append(future, h.Future...)
	return History{
		Past:    append([]HistoryEntry{}, h.Past[:last]...),
		Current: h.Past[last],
		Future:  future,
	}, true
}

func (h History) redo() (History, bool) {
	if !h.CanRedo() {
		return h, false
	}
	past := make([]HistoryEntry, 0, len(h.Past)+1)
	past = append(past, h.Past...)
	past = append(past, h.Current)
	return History{
		Past:    past,
		Current: h.Future[0],
		Future:  append([]HistoryEntry{}, h.Future[1:]...),
	}, true
}
