package session

import (
	"fmt"

	"github.com/blackwell-systems/pagectl/internal/document"
)

// EventKind enumerates the view events the session reacts to.
type EventKind int

const (
	ThumbnailClick EventKind = iota + 1
	ThumbnailDoubleClick
	ThumbnailToggle
	MoveUp
	MoveDown
	ZoomChange
	Resize
)

var eventNames = map[EventKind]string{
	ThumbnailClick:       "thumbnail-click",
	ThumbnailDoubleClick: "thumbnail-dblclick",
	ThumbnailToggle:      "thumbnail-toggle",
	MoveUp:               "move-up",
	MoveDown:             "move-down",
	ZoomChange:           "zoom",
	Resize:               "resize",
}

func (k EventKind) String() string {
	if s, ok := eventNames[k]; ok {
		return s
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is a view event. Num, DocID and PageID identify the page for
// thumbnail and move events; Zoom carries the value of a ZoomChange.
type Event struct {
	Kind   EventKind
	Num    int
	DocID  document.ID
	PageID string
	Zoom   int
}

// PageEvent builds a thumbnail or move event for p.
func PageEvent(kind EventKind, p *document.Page) Event {
	return Event{Kind: kind, Num: p.Num, DocID: p.DocID, PageID: p.ID}
}
