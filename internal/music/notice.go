package music

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NoticeDuration is how long a notice stays visible
const NoticeDuration = 3200 * time.Millisecond

// FlashDuration is the length of a slot button pulse
const FlashDuration = 220 * time.Millisecond

// Notice texts
const (
	NoticeNoTracks     = "No tracks found. Add entries to assets/tracks.json."
	NoticeNoAssignment = "No track assigned. Check assets/tracks.json (title + file path)."
	noticePlayFailed   = "Could not play %s."
)

// Notice is a transient user facing message. The ID lets a surface tell a
// notice apart from a newer one with the same text.
type Notice struct {
	ID   string
	Text string
}

// NewNotice creates a notice with a fresh ID
func NewNotice(text string) Notice {
	return Notice{ID: uuid.NewString(), Text: text}
}

func playFailedNotice(title string) Notice {
	return NewNotice(fmt.Sprintf(noticePlayFailed, title))
}
