package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/mlc/internal/models"
	"github.com/desertthunder/mlc/internal/tasks"
)

var (
	_ list.Item = trackItem{}
)

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Title + " " + i.track.Artist }
func (i trackItem) Title() string       { return i.track.Title }
func (i trackItem) Description() string {
	desc := i.track.Artist
	if desc == "" {
		desc = "unknown artist"
	}
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	return desc
}

// newTrackList builds the list for a single result set.
//
// The list's own help and quit bindings are disabled; the [Model] renders help and handles quitting.
func newTrackList(set tasks.ResultSet, tracks []models.Track, width, height int) list.Model {
	items := make([]list.Item, len(tracks))
	for i, track := range tracks {
		items[i] = trackItem{track: track}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = fmt.Sprintf("%s (%d)", set.Label(), len(tracks))
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}
