package editor

import (
	"strings"

	"github.com/musik-cafe/dashboard/types"
)

type SelectionKind string

const (
	SelectTextChannels  SelectionKind = "text_channels"
	SelectVoiceChannels SelectionKind = "voice_channels"
	SelectDJRoles       SelectionKind = "dj_roles"
)

// Option is a selectable catalog entry shown in a picker modal
type Option struct {
	ID   string
	Name string
}

// Selection is the draft state of a picker modal: the persisted selection is
// copied into a working set on open, mutated by Toggle, and only written
// back to the config on Confirm. Cancel simply drops the modal
type Selection struct {
	editor  *Editor
	kind    SelectionKind
	seeded  []string
	working map[string]struct{}
}

// OpenSelection opens a picker modal pre-seeded with the drafts current
// selection for the given kind
func (e *Editor) OpenSelection(kind SelectionKind) *Selection {
	e.mu.Lock()
	defer e.mu.Unlock()

	seeded := append([]string(nil), e.listLocked(kind)...)

	working := make(map[string]struct{}, len(seeded))
	for _, id := range seeded {
		working[id] = struct{}{}
	}

	return &Selection{
		editor:  e,
		kind:    kind,
		seeded:  seeded,
		working: working,
	}
}

func (e *Editor) listLocked(kind SelectionKind) []string {
	switch kind {
	case SelectTextChannels:
		return e.config.MusicChannels
	case SelectVoiceChannels:
		return e.config.VoiceChannels
	case SelectDJRoles:
		return e.config.DJRoles
	}

	return nil
}

func (e *Editor) setListLocked(kind SelectionKind, ids []string) {
	switch kind {
	case SelectTextChannels:
		e.config.MusicChannels = ids
	case SelectVoiceChannels:
		e.config.VoiceChannels = ids
	case SelectDJRoles:
		e.config.DJRoles = ids
	}
}

func (s *Selection) Toggle(id string) {
	if _, ok := s.working[id]; ok {
		delete(s.working, id)
	} else {
		s.working[id] = struct{}{}
	}
}

func (s *Selection) Selected(id string) bool {
	_, ok := s.working[id]
	return ok
}

func (s *Selection) Count() int {
	return len(s.working)
}

// Options lists the catalog entries of this selections kind, filtered by a
// live case-insensitive substring query
func (s *Selection) Options(query string) []Option {
	s.editor.mu.Lock()
	defer s.editor.mu.Unlock()

	lowerQuery := strings.ToLower(query)

	options := []Option{}

	appendOption := func(id, name string) {
		if query != "" && !strings.Contains(strings.ToLower(name), lowerQuery) {
			return
		}

		options = append(options, Option{ID: id, Name: name})
	}

	switch s.kind {
	case SelectDJRoles:
		for _, role := range s.editor.catalog.Roles {
			appendOption(role.ID, role.Name)
		}
	case SelectTextChannels:
		for _, channel := range s.editor.catalog.Channels {
			if channel.Type == types.ChannelTypeText {
				appendOption(channel.ID, channel.Name)
			}
		}
	case SelectVoiceChannels:
		for _, channel := range s.editor.catalog.Channels {
			if channel.Type == types.ChannelTypeVoice {
				appendOption(channel.ID, channel.Name)
			}
		}
	}

	return options
}

// Confirm commits the working set into the draft config, replacing only this
// selections list. Retained ids keep their previous order, stale ids the
// catalog no longer knows survive, and newly added ids follow in catalog
// order
func (s *Selection) Confirm() {
	s.editor.mu.Lock()
	defer s.editor.mu.Unlock()

	committed := []string{}

	for _, id := range s.seeded {
		if _, ok := s.working[id]; ok {
			committed = append(committed, id)
		}
	}

	seen := make(map[string]struct{}, len(committed))
	for _, id := range committed {
		seen[id] = struct{}{}
	}

	appendNew := func(id string) {
		if _, ok := s.working[id]; !ok {
			return
		}

		if _, ok := seen[id]; ok {
			return
		}

		committed = append(committed, id)
		seen[id] = struct{}{}
	}

	switch s.kind {
	case SelectDJRoles:
		for _, role := range s.editor.catalog.Roles {
			appendNew(role.ID)
		}
	default:
		for _, channel := range s.editor.catalog.Channels {
			appendNew(channel.ID)
		}
	}

	s.editor.setListLocked(s.kind, committed)
}

// Cancel discards the working set. The draft config is untouched, and a
// stray Toggle on the closed modal mutates only the emptied set
func (s *Selection) Cancel() {
	s.seeded = nil
	s.working = map[string]struct{}{}
}
