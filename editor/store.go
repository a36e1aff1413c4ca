// Package editor is the merchant-side shell around a theme configuration:
// a copy-on-write store the section editors write through, and a Shell that
// loads and saves against the persistence collaborator. Subscribers (the
// preview re-render hook) observe every swap.
package editor

import (
	"sync"

	"github.com/hazyhaar/vitrine/theme"
)

// Store owns the editing-session theme configuration. Every mutation swaps
// in a complete new Config; section setters touch exactly their group.
type Store struct {
	mu   sync.Mutex
	cur  theme.Config
	subs map[int]func(theme.Config)
	next int
}

// NewStore creates a store seeded with cfg.
func NewStore(cfg theme.Config) *Store {
	return &Store{cur: cfg, subs: make(map[int]func(theme.Config))}
}

// Get returns the current snapshot.
func (s *Store) Get() theme.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Update applies fn to the latest snapshot and publishes the result.
func (s *Store) Update(fn func(theme.Config) theme.Config) theme.Config {
	s.mu.Lock()
	s.cur = fn(s.cur)
	cfg := s.cur
	subs := make([]func(theme.Config), 0, len(s.subs))
	for _, f := range s.subs {
		subs = append(subs, f)
	}
	s.mu.Unlock()

	for _, f := range subs {
		f(cfg)
	}
	return cfg
}

// Subscribe registers fn to run after every update. The returned function
// unsubscribes.
func (s *Store) Subscribe(fn func(theme.Config)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Section setters. Each editor panel owns one group and can only write that
// group; concurrent panels on disjoint groups never clobber each other
// because every write goes through Update on the latest snapshot.

func (s *Store) SetLayout(l theme.Layout) theme.Config {
	return s.Update(func(c theme.Config) theme.Config { c.Layout = l; return c })
}

func (s *Store) SetColors(co theme.Colors) theme.Config {
	return s.Update(func(c theme.Config) theme.Config { c.Colors = co; return c })
}

func (s *Store) SetImages(im theme.Images) theme.Config {
	return s.Update(func(c theme.Config) theme.Config { c.Images = im; return c })
}

// SetTexts sanitizes the notice markup on the way in, same as loading a
// persisted record does.
func (s *Store) SetTexts(tx theme.Texts) theme.Config {
	tx.NoticeHTML = theme.SanitizeHTML(tx.NoticeHTML)
	return s.Update(func(c theme.Config) theme.Config { c.Texts = tx; return c })
}

func (s *Store) SetSnippets(sn theme.Snippets) theme.Config {
	return s.Update(func(c theme.Config) theme.Config { c.Snippets = sn; return c })
}

func (s *Store) SetSizes(sz theme.Sizes) theme.Config {
	return s.Update(func(c theme.Config) theme.Config { c.Sizes = sz; return c })
}

func (s *Store) SetMargins(m theme.Margins) theme.Config {
	return s.Update(func(c theme.Config) theme.Config { c.Margins = m; return c })
}
