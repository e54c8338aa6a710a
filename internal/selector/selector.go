// Package selector holds the skill picker state for one operator session:
// dropdown state, a debounced search term and the ordered selection.
package selector

import (
	"context"
	"slices"
	"sync"
	"time"

	"skill-match/internal/domain/skill"
	"skill-match/internal/usecase"
)

// DefaultDebounce is the quiet period after the last keystroke before the
// search term is applied.
const DefaultDebounce = 1000 * time.Millisecond

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

type Directory interface {
	Search(ctx context.Context, prefix string) ([]skill.Skill, error)
	ResolveNames(ctx context.Context, ids []string, session *usecase.NameCache) map[string]string
}

// Results is one completed search for Term.
type Results struct {
	Term   string
	Skills []skill.Skill
	Err    error
}

type Options struct {
	Debounce time.Duration
	// Names caches resolved selection names; nil disables caching.
	Names *usecase.NameCache
	// OnChange receives the full selection after every change.
	OnChange func(selection []string)
	// OnResults receives search results for the current term only.
	OnResults func(Results)
}

type Selector struct {
	ctx      context.Context
	dir      Directory
	debounce time.Duration
	names    *usecase.NameCache

	onChange  func([]string)
	onResults func(Results)

	mu        sync.Mutex
	state     State
	draft     string
	term      string
	selection []string
	results   []skill.Skill
	loading   bool
	timer     *time.Timer
	typeSeq   uint64
	gen       uint64
	stopped   bool

	// deliverMu keeps result callbacks in generation order.
	deliverMu sync.Mutex
}

func New(ctx context.Context, dir Directory, opts Options) *Selector {
	d := opts.Debounce
	if d <= 0 {
		d = DefaultDebounce
	}
	return &Selector{
		ctx:       ctx,
		dir:       dir,
		debounce:  d,
		names:     opts.Names,
		onChange:  opts.OnChange,
		onResults: opts.OnResults,
		selection: []string{},
	}
}

func (s *Selector) Toggle() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Open {
		s.state = Closed
	} else {
		s.state = Open
	}
	return s.state
}

// Select appends id when it is non-empty and not yet selected, then closes
// the dropdown. It reports whether the selection changed.
func (s *Selector) Select(id string) bool {
	s.mu.Lock()
	s.state = Closed
	if id == "" || slices.Contains(s.selection, id) {
		s.mu.Unlock()
		return false
	}
	s.selection = append(s.selection, id)
	sel := slices.Clone(s.selection)
	s.mu.Unlock()

	s.notifyChange(sel)
	return true
}

// Remove drops id from the selection. The dropdown state is unchanged.
func (s *Selector) Remove(id string) bool {
	s.mu.Lock()
	if !slices.Contains(s.selection, id) {
		s.mu.Unlock()
		return false
	}
	s.selection = slices.DeleteFunc(s.selection, func(v string) bool { return v == id })
	sel := slices.Clone(s.selection)
	s.mu.Unlock()

	s.notifyChange(sel)
	return true
}

// Type updates the draft term at once and restarts the debounce timer.
// When the timer fires and the term changed, a search runs for it.
func (s *Selector) Type(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.draft = term
	s.typeSeq++
	seq := s.typeSeq
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() { s.applyDraft(seq) })
}

func (s *Selector) applyDraft(seq uint64) {
	s.mu.Lock()
	if s.stopped || seq != s.typeSeq || s.draft == s.term {
		s.mu.Unlock()
		return
	}
	s.term = s.draft
	term, gen := s.beginSearchLocked()
	s.mu.Unlock()

	s.search(term, gen)
}

// Refresh searches for the current debounced term right away.
func (s *Selector) Refresh() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	term, gen := s.beginSearchLocked()
	s.mu.Unlock()

	go s.search(term, gen)
}

func (s *Selector) beginSearchLocked() (string, uint64) {
	s.gen++
	s.loading = true
	return s.term, s.gen
}

func (s *Selector) search(term string, gen uint64) {
	items, err := s.dir.Search(s.ctx, term)

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	if s.stopped || gen != s.gen || s.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	s.loading = false
	if err == nil {
		s.results = items
	}
	cb := s.onResults
	s.mu.Unlock()

	if cb != nil {
		cb(Results{Term: term, Skills: slices.Clone(items), Err: err})
	}
}

// Stop cancels the pending debounce and discards in-flight results.
func (s *Selector) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
	}
}

// SelectionNames resolves the current selection in one batch.
func (s *Selector) SelectionNames(ctx context.Context) map[string]string {
	return s.dir.ResolveNames(ctx, s.Selection(), s.names)
}

func (s *Selector) notifyChange(sel []string) {
	if s.onChange != nil {
		s.onChange(sel)
	}
}

func (s *Selector) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Selector) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.selection)
}

func (s *Selector) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Term is the debounced search term.
func (s *Selector) Term() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

// Results returns the last results applied for the current term.
func (s *Selector) Results() []skill.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.results)
}

func (s *Selector) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
