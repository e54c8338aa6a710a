// Package session runs one operator form session: two skill pickers, the
// query and registration submissions, a name cache and a loading flag.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"skill-match/internal/domain/matching"
	"skill-match/internal/logging"
	"skill-match/internal/selector"
	"skill-match/internal/usecase"

	"github.com/google/uuid"
)

var ErrUnknownMessage = errors.New("unknown message type")

type Deps struct {
	Directory    usecase.SkillDirectoryUsecase
	Matching     usecase.MatchingUsecase
	Registration usecase.UserRegistrationUsecase
	Logger       logging.Logger

	Debounce     time.Duration
	NameCacheMax int
	NameCacheTTL time.Duration
}

type Session struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
	deps   Deps
	logger logging.Logger
	send   func(Event)

	names *usecase.NameCache
	forms map[Form]*selector.Selector

	busy atomic.Bool
	wg   sync.WaitGroup
}

// New creates a session bound to parent. send must be safe for concurrent
// use; it is called from search, query and registration goroutines.
func New(parent context.Context, deps Deps, send func(Event)) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		id:     uuid.NewString(),
		ctx:    ctx,
		cancel: cancel,
		deps:   deps,
		send:   send,
		names:  usecase.NewNameCache(deps.NameCacheMax, deps.NameCacheTTL),
		forms:  make(map[Form]*selector.Selector, 2),
	}
	s.logger = logging.OrNop(deps.Logger).With("session_id", s.id)

	for _, f := range []Form{FormQuery, FormRegister} {
		s.forms[f] = selector.New(ctx, deps.Directory, selector.Options{
			Debounce:  deps.Debounce,
			Names:     s.names,
			OnChange:  func([]string) { s.emitSelection(f) },
			OnResults: func(r selector.Results) { s.emitSkills(f, r) },
		})
	}
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) Context() context.Context { return s.ctx }

// Busy reports whether a query or registration is in flight.
func (s *Session) Busy() bool { return s.busy.Load() }

// Start loads the initial skill listing for both forms.
func (s *Session) Start() {
	for _, sel := range s.forms {
		sel.Refresh()
	}
	s.logger.Debug(s.ctx, "session started")
}

// Handle applies one inbound message. Query and registration run in the
// background; their outcome arrives as events.
func (s *Session) Handle(msg Message) error {
	if s.ctx.Err() != nil {
		return s.ctx.Err()
	}
	form := msg.Form
	if form == "" {
		form = FormQuery
	}
	sel, ok := s.forms[form]
	if !ok {
		s.emit(Event{Type: EventError, Form: form, Message: "unknown form"})
		return nil
	}

	switch msg.Type {
	case MsgToggle:
		sel.Toggle()
		s.emitSelection(form)
	case MsgType:
		sel.Type(msg.Term)
	case MsgSelect:
		if !sel.Select(strings.TrimSpace(msg.SkillID)) {
			s.emitSelection(form)
		}
	case MsgRemove:
		sel.Remove(strings.TrimSpace(msg.SkillID))
	case MsgQuery:
		s.submit(form, func(ctx context.Context) { s.runQuery(ctx, form, sel.Selection(), msg.Policy) })
	case MsgRegister:
		s.submit(form, func(ctx context.Context) { s.runRegister(ctx, form, msg.Name, sel.Selection()) })
	default:
		s.emit(Event{Type: EventError, Message: "unknown message type " + msg.Type})
		return ErrUnknownMessage
	}
	return nil
}

func (s *Session) submit(form Form, run func(ctx context.Context)) {
	if !s.busy.CompareAndSwap(false, true) {
		s.emit(Event{Type: EventBusy, Form: form, Data: BusyData{Busy: true}})
		return
	}
	s.emit(Event{Type: EventBusy, Form: form, Data: BusyData{Busy: true}})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.busy.Store(false)
			s.emit(Event{Type: EventBusy, Form: form, Data: BusyData{Busy: false}})
		}()
		run(s.ctx)
	}()
}

func (s *Session) runQuery(ctx context.Context, form Form, skillIDs []string, policy string) {
	in := usecase.MatchInput{SkillIDs: skillIDs, Names: s.names}
	if strings.TrimSpace(policy) != "" {
		p, err := matching.ParsePolicy(policy)
		if err != nil {
			s.emit(Event{Type: EventError, Form: form, Message: err.Error()})
			return
		}
		in.Policy = p
	}

	res, err := s.deps.Matching.Match(ctx, in)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.emit(Event{Type: EventError, Form: form, Message: matchMessage(err)})
		return
	}

	data := ResultsData{Policy: string(res.Policy), Queries: res.Queries, Users: make([]UserView, 0, len(res.Users))}
	for _, u := range res.Users {
		v := UserView{ID: u.ID, Name: u.Name, Skills: make([]SkillView, 0, len(u.Skills))}
		for i, id := range u.Skills {
			v.Skills = append(v.Skills, SkillView{ID: id, Name: u.SkillNames[i]})
		}
		data.Users = append(data.Users, v)
	}
	s.emit(Event{Type: EventResults, Form: form, Data: data})
}

func (s *Session) runRegister(ctx context.Context, form Form, name string, skillIDs []string) {
	u, err := s.deps.Registration.Register(ctx, usecase.RegisterUserInput{Name: name, Skills: skillIDs})
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.emit(Event{Type: EventError, Form: form, Message: usecase.MsgAddUserFailed})
		return
	}
	s.emit(Event{Type: EventRegistered, Form: form, Message: usecase.MsgUserAdded, Data: RegisteredData{
		ID:          u.ID,
		Name:        u.Name,
		Skills:      u.Skills,
		SkillSetKey: u.SkillSetKey,
	}})
}

func matchMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrNoSkillsSelected):
		return usecase.MsgNoSkillsSelected
	case errors.Is(err, usecase.ErrNoUsersFound):
		return usecase.MsgNoUsersFound
	default:
		return usecase.MsgQueryFailed
	}
}

func (s *Session) emitSelection(form Form) {
	sel := s.forms[form]
	ids := sel.Selection()
	names := sel.SelectionNames(s.ctx)
	if s.ctx.Err() != nil {
		return
	}
	views := make([]SkillView, 0, len(ids))
	for _, id := range ids {
		views = append(views, SkillView{ID: id, Name: names[id]})
	}
	s.emit(Event{Type: EventSelection, Form: form, Data: SelectionData{State: sel.State().String(), Skills: views}})
}

func (s *Session) emitSkills(form Form, r selector.Results) {
	if r.Err != nil {
		s.logger.Warn(s.ctx, "skill search failed", "form", string(form), "term", r.Term, "error", r.Err)
		return
	}
	views := make([]SkillView, 0, len(r.Skills))
	for _, it := range r.Skills {
		views = append(views, SkillView{ID: it.ID, Name: it.Name})
	}
	s.emit(Event{Type: EventSkills, Form: form, Data: SkillsData{Term: r.Term, Skills: views}})
}

func (s *Session) emit(evt Event) {
	if s.ctx.Err() != nil || s.send == nil {
		return
	}
	s.send(evt)
}

// Close cancels the session and waits for in-flight submissions to finish.
func (s *Session) Close() {
	s.cancel()
	for _, sel := range s.forms {
		sel.Stop()
	}
	s.wg.Wait()
	s.logger.Debug(context.Background(), "session closed")
}
