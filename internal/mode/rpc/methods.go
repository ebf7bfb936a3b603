// ABOUTME: Router and handler implementations for the chat RPC methods
// ABOUTME: The Service owns one conversation: history, mode, transcript, and intent transitions

package rpc

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/mauromedda/cognichat-go/internal/intent"
	"github.com/mauromedda/cognichat-go/internal/log"
	"github.com/mauromedda/cognichat-go/internal/mode"
	"github.com/mauromedda/cognichat-go/internal/session"
	"github.com/mauromedda/cognichat-go/pkg/chat"
)

// HandlerFunc processes an RPC request's params and returns a Response.
type HandlerFunc func(params json.RawMessage) Response

// Router dispatches RPC requests to registered handlers by method name.
type Router struct {
	handlers map[string]HandlerFunc
}

// NewRouter creates a Router with an empty handler registry.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]HandlerFunc)}
}

// Register associates a method name with a handler function.
func (r *Router) Register(method string, handler HandlerFunc) {
	r.handlers[method] = handler
}

// Handle dispatches a request to the registered handler, or returns
// a method-not-found error if no handler is registered.
func (r *Router) Handle(req Request) Response {
	h, ok := r.handlers[req.Method]
	if !ok {
		return Response{
			ID:    req.ID,
			Error: NewMethodNotFoundError(req.Method),
		}
	}

	resp := h(req.Params)
	resp.ID = req.ID
	return resp
}

// Service answers chat requests for one conversation. Requests are
// serialized by the Server; the mutex guards direct callers.
type Service struct {
	engine      *chat.Engine
	sessionsDir string
	now         func() time.Time

	mu       sync.Mutex
	sess     *session.Session
	detector *intent.TransitionDetector
}

// NewService creates a service backed by engine e and conversation sess.
// sessionsDir is listed by list_sessions; empty disables the listing.
func NewService(e *chat.Engine, sess *session.Session, sessionsDir string) *Service {
	return &Service{
		engine:      e,
		sessionsDir: sessionsDir,
		now:         time.Now,
		sess:        sess,
		detector:    intent.NewTransitionDetector(),
	}
}

// Register wires all chat method handlers into the given router.
func (s *Service) Register(r *Router) {
	r.Register(MethodRespond, s.handleRespond)
	r.Register(MethodListModes, s.handleListModes)
	r.Register(MethodSetMode, s.handleSetMode)
	r.Register(MethodGetStatus, s.handleGetStatus)
	r.Register(MethodReset, s.handleReset)
	r.Register(MethodListSessions, s.handleListSessions)
}

func decodeParams(params json.RawMessage, v any) *Error {
	if len(params) == 0 {
		return NewInvalidParamsError("missing params")
	}
	if err := json.Unmarshal(params, v); err != nil {
		return NewInvalidParamsError("invalid params: " + err.Error())
	}
	return nil
}

func (s *Service) lookupMode(name string) (chat.Mode, *Error) {
	info, err := s.engine.Registry().Lookup(name)
	if err != nil {
		return "", NewUnknownModeError(err.Error())
	}
	return info.ID, nil
}

func (s *Service) handleRespond(params json.RawMessage) Response {
	var p RespondParams
	if rerr := decodeParams(params, &p); rerr != nil {
		return Response{Error: rerr}
	}

	var m chat.Mode
	if p.Mode != "" {
		var rerr *Error
		if m, rerr = s.lookupMode(p.Mode); rerr != nil {
			return Response{Error: rerr}
		}
	}

	if p.History != nil {
		res, _ := mode.Answer(s.engine, p.Utterance, p.History, m)
		return Response{Result: respondResult(res, nil, p.Trace)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if m != "" {
		if err := s.sess.SetMode(m); err != nil {
			return Response{Error: NewSessionError(err.Error())}
		}
	}

	res, err := mode.Answer(s.engine, p.Utterance, s.sess.History, s.sess.Mode)
	var tr *intent.Transition
	if err == nil {
		tr = s.detector.Detect(intent.Classification{
			Intent: res.Trace.Classification.Intent,
			Signal: res.Trace.Signal,
		})
		if tr != nil {
			log.Debug("rpc: intent transition %s", tr.Reason)
		}
	}

	now := s.now()
	if err := s.sess.AddUser(p.Utterance, now); err != nil {
		return Response{Error: NewSessionError(err.Error())}
	}
	if err := s.sess.AddAssistant(session.AssistantData{
		Content:     res.Text,
		TemplateKey: res.Trace.TemplateKey(),
		Strategy:    string(res.Trace.Strategy),
	}, now); err != nil {
		return Response{Error: NewSessionError(err.Error())}
	}

	return Response{Result: respondResult(res, tr, p.Trace)}
}

func respondResult(res chat.Result, tr *intent.Transition, withTrace bool) RespondResult {
	out := RespondResult{
		Text:        res.Text,
		Mode:        res.Trace.Mode,
		TemplateKey: res.Trace.TemplateKey(),
	}
	if tr != nil {
		out.Transition = &TransitionInfo{From: tr.From.String(), To: tr.To.String(), Reason: tr.Reason}
	}
	if withTrace {
		trace := res.Trace
		out.Trace = &trace
	}
	return out
}

func (s *Service) handleListModes(_ json.RawMessage) Response {
	return Response{Result: ModeListResult{Modes: s.engine.Modes()}}
}

func (s *Service) handleSetMode(params json.RawMessage) Response {
	var p SetModeParams
	if rerr := decodeParams(params, &p); rerr != nil {
		return Response{Error: rerr}
	}
	m, rerr := s.lookupMode(p.Mode)
	if rerr != nil {
		return Response{Error: rerr}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.SetMode(m); err != nil {
		return Response{Error: NewSessionError(err.Error())}
	}
	return Response{Result: ModeResult{Mode: s.sess.Mode}}
}

func (s *Service) handleGetStatus(_ json.RawMessage) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := StatusResult{
		SessionID:  s.sess.ID,
		Mode:       string(s.sess.Mode),
		Turns:      len(s.sess.History),
		Persistent: s.sess.Persistent(),
	}
	if cur, ok := s.detector.Current(); ok {
		status.Intent = cur.String()
	}
	return Response{Result: status}
}

// handleReset clears the in-memory conversation. The transcript keeps
// what was already written.
func (s *Service) handleReset(_ json.RawMessage) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := len(s.sess.History)
	s.sess.History = nil
	s.detector = intent.NewTransitionDetector()
	return Response{Result: ResetResult{Cleared: cleared}}
}

func (s *Service) handleListSessions(_ json.RawMessage) Response {
	out := SessionListResult{Sessions: []SessionInfo{}}
	if s.sessionsDir == "" {
		return Response{Result: out}
	}

	summaries, err := session.ListSessions(s.sessionsDir)
	if err != nil {
		return Response{Error: NewInternalError(err.Error())}
	}
	for _, sum := range summaries {
		out.Sessions = append(out.Sessions, SessionInfo{
			ID:      sum.ID,
			Mode:    sum.Mode,
			Created: sum.Started.Format(time.RFC3339),
		})
	}
	return Response{Result: out}
}
