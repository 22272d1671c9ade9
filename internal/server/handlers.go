package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tbckr/lookupkit/internal/lookup"
	"github.com/tbckr/lookupkit/internal/tools"
	"github.com/tbckr/lookupkit/internal/version"
)

// maxSubmitBody bounds a submit request; raw email headers are the largest input.
const maxSubmitBody = 1 << 20

type ctxKey struct{}

// ToolInfo describes one tool in listings.
type ToolInfo struct {
	Name    string   `json:"name"`
	Short   string   `json:"description"`
	Method  string   `json:"method"`
	Path    string   `json:"path"`
	Field   string   `json:"field"`
	Accepts []string `json:"accepts"`
}

func newToolInfo(d tools.Definition) ToolInfo {
	accepts := make([]string, 0, len(d.Accepts))
	for _, k := range d.Accepts {
		accepts = append(accepts, k.String())
	}
	return ToolInfo{
		Name:    d.Name,
		Short:   d.Short,
		Method:  d.Tool.Request("").Method,
		Path:    d.Path,
		Field:   d.Field,
		Accepts: accepts,
	}
}

// SubmitRequest is the body of POST /api/tools/{tool}/submit.
type SubmitRequest struct {
	Input string `json:"input"`
}

// Bind implements render.Binder.
func (*SubmitRequest) Bind(*http.Request) error { return nil }

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) toolCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "tool")
		if _, ok := s.controllers[name]; !ok {
			s.respondError(w, r, fmt.Errorf("unknown tool %q", name), http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, name)))
	})
}

func (s *Server) tool(r *http.Request) (tools.Definition, *lookup.Controller) {
	name, _ := r.Context().Value(ctxKey{}).(string)
	return s.defs[name], s.controllers[name]
}

func (s *Server) handleHealth() http.HandlerFunc {
	type response struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, response{Status: "ok", Version: version.Version}, http.StatusOK)
	}
}

func (s *Server) handleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos := make([]ToolInfo, 0, len(s.defs))
		for _, d := range tools.All() {
			if def, ok := s.defs[d.Name]; ok {
				infos = append(infos, newToolInfo(def))
			}
		}
		s.respond(w, r, infos, http.StatusOK)
	}
}

func (s *Server) handleDescribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, _ := s.tool(r)
		s.respond(w, r, newToolInfo(d), http.StatusOK)
	}
}

func (s *Server) handleState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, c := s.tool(r)
		s.respond(w, r, c.State(), http.StatusOK)
	}
}

// handleSubmit submits the input and, unless ?wait=false, responds with the
// settled state. With wait=false it responds 202 with the state right after
// validation.
func (s *Server) handleSubmit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, c := s.tool(r)

		var body SubmitRequest
		r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBody)
		if err := render.Bind(r, &body); err != nil && !errors.Is(err, io.EOF) {
			s.respondError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
			return
		}

		wait := true
		if v := r.URL.Query().Get("wait"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				s.respondError(w, r, fmt.Errorf("invalid wait parameter %q", v), http.StatusBadRequest)
				return
			}
			wait = b
		}

		done := c.Submit(s.lookupCtx, body.Input)
		if !wait {
			s.respond(w, r, c.State(), http.StatusAccepted)
			return
		}
		select {
		case st := <-done:
			s.respond(w, r, st, http.StatusOK)
		case <-r.Context().Done():
			// Client went away; the lookup still settles into the controller.
		}
	}
}

// handleEvents streams every state transition as a server-sent event until
// the client disconnects. The current state is sent first.
func (s *Server) handleEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, c := s.tool(r)
		flusher, ok := w.(http.Flusher)
		if !ok {
			s.respondError(w, r, errors.New("streaming unsupported"), http.StatusInternalServerError)
			return
		}

		events := make(chan lookup.State, 32)
		unsubscribe := c.Subscribe(func(st lookup.State) {
			select {
			case events <- st:
			default:
				s.logger.Debug("event stream lagging, dropping state", "tool", st.Tool, "seq", st.Seq)
			}
		})
		defer unsubscribe()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)

		if err := writeEvent(w, c.State()); err != nil {
			return
		}
		flusher.Flush()
		for {
			select {
			case <-r.Context().Done():
				return
			case st := <-events:
				if err := writeEvent(w, st); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w io.Writer, st lookup.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)
	return err
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, data any, status int) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	s.logger.Debug("request error", "path", r.URL.Path, "status", status, "error", err)
	s.respond(w, r, errorResponse{Error: err.Error()}, status)
}
