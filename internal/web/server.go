// Package web serves the dashboard: a side panel to add assets, the combined
// chart and one expandable table per tracked asset.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"AssetWatch/internal/collector"
	"AssetWatch/internal/model"
	"AssetWatch/internal/registry"
	"AssetWatch/internal/renderer"
	"AssetWatch/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/zeromicro/go-zero/core/logx"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "assetwatch_session"

// Placeholder is shown instead of the chart while nothing is tracked.
const Placeholder = "Add assets to see their performance."

//go:embed templates/dashboard.html
var templates embed.FS

var dashboard = template.Must(template.ParseFS(templates, "templates/dashboard.html"))

type Server struct {
	Sessions  *session.Manager
	Collector *collector.Collector
}

func NewServer(sessions *session.Manager, col *collector.Collector) *Server {
	return &Server{Sessions: sessions, Collector: col}
}

// Handler returns the router serving every dashboard route.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.Mount(r)
	return r
}

func (s *Server) Mount(r chi.Router) {
	r.Get("/", s.handleDashboard)
	r.Post("/assets", s.handleAddAsset)
	r.Route("/api", func(r chi.Router) {
		r.Get("/series", s.handleSeries)
		r.Get("/details", s.handleDetails)
	})
}

// sessionFor returns the caller's session, starting one when the cookie is
// missing or stale.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}
	sess := s.Sessions.GetOrCreate(id)
	if sess.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

type detailView struct {
	Title string
	Table template.HTML
}

type dashboardView struct {
	Flash       *session.Flash
	Traces      []renderer.Trace
	Placeholder string
	Details     []detailView
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)

	var (
		buf bytes.Buffer
		err error
	)
	sess.Do(func(sess *session.Session) {
		var view dashboardView
		view, err = buildDashboard(sess)
		if err == nil {
			err = dashboard.Execute(&buf, view)
		}
	})
	if err != nil {
		logx.Errorf("render dashboard for session %s: %v", sess.ID, err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// buildDashboard rebuilds the whole view from the session registry.
func buildDashboard(sess *session.Session) (dashboardView, error) {
	view := dashboardView{Flash: sess.TakeFlash(), Placeholder: Placeholder}

	series, err := sess.Registry.RenderSeries()
	switch {
	case errors.Is(err, registry.ErrNothingToRender):
	case err != nil:
		return view, err
	default:
		view.Traces = renderer.Traces(series)
	}

	for _, d := range sess.Registry.RenderDetail() {
		table, err := renderer.HTML(renderer.TableMarkdown(d))
		if err != nil {
			return view, err
		}
		view.Details = append(view.Details, detailView{Title: d.Title, Table: template.HTML(table)})
	}
	return view, nil
}

func (s *Server) handleAddAsset(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	kind, ok := model.ParseKind(r.PostFormValue("kind"))
	symbol := r.PostFormValue("symbol")

	sess.Do(func(sess *session.Session) {
		if !ok {
			sess.SetFlash(session.FlashWarning, "Choose an asset type.")
			return
		}
		asset, err := s.Collector.Track(r.Context(), sess, kind, symbol)
		if err != nil {
			sess.SetFlash(session.FlashWarning, collector.UserMessage(err))
			return
		}
		sess.SetFlash(session.FlashSuccess, fmt.Sprintf("%s %s added.", kind.Label(), asset.Identifier()))
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type seriesResponse struct {
	Traces  []renderer.Trace `json:"traces"`
	Message string           `json:"message,omitempty"`
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)

	resp := seriesResponse{Traces: []renderer.Trace{}}
	var err error
	sess.Do(func(sess *session.Session) {
		var series []registry.Series
		series, err = sess.Registry.RenderSeries()
		if err == nil {
			resp.Traces = renderer.Traces(series)
		}
	})
	switch {
	case errors.Is(err, registry.ErrNothingToRender):
		resp.Message = Placeholder
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to render series")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type detailResponse struct {
	Label   string     `json:"label"`
	Kind    model.Kind `json:"kind"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)

	resp := []detailResponse{}
	sess.Do(func(sess *session.Session) {
		for _, d := range sess.Registry.RenderDetail() {
			resp = append(resp, detailResponse{
				Label:   d.Label,
				Kind:    d.Kind,
				Title:   d.Title,
				Columns: d.Columns,
				Rows:    d.Rows,
			})
		}
	})
	writeJSON(w, http.StatusOK, resp)
}

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, apiError{Error: message})
}

// NewHTTPServer wraps handler with the dashboard timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
