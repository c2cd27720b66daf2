// Package web serves a read-only, live-reloading HTML preview of a minibook file.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"minibook-cli/internal/codec"
	"minibook-cli/internal/logging"
	"minibook-cli/internal/model"
	"minibook-cli/internal/progress"
	"minibook-cli/internal/publish"
	"minibook-cli/internal/templates"
	"minibook-cli/internal/watch"
)

//go:embed templates/*.html
var assetsFS embed.FS

type ServerConfig struct {
	Addr    string
	File    string
	Profile progress.Profile
	Log     *logging.Logger
}

type Server struct {
	mu   sync.RWMutex
	cfg  ServerConfig
	tmpl *template.Template
	log  *logging.Logger

	router chi.Router
	hub    *reloadHub
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.File = strings.TrimSpace(cfg.File)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if cfg.File == "" {
		return nil, errors.New("web: file is empty")
	}
	if cfg.Profile.Key == "" {
		p, err := progress.LookupProfile(progress.DefaultProfile)
		if err != nil {
			return nil, err
		}
		cfg.Profile = p
	}
	if cfg.Log == nil {
		cfg.Log = logging.Nop()
	}

	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, tmpl: tmpl, log: cfg.Log.With("component", "preview"), hub: newReloadHub()}
	s.setupRoutes()
	return s, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) file() string {
	s.mu.RLock()
	f := s.cfg.File
	s.mu.RUnlock()
	return f
}

func (s *Server) profile() progress.Profile {
	s.mu.RLock()
	p := s.cfg.Profile
	s.mu.RUnlock()
	return p
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleHome)
	r.Get("/markdown", s.handleMarkdown)
	r.Get("/api/document", s.handleDocument)
	r.Get("/ws", s.handleWS)

	s.router = r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Notify tells every connected browser to reload.
func (s *Server) Notify() {
	s.hub.broadcast()
}

// loadDocument reads the previewed file. missing is true when it does not exist yet.
func (s *Server) loadDocument() (doc model.Document, missing bool, err error) {
	doc, err = publish.ReadDocument(s.file())
	if errors.Is(err, os.ErrNotExist) {
		return model.NewDocument(), true, nil
	}
	return doc, false, err
}

type pageVM struct {
	Title    string
	File     string
	Template string
	Profile  progress.Profile
	Summary  progress.Summary
	Missing  bool
	Body     template.HTML
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	doc, missing, err := s.loadDocument()
	if err != nil {
		s.log.Error("read document", "file", s.file(), "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	p := s.profile()
	vm := pageVM{
		Title:    doc.Title,
		File:     filepath.Base(s.file()),
		Template: templates.Name(doc.StructureKind),
		Profile:  p,
		Summary:  progress.Summarize(progress.TotalWordCount(doc), progress.DocumentGoal(doc, p)),
		Missing:  missing,
		Body:     renderDocumentHTML(doc),
	}
	if vm.Title == "" {
		vm.Title = publish.DefaultExportBase
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "page.html", vm); err != nil {
		s.log.Error("render preview", "err", err)
	}
}

func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	doc, missing, err := s.loadDocument()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if missing {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(codec.Serialize(doc)))
}

type documentResponse struct {
	Document model.Document   `json:"document"`
	Profile  progress.Profile `json:"profile"`
	Summary  progress.Summary `json:"summary"`
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc, missing, err := s.loadDocument()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if missing {
		http.NotFound(w, r)
		return
	}
	p := s.profile()
	resp := documentResponse{
		Document: doc,
		Profile:  p,
		Summary:  progress.Summarize(progress.TotalWordCount(doc), progress.DocumentGoal(doc, p)),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// watchFile forwards file changes to connected browsers until ctx is done.
func (s *Server) watchFile(ctx context.Context) error {
	fw, err := watch.NewFileWatcher(s.file(), s.log)
	if err != nil {
		return err
	}
	events, err := fw.Watch(ctx)
	if err != nil {
		_ = fw.Stop()
		return err
	}
	go func() {
		defer fw.Stop()
		for ev := range events {
			s.log.Debug("file event", "path", ev.Path, "op", ev.Op.String(), "clients", s.hub.count())
			s.Notify()
		}
	}()
	return nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.watchFile(ctx); err != nil {
		// Preview still works without live reload.
		s.log.Warn("live reload disabled", "err", err)
	}

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("preview listening", "addr", s.cfg.Addr, "file", s.file())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
