package http

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hara/frontend"
	"github.com/secmon-lab/hara/pkg/domain/model"
	"github.com/secmon-lab/hara/pkg/service/video"
	"github.com/secmon-lab/hara/pkg/usecase"
	"github.com/secmon-lab/hara/pkg/utils/logging"
	"github.com/secmon-lab/hara/pkg/utils/safe"
)

const (
	defaultGenerateTimeout = 2 * time.Minute
	defaultMaxUploadSize   = 32 << 20
)

// HARAUseCase generates and exports reports
type HARAUseCase interface {
	Generate(ctx context.Context, input usecase.GenerateInput) (*model.ReportDocument, error)
	ExportXLSX(ctx context.Context, doc *model.ReportDocument) ([]byte, error)
}

// VideoUseCase backs the video demo endpoints
type VideoUseCase interface {
	Search(ctx context.Context, query string) ([]video.Video, error)
	Transcript(ctx context.Context, videoID string) string
}

// SampleUseCase serves the sample PDF
type SampleUseCase interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

type Server struct {
	router          *chi.Mux
	hara            HARAUseCase
	video           VideoUseCase
	sample          SampleUseCase
	generateTimeout time.Duration
	maxUploadSize   int64
	enableSentry    bool
}

type Options func(*Server)

func WithVideo(uc VideoUseCase) Options {
	return func(s *Server) {
		s.video = uc
	}
}

func WithSample(uc SampleUseCase) Options {
	return func(s *Server) {
		s.sample = uc
	}
}

// WithGenerateTimeout bounds report generation requests
func WithGenerateTimeout(d time.Duration) Options {
	return func(s *Server) {
		s.generateTimeout = d
	}
}

func WithMaxUploadSize(n int64) Options {
	return func(s *Server) {
		s.maxUploadSize = n
	}
}

// WithSentry attaches a Sentry hub to every request. sentry.Init must be called beforehand.
func WithSentry(enabled bool) Options {
	return func(s *Server) {
		s.enableSentry = enabled
	}
}

func New(hara HARAUseCase, opts ...Options) (*Server, error) {
	if hara == nil {
		return nil, goerr.New("HARA use case is required")
	}

	r := chi.NewRouter()

	s := &Server{
		router:          r,
		hara:            hara,
		generateTimeout: defaultGenerateTimeout,
		maxUploadSize:   defaultMaxUploadSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	if s.enableSentry {
		r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(s.generateTimeout))
			r.Post("/hara", s.generateHandler)
			r.Post("/hara/xlsx", s.exportHandler)
		})
		r.Get("/matrix", matrixHandler)
		r.Get("/recent-pdf", s.recentPDFHandler)
		r.Get("/search", s.searchHandler)
		r.Get("/transcript", s.transcriptHandler)
	})

	// Static file serving for SPA (catch-all, must be last)
	staticFS, err := fs.Sub(frontend.StaticFiles, "dist")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to bind dist dir for static")
	}

	r.Get("/*", spaHandler(staticFS))

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger puts a logger carrying the request ID into the request context
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.From(ctx).With("request_id", middleware.GetReqID(ctx))
		next.ServeHTTP(w, r.WithContext(logging.With(ctx, logger)))
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// spaHandler handles SPA routing by serving static files and falling back to index.html
func spaHandler(staticFS fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := strings.TrimPrefix(r.URL.Path, "/")

		// If the path is empty, serve index.html
		if urlPath == "" {
			urlPath = "index.html"
		}

		file, err := staticFS.Open(urlPath)
		if err != nil {
			// File not found, serve index.html for SPA routing
			if indexFile, err := staticFS.Open("index.html"); err == nil {
				defer safe.Close(r.Context(), indexFile)
				w.Header().Set("Content-Type", "text/html")
				safe.Copy(r.Context(), w, indexFile)
				return
			}

			http.NotFound(w, r)
			return
		}
		safe.Close(r.Context(), file)

		fileServer.ServeHTTP(w, r)
	}
}
