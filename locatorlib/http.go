package locatorlib

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultRequestTimeout = 30 * time.Second

type HTTPOptions struct {
	Locator        *Locator
	Logger         Logger
	StaticDir      string
	RequestTimeout time.Duration
}

type httpHandler struct {
	locator *Locator
	logger  Logger
	static  http.Handler
}

func (h httpHandler) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("pong")) // nolint: errcheck
}

func (h httpHandler) handleNotFound(w http.ResponseWriter, req *http.Request) {
	if h.static != nil && (req.Method == http.MethodGet || req.Method == http.MethodHead) {
		h.static.ServeHTTP(w, req)

		return
	}

	h.sendError(w, nil, "Not found", http.StatusNotFound)
}

func (h httpHandler) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	h.sendError(w, nil, "This HTTP method is not allowed", http.StatusMethodNotAllowed)
}

func (h httpHandler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		elapsed := time.Since(started)

		metricRequestDuration.
			WithLabelValues(req.Method, strconv.Itoa(status)).
			Observe(elapsed.Seconds())
		h.logger.Access(req.Method, req.URL.Path, req.RemoteAddr, status, elapsed)
	})
}

func (h httpHandler) encodeJSON(w http.ResponseWriter, data interface{}) {
	encoder := json.NewEncoder(w)

	encoder.SetEscapeHTML(false)
	encoder.Encode(data) // nolint: errcheck
}

func (h httpHandler) sendError(w http.ResponseWriter, err error, message string, statusCode int) {
	e := &httpError{
		message:    message,
		statusCode: statusCode,
		err:        err,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode())
	h.encodeJSON(w, e)
}

func (h httpHandler) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	h.encodeJSON(w, data)
}

// NewHTTPHandler builds a router which serves lookups, stats, metrics
// and optional static files.
func NewHTTPHandler(opts HTTPOptions) http.Handler {
	handler := httpHandler{
		locator: opts.Locator,
		logger:  opts.Logger,
	}

	if opts.StaticDir != "" {
		if stat, err := os.Stat(opts.StaticDir); err == nil && stat.IsDir() {
			handler.static = http.FileServer(http.Dir(opts.StaticDir))
		}
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(middleware.RealIP)
	router.Use(handler.accessLog)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(timeout))

	router.NotFound(handler.handleNotFound)
	router.MethodNotAllowed(handler.handleMethodNotAllowed)

	router.Get("/ping", handler.handlePing)
	router.Get("/metrics", promhttp.Handler().ServeHTTP)
	router.Get("/api/stats", handler.handleGetStats)
	router.Get("/api/ip-locations/{ip}", handler.handleGetLocation)
	router.Post("/api/ip-locations", handler.handlePost)

	return router
}
