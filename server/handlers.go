package server

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ByLCY/acta/acta"
	"github.com/ByLCY/acta/layout"
	"github.com/ByLCY/acta/renderer"
	"github.com/ByLCY/acta/sink"
)

func (s *Server) liveness(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readiness(w http.ResponseWriter, r *http.Request) {
	if s.deps.Ready != nil {
		if err := s.deps.Ready(r.Context()); err != nil {
			LoggerFrom(r.Context(), s.log).Error("readiness_check_failed", slog.Any("error", err))
			writeJSON(w, http.StatusServiceUnavailable, successEnvelope{Data: map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			}})
			return
		}
	}
	ok(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) listFlavors(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, acta.Builtin())
}

func (s *Server) listBackends(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, map[string]any{
		"default":  s.deps.DefaultBackend,
		"backends": s.backendNames(),
	})
}

// request resolves the flavor, backend and record of a compose call. Only
// embedded flavors are reachable over HTTP.
func (s *Server) request(r *http.Request) (*acta.Flavor, renderer.Backend, acta.Record, error) {
	fl, err := acta.LoadFlavor(chi.URLParam(r, "flavor"))
	if err != nil {
		return nil, nil, acta.Record{}, err
	}
	name := r.URL.Query().Get("backend")
	if name == "" {
		name = s.deps.DefaultBackend
	}
	backend, found := s.deps.Backends[name]
	if !found {
		return nil, nil, acta.Record{}, badRequest("UNKNOWN_BACKEND", "unknown backend "+name)
	}
	rec, err := acta.DecodeRecord(io.LimitReader(r.Body, maxRecordBytes))
	if err != nil {
		return nil, nil, acta.Record{}, badRequest("INVALID_RECORD", err.Error())
	}
	return fl, backend, rec, nil
}

// printActa answers POST /api/v1/actas/{flavor}. The PDF is streamed
// inline, or with ?store=1 handed to the document store and described by
// a JSON outcome.
func (s *Server) printActa(w http.ResponseWriter, r *http.Request) {
	logger := LoggerFrom(r.Context(), s.log)
	fl, backend, rec, err := s.request(r)
	if err != nil {
		writeError(w, classify(err, sink.Outcome{}, logger))
		return
	}

	store := r.URL.Query().Get("store") == "1"
	var target sink.Sink = sink.HTTPSink{W: w}
	if store {
		target = s.deps.Store
		if target == nil {
			target = sink.RedisSink{}
		}
	}
	opts := s.deps.Compose
	opts.Logger = logger
	printer, err := acta.NewPrinter(backend, target, opts)
	if err != nil {
		writeError(w, classify(err, sink.Outcome{}, logger))
		return
	}
	out, err := printer.Print(r.Context(), rec, fl)
	if err != nil {
		writeError(w, classify(err, out, logger))
		return
	}
	if store {
		ok(w, http.StatusCreated, out)
	}
}

// layoutActa answers POST /api/v1/actas/{flavor}/layout with the display
// list instead of a PDF, for debugging page breaks.
func (s *Server) layoutActa(w http.ResponseWriter, r *http.Request) {
	logger := LoggerFrom(r.Context(), s.log)
	fl, backend, rec, err := s.request(r)
	if err != nil {
		writeError(w, classify(err, sink.Outcome{}, logger))
		return
	}
	opts := s.deps.Compose
	opts.Measurer = backend
	opts.Logger = logger
	c, err := acta.NewComposer(opts)
	if err != nil {
		writeError(w, classify(err, sink.Outcome{}, logger))
		return
	}
	res, err := c.Compose(rec, fl)
	if err != nil {
		writeError(w, classify(err, sink.Outcome{}, logger))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := layout.EncodeDebugJSON(w, res); err != nil {
		logger.Warn("layout encode failed", slog.Any("error", err))
	}
}
