package adms

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	pathCData      = "/iclock/cdata"
	pathRegistry   = "/iclock/registry"
	pathGetRequest = "/iclock/getrequest"

	maxPushBody = 1 << 20
	logBodyLen  = 200
)

// Handler returns the terminal-facing router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recoverOK)

	r.Get(pathCData, s.handlePoll)
	r.Post(pathCData, s.handlePush)
	r.HandleFunc(pathRegistry, s.handleRegistry)
	r.HandleFunc(pathGetRequest, s.handleGetRequest)

	r.NotFound(s.handleCatchAll)
	r.MethodNotAllowed(s.handleCatchAll)
	return r
}

func (s *Server) handlePoll(w http.ResponseWriter, r *http.Request) {
	sn := r.URL.Query().Get("SN")
	s.pollLog.Do(func() {
		s.logger.Info("terminal keep-alive", "sn", sn)
	})
	writeOK(w)
}

func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sn, table := q.Get("SN"), q.Get("table")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPushBody+1))
	if err != nil {
		s.logger.Warn("failed to read terminal push", "sn", sn, "error", err)
		writeOK(w)
		return
	}
	if len(body) > maxPushBody {
		body = completeLines(body[:maxPushBody])
		s.metrics.AddParseSkipped(1)
		s.logger.Warn("terminal push over size limit, trailing line dropped",
			"sn", sn, "limit", maxPushBody)
	}
	s.logger.Debug("terminal push", "sn", sn, "table", table, "data", truncate(string(body), logBodyLen))

	if table == TableAttlog {
		s.ingestAttlog(sn, string(body))
	}
	writeOK(w)
}

func (s *Server) ingestAttlog(sn, raw string) {
	events, skipped := ParseAttlog(raw)
	if skipped > 0 {
		s.metrics.AddParseSkipped(skipped)
		s.logger.Debug("skipped malformed ATTLOG lines", "sn", sn, "count", skipped)
	}
	now := s.clock.Now()
	for _, evt := range events {
		evt.SerialNumber = sn
		evt.ReceivedAt = now
		s.metrics.ObserveScan(evt.VerifyType)
		if evt.IsFaceScan() {
			s.logger.Info("face scan detected", "subject_id", evt.SubjectID, "sn", sn)
		}
		s.dispatch(evt)
	}
}

func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("terminal registered", "sn", r.URL.Query().Get("SN"))
	writeOK(w)
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	writeOK(w)
}

func (s *Server) handleCatchAll(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("unmatched terminal request", "method", r.Method, "path", r.URL.Path)
	writeOK(w)
}

// recoverOK keeps the terminal out of its retry loop even if a handler
// panics.
func (s *Server) recoverOK(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("terminal handler panicked", "path", r.URL.Path, "panic", rec)
				writeOK(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "OK")
}

// completeLines cuts b after its last newline so a line split by the size
// cap is never parsed.
func completeLines(b []byte) []byte {
	i := bytes.LastIndexAny(b, "\r\n")
	if i < 0 {
		return nil
	}
	return b[:i+1]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
