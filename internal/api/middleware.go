package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ctxKey int

const ctxKeyRequestID ctxKey = iota

const (
	headerRequestID = "X-Request-ID"

	// maxRequestIDLen bounds client-supplied request IDs echoed into logs.
	maxRequestIDLen = 64

	// maxRequestBodySize caps request bodies at 1 MiB.
	maxRequestBodySize = 1 << 20
)

// requestID echoes a sane client X-Request-ID or assigns a UUID, and stores
// it on the request context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID, id)))
	})
}

// requestIDFrom returns the id stored by requestID, or "".
func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string) //nolint:errcheck // absent key yields ""
	return id
}

// accessLog logs one line per request, and turns a handler panic into a
// 500 so one bad request cannot take the node down.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			if p := recover(); p != nil {
				s.logger.Error("panic in HTTP handler",
					"panic", p,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", requestIDFrom(r.Context()),
				)
				if ww.Status() == 0 {
					writeInternalError(ww, "internal server error")
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
				if websocketUpgrade(r) {
					status = http.StatusSwitchingProtocols
				}
			}
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", requestIDFrom(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func websocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

// corsPolicy is the api.cors section resolved once at startup. No allowed
// origins means any origin is allowed.
type corsPolicy struct {
	anyOrigin bool
	origins   map[string]struct{}
	methods   string
	headers   string
}

func newCORSPolicy(origins, methods, headers []string) corsPolicy {
	p := corsPolicy{
		anyOrigin: len(origins) == 0,
		origins:   make(map[string]struct{}, len(origins)),
		methods:   "GET, POST, OPTIONS",
		headers:   "Content-Type, " + headerRequestID,
	}
	for _, o := range origins {
		if o == "*" {
			p.anyOrigin = true
		}
		p.origins[o] = struct{}{}
	}
	if len(methods) > 0 {
		p.methods = strings.Join(methods, ", ")
	}
	if len(headers) > 0 {
		p.headers = strings.Join(headers, ", ")
	}
	return p
}

func (p corsPolicy) allows(origin string) bool {
	if p.anyOrigin {
		return true
	}
	_, ok := p.origins[origin]
	return ok
}

// handler sets CORS headers for allowed origins and answers every
// preflight with 204.
func (p corsPolicy) handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && p.allows(origin) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", p.methods)
			h.Set("Access-Control-Allow-Headers", p.headers)
			h.Set("Access-Control-Max-Age", "86400")
			h.Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
