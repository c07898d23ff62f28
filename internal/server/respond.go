package server

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	jsonContentType    = "application/json"
	problemContentType = "application/problem+json"
	statusDocBaseURL   = "https://httpstatuses.io"
)

var errNotFound = errors.New("resource not found")

// Problem is an RFC 9457 problem document.
type Problem struct {
	Type      string `json:"type,omitempty"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"`
	TraceID   string `json:"traceId,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

func newTraceID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	s.write(w, r, status, jsonContentType, payload)
}

func (s *Server) respondProblem(w http.ResponseWriter, r *http.Request, status int, err error) {
	problem := Problem{
		Type:      fmt.Sprintf("%s/%d", statusDocBaseURL, status),
		Title:     http.StatusText(status),
		Status:    status,
		Detail:    err.Error(),
		Instance:  r.URL.RequestURI(),
		TraceID:   newTraceID(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("trace_id", problem.TraceID),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error(problem.Title, fields...)
	} else {
		s.logger.Debug(problem.Title, fields...)
	}

	s.write(w, r, status, problemContentType, problem)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, contentType string, payload any) {
	body, err := sonic.ConfigStd.Marshal(payload)
	if err != nil {
		s.logger.Error("failed to encode response", zap.Error(err), zap.String("path", r.URL.Path))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	body = append(body, '\n')

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("failed to write response", zap.Error(err))
	}
}
