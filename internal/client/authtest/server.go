// Package authtest runs an in-process stand-in for the Lynq authentication
// API so the client can be exercised end to end in tests.
package authtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

// Request is one call the server received.
type Request struct {
	Path      string
	RequestID string
	Body      map[string]string
}

type failure struct {
	status int
	body   string
}

// Server is a fake auth API. The zero value is not usable; call NewServer.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]string
	codes    map[string]string
	seq      int
	requests []Request
	failures map[string][]failure
	hold     map[string]chan struct{}
	secret   []byte
}

// NewServer starts the fake API. It is closed with t.Cleanup by the caller.
func NewServer() *Server {
	s := &Server{
		users:    make(map[string]string),
		codes:    make(map[string]string),
		failures: make(map[string][]failure),
		hold:     make(map[string]chan struct{}),
		secret:   []byte("authtest-secret"),
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/auth").Subrouter()
	api.Use(s.record, s.injectFailures)
	api.HandleFunc("/signup", s.signup).Methods(http.MethodPost)
	api.HandleFunc("/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/verify-code", s.verifyCode).Methods(http.MethodPost)
	api.HandleFunc("/resend-code", s.resendCode).Methods(http.MethodPost)

	s.Server = httptest.NewServer(r)
	return s
}

// AddUser registers a verified account.
func (s *Server) AddUser(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
}

// CodeFor returns the code currently valid for email.
func (s *Server) CodeFor(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[email]
}

// Fail makes the next call to path answer with status and a JSON message.
// An empty message produces a body without the field.
func (s *Server) Fail(path string, status int, message string) {
	body := `{}`
	if message != "" {
		b, _ := json.Marshal(map[string]string{"message": message})
		body = string(b)
	}
	s.FailRaw(path, status, body)
}

// FailRaw makes the next call to path answer with status and a raw body.
func (s *Server) FailRaw(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = append(s.failures[path], failure{status: status, body: body})
}

// Hold blocks calls to path until the returned func is called.
func (s *Server) Hold(path string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold[path] = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.hold, path)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Calls counts the calls received for path.
func (s *Server) Calls(path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{}
		_ = json.NewDecoder(r.Body).Decode(&body)

		s.mu.Lock()
		s.requests = append(s.requests, Request{Path: r.URL.Path, RequestID: r.Header.Get("X-Request-ID"), Body: body})
		ch := s.hold[r.URL.Path]
		s.mu.Unlock()

		if ch != nil {
			select {
			case <-ch:
			case <-r.Context().Done():
				return
			}
		}

		next.ServeHTTP(w, withBody(r, body))
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		queue := s.failures[r.URL.Path]
		var f *failure
		if len(queue) > 0 {
			f = &queue[0]
			s.failures[r.URL.Path] = queue[1:]
		}
		s.mu.Unlock()

		if f != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func message(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func (s *Server) issueCodeLocked(email string) {
	s.seq++
	s.codes[email] = fmt.Sprintf("%06d", 100000+s.seq)
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	b := bodyOf(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[b["email"]]; ok {
		message(w, http.StatusConflict, "User already exists")
		return
	}
	s.users[b["email"]] = b["password"]
	s.issueCodeLocked(b["email"])
	message(w, http.StatusCreated, "Verification code sent")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	b := bodyOf(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if pw, ok := s.users[b["email"]]; !ok || pw != b["password"] {
		message(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	s.issueCodeLocked(b["email"])
	message(w, http.StatusOK, "Verification code sent")
}

func (s *Server) verifyCode(w http.ResponseWriter, r *http.Request) {
	b := bodyOf(r)
	s.mu.Lock()
	code, ok := s.codes[b["email"]]
	if !ok || code != b["code"] {
		s.mu.Unlock()
		message(w, http.StatusBadRequest, "Invalid or expired code")
		return
	}
	delete(s.codes, b["email"])
	s.mu.Unlock()

	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   b["email"],
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(7 * 24 * time.Hour)),
	}).SignedString(s.secret)
	if err != nil {
		message(w, http.StatusInternalServerError, "Token error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token, "message": "Verified"})
}

func (s *Server) resendCode(w http.ResponseWriter, r *http.Request) {
	b := bodyOf(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[b["email"]]; !ok {
		message(w, http.StatusNotFound, "User not found")
		return
	}
	s.issueCodeLocked(b["email"])
	message(w, http.StatusOK, "Verification code resent")
}
