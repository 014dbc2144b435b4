// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

// Package clawdertest provides an in-memory implementation of the
// Clawder API for tests.
//
// The fake keeps accounts, posts, reviews, matches, notifications, and
// direct messages in memory and behaves like the real service where
// clients depend on it: invite redemption is idempotent per handle, a
// mutual like creates one match and a match.created notification for
// each side, notifications are redelivered on every authenticated
// response until acknowledged, and direct messages are deduplicated by
// client_msg_id.
//
//	server := clawdertest.NewServer(clawdertest.Config{InviteCodes: []string{"seed_v2"}})
//	defer server.Close()
//	tr, _ := transport.New(transport.Config{BaseURL: server.URL()})
package clawdertest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config configures a fake server.
type Config struct {
	// InviteCodes are accepted by /verify. Defaults to "seed_v2".
	InviteCodes []string

	// OmitCredential makes /verify succeed without returning an
	// api_key.
	OmitCredential bool

	// OmitViewerID makes authenticated /feed responses leave out
	// viewer_user_id.
	OmitViewerID bool
}

// Server is a running fake API. All methods are safe for concurrent
// use.
type Server struct {
	server *httptest.Server
	config Config

	mu         sync.Mutex
	sequence   int
	accounts   []*account
	byKey      map[string]*account
	byHandle   map[string]*account
	byID       map[string]*account
	posts      []*post
	postByID   map[string]*post
	reviews    map[string]*review
	likes      map[[2]string]bool
	matches    []*Match
	matchByID  map[string]*Match
	pairMatch  map[[2]string]*Match
	pending    map[string][]Notification
	acked      []string
	messages   map[string][]Message
	requests   map[string]int
	injections map[string][]injection
}

type account struct {
	ID      string
	Key     string
	Handle  string
	Name    string
	Bio     string
	Tags    []string
	Contact string
}

type post struct {
	ID       string   `json:"post_id"`
	AuthorID string   `json:"-"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Author   author   `json:"author"`
}

type author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type review struct {
	ID       string
	PostID   string
	Reviewer string
	Action   string
	Comment  string
	Replied  bool
}

// Match is a mutual like between two accounts.
type Match struct {
	ID        string `json:"match_id"`
	UserA     string `json:"-"`
	UserB     string `json:"-"`
	CreatedAt string `json:"created_at"`
}

// Notification is a pending server event.
type Notification struct {
	Type      string         `json:"type"`
	DedupeKey string         `json:"dedupe_key"`
	Payload   map[string]any `json:"payload"`
}

// Message is a stored direct message.
type Message struct {
	ID          string `json:"id"`
	MatchID     string `json:"match_id"`
	SenderID    string `json:"sender_id"`
	Content     string `json:"content"`
	ClientMsgID string `json:"client_msg_id"`
	CreatedAt   string `json:"created_at"`
}

type injection struct {
	status int
	drop   bool
}

// NewServer starts a fake API server. Call Close when done.
func NewServer(config Config) *Server {
	if len(config.InviteCodes) == 0 {
		config.InviteCodes = []string{"seed_v2"}
	}
	s := &Server{
		config:     config,
		byKey:      make(map[string]*account),
		byHandle:   make(map[string]*account),
		byID:       make(map[string]*account),
		postByID:   make(map[string]*post),
		reviews:    make(map[string]*review),
		likes:      make(map[[2]string]bool),
		matchByID:  make(map[string]*Match),
		pairMatch:  make(map[[2]string]*Match),
		pending:    make(map[string][]Notification),
		messages:   make(map[string][]Message),
		requests:   make(map[string]int),
		injections: make(map[string][]injection),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/verify", s.handleVerify)
	mux.HandleFunc("POST /api/sync", s.authenticated(s.handleSync))
	mux.HandleFunc("GET /api/feed", s.handleFeed)
	mux.HandleFunc("GET /api/browse", s.authenticated(s.handleBrowse))
	mux.HandleFunc("POST /api/post", s.authenticated(s.handlePost))
	mux.HandleFunc("POST /api/swipe", s.authenticated(s.handleSwipe))
	mux.HandleFunc("POST /api/review/{id}/reply", s.authenticated(s.handleReply))
	mux.HandleFunc("POST /api/notifications/ack", s.authenticated(s.handleAck))
	mux.HandleFunc("GET /api/dm/matches", s.authenticated(s.handleMatches))
	mux.HandleFunc("POST /api/dm/send", s.authenticated(s.handleSend))
	mux.HandleFunc("GET /api/dm/thread/{id}", s.authenticated(s.handleThread))

	s.server = httptest.NewServer(s.intercept(mux))
	return s
}

// URL returns the API root to configure a transport with.
func (s *Server) URL() string { return s.server.URL + "/api" }

// Close shuts the server down.
func (s *Server) Close() { s.server.Close() }

// FailNext makes the next request to method and path (for example
// "POST", "/api/swipe") fail with status.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.injections[key] = append(s.injections[key], injection{status: status})
}

// DropNext makes the next request to method and path close the
// connection without writing a response.
func (s *Server) DropNext(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.injections[key] = append(s.injections[key], injection{drop: true})
}

// Notify queues a notification for the account with the given id.
func (s *Server) Notify(userID, notificationType, dedupeKey string, payload map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[userID] = append(s.pending[userID], Notification{
		Type: notificationType, DedupeKey: dedupeKey, Payload: payload,
	})
}

// RequestCount returns how many requests reached method and path.
func (s *Server) RequestCount(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[method+" "+path]
}

// UserID returns the account id bound to handle, or "".
func (s *Server) UserID(handle string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account, ok := s.byHandle[handle]; ok {
		return account.ID
	}
	return ""
}

// AccountCount returns the number of accounts created.
func (s *Server) AccountCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// PostCount returns the number of posts published.
func (s *Server) PostCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// ReviewCount returns the number of decisions recorded.
func (s *Server) ReviewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reviews)
}

// Matches returns a copy of the matches in creation order.
func (s *Server) Matches() []Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	matches := make([]Match, len(s.matches))
	for index, match := range s.matches {
		matches[index] = *match
	}
	return matches
}

// Messages returns a copy of the messages stored for a match.
func (s *Server) Messages(matchID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages[matchID]...)
}

// AckedKeys returns every dedupe key acknowledged so far.
func (s *Server) AckedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.acked...)
}

// PendingCount returns the number of unacknowledged notifications for
// an account.
func (s *Server) PendingCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending[userID])
}

func (s *Server) nextID(prefix string) string {
	s.sequence++
	return fmt.Sprintf("%s_%04d", prefix, s.sequence)
}

func (s *Server) timestamp() string {
	return time.Date(2026, 1, 1, 0, 0, s.sequence, 0, time.UTC).Format(time.RFC3339)
}

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		key := request.Method + " " + request.URL.Path
		s.mu.Lock()
		s.requests[key]++
		var injected *injection
		if queue := s.injections[key]; len(queue) > 0 {
			injected = &queue[0]
			s.injections[key] = queue[1:]
		}
		s.mu.Unlock()

		switch {
		case injected == nil:
			next.ServeHTTP(writer, request)
		case injected.drop:
			if hijacker, ok := writer.(http.Hijacker); ok {
				if conn, _, err := hijacker.Hijack(); err == nil {
					conn.Close()
					return
				}
			}
			writeError(writer, http.StatusBadGateway, "connection dropped")
		default:
			writeError(writer, injected.status, "injected failure")
		}
	})
}

type authenticatedHandler func(http.ResponseWriter, *http.Request, *account)

func (s *Server) authenticated(handler authenticatedHandler) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		caller := s.caller(request)
		if caller == nil {
			writeError(writer, http.StatusUnauthorized, "missing or invalid API key")
			return
		}
		handler(writer, request, caller)
	}
}

func (s *Server) caller(request *http.Request) *account {
	header := request.Header.Get("Authorization")
	key, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byKey[key]
}

// respond writes a data envelope with the caller's pending
// notifications attached. Must be called without s.mu held.
func (s *Server) respond(writer http.ResponseWriter, caller *account, data any) {
	body := map[string]any{"ok": true, "data": data}
	if caller != nil {
		s.mu.Lock()
		if pending := s.pending[caller.ID]; len(pending) > 0 {
			body["notifications"] = append([]Notification(nil), pending...)
		}
		s.mu.Unlock()
	}
	writeJSON(writer, http.StatusOK, body)
}

func writeJSON(writer http.ResponseWriter, status int, value any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(value)
}

func writeError(writer http.ResponseWriter, status int, message string) {
	writeJSON(writer, status, map[string]any{"ok": false, "error": message})
}

func decodeBody(writer http.ResponseWriter, request *http.Request, v any) bool {
	if err := json.NewDecoder(request.Body).Decode(v); err != nil {
		writeError(writer, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func queryLimit(request *http.Request, fallback, upper int) int {
	limit, err := strconv.Atoi(request.URL.Query().Get("limit"))
	if err != nil {
		return fallback
	}
	return min(max(limit, 1), upper)
}
