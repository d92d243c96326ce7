//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

// Package live provides an HTTP bridge for live agent sessions. Clients
// feed input over POST and receive the resulting events as a
// server-sent-event stream.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/agentkit-go/agentkit/agent"
	"github.com/agentkit-go/agentkit/event"
	"github.com/agentkit-go/agentkit/log"
	"github.com/agentkit-go/agentkit/runner"
)

// Server bridges HTTP clients to live agent sessions. Each session owns
// a LiveRequestQueue feeding one live run whose events are streamed
// back over SSE.
type Server struct {
	runner runner.Runner
	router *mux.Router

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	queue  *agent.LiveRequestQueue
	events <-chan *event.Event
}

// Option configures the Server instance.
type Option func(*Server)

// New creates a live server driving r.
func New(r runner.Runner, opts ...Option) *Server {
	s := &Server{
		runner:   r,
		router:   mux.NewRouter(),
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
	})
	s.router.Use(c.Handler)
	s.registerRoutes()
	return s
}

// Handler returns the http.Handler for the server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/live/{sessionId}/send", s.handleSend).Methods(http.MethodPost)
	s.router.HandleFunc("/live/{sessionId}/events", s.handleEvents).Methods(http.MethodGet)

	preflight := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	s.router.HandleFunc("/live/{sessionId}/send", preflight).Methods(http.MethodOptions)
}

// getSession returns the session for id, starting a live run for new
// ids. Session lifetimes are bounded by the server's background
// context, not the creating request.
func (s *Server) getSession(userID, id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}

	queue := agent.NewLiveRequestQueue()
	events, err := s.runner.RunLive(context.Background(), userID, queue)
	if err != nil {
		return nil, fmt.Errorf("start live run: %w", err)
	}
	sess := &session{queue: queue, events: events}
	s.sessions[id] = sess
	log.Infof("live session %s started", id)
	return sess, nil
}

func (s *Server) removeSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req agent.LiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Content == nil && req.Blob == nil && !req.Close {
		http.Error(w, "request must carry content, a blob, or close", http.StatusBadRequest)
		return
	}

	sess, err := s.getSession(r.URL.Query().Get("userId"), sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sess.queue.Send(&req)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sess, err := s.getSession(r.URL.Query().Get("userId"), sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for {
		select {
		case e, open := <-sess.events:
			if !open {
				// Live run finished, usually after a close request.
				s.removeSession(sessionID)
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				log.Errorf("marshal live event: %v", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
