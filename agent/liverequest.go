//
// Copyright (C) 2025 The agentkit authors. All rights reserved.
//
// agentkit is licensed under the Apache License Version 2.0.
//

package agent

import (
	"context"
	"sync"

	"github.com/agentkit-go/agentkit/model"
)

// LiveRequest is one input unit for a live (bidirectional streaming)
// session. Exactly one of Content, Blob, or Close is set. Immutable once
// constructed.
type LiveRequest struct {
	// Content is a turn-by-turn conversational message.
	Content *model.Message `json:"content,omitempty"`
	// Blob is realtime binary input such as an audio frame.
	Blob *model.Blob `json:"blob,omitempty"`
	// Close signals the end of the live session.
	Close bool `json:"close,omitempty"`
}

// LiveRequestQueue streams LiveRequests into an agent's live loop. Sends
// never block; the single consumer blocks in Get until an item arrives. The
// queue is unbounded FIFO.
type LiveRequestQueue struct {
	mu      sync.Mutex
	pending []*LiveRequest
	ready   chan struct{}
}

// NewLiveRequestQueue creates an empty queue.
func NewLiveRequestQueue() *LiveRequestQueue {
	return &LiveRequestQueue{
		ready: make(chan struct{}, 1),
	}
}

// Send enqueues a request without blocking.
func (q *LiveRequestQueue) Send(req *LiveRequest) {
	q.mu.Lock()
	q.pending = append(q.pending, req)
	q.mu.Unlock()
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// SendContent enqueues a conversational message.
func (q *LiveRequestQueue) SendContent(msg model.Message) {
	q.Send(&LiveRequest{Content: &msg})
}

// SendRealtime enqueues a realtime blob.
func (q *LiveRequestQueue) SendRealtime(blob *model.Blob) {
	q.Send(&LiveRequest{Blob: blob})
}

// Close enqueues a close request. Items sent earlier are still delivered
// before the consumer observes the close.
func (q *LiveRequestQueue) Close() {
	q.Send(&LiveRequest{Close: true})
}

// Get returns the oldest queued request, blocking until one is available or
// ctx is cancelled.
func (q *LiveRequestQueue) Get(ctx context.Context) (*LiveRequest, error) {
	for {
		q.mu.Lock()
		if len(q.pending) > 0 {
			req := q.pending[0]
			q.pending = q.pending[1:]
			if len(q.pending) > 0 {
				// Keep the signal up for remaining items.
				select {
				case q.ready <- struct{}{}:
				default:
				}
			}
			q.mu.Unlock()
			return req, nil
		}
		q.mu.Unlock()

		select {
		case <-q.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
