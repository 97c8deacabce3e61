// internal/api/websocket.go
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Corphon/MangaStudioMCP/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// progressEvent is one websocket frame of a per-page evaluation run.
type progressEvent struct {
	services.PageProgress
	Done         bool   `json:"done"`
	EvaluationID string `json:"evaluation_id,omitempty"`
	Error        string `json:"run_error,omitempty"`
}

// ProgressBroker fans per-page evaluation progress out to websocket
// subscribers, keyed by job id. Channels are buffered so a slow or absent
// subscriber never blocks the evaluation run.
type ProgressBroker struct {
	mu   sync.Mutex
	jobs map[string]chan progressEvent
}

func NewProgressBroker() *ProgressBroker {
	return &ProgressBroker{jobs: make(map[string]chan progressEvent)}
}

// open registers a job channel before the run starts.
func (b *ProgressBroker) open(jobID string) chan progressEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan progressEvent, 64)
	b.jobs[jobID] = ch
	return ch
}

// publish sends an event to the job channel, dropping it if the buffer is
// full.
func (b *ProgressBroker) publish(jobID string, event progressEvent) {
	b.mu.Lock()
	ch, ok := b.jobs[jobID]
	b.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- event:
	default:
	}
}

// finishedJobTTL keeps a finished job subscribable so a late client can
// still drain its buffered events.
const finishedJobTTL = 5 * time.Minute

// close finishes a job. The channel is closed but the entry lingers for a
// while so a subscriber that connects after the run ended still sees the
// buffered events.
func (b *ProgressBroker) close(jobID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.jobs[jobID]; ok {
		close(ch)
		time.AfterFunc(finishedJobTTL, func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.jobs, jobID)
		})
	}
}

// subscribe returns the job channel, or nil for an unknown job.
func (b *ProgressBroker) subscribe(jobID string) chan progressEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.jobs[jobID]
}

// EvaluationProgressWS upgrades the connection and streams the progress of
// one per-page evaluation job until it finishes.
func (h *Handler) EvaluationProgressWS(c *gin.Context) {
	jobID := c.Param("id")
	ch := h.Broker.subscribe(jobID)
	if ch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown evaluation job"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for event := range ch {
		if err := conn.WriteJSON(event); err != nil {
			h.Logger.Debug("websocket write failed", zap.Error(err))
			return
		}
		if event.Done {
			return
		}
	}
}
