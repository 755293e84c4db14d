package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	// MinLevelTime is the shortest attempt worth reporting, in milliseconds.
	MinLevelTime = 5 * 1000
	// MaxRetries bounds the attempts per request before reporting stops.
	MaxRetries = 2
	// RetryDelay is the pause between attempts.
	RetryDelay = 10 * time.Second
	// ShutdownWait bounds how long Close waits for queued records.
	ShutdownWait = 5 * time.Second
)

// DefaultEndpoint is the base URL of the analytics service.
const DefaultEndpoint = "http://analytics.moria.us/dreamless/"

var logger = log.New(os.Stderr, "analytics: ", log.LstdFlags)

// Options configures a Reporter.
type Options struct {
	Endpoint   string
	Start      Start
	Client     *http.Client
	RetryDelay time.Duration
}

// Reporter posts level records to the analytics service from a background
// goroutine. Submit never blocks on the network.
type Reporter struct {
	endpoint   string
	start      Start
	client     *http.Client
	retryDelay time.Duration

	mu          sync.Mutex
	cond        *sync.Cond
	queue       []Level
	started     bool
	requestStop bool
	stopped     bool

	quit   chan struct{}
	done   chan struct{}
	cancel context.CancelFunc
	ctx    context.Context
	once   sync.Once
}

// NewReporter creates a reporter and starts its worker.
func NewReporter(opts Options) *Reporter {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if !strings.HasSuffix(opts.Endpoint, "/") {
		opts.Endpoint += "/"
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = RetryDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Reporter{
		endpoint:   opts.Endpoint,
		start:      opts.Start,
		client:     opts.Client,
		retryDelay: opts.RetryDelay,
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
	r.cond = sync.NewCond(&r.mu)
	go r.worker()
	return r
}

// Submit queues a level record. Attempts shorter than MinLevelTime are
// dropped, and a record replaces a queued record with the same index.
func (r *Reporter) Submit(l Level) {
	if r == nil || l.TimeEnd < MinLevelTime {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	if n := len(r.queue); n > 0 && r.queue[n-1].Index == l.Index {
		r.queue[n-1] = l
	} else {
		r.queue = append(r.queue, l)
	}
	r.cond.Broadcast()
}

// Close flushes queued records, waiting at most ShutdownWait.
func (r *Reporter) Close() {
	if r == nil {
		return
	}
	r.once.Do(func() {
		r.mu.Lock()
		wait := r.started
		r.requestStop = true
		r.cond.Broadcast()
		r.mu.Unlock()
		close(r.quit)

		if wait {
			select {
			case <-r.done:
			case <-time.After(ShutdownWait):
				logger.Printf("timed out")
			}
		}
		r.cancel()
	})
}

// Stopped reports whether the worker has given up or finished.
func (r *Reporter) Stopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

func (r *Reporter) worker() {
	defer close(r.done)
	defer func() {
		r.mu.Lock()
		r.stopped = true
		r.cond.Broadcast()
		r.mu.Unlock()
	}()

	body, err := json.Marshal(r.start)
	if err != nil {
		logger.Printf("encode start: %v", err)
		return
	}
	var sessionID string
	for retry := 0; ; retry++ {
		if retry > 0 {
			logger.Printf("retrying request")
			if !r.sleep() {
				return
			}
		}
		resp, err := r.post("start", body)
		if err == nil {
			sessionID = strings.TrimSpace(resp)
			break
		}
		logger.Printf("start: %v", err)
		if retry >= MaxRetries {
			logger.Printf("too many analytics failures")
			return
		}
	}

	r.mu.Lock()
	r.started = true
	r.mu.Unlock()
	logger.Printf("startup successful")

	for {
		r.mu.Lock()
		for len(r.queue) == 0 && !r.requestStop {
			r.cond.Wait()
		}
		if len(r.queue) == 0 {
			r.mu.Unlock()
			break
		}
		l := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()

		if !r.send(l, sessionID) {
			logger.Printf("too many analytics failures")
			break
		}
		logger.Printf("post successful")
	}
	logger.Printf("shutting down")
}

func (r *Reporter) send(l Level, sessionID string) bool {
	body, err := l.encode(sessionID)
	if err != nil {
		logger.Printf("encode level: %v", err)
		return false
	}
	for i := 0; i < MaxRetries; i++ {
		if i > 0 {
			logger.Printf("retrying request")
			if !r.sleep() {
				return false
			}
		}
		resp, err := r.post("level", body)
		if err == nil && resp == "ok" {
			return true
		}
		if err != nil {
			logger.Printf("level: %v", err)
		}
	}
	return false
}

// sleep waits out the retry delay. It returns false if the reporter is
// closing.
func (r *Reporter) sleep() bool {
	select {
	case <-time.After(r.retryDelay):
		return true
	case <-r.quit:
		return false
	}
}

func (r *Reporter) post(path string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(r.ctx, http.MethodPost, r.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", err
	}
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("POST %s: %s", path, resp.Status)
	}
	return string(data), nil
}
