// Package notify sends fire-and-forget HTTP notifications for selector
// events. The primary use case is ntfy.sh, but any HTTP webhook works.
package notify

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
)

// Notifier posts plain-text HTTP notifications for selected events.
type Notifier struct {
	url       string
	title     string
	onConfirm bool
	onFatal   bool
	client    *http.Client
	inflight  sync.WaitGroup
}

// New creates a Notifier. projectName is used as the X-Title header; if
// empty, "marquee" is used instead.
func New(notifURL, projectName string, onConfirm, onFatal bool) *Notifier {
	title := "marquee"
	if projectName != "" {
		title = projectName
	}
	return &Notifier{
		url:       notifURL,
		title:     title,
		onConfirm: onConfirm,
		onFatal:   onFatal,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Hook fires an asynchronous POST for events that match the configured
// notification flags.
func (n *Notifier) Hook(e lifecycle.Event) {
	switch e.Kind {
	case lifecycle.EventConfirm:
		if n.onConfirm {
			n.send("Selected: " + e.Label)
		}
	case lifecycle.EventFatal:
		if n.onFatal {
			n.send(e.Message)
		}
	}
}

// Wait blocks until every POST started by Hook has finished, or timeout
// passes. It is called before the process exits so a fatal notification is
// not cut off.
func (n *Notifier) Wait(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		n.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}

func (n *Notifier) send(message string) {
	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		n.post(message)
	}()
}

// post sends a plain-text POST to the configured URL. Errors are silently
// discarded so notification failures never interrupt the selector.
func (n *Notifier) post(message string) {
	req, err := http.NewRequest(http.MethodPost, n.url, strings.NewReader(message))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Title", n.title)
	resp, err := n.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
