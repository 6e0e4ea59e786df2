package landing

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// SubmitState is the subscription lifecycle: idle → submitting → one of
// success or failure.
type SubmitState int

const (
	SubmitIdle SubmitState = iota
	SubmitSubmitting
	SubmitSuccess
	SubmitFailure
)

// submission arbitrates between two completion channels: the provider
// answering, and a fixed deadline timer. First to occur wins; the loser's
// signal is a no-op. The timer is cleared on completion so it can never
// overwrite an earlier success.
type submission struct {
	mu    sync.Mutex
	state SubmitState
	timer *time.Timer
	done  chan struct{}
}

func newSubmission(deadline time.Duration) *submission {
	s := &submission{
		state: SubmitSubmitting,
		done:  make(chan struct{}),
	}
	s.timer = time.AfterFunc(deadline, s.expire)
	return s
}

// Complete records that the provider answered. Only the first signal while
// still submitting settles the outcome.
func (s *submission) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SubmitSubmitting {
		return
	}
	s.state = SubmitSuccess
	s.timer.Stop()
	close(s.done)
}

func (s *submission) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SubmitSubmitting {
		return
	}
	s.state = SubmitFailure
	close(s.done)
}

// Wait blocks until the race settles and returns the outcome.
func (s *submission) Wait() SubmitState {
	<-s.done
	return s.State()
}

// State returns the current state without blocking.
func (s *submission) State() SubmitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// subscriber relays signup forms to the mailing-list provider. The
// provider's response is not machine-readable by design, so the relay
// mirrors the page's old hidden-frame contract: any response at all counts
// as "request was sent", and a transport error gives no signal — the
// deadline timer decides, exactly like a frame whose load event never
// fires.
type subscriber struct {
	action  string
	timeout time.Duration
	client  *http.Client
}

func newSubscriber(action string, timeout time.Duration, client *http.Client) *subscriber {
	if client == nil {
		// Longer than any sensible race deadline; the submission timer is
		// what actually bounds the wait.
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &subscriber{action: action, timeout: timeout, client: client}
}

// Submit posts the fields to the provider and reports how the race
// settled. Safe for concurrent use; each call runs its own race.
func (s *subscriber) Submit(ctx context.Context, fields url.Values) SubmitState {
	if s.action == "" {
		return SubmitFailure
	}
	sub := newSubmission(s.timeout)
	go func() {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.action, strings.NewReader(fields.Encode()))
		if err != nil {
			return
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := s.client.Do(req)
		if err != nil {
			return
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		sub.Complete()
	}()
	return sub.Wait()
}

// providerFields builds the form body the provider expects: the email, the
// honeypot value forwarded verbatim (the provider checks it, not us), and
// the configured tag list in both shapes the provider accepts.
func providerFields(email, honeypotName, honeypotValue string, tags []string) url.Values {
	fields := url.Values{}
	fields.Set("EMAIL", email)
	if honeypotName != "" {
		fields.Set(honeypotName, honeypotValue)
	}
	if len(tags) > 0 {
		fields.Set("tags", strings.Join(tags, ","))
		for _, t := range tags {
			fields.Add("tags[]", t)
		}
	}
	return fields
}
