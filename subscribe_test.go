package landing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestSubmissionCompleteBeforeDeadline(t *testing.T) {
	sub := newSubmission(time.Second)
	sub.Complete()
	if got := sub.Wait(); got != SubmitSuccess {
		t.Fatalf("state = %v, want SubmitSuccess", got)
	}
}

func TestSubmissionDeadlineWins(t *testing.T) {
	sub := newSubmission(20 * time.Millisecond)
	if got := sub.Wait(); got != SubmitFailure {
		t.Fatalf("state = %v, want SubmitFailure after deadline", got)
	}
	// A late provider answer must not flip a settled outcome.
	sub.Complete()
	if got := sub.State(); got != SubmitFailure {
		t.Fatalf("state = %v after late Complete, want SubmitFailure", got)
	}
}

func TestSubmissionCompleteIsIdempotent(t *testing.T) {
	sub := newSubmission(time.Second)
	sub.Complete()
	sub.Complete()
	if got := sub.State(); got != SubmitSuccess {
		t.Fatalf("state = %v, want SubmitSuccess", got)
	}
}

func TestSubscriberAnyResponseIsSuccess(t *testing.T) {
	// The provider answers with a 500; that still proves the request was
	// delivered, which is all the relay can claim.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostFormValue("EMAIL"); got != "a@example.com" {
			t.Errorf("EMAIL = %q", got)
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := newSubscriber(srv.URL, time.Second, nil)
	fields := providerFields("a@example.com", "", "", nil)
	if got := s.Submit(context.Background(), fields); got != SubmitSuccess {
		t.Fatalf("Submit() = %v, want SubmitSuccess", got)
	}
}

func TestSubscriberTimesOutOnSlowProvider(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	s := newSubscriber(srv.URL, 30*time.Millisecond, nil)
	if got := s.Submit(context.Background(), url.Values{}); got != SubmitFailure {
		t.Fatalf("Submit() = %v, want SubmitFailure on deadline", got)
	}
}

func TestSubscriberTransportErrorGivesNoSignal(t *testing.T) {
	// Nothing listens on this address; the request fails immediately but the
	// outcome still waits for the deadline, then settles as failure.
	s := newSubscriber("http://127.0.0.1:1/subscribe", 30*time.Millisecond, nil)
	start := time.Now()
	if got := s.Submit(context.Background(), url.Values{}); got != SubmitFailure {
		t.Fatalf("Submit() = %v, want SubmitFailure", got)
	}
	if time.Since(start) < 25*time.Millisecond {
		t.Fatalf("transport error settled the race early; the timer must decide")
	}
}

func TestSubscriberUnconfiguredAction(t *testing.T) {
	s := newSubscriber("", time.Second, nil)
	if got := s.Submit(context.Background(), url.Values{}); got != SubmitFailure {
		t.Fatalf("Submit() = %v, want SubmitFailure when unconfigured", got)
	}
}

func TestProviderFields(t *testing.T) {
	fields := providerFields("x@example.com", "b_xxx_xxx", "", []string{"The Plan", "Early Access"})
	if got := fields.Get("EMAIL"); got != "x@example.com" {
		t.Fatalf("EMAIL = %q", got)
	}
	if _, ok := fields["b_xxx_xxx"]; !ok {
		t.Fatalf("honeypot field not forwarded")
	}
	if got := fields.Get("tags"); got != "The Plan,Early Access" {
		t.Fatalf("tags = %q", got)
	}
	if got := fields["tags[]"]; len(got) != 2 || got[0] != "The Plan" {
		t.Fatalf("tags[] = %v", got)
	}
}
