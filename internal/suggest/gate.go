// Package suggest decides what happens to inbound product suggestions:
// forwarded to the content store, silently dropped as spam, or rejected with
// a corrective message.
package suggest

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/veganmotoclub/catalog-api/internal/ratelimit"
)

// Outcome classifies the result of evaluating a submission.
type Outcome int

const (
	// Accepted means the suggestion was written to the content store.
	Accepted Outcome = iota
	// SilentAccept means a spam heuristic tripped; the caller is told
	// success but nothing was written.
	SilentAccept
	// RateLimited means the client exceeded the submission limit.
	RateLimited
	// Invalid means the payload failed validation.
	Invalid
	// WriteFailed means the content store write errored.
	WriteFailed
)

// Submissions faster than this since form render are treated as automated.
const minElapsedMS = 2000

// Submission is one inbound suggestion. IP may be empty; such clients share
// the "unknown" rate-limit bucket. A nil ElapsedMS means the client did not
// report timing, which skips the timing check; a reported 0 is treated as
// too fast like any other sub-threshold value.
type Submission struct {
	IP        string
	URL       string
	Honeypot  string
	ElapsedMS *int64
}

// Result pairs an outcome with its user-visible message, where one exists.
type Result struct {
	Outcome Outcome
	Message string
}

// Writer is the content store's write path.
type Writer interface {
	CreateSuggestion(ctx context.Context, title, url string) error
}

// Gate evaluates submissions. The rate-limit table is its only shared state.
type Gate struct {
	limiter ratelimit.Limiter
	store   Writer
}

// NewGate builds a gate over the given limiter and write path.
func NewGate(limiter ratelimit.Limiter, store Writer) *Gate {
	return &Gate{limiter: limiter, store: store}
}

// Evaluate runs the checks in order, short-circuiting on the first decision:
// rate limit, honeypot, timing, URL validation, then the store write. Only
// the rate check mutates shared state and only the final step writes.
func (g *Gate) Evaluate(ctx context.Context, sub Submission) Result {
	key := sub.IP
	if key == "" {
		key = "unknown"
	}
	allowed, err := g.limiter.Allow(ctx, key)
	if err != nil {
		// A broken limiter must not take down the form.
		log.Printf("[suggest] limiter unavailable, allowing: %v", err)
		allowed = true
	}
	if !allowed {
		return Result{Outcome: RateLimited, Message: "Too many submissions. Please try again later."}
	}

	if sub.Honeypot != "" {
		return Result{Outcome: SilentAccept}
	}

	if sub.ElapsedMS != nil && *sub.ElapsedMS < minElapsedMS {
		return Result{Outcome: SilentAccept}
	}

	raw := strings.TrimSpace(sub.URL)
	if raw == "" {
		return Result{Outcome: Invalid, Message: "Please provide a product URL."}
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Result{Outcome: Invalid, Message: "Please provide a valid URL (e.g. https://example.com)."}
	}

	title := "User Suggestion - " + u.Hostname()
	if err := g.store.CreateSuggestion(ctx, title, raw); err != nil {
		// Backend detail stays in the log, not the response.
		log.Printf("[suggest] write failed: %v", err)
		return Result{Outcome: WriteFailed, Message: "Something went wrong. Please try again."}
	}
	return Result{Outcome: Accepted}
}
