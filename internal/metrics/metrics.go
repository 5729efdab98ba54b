// Package metrics exposes Prometheus counters for token admission and
// comment submission.
package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Submission outcomes
const (
	OutcomeOK             = "ok"
	OutcomeBadRequest     = "bad_request"
	OutcomeContentTooLong = "content_too_long"
	OutcomeUnauthorized   = "unauthorized"
	OutcomeRateLimited    = "rate_limited"
	OutcomePageNotFound   = "page_not_found"
	OutcomeInternalError  = "internal_error"
)

// Recorder is what services and handlers report to
type Recorder interface {
	TokenIssued()
	TokenRateLimited()
	CommentSubmitted(outcome string)
	HTTPResponse(route string, statusCode int)
}

// Collector records metrics in Prometheus
type Collector struct {
	tokensIssued      prometheus.Counter
	tokensRateLimited prometheus.Counter
	submissions       *prometheus.CounterVec
	httpResponses     *prometheus.CounterVec
}

// NewCollector creates a Collector and registers it with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "page_comments_tokens_issued_total",
			Help: "Posting tokens issued.",
		}),
		tokensRateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "page_comments_tokens_rate_limited_total",
			Help: "Token requests refused because the address is cooling down.",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "page_comments_submissions_total",
			Help: "Comment submissions by outcome.",
		}, []string{"outcome"}),
		httpResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "page_comments_http_responses_total",
			Help: "HTTP responses by route and status code.",
		}, []string{"route", "status_code"}),
	}

	reg.MustRegister(
		c.tokensIssued,
		c.tokensRateLimited,
		c.submissions,
		c.httpResponses,
	)

	return c
}

// TokenIssued counts an issued token
func (c *Collector) TokenIssued() {
	c.tokensIssued.Inc()
}

// TokenRateLimited counts a refused token request
func (c *Collector) TokenRateLimited() {
	c.tokensRateLimited.Inc()
}

// CommentSubmitted counts a submission by outcome
func (c *Collector) CommentSubmitted(outcome string) {
	c.submissions.WithLabelValues(outcome).Inc()
}

// HTTPResponse counts a response
func (c *Collector) HTTPResponse(route string, statusCode int) {
	c.httpResponses.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
}

// CountFunc reports how many comments are stored
type CountFunc func(ctx context.Context) (int, error)

// NewStoredCommentsGauge returns a gauge that runs count on every scrape.
// A failed count is logged and reported as NaN.
func NewStoredCommentsGauge(count CountFunc, timeout time.Duration, log zerolog.Logger) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "page_comments_stored",
		Help: "Comments currently stored.",
	}, func() float64 {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		n, err := count(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to count stored comments")
			return math.NaN()
		}
		return float64(n)
	})
}

// Handler returns the Prometheus scrape handler for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything
type Nop struct{}

func (Nop) TokenIssued()             {}
func (Nop) TokenRateLimited()        {}
func (Nop) CommentSubmitted(string)  {}
func (Nop) HTTPResponse(string, int) {}
