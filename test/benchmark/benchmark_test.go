package benchmark

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/page-comments-api/internal/config"
	"github.com/page-comments-api/internal/mocks"
	"github.com/page-comments-api/internal/models"
	"github.com/page-comments-api/internal/service"
	"github.com/page-comments-api/internal/validation"
	"github.com/rs/zerolog"
)

func newServices(b *testing.B, slugs ...string) (*service.Services, *mocks.MockCommentRepository) {
	b.Helper()

	clock := mocks.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	repos, _, comments := mocks.NewMockRepositories(slugs...)

	services := service.NewServices(service.Deps{
		Tokens:    mocks.NewMockKVStore(clock),
		Cooldowns: mocks.NewMockKVStore(clock),
		Repos:     repos,
		Config: config.CommentsConfig{
			TokenTTL:        90 * time.Second,
			CooldownTTL:     300 * time.Second,
			MaxAuthorLength: models.MaxAuthorLength,
			MaxBodyLength:   models.MaxBodyLength,
		},
		Log: zerolog.Nop(),
		Now: clock.Now,
	})
	return services, comments
}

// BenchmarkParseSubmission benchmarks payload parsing and length checks
func BenchmarkParseSubmission(b *testing.B) {
	validator := validation.NewValidator(validation.DefaultLimits())
	payload := []byte(`{"key":"550e8400-e29b-41d4-a716-446655440000","author":"Alice","body":"` +
		strings.Repeat("é", models.MaxBodyLength) + `"}`)

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(payload)))

	for i := 0; i < b.N; i++ {
		if _, err := validator.ParseSubmission(payload); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSanitize benchmarks markup stripping of a full-length body
func BenchmarkSanitize(b *testing.B) {
	sanitizer := validation.NewSanitizer()
	body := strings.Repeat("<b>hi</b> &amp; ", 32)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = sanitizer.Clean(body)
	}
}

// BenchmarkIssueAndSubmit benchmarks the token plus submission round trip, one address per iteration
func BenchmarkIssueAndSubmit(b *testing.B) {
	services, _ := newServices(b, "blog-1")
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		addr := "addr-" + strconv.Itoa(i)
		token, err := services.Admission.RequestToken(ctx, addr)
		if err != nil {
			b.Fatal(err)
		}
		payload := []byte(`{"key":"` + token + `","author":"Alice","body":"Hi"}`)
		if _, err := services.Comment.SubmitComment(ctx, addr, "blog-1", payload); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "comments/sec")
}

// BenchmarkListComments benchmarks reading a page holding 1000 comments
func BenchmarkListComments(b *testing.B) {
	services, comments := newServices(b, "blog-1")
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 1000; i++ {
		comments.Comments = append(comments.Comments, &models.Comment{
			ID:        strconv.Itoa(i),
			Slug:      "blog-1",
			Author:    "Test User " + strconv.Itoa(i),
			Body:      "comment body",
			Timestamp: ts.Add(time.Duration(i) * time.Second),
		})
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		views, err := services.Reader.ListComments(context.Background(), "blog-1")
		if err != nil {
			b.Fatal(err)
		}
		if len(views) != 1000 {
			b.Fatalf("expected 1000 comments, got %d", len(views))
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkRequestTokenParallel benchmarks concurrent token issuance
func BenchmarkRequestTokenParallel(b *testing.B) {
	services, _ := newServices(b)
	var n atomic.Int64

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			addr := "addr-" + strconv.FormatInt(n.Add(1), 10)
			if _, err := services.Admission.RequestToken(ctx, addr); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
