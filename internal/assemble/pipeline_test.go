// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/pdiddy/trip-engine/internal/provider"
	"github.com/pdiddy/trip-engine/pkg/types"
)

type item struct {
	ID    string
	Price float64
}

func testPipeline() Pipeline[item] {
	return Pipeline[item]{
		Normalize: func(rec provider.RawRecord) (*item, error) {
			price, ok := rec["price"].(float64)
			if !ok {
				return nil, errors.New("no price")
			}
			if price > 10000 {
				return nil, nil
			}
			return &item{ID: rec["id"].(string), Price: price}, nil
		},
		Synthesize: func() []item {
			return []item{{ID: "synth-1", Price: 100}, {ID: "synth-2", Price: 200}}
		},
		Score: func(batch []item) {
			sort.SliceStable(batch, func(i, j int) bool { return batch[i].Price < batch[j].Price })
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRunLiveSuccess(t *testing.T) {
	p := testPipeline()
	p.Live = func(ctx context.Context) ([]provider.RawRecord, error) {
		return []provider.RawRecord{
			{"id": "a", "price": 900.0},
			{"id": "bad"},
			{"id": "pricey", "price": 20000.0},
			{"id": "b", "price": 400.0},
		}, nil
	}
	p.Synthesize = func() []item {
		t.Fatal("synthesize must not run when live records survive")
		return nil
	}

	got := p.Run(context.Background())
	if got.Status != types.StatusLive {
		t.Errorf("Status = %q, want live", got.Status)
	}
	if len(got.Options) != 2 {
		t.Fatalf("len(Options) = %d, want 2 (malformed and filtered dropped)", len(got.Options))
	}
	if got.Options[0].ID != "b" {
		t.Errorf("score stage must run over the live batch, got %q first", got.Options[0].ID)
	}
	if got.Disclaimer == "" {
		t.Error("live envelope must still carry its disclaimer")
	}
}

func TestRunLiveEmptyFallsBackToSample(t *testing.T) {
	p := testPipeline()
	p.Live = func(ctx context.Context) ([]provider.RawRecord, error) {
		return nil, nil
	}
	got := p.Run(context.Background())
	if got.Status != types.StatusSample {
		t.Errorf("Status = %q, want sample for an empty live result", got.Status)
	}
	if len(got.Options) != 2 {
		t.Errorf("len(Options) = %d, want synthesized batch", len(got.Options))
	}
}

func TestRunAllMalformedFallsBackToSample(t *testing.T) {
	p := testPipeline()
	p.Live = func(ctx context.Context) ([]provider.RawRecord, error) {
		return []provider.RawRecord{{"id": "x"}, {"id": "y"}}, nil
	}
	got := p.Run(context.Background())
	if got.Status != types.StatusSample {
		t.Errorf("Status = %q, want sample when every record is dropped", got.Status)
	}
}

func TestRunLiveErrorYieldsFallbackStatus(t *testing.T) {
	p := testPipeline()
	p.Live = func(ctx context.Context) ([]provider.RawRecord, error) {
		return nil, provider.ErrUnavailable
	}
	got := p.Run(context.Background())
	if got.Status != types.StatusFallback {
		t.Errorf("Status = %q, want fallback when the live attempt errors", got.Status)
	}
	if len(got.Options) == 0 {
		t.Error("fallback envelope must still be populated")
	}
}

func TestRunNoLiveConfigured(t *testing.T) {
	p := testPipeline()
	got := p.Run(context.Background())
	if got.Status != types.StatusSample {
		t.Errorf("Status = %q, want sample when no live search is configured", got.Status)
	}
}

func TestRunLiveTimeout(t *testing.T) {
	p := testPipeline()
	p.Timeout = 10 * time.Millisecond
	p.Live = func(ctx context.Context) ([]provider.RawRecord, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return []provider.RawRecord{{"id": "late", "price": 100.0}}, nil
		}
	}
	got := p.Run(context.Background())
	if got.Status != types.StatusFallback {
		t.Errorf("Status = %q, want fallback after a live timeout", got.Status)
	}
}

func TestRunEmptySynthesisIsError(t *testing.T) {
	p := testPipeline()
	p.Synthesize = func() []item { return nil }
	got := p.Run(context.Background())
	if got.Status != types.StatusError {
		t.Errorf("Status = %q, want error for an empty synthesized batch", got.Status)
	}
	if got.Options == nil {
		t.Error("Options must be an empty slice, not nil")
	}
}
