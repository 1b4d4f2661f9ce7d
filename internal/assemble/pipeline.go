// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble orchestrates one search domain end to end: attempt a
// live search, normalize whatever came back, synthesize sample options
// when nothing usable survived, then score and wrap the batch in a
// result envelope. The envelope's status and disclaimer are the only
// error channel; provider failures never propagate to the caller.
//
// Implements: prd004-assembly (R1-R5); docs/ARCHITECTURE § Assembly.
package assemble

import (
	"context"
	"log/slog"
	"time"

	"github.com/pdiddy/trip-engine/internal/provider"
	"github.com/pdiddy/trip-engine/pkg/types"
)

// disclaimers is the fixed status-to-text table carried on every
// envelope.
var disclaimers = map[types.Status]string{
	types.StatusLive:     "Live results from travel providers.",
	types.StatusSample:   "Sample options shown. Connect a live provider for bookable results.",
	types.StatusFallback: "Live search was unavailable. Showing sample options instead.",
	types.StatusError:    "No options could be produced for this request.",
}

// LiveFunc fetches raw records from an upstream provider. A nil LiveFunc
// on the pipeline means no live capability is configured for the domain.
type LiveFunc func(ctx context.Context) ([]provider.RawRecord, error)

// Pipeline assembles one domain's result envelope. The type parameter is
// the normalized option type (flight or hotel); the four stage functions
// carry all domain knowledge, so the pipeline itself stays domain-blind.
type Pipeline[O any] struct {
	// Live is the upstream search, or nil when live search is not
	// configured.
	Live LiveFunc

	// Timeout bounds the live attempt. Zero means no deadline beyond
	// the caller's context.
	Timeout time.Duration

	// Normalize shapes one raw record. A nil option with a nil error
	// means the record was filtered (over budget), not malformed.
	Normalize func(rec provider.RawRecord) (*O, error)

	// Synthesize produces the sample batch. It must never return an
	// empty slice; an empty return is an internal invariant violation.
	Synthesize func() []O

	// Score computes value scores and sorts the batch in place.
	Score func([]O)

	Logger *slog.Logger
}

// Run executes the pipeline. The returned envelope always carries a
// non-nil options slice; a live batch and a synthesized batch are never
// mixed, so the status field is truthful about provenance.
func (p Pipeline[O]) Run(ctx context.Context) types.ResultSet[O] {
	options, liveErrored := p.attemptLive(ctx)

	status := types.StatusLive
	if len(options) == 0 {
		status = types.StatusSample
		if liveErrored {
			status = types.StatusFallback
		}
		options = p.Synthesize()
		if len(options) == 0 {
			p.Logger.Error("synthesizer returned an empty batch",
				"status", status)
			return types.ResultSet[O]{
				Options:    []O{},
				Status:     types.StatusError,
				Disclaimer: disclaimers[types.StatusError],
			}
		}
	}

	p.Score(options)

	return types.ResultSet[O]{
		Options:    options,
		Status:     status,
		Disclaimer: disclaimers[status],
	}
}

// attemptLive runs the single live attempt and normalizes its records.
// The second return reports whether the attempt itself errored, which
// distinguishes the fallback status from the plain sample status.
func (p Pipeline[O]) attemptLive(ctx context.Context) ([]O, bool) {
	if p.Live == nil {
		return nil, false
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	recs, err := p.Live(ctx)
	if err != nil {
		p.Logger.Warn("live search failed, falling back to samples", "err", err)
		return nil, true
	}

	options := make([]O, 0, len(recs))
	for i, rec := range recs {
		opt, err := p.Normalize(rec)
		if err != nil {
			p.Logger.Warn("dropping malformed record", "index", i, "err", err)
			continue
		}
		if opt == nil {
			p.Logger.Debug("dropping filtered record", "index", i)
			continue
		}
		options = append(options, *opt)
	}
	return options, false
}
