// Package planner composes the pipeline stages into one run: fetch, extract,
// clip, prompt, generate, parse, and the fallback itinerary when generation
// or parsing fails.
package planner

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gaurav-prasanna/link2itinerary/core"
	"github.com/gaurav-prasanna/link2itinerary/core/clip"
	"github.com/gaurav-prasanna/link2itinerary/core/extract"
	"github.com/gaurav-prasanna/link2itinerary/core/fallback"
	"github.com/gaurav-prasanna/link2itinerary/core/generate"
	"github.com/gaurav-prasanna/link2itinerary/core/parse"
	"github.com/gaurav-prasanna/link2itinerary/logger"
	"github.com/gaurav-prasanna/link2itinerary/metrics"
	"github.com/gaurav-prasanna/link2itinerary/trips"
)

// Run outcomes, used as the planner_runs_total label.
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeConfig   = "config_error"
	OutcomeFetch    = "fetch_error"
	OutcomeCanceled = "canceled"
)

// Clipper bounds extracted text to the content budget.
type Clipper interface {
	Clip(text string) string
}

// Input is one planning request.
type Input struct {
	URL string
	// TripID overrides the generated trip identifier. It must already carry
	// the core.TripIDPrefix.
	TripID string
	Trip   *generate.TripDetails
}

// Result is the outcome of a run. Response is set unless a surfaced failure
// occurred; Fallback marks a placeholder response.
type Result struct {
	Response *core.PlannerResponse
	Fallback bool
	Failure  *core.Failure
	// Page describes the fetched source; zero when the fetch never succeeded.
	Page core.PageMetadata
}

// Err returns the failure the caller must see, or nil when Response is usable.
func (r Result) Err() error {
	if r.Failure != nil && r.Failure.Surfaced() {
		return r.Failure
	}
	return nil
}

// Options holds the planner's collaborators. Fetcher and Generator are
// required; everything else has a default.
type Options struct {
	Fetcher         core.Fetcher
	Extractor       core.Extractor
	Clipper         Clipper
	Generator       core.Generator
	Parser          *parse.Parser
	Logger          logger.Logger
	Metrics         metrics.Recorder
	Now             func() time.Time
	NewID           func() string
	GenerateTimeout time.Duration
}

// Planner is safe for concurrent use; runs share nothing but the collaborators.
type Planner struct {
	fetcher         core.Fetcher
	extractor       core.Extractor
	clipper         Clipper
	generator       core.Generator
	parser          *parse.Parser
	log             logger.Logger
	metrics         metrics.Recorder
	now             func() time.Time
	newID           func() string
	generateTimeout time.Duration
}

func New(opts Options) (*Planner, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("planner: fetcher is required")
	}
	if opts.Generator == nil {
		return nil, errors.New("planner: generator is required")
	}

	p := &Planner{
		fetcher:         opts.Fetcher,
		extractor:       opts.Extractor,
		clipper:         opts.Clipper,
		generator:       opts.Generator,
		parser:          opts.Parser,
		log:             opts.Logger,
		metrics:         opts.Metrics,
		now:             opts.Now,
		newID:           opts.NewID,
		generateTimeout: opts.GenerateTimeout,
	}
	if p.extractor == nil {
		p.extractor = extract.New()
	}
	if p.clipper == nil {
		p.clipper = clip.New(clip.DefaultLimit)
	}
	if p.parser == nil {
		parser, err := parse.NewDefault()
		if err != nil {
			return nil, err
		}
		p.parser = parser
	}
	if p.log == nil {
		p.log = logger.NewNoOp()
	}
	if p.metrics == nil {
		p.metrics = metrics.NoOp{}
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.newID == nil {
		p.newID = uuid.NewString
	}
	if p.generateTimeout <= 0 {
		p.generateTimeout = generate.DefaultTimeout
	}
	return p, nil
}

// PlanFromURL plans a teaser itinerary for a bare URL.
func (p *Planner) PlanFromURL(ctx context.Context, url string) Result {
	return p.Run(ctx, Input{URL: url})
}

// PlanForTrip plans for a stored seed. The trip identifier joins the
// itinerary to the seed and the seed's details are added to the prompt.
func (p *Planner) PlanForTrip(ctx context.Context, seed *trips.Seed) Result {
	return p.Run(ctx, Input{
		URL:    seed.URL,
		TripID: core.TripIDPrefix + seed.ID,
		Trip: &generate.TripDetails{
			Location:          seed.Location,
			CheckIn:           seed.CheckIn,
			CheckOut:          seed.CheckOut,
			AccommodationName: seed.AccommodationName,
			AccommodationType: seed.AccommodationType,
			Summary:           seed.Summary,
		},
	})
}

// Run executes the pipeline once. Config, fetch and cancellation failures are
// surfaced; generation and parse failures yield the fallback itinerary.
func (p *Planner) Run(ctx context.Context, in Input) Result {
	log := p.log.With(map[string]interface{}{"url": in.URL})

	if err := p.generator.Ready(); err != nil {
		log.WithError(err).Error("generator not configured", nil)
		return p.finish(Result{Failure: core.ConfigFailure(err)}, OutcomeConfig)
	}

	start := p.now()
	page, err := p.fetcher.Fetch(ctx, in.URL)
	p.metrics.ObserveStage("fetch", p.now().Sub(start))
	if err != nil {
		if ctx.Err() != nil {
			return p.finish(Result{Failure: core.CanceledFailure(ctx.Err())}, OutcomeCanceled)
		}
		failure, ok := core.AsFailure(err)
		if !ok {
			failure = core.FetchFailure(0, err)
		}
		log.WithError(err).Warn("fetch failed", map[string]interface{}{"status": failure.StatusCode})
		return p.finish(Result{Failure: failure}, OutcomeFetch)
	}

	start = p.now()
	extracted := p.extractor.Extract(page.HTML)
	text := p.clipper.Clip(extracted.Text)
	p.metrics.ObserveStage("extract", p.now().Sub(start))
	meta := extract.Metadata(in.URL, extracted.Title, p.now())
	log.Debug("page extracted", map[string]interface{}{
		"title":   extracted.Title,
		"clipped": clip.Clipped(text),
	})

	itineraryID := p.newID()
	tripID := in.TripID
	if tripID == "" {
		tripID = core.TripIDPrefix + p.newID()
	}
	log = log.With(map[string]interface{}{"itineraryId": itineraryID, "tripId": tripID})

	req := generate.BuildRequest(generate.PromptInput{
		URL:         in.URL,
		ItineraryID: itineraryID,
		TripID:      tripID,
		Text:        text,
		Trip:        in.Trip,
	})

	start = p.now()
	raw, err := p.generate(ctx, req)
	p.metrics.ObserveStage("generate", p.now().Sub(start))
	if err != nil {
		if ctx.Err() != nil {
			return p.finish(Result{Failure: core.CanceledFailure(ctx.Err())}, OutcomeCanceled)
		}
		return p.fallback(log, meta, itineraryID, tripID, core.GenerationFailure(err))
	}

	start = p.now()
	resp, err := p.parser.Parse(raw)
	p.metrics.ObserveStage("parse", p.now().Sub(start))
	if err != nil {
		failure, ok := core.AsFailure(err)
		if !ok {
			failure = core.ParseFailure(err)
		}
		return p.fallback(log, meta, itineraryID, tripID, failure)
	}

	if resp.Itinerary.ID != itineraryID || resp.Itinerary.TripID != tripID {
		log.Warn("generator changed fixed identifiers", map[string]interface{}{
			"returnedId":     resp.Itinerary.ID,
			"returnedTripId": resp.Itinerary.TripID,
		})
		resp.Itinerary.ID = itineraryID
		resp.Itinerary.TripID = tripID
	}

	log.Info("itinerary generated", map[string]interface{}{"days": len(resp.Itinerary.Days)})
	return p.finish(Result{Response: resp, Page: meta}, OutcomeSuccess)
}

func (p *Planner) generate(ctx context.Context, req core.GenerationRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.generateTimeout)
	defer cancel()
	return p.generator.Generate(ctx, req)
}

func (p *Planner) fallback(log logger.Logger, meta core.PageMetadata, itineraryID, tripID string, failure *core.Failure) Result {
	log.WithError(failure.Err).Warn("returning fallback itinerary", map[string]interface{}{
		"stage": string(failure.Kind),
	})
	return p.finish(Result{
		Response: fallback.New(itineraryID, tripID, p.now()),
		Fallback: true,
		Failure:  failure,
		Page:     meta,
	}, OutcomeFallback)
}

func (p *Planner) finish(r Result, outcome string) Result {
	p.metrics.RunFinished(outcome)
	return r
}
