// Package pipeline runs one plan generation attempt: it streams the model response,
// reports progress while the days arrive and validates the finished document.
package pipeline

import (
	"context"
	"errors"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/nutriplan/internal/llm"
	"github.com/jonathan/nutriplan/internal/messages"
	"github.com/jonathan/nutriplan/internal/progress"
	"github.com/jonathan/nutriplan/internal/types"
	"github.com/jonathan/nutriplan/internal/validation"
)

// ProgressEvent represents one step of a generation attempt.
// Every attempt ends with either an event carrying Plan or an error.
type ProgressEvent struct {
	progress.Progress
	RunID string              `json:"run_id,omitempty"`
	Plan  *types.PlanResponse `json:"plan,omitempty"`
}

// ProgressCallback is called when generation progress occurs
type ProgressCallback func(event ProgressEvent)

// Outcomes reported to the Recorder.
const (
	OutcomeSuccess        = "success"
	OutcomeTransportError = "transport_error"
	OutcomeMalformed      = "malformed_response"
	OutcomeInvalidProfile = "invalid_profile"
	// OutcomeAbandoned means the consumer stopped iterating before the plan was ready.
	OutcomeAbandoned = "abandoned"
)

// Recorder receives generation measurements.
type Recorder interface {
	ChunkReceived()
	DayReached(day int)
	GenerationFinished(outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ChunkReceived() {}
func (nopRecorder) DayReached(int) {}
func (nopRecorder) GenerationFinished(string, time.Duration) {}

// Options configures an Aggregator. The zero value uses the shallow validator,
// marker counting and English messages.
type Options struct {
	Validator   validation.Validator
	Strategy    progress.Strategy
	Locale      types.Locale
	Tier        llm.ModelTier
	Temperature float32
	Logger      *zerolog.Logger
	Recorder    Recorder
}

// Aggregator turns a profile into a validated plan by consuming a streamed response.
// It holds no per-attempt state; every call owns a fresh buffer.
type Aggregator struct {
	streamer    llm.Streamer
	validator   validation.Validator
	strategy    progress.Strategy
	locale      types.Locale
	catalog     messages.Catalog
	tier        llm.ModelTier
	temperature float32
	logger      zerolog.Logger
	recorder    Recorder
}

// NewAggregator creates an Aggregator that opens streams with streamer.
func NewAggregator(streamer llm.Streamer, opts Options) *Aggregator {
	a := &Aggregator{
		streamer:    streamer,
		validator:   opts.Validator,
		strategy:    opts.Strategy,
		locale:      opts.Locale,
		tier:        opts.Tier,
		temperature: opts.Temperature,
		logger:      zerolog.Nop(),
		recorder:    opts.Recorder,
	}
	if a.validator == nil {
		a.validator = validation.Shallow
	}
	if a.locale == "" {
		a.locale = types.DefaultLocale
	}
	if a.tier == "" {
		a.tier = llm.TierStandard
	}
	if a.temperature == 0 {
		a.temperature = llm.DefaultTemperature
	}
	if opts.Logger != nil {
		a.logger = *opts.Logger
	}
	if a.recorder == nil {
		a.recorder = nopRecorder{}
	}
	a.catalog = messages.For(a.locale)
	return a
}

// Catalog returns the messages the aggregator reports progress with.
func (a *Aggregator) Catalog() messages.Catalog {
	return a.catalog
}

// Events starts a generation attempt when iterated and yields its progress in order:
// the starting event, one event per newly reached day, the validating event and finally
// an event carrying the plan. A failure is yielded once as the error and ends the sequence.
//
// The sequence is single-use. Iterating it again yields ErrSequenceConsumed.
func (a *Aggregator) Events(ctx context.Context, profile types.UserProfile) iter.Seq2[ProgressEvent, error] {
	consumed := false
	return func(yield func(ProgressEvent, error) bool) {
		if consumed {
			yield(ProgressEvent{}, ErrSequenceConsumed)
			return
		}
		consumed = true
		a.run(ctx, profile, yield)
	}
}

// Run consumes Events, forwarding every progress update to onProgress, and returns
// the validated plan. No plan is returned alongside an error.
func (a *Aggregator) Run(ctx context.Context, profile types.UserProfile, onProgress ProgressCallback) (*types.PlanResponse, error) {
	for event, err := range a.Events(ctx, profile) {
		if err != nil {
			return nil, err
		}
		if event.Plan != nil {
			return event.Plan, nil
		}
		emitProgress(onProgress, event)
	}
	return nil, &TransportError{Message: "generation ended without a result"}
}

// emitProgress calls the progress callback if configured
func emitProgress(onProgress ProgressCallback, event ProgressEvent) {
	if onProgress != nil {
		onProgress(event)
	}
}

func (a *Aggregator) run(ctx context.Context, profile types.UserProfile, yield func(ProgressEvent, error) bool) {
	runID := uuid.New().String()
	log := a.logger.With().Str("run_id", runID).Str("locale", string(a.locale)).Logger()
	started := time.Now()

	fail := func(outcome string, err error) {
		a.recorder.GenerationFinished(outcome, time.Since(started))
		log.Error().Err(err).Str("outcome", outcome).Msg("plan generation failed")
		yield(ProgressEvent{}, err)
	}
	abandon := func(day int) {
		a.recorder.GenerationFinished(OutcomeAbandoned, time.Since(started))
		log.Info().Int("day", day).Str("outcome", OutcomeAbandoned).Msg("plan generation abandoned")
	}

	if err := profile.Validate(); err != nil {
		fail(OutcomeInvalidProfile, &InvalidProfileError{Cause: err})
		return
	}

	validation.LogInjectionWarning(log, validation.CheckBasicHeuristics(profile.Preferences), "preferences")

	req, err := a.request(profile)
	if err != nil {
		fail(OutcomeInvalidProfile, &InvalidProfileError{Cause: err})
		return
	}

	log.Info().Str("tier", string(a.tier)).Msg("starting plan generation")
	if !yield(ProgressEvent{Progress: progress.Starting(a.catalog), RunID: runID}, nil) {
		abandon(0)
		return
	}

	source, err := a.streamer.StreamJSON(ctx, req)
	if err != nil {
		fail(OutcomeTransportError, &TransportError{Message: "failed to open generation stream", Cause: err})
		return
	}

	estimator := progress.New(a.strategy, a.catalog)
	current := progress.Starting(a.catalog)
	var buf strings.Builder
	chunks := 0

	for {
		chunk, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fail(OutcomeTransportError, &TransportError{Message: "generation stream failed", Cause: err})
			return
		}
		if chunk.Text == "" {
			continue
		}

		chunks++
		a.recorder.ChunkReceived()
		buf.WriteString(chunk.Text)

		next, advanced := estimator.Update(buf.String())
		if !advanced {
			continue
		}
		current = next
		a.recorder.DayReached(current.Day)
		log.Debug().Int("day", current.Day).Int("chunks", chunks).Msg("generation progress")
		if !yield(ProgressEvent{Progress: current, RunID: runID}, nil) {
			abandon(current.Day)
			return
		}
	}

	if !yield(ProgressEvent{Progress: progress.Validating(a.catalog, current.Day), RunID: runID}, nil) {
		abandon(current.Day)
		return
	}

	plan, err := a.validator.Validate(buf.String())
	if err != nil {
		fail(OutcomeMalformed, err)
		return
	}

	a.recorder.GenerationFinished(OutcomeSuccess, time.Since(started))
	log.Info().
		Int("chunks", chunks).
		Int("bytes", buf.Len()).
		Dur("elapsed", time.Since(started)).
		Msg("plan generation completed")

	yield(ProgressEvent{Progress: progress.Validating(a.catalog, current.Day), RunID: runID, Plan: plan}, nil)
}

func (a *Aggregator) request(profile types.UserProfile) (llm.StreamRequest, error) {
	system, err := SystemInstruction(a.locale)
	if err != nil {
		return llm.StreamRequest{}, err
	}
	prompt, err := BuildPrompt(profile, a.locale)
	if err != nil {
		return llm.StreamRequest{}, err
	}
	return llm.StreamRequest{
		SystemInstruction: system,
		Prompt:            prompt,
		Schema:            llm.PlanResponseSchema(),
		Temperature:       a.temperature,
		Tier:              a.tier,
	}, nil
}
