package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"biaslens/internal/bias"
	"biaslens/internal/config"
	"biaslens/internal/dataset"
	"biaslens/internal/infrastructure"
	"biaslens/internal/insight"
)

// InsightBroadcaster publishes asynchronous insight events to
// connected clients.
type InsightBroadcaster interface {
	BroadcastInsightReady(analysisID, insight string)
	BroadcastInsightError(analysisID, errMsg string)
}

// InsightGenerator produces a narrative for a completed analysis.
type InsightGenerator interface {
	Generate(ctx context.Context, payload bias.InsightPayload) (string, error)
}

// AnalysisResult is the synchronous outcome of analyzing one upload.
type AnalysisResult struct {
	ID       string        `json:"analysis_id"`
	Filename string        `json:"filename"`
	Summary  *bias.Summary `json:"summary"`
}

// AnalysisService orchestrates upload validation, parsing,
// summarization and the fire-and-forget insight dispatch.
type AnalysisService struct {
	summarizer     *bias.Summarizer
	generator      InsightGenerator
	broadcaster    InsightBroadcaster
	metrics        *infrastructure.Metrics
	logger         *slog.Logger
	maxUploadBytes int64
	insightTimeout time.Duration
}

// NewAnalysisService wires an AnalysisService from configuration.
// generator and broadcaster may be nil, in which case insight dispatch
// is disabled and analysis results are still returned synchronously.
func NewAnalysisService(
	cfg *config.Config,
	generator InsightGenerator,
	broadcaster InsightBroadcaster,
	metrics *infrastructure.Metrics,
	logger *slog.Logger,
) *AnalysisService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = logger.With(slog.String("component", "analysis_service"))

	return &AnalysisService{
		summarizer:     bias.NewSummarizer(logger, cfg.Analysis),
		generator:      generator,
		broadcaster:    broadcaster,
		metrics:        metrics,
		logger:         logger,
		maxUploadBytes: cfg.Upload.MaxBytes,
		insightTimeout: cfg.Insight.Timeout,
	}
}

// Analyze validates and parses an uploaded tabular file, summarizes
// its gender distribution, and kicks off insight generation in the
// background. The returned result never waits on the insight call.
func (s *AnalysisService) Analyze(ctx context.Context, filename string, size int64, r io.Reader) (*AnalysisResult, error) {
	start := time.Now()

	result, err := s.analyze(ctx, filename, size, r)
	if s.metrics != nil {
		s.metrics.RecordAnalysis(ctx, time.Since(start), err)
	}
	return result, err
}

func (s *AnalysisService) analyze(ctx context.Context, filename string, size int64, r io.Reader) (*AnalysisResult, error) {
	if err := dataset.ValidateUpload(filename, size, s.maxUploadBytes); err != nil {
		return nil, err
	}

	table, err := dataset.Parse(r, filename)
	if err != nil {
		return nil, err
	}

	summary, err := s.summarizer.Summarize(ctx, table)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		ID:       uuid.New().String(),
		Filename: filename,
		Summary:  summary,
	}

	s.logger.InfoContext(ctx, "analysis complete",
		slog.String("analysis_id", result.ID),
		slog.String("filename", filename),
		slog.Int("rows_classified", summary.Gender.Total),
		slog.Float64("bias_score", summary.Gender.BiasScore),
		slog.String("bias_label", summary.Gender.BiasLabel))

	s.dispatchInsight(ctx, result.ID, summary.InsightPayload())

	return result, nil
}

// dispatchInsight generates the insight in a detached goroutine so a
// slow or failing insight backend never delays analysis responses.
func (s *AnalysisService) dispatchInsight(ctx context.Context, analysisID string, payload bias.InsightPayload) {
	if s.generator == nil {
		return
	}

	traceID := infrastructure.GetTraceID(ctx)

	go func() {
		genCtx := context.Background()
		if traceID != "" {
			genCtx = infrastructure.WithTraceID(genCtx, traceID)
		}
		genCtx, cancel := context.WithTimeout(genCtx, s.insightTimeout)
		defer cancel()

		text, err := s.generator.Generate(genCtx, payload)
		if s.metrics != nil {
			s.metrics.RecordInsight(genCtx, err)
		}
		if err != nil {
			s.logger.WarnContext(genCtx, "insight generation failed",
				slog.String("analysis_id", analysisID),
				slog.String("error", err.Error()))
			if s.broadcaster != nil {
				s.broadcaster.BroadcastInsightError(analysisID, insightErrorMessage(err))
			}
			return
		}

		s.logger.InfoContext(genCtx, "insight generated",
			slog.String("analysis_id", analysisID),
			slog.Int("insight_length", len(text)))
		if s.broadcaster != nil {
			s.broadcaster.BroadcastInsightReady(analysisID, text)
		}
	}()
}

// insightErrorMessage maps generator failures to a short client-safe
// message. Upstream response bodies are never forwarded.
func insightErrorMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "insight generation timed out"
	}
	if errors.Is(err, insight.ErrGenerationFailed) {
		return "insight generation failed"
	}
	return "insight generation failed"
}

// LabelDetails exposes the label catalogue for the labels endpoint.
func (s *AnalysisService) LabelDetails() map[string]string {
	return bias.LabelDetails()
}
