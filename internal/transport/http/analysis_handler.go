package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"biaslens/internal/bias"
	"biaslens/internal/dataset"
	apierrors "biaslens/internal/errors"
	"biaslens/internal/services"
)

// AnalysisServiceInterface abstracts the analysis service for testing.
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, filename string, size int64, r io.Reader) (*services.AnalysisResult, error)
	LabelDetails() map[string]string
}

// AnalysisHandler handles dataset analysis HTTP requests with RFC 7807 compliance
type AnalysisHandler struct {
	service      AnalysisServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	maxBytes     int64
}

// NewAnalysisHandler creates a new analysis handler with RFC 7807 error handling
func NewAnalysisHandler(service AnalysisServiceInterface, maxBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
		maxBytes:     maxBytes,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/analyze", h.Analyze)
	r.Get("/labels", h.Labels)

	return r
}

// Analyze handles POST /api/analyze. It expects a multipart form with
// the dataset under the "file" field and responds with the full
// summary; the generated insight arrives later over the websocket.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrFileTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrMissingFile)
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "analyzing upload",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	result, err := h.service.Analyze(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		h.logger.WarnContext(r.Context(), "analysis failed",
			slog.String("request_id", reqID),
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, mapAnalysisError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// Labels handles GET /api/labels, returning the bias label catalogue.
func (h *AnalysisHandler) Labels(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"labels": h.service.LabelDetails(),
	})
}

// mapAnalysisError translates parsing and summarization sentinels into
// API errors so the central handler renders the right problem type.
func mapAnalysisError(err error) error {
	switch {
	case errors.Is(err, dataset.ErrFileTooLarge):
		return apierrors.ErrFileTooLarge
	case errors.Is(err, dataset.ErrInvalidFileType):
		return apierrors.ErrUnsupportedFileType
	case errors.Is(err, dataset.ErrEmptyFile),
		errors.Is(err, dataset.ErrMalformedFile):
		return apierrors.InvalidUploadError(err)
	case errors.Is(err, bias.ErrNoGenderColumn):
		return apierrors.ErrNoGenderColumn
	case errors.Is(err, bias.ErrEmptyDataset):
		return apierrors.ErrEmptyDataset
	}

	return err
}
