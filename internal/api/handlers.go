// internal/api/handlers.go
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/textlens/TextLensHub/internal/errors"
	"github.com/textlens/TextLensHub/internal/models"
	"github.com/textlens/TextLensHub/internal/nlp"
	"github.com/textlens/TextLensHub/internal/services"
)

// Handler holds the services behind the HTTP surface.
type Handler struct {
	AnalysisService *services.AnalysisService
	ExportService   *services.ExportService
	StatsService    *services.StatsService
	Hub             *ActivityHub

	response *ResponseHelper
}

// NewHandler creates the API handler.
func NewHandler(
	analysisService *services.AnalysisService,
	exportService *services.ExportService,
	statsService *services.StatsService,
	hub *ActivityHub,
) *Handler {
	return &Handler{
		AnalysisService: analysisService,
		ExportService:   exportService,
		StatsService:    statsService,
		Hub:             hub,
		response:        NewResponseHelper(),
	}
}

// IndexPage serves the dashboard.
func (h *Handler) IndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Kinds": models.AllKinds(),
	})
}

// GetHealth reports service liveness.
func (h *Handler) GetHealth(c *gin.Context) {
	h.response.Success(c, gin.H{"status": "ok"})
}

// GetStats returns per-kind usage counters for the dashboard footer.
func (h *Handler) GetStats(c *gin.Context) {
	h.response.Success(c, h.StatsService.Snapshot())
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeText runs one analysis submission for the kind in the path.
// Pipeline failures map onto HTTP statuses: validation and server
// rejection 400, throttle denial 429, transient failure 502. The
// response message is always the classified user-facing string.
func (h *Handler) AnalyzeText(c *gin.Context) {
	kind, ok := models.ParseKind(c.Param("kind"))
	if !ok {
		h.response.BadRequest(c, ErrorKindInvalid, "unknown analysis kind")
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.BadRequest(c, ErrorBadRequest, "invalid request body")
		return
	}

	result, err := h.AnalysisService.Analyze(c.Request.Context(), kind, req.Text)
	if err != nil {
		h.writeAnalysisError(c, err)
		return
	}

	h.response.Success(c, result)
}

func (h *Handler) writeAnalysisError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrStaleResponse) {
		h.response.Error(c, http.StatusConflict, ErrorStaleResponse,
			"superseded by a newer request")
		return
	}

	message := nlp.UserMessage(err)

	code := ErrorInternalError
	var appError *apperrors.AppError
	if errors.As(err, &appError) {
		code = appError.Code
	}

	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeEmptyInput, apperrors.ErrorTypeLengthExceeded,
		apperrors.ErrorTypeServerRejected:
		h.response.BadRequest(c, code, message)
	case apperrors.ErrorTypeThrottled:
		h.response.TooManyRequests(c, code, message)
	case apperrors.ErrorTypeTransient:
		h.response.BadGateway(c, code, message)
	default:
		h.response.InternalError(c, message)
	}
}

type exportRequest struct {
	Format string                `json:"format"`
	Result models.AnalysisResult `json:"result"`
}

// downloadSink emits an export payload as a forced file download. It is
// the only step of the export pipeline with an HTTP side effect.
type downloadSink struct {
	c        *gin.Context
	response *ResponseHelper
}

func (d downloadSink) Emit(filename, mimeType string, payload []byte) error {
	d.response.DownloadResponse(d.c, payload, filename, mimeType)
	return nil
}

// ExportResult serializes a normalized result as CSV or XLSX and
// responds with a download. Export is never throttled.
func (h *Handler) ExportResult(c *gin.Context) {
	kind, ok := models.ParseKind(c.Param("kind"))
	if !ok {
		h.response.BadRequest(c, ErrorKindInvalid, "unknown analysis kind")
		return
	}

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.BadRequest(c, ErrorBadRequest, "invalid request body")
		return
	}

	format, ok := models.ParseExportFormat(req.Format)
	if !ok {
		h.response.BadRequest(c, ErrorFormatInvalid, "format must be csv or xlsx")
		return
	}

	// The path segment wins over whatever the body claims.
	req.Result.Kind = kind

	sink := downloadSink{c: c, response: h.response}
	if err := h.ExportService.Export(&req.Result, format, sink); err != nil {
		h.response.Error(c, http.StatusInternalServerError, ErrorExportFailed, err.Error())
		return
	}
}

// ActivityWebSocket subscribes a dashboard client to the live feed.
func (h *Handler) ActivityWebSocket(c *gin.Context) {
	h.Hub.HandleConnection(c)
}
