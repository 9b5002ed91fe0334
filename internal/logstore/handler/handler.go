package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"logvault/internal/logstore/models"
	"logvault/pkg/platform/httputil"
	"logvault/pkg/platform/middleware/admin"
	"logvault/pkg/platform/middleware/metadata"
	request "logvault/pkg/platform/middleware/request"
	"logvault/pkg/platform/privacy"
)

// Service defines the log store operations exposed over HTTP.
type Service interface {
	Add(ctx context.Context, req *models.AddRequest) (*models.AddResponse, error)
	Query(ctx context.Context, req *models.QueryRequest) (*models.QueryResponse, error)
	Export(ctx context.Context, req *models.QueryRequest) (*models.ExportResponse, error)
	Size(ctx context.Context, req *models.SizeRequest) (*models.SizeResponse, error)
	Clear(ctx context.Context, req *models.ClearRequest) (*models.ClearResponse, error)
	SetBufferSize(ctx context.Context, req *models.BufferSizeRequest) (*models.BufferSizeResponse, error)
	BufferSize(ctx context.Context) *models.BufferSizeResponse
	Stats(ctx context.Context) *models.StatsResponse
}

// Handler handles log store endpoints.
type Handler struct {
	service    Service
	logger     *slog.Logger
	adminToken string
}

// New creates a log store Handler. adminToken guards clear and buffer-size
// changes; an empty token leaves them open.
func New(service Service, logger *slog.Logger, adminToken string) *Handler {
	return &Handler{
		service:    service,
		logger:     logger,
		adminToken: adminToken,
	}
}

// Register registers the log store routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/logs", h.HandleAdd)
	r.Post("/v1/logs/query", h.HandleQuery)
	r.Post("/v1/logs/export", h.HandleExport)
	r.Get("/v1/logs/size", h.HandleSize)
	r.Get("/v1/logs/buffer-size", h.HandleGetBufferSize)
	r.Get("/v1/stats", h.HandleStats)

	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(h.adminToken, h.logger))
		r.Post("/v1/logs/clear", h.HandleClear)
		r.Put("/v1/logs/buffer-size", h.HandleSetBufferSize)
	})
}

// HandleAdd implements POST /v1/logs.
// Input: { "message": "...", "level": "Warn", "namespace": "billing" }
// Output: { "sequence": 42 }
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.AddRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Add(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to add entry",
			"error", err,
			"namespace", req.Namespace,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

// HandleQuery implements POST /v1/logs/query.
// Input: { "namespaces": ["billing"], "level": "Warn", "take": 10, "prev": 10 }
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeOptionalAndPrepare[models.QueryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Query(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to query entries",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleExport implements POST /v1/logs/export. Same filter as query.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeOptionalAndPrepare[models.QueryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Export(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to export entries",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleSize implements GET /v1/logs/size?namespace=a&namespace=b&level=Warn.
func (h *Handler) HandleSize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	query := r.URL.Query()
	req := &models.SizeRequest{Namespaces: query["namespace"]}
	if query.Has("level") {
		level := query.Get("level")
		req.Level = &level
	}
	if err := httputil.PrepareRequest(req); err != nil {
		h.logger.WarnContext(ctx, "invalid size request",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.Size(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleClear implements POST /v1/logs/clear. An empty body or an empty
// namespace list clears everything.
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeOptionalAndPrepare[models.ClearRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Clear(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to clear entries",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "clear requested",
		"removed", res.Removed,
		"admin_actor", admin.GetAdminActorID(ctx),
		"client_ip", privacy.AnonymizeIP(metadata.GetClientIP(ctx)),
		"request_id", requestID,
	)
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleSetBufferSize implements PUT /v1/logs/buffer-size.
// Input: { "size": 500 }
// Output: { "size": 500 }
func (h *Handler) HandleSetBufferSize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.BufferSizeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.SetBufferSize(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to set buffer size",
			"error", err,
			"size", req.Size,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleGetBufferSize implements GET /v1/logs/buffer-size.
func (h *Handler) HandleGetBufferSize(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.BufferSize(r.Context()))
}

// HandleStats implements GET /v1/stats.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Stats(r.Context()))
}
