package business

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tmendes/go-smartcity-services/internal/api"
	"github.com/tmendes/go-smartcity-services/internal/api/auth"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListBusinesses(w http.ResponseWriter, r *http.Request)
	GetBusiness(w http.ResponseWriter, r *http.Request)
	CreateBusiness(w http.ResponseWriter, r *http.Request)
	UpdateBusiness(w http.ResponseWriter, r *http.Request)
	DeleteBusiness(w http.ResponseWriter, r *http.Request)

	ListNews(w http.ResponseWriter, r *http.Request)
	GetNews(w http.ResponseWriter, r *http.Request)
	CreateNews(w http.ResponseWriter, r *http.Request)
	UpdateNews(w http.ResponseWriter, r *http.Request)
	DeleteNews(w http.ResponseWriter, r *http.Request)

	ListCenters(w http.ResponseWriter, r *http.Request)
	GetCenter(w http.ResponseWriter, r *http.Request)
	SearchCenters(w http.ResponseWriter, r *http.Request)
	CreateCenter(w http.ResponseWriter, r *http.Request)
	UpdateCenter(w http.ResponseWriter, r *http.Request)
	DeleteCenter(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	businessService Service
	logger          *slog.Logger
}

func NewHandlerImpl(businessService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{businessService: businessService, logger: logger}
}

func (h *HandlerImpl) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "ListBusinesses", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/businesses"),
	))
	defer span.End()

	if sector := r.URL.Query().Get("sector"); sector != "" {
		businesses, err := h.businessService.ListBusinessesBySector(ctx, sector)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to list businesses by sector")
			api.HandleError(w, r, err)
			return
		}
		api.WriteJSONResponse(w, r, http.StatusOK, businesses)
		return
	}

	businesses, err := h.businessService.ListBusinesses(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list businesses")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, businesses)
}

func (h *HandlerImpl) GetBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "GetBusiness", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/businesses/{businessID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "businessID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid business ID")
		return
	}

	b, err := h.businessService.GetBusiness(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get business")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, b)
}

func (h *HandlerImpl) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "CreateBusiness", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/businesses"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertBusinessRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.businessService.CreateBusiness(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create business")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, b)
}

func (h *HandlerImpl) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "UpdateBusiness", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/businesses/{businessID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "businessID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid business ID")
		return
	}

	var req UpsertBusinessRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.businessService.UpdateBusiness(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update business")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, b)
}

func (h *HandlerImpl) DeleteBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "DeleteBusiness", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/businesses/{businessID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "businessID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid business ID")
		return
	}

	if err := h.businessService.DeleteBusiness(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete business")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func (h *HandlerImpl) ListNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "ListNews", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/business-news"),
	))
	defer span.End()

	news, err := h.businessService.ListNews(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list business news")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, news)
}

func (h *HandlerImpl) GetNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "GetNews", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/business-news/{newsID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "newsID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid news ID")
		return
	}

	n, err := h.businessService.GetNews(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get business news")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, n)
}

func (h *HandlerImpl) CreateNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "CreateNews", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/business-news"),
	))
	defer span.End()

	author, ok := auth.IdentityFromContext(ctx)
	if !ok || author.Role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertNewsRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.businessService.CreateNews(ctx, author.ID, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create business news")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, n)
}

func (h *HandlerImpl) UpdateNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "UpdateNews", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/business-news/{newsID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "newsID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid news ID")
		return
	}

	var req UpsertNewsRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.businessService.UpdateNews(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update business news")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, n)
}

func (h *HandlerImpl) DeleteNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "DeleteNews", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/business-news/{newsID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "newsID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid news ID")
		return
	}

	if err := h.businessService.DeleteNews(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete business news")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func (h *HandlerImpl) ListCenters(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "ListCenters", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/business-centers"),
	))
	defer span.End()

	centers, err := h.businessService.ListCenters(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list business centers")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, centers)
}

func (h *HandlerImpl) GetCenter(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "GetCenter", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/business-centers/{centerID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "centerID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid center ID")
		return
	}

	c, err := h.businessService.GetCenter(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get business center")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

func (h *HandlerImpl) SearchCenters(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "SearchCenters", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/business-centers/search"),
	))
	defer span.End()

	centers, err := h.businessService.SearchCenters(ctx, r.URL.Query().Get("query"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to search business centers")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, centers)
}

func (h *HandlerImpl) CreateCenter(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "CreateCenter", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/business-centers"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertCenterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.businessService.CreateCenter(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create business center")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, c)
}

func (h *HandlerImpl) UpdateCenter(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "UpdateCenter", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/business-centers/{centerID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "centerID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid center ID")
		return
	}

	var req UpsertCenterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.businessService.UpdateCenter(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update business center")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

func (h *HandlerImpl) DeleteCenter(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BusinessHandler").Start(r.Context(), "DeleteCenter", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/business-centers/{centerID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "centerID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid center ID")
		return
	}

	if err := h.businessService.DeleteCenter(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete business center")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
