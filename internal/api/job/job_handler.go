package job

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
	ListCompanies(w http.ResponseWriter, r *http.Request)
	GetCompany(w http.ResponseWriter, r *http.Request)
	CreateCompany(w http.ResponseWriter, r *http.Request)
	UpdateCompany(w http.ResponseWriter, r *http.Request)
	DeleteCompany(w http.ResponseWriter, r *http.Request)

	ListIndustries(w http.ResponseWriter, r *http.Request)
	GetIndustry(w http.ResponseWriter, r *http.Request)
	CreateIndustry(w http.ResponseWriter, r *http.Request)
	UpdateIndustry(w http.ResponseWriter, r *http.Request)
	DeleteIndustry(w http.ResponseWriter, r *http.Request)

	ListJobListings(w http.ResponseWriter, r *http.Request)
	GetJobListing(w http.ResponseWriter, r *http.Request)
	CreateJobListing(w http.ResponseWriter, r *http.Request)
	UpdateJobListing(w http.ResponseWriter, r *http.Request)
	DeleteJobListing(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	jobService Service
	logger     *slog.Logger
}

func NewHandlerImpl(jobService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{jobService: jobService, logger: logger}
}

func (h *HandlerImpl) ListCompanies(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "ListCompanies", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/companies"),
	))
	defer span.End()

	companies, err := h.jobService.ListCompanies(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list companies")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, companies)
}

func (h *HandlerImpl) GetCompany(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "GetCompany", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/companies/{companyID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "companyID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid company ID")
		return
	}

	c, err := h.jobService.GetCompany(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get company")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

func (h *HandlerImpl) CreateCompany(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "CreateCompany", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/companies"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertCompanyRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.jobService.CreateCompany(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create company")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, c)
}

func (h *HandlerImpl) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "UpdateCompany", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/companies/{companyID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "companyID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid company ID")
		return
	}

	var req UpsertCompanyRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.jobService.UpdateCompany(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update company")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

func (h *HandlerImpl) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "DeleteCompany", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/companies/{companyID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "companyID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid company ID")
		return
	}

	if err := h.jobService.DeleteCompany(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete company")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func (h *HandlerImpl) ListIndustries(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "ListIndustries", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/industries"),
	))
	defer span.End()

	industries, err := h.jobService.ListIndustries(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list industries")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, industries)
}

func (h *HandlerImpl) GetIndustry(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "GetIndustry", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/industries/{industryID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "industryID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid industry ID")
		return
	}

	i, err := h.jobService.GetIndustry(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get industry")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, i)
}

func (h *HandlerImpl) CreateIndustry(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "CreateIndustry", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/industries"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertIndustryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	i, err := h.jobService.CreateIndustry(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create industry")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, i)
}

func (h *HandlerImpl) UpdateIndustry(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "UpdateIndustry", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/industries/{industryID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "industryID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid industry ID")
		return
	}

	var req UpsertIndustryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	i, err := h.jobService.UpdateIndustry(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update industry")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, i)
}

func (h *HandlerImpl) DeleteIndustry(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "DeleteIndustry", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/industries/{industryID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "industryID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid industry ID")
		return
	}

	if err := h.jobService.DeleteIndustry(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete industry")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func (h *HandlerImpl) ListJobListings(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "ListJobListings", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/jobs"),
	))
	defer span.End()

	if companyStr := r.URL.Query().Get("company_id"); companyStr != "" {
		companyID, err := uuid.Parse(companyStr)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid company ID")
			return
		}
		listings, err := h.jobService.ListJobListingsByCompany(ctx, companyID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to list job listings by company")
			api.HandleError(w, r, err)
			return
		}
		api.WriteJSONResponse(w, r, http.StatusOK, listings)
		return
	}

	listings, err := h.jobService.ListJobListings(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list job listings")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, listings)
}

func (h *HandlerImpl) GetJobListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "GetJobListing", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/jobs/{jobID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "jobID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid job listing ID")
		return
	}

	j, err := h.jobService.GetJobListing(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get job listing")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, j)
}

func (h *HandlerImpl) CreateJobListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "CreateJobListing", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/jobs"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertJobListingRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	j, err := h.jobService.CreateJobListing(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create job listing")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, j)
}

func (h *HandlerImpl) UpdateJobListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "UpdateJobListing", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/jobs/{jobID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "jobID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid job listing ID")
		return
	}

	var req UpsertJobListingRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	j, err := h.jobService.UpdateJobListing(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update job listing")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, j)
}

func (h *HandlerImpl) DeleteJobListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("JobHandler").Start(r.Context(), "DeleteJobListing", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/jobs/{jobID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "jobID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid job listing ID")
		return
	}

	if err := h.jobService.DeleteJobListing(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete job listing")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
