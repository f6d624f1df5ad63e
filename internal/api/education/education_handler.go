package education

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
	ListUniversities(w http.ResponseWriter, r *http.Request)
	GetUniversity(w http.ResponseWriter, r *http.Request)
	CreateUniversity(w http.ResponseWriter, r *http.Request)
	UpdateUniversity(w http.ResponseWriter, r *http.Request)
	DeleteUniversity(w http.ResponseWriter, r *http.Request)

	ListColleges(w http.ResponseWriter, r *http.Request)
	GetCollege(w http.ResponseWriter, r *http.Request)
	SearchColleges(w http.ResponseWriter, r *http.Request)
	CreateCollege(w http.ResponseWriter, r *http.Request)
	UpdateCollege(w http.ResponseWriter, r *http.Request)
	DeleteCollege(w http.ResponseWriter, r *http.Request)

	ListCoachingCenters(w http.ResponseWriter, r *http.Request)
	GetCoachingCenter(w http.ResponseWriter, r *http.Request)
	SearchCoachingCenters(w http.ResponseWriter, r *http.Request)
	CreateCoachingCenter(w http.ResponseWriter, r *http.Request)
	UpdateCoachingCenter(w http.ResponseWriter, r *http.Request)
	DeleteCoachingCenter(w http.ResponseWriter, r *http.Request)

	ListLibraries(w http.ResponseWriter, r *http.Request)
	GetLibrary(w http.ResponseWriter, r *http.Request)
	CreateLibrary(w http.ResponseWriter, r *http.Request)
	UpdateLibrary(w http.ResponseWriter, r *http.Request)
	DeleteLibrary(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	educationService Service
	logger           *slog.Logger
}

func NewHandlerImpl(educationService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{educationService: educationService, logger: logger}
}

func (h *HandlerImpl) ListUniversities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "ListUniversities", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/universities"),
	))
	defer span.End()

	universities, err := h.educationService.ListUniversities(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list universities")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, universities)
}

func (h *HandlerImpl) GetUniversity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "GetUniversity", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/universities/{universityID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "universityID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid university ID")
		return
	}

	u, err := h.educationService.GetUniversity(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get university")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, u)
}

func (h *HandlerImpl) CreateUniversity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "CreateUniversity", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/universities"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertUniversityRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.educationService.CreateUniversity(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create university")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, u)
}

func (h *HandlerImpl) UpdateUniversity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "UpdateUniversity", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/universities/{universityID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "universityID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid university ID")
		return
	}

	var req UpsertUniversityRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.educationService.UpdateUniversity(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update university")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, u)
}

func (h *HandlerImpl) DeleteUniversity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "DeleteUniversity", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/universities/{universityID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "universityID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid university ID")
		return
	}

	if err := h.educationService.DeleteUniversity(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete university")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func (h *HandlerImpl) ListLibraries(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "ListLibraries", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/libraries"),
	))
	defer span.End()

	libraries, err := h.educationService.ListLibraries(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list libraries")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, libraries)
}

func (h *HandlerImpl) GetLibrary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "GetLibrary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/libraries/{libraryID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "libraryID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid library ID")
		return
	}

	l, err := h.educationService.GetLibrary(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get library")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, l)
}

func (h *HandlerImpl) CreateLibrary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "CreateLibrary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/libraries"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertLibraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	l, err := h.educationService.CreateLibrary(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create library")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, l)
}

func (h *HandlerImpl) UpdateLibrary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "UpdateLibrary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/libraries/{libraryID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "libraryID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid library ID")
		return
	}

	var req UpsertLibraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	l, err := h.educationService.UpdateLibrary(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update library")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, l)
}

func (h *HandlerImpl) DeleteLibrary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "DeleteLibrary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/libraries/{libraryID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "libraryID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid library ID")
		return
	}

	if err := h.educationService.DeleteLibrary(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete library")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func (h *HandlerImpl) ListColleges(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "ListColleges", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/colleges"),
	))
	defer span.End()

	colleges, err := h.educationService.ListColleges(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list colleges")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, colleges)
}

func (h *HandlerImpl) GetCollege(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "GetCollege", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/colleges/{collegeID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "collegeID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid college ID")
		return
	}

	c, err := h.educationService.GetCollege(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get college")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

func (h *HandlerImpl) SearchColleges(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "SearchColleges", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/colleges/search"),
	))
	defer span.End()

	colleges, err := h.educationService.SearchColleges(ctx, r.URL.Query().Get("query"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to search colleges")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, colleges)
}

func (h *HandlerImpl) CreateCollege(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "CreateCollege", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/colleges"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertCollegeRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.educationService.CreateCollege(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create college")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, c)
}

func (h *HandlerImpl) UpdateCollege(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "UpdateCollege", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/colleges/{collegeID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "collegeID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid college ID")
		return
	}

	var req UpsertCollegeRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.educationService.UpdateCollege(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update college")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

func (h *HandlerImpl) DeleteCollege(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "DeleteCollege", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/colleges/{collegeID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "collegeID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid college ID")
		return
	}

	if err := h.educationService.DeleteCollege(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete college")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func (h *HandlerImpl) ListCoachingCenters(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "ListCoachingCenters", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/coaching-centers"),
	))
	defer span.End()

	centers, err := h.educationService.ListCoachingCenters(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list coaching centers")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, centers)
}

func (h *HandlerImpl) GetCoachingCenter(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "GetCoachingCenter", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/coaching-centers/{centerID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "centerID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid coaching center ID")
		return
	}

	c, err := h.educationService.GetCoachingCenter(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get coaching center")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

func (h *HandlerImpl) SearchCoachingCenters(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "SearchCoachingCenters", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/coaching-centers/search"),
	))
	defer span.End()

	centers, err := h.educationService.SearchCoachingCenters(ctx, r.URL.Query().Get("query"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to search coaching centers")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, centers)
}

func (h *HandlerImpl) CreateCoachingCenter(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "CreateCoachingCenter", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/coaching-centers"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	var req UpsertCoachingCenterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.educationService.CreateCoachingCenter(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create coaching center")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, c)
}

func (h *HandlerImpl) UpdateCoachingCenter(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "UpdateCoachingCenter", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/coaching-centers/{centerID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "centerID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid coaching center ID")
		return
	}

	var req UpsertCoachingCenterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.educationService.UpdateCoachingCenter(ctx, id, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update coaching center")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

func (h *HandlerImpl) DeleteCoachingCenter(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("EducationHandler").Start(r.Context(), "DeleteCoachingCenter", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/coaching-centers/{centerID}"),
	))
	defer span.End()

	if role, _ := auth.RoleFromContext(ctx); role != types.RoleAdmin {
		api.HandleError(w, r, api.ErrForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "centerID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid coaching center ID")
		return
	}

	if err := h.educationService.DeleteCoachingCenter(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete coaching center")
		api.HandleError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
