package complaint

import (
	"net/http"
	"sage/infras/otel"
	"sage/internal/domains/complaint/model/dto"
	"sage/internal/domains/complaint/service"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/validator"
	"sage/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Complaint
	otel    otel.Otel
}

func New(service service.Complaint, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/complaints", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetComplaints)
		routerGroup.Post("/{id}/resolve", handler.ResolveComplaint)
	})
}

// GetComplaints lists complaints for operator review.
// @Summary Get complaints
// @Description Retrieve all complaints with pagination.
// @Tags Complaint
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetComplaintsResponse] "List of complaints"
// @Failure 500 {object} response.Error
// @Router /v1/complaints [get]
// @Security BearerAuth
func (handler *Handler) GetComplaints(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetComplaints")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	complaints, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get complaints")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Complaints retrieved successfully")

	response.WithJSON(w, http.StatusOK, complaints)
}

// ResolveComplaint closes a complaint with a resolution note.
// @Summary Resolve a complaint
// @Description Close an open complaint with an operator's resolution note.
// @Tags Complaint
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param request body dto.ResolveComplaintRequest true "Resolve Complaint Request"
// @Success 200 {object} response.Message "Complaint resolved successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/complaints/{id}/resolve [post]
// @Security BearerAuth
func (handler *Handler) ResolveComplaint(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveComplaint")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ResolveComplaintRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Resolve(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve complaint")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Complaint resolved successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Complaint resolved successfully")
}
