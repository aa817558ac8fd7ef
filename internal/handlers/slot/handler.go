package slot

import (
	"net/http"
	"sage/infras/otel"
	"sage/internal/domains/slot/model/dto"
	"sage/internal/domains/slot/service"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/validator"
	"sage/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Slot
	otel    otel.Otel
}

func New(service service.Slot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/slots", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSlots)
		routerGroup.Get("/listing/{id}", handler.GetAvailableSlots)
		routerGroup.Delete("/{id}", handler.DeleteSlot)
	})
}

// CreateSlots publishes availability slots for a listing.
// @Summary Create availability slots
// @Description Publish one or more future availability slots for a listing owned by the caller.
// @Tags Slot
// @Accept json
// @Produce json
// @Param request body dto.CreateSlotsRequest true "Create Slots Request"
// @Success 201 {object} response.Message "Slots created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/slots [post]
// @Security BearerAuth
func (handler *Handler) CreateSlots(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSlots")
	defer scope.End()

	req := dto.CreateSlotsRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create slots")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Slots created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Slots created successfully")
}

// GetAvailableSlots lists the open future slots of a listing.
// @Summary Get available slots
// @Description Retrieve the unbooked future slots of a listing with pagination.
// @Tags Slot
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetSlotsResponse] "List of available slots"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/slots/listing/{id} [get]
func (handler *Handler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableSlots")
	defer scope.End()

	listingID := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	slots, err := handler.service.ListAvailable(ctx, listingID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available slots")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Available slots retrieved successfully")

	response.WithJSON(w, http.StatusOK, slots)
}

// DeleteSlot removes an unclaimed slot.
// @Summary Delete a slot
// @Description Remove an unclaimed availability slot owned by the caller's listing.
// @Tags Slot
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Message "Slot deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/slots/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSlot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete slot")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Slot deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Slot deleted successfully")
}
