package booking

import (
	"net/http"
	"sage/infras/otel"
	"sage/internal/domains/booking/model/dto"
	"sage/internal/domains/booking/service"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/validator"
	"sage/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Post("/{id}/checkout", handler.Checkout)
		routerGroup.Post("/{id}/confirm-payment", handler.ConfirmPayment)
		routerGroup.Post("/{id}/accept", handler.AcceptBooking)
		routerGroup.Post("/{id}/reject", handler.RejectBooking)
		routerGroup.Post("/{id}/complete", handler.CompleteBooking)
	})
}

// CreateBooking creates a new booking against an available slot.
// @Summary Create a new booking
// @Description Book a listing slot. The commission split is fixed at creation.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings lists the caller's bookings.
// @Summary Get bookings
// @Description Retrieve the caller's bookings with pagination. Admins see all bookings.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking visible to the caller.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// Checkout authorizes a payment hold for the booking amount.
// @Summary Check out a booking
// @Description Authorize a payment hold for the full booking amount. The returned hold reference is passed to confirm-payment.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.CheckoutResponse] "Payment hold authorized"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/checkout [post]
// @Security BearerAuth
func (handler *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	checkout, err := handler.service.Checkout(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment hold authorized successfully for user " + user)

	response.WithJSON(w, http.StatusOK, checkout)
}

// ConfirmPayment captures the payment hold and confirms the booking.
// @Summary Confirm booking payment
// @Description Capture the payer's payment hold and move the booking to confirmed.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ConfirmPaymentRequest true "Confirm Payment Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Payment confirmed"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/confirm-payment [post]
// @Security BearerAuth
func (handler *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmPayment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ConfirmPaymentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.ConfirmPayment(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm payment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment confirmed successfully by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

// AcceptBooking records the payee's acceptance.
// @Summary Accept a booking
// @Description Accept a confirmed booking as the payee, provisioning the meeting and conversation.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking accepted successfully"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/accept [post]
// @Security BearerAuth
func (handler *Handler) AcceptBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcceptBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Accept(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to accept booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking accepted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking accepted successfully")
}

// RejectBooking declines an unaccepted booking and refunds any held payment.
// @Summary Reject a booking
// @Description Reject a not-yet-accepted booking as the payee. The slot is freed and held funds refunded.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking rejected successfully"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Reject(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking rejected successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking rejected successfully")
}

// CompleteBooking marks a delivered session as completed.
// @Summary Complete a booking
// @Description Mark an accepted booking as completed once the session time has passed.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking completed successfully"
// @Failure 409 {object} response.Error
// @Failure 412 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Complete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking completed successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking completed successfully")
}
