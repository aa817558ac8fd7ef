package review

import (
	"net/http"
	"sage/infras/otel"
	"sage/internal/domains/review/model/dto"
	"sage/internal/domains/review/service"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/validator"
	"sage/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Review
	otel    otel.Otel
}

func New(service service.Review, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reviews", func(routerGroup chi.Router) {
		routerGroup.Post("/booking/{id}", handler.SubmitReview)
		routerGroup.Get("/booking/{id}", handler.GetReviewByBooking)
		routerGroup.Get("/listing/{id}", handler.GetReviewsByListing)
		routerGroup.Get("/mentor/{id}", handler.GetReviewsByMentor)
	})
}

// SubmitReview records the payer's review of a completed booking.
// @Summary Submit a review
// @Description Review a completed booking within its review window. The rating decides the escrow outcome.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.SubmitReviewRequest true "Submit Review Request"
// @Success 201 {object} response.Data[dto.ReviewResponse] "Review submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 412 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/booking/{id} [post]
// @Security BearerAuth
func (handler *Handler) SubmitReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitReview")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.SubmitReviewRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	review, err := handler.service.Submit(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit review")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Review submitted successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, review)
}

// GetReviewByBooking retrieves the review of a booking.
// @Summary Get a booking's review
// @Description Retrieve the single review attached to a booking.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.ReviewResponse] "Review details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/booking/{id} [get]
func (handler *Handler) GetReviewByBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviewByBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	review, err := handler.service.GetByBooking(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get review")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review retrieved successfully")

	response.WithJSON(w, http.StatusOK, review)
}

// GetReviewsByListing lists the reviews of a listing.
// @Summary Get listing reviews
// @Description Retrieve the reviews of a listing with pagination.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetReviewsResponse] "List of reviews"
// @Failure 500 {object} response.Error
// @Router /v1/reviews/listing/{id} [get]
func (handler *Handler) GetReviewsByListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviewsByListing")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	reviews, err := handler.service.GetAllByListing(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get listing reviews")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Listing reviews retrieved successfully")

	response.WithJSON(w, http.StatusOK, reviews)
}

// GetReviewsByMentor lists the reviews received by a mentor.
// @Summary Get mentor reviews
// @Description Retrieve the reviews received by a mentor across all listings.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Mentor ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetReviewsResponse] "List of reviews"
// @Failure 500 {object} response.Error
// @Router /v1/reviews/mentor/{id} [get]
func (handler *Handler) GetReviewsByMentor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviewsByMentor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	reviews, err := handler.service.GetAllByMentor(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get mentor reviews")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Mentor reviews retrieved successfully")

	response.WithJSON(w, http.StatusOK, reviews)
}
