package admin

import (
	"net/http"
	"sage/infras/otel"
	"sage/internal/domains/admin/model/dto"
	"sage/internal/domains/admin/service"
	commissionDto "sage/internal/domains/commission/model/dto"
	commissionService "sage/internal/domains/commission/service"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/validator"
	"sage/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service     service.Admin
	commissions commissionService.Commission
	otel        otel.Otel
}

func New(service service.Admin, commissions commissionService.Commission, otel otel.Otel) Handler {
	return Handler{
		service:     service,
		commissions: commissions,
		otel:        otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Post("/bookings/{id}/release", handler.ReleaseFull)
		routerGroup.Post("/bookings/{id}/release-partial", handler.ReleasePartial)
		routerGroup.Post("/bookings/{id}/refund", handler.RefundFull)
		routerGroup.Post("/bookings/{id}/cancel", handler.CancelBooking)
		routerGroup.Post("/bookings/{id}/suspend", handler.SuspendBooking)
		routerGroup.Post("/bookings/{id}/unsuspend", handler.UnsuspendBooking)

		routerGroup.Get("/revenue", handler.GetRevenue)
		routerGroup.Get("/flags", handler.GetFlags)
		routerGroup.Post("/flags/{id}/resolve", handler.ResolveFlag)

		routerGroup.Post("/admins", handler.AddAdmin)
		routerGroup.Get("/admins", handler.GetAdmins)
		routerGroup.Delete("/admins/{id}", handler.RemoveAdmin)

		routerGroup.Post("/commission-rules", handler.CreateCommissionRule)
		routerGroup.Get("/commission-rules", handler.GetCommissionRules)
		routerGroup.Put("/commission-rules/{id}", handler.UpdateCommissionRule)
		routerGroup.Delete("/commission-rules/{id}", handler.DeleteCommissionRule)
	})
}

// ReleaseFull releases the full escrow of a booking to the payee.
// @Summary Release escrow in full
// @Description Release the held payment of a booking to the payee, overriding the normal resolution path.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Escrow released successfully"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/{id}/release [post]
// @Security BearerAuth
func (handler *Handler) ReleaseFull(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReleaseFull")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.ReleaseFull(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to release escrow")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Escrow released successfully")

	response.WithMessage(w, http.StatusOK, "Escrow released successfully")
}

// ReleasePartial splits the escrow of a booking between payee and payer.
// @Summary Release escrow partially
// @Description Split the held payment of a booking, releasing a percentage to the payee and refunding the rest.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ReleasePartialRequest true "Release Partial Request"
// @Success 200 {object} response.Message "Escrow split successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/{id}/release-partial [post]
// @Security BearerAuth
func (handler *Handler) ReleasePartial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReleasePartial")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ReleasePartialRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ReleasePartial(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to split escrow")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Escrow split successfully")

	response.WithMessage(w, http.StatusOK, "Escrow split successfully")
}

// RefundFull refunds the full escrow of a booking to the payer.
// @Summary Refund escrow in full
// @Description Refund the held payment of a booking to the payer, overriding the normal resolution path.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Escrow refunded successfully"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/{id}/refund [post]
// @Security BearerAuth
func (handler *Handler) RefundFull(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefundFull")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.RefundFull(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refund escrow")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Escrow refunded successfully")

	response.WithMessage(w, http.StatusOK, "Escrow refunded successfully")
}

// CancelBooking cancels a booking on a participant's behalf.
// @Summary Cancel a booking
// @Description Cancel a booking as an operator. The slot is freed and held funds refunded.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking cancelled successfully"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.CancelBooking(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking cancelled successfully")

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}

// SuspendBooking parks a booking under review.
// @Summary Suspend a booking
// @Description Park a confirmed or completed booking under review, blocking automatic escrow release.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking suspended successfully"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/{id}/suspend [post]
// @Security BearerAuth
func (handler *Handler) SuspendBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SuspendBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Suspend(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to suspend booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking suspended successfully")

	response.WithMessage(w, http.StatusOK, "Booking suspended successfully")
}

// UnsuspendBooking returns a suspended booking to completed.
// @Summary Unsuspend a booking
// @Description Return a suspended booking to completed so the normal release machinery can resume.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking unsuspended successfully"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/{id}/unsuspend [post]
// @Security BearerAuth
func (handler *Handler) UnsuspendBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UnsuspendBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Unsuspend(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to unsuspend booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking unsuspended successfully")

	response.WithMessage(w, http.StatusOK, "Booking unsuspended successfully")
}

// GetRevenue reports accumulated platform fees.
// @Summary Get platform revenue
// @Description Report the platform fees accumulated from released escrows.
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.RevenueResponse] "Revenue report"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/revenue [get]
// @Security BearerAuth
func (handler *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	revenue, err := handler.service.Revenue(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Revenue retrieved successfully")

	response.WithJSON(w, http.StatusOK, revenue)
}

// GetFlags lists unresolved reconciliation flags.
// @Summary Get reconciliation flags
// @Description Retrieve the unresolved booking flags raised by escrow operations with pagination.
// @Tags Admin
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[bookingDto.GetFlagsResponse] "List of flags"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/flags [get]
// @Security BearerAuth
func (handler *Handler) GetFlags(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFlags")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	flags, err := handler.service.GetFlags(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get flags")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Flags retrieved successfully")

	response.WithJSON(w, http.StatusOK, flags)
}

// ResolveFlag marks a reconciliation flag as handled.
// @Summary Resolve a flag
// @Description Mark a booking flag as resolved after operator intervention.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Flag ID"
// @Success 200 {object} response.Message "Flag resolved successfully"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/flags/{id}/resolve [post]
// @Security BearerAuth
func (handler *Handler) ResolveFlag(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveFlag")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.ResolveFlag(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve flag")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Flag resolved successfully")

	response.WithMessage(w, http.StatusOK, "Flag resolved successfully")
}

// AddAdmin enrolls an email into the admin allowlist.
// @Summary Add an admin
// @Description Enroll an email into the admin allowlist.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.AddAdminRequest true "Add Admin Request"
// @Success 201 {object} response.Message "Admin added successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/admins [post]
// @Security BearerAuth
func (handler *Handler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddAdmin")
	defer scope.End()

	req := dto.AddAdminRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AddAdmin(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add admin")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Admin added successfully")

	response.WithMessage(w, http.StatusCreated, "Admin added successfully")
}

// GetAdmins lists the admin allowlist.
// @Summary Get admins
// @Description Retrieve the admin allowlist with pagination.
// @Tags Admin
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetAdminsResponse] "List of admins"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/admins [get]
// @Security BearerAuth
func (handler *Handler) GetAdmins(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdmins")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	admins, err := handler.service.GetAdmins(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admins")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Admins retrieved successfully")

	response.WithJSON(w, http.StatusOK, admins)
}

// RemoveAdmin removes an email from the admin allowlist.
// @Summary Remove an admin
// @Description Remove an enrolled email from the admin allowlist.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Admin ID"
// @Success 200 {object} response.Message "Admin removed successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/admins/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveAdmin")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.RemoveAdmin(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove admin")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Admin removed successfully")

	response.WithMessage(w, http.StatusOK, "Admin removed successfully")
}

// CreateCommissionRule creates a commission rule.
// @Summary Create a commission rule
// @Description Create a payee-specific, category-wide, or global commission rule.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body commissionDto.CreateRuleRequest true "Create Rule Request"
// @Success 201 {object} response.Message "Commission rule created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/commission-rules [post]
// @Security BearerAuth
func (handler *Handler) CreateCommissionRule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCommissionRule")
	defer scope.End()

	req := commissionDto.CreateRuleRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.commissions.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create commission rule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Commission rule created successfully")

	response.WithMessage(w, http.StatusCreated, "Commission rule created successfully")
}

// GetCommissionRules lists commission rules.
// @Summary Get commission rules
// @Description Retrieve all commission rules with pagination.
// @Tags Admin
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[commissionDto.GetRulesResponse] "List of commission rules"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/commission-rules [get]
// @Security BearerAuth
func (handler *Handler) GetCommissionRules(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCommissionRules")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	rules, err := handler.commissions.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get commission rules")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Commission rules retrieved successfully")

	response.WithJSON(w, http.StatusOK, rules)
}

// UpdateCommissionRule updates a commission rule.
// @Summary Update a commission rule
// @Description Update the percentage of an existing commission rule.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param request body commissionDto.UpdateRuleRequest true "Update Rule Request"
// @Success 200 {object} response.Message "Commission rule updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/commission-rules/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateCommissionRule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCommissionRule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := commissionDto.UpdateRuleRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.commissions.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update commission rule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Commission rule updated successfully")

	response.WithMessage(w, http.StatusOK, "Commission rule updated successfully")
}

// DeleteCommissionRule deletes a commission rule.
// @Summary Delete a commission rule
// @Description Delete an existing commission rule. Bookings keep the fee fixed at creation.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} response.Message "Commission rule deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/commission-rules/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCommissionRule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCommissionRule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.commissions.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete commission rule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Commission rule deleted successfully")

	response.WithMessage(w, http.StatusOK, "Commission rule deleted successfully")
}
