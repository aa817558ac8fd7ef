package router

import (
	"sage/internal/handlers/admin"
	"sage/internal/handlers/booking"
	"sage/internal/handlers/complaint"
	"sage/internal/handlers/review"
	"sage/internal/handlers/slot"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Slot      slot.Handler
	Booking   booking.Handler
	Review    review.Handler
	Complaint complaint.Handler
	Admin     admin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Slot.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Complaint.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
