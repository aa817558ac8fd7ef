//go:build wireinject
// +build wireinject

package di

import (
	"sage/config"
	"sage/infras/jwt"
	"sage/infras/kafka"
	"sage/infras/otel"
	"sage/infras/payments"
	"sage/infras/postgres"
	"sage/infras/redis"
	"sage/internal/events"
	"sage/internal/sweep"
	"sage/permissions"
	"sage/shared/cache"
	"sage/transport/http"
	"sage/transport/http/middleware"
	"sage/transport/http/router"

	adminHandler "sage/internal/handlers/admin"
	bookingHandler "sage/internal/handlers/booking"
	complaintHandler "sage/internal/handlers/complaint"
	reviewHandler "sage/internal/handlers/review"
	slotHandler "sage/internal/handlers/slot"

	adminRepository "sage/internal/domains/admin/repository"
	adminService "sage/internal/domains/admin/service"
	bookingRepository "sage/internal/domains/booking/repository"
	bookingService "sage/internal/domains/booking/service"
	commissionRepository "sage/internal/domains/commission/repository"
	commissionService "sage/internal/domains/commission/service"
	complaintRepository "sage/internal/domains/complaint/repository"
	complaintService "sage/internal/domains/complaint/service"
	escrowService "sage/internal/domains/escrow/service"
	listingRepository "sage/internal/domains/listing/repository"
	reviewRepository "sage/internal/domains/review/repository"
	reviewService "sage/internal/domains/review/service"
	slotRepository "sage/internal/domains/slot/repository"
	slotService "sage/internal/domains/slot/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	payments.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var eventing = wire.NewSet(
	events.NewPublisher,
	events.NewWebhookNotifier,
	events.NewWebhookScheduler,
	events.NewDispatcher,
)

var listingDomain = wire.NewSet(
	listingRepository.New,
)

var slotDomain = wire.NewSet(
	slotRepository.New,
	slotService.New,
)

var commissionDomain = wire.NewSet(
	commissionRepository.New,
	commissionService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var escrowDomain = wire.NewSet(
	escrowService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var complaintDomain = wire.NewSet(
	complaintRepository.New,
	complaintService.New,
)

var adminDomain = wire.NewSet(
	adminRepository.New,
	adminService.New,
)

var domains = wire.NewSet(
	listingDomain,
	slotDomain,
	commissionDomain,
	bookingDomain,
	escrowDomain,
	reviewDomain,
	complaintDomain,
	adminDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	slotHandler.New,
	bookingHandler.New,
	reviewHandler.New,
	complaintHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		eventing,
		domains,
		routing,
		sweep.New,
		http.New,
		newApp,
	)

	return &App{}
}
