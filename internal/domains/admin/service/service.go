package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Admin=MockAdminService

import (
	"context"
	"errors"
	"fmt"
	"sage/config"
	"sage/infras/otel"
	"sage/internal/domains/admin/model"
	"sage/internal/domains/admin/model/dto"
	"sage/internal/domains/admin/repository"
	bookingModel "sage/internal/domains/booking/model"
	bookingDto "sage/internal/domains/booking/model/dto"
	bookingRepo "sage/internal/domains/booking/repository"
	bookingService "sage/internal/domains/booking/service"
	escrowService "sage/internal/domains/escrow/service"
	"sage/shared"
	"sage/shared/constant"
	gDto "sage/shared/dto"
	"sage/shared/failure"
	gModel "sage/shared/model"
	"sage/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Admin is the manual override surface. Every operation passes the allowlist
// gate before touching anything: the admin role alone is not sufficient, the
// caller's email must also be enrolled. All overrides are audit logged with
// the acting admin.
type Admin interface {
	ReleaseFull(ctx context.Context, bookingID string) error
	ReleasePartial(ctx context.Context, bookingID string, req dto.ReleasePartialRequest) error
	RefundFull(ctx context.Context, bookingID string) error
	CancelBooking(ctx context.Context, bookingID string) error
	Suspend(ctx context.Context, bookingID string) error
	Unsuspend(ctx context.Context, bookingID string) error

	AddAdmin(ctx context.Context, req dto.AddAdminRequest) error
	RemoveAdmin(ctx context.Context, id string) error
	GetAdmins(ctx context.Context, params gDto.QueryParams) (dto.GetAdminsResponse, error)

	Revenue(ctx context.Context) (dto.RevenueResponse, error)
	GetFlags(ctx context.Context, params gDto.QueryParams) (bookingDto.GetFlagsResponse, error)
	ResolveFlag(ctx context.Context, flagID string) error
}

type serviceImpl struct {
	repo     repository.Admin
	bookings bookingRepo.Booking
	booking  bookingService.Booking
	escrow   escrowService.Escrow
	cfg      *config.Config
	otel     otel.Otel
}

func New(
	repo repository.Admin,
	bookings bookingRepo.Booking,
	booking bookingService.Booking,
	escrow escrowService.Escrow,
	cfg *config.Config,
	otel otel.Otel,
) Admin {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		booking:  booking,
		escrow:   escrow,
		cfg:      cfg,
		otel:     otel,
	}
}

// gate verifies the caller is an enrolled admin. It returns the admin email
// for audit logging.
func (s *serviceImpl) gate(ctx context.Context) (string, error) {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	if role != constant.RoleAdmin || email == constant.Empty {
		return constant.Empty, failure.Forbidden("admin access required") //nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldEmail, Value: email, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	enrolled, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check admin allowlist")

		return constant.Empty, fmt.Errorf("failed to check admin allowlist: %w", err)
	}

	if !enrolled {
		return constant.Empty, failure.Forbidden("admin access required") //nolint:wrapcheck
	}

	return email, nil
}

func (s *serviceImpl) ReleaseFull(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.ReleaseFull")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.gate(ctx)
	if err != nil {
		return err
	}

	if err = s.escrow.ReleaseToPayee(ctx, bookingID, escrowService.TriggerAdmin); err != nil {
		return err
	}

	s.markResolved(ctx, bookingID, admin)

	log.Info().Str("admin", admin).Str("booking_id", bookingID).Msg("admin released escrow in full")

	return nil
}

func (s *serviceImpl) ReleasePartial(ctx context.Context, bookingID string, req dto.ReleasePartialRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.ReleasePartial")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.gate(ctx)
	if err != nil {
		return err
	}

	if err = s.escrow.SplitResolve(ctx, bookingID, req.PayeePercent); err != nil {
		return err
	}

	s.markResolved(ctx, bookingID, admin)

	log.Info().Str("admin", admin).Str("booking_id", bookingID).Int("payee_percent", req.PayeePercent).Msg("admin split escrow")

	return nil
}

// markResolved moves a booking parked under review back to completed once an
// admin has settled its escrow. A booking that was never suspended matches
// zero rows, which is fine.
func (s *serviceImpl) markResolved(ctx context.Context, bookingID, admin string) {
	_, err := s.bookings.TransitionStatus(ctx, bookingID,
		[]string{bookingModel.StatusUnderReview},
		bookingModel.StatusCompleted,
		map[string]any{
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: admin,
		})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to complete booking after escrow resolution")
	}
}

func (s *serviceImpl) RefundFull(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.RefundFull")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.gate(ctx)
	if err != nil {
		return err
	}

	if err = s.escrow.RefundToPayer(ctx, bookingID, nil); err != nil {
		return err
	}

	log.Info().Str("admin", admin).Str("booking_id", bookingID).Msg("admin refunded escrow in full")

	return nil
}

func (s *serviceImpl) CancelBooking(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.CancelBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.gate(ctx)
	if err != nil {
		return err
	}

	if err = s.booking.Cancel(ctx, bookingID); err != nil {
		return err
	}

	log.Info().Str("admin", admin).Str("booking_id", bookingID).Msg("admin cancelled booking")

	return nil
}

// Suspend parks a pending or confirmed booking under review so no automatic
// release can touch it until an operator decides.
func (s *serviceImpl) Suspend(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Suspend")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.gate(ctx)
	if err != nil {
		return err
	}

	ok, err := s.bookings.TransitionStatus(ctx, bookingID,
		[]string{bookingModel.StatusPending, bookingModel.StatusConfirmed},
		bookingModel.StatusUnderReview,
		map[string]any{
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: admin,
		})
	if err != nil {
		return fmt.Errorf("failed to suspend booking: %w", err)
	}

	if !ok {
		return failure.Conflict("booking cannot be suspended from its current status") //nolint:wrapcheck
	}

	log.Info().Str("admin", admin).Str("booking_id", bookingID).Msg("admin suspended booking")

	return nil
}

// Unsuspend returns a suspended booking to confirmed. The session-time gate on
// Complete applies again, so a booking whose session never happened cannot
// drift into the auto-release path.
func (s *serviceImpl) Unsuspend(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Unsuspend")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.gate(ctx)
	if err != nil {
		return err
	}

	ok, err := s.bookings.TransitionStatus(ctx, bookingID,
		[]string{bookingModel.StatusUnderReview},
		bookingModel.StatusConfirmed,
		map[string]any{
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: admin,
		})
	if err != nil {
		return fmt.Errorf("failed to unsuspend booking: %w", err)
	}

	if !ok {
		return failure.Conflict("booking is not under review") //nolint:wrapcheck
	}

	log.Info().Str("admin", admin).Str("booking_id", bookingID).Msg("admin unsuspended booking")

	return nil
}

func (s *serviceImpl) AddAdmin(ctx context.Context, req dto.AddAdminRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.AddAdmin")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.gate(ctx)
	if err != nil {
		return err
	}

	entry := model.Admin{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Metadata: gModel.NewMetadata(timezone.Now(), admin),
	}

	if err = s.repo.Insert(ctx, entry); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("email is already enrolled") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to enroll admin")

		return fmt.Errorf("failed to enroll admin: %w", err)
	}

	log.Info().Str("admin", admin).Str("email", req.Email).Msg("admin enrolled")

	return nil
}

func (s *serviceImpl) RemoveAdmin(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.RemoveAdmin")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.gate(ctx)
	if err != nil {
		return err
	}

	entry, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to load admin entry")

		return fmt.Errorf("failed to load admin entry: %w", err)
	}

	if entry.ID == constant.Empty {
		return failure.NotFound("admin") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to remove admin")

		return fmt.Errorf("failed to remove admin: %w", err)
	}

	log.Info().Str("admin", admin).Str("email", entry.Email).Msg("admin removed")

	return nil
}

func (s *serviceImpl) GetAdmins(ctx context.Context, params gDto.QueryParams) (res dto.GetAdminsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.GetAdmins")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.gate(ctx); err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count admins")

		return res, fmt.Errorf("failed to count admins: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list admins")

		return res, fmt.Errorf("failed to list admins: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

// Revenue reports the platform fees accumulated from released escrows.
func (s *serviceImpl) Revenue(ctx context.Context) (res dto.RevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Revenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.gate(ctx); err != nil {
		return res, err
	}

	total, err := s.bookings.SumReleasedFees(ctx)
	if err != nil {
		return res, err
	}

	res.TotalPlatformFees = total
	res.Currency = s.cfg.Payments.Currency

	return res, nil
}

func (s *serviceImpl) GetFlags(ctx context.Context, params gDto.QueryParams) (res bookingDto.GetFlagsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.GetFlags")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.gate(ctx); err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldFlagResolved, Value: false, Operator: gDto.FilterOperatorEq, Table: bookingModel.FlagTableName},
		},
	}

	total, err := s.bookings.CountFlags(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count booking flags")

		return res, fmt.Errorf("failed to count booking flags: %w", err)
	}

	models, err := s.bookings.GetAllFlags(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list booking flags")

		return res, fmt.Errorf("failed to list booking flags: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) ResolveFlag(ctx context.Context, flagID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.ResolveFlag")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.gate(ctx)
	if err != nil {
		return err
	}

	mod := map[string]any{
		bookingModel.FieldFlagResolved: true,
		constant.FieldModifiedAt:       timezone.Now(),
		constant.FieldModifiedBy:       admin,
	}

	if err = s.bookings.UpdateFlags(ctx, mod, shared.FilterByID(flagID, bookingModel.FieldID, bookingModel.FlagTableName)); err != nil {
		log.Error().Err(err).Msg("failed to resolve booking flag")

		return fmt.Errorf("failed to resolve booking flag: %w", err)
	}

	return nil
}
