package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "roomly/internal/bookings/errors"
	"roomly/internal/bookings/repository"
	"roomly/internal/bookings/validator"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/kafka"
	"roomly/pkg/model"
	"roomly/pkg/sanitizer"
	"roomly/pkg/timeslot"
)

const (
	MsgSlotLockHeld = "This time slot is currently being booked by another request. Please try again."
)

// UserProvisioner creates a minimal user record on first booking. Implemented
// by the users repository; must be idempotent under concurrent calls.
type UserProvisioner interface {
	EnsureExists(ctx context.Context, id string) error
}

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	AvailableSlots(ctx context.Context, roomID, date string) ([]model.Slot, error)
	List(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	users     UserProvisioner
	validator *validator.BookingValidator
	producer  *kafka.Producer
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	users UserProvisioner,
	bookingValidator *validator.BookingValidator,
	producer *kafka.Producer,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		users:     users,
		validator: bookingValidator,
		producer:  producer,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	req.Purpose = sanitizer.NormalizePurpose(req.Purpose)
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)
		return nil, err
	}

	loc := s.cfg.Timezone
	day, err := timeslot.ParseDay(req.Date, loc)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid date: %s", req.Date))
	}

	y, m, d := day.Date()
	start := time.Date(y, m, d, *req.StartHour, *req.StartMinute, 0, 0, loc)
	end := time.Date(y, m, d, *req.EndHour, *req.EndMinute, 59, 0, loc)

	// The user record exists from the first booking attempt on, whether or
	// not this request is admitted.
	if err := s.users.EnsureExists(ctx, req.UserID); err != nil {
		s.cfg.Log.Error("Failed to provision user", "user_id", req.UserID, "error", err)
		return nil, apperrors.Internal("Failed to provision user", err)
	}

	// Advisory lock on the slot coordinates; holds off a concurrent request
	// for the same room and start time until our check-then-create commits.
	lockID, err := s.acquireSlotLock(ctx, req.RoomID, start)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	booking := &model.Booking{
		RoomID:    req.RoomID,
		UserID:    req.UserID,
		StartTime: start,
		EndTime:   end,
		Purpose:   req.Purpose,
		Status:    model.StatusConfirmed,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		opStart, opEnd := timeslot.OperatingWindow(day, loc)
		userBookings, err := s.repo.FindByUser(sessCtx, req.UserID, opStart, opEnd)
		if err != nil {
			return apperrors.Internal("Failed to load user bookings", err)
		}

		dayStart, dayEnd := timeslot.DayWindow(day, loc)
		roomBookings, err := s.repo.FindByRoom(sessCtx, req.RoomID, dayStart, dayEnd)
		if err != nil {
			return apperrors.Internal("Failed to load room bookings", err)
		}

		if err := s.validator.Admit(validator.AdmissionRequest{
			Day:              day,
			Start:            start,
			End:              end,
			Now:              s.now(),
			ExcludeBookingID: req.ExcludeBookingID,
			UserBookings:     userBookings,
			RoomBookings:     roomBookings,
		}); err != nil {
			return err
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"user_id", booking.UserID,
		"start_time", booking.StartTime,
	)
	s.publishCreated(ctx, booking)

	return booking, nil
}

func (s *bookingService) AvailableSlots(ctx context.Context, roomID, date string) ([]model.Slot, error) {
	if roomID == "" || date == "" {
		return nil, apperrors.InvalidInput("Missing required parameters: room_id and date")
	}

	loc := s.cfg.Timezone
	day, err := timeslot.ParseDay(date, loc)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid date: %s", date))
	}

	if !timeslot.CutoffReached(day, s.now(), loc) {
		return nil, apperrors.Validation(validator.MsgCutoff, nil)
	}

	dayStart, dayEnd := timeslot.DayWindow(day, loc)
	existing, err := s.repo.FindByRoom(ctx, roomID, dayStart, dayEnd)
	if err != nil {
		s.cfg.Log.Error("Failed to load room bookings", "room_id", roomID, "error", err)
		return nil, apperrors.Internal("Failed to load availability", err)
	}

	return timeslot.Enumerate(day, existing, loc), nil
}

func (s *bookingService) List(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	query := repository.ListQuery{
		UserID: filter.UserID,
		RoomID: filter.RoomID,
	}

	if filter.Date != "" {
		day, err := timeslot.ParseDay(filter.Date, s.cfg.Timezone)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid date: %s", filter.Date))
		}
		next := day.AddDate(0, 0, 1)
		query.Start = &day
		query.End = &next
	}

	bookings, err := s.repo.List(ctx, query)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

// --- Helpers ---

func (s *bookingService) acquireSlotLock(ctx context.Context, roomID string, start time.Time) (string, error) {
	lockID := fmt.Sprintf("slot_%s_%d", roomID, start.Unix())

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: s.now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict(MsgSlotLockHeld)
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

// publishCreated emits a booking.created event. Best effort: the booking is
// committed either way, so a broker outage only costs the event.
func (s *bookingService) publishCreated(ctx context.Context, booking *model.Booking) {
	if s.producer == nil {
		return
	}

	builder, err := kafka.NewMessage().
		WithKey(booking.RoomID).
		WithValue(booking)
	if err != nil {
		s.cfg.Log.Error("Failed to encode booking event", "id", booking.ID, "error", err)
		return
	}

	msg := builder.
		WithEventType(kafka.EventBookingCreated).
		WithSource("roomly").
		Build()

	if err := s.producer.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish booking event", "id", booking.ID, "error", err)
	}
}
