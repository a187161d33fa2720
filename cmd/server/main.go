package main

import (
	"context"
	"time"

	bookinghandler "roomly/internal/bookings/handler"
	bookingrepo "roomly/internal/bookings/repository"
	bookingservice "roomly/internal/bookings/service"
	"roomly/internal/bookings/validator"
	roomhandler "roomly/internal/rooms/handler"
	roomrepo "roomly/internal/rooms/repository"
	roomservice "roomly/internal/rooms/service"
	userhandler "roomly/internal/users/handler"
	userrepo "roomly/internal/users/repository"
	userservice "roomly/internal/users/service"
	"roomly/pkg/app"
	"roomly/pkg/config"
	"roomly/pkg/kafka"
)

const ServiceName = "server"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	ensureIndexes(cfg)

	producer := initProducer(cfg)

	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	lockRepo := bookingrepo.NewBookingLockRepository(cfg)
	userRepo := userrepo.NewMongoUserRepository(cfg)
	roomRepo := roomrepo.NewMongoRoomRepository(cfg)

	bookingValidator := validator.NewBookingValidator(cfg.Log, cfg.Timezone)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		lockRepo,
		userRepo,
		bookingValidator,
		producer,
		cfg,
	)
	userService := userservice.NewUserService(userRepo, cfg)
	roomService := roomservice.NewRoomService(roomRepo, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		roomhandler.NewRoomHandler(roomService, cfg.Log),
		userhandler.NewUserHandler(userService, cfg.Log),
	)
	if producer != nil {
		serverApp.OnShutdown(func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		})
	}
	serverApp.Run()
}

func ensureIndexes(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := bookingrepo.EnsureIndexes(ctx, cfg); err != nil {
		cfg.Log.Fatal("Failed to ensure booking indexes", "error", err)
	}
	if err := bookingrepo.EnsureLockIndexes(ctx, cfg); err != nil {
		cfg.Log.Fatal("Failed to ensure booking lock indexes", "error", err)
	}
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.BookingEventTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}
	return producer
}
