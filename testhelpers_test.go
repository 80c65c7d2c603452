//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/morada-homes/service-reservation/internal/adapter"
	"github.com/morada-homes/service-reservation/internal/application"
	"github.com/morada-homes/service-reservation/internal/events"
	"github.com/morada-homes/service-reservation/internal/kafka"
	"github.com/morada-homes/service-reservation/internal/repository"
	"github.com/morada-homes/service-reservation/internal/domain/reservation"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// reservationStack holds wired-up service components.
type reservationStack struct {
	Reservations    *application.ReservationService
	Payments        *application.PaymentService
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_reservation",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_reservation sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.ReservationModel{},
		&repository.PaymentModel{},
		&repository.PropertyModel{},
		&repository.UserModel{},
	))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, events.TopicReservationEvents, events.TopicPaymentEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupReservationStack wires up the full service stack. The payment adapters
// read from the given provider data files.
func setupReservationStack(t *testing.T, db *gorm.DB, brokers []string, stripeFile, paypalFile string) *reservationStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	reservationRepo := repository.NewReservationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	userRepo := repository.NewUserRepository(db)

	producer := kafka.NewProducer(brokers, logger)

	processors := map[string]adapter.PaymentProcessor{
		"stripe": adapter.NewStripeAdapter(adapter.NewFileStripeSource(stripeFile), logger),
		"paypal": adapter.NewPayPalAdapter(adapter.NewFilePayPalSource(paypalFile), logger),
	}

	registry := reservation.NewStateRegistry()
	reservationSvc := application.NewReservationService(reservationRepo, propertyRepo, userRepo, registry, producer, logger)
	paymentSvc := application.NewPaymentService(reservationRepo, paymentRepo, processors, producer, logger)

	return &reservationStack{
		Reservations:    reservationSvc,
		Payments:        paymentSvc,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// seedProperty inserts a property listing for testing.
func seedProperty(t *testing.T, db *gorm.DB, nightlyRate float64, maxGuests int) uuid.UUID {
	t.Helper()
	propertyID := uuid.New()
	model := repository.PropertyModel{
		ID:          propertyID,
		OwnerID:     uuid.New(),
		Title:       "Casa de Praia",
		Description: "Integration test listing",
		Address:     "Rua das Flores 100",
		NightlyRate: nightlyRate,
		MaxGuests:   maxGuests,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed property")
	return propertyID
}

// seedGuest inserts a guest user for testing.
func seedGuest(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	guestID := uuid.New()
	model := repository.UserModel{
		ID:           guestID,
		Name:         "Guest " + guestID.String()[:8],
		Email:        fmt.Sprintf("guest-%s@example.com", guestID.String()[:8]),
		Role:         "guest",
		PasswordHash: "$2a$10$integrationtesthashonlyxxxxxxxxxxxxxxxxxxxxxxxxxxxxx",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed guest")
	return guestID
}

// seedReservation inserts a reservation in the given status for testing.
func seedReservation(t *testing.T, db *gorm.DB, status string, totalAmount float64) uuid.UUID {
	t.Helper()
	reservationID := uuid.New()
	now := time.Now().UTC()
	model := repository.ReservationModel{
		ID:          reservationID,
		PropertyID:  uuid.New(),
		GuestID:     uuid.New(),
		CheckIn:     now.Add(24 * time.Hour),
		CheckOut:    now.Add(96 * time.Hour),
		GuestCount:  2,
		TotalAmount: totalAmount,
		Status:      status,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed reservation")
	return reservationID
}

// writeStripeDataFile writes a Stripe-style JSON response dump and returns its path.
func writeStripeDataFile(t *testing.T, charges string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stripe.json")
	payload := fmt.Sprintf(`{"transactions": [%s]}`, charges)
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))
	return path
}

// writePayPalDataFile writes a PayPal-style XML response dump and returns its path.
func writePayPalDataFile(t *testing.T, payments string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paypal.xml")
	payload := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<paypal_response><payments>%s</payments></paypal_response>`, payments)
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))
	return path
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
