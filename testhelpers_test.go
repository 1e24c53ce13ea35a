//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/spotlog/service-planner/internal/application"
	"github.com/spotlog/service-planner/internal/client"
	"github.com/spotlog/service-planner/internal/domain/place"
	plannerEvents "github.com/spotlog/service-planner/internal/events"
	"github.com/spotlog/service-planner/internal/platform/database"
	"github.com/spotlog/service-planner/internal/platform/kafka"
	"github.com/spotlog/service-planner/internal/proto/events"
	"github.com/spotlog/service-planner/internal/repository"
)

const testStoreKey = "favoritePlaces"

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// plannerStack holds wired-up planner service components.
type plannerStack struct {
	Service         *application.PlannerService
	Store           *repository.GormPlaceListStore
	Consumer        *plannerEvents.PlaceEventConsumer
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers, applies the
// migrations and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()
	logger, _ := zap.NewDevelopment()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_planner",
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

	dbConfig := database.PostgresConfig{
		Host:     pgHost,
		Port:     pgPort.Port(),
		User:     "test",
		Password: "test",
		DBName:   "test_planner",
		SSLMode:  "disable",
	}

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = database.Connect(dbConfig, logger)
		return err == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, database.RunMigrations(dbConfig.DatabaseURL(), "migrations", logger))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	// Pre-create required topics.
	createTopics(t, kafkaBrokers, events.TopicPlannerEvents, events.TopicPlaceEvents)

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

// newRemoteServer serves the place and route endpoints the clients call.
func newRemoteServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/places/save_place", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":{"place_name":"Namsan Tower","location":{"longitude":126.988,"latitude":37.551},"address":"Yongsan-gu","place_id":%q}}`,
			r.URL.Query().Get("place_id"))
	})
	mux.HandleFunc("/places/get_saved_places", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"places":{"1":{"id":"b","name":"Insadong","lng":126.98,"lat":37.574},"0":{"id":"a","name":"Gyeongbokgung","x":126.97,"y":37.57}}}`)
	})
	mux.HandleFunc("/routes", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("transport") == "car" {
			fmt.Fprint(w, `{"car_routes":[{"car_duration":"8분","distance":"2.9km","taxi_fare":"6,100원"}]}`)
			return
		}
		fmt.Fprint(w, `{"data":{"walk_time":"21분","walk_distance":"1.4km","walk_step":"2,100걸음"}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// setupPlannerStack wires up the full planner service stack.
func setupPlannerStack(t *testing.T, db *gorm.DB, brokers []string) *plannerStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	remote := newRemoteServer(t)
	session := &http.Client{Timeout: 5 * time.Second}

	store := repository.NewGormPlaceListStore(db, fmt.Sprintf("%s-%s", testStoreKey, uuid.New().String()[:8]))
	producer := kafka.NewProducer(brokers, logger)
	plannerSvc := application.NewPlannerService(
		store,
		client.NewPlaceClient(remote.URL, session, logger),
		client.NewRouteClient(remote.URL, session, logger),
		producer,
		logger,
	)
	plannerSvc.Load(context.Background())

	groupID := fmt.Sprintf("test-planner-%s", uuid.New().String()[:8])
	consumer := plannerEvents.NewPlaceEventConsumer(brokers, groupID, plannerSvc, logger)

	return &plannerStack{
		Service:         plannerSvc,
		Store:           store,
		Consumer:        consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForStoredPlace polls the kv_entries row until a place with key appears.
func waitForStoredPlace(t *testing.T, store *repository.GormPlaceListStore, key string, timeout time.Duration) []place.Place {
	t.Helper()
	var result []place.Place
	require.Eventually(t, func() bool {
		places, err := store.Load(context.Background())
		if err != nil {
			return false
		}
		if place.IndexOf(places, key) >= 0 {
			result = places
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "place %s was not persisted", key)
	return result
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
