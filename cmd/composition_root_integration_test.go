package cmd_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lavka/cmd"
	httpin "lavka/internal/adapters/in/http"
	"lavka/internal/adapters/out/postgres"
	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CompositionRootIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
}

func (suite *CompositionRootIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres.Migrate(db))
}

func (suite *CompositionRootIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers, orders").Error)
}

func (suite *CompositionRootIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CompositionRootIntegrationTestSuite) newRouter() *echo.Echo {
	router, _ := suite.newRouterWithMetrics()
	return router
}

func (suite *CompositionRootIntegrationTestSuite) newRouterWithMetrics() (*echo.Echo, *metrics.Collectors) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry := prometheus.NewRegistry()
	collectors, err := metrics.New(registry)
	suite.Require().NoError(err)

	root, err := cmd.NewCompositionRoot(ctx, cmd.Config{
		FootCapacity: 2,
		BikeCapacity: 4,
		AutoCapacity: 7,
	}, suite.db, collectors, logger)
	suite.Require().NoError(err)

	router, err := httpin.NewRouter(root.CreateHTTPServer(), httpin.RouterConfig{
		Logger:   logger,
		Metrics:  collectors,
		Gatherer: registry,
	})
	suite.Require().NoError(err)

	return router, collectors
}

func (suite *CompositionRootIntegrationTestSuite) do(router *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func (suite *CompositionRootIntegrationTestSuite) TestDeliveryDay() {
	ctx := context.Background()

	// A courier stored before startup: numbering must continue after it.
	hours, err := kernel.ParseTimeWindows([]string{"09:00-18:00"})
	suite.Require().NoError(err)
	seeded, err := courier.NewCourier(5, courier.Foot, []int{1}, hours)
	suite.Require().NoError(err)
	suite.Require().NoError(postgres.NewGormUnitOfWorkFactory(suite.db).Create().CourierRepository().Add(ctx, seeded))

	router := suite.newRouter()

	rec := suite.do(router, http.MethodPost, "/couriers",
		`{"couriers":[{"courier_type":"BIKE","regions":[2],"working_hours":["10:00-20:00"]}]}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.JSONEq(`{"couriers":[
		{"courier_id":6,"courier_type":"BIKE","regions":[2],"working_hours":["10:00-20:00"]}
	]}`, rec.Body.String())

	rec = suite.do(router, http.MethodPost, "/orders", `{"orders":[
		{"weight":1,"regions":1,"delivery_hours":["10:00-12:00"],"cost":100},
		{"weight":2,"regions":2,"delivery_hours":["11:00-13:00"],"cost":200},
		{"weight":3,"regions":9,"delivery_hours":["11:00-13:00"],"cost":300}
	]}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = suite.do(router, http.MethodPost, "/orders/assign?date=2023-05-01", "")
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	suite.JSONEq(`{"date":"2023-05-01","couriers":[
		{"courier_id":6,"order_ids":[2]},
		{"courier_id":5,"order_ids":[1]}
	],"unassigned":[3]}`, rec.Body.String())

	rec = suite.do(router, http.MethodGet, "/couriers/assignments?date=2023-05-01", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.JSONEq(`{"date":"2023-05-01","couriers":[
		{"courier_id":5,"orders":[{"order_id":1,"weight":1,"regions":1,"delivery_hours":["10:00-12:00"],"cost":100}]},
		{"courier_id":6,"orders":[{"order_id":2,"weight":2,"regions":2,"delivery_hours":["11:00-13:00"],"cost":200}]}
	]}`, rec.Body.String())

	rec = suite.do(router, http.MethodPost, "/orders/complete",
		`{"complete_info":[{"courier_id":5,"order_id":1,"complete_time":"2023-05-01T11:00:00Z"}]}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = suite.do(router, http.MethodPost, "/orders/complete",
		`{"complete_info":[{"courier_id":5,"order_id":1,"complete_time":"2023-05-01T11:05:00Z"}]}`)
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(router, http.MethodGet, "/couriers/meta-info/5?startDate=2023-05-01&endDate=2023-05-02", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.JSONEq(`{"courier_id":5,"courier_type":"FOOT","regions":[1],"working_hours":["09:00-18:00"],
		"completed_orders":[1],"earnings":200,"rating":0}`, rec.Body.String())
}

func (suite *CompositionRootIntegrationTestSuite) TestRestartKeepsNumbering() {
	router := suite.newRouter()
	rec := suite.do(router, http.MethodPost, "/orders",
		`{"orders":[{"weight":1,"regions":1,"delivery_hours":["10:00-12:00"],"cost":100}]}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	restarted := suite.newRouter()
	rec = suite.do(restarted, http.MethodPost, "/orders",
		`{"orders":[{"weight":1,"regions":1,"delivery_hours":["10:00-12:00"],"cost":100}]}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.JSONEq(`[{"order_id":2,"weight":1,"regions":1,"delivery_hours":["10:00-12:00"],"cost":100}]`, rec.Body.String())
}

func (suite *CompositionRootIntegrationTestSuite) TestCommittedWritesAreCounted() {
	router, collectors := suite.newRouterWithMetrics()

	rec := suite.do(router, http.MethodPost, "/couriers", `{"couriers":[
		{"courier_type":"FOOT","regions":[1],"working_hours":["09:00-18:00"]},
		{"courier_type":"AUTO","regions":[2],"working_hours":["09:00-18:00"]}
	]}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = suite.do(router, http.MethodPost, "/orders",
		`{"orders":[{"weight":1,"regions":1,"delivery_hours":["10:00-12:00"],"cost":100}]}`)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	suite.InDelta(2, testutil.ToFloat64(collectors.AggregatesWrittenTotal.WithLabelValues("courier")), 0)
	suite.InDelta(1, testutil.ToFloat64(collectors.AggregatesWrittenTotal.WithLabelValues("order")), 0)
}

func TestCompositionRootIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CompositionRootIntegrationTestSuite))
}
