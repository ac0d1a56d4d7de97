package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/memory"
	"storefront/internal/adapters/out/resilience"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

var secret = []byte("test-secret")

type orderUoWFactory struct {
	factory *memory.UnitOfWorkFactory
}

func (f orderUoWFactory) Create() commands.OrderUoW {
	return f.factory.Create()
}

// switchableCatalog fails every lookup with Unavailable while down is set.
type switchableCatalog struct {
	next *memory.Catalog
	down atomic.Bool
}

func (c *switchableCatalog) Resolve(ctx context.Context, id catalog.ProductID) (catalog.Item, error) {
	if c.down.Load() {
		return catalog.Item{}, errs.NewUnavailableError("catalog")
	}
	return c.next.Resolve(ctx, id)
}

type ServerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	server  *httpadapter.Server
	metrics *httpadapter.Metrics
	catalog *switchableCatalog
	buyer   kernel.UUID
	other   kernel.UUID
	admin   kernel.UUID
}

func (s *ServerTestSuite) SetupTest() {
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	uows := orderUoWFactory{factory: factory}

	mustItem := func(id catalog.ProductID, price string) catalog.Item {
		item, err := catalog.NewItem(id, kernel.MustMoney(price), "Orchid "+id.String(), "https://img/"+id.String(), "Orchids")
		s.Require().NoError(err)
		return item
	}
	s.catalog = &switchableCatalog{next: memory.NewCatalog(mustItem(1, "10"), mustItem(2, "15"), mustItem(3, "20"))}
	products := s.catalog

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.metrics = httpadapter.NewMetrics(prometheus.NewRegistry())
	reader := factory.Create().OrderRepository()

	server := httpadapter.NewServer(
		commands.NewCreateOrderCommandHandler(uows, products),
		commands.NewEditOrderCommandHandler(uows, products),
		commands.NewPayOrderCommandHandler(uows, products),
		commands.NewCancelOrderCommandHandler(uows),
		queries.NewGetOrderQueryHandler(reader, products),
		queries.NewListOrdersQueryHandler(reader, products),
		s.metrics,
		logger,
	)

	s.echo = echo.New()
	s.server = server
	s.Require().NoError(server.Register(s.echo, httpadapter.Authenticate(secret)))

	s.buyer = kernel.NewUUID()
	s.other = kernel.NewUUID()
	s.admin = kernel.NewUUID()
}

func (s *ServerTestSuite) token(subject kernel.UUID, role string) string {
	claims := jwt.MapClaims{
		"sub": subject.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if role != "" {
		claims["role"] = role
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	s.Require().NoError(err)
	return signed
}

func (s *ServerTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decode(rec *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func (s *ServerTestSuite) createOrder(owner kernel.UUID, lines ...httpadapter.LineRequest) httpadapter.Order {
	rec := s.do(http.MethodPost, "/api/v1/orders", s.token(owner, ""), httpadapter.OrderRequest{Lines: lines})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created httpadapter.Order
	s.decode(rec, &created)
	return created
}

func (s *ServerTestSuite) TestLifecycle() {
	created := s.createOrder(s.buyer,
		httpadapter.LineRequest{ProductID: 1, Quantity: 2},
		httpadapter.LineRequest{ProductID: 2, Quantity: 1},
	)
	s.Equal("35.00", created.Total)
	s.Equal("Pending", created.Status)
	s.Equal(s.buyer.String(), created.AccountID)
	s.Len(created.Lines, 2)
	s.Equal("Orchids", created.Lines[0].Category)

	path := "/api/v1/orders/" + created.ID
	rec := s.do(http.MethodPut, path, s.token(s.buyer, ""), httpadapter.OrderRequest{
		Lines: []httpadapter.LineRequest{{ProductID: 3, Quantity: 3}},
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var edited httpadapter.Order
	s.decode(rec, &edited)
	s.Equal("60.00", edited.Total)
	s.Len(edited.Lines, 1)

	rec = s.do(http.MethodPost, path+"/pay", s.token(s.buyer, ""), nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var paid httpadapter.Order
	s.decode(rec, &paid)
	s.Equal("Completed", paid.Status)

	rec = s.do(http.MethodPut, path, s.token(s.buyer, ""), httpadapter.OrderRequest{
		Lines: []httpadapter.LineRequest{{ProductID: 1, Quantity: 1}},
	})
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, path+"/pay", s.token(s.buyer, ""), nil)
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodDelete, path, s.token(s.buyer, ""), nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, path, s.token(s.buyer, ""), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var cancelled httpadapter.Order
	s.decode(rec, &cancelled)
	s.Equal("Cancelled", cancelled.Status)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.Transitions.WithLabelValues("create")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Transitions.WithLabelValues("pay")))
}

func (s *ServerTestSuite) TestPayByAnotherAccountIsForbidden() {
	created := s.createOrder(s.buyer, httpadapter.LineRequest{ProductID: 1, Quantity: 1})

	rec := s.do(http.MethodPost, "/api/v1/orders/"+created.ID+"/pay", s.token(s.other, ""), nil)

	s.Equal(http.StatusForbidden, rec.Code)
	var body httpadapter.Error
	s.decode(rec, &body)
	s.Equal(http.StatusForbidden, body.Code)
}

func (s *ServerTestSuite) TestValidationErrors() {
	token := s.token(s.buyer, "")

	rec := s.do(http.MethodPost, "/api/v1/orders", token, httpadapter.OrderRequest{})
	s.Equal(http.StatusBadRequest, rec.Code, "empty line list")

	rec = s.do(http.MethodPost, "/api/v1/orders", token, httpadapter.OrderRequest{
		Lines: []httpadapter.LineRequest{{ProductID: 1, Quantity: 0}},
	})
	s.Equal(http.StatusBadRequest, rec.Code, "zero quantity")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader("{broken"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	raw := httptest.NewRecorder()
	s.echo.ServeHTTP(raw, req)
	s.Equal(http.StatusBadRequest, raw.Code, "malformed body")

	rec = s.do(http.MethodGet, "/api/v1/orders/not-a-uuid", token, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestUnknownProductAndOrder() {
	token := s.token(s.buyer, "")

	rec := s.do(http.MethodPost, "/api/v1/orders", token, httpadapter.OrderRequest{
		Lines: []httpadapter.LineRequest{{ProductID: 404, Quantity: 1}},
	})
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/orders/mine", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var mine []httpadapter.Order
	s.decode(rec, &mine)
	s.Empty(mine)

	rec = s.do(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), token, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerTestSuite) TestAuthentication() {
	rec := s.do(http.MethodGet, "/api/v1/orders/mine", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/orders/mine", "not.a.jwt", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": s.buyer.String()}).
		SignedString([]byte("other-secret"))
	s.Require().NoError(err)
	rec = s.do(http.MethodGet, "/api/v1/orders/mine", forged, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "Admin"}).SignedString(secret)
	s.Require().NoError(err)
	rec = s.do(http.MethodGet, "/api/v1/orders/mine", noSubject, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) TestListingAndReadAccess() {
	mine := s.createOrder(s.buyer, httpadapter.LineRequest{ProductID: 1, Quantity: 1})
	s.createOrder(s.other, httpadapter.LineRequest{ProductID: 2, Quantity: 1})

	rec := s.do(http.MethodGet, "/api/v1/orders/mine", s.token(s.buyer, ""), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var listed []httpadapter.Order
	s.decode(rec, &listed)
	s.Require().Len(listed, 1)
	s.Equal(mine.ID, listed[0].ID)

	rec = s.do(http.MethodGet, "/api/v1/orders", s.token(s.buyer, ""), nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/orders", s.token(s.admin, httpadapter.RoleAdmin), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var all []httpadapter.Order
	s.decode(rec, &all)
	s.Len(all, 2)

	rec = s.do(http.MethodGet, "/api/v1/orders/"+mine.ID, s.token(s.other, ""), nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/orders/"+mine.ID, s.token(s.admin, httpadapter.RoleAdmin), nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) TestHealthAndMetrics() {
	rec := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())

	rec = s.do(http.MethodGet, "/metrics", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `storefront_http_requests_total{handler="/health",status="200"} 1`)
}

func (s *ServerTestSuite) TestStrangerReadIsForbiddenWhileCatalogIsDown() {
	created := s.createOrder(s.buyer, httpadapter.LineRequest{ProductID: 1, Quantity: 1})
	s.catalog.down.Store(true)
	path := "/api/v1/orders/" + created.ID

	rec := s.do(http.MethodGet, path, s.token(s.other, ""), nil)
	s.Equal(http.StatusForbidden, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, path, s.token(s.buyer, ""), nil)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal("1", rec.Header().Get("Retry-After"))
}

func (s *ServerTestSuite) TestPayWithCatalogDownCanBeRetried() {
	created := s.createOrder(s.buyer, httpadapter.LineRequest{ProductID: 1, Quantity: 1})
	path := "/api/v1/orders/" + created.ID

	s.catalog.down.Store(true)
	rec := s.do(http.MethodPost, path+"/pay", s.token(s.buyer, ""), nil)
	s.Require().Equal(http.StatusServiceUnavailable, rec.Code)

	s.catalog.down.Store(false)
	rec = s.do(http.MethodPost, path+"/pay", s.token(s.buyer, ""), nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var paid httpadapter.Order
	s.decode(rec, &paid)
	s.Equal("Completed", paid.Status)
}

func (s *ServerTestSuite) TestRequestsAreValidatedAgainstOpenAPI() {
	rec := s.do(http.MethodPost, "/api/v1/orders", s.token(s.buyer, ""), map[string]any{
		"lines": []map[string]any{{"productId": 1, "quantity": 0}},
	})
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	var body httpadapter.Error
	s.decode(rec, &body)
	s.Contains(body.Message, "quantity")

	rec = s.do(http.MethodPut, "/api/v1/orders/"+kernel.NewUUID().String(), s.token(s.buyer, ""), map[string]any{
		"lines": "not a list",
	})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/orders", "", map[string]any{"lines": []any{}})
	s.Equal(http.StatusUnauthorized, rec.Code, "auth runs before validation")
}

func (s *ServerTestSuite) TestSwaggerServesOpenAPIDocument() {
	rec := s.do(http.MethodGet, "/swagger/doc.json", "", nil)

	s.Require().Equal(http.StatusOK, rec.Code)
	var doc map[string]any
	s.decode(rec, &doc)
	s.Equal("3.0.3", doc["openapi"])
	paths, ok := doc["paths"].(map[string]any)
	s.Require().True(ok)
	s.Contains(paths, "/api/v1/orders/{id}/pay")
}

func (s *ServerTestSuite) TestHealthReportsOpenBreaker() {
	breaker := resilience.NewGuardedCatalog(s.catalog, resilience.Config{
		CallTimeout:    time.Second,
		FailuresToTrip: 1,
		OpenFor:        time.Minute,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.server.AddHealthCheck("catalog", breaker.Check)

	rec := s.do(http.MethodGet, "/health", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	s.catalog.down.Store(true)
	_, err := breaker.Resolve(context.Background(), 1)
	s.Require().ErrorIs(err, errs.ErrUnavailable)

	rec = s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Contains(rec.Body.String(), "catalog")
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
