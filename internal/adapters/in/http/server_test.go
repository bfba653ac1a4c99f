package http_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"forwarding/cmd"
	httpin "forwarding/internal/adapters/in/http"
	eventkafka "forwarding/internal/adapters/out/kafka"
	"forwarding/internal/adapters/out/memory"
	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/core/ports"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type caller struct {
	id   string
	role string
}

type response struct {
	status int
	body   map[string]any
	raw    []byte
}

func (r response) data() map[string]any {
	d, _ := r.body["data"].(map[string]any)
	return d
}

func (r response) list() []any {
	l, _ := r.body["data"].([]any)
	return l
}

func (r response) errorKind() string {
	e, _ := r.body["error"].(map[string]any)
	kind, _ := e["kind"].(string)
	return kind
}

type ServerTestSuite struct {
	suite.Suite
	spec *httpin.APISpec
	e    *echo.Echo

	customer caller
	other    caller
	admin    caller
	super    caller
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupSuite() {
	spec, err := httpin.LoadAPISpec(s.T().Context())
	s.Require().NoError(err)
	s.spec = spec
}

func (s *ServerTestSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	store := memory.NewStore()
	cfg := cmd.Config{Location: time.UTC, BranchDeletePolicy: branch.RestrictDelete}
	root := cmd.NewCompositionRoot(cfg, store, memory.NewReportReader(store),
		eventkafka.NewLogPublisher(logger), ports.SystemClock{}, logger)

	s.e = echo.New()
	httpin.Mount(s.e, s.spec, root.CreateServer(), logger, time.Second)

	s.customer = caller{id: uuid.NewString(), role: "user"}
	s.other = caller{id: uuid.NewString(), role: "user"}
	s.admin = caller{id: uuid.NewString(), role: "admin"}
	s.super = caller{id: uuid.NewString(), role: "super"}
}

func (s *ServerTestSuite) do(method, path string, who *caller, body any) response {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if who != nil {
		req.Header.Set(httpin.HeaderUserID, who.id)
		req.Header.Set(httpin.HeaderUserRole, who.role)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	out := response{status: rec.Code, raw: rec.Body.Bytes()}
	if len(out.raw) > 0 && json.Valid(out.raw) {
		_ = json.Unmarshal(out.raw, &out.body)
	}
	return out
}

func address(country, city string) map[string]any {
	return map[string]any{
		"country":     country,
		"city":        city,
		"line":        "1 Main St",
		"postal_code": "0100",
		"recipient":   "Front desk",
	}
}

func (s *ServerTestSuite) createBranch(title, country, city string) string {
	res := s.do(http.MethodPost, "/api/v1/branches", &s.admin, map[string]any{
		"title":   title,
		"country": country,
		"address": address(country, city),
	})
	s.Require().Equal(http.StatusCreated, res.status, string(res.raw))
	return res.data()["id"].(string)
}

func (s *ServerTestSuite) createOrder(who caller, branchID string) string {
	res := s.do(http.MethodPost, "/api/v1/orders", &who, map[string]any{
		"origin":                address("US", "Wilmington"),
		"destination":           address("GE", "Tbilisi"),
		"destination_branch_id": branchID,
		"fulfillment":           "walk_in_pickup",
		"items": []map[string]any{
			{"description": "headphones", "quantity": 2, "weight_grams": 400},
		},
	})
	s.Require().Equal(http.StatusCreated, res.status, string(res.raw))
	return res.data()["id"].(string)
}

func (s *ServerTestSuite) transition(who caller, orderID, status string) response {
	return s.do(http.MethodPut, "/api/v1/orders/"+orderID+"/status", &who, map[string]any{"status": status})
}

func (s *ServerTestSuite) TestServesHealthAndAPIDescription() {
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/health", nil, nil).status)

	doc := s.do(http.MethodGet, "/openapi.json", nil, nil)
	s.Equal(http.StatusOK, doc.status)
	s.Equal("3.0.3", doc.body["openapi"])
	paths, ok := doc.body["paths"].(map[string]any)
	s.Require().True(ok)
	s.Contains(paths, "/api/v1/orders")
	s.Contains(paths, "/api/v1/reports/{kind}")

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/swagger/index.html", nil, nil).status)
}

func (s *ServerTestSuite) TestRejectsMissingOrMalformedIdentity() {
	res := s.do(http.MethodGet, "/api/v1/branches", nil, nil)
	s.Equal(http.StatusUnauthorized, res.status)
	s.Equal(httpin.KindUnauthenticated, res.errorKind())

	res = s.do(http.MethodGet, "/api/v1/branches", &caller{id: "42", role: "user"}, nil)
	s.Equal(http.StatusUnauthorized, res.status)

	res = s.do(http.MethodGet, "/api/v1/branches", &caller{id: uuid.NewString(), role: "guest"}, nil)
	s.Equal(http.StatusUnauthorized, res.status)
	s.Equal(httpin.KindUnauthenticated, res.errorKind())
}

func (s *ServerTestSuite) TestForbiddenComesBeforeValidation() {
	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodPost, "/api/v1/branches"},
		{http.MethodPost, "/api/v1/flights"},
		{http.MethodPost, "/api/v1/bags"},
		{http.MethodPost, "/api/v1/combined-shipments"},
		{http.MethodPost, "/api/v1/shelf-placements"},
		{http.MethodGet, "/api/v1/reports/summary?from=2024-03-31&to=2024-03-01"},
	} {
		res := s.do(tc.method, tc.path, &s.customer, map[string]any{"nonsense": true})
		s.Equal(http.StatusForbidden, res.status, tc.path)
		s.Equal(httpin.KindForbidden, res.errorKind(), tc.path)
	}

	res := s.do(http.MethodPost, "/api/v1/user-blocks", &s.admin, map[string]any{})
	s.Equal(http.StatusForbidden, res.status)
}

func (s *ServerTestSuite) TestBranchDirectory() {
	id := s.createBranch("Tbilisi Vake", "GE", "Tbilisi")

	res := s.do(http.MethodPut, "/api/v1/branches/"+id, &s.admin, map[string]any{
		"title":   "Tbilisi Saburtalo",
		"country": "GE",
		"address": address("GE", "Tbilisi"),
	})
	s.Equal(http.StatusOK, res.status, string(res.raw))
	s.Equal("Tbilisi Saburtalo", res.data()["title"])

	list := s.do(http.MethodGet, "/api/v1/branches", &s.customer, nil)
	s.Equal(http.StatusOK, list.status)
	s.Len(list.list(), 1)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/branches/"+id, &s.admin, nil).status)

	res = s.do(http.MethodDelete, "/api/v1/branches/"+id, &s.admin, nil)
	s.Equal(http.StatusNotFound, res.status)
	s.Equal(httpin.KindNotFound, res.errorKind())
}

func (s *ServerTestSuite) TestBranchWithLiveOrdersCannotBeDeleted() {
	id := s.createBranch("Tbilisi Vake", "GE", "Tbilisi")
	s.createOrder(s.customer, id)

	res := s.do(http.MethodDelete, "/api/v1/branches/"+id, &s.admin, nil)

	s.Equal(http.StatusConflict, res.status)
	s.Equal(httpin.KindConflict, res.errorKind())
}

func (s *ServerTestSuite) TestOrderLifecycle() {
	branchID := s.createBranch("Tbilisi Vake", "GE", "Tbilisi")
	orderID := s.createOrder(s.customer, branchID)

	own := s.do(http.MethodGet, "/api/v1/orders/"+orderID, &s.customer, nil)
	s.Equal(http.StatusOK, own.status)
	s.Equal("placed", own.data()["status"])
	s.EqualValues(800, own.data()["total_weight_grams"])
	s.Nil(own.data()["combined_shipment_id"])

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/orders/"+orderID, &s.other, nil).status)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/orders/"+orderID, &s.admin, nil).status)

	patched := s.do(http.MethodPatch, "/api/v1/orders/"+orderID, &s.customer, map[string]any{"fulfillment": "self_service"})
	s.Equal(http.StatusOK, patched.status, string(patched.raw))
	s.Equal("self_service", patched.data()["fulfillment"])

	res := s.transition(s.customer, orderID, "received_at_branch")
	s.Equal(http.StatusForbidden, res.status)

	res = s.transition(s.admin, orderID, "received_at_branch")
	s.Equal(http.StatusOK, res.status, string(res.raw))
	s.Equal("received_at_branch", res.data()["status"])

	res = s.transition(s.admin, orderID, "received_at_branch")
	s.Equal(http.StatusConflict, res.status)
	s.Equal(httpin.KindInvalidTransition, res.errorKind())

	res = s.do(http.MethodPatch, "/api/v1/orders/"+orderID, &s.customer, map[string]any{"fulfillment": "delivery"})
	s.Equal(http.StatusConflict, res.status)

	mine := s.do(http.MethodGet, "/api/v1/orders?limit=10", &s.customer, nil)
	s.Equal(http.StatusOK, mine.status)
	s.Len(mine.list(), 1)

	res = s.do(http.MethodGet, "/api/v1/orders?user_id="+s.customer.id, &s.other, nil)
	s.Equal(http.StatusForbidden, res.status)
}

func (s *ServerTestSuite) TestCreateOrderValidation() {
	branchID := s.createBranch("Tbilisi Vake", "GE", "Tbilisi")

	res := s.do(http.MethodPost, "/api/v1/orders", &s.customer, map[string]any{
		"origin":                address("US", "Wilmington"),
		"destination":           address("GE", "Tbilisi"),
		"destination_branch_id": branchID,
		"fulfillment":           "delivery",
		"items":                 []any{},
	})
	s.Equal(http.StatusBadRequest, res.status)
	s.Equal(httpin.KindValidation, res.errorKind())

	res = s.do(http.MethodPost, "/api/v1/orders", &s.customer, map[string]any{
		"origin":                address("US", "Wilmington"),
		"destination":           address("GE", "Tbilisi"),
		"destination_branch_id": uuid.NewString(),
		"fulfillment":           "delivery",
		"items":                 []map[string]any{{"description": "book", "quantity": 1, "weight_grams": 300}},
	})
	s.Equal(http.StatusBadRequest, res.status, string(res.raw))

	res = s.do(http.MethodGet, "/api/v1/orders/not-a-uuid", &s.customer, nil)
	s.Equal(http.StatusBadRequest, res.status)
}

func (s *ServerTestSuite) TestCombineAndDecombine() {
	branchID := s.createBranch("Tbilisi Vake", "GE", "Tbilisi")
	first := s.createOrder(s.customer, branchID)
	second := s.createOrder(s.customer, branchID)
	third := s.createOrder(s.other, branchID)

	combined := s.do(http.MethodPost, "/api/v1/combined-shipments", &s.admin, map[string]any{
		"order_ids": []string{first, second},
	})
	s.Require().Equal(http.StatusCreated, combined.status, string(combined.raw))
	s.Equal("placed", combined.data()["status"])
	s.Len(combined.data()["members"], 2)
	s.EqualValues(1600, combined.data()["total_weight_grams"])
	shipmentID := combined.data()["id"].(string)

	again := s.do(http.MethodPost, "/api/v1/combined-shipments", &s.admin, map[string]any{
		"order_ids": []string{second, third},
	})
	s.Equal(http.StatusUnprocessableEntity, again.status)
	s.Equal(httpin.KindIncompatibleOrders, again.errorKind())
	s.Equal([]any{second}, again.body["error"].(map[string]any)["order_ids"])

	listed := s.do(http.MethodGet, "/api/v1/combined-shipments?status=placed&branch_id="+branchID, &s.admin, nil)
	s.Equal(http.StatusOK, listed.status, string(listed.raw))
	s.Len(listed.list(), 1)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/combined-shipments/"+shipmentID, &s.admin, nil).status)

	member := s.do(http.MethodGet, "/api/v1/orders/"+first, &s.customer, nil)
	s.Nil(member.data()["combined_shipment_id"])
}

func (s *ServerTestSuite) TestWarehouseOperations() {
	usBranch := s.createBranch("Wilmington", "US", "Wilmington")
	geBranch := s.createBranch("Tbilisi Vake", "GE", "Tbilisi")
	orderID := s.createOrder(s.customer, geBranch)
	s.Require().Equal(http.StatusOK, s.transition(s.admin, orderID, "received_at_branch").status)

	bag := s.do(http.MethodPost, "/api/v1/bags", &s.admin, map[string]any{
		"label": "WIL-0001", "branch_id": usBranch, "max_weight_grams": 20000,
	})
	s.Require().Equal(http.StatusCreated, bag.status, string(bag.raw))
	bagID := bag.data()["id"].(string)

	packed := s.do(http.MethodPost, "/api/v1/bags/"+bagID+"/orders", &s.admin, map[string]any{"order_id": orderID})
	s.Require().Equal(http.StatusOK, packed.status, string(packed.raw))
	s.Equal([]any{orderID}, packed.data()["order_ids"])
	s.EqualValues(800, packed.data()["load_grams"])

	order := s.do(http.MethodGet, "/api/v1/orders/"+orderID, &s.customer, nil)
	s.Equal("bagged", order.data()["status"])

	flight := s.do(http.MethodPost, "/api/v1/flights", &s.admin, map[string]any{
		"number":              "TK32",
		"departure_date":      "2024-03-05",
		"origin_country":      "US",
		"destination_country": "GE",
		"branch_id":           usBranch,
		"air_waybills":        []string{"235-12345675"},
	})
	s.Require().Equal(http.StatusCreated, flight.status, string(flight.raw))
	s.Equal("2024-03-05", flight.data()["departure_date"])
	flightID := flight.data()["id"].(string)

	rescheduled := s.do(http.MethodPut, "/api/v1/flights/"+flightID, &s.admin, map[string]any{
		"number":              "TK32",
		"departure_date":      "2024-03-06",
		"origin_country":      "US",
		"destination_country": "GE",
		"branch_id":           usBranch,
	})
	s.Equal(http.StatusOK, rescheduled.status, string(rescheduled.raw))
	s.Equal("2024-03-06", rescheduled.data()["departure_date"])

	loaded := s.do(http.MethodPut, "/api/v1/bags/"+bagID+"/flight", &s.admin, map[string]any{"flight_id": flightID})
	s.Equal(http.StatusOK, loaded.status, string(loaded.raw))
	s.Equal(flightID, loaded.data()["flight_id"])

	s.Require().Equal(http.StatusOK, s.transition(s.admin, orderID, "in_transit").status)
	s.Require().Equal(http.StatusOK, s.transition(s.admin, orderID, "delivered_or_ready_for_pickup").status)

	shelved := s.do(http.MethodPost, "/api/v1/shelf-placements", &s.admin, map[string]any{
		"order_id": orderID, "shelf_code": "A-12",
	})
	s.Equal(http.StatusCreated, shelved.status, string(shelved.raw))
	s.Equal(geBranch, shelved.data()["branch_id"])
}

func (s *ServerTestSuite) TestBlockUser() {
	res := s.do(http.MethodPost, "/api/v1/user-blocks", &s.super, map[string]any{
		"user_id": s.customer.id, "reason": "chargeback fraud",
	})

	s.Equal(http.StatusCreated, res.status, string(res.raw))
	s.Equal(s.customer.id, res.data()["user_id"])
	s.Equal(s.super.id, res.data()["blocked_by"])
}

func (s *ServerTestSuite) TestReports() {
	branchID := s.createBranch("Tbilisi Vake", "GE", "Tbilisi")
	s.createOrder(s.customer, branchID)

	today := time.Now().UTC().Format(time.DateOnly)
	res := s.do(http.MethodGet, "/api/v1/reports/summary?from="+today+"&to="+today, &s.admin, nil)
	s.Require().Equal(http.StatusOK, res.status, string(res.raw))
	s.Equal("summary", res.data()["kind"])
	s.Equal(today, res.data()["from"])
	summary, ok := res.data()["data"].(map[string]any)
	s.Require().True(ok)
	s.EqualValues(1, summary["orders_created"])

	res = s.do(http.MethodGet, "/api/v1/reports/flights", &s.admin, nil)
	s.Equal(http.StatusOK, res.status, string(res.raw))

	res = s.do(http.MethodGet, "/api/v1/reports/summary?from=2024-03-31&to=2024-03-01", &s.admin, nil)
	s.Equal(http.StatusBadRequest, res.status)
	s.Equal(httpin.KindValidation, res.errorKind())

	res = s.do(http.MethodGet, "/api/v1/reports/summary?from=31.03.2024", &s.admin, nil)
	s.Equal(http.StatusBadRequest, res.status)

	res = s.do(http.MethodGet, "/api/v1/reports/weather", &s.admin, nil)
	s.Equal(http.StatusBadRequest, res.status)

	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/api/v1/reports/blocked_users", &s.admin, nil).status)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/reports/blocked_users", &s.super, nil).status)
}
