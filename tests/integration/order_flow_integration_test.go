package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/marco-valdez/la-comanda-api/config"
	"github.com/marco-valdez/la-comanda-api/controllers"
	"github.com/marco-valdez/la-comanda-api/models"
	"github.com/marco-valdez/la-comanda-api/services"
	"github.com/marco-valdez/la-comanda-api/tests/testutil"
)

// OrderFlowIntegrationTestSuite exercises the order lifecycle through the
// HTTP handlers, with one router per role.
type OrderFlowIntegrationTestSuite struct {
	suite.Suite
	db     *gorm.DB
	admin  models.Staff
	server models.Staff
	cook   models.Staff
}

func (suite *OrderFlowIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	testutil.MustSetTestEnvironment(suite.T())
}

func (suite *OrderFlowIntegrationTestSuite) SetupTest() {
	testutil.RequireTestEnvironment(suite.T())

	suite.db = testutil.OpenTestDB(suite.T())
	config.SetDB(suite.db)

	suite.admin = testutil.CreateStaffAccount(suite.T(), suite.db, "admin", "admin-password-1", models.RoleAdmin)
	suite.server = testutil.CreateStaffAccount(suite.T(), suite.db, "carla", "carla-password-1", models.RoleServer)
	suite.cook = testutil.CreateStaffAccount(suite.T(), suite.db, "pedro", "pedro-password-1", models.RoleCook)
}

func (suite *OrderFlowIntegrationTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// routerFor wires the order and catalog routes behind a fixed actor.
func (suite *OrderFlowIntegrationTestSuite) routerFor(staff models.Staff) *gin.Engine {
	actor := services.Actor{ID: staff.ID, Username: staff.Username, Role: staff.Role}

	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		v1.POST("/orders", testutil.ActorMiddleware(actor), controllers.CreateOrder)
		v1.GET("/orders", testutil.ActorMiddleware(actor), controllers.ListOrders)
		v1.GET("/orders/:id", testutil.ActorMiddleware(actor), controllers.GetOrder)
		v1.PUT("/orders/:id/status", testutil.ActorMiddleware(actor), controllers.UpdateOrderStatus)
		v1.GET("/tables", testutil.ActorMiddleware(actor), controllers.ListTables)
		v1.GET("/reports/sales", testutil.ActorMiddleware(actor), controllers.GetSalesReport)
	}
	return router
}

func (suite *OrderFlowIntegrationTestSuite) request(router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	suite.NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

// TestFullOrderLifecycle walks one order from creation at a table through
// the kitchen to delivery, checking totals, visibility and occupancy at
// each step.
func (suite *OrderFlowIntegrationTestSuite) TestFullOrderLifecycle() {
	db := suite.db

	db.Create(&models.Table{Number: 5, Capacity: 4, State: models.TableAvailable, Active: true})
	burger := models.MenuItem{Name: "Hamburguesa", Price: 10.00, Category: "Principal", Available: true}
	soda := models.MenuItem{Name: "Gaseosa", Price: 5.00, Category: "Bebida", Available: true}
	db.Create(&burger)
	db.Create(&soda)

	serverRouter := suite.routerFor(suite.server)
	cookRouter := suite.routerFor(suite.cook)
	adminRouter := suite.routerFor(suite.admin)

	// The server takes the order for table 5
	w, response := suite.request(serverRouter, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"customer_name": "Carlos",
		"table_number":  5,
		"items": []map[string]interface{}{
			{"menu_item_id": burger.ID, "quantity": 2},
			{"menu_item_id": soda.ID, "quantity": 1},
		},
	})
	suite.Equal(http.StatusCreated, w.Code)

	data := response["data"].(map[string]interface{})
	orderID := data["id"].(float64)
	suite.Equal(float64(25), data["total"])
	suite.Equal("pending", data["status"])

	// The table is now occupied
	w, response = suite.request(adminRouter, http.MethodGet, "/api/v1/tables?state=occupied", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(response["data"], 1)

	// A second party cannot take the same table
	w, response = suite.request(serverRouter, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"customer_name": "Berta",
		"table_number":  5,
		"items":         []map[string]interface{}{{"menu_item_id": soda.ID, "quantity": 1}},
	})
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("TABLE_CONFLICT", response["error"].(map[string]interface{})["code"])

	// The cook sees the pending order and claims it
	w, response = suite.request(cookRouter, http.MethodGet, "/api/v1/orders", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(response["data"], 1)

	statusPath := fmt.Sprintf("/api/v1/orders/%.0f/status", orderID)
	w, response = suite.request(cookRouter, http.MethodPut, statusPath, map[string]string{"status": "preparing"})
	suite.Equal(http.StatusOK, w.Code)
	data = response["data"].(map[string]interface{})
	suite.Equal(float64(suite.cook.ID), data["prepared_by_id"])

	w, _ = suite.request(cookRouter, http.MethodPut, statusPath, map[string]string{"status": "ready"})
	suite.Equal(http.StatusOK, w.Code)

	// The server delivers; the table frees up
	w, _ = suite.request(serverRouter, http.MethodPut, statusPath, map[string]string{"status": "delivered"})
	suite.Equal(http.StatusOK, w.Code)

	var table models.Table
	db.Where("number = ?", 5).First(&table)
	suite.Equal(models.TableAvailable, table.State)

	// Delivered orders leave the cook's view but stay in the server's
	w, response = suite.request(cookRouter, http.MethodGet, "/api/v1/orders", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Empty(response["data"])

	w, response = suite.request(serverRouter, http.MethodGet, "/api/v1/orders", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(response["data"], 1)

	// The figures land in the sales report
	w, response = suite.request(adminRouter, http.MethodGet, "/api/v1/reports/sales", nil)
	suite.Equal(http.StatusOK, w.Code)
	report := response["data"].(map[string]interface{})
	suite.Equal(float64(1), report["order_count"])
	suite.Equal(float64(25), report["revenue"])
}

// TestCancellationFreesTableAndSkipsRevenue cancels an order mid-flight.
func (suite *OrderFlowIntegrationTestSuite) TestCancellationFreesTableAndSkipsRevenue() {
	db := suite.db

	db.Create(&models.Table{Number: 2, Capacity: 2, State: models.TableAvailable, Active: true})
	dish := models.MenuItem{Name: "Milanesa", Price: 9.00, Category: "Principal", Available: true}
	db.Create(&dish)

	serverRouter := suite.routerFor(suite.server)
	adminRouter := suite.routerFor(suite.admin)

	w, response := suite.request(serverRouter, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"customer_name": "Diana",
		"table_number":  2,
		"items":         []map[string]interface{}{{"menu_item_id": dish.ID, "quantity": 1}},
	})
	suite.Equal(http.StatusCreated, w.Code)
	orderID := response["data"].(map[string]interface{})["id"].(float64)

	statusPath := fmt.Sprintf("/api/v1/orders/%.0f/status", orderID)
	w, _ = suite.request(serverRouter, http.MethodPut, statusPath, map[string]string{"status": "cancelled"})
	suite.Equal(http.StatusOK, w.Code)

	var table models.Table
	db.Where("number = ?", 2).First(&table)
	suite.Equal(models.TableAvailable, table.State)

	w, response = suite.request(adminRouter, http.MethodGet, "/api/v1/reports/sales", nil)
	suite.Equal(http.StatusOK, w.Code)
	report := response["data"].(map[string]interface{})
	suite.Equal(float64(1), report["order_count"])
	suite.Equal(float64(1), report["cancelled_count"])
	suite.Equal(float64(0), report["revenue"])
}

// TestServerCannotReadAnotherServersOrder checks cross-server visibility.
func (suite *OrderFlowIntegrationTestSuite) TestServerCannotReadAnotherServersOrder() {
	db := suite.db

	bruno := testutil.CreateStaffAccount(suite.T(), db, "bruno", "bruno-password-1", models.RoleServer)
	dish := models.MenuItem{Name: "Milanesa", Price: 9.00, Category: "Principal", Available: true}
	db.Create(&dish)

	w, response := suite.request(suite.routerFor(suite.server), http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"customer_name": "Carlos",
		"items":         []map[string]interface{}{{"menu_item_id": dish.ID, "quantity": 1}},
	})
	suite.Equal(http.StatusCreated, w.Code)
	orderID := response["data"].(map[string]interface{})["id"].(float64)

	path := fmt.Sprintf("/api/v1/orders/%.0f", orderID)
	w, response = suite.request(suite.routerFor(bruno), http.MethodGet, path, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("FORBIDDEN", response["error"].(map[string]interface{})["code"])
}

func TestOrderFlowIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderFlowIntegrationTestSuite))
}
