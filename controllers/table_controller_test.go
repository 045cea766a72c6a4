package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marco-valdez/la-comanda-api/config"
	"github.com/marco-valdez/la-comanda-api/models"
	"github.com/marco-valdez/la-comanda-api/services"
)

func TestCreateTable(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	admin := createStaff(t, db, "admin", models.RoleAdmin)
	createTable(t, db, 1, models.TableAvailable)

	// A deactivated table frees up its number
	retired := createTable(t, db, 9, models.TableAvailable)
	db.Model(&retired).Update("active", false)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Successfully create table",
			requestBody:    map[string]interface{}{"number": 2, "capacity": 4, "location": "Terraza"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Reuse number of a deactivated table",
			requestBody:    map[string]interface{}{"number": 9, "capacity": 2},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Fail with duplicate active number",
			requestBody:    map[string]interface{}{"number": 1, "capacity": 4},
			expectedStatus: http.StatusConflict,
			expectedError:  "TABLE_NUMBER_TAKEN",
		},
		{
			name:           "Fail with zero capacity",
			requestBody:    map[string]interface{}{"number": 3, "capacity": 0},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail with missing number",
			requestBody:    map[string]interface{}{"capacity": 4},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/tables", mockAuthMiddleware(actorOf(admin)), CreateTable)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/tables", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedError != "" {
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
				return
			}

			data := response["data"].(map[string]interface{})
			assert.Equal(t, "available", data["state"], "new tables start available")
		})
	}
}

func TestListTables(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	admin := createStaff(t, db, "admin", models.RoleAdmin)
	createTable(t, db, 3, models.TableOccupied)
	createTable(t, db, 1, models.TableAvailable)
	retired := createTable(t, db, 2, models.TableAvailable)
	db.Model(&retired).Update("active", false)

	router := setupTestRouter()
	router.GET("/tables", mockAuthMiddleware(actorOf(admin)), ListTables)

	// Deactivated tables are hidden; order is by number
	req, _ := http.NewRequest(http.MethodGet, "/tables", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)

	data := response["data"].([]interface{})
	assert.Equal(t, 2, len(data))
	first := data[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["number"])

	// Occupancy filter
	req, _ = http.NewRequest(http.MethodGet, "/tables?state=occupied", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &response)
	data = response["data"].([]interface{})
	assert.Equal(t, 1, len(data))
}

func TestUpdateTable_DuplicateNumber(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	admin := createStaff(t, db, "admin", models.RoleAdmin)
	createTable(t, db, 1, models.TableAvailable)
	createTable(t, db, 2, models.TableAvailable)

	router := setupTestRouter()
	router.PUT("/tables/:id", mockAuthMiddleware(actorOf(admin)), UpdateTable)

	// Renaming table 2 to the taken number 1 is rejected
	body, _ := json.Marshal(map[string]interface{}{"number": 1})
	req, _ := http.NewRequest(http.MethodPut, "/tables/2", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	// Capacity-only update passes
	body, _ = json.Marshal(map[string]interface{}{"capacity": 8})
	req, _ = http.NewRequest(http.MethodPut, "/tables/2", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var table models.Table
	db.First(&table, 2)
	assert.Equal(t, 8, table.Capacity)
}

func TestSetTableState(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	admin := createStaff(t, db, "admin", models.RoleAdmin)
	createTable(t, db, 1, models.TableAvailable)

	tests := []struct {
		name           string
		state          string
		expectedStatus int
		expectedError  string
	}{
		{"Reserve the table", "reserved", http.StatusOK, ""},
		{"Free it again", "available", http.StatusOK, ""},
		{"Reject unknown state", "painted", http.StatusBadRequest, "INVALID_STATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.PUT("/tables/:id/state", mockAuthMiddleware(actorOf(admin)), SetTableState)

			body, _ := json.Marshal(map[string]string{"state": tt.state})
			req, _ := http.NewRequest(http.MethodPut, "/tables/1/state", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				var response map[string]interface{}
				json.Unmarshal(w.Body.Bytes(), &response)
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
				return
			}

			var table models.Table
			db.First(&table, 1)
			assert.Equal(t, tt.state, table.State)
		})
	}
}

func TestDeleteTable(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	admin := createStaff(t, db, "admin", models.RoleAdmin)
	createTable(t, db, 1, models.TableAvailable)
	createTable(t, db, 2, models.TableAvailable)
	pizza := createMenuItem(t, db, "Pizza", 10.00)

	tableNumber := 1
	_, err := services.CreateOrder(db, services.CreateOrderInput{
		CustomerName: "Carlos",
		TableNumber:  &tableNumber,
		Items:        []services.OrderItemInput{{MenuItemID: pizza.ID, Quantity: 1}},
	}, actorOf(admin))
	assert.NoError(t, err)

	router := setupTestRouter()
	router.DELETE("/tables/:id", mockAuthMiddleware(actorOf(admin)), DeleteTable)

	// Table 1 carries order history and stays
	req, _ := http.NewRequest(http.MethodDelete, "/tables/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var table models.Table
	db.First(&table, 1)
	assert.True(t, table.Active)

	// Table 2 is clean; the delete deactivates rather than removes it
	req, _ = http.NewRequest(http.MethodDelete, "/tables/2", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	db.First(&table, 2)
	assert.False(t, table.Active)
}
