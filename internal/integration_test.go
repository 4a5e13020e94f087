package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"repair-orders-backend/config"
	"repair-orders-backend/internal/api"
	"repair-orders-backend/internal/db"
	"repair-orders-backend/internal/model"
	"repair-orders-backend/internal/store"
)

// TestOrderLifecycle walks one repair order through the whole workflow via
// the HTTP API, from customer checkout to completion, verifying the
// persisted state and the dashboard at each step.
func TestOrderLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 1. Setup an in-memory SQLite database for testing.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, db.Migrate(testDB))

	// 2. Seed the fixture accounts the way startup does.
	seedCfg := &config.SeedConfig{
		Enabled:       true,
		AdminEmail:    "admin@example.com",
		AdminPassword: "12345678",
		UserEmail:     "user@example.com",
		UserPassword:  "12345678",
	}
	require.NoError(t, db.Seed(testDB, seedCfg))

	// Seeding twice must not duplicate fixtures.
	require.NoError(t, db.Seed(testDB, seedCfg))
	var adminCount int64
	testDB.Model(&model.Admin{}).Count(&adminCount)
	require.Equal(t, int64(1), adminCount)

	var engineer model.Engineer
	require.NoError(t, testDB.First(&engineer).Error)

	// 3. Build the router on top of the test database.
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "integration-secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTL = time.Millisecond // keep the dashboard fresh per request

	router := api.NewRouter(store.NewGormStore(testDB), cfg)

	call := func(method, path, token string, body any) *httptest.ResponseRecorder {
		payload := bytes.NewBuffer(nil)
		if body != nil {
			raw, err := json.Marshal(body)
			require.NoError(t, err)
			payload = bytes.NewBuffer(raw)
		}
		req, err := http.NewRequest(method, path, payload)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	login := func(email, role string) string {
		w := call("POST", "/api/auth/login", "", gin.H{
			"email": email, "password": "12345678", "role": role,
		})
		require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
		var body struct {
			Data struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.NotEmpty(t, body.Data.Token)
		return body.Data.Token
	}

	userTok := login("user@example.com", "user")
	adminTok := login("admin@example.com", "admin")

	dataOf := func(w *httptest.ResponseRecorder, dest any) {
		var body struct {
			Data json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.NoError(t, json.Unmarshal(body.Data, dest))
	}

	var orderID string
	t.Run("customer places an order", func(t *testing.T) {
		w := call("POST", "/api/user/orders", userTok, gin.H{
			"location": "Jl. Kenanga 12",
			"latitude": -6.2,
			"longitude": 106.8,
			"brand":    "Sharp",
			"desc":     "Panel flickers",
		})
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

		var created model.Order
		dataOf(w, &created)
		assert.Equal(t, "Requested", created.Status)
		assert.Nil(t, created.EngineerID)
		orderID = created.ID
	})

	t.Run("accepting without an engineer fails", func(t *testing.T) {
		w := call("PATCH", "/api/admin/orders/"+orderID, adminTok, gin.H{"status": "Accepted"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var stored model.Order
		require.NoError(t, testDB.First(&stored, "id = ?", orderID).Error)
		assert.Equal(t, "Requested", stored.Status, "failed transition must not mutate the order")
	})

	t.Run("accepting with an engineer succeeds", func(t *testing.T) {
		w := call("PATCH", "/api/admin/orders/"+orderID, adminTok, gin.H{
			"status": "Accepted", "engineerId": engineer.ID,
		})
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

		var stored model.Order
		require.NoError(t, testDB.First(&stored, "id = ?", orderID).Error)
		assert.Equal(t, "Accepted", stored.Status)
		require.NotNil(t, stored.EngineerID)
		assert.Equal(t, engineer.ID, *stored.EngineerID)
	})

	t.Run("work starts and finishes", func(t *testing.T) {
		w := call("PATCH", "/api/admin/orders/"+orderID, adminTok, gin.H{"status": "InProgress"})
		require.Equal(t, http.StatusOK, w.Code)

		w = call("PATCH", "/api/admin/orders/"+orderID, adminTok, gin.H{"status": "Completed"})
		require.Equal(t, http.StatusOK, w.Code)

		var stored model.Order
		require.NoError(t, testDB.First(&stored, "id = ?", orderID).Error)
		assert.Equal(t, "Completed", stored.Status)
	})

	t.Run("completed orders are terminal", func(t *testing.T) {
		w := call("PATCH", "/api/admin/orders/"+orderID, adminTok, gin.H{"status": "Requested"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("customer sees the final state", func(t *testing.T) {
		w := call("GET", "/api/user/orders/"+orderID, userTok, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var mine model.Order
		dataOf(w, &mine)
		assert.Equal(t, "Completed", mine.Status)
		require.NotNil(t, mine.Engineer)
		assert.Equal(t, engineer.Name, mine.Engineer.Name)
	})

	t.Run("dashboard reflects the completion", func(t *testing.T) {
		time.Sleep(5 * time.Millisecond) // let the cached entry expire

		w := call("GET", "/api/admin/dashboard", adminTok, nil)
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

		var dash struct {
			TotalOrders   int64 `json:"totalOrders"`
			SuccessOrders int64 `json:"successOrders"`
			TotalWeekly   int64 `json:"totalWeekly"`
			ChartData     []struct {
				Month string `json:"month"`
				Total int    `json:"total"`
			} `json:"chartData"`
		}
		dataOf(w, &dash)

		assert.Equal(t, int64(1), dash.TotalOrders)
		assert.Equal(t, int64(1), dash.SuccessOrders)
		assert.Equal(t, int64(1), dash.TotalWeekly)
		require.Len(t, dash.ChartData, 12)
		assert.Equal(t, 1, dash.ChartData[11].Total)
	})
}
