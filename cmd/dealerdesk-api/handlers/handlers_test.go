package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerdesk/dealerdesk/internal/assistant"
	"github.com/dealerdesk/dealerdesk/internal/inventory"
	"github.com/dealerdesk/dealerdesk/internal/knowledge"
	"github.com/dealerdesk/dealerdesk/internal/llm"
	"github.com/dealerdesk/dealerdesk/internal/observability"
	"github.com/dealerdesk/dealerdesk/internal/session"
)

type fixedGenerator struct {
	reply string
	err   error
}

func (g *fixedGenerator) Generate(context.Context, llm.Request) (string, error) {
	return g.reply, g.err
}

func testStore() *inventory.Store {
	return inventory.NewStore([]inventory.VehicleRecord{
		{StockNumber: "AX10000", Year: 2023, Make: "Honda", Model: "CR-V", Category: inventory.CategorySUV, Price: 30000, Available: true, Featured: true},
		{StockNumber: "AX10001", Year: 2022, Make: "Toyota", Model: "Camry", Category: inventory.CategorySedan, Price: 25000, Available: true},
		{StockNumber: "AX10002", Year: 2021, Make: "Ford", Model: "F-150", Category: inventory.CategoryTruck, Price: 41000, Available: false},
	})
}

func testRouter(t *testing.T, gen llm.Generator) http.Handler {
	t.Helper()
	logger := observability.Nop()
	store := testStore()

	asst, err := assistant.New(assistant.Deps{
		Inventory: store,
		Knowledge: knowledge.NewBase(nil),
		Sessions:  session.NewMemoryStore(),
		Generator: gen,
		Logger:    logger,
	}, assistant.Options{})
	require.NoError(t, err)

	r := chi.NewRouter()
	health := NewHealthHandler("dealerdesk", store)
	inv := NewInventoryHandler(logger, store)
	chat := NewChatHandler(logger, asst)

	r.Get("/", health.Root)
	r.Get("/api/inventory", inv.List)
	r.Get("/api/inventory/{stockNumber}", inv.ByStock)
	r.Get("/api/stats", inv.Stats)
	r.Post("/api/chat", chat.Chat)
	return r
}

func TestHealthRoot(t *testing.T) {
	router := testRouter(t, &fixedGenerator{reply: "ok"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "dealerdesk", body["service"])
	assert.EqualValues(t, 3, body["inventory_count"])
}

func TestInventoryList(t *testing.T) {
	router := testRouter(t, &fixedGenerator{reply: "ok"})

	t.Run("default limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body InventoryListDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 3, body.Total)
		assert.Len(t, body.Vehicles, 3)
		// Original file order is preserved.
		assert.Equal(t, "AX10000", body.Vehicles[0].StockNumber)
	})

	t.Run("explicit limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory?limit=1", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body InventoryListDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 3, body.Total)
		assert.Len(t, body.Vehicles, 1)
	})

	t.Run("invalid limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory?limit=abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestInventoryByStock(t *testing.T) {
	router := testRouter(t, &fixedGenerator{reply: "ok"})

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory/AX10001", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body inventory.VehicleRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Camry", body.Model)
	})

	t.Run("unknown stock number is a 404 and the list is unaffected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory/AX99999", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory", nil))
		var body InventoryListDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 3, body.Total)
	})
}

func TestStats(t *testing.T) {
	router := testRouter(t, &fixedGenerator{reply: "ok"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body StatsDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 3, body.Inventory.TotalVehicles)
	assert.Equal(t, 2, body.Inventory.Available)
	assert.Equal(t, 1, body.Inventory.Featured)
	assert.Equal(t, 25000, body.PriceRange.Min)
	assert.Equal(t, 41000, body.PriceRange.Max)
	// (30000 + 25000 + 41000) / 3 truncates.
	assert.Equal(t, 32000, body.PriceRange.Avg)
	assert.Equal(t, 1, body.Categories["suv"])
	assert.Equal(t, 1, body.Categories["sedan"])
	assert.Equal(t, 1, body.Categories["truck"])
}

func TestChat(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router := testRouter(t, &fixedGenerator{reply: "We have three great options."})

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"What SUVs do you have?"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body assistant.Reply
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "We have three great options.", body.Response)
		assert.NotEmpty(t, body.ConversationID)
		assert.Equal(t, []string{"research"}, body.AgentsUsed)
	})

	t.Run("generation failure returns the apology, not an error status", func(t *testing.T) {
		router := testRouter(t, &fixedGenerator{err: llm.ErrUnavailable})

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"What SUVs do you have?"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body assistant.Reply
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "I apologize, I encountered an error. Please try again.", body.Response)
		assert.Empty(t, body.AgentsUsed)
	})

	t.Run("empty message", func(t *testing.T) {
		router := testRouter(t, &fixedGenerator{reply: "ok"})

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":""}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		router := testRouter(t, &fixedGenerator{reply: "ok"})

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("conversation id is reused", func(t *testing.T) {
		router := testRouter(t, &fixedGenerator{reply: "ok"})

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi there","conversation_id":"conv-42"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body assistant.Reply
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "conv-42", body.ConversationID)
	})
}
