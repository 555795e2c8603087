package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rakhulsr/go-catalog/app/configs"
	"github.com/Rakhulsr/go-catalog/app/db/testdb"
	"github.com/Rakhulsr/go-catalog/app/middlewares"
	"github.com/Rakhulsr/go-catalog/app/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func newServer(t *testing.T) http.Handler {
	t.Helper()
	return routes.NewRouter(testdb.New(t), configs.ENV{
		AppEnv:              "test",
		StoreCurrency:       "INR",
		StoreCurrencySymbol: "₹",
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestUnknownCollectionSlug(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/api/collections/non-existent-slug", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body apiError
	decode(t, rec, &body)
	assert.Equal(t, "not_found", body.Error.Code)
	assert.NotEmpty(t, body.Error.Message)
	assert.NotEmpty(t, rec.Header().Get(middlewares.RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/currency", nil)
	req.Header.Set(middlewares.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(middlewares.RequestIDHeader))
}

func TestCategoriesRouteIsNotAnID(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/api/products/categories", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]string
	decode(t, rec, &body)
	assert.Contains(t, body, "categories")
}

func TestCollectionTreeOverHTTP(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/api/collections", `{"name":"Men","slug":"men"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/api/collections/men", rec.Header().Get("Location"))

	var created struct {
		Collection struct {
			ID uint `json:"id"`
		} `json:"collection"`
	}
	decode(t, rec, &created)

	child, err := json.Marshal(map[string]interface{}{"name": "Shirts", "slug": "men-shirts", "parent_id": created.Collection.ID})
	require.NoError(t, err)
	rec = do(t, h, http.MethodPost, "/api/collections", string(child))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/collections", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tree struct {
		Collections []struct {
			Slug     string `json:"slug"`
			Children []struct {
				Slug     string            `json:"slug"`
				Children []json.RawMessage `json:"children"`
			} `json:"children"`
		} `json:"collections"`
	}
	decode(t, rec, &tree)
	require.Len(t, tree.Collections, 1)
	require.Len(t, tree.Collections[0].Children, 1)
	assert.Equal(t, "men-shirts", tree.Collections[0].Children[0].Slug)
	assert.NotNil(t, tree.Collections[0].Children[0].Children)
	assert.Contains(t, rec.Body.String(), `"children":[]`)

	rec = do(t, h, http.MethodGet, "/api/collections?flat=true&parent_id=null", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var flat struct {
		Collections []json.RawMessage `json:"collections"`
	}
	decode(t, rec, &flat)
	assert.Len(t, flat.Collections, 1)

	rec = do(t, h, http.MethodGet, "/api/collections/men", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"products":[]`)
}

func TestCollectionErrors(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/api/collections", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/collections", `{"name":"","slug":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body apiError
	decode(t, rec, &body)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Contains(t, body.Error.Fields, "name")

	rec = do(t, h, http.MethodPost, "/api/collections", `{"name":"Men","slug":"men"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/collections", `{"name":"Men","slug":"men"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/collections?parent_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/collections/9999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductsOverHTTP(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/api/products", `{"title":"Red T-Shirt","price":"499.5","stock":3,"type":"t-shirt","brand":"Acme"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Location"))

	rec = do(t, h, http.MethodGet, "/api/products?limit=5&brand=Acme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Products []struct {
			Title          string `json:"title"`
			PriceFormatted string `json:"price_formatted"`
		} `json:"products"`
		Total       int64 `json:"total"`
		TotalPages  int   `json:"totalPages"`
		CurrentPage int   `json:"currentPage"`
		HasMore     bool  `json:"hasMore"`
	}
	decode(t, rec, &page)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "₹499.50", page.Products[0].PriceFormatted)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.CurrentPage)
	assert.False(t, page.HasMore)

	rec = do(t, h, http.MethodGet, "/api/products?limit=1000", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/products/4242", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/products/brands", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"brands":["Acme"]}`, rec.Body.String())
}

func TestCurrencyAndHealth(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/api/currency", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var currency map[string]interface{}
	decode(t, rec, &currency)
	assert.Equal(t, "INR", currency["code"])
	assert.Equal(t, "₹1,234.50", currency["example"])

	rec = do(t, h, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNonNumericIDsAreBadRequests(t *testing.T) {
	h := newServer(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/products/abc", ""},
		{http.MethodPut, "/api/products/abc", `{"title":"x"}`},
		{http.MethodDelete, "/api/products/abc", ""},
		{http.MethodPut, "/api/collections/abc", `{"name":"x"}`},
		{http.MethodDelete, "/api/collections/abc", ""},
		{http.MethodPost, "/api/collections/abc/products", `{"product_ids":[1]}`},
		{http.MethodPut, "/api/mega-menu/abc", `{"position":1}`},
		{http.MethodGet, "/api/orders/abc", ""},
		{http.MethodPost, "/api/orders/abc/payments", `{}`},
	} {
		rec := do(t, h, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", tc.method, tc.path)
		var body apiError
		decode(t, rec, &body)
		assert.Equal(t, "validation_error", body.Error.Code, "%s %s", tc.method, tc.path)
	}

	rec := do(t, h, http.MethodGet, "/api/products/categories", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/mega-menu/all", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
