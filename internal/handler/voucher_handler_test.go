package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isp-admin/internal/service"
)

func newVoucherRouter() http.Handler {
	h := NewVoucherHandler(service.NewVoucherService(&memVoucherStore{}))

	r := chi.NewRouter()
	r.Route("/api/vouchers", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Get("/active", h.GetActive)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func TestVoucherCreate(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		router := newVoucherRouter()

		rec := doRequest(t, router, http.MethodPost, "/api/vouchers",
			`{"code":"WEEK-01","duration":"7 days","price":15000}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "WEEK-01", body["code"])
		assert.Equal(t, "7 days", body["duration"])
		assert.Equal(t, float64(15000), body["price"])
		assert.Equal(t, true, body["isActive"])
	})

	t.Run("duplicate code is a 409 conflict", func(t *testing.T) {
		router := newVoucherRouter()

		rec := doRequest(t, router, http.MethodPost, "/api/vouchers",
			`{"code":"DUP","duration":"1 day","price":5}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, router, http.MethodPost, "/api/vouchers",
			`{"code":"DUP","duration":"2 days","price":10}`)
		require.Equal(t, http.StatusConflict, rec.Code)

		body := decodeError(t, rec)
		assert.Equal(t, http.StatusConflict, body.Status)
		assert.Equal(t, "Conflict", body.Message)
		require.Len(t, body.Fields, 1)
		assert.Equal(t, "code", body.Fields[0].Field)
		assert.Equal(t, "Voucher code already exists", body.Fields[0].Message)

		rec = doRequest(t, router, http.MethodGet, "/api/vouchers", "")
		var all []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
		assert.Len(t, all, 1)
	})

	t.Run("missing fields accumulate", func(t *testing.T) {
		router := newVoucherRouter()

		rec := doRequest(t, router, http.MethodPost, "/api/vouchers", `{}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeError(t, rec)
		names := make([]string, 0, len(body.Fields))
		for _, f := range body.Fields {
			names = append(names, f.Field)
		}
		assert.ElementsMatch(t, []string{"code", "duration", "price"}, names)
	})
}

func TestVoucherUpdate(t *testing.T) {
	t.Parallel()

	t.Run("changing code to an existing one conflicts", func(t *testing.T) {
		router := newVoucherRouter()

		rec := doRequest(t, router, http.MethodPost, "/api/vouchers",
			`{"code":"FIRST","duration":"1 day","price":5}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		rec = doRequest(t, router, http.MethodPost, "/api/vouchers",
			`{"code":"SECOND","duration":"7 days","price":20}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, router, http.MethodPut, "/api/vouchers/1", `{"code":"SECOND"}`)
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("sparse patch", func(t *testing.T) {
		router := newVoucherRouter()

		rec := doRequest(t, router, http.MethodPost, "/api/vouchers",
			`{"code":"FIRST","duration":"1 day","price":5}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, router, http.MethodPut, "/api/vouchers/1", `{"duration":"3 days"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "FIRST", body["code"])
		assert.Equal(t, "3 days", body["duration"])
		assert.Equal(t, float64(5), body["price"])
	})

	t.Run("unknown voucher is a 404", func(t *testing.T) {
		router := newVoucherRouter()

		rec := doRequest(t, router, http.MethodPut, "/api/vouchers/3", `{"price":9}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Voucher not found", decodeError(t, rec).Message)
	})

	t.Run("non-numeric id is a 400", func(t *testing.T) {
		router := newVoucherRouter()

		rec := doRequest(t, router, http.MethodPut, "/api/vouchers/oops", `{"price":9}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid voucher ID", decodeError(t, rec).Message)
	})
}

func TestVoucherActiveListing(t *testing.T) {
	t.Parallel()
	router := newVoucherRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/vouchers",
		`{"code":"BIG","duration":"30 days","price":100}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(t, router, http.MethodPost, "/api/vouchers",
		`{"code":"SMALL","duration":"1 day","price":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(t, router, http.MethodPost, "/api/vouchers",
		`{"code":"OFF","duration":"1 day","price":1,"isActive":false}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/vouchers/active", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var active []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	require.Len(t, active, 2)
	assert.Equal(t, "SMALL", active[0]["code"])
	assert.Equal(t, "BIG", active[1]["code"])
}

func TestVoucherDelete(t *testing.T) {
	t.Parallel()
	router := newVoucherRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/vouchers",
		`{"code":"GONE","duration":"1 day","price":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/vouchers/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/vouchers/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
