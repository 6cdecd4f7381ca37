package controllerImp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrimanage/entities"
	cropImp "agrimanage/pkg/crop/repositoryImp"
	"agrimanage/pkg/crop/serviceImp"
	notifyImp "agrimanage/pkg/notify/serviceImp"
	slotImp "agrimanage/pkg/slot/repositoryImp"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	e, _ := newServerWithQueue(t)
	return e
}

func newServerWithQueue(t *testing.T) (*echo.Echo, *notifyImp.Queue) {
	t.Helper()
	q := notifyImp.New(time.Hour, nil)
	t.Cleanup(q.Close)
	st := cropImp.New(slotImp.NewMemory(), q, nil)
	require.NoError(t, st.Hydrate(context.Background()))
	h := New(serviceImp.NewCropService(st, q, nil))

	e := echo.New()
	g := e.Group("/api/v1/crops")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.Patch)
	g.DELETE("/:id", h.Delete)
	return e, q
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCropCRUD(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/api/v1/crops",
		`{"name":"Wheat A","season":"rabi","fertilizer":"Urea","yield":"10","area":5,"start_date":"2026-11-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created entities.Crop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, entities.SeasonRabi, created.Season)
	assert.Equal(t, 10.0, created.Yield)
	require.NotNil(t, created.StartDate)
	path := "/api/v1/crops/" + strconv.FormatInt(created.ID, 10)

	rec = do(e, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPatch, path, `{"area":"7.5"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var patched entities.Crop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patched))
	assert.Equal(t, 7.5, patched.Area)
	assert.Equal(t, "Wheat A", patched.Name)

	rec = do(e, http.MethodPut, path, `{"name":"Wheat B","season":"Rabi","fertilizer":"DAP","yield":1,"area":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/v1/crops?q=wheat%20b", "")
	var list []entities.Crop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Nil(t, list[0].StartDate)

	rec = do(e, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(e, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCropValidationErrors(t *testing.T) {
	e := newServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing area", `{"name":"x","season":"Rabi","fertilizer":"Urea","yield":1}`},
		{"area not a number", `{"name":"x","season":"Rabi","fertilizer":"Urea","yield":1,"area":"lots"}`},
		{"unknown season", `{"name":"x","season":"Monsoon","fertilizer":"Urea","yield":1,"area":1}`},
		{"negative yield", `{"name":"x","season":"Rabi","fertilizer":"Urea","yield":-1,"area":1}`},
		{"bad date", `{"name":"x","season":"Rabi","fertilizer":"Urea","yield":1,"area":1,"start_date":"01/11/2026"}`},
		{"missing name", `{"season":"Rabi","fertilizer":"Urea","yield":1,"area":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/v1/crops", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}

	rec := do(e, http.MethodGet, "/api/v1/crops/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(e, http.MethodPut, "/api/v1/crops/123", `{"name":"x","season":"Rabi","fertilizer":"Urea","yield":1,"area":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(e, http.MethodPatch, "/api/v1/crops/123", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestErrorsAreNotified(t *testing.T) {
	e, q := newServerWithQueue(t)

	rec := do(e, http.MethodPost, "/api/v1/crops", `{"name":"x","season":"Rabi","fertilizer":"Urea","yield":"lots","area":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(e, http.MethodPost, "/api/v1/crops", `{"name":"x","season":"Rabi","fertilizer":"Urea","yield":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(e, http.MethodPost, "/api/v1/crops", `{"name":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/v1/crops", `{"name":"Wheat A","season":"Rabi","fertilizer":"Urea","yield":1,"area":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created entities.Crop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := "/api/v1/crops/" + strconv.FormatInt(created.ID, 10)

	rec = do(e, http.MethodPatch, path, `{"area":"wide"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(e, http.MethodPut, path, `{"name":"Wheat A"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errs []string
	for _, n := range q.List() {
		if n.Kind == entities.NotifyError {
			errs = append(errs, n.Message)
		}
	}
	require.Len(t, errs, 5)
	assert.True(t, strings.HasPrefix(errs[0], "Failed to add crop:"), errs[0])
	assert.Contains(t, errs[0], "yield must be a number")
	assert.Contains(t, errs[1], "area is required")
	assert.True(t, strings.HasPrefix(errs[3], "Failed to update crop:"), errs[3])
}
