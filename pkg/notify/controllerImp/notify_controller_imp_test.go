package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrimanage/entities"
	"agrimanage/pkg/notify/serviceImp"
)

func TestListAndDismiss(t *testing.T) {
	q := serviceImp.New(time.Hour, nil)
	defer q.Close()
	n := q.Push("Crop added successfully", entities.NotifySuccess)

	e := echo.New()
	h := New(q)
	e.GET("/api/v1/notifications", h.List)
	e.DELETE("/api/v1/notifications/:id", h.Dismiss)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got []entities.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Crop added successfully", got[0].Message)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/notifications/"+n.ID, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/notifications/"+n.ID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
