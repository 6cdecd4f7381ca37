package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersAfterInit(t *testing.T) {
	reg := prometheus.NewRegistry()
	Init(reg)

	IncCropMutation("add", ResultSuccess)
	IncCropMutation("add", "")
	IncNotification("error")
	IncCalculation(Result(errors.New("x")))
	ObserveCollaborator("weather", ResultSuccess, 20*time.Millisecond)
	IncExport("csv", ResultSuccess)

	assert.Equal(t, 2.0, testutil.ToFloat64(cropMutations.WithLabelValues("add", ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(notifications.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(calculations.WithLabelValues(ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collaboratorRequests.WithLabelValues("weather", ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(exports.WithLabelValues("csv", ResultSuccess)))
}

func TestResult(t *testing.T) {
	assert.Equal(t, ResultSuccess, Result(nil))
	assert.Equal(t, ResultError, Result(errors.New("x")))
}
