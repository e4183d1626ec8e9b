package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/litescript/ls-starmap/internal/astro"
)

func TestRecordOperation(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, ResultOK},
		{"invalid input", astro.NewInvalidInput("op", "distance", -1, "must be > 0"), ResultInvalidInput},
		{"wrapped invalid input", fmt.Errorf("catalog: %w", astro.ErrInvalidInput), ResultInvalidInput},
		{"other failure", errors.New("boom"), ResultError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := "test_" + tt.result
			before := testutil.ToFloat64(EngineOperations.WithLabelValues(op, tt.result))
			RecordOperation(op, time.Millisecond, tt.err)
			after := testutil.ToFloat64(EngineOperations.WithLabelValues(op, tt.result))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestSetCatalogSize(t *testing.T) {
	SetCatalogSize(38, 5)
	assert.Equal(t, 38.0, testutil.ToFloat64(CatalogStars))
	assert.Equal(t, 5.0, testutil.ToFloat64(CatalogTerritories))
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/v1/test", "200")
	before := testutil.ToFloat64(c)
	RecordAPIRequest("GET", "/api/v1/test", "200", 5*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	assert.Equal(t, before+1, testutil.ToFloat64(APIActiveRequests))
	TrackActiveRequest(false)
	assert.Equal(t, before, testutil.ToFloat64(APIActiveRequests))
}
