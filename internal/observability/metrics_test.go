package observability

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(transitionsTotal.WithLabelValues("save_goal", "error"))
	RecordTransition("save_goal", errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(transitionsTotal.WithLabelValues("save_goal", "error")))
}

func TestRecordMileageCountsAbsoluteKm(t *testing.T) {
	before := testutil.ToFloat64(mileageKm.WithLabelValues("revert"))
	clamped := testutil.ToFloat64(mileageClamped)

	RecordMileage("revert", -3, true)

	assert.InDelta(t, before+3, testutil.ToFloat64(mileageKm.WithLabelValues("revert")), 1e-9)
	assert.Equal(t, clamped+1, testutil.ToFloat64(mileageClamped))
}

func TestRecordCoachCall(t *testing.T) {
	before := testutil.ToFloat64(coachCalls.WithLabelValues("ask", "fallback"))
	RecordCoachCall("ask", "fallback")
	assert.Equal(t, before+1, testutil.ToFloat64(coachCalls.WithLabelValues("ask", "fallback")))
}
