package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStoreOp(t *testing.T) {
	before := testutil.ToFloat64(storeOpTotal.WithLabelValues("test", "create"))

	RecordStoreOp("test", "create", 50*time.Microsecond)
	RecordStoreOp("test", "create", 10*time.Microsecond)

	assert.Equal(t, before+2, testutil.ToFloat64(storeOpTotal.WithLabelValues("test", "create")))
}

func TestRecordStoreError(t *testing.T) {
	before := testutil.ToFloat64(storeOpErrors.WithLabelValues("test", "delete"))

	RecordStoreError("test", "delete")

	assert.Equal(t, before+1, testutil.ToFloat64(storeOpErrors.WithLabelValues("test", "delete")))
}

func TestSetStoreRecords(t *testing.T) {
	SetStoreRecords("test", 6)
	assert.Equal(t, float64(6), testutil.ToFloat64(storeRecords.WithLabelValues("test")))

	SetStoreRecords("test", 5)
	assert.Equal(t, float64(5), testutil.ToFloat64(storeRecords.WithLabelValues("test")))
}

func TestSetBreakerState(t *testing.T) {
	SetBreakerState("redis", 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(breakerState.WithLabelValues("redis")))

	SetBreakerState("redis", 0)
	assert.Equal(t, float64(0), testutil.ToFloat64(breakerState.WithLabelValues("redis")))
}
