package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStatusClass(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{200, "2xx"},
		{202, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
		{100, "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusClass(tt.status))
	}
}

func TestRecordRemoteCall(t *testing.T) {
	before := testutil.ToFloat64(RemoteCallsTotal.WithLabelValues("kie", "error"))
	RecordRemoteCall("kie", errors.New("boom"))
	RecordRemoteCall("kie", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(RemoteCallsTotal.WithLabelValues("kie", "error")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(RemoteCallsTotal.WithLabelValues("kie", "ok")), float64(1))
}
