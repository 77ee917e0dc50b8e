package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/road-safety-reports/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	generated := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	ev := domain.ReportPublished{
		RunID:         "run-1",
		Report:        "monthly-safety",
		File:          "monthly_safety_report.json",
		GeneratedDate: generated,
		Bytes:         512,
		SHA256:        "abc123",
	}

	msg, err := serializeToMessage(ev)
	require.NoError(t, err)

	assert.Equal(t, []byte("monthly-safety"), msg.Key)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "run_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("run-1"), msg.Headers[0].Value)
	assert.Equal(t, "generated_date", msg.Headers[1].Key)
	assert.Equal(t, []byte(generated.Format(time.RFC3339)), msg.Headers[1].Value)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "monthly_safety_report.json", decoded["file"])
	assert.Equal(t, "2024-04-26T15:10:00Z", decoded["generated_date"])
	assert.InDelta(t, 512, decoded["bytes"], 0)
	assert.Equal(t, "abc123", decoded["sha256"])
}
