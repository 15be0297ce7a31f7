package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/questx-lab/questboard/internal/common"
	"github.com/stretchr/testify/require"
)

func TestNewHandler_ExposesQuestboardMetrics(t *testing.T) {
	common.PromCounters[common.RewardDistributedTotal].WithLabelValues("daily").Inc()
	common.PromHistograms[common.HTTPRequestDurationSeconds].WithLabelValues("GET", "200").Observe(0.01)

	server := httptest.NewServer(NewHandler(NewRegistry()))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `reward_distributed_total{quest_type="daily"}`)
	require.Contains(t, string(body), "http_request_duration_seconds_bucket")
	require.Contains(t, string(body), "go_goroutines")
}
