// Copyright (c) 2026 The Quorix developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopDefault(t *testing.T) {
	// before initialization everything is a harmless no-op
	Counter("noop_counter").Add(1)
	CounterVec("noop_counter_vec", []string{"op"}).AddWithLabel(1, map[string]string{"op": "x"})
	Gauge("noop_gauge").Set(42)
}

func TestLazyLoad(t *testing.T) {
	calls := 0
	load := LazyLoad(func() int {
		calls++
		return 7
	})

	assert.Equal(t, 7, load())
	assert.Equal(t, 7, load())
	assert.Equal(t, 1, calls)
}

func TestPrometheusMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	// repeated initialization keeps the existing instance
	InitializePrometheusMetrics()

	Counter("test_count").Add(3)
	CounterVec("test_count_vec", []string{"op"}).AddWithLabel(2, map[string]string{"op": "create"})
	g := Gauge("test_gauge")
	g.Set(10)
	g.Add(-4)

	// getting the same meter twice returns the same instance
	assert.Equal(t, Counter("test_count"), Counter("test_count"))

	rec := httptest.NewRecorder()
	HTTPHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	out := string(body)

	assert.True(t, strings.Contains(out, "quorix_metrics_test_count 3"))
	assert.True(t, strings.Contains(out, `quorix_metrics_test_count_vec{op="create"} 2`))
	assert.True(t, strings.Contains(out, "quorix_metrics_test_gauge 6"))
}
