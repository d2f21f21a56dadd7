package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"e2pred/app"
	"e2pred/domain/empirical"
	"e2pred/internal"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	service := app.NewAnalysisService(internal.NewLogger(internal.LogLevelError), empirical.Config{
		NBootstrap: 50,
		CILevel:    0.95,
		Seed:       42,
		Workers:    2,
	})
	ts := httptest.NewServer(NewServer(service, internal.NewLogger(internal.LogLevelError)).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestParametricBinaryEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/v1/parametric/binary", map[string]interface{}{
		"cohens_d":       0.8,
		"base_rate":      0.1,
		"threshold_prob": 0.2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, body["run_id"])

	record, ok := body["record"].(map[string]interface{})
	require.True(t, ok, "record missing: %v", body)
	require.InDelta(t, 0.714, record["roc_auc"], 0.001)
	require.InDelta(t, 4.27, record["odds_ratio"], 0.01)
}

func TestParametricBinaryRejectsBadDomain(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/v1/parametric/binary", map[string]interface{}{
		"cohens_d":  0.8,
		"base_rate": 1.5,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "INVALID_DOMAIN", body["code"])
}

func TestParametricBinaryRejectsExplicitZeroes(t *testing.T) {
	ts := newTestServer(t)

	// Omitted optional fields take the defaults, but an explicit zero is an
	// out-of-domain value, not a request for the default.
	resp, body := postJSON(t, ts.URL+"/v1/parametric/binary", map[string]interface{}{
		"cohens_d":  0.8,
		"base_rate": 0.1,
		"icc1":      0,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "INVALID_DOMAIN", body["code"])

	resp, body = postJSON(t, ts.URL+"/v1/parametric/binary", map[string]interface{}{
		"cohens_d":       0.8,
		"base_rate":      0.1,
		"threshold_prob": 0,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "INVALID_DOMAIN", body["code"])

	resp, body = postJSON(t, ts.URL+"/v1/parametric/continuous", map[string]interface{}{
		"pearson_r":     0.5,
		"base_rate":     0.2,
		"reliability_x": 0,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "INVALID_DOMAIN", body["code"])
}

func TestParametricBinaryRejectsMalformedJSON(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/parametric/binary", "application/json", bytes.NewReader([]byte("{nope")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEmpiricalBinaryEndpoint(t *testing.T) {
	ts := newTestServer(t)

	group1 := []float64{-0.3, 0.1, -1.2, 0.5, -0.8, 0.2, -0.1, 0.9, -0.5, 0.3}
	group2 := []float64{0.9, 1.4, 0.3, 2.1, 1.0, 0.7, 1.8, 1.2, 0.4, 1.6}

	resp, body := postJSON(t, ts.URL+"/v1/empirical/binary", map[string]interface{}{
		"group1":         group1,
		"group2":         group2,
		"base_rate":      0.1,
		"threshold_prob": 0.5,
		"n_bootstrap":    50,
		"seed":           7,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	record := body["record"].(map[string]interface{})
	cohensD := record["cohens_d"].(map[string]interface{})
	require.Greater(t, cohensD["estimate"].(float64), 0.0)
	require.NotNil(t, record["roc_curve"])
}

func TestEmpiricalBinaryDeattenuatedEndpoint(t *testing.T) {
	ts := newTestServer(t)

	group1 := []float64{-0.3, 0.1, -1.2, 0.5, -0.8, 0.2, -0.1, 0.9, -0.5, 0.3}
	group2 := []float64{0.9, 1.4, 0.3, 2.1, 1.0, 0.7, 1.8, 1.2, 0.4, 1.6}

	resp, body := postJSON(t, ts.URL+"/v1/empirical/binary/deattenuated", map[string]interface{}{
		"group1":         group1,
		"group2":         group2,
		"base_rate":      0.1,
		"threshold_prob": 0.5,
		"n_bootstrap":    50,
		"seed":           7,
		"reliability_shift": map[string]interface{}{
			"r_current": 0.6,
			"r_target":  1.0,
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "record")
}

func TestEmpiricalBinaryRejectsEmptyGroup(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/v1/empirical/binary", map[string]interface{}{
		"group1":    []float64{},
		"group2":    []float64{1, 2},
		"base_rate": 0.1,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "INVALID_INPUT", body["code"])
}

func TestConvertEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/v1/convert", map[string]interface{}{
		"value": 0.8,
		"from":  "cohens_d",
		"to":    "odds_ratio",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.InDelta(t, 4.27, body["output"], 0.01)

	// Infinity crosses the wire as a string literal.
	resp, body = postJSON(t, ts.URL+"/v1/convert", map[string]interface{}{
		"value": 1.0,
		"from":  "auc",
		"to":    "cohens_d",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Infinity", body["output"])
}

func TestOptimalThresholdEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/v1/threshold/optimal", map[string]interface{}{
		"cohens_d":  0.8,
		"base_rate": 0.1,
		"metric":    "youden",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.InDelta(t, 0.4, body["threshold_value"], 1e-3)
	require.Equal(t, "youden", body["metric"])
}

func TestReliabilityAttenuationEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/v1/reliability/attenuate", map[string]interface{}{
		"cohens_d": 0.8,
		"kappa":    0.8,
		"icc":      0.64,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.InDelta(t, 0.7802, body["cohens_d_observed"], 1e-3)
	require.InDelta(t, 1.25, body["sigma_inflation"], 1e-9)
	require.NotEmpty(t, body["run_id"])

	// Omitted reliabilities mean perfect measurement, no attenuation.
	resp, body = postJSON(t, ts.URL+"/v1/reliability/attenuate", map[string]interface{}{
		"cohens_d": 0.8,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.InDelta(t, 0.8, body["cohens_d_observed"], 1e-12)

	resp, body = postJSON(t, ts.URL+"/v1/reliability/attenuate", map[string]interface{}{
		"cohens_d": 0.8,
		"kappa":    0,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "INVALID_DOMAIN", body["code"])
}

func TestEmpiricalContinuousEndpoint(t *testing.T) {
	ts := newTestServer(t)

	x := []float64{0.1, 0.5, -0.2, 1.2, 0.8, -0.5, 0.3, 1.5, -0.9, 0.6, 2.0, -1.1, 0.4, 1.1, 0.0, -0.3, 0.9, 1.8, -0.7, 0.2}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 0.6*v + 0.1*float64(i%5)
	}

	resp, body := postJSON(t, ts.URL+"/v1/empirical/continuous", map[string]interface{}{
		"x":              x,
		"y":              y,
		"base_rate":      0.25,
		"threshold_prob": 0.5,
		"n_bootstrap":    20,
		"seed":           3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "record")
}
