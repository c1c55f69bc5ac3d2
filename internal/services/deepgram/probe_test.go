package deepgram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func probeWithStatus(t *testing.T, status int) *ProbeResult {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Token test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.WriteHeader(status)
	}))
	defer server.Close()

	prober := NewProber(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	return prober.ProbeKey(context.Background(), "test-key")
}

func TestProbeKeyStatusMapping(t *testing.T) {
	cases := []struct {
		status  int
		valid   bool
		balance bool
	}{
		{http.StatusBadRequest, true, false},
		{http.StatusUnauthorized, false, false},
		{http.StatusPaymentRequired, false, true},
		{http.StatusOK, true, false},
		{http.StatusInternalServerError, false, false},
	}
	for _, tc := range cases {
		result := probeWithStatus(t, tc.status)
		if result.Valid != tc.valid {
			t.Errorf("status %d: Valid = %v, want %v (error %q)", tc.status, result.Valid, tc.valid, result.Error)
		}
		if result.BalanceWarning != tc.balance {
			t.Errorf("status %d: BalanceWarning = %v, want %v", tc.status, result.BalanceWarning, tc.balance)
		}
	}
}

func TestProbeKeyEmptyKey(t *testing.T) {
	result := NewProber().ProbeKey(context.Background(), "  ")
	if result.Valid {
		t.Fatal("empty key must be invalid")
	}
	if result.Error == "" {
		t.Fatal("empty key must carry an error message")
	}
}

func TestProbeKeyNetworkError(t *testing.T) {
	prober := NewProber(WithBaseURL("http://127.0.0.1:1"))
	result := prober.ProbeKey(context.Background(), "test-key")
	if result.Valid {
		t.Fatal("unreachable endpoint must be invalid")
	}
	if result.Error == "" {
		t.Fatal("unreachable endpoint must carry an error message")
	}
}
