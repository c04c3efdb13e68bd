package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Second)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("third request within the interval passed")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("other IP throttled")
	}

	now = now.Add(time.Second)
	if !rl.Allow("1.2.3.4") {
		t.Error("bucket did not refill")
	}
}

func TestRateLimiter_ForgetsStaleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.Allow("1.2.3.4")

	now = now.Add(staleVisitor + 2*time.Minute)
	rl.Allow("5.6.7.8")
	if _, ok := rl.visitors["1.2.3.4"]; ok {
		t.Error("stale visitor kept")
	}
}

func TestRateLimit_OnlyThrottlesSubmissions(t *testing.T) {
	h := RateLimit(NewRateLimiter(1, time.Hour))(okHandler(http.StatusOK))

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", "/gallery", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %d throttled", i)
		}
	}

	codes := []int{}
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("POST", "/contact", nil))
		codes = append(codes, rr.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("POST codes = %v, want [200 429]", codes)
	}
}

func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecurityHeaders(okHandler(http.StatusOK)).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	for _, h := range []string{"Content-Security-Policy", "X-Frame-Options", "X-Content-Type-Options", "Referrer-Policy"} {
		if rr.Header().Get(h) == "" {
			t.Errorf("missing %s", h)
		}
	}
}

func TestCSRF_RejectsTokenlessPost(t *testing.T) {
	key := make([]byte, 32)
	h := CSRF(key, false, []string{"localhost:8080"})(okHandler(http.StatusOK))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/contact", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("GET status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/contact", nil))
	if rr.Code != http.StatusForbidden {
		t.Errorf("POST without token status = %d, want 403", rr.Code)
	}
}

func TestChain_LastIsOutermost(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	Chain(okHandler(http.StatusOK), mw("inner"), mw("outer")).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v", order)
	}
}
