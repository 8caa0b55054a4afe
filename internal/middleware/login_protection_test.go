// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// testLoginProtection returns an instance with a controllable clock.
func testLoginProtection(t *testing.T, maxAttempts int, lockout, window time.Duration) (*LoginProtection, *time.Time) {
	t.Helper()
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       10,
		IPBurst:           100,
		MaxFailedAttempts: maxAttempts,
		LockoutDuration:   lockout,
		AttemptWindow:     window,
	})
	t.Cleanup(lp.Stop)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lp.now = func() time.Time { return now }
	return lp, &now
}

func TestNewLoginProtectionDefaultValues(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{})
	defer lp.Stop()

	def := DefaultLoginProtectionConfig()
	if lp.maxFailedAttempts != def.MaxFailedAttempts {
		t.Errorf("maxFailedAttempts = %d, want %d", lp.maxFailedAttempts, def.MaxFailedAttempts)
	}
	if lp.lockoutDuration != def.LockoutDuration {
		t.Errorf("lockoutDuration = %v, want %v", lp.lockoutDuration, def.LockoutDuration)
	}
}

func TestLoginProtection_LockoutAfterMaxAttempts(t *testing.T) {
	lp, _ := testLoginProtection(t, 3, time.Minute, time.Hour)

	for i := 1; i < 3; i++ {
		if locked, _ := lp.RecordFailedAttempt("Ada"); locked {
			t.Fatalf("locked after %d attempts", i)
		}
	}
	if got := lp.RemainingAttempts("ada"); got != 1 {
		t.Errorf("RemainingAttempts = %d, want 1", got)
	}

	locked, d := lp.RecordFailedAttempt("ada")
	if !locked || d != time.Minute {
		t.Fatalf("RecordFailedAttempt = %v, %v; want locked for 1m", locked, d)
	}
	if locked, _ := lp.IsLocked(" ADA "); !locked {
		t.Error("username lookup should be case-insensitive")
	}
}

func TestLoginProtection_LockoutExpiresAndDoubles(t *testing.T) {
	lp, now := testLoginProtection(t, 2, time.Minute, time.Hour)

	lp.RecordFailedAttempt("ada")
	lp.RecordFailedAttempt("ada")

	*now = now.Add(2 * time.Minute)
	if locked, _ := lp.IsLocked("ada"); locked {
		t.Fatal("lockout should have expired")
	}

	lp.RecordFailedAttempt("ada")
	_, d := lp.RecordFailedAttempt("ada")
	if d != 2*time.Minute {
		t.Errorf("second lockout = %v, want 2m", d)
	}
}

func TestLoginProtection_WindowReset(t *testing.T) {
	lp, now := testLoginProtection(t, 2, time.Minute, 10*time.Minute)

	lp.RecordFailedAttempt("ada")
	*now = now.Add(11 * time.Minute)

	if locked, _ := lp.RecordFailedAttempt("ada"); locked {
		t.Error("attempt outside window should reset the counter")
	}
}

func TestLoginProtection_SuccessClears(t *testing.T) {
	lp, _ := testLoginProtection(t, 3, time.Minute, time.Hour)

	lp.RecordFailedAttempt("ada")
	lp.RecordSuccessfulLogin("ada")

	if got := lp.RemainingAttempts("ada"); got != 3 {
		t.Errorf("RemainingAttempts = %d, want 3", got)
	}
}

func TestLoginProtection_CleanupStaleEntries(t *testing.T) {
	lp, now := testLoginProtection(t, 3, time.Minute, time.Minute)

	lp.RecordFailedAttempt("ada")
	*now = now.Add(5 * time.Minute)
	lp.cleanupStaleEntries()

	lp.attemptsMu.RLock()
	n := len(lp.failedAttempts)
	lp.attemptsMu.RUnlock()
	if n != 0 {
		t.Errorf("stale entries = %d, want 0", n)
	}
}

func TestLoginProtection_ConcurrentRecordAndCheck(t *testing.T) {
	lp, _ := testLoginProtection(t, 3, time.Minute, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			lp.RecordFailedAttempt("bob")
		}()
		go func() {
			defer wg.Done()
			lp.IsLocked("bob")
		}()
		go func() {
			defer wg.Done()
			lp.RemainingAttempts("bob")
		}()
	}
	wg.Wait()

	if locked, _ := lp.IsLocked("bob"); !locked {
		t.Error("expected bob to be locked after 50 failures")
	}
}

func TestLoginProtection_Middleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.001, IPBurst: 1})
	defer lp.Stop()

	h := lp.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	post := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := post("/admin/login"); rec.Code != http.StatusOK {
		t.Fatalf("first POST = %d, want 200", rec.Code)
	}
	rec := post("/api/admin/login")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second POST = %d, want 429", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("API rate limit Content-Type = %q, want JSON", ct)
	}

	// GET is never limited.
	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET = %d, want 200", rec.Code)
	}
}

func TestClientRateLimiter(t *testing.T) {
	l := NewClientRateLimiter(0.001, 2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/api/collaborate", nil)
		req.RemoteAddr = "198.51.100.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}

	// Another client has its own budget.
	req := httptest.NewRequest(http.MethodPost, "/api/collaborate", nil)
	req.RemoteAddr = "198.51.100.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client = %d, want 200", rec.Code)
	}
}
