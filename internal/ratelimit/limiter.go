// Package ratelimit throttles verification-code emails and admin logins.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	// Verification code sends
	SendCooldown     time.Duration // Minimum time between sends to one identifier
	SendMaxPerHour   int           // Per identifier
	SendMaxIPPerHour int

	// Login and code attempts
	LoginMaxFailures  int           // Failures before the identifier is locked
	LoginLockout      time.Duration // How long a locked identifier waits
	LoginMaxIPPerHour int

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		SendCooldown:      60 * time.Second,
		SendMaxPerHour:    5,
		SendMaxIPPerHour:  20,
		LoginMaxFailures:  5,
		LoginLockout:      15 * time.Minute,
		LoginMaxIPPerHour: 50,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string // For logging
}

func allowed() LimitResult { return LimitResult{Allowed: true} }

func denied(retryAfter time.Duration, reason string) LimitResult {
	return LimitResult{RetryAfter: retryAfter, Reason: reason}
}

// window counts events inside a rolling hour.
type window struct {
	count    int
	firstAt  time.Time
	lastAt   time.Time
	lockedAt time.Time
}

func (w *window) expired(now time.Time) bool {
	return now.Sub(w.firstAt) >= time.Hour
}

func (w *window) full(now time.Time, max int) (bool, time.Duration) {
	if w.expired(now) || w.count < max {
		return false, 0
	}
	return true, time.Hour - now.Sub(w.firstAt)
}

// hit records one event, restarting the window once it has expired.
func hit(store map[string]*window, key string, now time.Time) *window {
	w := store[key]
	if w == nil || w.expired(now) {
		w = &window{firstAt: now}
		store[key] = w
	}
	w.count++
	w.lastAt = now
	return w
}

// Limiter applies per-identifier and per-IP limits. Keys are hashed so raw
// emails never sit in memory longer than a request.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.RWMutex

	sends    map[string]*window
	logins   map[string]*window
	ipHourly map[string]*window

	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:        cfg,
		clock:         clock,
		sends:         make(map[string]*window),
		logins:        make(map[string]*window),
		ipHourly:      make(map[string]*window),
		cleanupCtx:    ctx,
		cleanupCancel: cancel,
	}
}

// Close stops the cleanup goroutine.
func (l *Limiter) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// CheckCodeSend reports whether a verification code may be emailed. It does
// not record anything; call RecordCodeSend once the code is issued.
func (l *Limiter) CheckCodeSend(identifier, ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()

	l.mu.RLock()
	defer l.mu.RUnlock()

	if w := l.sends[hashKey("send:id:", normalizeIdentifier(identifier))]; w != nil {
		if elapsed := now.Sub(w.lastAt); elapsed < l.config.SendCooldown {
			return denied(l.config.SendCooldown-elapsed, "cooldown")
		}
		if full, retry := w.full(now, l.config.SendMaxPerHour); full {
			return denied(retry, "hourly_limit")
		}
	}
	if w := l.ipHourly[hashKey("send:ip:", ip)]; w != nil {
		if full, retry := w.full(now, l.config.SendMaxIPPerHour); full {
			return denied(retry, "ip_hourly_limit")
		}
	}
	return allowed()
}

func (l *Limiter) RecordCodeSend(identifier, ip string) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	hit(l.sends, hashKey("send:id:", normalizeIdentifier(identifier)), now)
	hit(l.ipHourly, hashKey("send:ip:", ip), now)
}

// CheckLogin reports whether a password or code attempt may proceed.
func (l *Limiter) CheckLogin(identifier, ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()

	l.mu.RLock()
	defer l.mu.RUnlock()

	if w := l.logins[hashKey("login:id:", normalizeIdentifier(identifier))]; w != nil {
		if !w.lockedAt.IsZero() {
			if elapsed := now.Sub(w.lockedAt); elapsed < l.config.LoginLockout {
				return denied(l.config.LoginLockout-elapsed, "lockout")
			}
		}
	}
	if w := l.ipHourly[hashKey("login:ip:", ip)]; w != nil {
		if full, retry := w.full(now, l.config.LoginMaxIPPerHour); full {
			return denied(retry, "ip_hourly_limit")
		}
	}
	return allowed()
}

// RecordLoginFailure counts a failed attempt and reports whether it locked
// the identifier.
func (l *Limiter) RecordLoginFailure(identifier, ip string) (lockedOut bool) {
	now := l.clock.Now()
	key := hashKey("login:id:", normalizeIdentifier(identifier))

	l.mu.Lock()
	defer l.mu.Unlock()

	hit(l.ipHourly, hashKey("login:ip:", ip), now)

	w := l.logins[key]
	if w != nil && !w.lockedAt.IsZero() && now.Sub(w.lockedAt) >= l.config.LoginLockout {
		delete(l.logins, key)
	}
	w = hit(l.logins, key, now)
	if w.count >= l.config.LoginMaxFailures && w.lockedAt.IsZero() {
		w.lockedAt = now
		return true
	}
	return false
}

// RecordLoginSuccess clears the failure counter for identifier. The per-IP
// window keeps counting.
func (l *Limiter) RecordLoginSuccess(identifier, ip string) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.logins, hashKey("login:id:", normalizeIdentifier(identifier)))
	hit(l.ipHourly, hashKey("login:ip:", ip), now)
}

func hashKey(prefix, value string) string {
	hash := sha256.Sum256([]byte(value))
	return prefix + hex.EncodeToString(hash[:8])
}

func normalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	prune := func(store map[string]*window, maxAge time.Duration) {
		for k, w := range store {
			if now.Sub(w.lastAt) > maxAge {
				delete(store, k)
			}
		}
	}
	prune(l.sends, time.Hour)
	prune(l.ipHourly, time.Hour)
	prune(l.logins, l.config.LoginLockout+time.Hour)
}

// SanitizeIdentifier masks an identifier for logging.
func SanitizeIdentifier(identifier string) string {
	identifier = normalizeIdentifier(identifier)
	if local, domain, ok := strings.Cut(identifier, "@"); ok {
		if len(local) > 2 {
			return local[:2] + "***@" + domain
		}
		return "***@" + domain
	}
	if len(identifier) >= 4 {
		return "***" + identifier[len(identifier)-4:]
	}
	return "***"
}

// LogRateLimitExceeded logs a rate limit event with a sanitized identifier.
func LogRateLimitExceeded(limitType, identifier, ip, reason string) {
	log.Warn().
		Str("event", "rate_limit_exceeded").
		Str("type", limitType).
		Str("identifier", SanitizeIdentifier(identifier)).
		Str("ip", ip).
		Str("reason", reason).
		Msg("Auth rate limit exceeded")
}
