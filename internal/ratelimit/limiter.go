package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"lyricist/internal/logging"
)

// DefaultBurstWindow is the grace period after a recorded call during which a
// burst-eligible acquisition proceeds without waiting.
const DefaultBurstWindow = 2500 * time.Millisecond

const lockRetryDelay = 25 * time.Millisecond

// Limiter spaces resolver calls at least interval apart across processes.
type Limiter struct {
	interval    time.Duration
	burstWindow time.Duration
	lockPath    string
	logger      *slog.Logger
	clock       func() time.Time
	sleep       func(context.Context, time.Duration) error
}

// Option customizes a Limiter.
type Option func(*Limiter)

// WithBurstWindow overrides DefaultBurstWindow. Negative values become zero.
func WithBurstWindow(window time.Duration) Option {
	return func(l *Limiter) {
		l.burstWindow = max(window, 0)
	}
}

// WithLockPath overrides DefaultLockPath.
func WithLockPath(path string) Option {
	return func(l *Limiter) {
		if strings.TrimSpace(path) != "" {
			l.lockPath = path
		}
	}
}

// WithLogger sets the logger used for fail-open diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		l.logger = logging.NewComponentLogger(logger, "ratelimit")
	}
}

// WithClock overrides the wall clock.
func WithClock(clock func() time.Time) Option {
	return func(l *Limiter) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithSleep overrides how the limiter waits.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(l *Limiter) {
		if sleep != nil {
			l.sleep = sleep
		}
	}
}

// New builds a limiter. A non-positive interval disables limiting.
func New(interval time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		interval:    max(interval, 0),
		burstWindow: DefaultBurstWindow,
		logger:      logging.NewComponentLogger(nil, "ratelimit"),
		clock:       time.Now,
		sleep:       SleepWithContext,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.lockPath == "" {
		l.lockPath = DefaultLockPath()
	}
	return l
}

// Interval returns the minimum spacing between non-burst calls.
func (l *Limiter) Interval() time.Duration { return l.interval }

// BurstWindow returns the burst grace period.
func (l *Limiter) BurstWindow() time.Duration { return l.burstWindow }

// LockPath returns the shared lock file.
func (l *Limiter) LockPath() string { return l.lockPath }

// Acquire blocks until a resolver call is permitted and returns how long it
// waited. It never fails: lock or file errors let the call through, and a
// cancelled context cuts the wait short.
func (l *Limiter) Acquire(ctx context.Context, burstEligible bool) time.Duration {
	if l == nil || l.interval == 0 {
		return 0
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if dir := filepath.Dir(l.lockPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			l.failOpen("create lock directory", err)
			return 0
		}
	}

	lock := flock.New(l.lockPath)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		if err == nil {
			err = errors.New("lock not acquired")
		}
		l.failOpen("lock rate file", err)
		return 0
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			l.failOpen("unlock rate file", err)
		}
	}()

	file, err := os.OpenFile(l.lockPath, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		l.failOpen("open rate file", err)
		return 0
	}
	defer file.Close()

	last := readTimestamp(file)
	now := l.clock().UnixMilli()
	since := now - last
	if burstEligible && last > 0 && since >= 0 && since <= l.burstWindow.Milliseconds() {
		l.logger.Debug("burst call permitted",
			logging.Int64("since_ms", since),
			logging.Duration("burst_window", l.burstWindow),
		)
		return 0
	}

	var waited time.Duration
	if wait := time.Duration(last+l.interval.Milliseconds()-now) * time.Millisecond; wait > 0 {
		start := l.clock()
		if err := l.sleep(ctx, wait); err != nil {
			l.logger.Debug("rate wait interrupted", logging.Error(err))
		}
		waited = l.clock().Sub(start)
		now = l.clock().UnixMilli()
	}

	if err := writeTimestamp(file, now); err != nil {
		l.failOpen("record rate timestamp", err)
	}
	return waited
}

// LastTimestamp returns the recorded time of the last permitted call in epoch
// milliseconds, or zero when none is recorded or the file is corrupt.
func (l *Limiter) LastTimestamp() (int64, error) {
	file, err := os.Open(l.lockPath)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("open rate file: %w", err)
	}
	defer file.Close()
	return readTimestamp(file), nil
}

func (l *Limiter) failOpen(action string, err error) {
	l.logger.Debug("rate limiter failing open",
		logging.String("action", action),
		logging.String("lock_path", l.lockPath),
		logging.Error(err),
	)
}

// readTimestamp treats empty, oversized, unreadable, and non-numeric content
// as no prior timestamp.
func readTimestamp(r io.Reader) int64 {
	buf, err := io.ReadAll(io.LimitReader(r, maxTimestampLength+1))
	if err != nil || len(buf) == 0 || len(buf) > maxTimestampLength {
		return 0
	}
	value, err := strconv.ParseInt(strings.TrimSpace(string(buf)), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

func writeTimestamp(file *os.File, millis int64) error {
	if err := file.Truncate(0); err != nil {
		return err
	}
	_, err := file.WriteAt([]byte(strconv.FormatInt(millis, 10)), 0)
	return err
}
