package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is how long a notice stays up before it dismisses itself.
const DefaultTTL = 5 * time.Second

// Board holds the single notice currently on screen. A newer notice replaces
// the older one, and each notice clears itself after the TTL unless it has
// been replaced by then.
type Board struct {
	mu      sync.Mutex
	ttl     time.Duration
	sink    Notifier
	current *Notice
	seq     uint64
	timer   *time.Timer
	now     func() time.Time
}

// NewBoard returns a board whose notices last ttl. sink, if set, receives
// every notice as it is posted.
func NewBoard(ttl time.Duration, sink Notifier) *Board {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Board{
		ttl:  ttl,
		sink: sink,
		now:  time.Now,
	}
}

func (b *Board) Post(ctx context.Context, level Level, msg string) {
	b.mu.Lock()

	n := Notice{Level: level, Message: msg, PostedAt: b.now()}
	b.current = &n
	b.seq++
	seq := b.seq

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.ttl, func() { b.expire(seq) })

	b.mu.Unlock()

	if b.sink != nil {
		if err := b.sink.Notify(ctx, n); err != nil {
			slog.Default().WarnContext(ctx, "notice.deliver_failed", "err", err)
		}
	}
}

// Current returns the notice on screen, if any.
func (b *Board) Current() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return Notice{}, false
	}
	return *b.current, true
}

// Dismiss clears the board now and cancels the pending auto-dismiss.
func (b *Board) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = nil
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// expire clears the board only if no newer notice was posted since seq.
func (b *Board) expire(seq uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.seq == seq {
		b.current = nil
	}
}
