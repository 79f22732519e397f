package demorequest

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DemoRequestPrefix = "DR"
	ContactPrefix     = "CM"

	suffixLen = 4
	// 36^4 distinct suffixes.
	suffixSpace = 36 * 36 * 36 * 36
)

// RandomSource supplies the randomness used for identifiers and slot
// availability. *rand.Rand satisfies it; tests pass a seeded one.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// lockedRand serializes access to a RandomSource that is not goroutine safe.
type lockedRand struct {
	mu  sync.Mutex
	src RandomSource
}

// NewLockedRand wraps src for concurrent use. A nil src uses an unseeded PCG.
func NewLockedRand(src RandomSource) RandomSource {
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if _, ok := src.(*lockedRand); ok {
		return src
	}
	return &lockedRand{src: src}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// NewRequestID formats PREFIX-<base36 unix millis>-<4 base36 random chars>,
// all upper case.
func NewRequestID(prefix string, now time.Time, rnd RandomSource) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	suffix := strings.ToUpper(strconv.FormatInt(int64(rnd.IntN(suffixSpace)), 36))
	if pad := suffixLen - len(suffix); pad > 0 {
		suffix = strings.Repeat("0", pad) + suffix
	}
	return prefix + "-" + ts + "-" + suffix
}
