package network

import (
	"sync"
	"time"

	"ascent/internal/climb"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const DefaultStaleAfter = 500 * time.Millisecond

// HandFeed holds the latest tracking frame. Read pumps write it and the
// simulation samples it once per tick. A feed that has not heard from the
// tracker for StaleAfter reports both hands as open.
type HandFeed struct {
	StaleAfter time.Duration

	mu      sync.Mutex
	samples [2]climb.HandSample
	seq     uint64
	frames  uint64
	updated time.Time
	now     func() time.Time
}

func NewHandFeed(staleAfter time.Duration) *HandFeed {
	return &HandFeed{StaleAfter: staleAfter, now: time.Now}
}

// Update stores a frame. It reports false when the frame is out of order.
func (f *HandFeed) Update(p HandsPayload) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p.Seq != 0 && p.Seq <= f.seq {
		return false
	}
	if p.Seq != 0 {
		f.seq = p.Seq
	}
	f.samples[climb.Left] = toSample(p.Left)
	f.samples[climb.Right] = toSample(p.Right)
	f.frames++
	f.updated = f.now()
	return true
}

func toSample(in HandInput) climb.HandSample {
	return climb.HandSample{
		Position: rl.Vector3{X: in.Position[0], Y: in.Position[1], Z: in.Position[2]},
		Gripping: in.Grip,
	}
}

// Sample implements climb.HandProvider.
func (f *HandFeed) Sample(side climb.Side) climb.HandSample {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.samples[side]
	if f.stale() {
		s.Gripping = false
	}
	return s
}

func (f *HandFeed) stale() bool {
	if f.updated.IsZero() {
		return true
	}
	return f.StaleAfter > 0 && f.now().Sub(f.updated) > f.StaleAfter
}

// Frames returns how many frames were accepted.
func (f *HandFeed) Frames() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}
