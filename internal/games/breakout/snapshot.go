package breakout

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/tui-breakout/internal/ecs"
)

// PaddleState is one paddle-like entity in a snapshot.
type PaddleState struct {
	X, Y float64
	Role ecs.Role
}

// BallState is one ball in a snapshot.
type BallState struct {
	X, Y   float64
	VX, VY float64
}

// Snapshot is the simulation-relevant state of a world, in store order.
type Snapshot struct {
	Tick       uint64
	Paddles    []PaddleState
	Balls      []BallState
	BricksLeft int
}

// TakeSnapshot captures the world after tick steps.
func TakeSnapshot(w *ecs.World, tick uint64) Snapshot {
	snap := Snapshot{Tick: tick}
	for e := range w.Query(ecs.MaskPaddle | ecs.MaskTransform) {
		p, _ := w.Paddle(e)
		t, _ := w.Transform(e)
		snap.Paddles = append(snap.Paddles, PaddleState{X: t.X, Y: t.Y, Role: p.Role})
		if p.Role == ecs.RoleBrick {
			snap.BricksLeft++
		}
	}
	for e := range w.Query(ecs.MaskBall | ecs.MaskTransform) {
		b, _ := w.Ball(e)
		t, _ := w.Transform(e)
		snap.Balls = append(snap.Balls, BallState{X: t.X, Y: t.Y, VX: b.VX, VY: b.VY})
	}
	return snap
}

// Hash returns an xxhash digest of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	putF := func(f float64) { put(math.Float64bits(f)) }

	put(snap.Tick)
	put(uint64(len(snap.Paddles)))
	for _, p := range snap.Paddles {
		putF(p.X)
		putF(p.Y)
		put(uint64(p.Role)) //#nosec G115 -- hash computation
	}
	put(uint64(len(snap.Balls)))
	for _, b := range snap.Balls {
		putF(b.X)
		putF(b.Y)
		putF(b.VX)
		putF(b.VY)
	}
	put(uint64(snap.BricksLeft)) //#nosec G115 -- hash computation
	return d.Sum64()
}
