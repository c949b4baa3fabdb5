// Package ecs is the entity store: an authoritative table of entities and the
// components attached to them.
//
// Handles are never reused, so a deleted handle stays invalid for the rest of
// the process. Deletion is immediate; the iteration order slice is compacted
// lazily by Maintain, which the frame driver calls once per tick.
package ecs

import (
	"fmt"
	"iter"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Entity is an opaque handle. The zero value is never a live entity.
type Entity uint64

// String returns a short debug form of the handle.
func (e Entity) String() string {
	return fmt.Sprintf("e%d", uint64(e))
}

type record struct {
	mask      Mask
	transform Transform
	paddle    Paddle
	ball      Ball
	sprite    Sprite
	text      Text
	camera    Camera
}

// World stores all live entities.
type World struct {
	next    Entity
	records map[Entity]*record
	order   []Entity // creation order, may contain deleted handles until Maintain
	holes   int
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		next:    1,
		records: make(map[Entity]*record),
		order:   make([]Entity, 0, 32),
	}
}

// Create adds a new entity carrying the given components.
func (w *World) Create(components ...Component) Entity {
	e := w.next
	w.next++

	r := &record{}
	for _, c := range components {
		r.set(c)
	}
	w.records[e] = r
	w.order = append(w.order, e)
	return e
}

// Delete removes the entity immediately.
// Returns core.ErrNotFound if it was already removed.
func (w *World) Delete(e Entity) error {
	if _, ok := w.records[e]; !ok {
		return fmt.Errorf("ecs: delete %s: %w", e, core.ErrNotFound)
	}
	delete(w.records, e)
	w.holes++
	return nil
}

// Alive reports whether the handle refers to a live entity.
func (w *World) Alive(e Entity) bool {
	_, ok := w.records[e]
	return ok
}

// Has reports whether the entity is alive and carries every component in m.
func (w *World) Has(e Entity, m Mask) bool {
	r, ok := w.records[e]
	return ok && r.mask&m == m
}

// Insert attaches or replaces a component on a live entity.
func (w *World) Insert(e Entity, c Component) error {
	r, ok := w.records[e]
	if !ok {
		return fmt.Errorf("ecs: insert on %s: %w", e, core.ErrNotFound)
	}
	r.set(c)
	return nil
}

// Remove detaches the components in m from a live entity.
func (w *World) Remove(e Entity, m Mask) error {
	r, ok := w.records[e]
	if !ok {
		return fmt.Errorf("ecs: remove from %s: %w", e, core.ErrNotFound)
	}
	r.mask &^= m
	return nil
}

// SetHidden adds or removes the Hidden marker.
func (w *World) SetHidden(e Entity, hidden bool) error {
	if hidden {
		return w.Insert(e, Hidden{})
	}
	return w.Remove(e, MaskHidden)
}

// Query returns a lazy sequence of live entities carrying every component in m.
// The sequence can be ranged over again; entities deleted while it is being
// consumed are skipped. Consumers must not rely on the order.
func (w *World) Query(m Mask) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		// Entities created during iteration are not visited.
		n := len(w.order)
		for i := 0; i < n && i < len(w.order); i++ {
			e := w.order[i]
			r, ok := w.records[e]
			if !ok || r.mask&m != m {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Count returns the number of live entities carrying every component in m.
func (w *World) Count(m Mask) int {
	n := 0
	for range w.Query(m) {
		n++
	}
	return n
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.records)
}

// Maintain compacts internal bookkeeping after deletions.
// It must not be called while a Query sequence is being consumed.
func (w *World) Maintain() {
	if w.holes == 0 {
		return
	}
	live := w.order[:0]
	for _, e := range w.order {
		if _, ok := w.records[e]; ok {
			live = append(live, e)
		}
	}
	clear(w.order[len(live):])
	w.order = live
	w.holes = 0
}

// Clear deletes every entity.
func (w *World) Clear() {
	clear(w.records)
	w.order = w.order[:0]
	w.holes = 0
}

// FindText returns the first live UI text with the given ID.
func (w *World) FindText(id string) (Entity, bool) {
	for e := range w.Query(MaskText) {
		if w.records[e].text.ID == id {
			return e, true
		}
	}
	return 0, false
}

// Transform returns the entity's transform for reading or writing.
func (w *World) Transform(e Entity) (*Transform, error) {
	r, err := w.lookup(e, MaskTransform, "transform")
	if err != nil {
		return nil, err
	}
	return &r.transform, nil
}

// Paddle returns the entity's paddle component.
func (w *World) Paddle(e Entity) (*Paddle, error) {
	r, err := w.lookup(e, MaskPaddle, "paddle")
	if err != nil {
		return nil, err
	}
	return &r.paddle, nil
}

// Ball returns the entity's ball component.
func (w *World) Ball(e Entity) (*Ball, error) {
	r, err := w.lookup(e, MaskBall, "ball")
	if err != nil {
		return nil, err
	}
	return &r.ball, nil
}

// Sprite returns the entity's sprite reference.
func (w *World) Sprite(e Entity) (*Sprite, error) {
	r, err := w.lookup(e, MaskSprite, "sprite")
	if err != nil {
		return nil, err
	}
	return &r.sprite, nil
}

// Text returns the entity's UI text.
func (w *World) Text(e Entity) (*Text, error) {
	r, err := w.lookup(e, MaskText, "text")
	if err != nil {
		return nil, err
	}
	return &r.text, nil
}

// Camera returns the entity's camera.
func (w *World) Camera(e Entity) (*Camera, error) {
	r, err := w.lookup(e, MaskCamera, "camera")
	if err != nil {
		return nil, err
	}
	return &r.camera, nil
}

func (w *World) lookup(e Entity, m Mask, what string) (*record, error) {
	r, ok := w.records[e]
	if !ok || r.mask&m == 0 {
		return nil, fmt.Errorf("ecs: %s of %s: %w", what, e, core.ErrNotFound)
	}
	return r, nil
}

func (r *record) set(c Component) {
	switch v := c.(type) {
	case Transform:
		r.transform = v
	case Paddle:
		r.paddle = v
	case Ball:
		r.ball = v
	case Sprite:
		r.sprite = v
	case Text:
		r.text = v
	case Camera:
		r.camera = v
	case Hidden:
	default:
		panic(fmt.Sprintf("ecs: unsupported component %T", c))
	}
	r.mask |= c.mask()
}
