package ebitenhost

import (
	"github.com/example/touchpaint/internal/paintview"
	"github.com/example/touchpaint/internal/slots"
)

// mouseID is the contact identifier used for the left mouse button. Ebiten
// touch IDs are never negative.
const mouseID int64 = -1

// contact is one pointer position sampled this tick.
type contact struct {
	ID   int64
	X, Y float32
}

// touchInput diffs the contacts present each tick against the previous
// tick and feeds the view begin, move batch and end events.
type touchInput struct {
	ids  slots.IDMap
	last map[int64]slots.Point
}

func (t *touchInput) update(v *paintview.View, present []contact) {
	if t.last == nil {
		t.last = map[int64]slots.Point{}
	}
	seen := make(map[int64]bool, len(present))
	var batch paintview.MoveBatch
	for _, c := range present {
		seen[c.ID] = true
		p := slots.Point{X: c.X, Y: c.Y}
		slot, ok := t.ids.Lookup(c.ID)
		if !ok {
			if slot, ok = t.ids.Acquire(c.ID); !ok {
				continue
			}
			v.OnContactBegin(slot)
		} else if t.last[c.ID] == p {
			continue
		}
		t.last[c.ID] = p
		batch = append(batch, paintview.PointerSamples{Slot: slot, Current: p})
	}
	if len(batch) > 0 {
		v.OnMoveBatch(batch)
	}
	for _, id := range t.ids.Bound() {
		if seen[id] {
			continue
		}
		if slot, ok := t.ids.Release(id); ok {
			delete(t.last, id)
			v.OnContactEnd(slot)
		}
	}
}

// cancel drops every contact, as when the window loses focus.
func (t *touchInput) cancel(v *paintview.View) {
	if len(t.ids.Bound()) == 0 {
		return
	}
	t.ids.Reset()
	t.last = nil
	v.OnAllContactsCanceled()
}
