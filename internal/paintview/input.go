package paintview

import (
	"log"

	"github.com/example/touchpaint/internal/slots"
)

// PointerSamples carries the positions delivered for one contact in a move
// batch. History holds the older coalesced samples, oldest first.
type PointerSamples struct {
	Slot    int
	History []slots.Point
	Current slots.Point
}

// MoveBatch is every contact's motion from one platform move event.
type MoveBatch []PointerSamples

// OnContactBegin marks slot as down.
func (v *View) OnContactBegin(slot int) {
	v.tracker.Begin(slot)
	v.invalidate()
}

// OnContactMove delivers a single new position for slot.
func (v *View) OnContactMove(slot int, x, y float32) {
	v.OnMoveBatch(MoveBatch{{Slot: slot, Current: slots.Point{X: x, Y: y}}})
}

// OnMoveBatch applies a move batch. Historical samples are applied in time
// order across all contacts, then the current samples, then one redraw is
// requested. Samples for contacts that are not down do not count toward the
// touch rate.
func (v *View) OnMoveBatch(b MoveBatch) {
	accepted := 0
	depth := 0
	for _, p := range b {
		if len(p.History) > depth {
			depth = len(p.History)
		}
	}
	for h := 0; h < depth; h++ {
		for _, p := range b {
			if h < len(p.History) {
				if v.tracker.Move(p.Slot, p.History[h]) {
					accepted++
				}
			}
		}
	}
	for _, p := range b {
		if v.tracker.Move(p.Slot, p.Current) {
			accepted++
		}
	}
	if accepted > 0 {
		v.sampler.Record(accepted)
	}
	v.invalidate()
}

// OnContactEnd releases slot.
func (v *View) OnContactEnd(slot int) {
	v.tracker.End(slot)
	v.invalidate()
}

// OnAllContactsCanceled releases every slot.
func (v *View) OnAllContactsCanceled() {
	v.tracker.EndAll()
	v.invalidate()
}

func (v *View) firstDown() {
	switch v.mode {
	case ModePaint:
		if v.policy > 0 {
			v.clearDelay.Cancel()
		} else if v.policy == ClearOnNextStroke {
			v.clearCanvas()
		}
	case ModeFill:
		v.clearDelay.Cancel()
		v.fillDown = true
	}
	v.sampler.Kick()
}

func (v *View) moved(_ int, prev, next slots.Point) {
	if v.mode != ModePaint || v.surf == nil {
		return
	}
	var err error
	if prev.Valid() {
		err = v.surf.Line(prev, next, v.brushPx, v.palette.Brush)
	} else {
		err = v.surf.Dot(next, v.brushPx, v.palette.Brush)
	}
	if err != nil {
		log.Printf("paint: %v", err)
	}
}

func (v *View) lastUp() {
	switch v.mode {
	case ModePaint:
		if v.policy > 0 {
			v.clearDelay.Schedule(v.policy.Delay())
		}
	case ModeFill:
		v.clearDelay.Schedule(fillClearDelay)
	}
	v.sampler.Stop()
}
