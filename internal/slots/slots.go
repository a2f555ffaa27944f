// Package slots tracks per-finger contact state for a fixed number of
// simultaneous touches.
package slots

// MaxFingers is the number of simultaneous contacts that can be tracked.
const MaxFingers = 10

// Point is a surface coordinate in device pixels.
type Point struct {
	X, Y float32
}

// NoPoint marks a slot with no prior point to continue a line from.
var NoPoint = Point{X: -1, Y: -1}

// Valid reports whether p holds a real coordinate.
func (p Point) Valid() bool { return p != NoPoint }

// Slot is the tracking record for one contact index.
type Slot struct {
	Down bool
	Last Point
}

// Hooks are invoked by the Tracker on contact transitions. Nil hooks are
// skipped.
type Hooks struct {
	// FirstDown runs on the transition from zero to one active contact.
	FirstDown func()
	// Moved runs for every accepted move. prev is NoPoint when the slot has
	// no earlier point.
	Moved func(slot int, prev, next Point)
	// LastUp runs on the transition to zero active contacts.
	LastUp func()
}

// Tracker is a fixed arena of slot records. It is not safe for concurrent
// use; callers serialise access on their event loop.
type Tracker struct {
	slots  [MaxFingers]Slot
	active int
	hooks  Hooks
}

// New returns a Tracker with every slot up.
func New(h Hooks) *Tracker {
	t := &Tracker{hooks: h}
	for i := range t.slots {
		t.slots[i].Last = NoPoint
	}
	return t
}

func inRange(slot int) bool { return slot >= 0 && slot < MaxFingers }

// Begin marks slot as down. Out of range or already down slots are ignored.
func (t *Tracker) Begin(slot int) {
	if !inRange(slot) || t.slots[slot].Down {
		return
	}
	t.slots[slot] = Slot{Down: true, Last: NoPoint}
	t.active++
	if t.active == 1 && t.hooks.FirstDown != nil {
		t.hooks.FirstDown()
	}
}

// Move records a new position for a down slot and reports the segment
// through the Moved hook. Moves for slots that are not down are dropped and
// Move returns false.
func (t *Tracker) Move(slot int, p Point) bool {
	if !inRange(slot) || !t.slots[slot].Down {
		return false
	}
	prev := t.slots[slot].Last
	if t.hooks.Moved != nil {
		t.hooks.Moved(slot, prev, p)
	}
	t.slots[slot].Last = p
	return true
}

// End releases slot. It is a no-op unless the slot is down.
func (t *Tracker) End(slot int) {
	if !inRange(slot) || !t.slots[slot].Down {
		return
	}
	t.slots[slot] = Slot{Last: NoPoint}
	t.active--
	if t.active == 0 && t.hooks.LastUp != nil {
		t.hooks.LastUp()
	}
}

// EndAll releases every slot.
func (t *Tracker) EndAll() {
	for i := range t.slots {
		t.End(i)
	}
}

// ResetPoints forgets every slot's last point without changing which slots
// are down. The next move on a down slot starts a fresh line.
func (t *Tracker) ResetPoints() {
	for i := range t.slots {
		t.slots[i].Last = NoPoint
	}
}

// Active returns the number of slots currently down.
func (t *Tracker) Active() int { return t.active }

// Slot returns a copy of the record at index i. Out of range indices return
// an up slot.
func (t *Tracker) Slot(i int) Slot {
	if !inRange(i) {
		return Slot{Last: NoPoint}
	}
	return t.slots[i]
}

// Points returns the last point of every slot that has one, in slot order.
func (t *Tracker) Points() []Point {
	var pts []Point
	for _, s := range t.slots {
		if s.Last.Valid() {
			pts = append(pts, s.Last)
		}
	}
	return pts
}
