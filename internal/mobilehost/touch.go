// Package mobilehost runs the paint view as a gomobile app on Android and
// iOS.
package mobilehost

import (
	"golang.org/x/mobile/event/touch"

	"github.com/example/touchpaint/internal/paintview"
	"github.com/example/touchpaint/internal/slots"
)

// touchInput maps touch sequences to view slots.
type touchInput struct {
	ids slots.IDMap
}

func (t *touchInput) handle(v *paintview.View, e touch.Event) {
	id := int64(e.Sequence)
	switch e.Type {
	case touch.TypeBegin:
		slot, ok := t.ids.Acquire(id)
		if !ok {
			return
		}
		v.OnContactBegin(slot)
		v.OnContactMove(slot, e.X, e.Y)
	case touch.TypeMove:
		if slot, ok := t.ids.Lookup(id); ok {
			v.OnContactMove(slot, e.X, e.Y)
		}
	case touch.TypeEnd:
		if slot, ok := t.ids.Release(id); ok {
			v.OnContactEnd(slot)
		}
	}
}

// cancel drops every sequence, as when the app leaves the foreground.
func (t *touchInput) cancel(v *paintview.View) {
	if len(t.ids.Bound()) == 0 {
		return
	}
	t.ids.Reset()
	v.OnAllContactsCanceled()
}
