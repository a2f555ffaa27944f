package mobilehost

import (
	"testing"

	"golang.org/x/mobile/event/touch"

	"github.com/example/touchpaint/internal/paintview"
)

func TestTouchSequences(t *testing.T) {
	v := paintview.New(paintview.WithMode(paintview.ModeFollow))
	if err := v.OnSurfaceResized(100, 100); err != nil {
		t.Fatal(err)
	}
	var in touchInput

	steps := []struct {
		name     string
		ev       touch.Event
		contacts int
		markers  int
	}{
		{"stray move", touch.Event{Sequence: 4, Type: touch.TypeMove, X: 1, Y: 1}, 0, 0},
		{"first finger", touch.Event{Sequence: 4, Type: touch.TypeBegin, X: 10, Y: 10}, 1, 1},
		{"second finger", touch.Event{Sequence: 8, Type: touch.TypeBegin, X: 60, Y: 60}, 2, 2},
		{"move", touch.Event{Sequence: 4, Type: touch.TypeMove, X: 12, Y: 10}, 2, 2},
		{"first lifts", touch.Event{Sequence: 4, Type: touch.TypeEnd, X: 12, Y: 10}, 1, 1},
		{"stray end", touch.Event{Sequence: 4, Type: touch.TypeEnd}, 1, 1},
	}
	for _, st := range steps {
		in.handle(v, st.ev)
		if got := v.ActiveContacts(); got != st.contacts {
			t.Fatalf("%s: contacts = %d, want %d", st.name, got, st.contacts)
		}
		if got := len(v.Frame().Markers); got != st.markers {
			t.Fatalf("%s: markers = %d, want %d", st.name, got, st.markers)
		}
	}

	in.cancel(v)
	if v.ActiveContacts() != 0 || len(in.ids.Bound()) != 0 {
		t.Fatalf("cancel left %d contacts", v.ActiveContacts())
	}
}
