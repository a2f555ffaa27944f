package appstate

import (
	"golang.org/x/mobile/event/mouse"

	"github.com/example/touchpaint/internal/paintview"
)

// mouseSlot is the slot the left button drives.
const mouseSlot = 0

// mouseInput turns left button drags into a single contact.
type mouseInput struct {
	down bool
}

func (m *mouseInput) reset() { m.down = false }

func (m *mouseInput) handle(v *paintview.View, e mouse.Event) {
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		if m.down {
			return
		}
		m.down = true
		v.OnContactBegin(mouseSlot)
		v.OnContactMove(mouseSlot, e.X, e.Y)
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		if !m.down {
			return
		}
		m.down = false
		v.OnContactMove(mouseSlot, e.X, e.Y)
		v.OnContactEnd(mouseSlot)
	case e.Direction == mouse.DirNone && m.down:
		v.OnContactMove(mouseSlot, e.X, e.Y)
	}
}
