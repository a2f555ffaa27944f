//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	startOnce sync.Once
	startErr  error
	owner     *selectionOwner
)

func start() error {
	startOnce.Do(func() {
		if !displayAvailable() {
			startErr = ErrNoDisplay
			return
		}
		owner, startErr = newSelectionOwner()
	})
	return startErr
}

func publish(s snapshot) error {
	if err := start(); err != nil {
		return err
	}
	return owner.own(s)
}

// selectionOwner holds the CLIPBOARD selection from a hidden window and
// answers conversion requests for the latest snapshot.
type selectionOwner struct {
	conn *xgb.Conn
	win  xproto.Window

	clipboard, targets, png xproto.Atom

	mu   sync.Mutex
	snap snapshot
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	o := &selectionOwner{conn: conn}
	if err := o.setup(); err != nil {
		conn.Close()
		return nil, err
	}
	go o.serve()
	return o, nil
}

func (o *selectionOwner) setup() error {
	screen := xproto.Setup(o.conn).DefaultScreen(o.conn)
	win, err := xproto.NewWindowId(o.conn)
	if err != nil {
		return err
	}
	err = xproto.CreateWindowChecked(o.conn, screen.RootDepth, win, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return err
	}
	o.win = win
	for name, dst := range map[string]*xproto.Atom{
		"CLIPBOARD": &o.clipboard,
		"TARGETS":   &o.targets,
		"image/png": &o.png,
	} {
		reply, err := xproto.InternAtom(o.conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			xproto.DestroyWindow(o.conn, win)
			return err
		}
		*dst = reply.Atom
	}
	return nil
}

func (o *selectionOwner) own(s snapshot) error {
	o.mu.Lock()
	o.snap = s
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.win, o.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			// Another client owns the clipboard now.
			o.mu.Lock()
			o.snap = snapshot{}
			o.mu.Unlock()
		}
	}
}

func (o *selectionOwner) answer(req xproto.SelectionRequestEvent) {
	o.mu.Lock()
	data := o.snap.png
	o.mu.Unlock()

	prop := req.Property
	if prop == xproto.AtomNone {
		prop = req.Target
	}
	switch {
	case req.Target == o.targets:
		offered := []xproto.Atom{o.targets}
		if len(data) > 0 {
			offered = append(offered, o.png)
		}
		buf := make([]byte, 4*len(offered))
		for i, a := range offered {
			xgb.Put32(buf[4*i:], uint32(a))
		}
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, req.Requestor, prop,
			xproto.AtomAtom, 32, uint32(len(offered)), buf)
	case req.Target == o.png && len(data) > 0:
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, req.Requestor, prop,
			o.png, 8, uint32(len(data)), data)
	default:
		prop = xproto.AtomNone
	}

	reply := xproto.SelectionNotifyEvent{
		Time:      req.Time,
		Requestor: req.Requestor,
		Selection: req.Selection,
		Target:    req.Target,
		Property:  prop,
	}
	xproto.SendEvent(o.conn, false, req.Requestor, 0, string(reply.Bytes()))
}
