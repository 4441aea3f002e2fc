package device

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverName = "org.freedesktop.ScreenSaver"
	screenSaverPath = dbus.ObjectPath("/org/freedesktop/ScreenSaver")
)

// ScreenSaverInhibitor keeps the display awake through the freedesktop
// ScreenSaver D-Bus interface.
type ScreenSaverInhibitor struct {
	AppName string
	Reason  string

	mu      sync.Mutex
	next    Handle
	holders map[Handle]inhibition
}

type inhibition struct {
	conn   *dbus.Conn
	cookie uint32
}

func (w *ScreenSaverInhibitor) Acquire() (Handle, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return 0, fmt.Errorf("connect session bus: %w", err)
	}

	var cookie uint32
	obj := conn.Object(screenSaverName, screenSaverPath)
	if err := obj.Call(screenSaverName+".Inhibit", 0, w.AppName, w.Reason).Store(&cookie); err != nil {
		conn.Close()
		return 0, fmt.Errorf("inhibit screensaver: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.holders == nil {
		w.holders = make(map[Handle]inhibition)
	}
	w.next++
	w.holders[w.next] = inhibition{conn: conn, cookie: cookie}
	return w.next, nil
}

func (w *ScreenSaverInhibitor) Release(h Handle) error {
	w.mu.Lock()
	in, ok := w.holders[h]
	delete(w.holders, h)
	w.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown wake lock handle %d", h)
	}
	defer in.conn.Close()

	obj := in.conn.Object(screenSaverName, screenSaverPath)
	if err := obj.Call(screenSaverName+".UnInhibit", 0, in.cookie).Err; err != nil {
		return fmt.Errorf("uninhibit screensaver: %w", err)
	}
	return nil
}
