package x11

import (
	"fmt"
	"sync"

	"artboard-wallpaper/internal/utils"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

// Connection wraps the X server link used by the desktop host.
type Connection struct {
	conn   *xgb.Conn
	root   xproto.Window
	screen *xproto.ScreenInfo

	randrOnce sync.Once
	randrErr  error

	log utils.Logger
}

// Connect opens the display named by $DISPLAY.
func Connect() (*Connection, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	return &Connection{
		conn:   conn,
		root:   screen.Root,
		screen: screen,
		log:    utils.Scope("x11"),
	}, nil
}

func (c *Connection) Close() {
	c.conn.Close()
}

// RootSize returns the current size of the root window.
func (c *Connection) RootSize() (int, int, error) {
	geom, err := xproto.GetGeometry(c.conn, xproto.Drawable(c.root)).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("root geometry: %w", err)
	}
	return int(geom.Width), int(geom.Height), nil
}

// GlobalPointer returns the pointer position in root coordinates.
func (c *Connection) GlobalPointer() (int, int, error) {
	reply, err := xproto.QueryPointer(c.conn, c.root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}

func (c *Connection) initRandr() error {
	c.randrOnce.Do(func() {
		if err := randr.Init(c.conn); err != nil {
			c.randrErr = fmt.Errorf("randr init failed: %w", err)
		}
	})
	return c.randrErr
}
