package gateway

import (
	"context"

	"github.com/coder/websocket"
)

// Conn is a duplex frame transport. Read blocks until a text frame arrives
// or the connection ends.
type Conn interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

type wsConn struct {
	c *websocket.Conn
}

// WebSocketConn adapts a websocket connection to Conn. Binary frames are
// skipped.
func WebSocketConn(c *websocket.Conn) Conn {
	return &wsConn{c: c}
}

func (w *wsConn) Read(ctx context.Context) ([]byte, error) {
	for {
		typ, data, err := w.c.Read(ctx)
		if err != nil {
			return nil, err
		}
		if typ == websocket.MessageText {
			return data, nil
		}
	}
}

func (w *wsConn) Write(ctx context.Context, data []byte) error {
	return w.c.Write(ctx, websocket.MessageText, data)
}
