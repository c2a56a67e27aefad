package web

import (
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/dmgcore/internal/joypad"
)

type client struct {
	hub        *hub
	conn       *websocket.Conn
	send       chan []byte
	remoteAddr string
}

// readPump forwards the button events of the client to the
// emulator until the connection is closed.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case ButtonPressed, ButtonReleased:
			if len(message) < 2 || message[1] > joypad.ButtonDown {
				continue
			}
			to := c.hub.pressed
			if message[0] == ButtonReleased {
				to = c.hub.released
			}
			if to == nil {
				continue
			}
			select {
			case to <- joypad.Button(message[1]):
			default:
			}
		case Closing:
			return
		}
	}
}

// writePump writes the messages of the hub to the client, until
// the hub closes send.
func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			c.hub.log.Debugf("web: writing to %s: %v", c.remoteAddr, err)
			// drain until the hub unregisters the client
			c.conn.Close()
			for range c.send {
			}
			return
		}
	}
	if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
		c.hub.log.Debugf("web: closing %s: %v", c.remoteAddr, err)
	}
}
