package web

import (
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

type hub struct {
	clients map[*client]bool

	broadcast            chan []byte
	register, unregister chan *client
	done                 chan struct{}

	// resync is set when a client joins, telling the frame loop
	// to send the next frame in full.
	resync atomic.Bool

	pressed, released chan<- joypad.Button

	compressionLevel int
	log              log.Logger
}

func newHub(level int, pressed, released chan<- joypad.Button, l log.Logger) *hub {
	return &hub{
		clients:          make(map[*client]bool),
		broadcast:        make(chan []byte, 16),
		register:         make(chan *client),
		unregister:       make(chan *client),
		done:             make(chan struct{}),
		pressed:          pressed,
		released:         released,
		compressionLevel: level,
		log:              l,
	}
}

// run handles the clients of the hub until stop is called.
func (h *hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.resync.Store(true)
			c.send <- []byte{ClientInfo, h.info(), uint8(h.compressionLevel)}
			h.log.Infof("web: client %s connected", c.remoteAddr)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.log.Infof("web: client %s disconnected", c.remoteAddr)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// too slow to keep up
					delete(h.clients, c)
					close(c.send)
				}
			}
		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		}
	}
}

func (h *hub) stop() {
	close(h.done)
}

// info returns a byte of information about the hub:
//
//	Bit 0: Compression enabled
//	Bit 1: Input accepted
func (h *hub) info() byte {
	info := uint8(0)
	if h.compressionLevel > 0 {
		info |= types.Bit0
	}
	if h.pressed != nil {
		info |= types.Bit1
	}
	return info
}

// ServeHTTP upgrades the request to a websocket connection and
// registers it as a client.
func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("web: upgrading connection: %v", err)
		return
	}

	c := &client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, 256),
		remoteAddr: r.RemoteAddr,
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
