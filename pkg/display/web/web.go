// Package web provides a display driver streaming frames to
// browsers over websockets, and accepting joypad input from them.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

var defaultDriver = &Driver{}

func init() {
	display.Install("web", defaultDriver, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &defaultDriver.Addr,
			Description: "The address to serve clients on",
			Type:        "string",
		},
		{
			Name:        "compression",
			Default:     7,
			Value:       &defaultDriver.Compression,
			Description: "The brotli compression level of frames (0 disables compression)",
			Type:        "int",
		},
		{
			Name:        "palette",
			Default:     "greyscale",
			Value:       &defaultDriver.Palette,
			Description: "The palette to colour frames with",
			Type:        "string",
		},
	})
}

// Driver serves frames to websocket clients.
type Driver struct {
	Addr        string
	Compression int
	Palette     string
	Logger      log.Logger

	server   *http.Server
	listener net.Listener
	hub      *hub
}

// Start implements display.Driver. It serves clients until frames
// is closed or Stop is called.
func (d *Driver) Start(frames <-chan *ppu.Frame, pressed, released chan<- joypad.Button) error {
	if d.Compression < 0 || d.Compression > 11 {
		return fmt.Errorf("web: compression level %d out of range 0-11", d.Compression)
	}
	pal, err := palette.ByName(d.Palette)
	if err != nil {
		return err
	}
	if d.Logger == nil {
		d.Logger = log.New()
	}

	d.listener, err = net.Listen("tcp", d.Addr)
	if err != nil {
		return fmt.Errorf("web: %w", err)
	}
	d.hub = newHub(d.Compression, pressed, released, d.Logger)
	d.server = &http.Server{Handler: d.hub}
	go d.hub.run()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- d.server.Serve(d.listener)
	}()
	d.Logger.Infof("web: serving on %s", d.listener.Addr())

	enc := newEncoder(pal, d.Compression)
	for {
		select {
		case f, ok := <-frames:
			if !ok {
				return d.Stop()
			}
			if err := d.stream(enc, f); err != nil {
				d.Stop()
				return err
			}
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("web: %w", err)
		}
	}
}

// stream broadcasts the messages for f to every client.
func (d *Driver) stream(enc *encoder, f *ppu.Frame) error {
	if d.hub.resync.Swap(false) {
		enc.reset()
	}
	msgs, err := enc.encode(f)
	if err != nil {
		return fmt.Errorf("web: encoding frame: %w", err)
	}
	for _, msg := range msgs {
		select {
		case d.hub.broadcast <- msg:
		case <-d.hub.done:
			return nil
		}
	}
	return nil
}

// ListenAddr returns the address the driver is listening on, or
// nil before it has started.
func (d *Driver) ListenAddr() net.Addr {
	if d.listener == nil {
		return nil
	}
	return d.listener.Addr()
}

// Stop implements display.Driver.
func (d *Driver) Stop() error {
	if d.server == nil {
		return nil
	}
	select {
	case <-d.hub.done:
		return nil
	default:
	}
	d.hub.stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.server.Shutdown(ctx)
}
