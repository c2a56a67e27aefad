package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/thelolagemann/dmgcore/internal/disassembly"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/opcodes"
	"github.com/thelolagemann/dmgcore/pkg/display"
	_ "github.com/thelolagemann/dmgcore/pkg/display/png"
	_ "github.com/thelolagemann/dmgcore/pkg/display/web"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// FrameTime is the duration of a single frame at normal speed.
const FrameTime = time.Second * gameboy.CyclesPerFrame / gameboy.ClockSpeed

func main() {
	if len(display.InstalledDrivers) == 0 {
		fmt.Fprintln(os.Stderr, "No display drivers installed. Please compile with at least one display driver")
		os.Exit(1)
	}

	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	config := flag.String("config", "", "A YAML file of flag values, overridden by flags on the command line")
	frames := flag.Int("frames", 0, "The number of frames to run for (0 runs forever)")
	speed := flag.Float64("speed", 1, "The speed to run the emulator at (0 runs unthrottled)")
	level := flag.String("log", "info", "The log level: debug, info or error")
	trace := flag.Bool("trace", false, "Log every executed instruction at debug level")
	serial := flag.Bool("serial", false, "Write serial output to stdout")
	disasm := flag.Int("disasm", 0, "Print n instructions from the cartridge entry point and exit")
	displayDriver := flag.String("driver", "auto", "The display driver to use. Can be auto, png or web")

	display.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if *config != "" {
		if err := applyConfig(flag.CommandLine, *config); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	logger, err := log.NewWithLevel(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *romFile == "" {
		logger.Fatalf("no rom file given, use -rom")
	}
	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatalf("loading rom: %v", err)
	}

	if *disasm > 0 {
		printDisassembly(rom, *disasm)
		return
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	if *bootROM != "" {
		boot, err := utils.LoadFile(*bootROM)
		if err != nil {
			logger.Fatalf("loading boot rom: %v", err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if *trace {
		opts = append(opts, gameboy.Trace())
	}
	if *serial {
		opts = append(opts, gameboy.WithSerialWriter(os.Stdout))
	}

	driver := display.GetDriver(*displayDriver)
	if driver == nil {
		logger.Fatalf("unknown display driver %q", *displayDriver)
	}

	sink := display.NewFrameSink(2)
	opts = append(opts, gameboy.WithRenderer(sink))
	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	if err := run(gb, driver, sink, *frames, *speed); err != nil {
		logger.Fatalf("%v", err)
	}
	logger.Infof("ran %d frames, dropped %d", gb.Frames(), sink.Dropped())
}

// run emulates frames until n frames have passed (forever if n is
// 0) or the driver stops, passing button events from the driver to
// the emulator between frames.
func run(gb *gameboy.GameBoy, driver display.Driver, sink *display.FrameSink, n int, speed float64) error {
	pressed := make(chan joypad.Button, 16)
	released := make(chan joypad.Button, 16)
	driverErr := make(chan error, 1)
	go func() {
		driverErr <- driver.Start(sink.Frames(), pressed, released)
	}()

	var ticker *time.Ticker
	if speed > 0 {
		ticker = time.NewTicker(time.Duration(float64(FrameTime) / speed))
		defer ticker.Stop()
	}

	for i := 0; n == 0 || i < n; i++ {
	input:
		for {
			select {
			case b := <-pressed:
				gb.Press(b)
			case b := <-released:
				gb.Release(b)
			default:
				break input
			}
		}

		if err := gb.Frame(); err != nil {
			sink.Close()
			<-driverErr
			return err
		}

		select {
		case err := <-driverErr:
			return err
		default:
		}
		if ticker != nil {
			<-ticker.C
		}
	}

	sink.Close()
	return <-driverErr
}

func printDisassembly(rom []byte, n int) {
	const entry = 0x100
	if len(rom) <= entry {
		return
	}
	for i, ins := range disassembly.Disassemble(opcodes.Default(), rom[entry:], entry) {
		if i == n {
			break
		}
		fmt.Printf("%04X  % -9X  %s\n", ins.Address, ins.Bytes(), ins)
	}
}
