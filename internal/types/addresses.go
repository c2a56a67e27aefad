package types

// HardwareAddress represents the address of a hardware
// register of the DMG. The hardware registers are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects either the action or direction keys, and
	// reports the state of the selected keys in bits 0-3.
	P1 HardwareAddress = 0xFF00
	// SB holds the byte being shifted out (and in) over the
	// serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port.
	//
	//	Bit 7: Transfer start flag (1=Transfer in progress)
	//	Bit 0: Shift clock (1=Internal clock)
	SC HardwareAddress = 0xFF02
	// DIV is the upper byte of the free-running divider. Any
	// write from the CPU resets the divider to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented at the rate selected by TAC, and
	// reloaded from TMA after it overflows.
	TIMA HardwareAddress = 0xFF05
	// TMA holds the value loaded into TIMA on overflow.
	TMA HardwareAddress = 0xFF06
	// TAC controls the timer.
	//
	//	Bit 2:    Timer enable
	//	Bits 1-0: Clock select (00=256, 01=4, 10=16, 11=64 M-cycles)
	TAC HardwareAddress = 0xFF07
	// IF is the interrupt flag register. Writing a 1 to a bit
	// requests an interrupt, and writing a 0 clears the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the main LCD control register.
	//
	//	Bit 7: LCD Display Enable             (0=Off, 1=On)
	//	Bit 6: Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
	//	Bit 5: Window Display Enable          (0=Off, 1=On)
	//	Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//	Bit 3: BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
	//	Bit 2: OBJ (Sprite) Size              (0=8x8, 1=8x16)
	//	Bit 1: OBJ (Sprite) Display Enable    (0=Off, 1=On)
	//	Bit 0: BG Display                     (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT is the LCD status register.
	//
	//	Bit 6: LYC=LY Coincidence Interrupt (1=Enable)
	//	Bit 5: Mode 2 OAM Interrupt         (1=Enable)
	//	Bit 4: Mode 1 V-Blank Interrupt     (1=Enable)
	//	Bit 3: Mode 0 H-Blank Interrupt     (1=Enable)
	//	Bit 2: Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
	//	Bit 1-0: Mode Flag       (Mode 0-3)           (Read Only)
	STAT HardwareAddress = 0xFF41
	// SCY is the background viewport Y position.
	SCY HardwareAddress = 0xFF42
	// SCX is the background viewport X position.
	SCX HardwareAddress = 0xFF43
	// LY is the current scanline (0-153). Read only.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY to drive the coincidence flag.
	LYC HardwareAddress = 0xFF45
	// DMA starts an OAM DMA transfer from XX00-XX9F.
	DMA HardwareAddress = 0xFF46
	// BGP is the background & window palette.
	BGP HardwareAddress = 0xFF47
	// OBP0 is object palette 0.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is object palette 1.
	OBP1 HardwareAddress = 0xFF49
	// WY is the window Y position.
	WY HardwareAddress = 0xFF4A
	// WX is the window X position plus 7.
	WX HardwareAddress = 0xFF4B
	// BDIS unmaps the boot ROM when written with a non-zero value.
	BDIS HardwareAddress = 0xFF50
	// IE is the interrupt enable register, using the same bit
	// layout as IF.
	IE HardwareAddress = 0xFFFF
)
