package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware registers are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register. The P1
	// hardware register is used to select the input keys to
	// be read by the CPU, and to read the state of the joypad.
	P1 HardwareAddress = 0xFF00
	// SB is the address of the SB hardware register. The SB
	// hardware register is used to transfer data between the
	// CPU and the serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. The SC
	// hardware register is used to control the serial port.
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register. The DIV
	// hardware register is incremented at a rate of 16384Hz. Internally
	// it is a 16-bit register, but only the upper 8 bits may be read.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. The TIMA
	// hardware register is incremented at a rate specified by the TAC
	// hardware register. When TIMA overflows, it is reset to the value
	// specified by the TMA hardware register, and a timer interrupt is
	// requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register. The TMA
	// hardware register is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register. The TAC
	// hardware register is used to control the timer.
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// IE is the address of the IE hardware register. The IE
	// hardware register is used to enable interrupts. Writing a 1
	// to a bit in IE enables the corresponding interrupt, and writing
	// a 0 disables the interrupt. The bit layout matches IF.
	IE HardwareAddress = 0xFFFF
)

// The fixed boundaries of the Game Boy address space.
const (
	ROMStart   uint16 = 0x0000
	ROMSize           = 0x8000
	VRAMStart  uint16 = 0x8000
	VRAMSize          = 0x2000
	ERAMStart  uint16 = 0xA000
	ERAMSize          = 0x2000
	WRAMStart  uint16 = 0xC000
	WRAMSize          = 0x2000
	EchoStart  uint16 = 0xE000
	EchoSize          = 0x1E00
	OAMStart   uint16 = 0xFE00
	OAMSize           = 0xA0
	IOStart    uint16 = 0xFF00
	IOSize            = 0x80
	HRAMStart  uint16 = 0xFF80
	HRAMSize          = 0x7F
)
