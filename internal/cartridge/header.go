// Package cartridge parses the header found in every Game Boy ROM.
package cartridge

import (
	"errors"
	"fmt"
	"strings"
)

const (
	headerStart = 0x0100
	headerEnd   = 0x0150
)

// ErrShortROM is returned when a ROM is too small to hold a header.
var ErrShortROM = errors.New("cartridge: ROM too small for a header")

type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

var ramSizes = map[uint8]uint{
	0x00: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Type is the memory bank controller and extra hardware of a
// cartridge.
type Type uint8

const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
	MBC2        Type = 0x05
	MBC2BATT    Type = 0x06
	ROMRAM      Type = 0x08
	ROMRAMBATT  Type = 0x09
	MBC3        Type = 0x11
	MBC5        Type = 0x19
)

var typeNames = map[Type]string{
	ROM:         "ROM ONLY",
	MBC1:        "MBC1",
	MBC1RAM:     "MBC1+RAM",
	MBC1RAMBATT: "MBC1+RAM+BATTERY",
	MBC2:        "MBC2",
	MBC2BATT:    "MBC2+BATTERY",
	ROMRAM:      "ROM+RAM",
	ROMRAMBATT:  "ROM+RAM+BATTERY",
	MBC3:        "MBC3",
	MBC5:        "MBC5",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", uint8(t))
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x0143 - CartridgeGBMode of the game. In older cartridges this byte was part
	// of the title, but the Colour Game Boy and later models interpret this byte
	// to determine if the cartridge is compatible with the Colour Game Boy.
	CartridgeGBMode Flag

	CartridgeType  Type
	ROMSize        uint
	RAMSize        uint
	HeaderChecksum uint8
	GlobalChecksum uint16

	raw [headerEnd - headerStart]byte
}

// ParseHeader parses the header of the given ROM.
func ParseHeader(rom []byte) (Header, error) {
	h := Header{}
	if len(rom) < headerEnd {
		return h, fmt.Errorf("%w: %d bytes", ErrShortROM, len(rom))
	}
	copy(h.raw[:], rom[headerStart:headerEnd])
	header := h.raw[:]

	// parse the mode of the cartridge and parse the header accordingly
	switch header[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	// parse the title, which is padded with zeroes
	title := header[0x34:0x44]
	if h.CartridgeGBMode != FlagOnlyDMG {
		title = header[0x34:0x43]
	}
	h.Title = strings.TrimRight(string(title), "\x00")

	h.CartridgeType = Type(header[0x47])

	// parse the ROM size (calculated by 32kB x (1 << n))
	h.ROMSize = (32 * 1024) << (header[0x48] & 0x0F)
	h.RAMSize = ramSizes[header[0x49]]

	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	return h, nil
}

// ChecksumValid reports whether the header checksum matches the
// header, as verified by the boot ROM before starting a game.
func (h *Header) ChecksumValid() bool {
	var sum uint8
	for _, b := range h.raw[0x34:0x4D] {
		sum = sum - b - 1
	}
	return sum == h.HeaderChecksum
}

func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagOnlyDMG:
		return "DMG"
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "Unknown"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
