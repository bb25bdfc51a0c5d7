// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/sim6502/cpu"
)

func stringToBool(s string) (bool, error) {
	s = strings.ToLower(s)
	switch s {
	case "0", "false", "off":
		return false, nil
	case "1", "true", "on":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool value '%s'", s)
	}
}

// parseNumber parses a number written as $hex, 0xhex or decimal. When
// hexMode is set, an unprefixed number is hexadecimal instead.
func parseNumber(s string, hexMode bool) (int, error) {
	base, digits := 10, s
	switch {
	case strings.HasPrefix(s, "$"):
		base, digits = 16, s[1:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base, digits = 16, s[2:]
	case hexMode:
		base = 16
	}

	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil || digits == "" {
		return 0, fmt.Errorf("invalid number '%s'", s)
	}
	return int(v), nil
}

var hexString = "0123456789ABCDEF"

func addrToBuf(addr uint16, b []byte) {
	b[0] = hexString[(addr>>12)&0xf]
	b[1] = hexString[(addr>>8)&0xf]
	b[2] = hexString[(addr>>4)&0xf]
	b[3] = hexString[addr&0xf]
}

func byteToBuf(v byte, b []byte) {
	b[0] = hexString[(v>>4)&0xf]
	b[1] = hexString[v&0xf]
}

func toPrintableChar(v byte) byte {
	switch {
	case v >= 32 && v < 127:
		return v
	case v >= 160 && v < 255:
		return v - 128
	default:
		return '.'
	}
}

// registerString describes the contents of the 6502 registers. Flags that
// are set appear as letters, cleared flags as dashes.
func registerString(r *cpu.Registers) string {
	flags := []byte("NVBDIZC")
	for i, set := range []bool{
		r.Negative, r.Overflow, r.Break, r.Decimal,
		r.InterruptDisable, r.Zero, r.Carry,
	} {
		if !set {
			flags[i] = '-'
		}
	}
	return fmt.Sprintf("A=%02X X=%02X Y=%02X PS=[%s] SP=%02X PC=%04X",
		r.A, r.X, r.Y, flags, r.SP, r.PC)
}
