package cpu

import "testing"

func newTestCPU() *CPU {
	c := NewCPU(NewFlatMemory())
	c.Reset()
	return c
}

func TestPushPop(t *testing.T) {
	c := newTestCPU()

	if n := c.push(0xab); n != 2 {
		t.Errorf("push cycles incorrect. exp: 2, got: %d", n)
	}
	if c.Reg.SP != 0xfe {
		t.Errorf("SP incorrect after push. exp: $FE, got: $%02X", c.Reg.SP)
	}

	v, n := c.pop()
	if v != 0xab || n != 2 {
		t.Errorf("pop incorrect. exp: $AB/2, got: $%02X/%d", v, n)
	}
	if c.Reg.SP != 0xff {
		t.Errorf("SP incorrect after pop. exp: $FF, got: $%02X", c.Reg.SP)
	}
}

func TestPushPCPopAddress(t *testing.T) {
	c := newTestCPU()
	c.Reg.PC = 0x1234

	if n := c.pushPC(); n != 2 {
		t.Errorf("pushPC cycles incorrect. exp: 2, got: %d", n)
	}
	if c.Reg.SP != 0xfd {
		t.Errorf("SP incorrect after pushPC. exp: $FD, got: $%02X", c.Reg.SP)
	}

	addr, n := c.popAddress()
	if addr != 0x1233 || n != 3 {
		t.Errorf("popAddress incorrect. exp: $1233/3, got: $%04X/%d", addr, n)
	}
	if c.Reg.SP != 0xff {
		t.Errorf("SP incorrect after popAddress. exp: $FF, got: $%02X", c.Reg.SP)
	}
}

func TestPushPCWrap(t *testing.T) {
	// With SP=0 the low byte lands at $01FF, inside the stack page.
	c := newTestCPU()
	c.Reg.PC = 0xabce
	c.Reg.SP = 0x00

	c.pushPC()
	if hi := c.Mem.LoadByte(0x0100); hi != 0xab {
		t.Errorf("high byte incorrect. exp: $AB, got: $%02X", hi)
	}
	if lo := c.Mem.LoadByte(0x01ff); lo != 0xcd {
		t.Errorf("low byte incorrect. exp: $CD, got: $%02X", lo)
	}
	if c.Reg.SP != 0xfe {
		t.Errorf("SP incorrect. exp: $FE, got: $%02X", c.Reg.SP)
	}

	addr, _ := c.popAddress()
	if addr != 0xabcd {
		t.Errorf("popAddress incorrect. exp: $ABCD, got: $%04X", addr)
	}
}

func TestWordAccess(t *testing.T) {
	c := newTestCPU()

	if n := c.writeWord(0x2000, 0xbeef); n != 2 {
		t.Errorf("writeWord cycles incorrect. exp: 2, got: %d", n)
	}
	if lo, hi := c.Mem.LoadByte(0x2000), c.Mem.LoadByte(0x2001); lo != 0xef || hi != 0xbe {
		t.Errorf("writeWord not little-endian: $%02X $%02X", lo, hi)
	}

	v, n := c.readWord(0x2000)
	if v != 0xbeef || n != 2 {
		t.Errorf("readWord incorrect. exp: $BEEF/2, got: $%04X/%d", v, n)
	}

	c.Reg.PC = 0x2000
	v, n = c.fetchWord()
	if v != 0xbeef || n != 2 || c.Reg.PC != 0x2002 {
		t.Errorf("fetchWord incorrect. got: $%04X/%d PC=$%04X", v, n, c.Reg.PC)
	}

	b, n := c.fetchByte()
	if b != 0 || n != 1 || c.Reg.PC != 0x2003 {
		t.Errorf("fetchByte incorrect. got: $%02X/%d PC=$%04X", b, n, c.Reg.PC)
	}
}

func TestResolveZeroPageWrap(t *testing.T) {
	c := newTestCPU()
	c.Mem.StoreBytes(0x1000, []byte{0x80})
	c.Reg.PC = 0x1000
	c.Reg.X = 0xff

	addr, crossed, n := c.resolve(ZPX)
	if addr != 0x007f || crossed || n != 2 {
		t.Errorf("ZPX resolve incorrect. got: $%04X crossed=%v cycles=%d", addr, crossed, n)
	}
}
