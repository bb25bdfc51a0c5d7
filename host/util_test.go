package host

import (
	"strings"
	"testing"

	"github.com/beevik/cmd"
	"github.com/beevik/sim6502/cpu"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		s       string
		hexMode bool
		v       int
		ok      bool
	}{
		{"$ff", false, 0xff, true},
		{"0x1234", false, 0x1234, true},
		{"0X10", true, 0x10, true},
		{"100", false, 100, true},
		{"100", true, 0x100, true},
		{"ff", false, 0, false},
		{"$", false, 0, false},
		{"-1", false, 0, false},
		{"", false, 0, false},
	}

	for _, test := range tests {
		v, err := parseNumber(test.s, test.hexMode)
		if test.ok != (err == nil) {
			t.Errorf("%q: unexpected error result: %v", test.s, err)
			continue
		}
		if v != test.v {
			t.Errorf("%q: value incorrect. exp: %d, got: %d", test.s, test.v, v)
		}
	}
}

func TestStringToBool(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", "on"} {
		if v, err := stringToBool(s); err != nil || !v {
			t.Errorf("%q: exp: true, got: %v %v", s, v, err)
		}
	}
	for _, s := range []string{"0", "false", "off"} {
		if v, err := stringToBool(s); err != nil || v {
			t.Errorf("%q: exp: false, got: %v %v", s, v, err)
		}
	}
	if _, err := stringToBool("maybe"); err == nil {
		t.Error("expected error for invalid bool")
	}
}

func TestRegisterString(t *testing.T) {
	r := cpu.Registers{A: 0x42, X: 0x10, Y: 0x07, SP: 0xfd, PC: 0x1234, Carry: true, Zero: true, Negative: true}
	exp := "A=42 X=10 Y=07 PS=[N----ZC] SP=FD PC=1234"
	if got := registerString(&r); got != exp {
		t.Errorf("register string incorrect. exp: %q, got: %q", exp, got)
	}
}

func TestSettingsSet(t *testing.T) {
	s := newSettings()

	name, err := s.Set("memd", "$20")
	if err != nil || name != "MemDumpBytes" || s.MemDumpBytes != 0x20 {
		t.Errorf("memd: exp: MemDumpBytes=32, got: %s=%d %v", name, s.MemDumpBytes, err)
	}
	if _, err := s.Set("nextmem", "$10000"); err == nil {
		t.Error("expected range error for 17-bit address")
	}
	if _, err := s.Set("showcycles", "off"); err != nil || s.ShowCycles {
		t.Errorf("showcycles: exp: false, got: %v %v", s.ShowCycles, err)
	}
	if _, err := s.Set("m", "1"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("expected ambiguous setting error, got: %v", err)
	}

	var b strings.Builder
	s.Display(&b)
	if !strings.Contains(b.String(), "MemDumpBytes     32") {
		t.Errorf("display incorrect:\n%s", b.String())
	}
}

func TestCommandLookup(t *testing.T) {
	tests := []struct {
		line string
		name string
		args int
	}{
		{"help", "help", 0},
		{"? step", "help", 1},
		{"breakpoint add $1000", "add", 1},
		{"ba $1000", "add", 1},
		{"breakpoint l", "list", 0},
		{"mem du $0 8", "dump", 2},
		{"ex 100", "execute", 1},
		{"s 3", "step", 1},
	}

	for _, test := range tests {
		c, args, err := cmds.LookupCommand(test.line)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.line, err)
			continue
		}
		if c.Name != test.name || len(args) != test.args {
			t.Errorf("%q: exp: %s/%d, got: %s/%d", test.line, test.name, test.args, c.Name, len(args))
		}
		if _, ok := c.Data.(cmdHandler); !ok {
			t.Errorf("%q: command has no handler", test.line)
		}
	}

	if _, _, err := cmds.LookupCommand("memory"); err != cmd.ErrNotFound {
		t.Errorf("memory: exp: %v, got: %v", cmd.ErrNotFound, err)
	}
	if _, _, err := cmds.LookupCommand("zzz"); err != cmd.ErrNotFound {
		t.Errorf("zzz: exp: %v, got: %v", cmd.ErrNotFound, err)
	}
	if _, _, err := cmds.LookupCommand("re"); err != cmd.ErrAmbiguous {
		t.Errorf("re: exp: %v, got: %v", cmd.ErrAmbiguous, err)
	}
}
