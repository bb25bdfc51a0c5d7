// Copyright 2018 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host allows you to create a "host" that drives an emulated 6502
// CPU and its 64K of memory from a stream of text commands.
//
// Within the host it is possible to load machine code into memory, run it
// for a budget of CPU cycles, step through it one instruction at a time,
// set address and data breakpoints, dump and modify the contents of memory,
// and inspect or change CPU registers. The host reads
// commands from any io.Reader, so the same commands may be typed
// interactively or run from a script.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/beevik/cmd"
	"github.com/beevik/sim6502/cpu"
)

const (
	stateProcessingCommands int32 = iota
	stateRunning
	stateBreakpoint
	stateInterrupted
)

var errQuit = errors.New("exiting program")

// A Host represents an emulated 6502 CPU, its 64K of memory, and a
// debugger attached to the CPU.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	mem         *cpu.FlatMemory
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	lastCmd     *cmd.Command
	lastArgs    []string
	state       atomic.Int32
	settings    *settings
}

// New creates a new 6502 host environment.
func New() *Host {
	h := &Host{
		settings: newSettings(),
	}
	h.state.Store(stateProcessingCommands)

	// Create the emulated CPU and memory.
	h.mem = cpu.NewFlatMemory()
	h.cpu = cpu.NewCPU(h.mem)

	// Create a CPU debugger and attach it to the CPU. The same event
	// receiver reports unknown opcodes through the host's output.
	events := cpuEvents{host: h}
	h.debugger = cpu.NewDebugger(events)
	h.cpu.AttachDebugger(h.debugger)
	h.cpu.AttachOpcodeHandler(events)

	return h
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered. RunCommands
// returns when the input is exhausted or a quit command is processed.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
		h.displayRegisters()
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c *cmd.Command
		var args []string
		if strings.TrimSpace(line) != "" {
			n, a, err := cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}

			// A command group lists its subcommands.
			if t, ok := n.(*cmd.Tree); ok {
				t.DisplayHelp(h.output)
				h.flush()
				continue
			}
			c, args = n.(*cmd.Command), a
		} else if h.lastCmd != nil {
			c, args = h.lastCmd, h.lastArgs
		}

		if c == nil {
			continue
		}
		h.lastCmd, h.lastArgs = c, args

		handler := c.Data.(cmdHandler)
		err = handler(h, c, args)
		if err != nil {
			break
		}
	}
	h.flush()
}

// Break interrupts a running CPU. It is safe to call Break from another
// goroutine, such as a signal handler.
func (h *Host) Break() {
	h.state.CompareAndSwap(stateRunning, stateInterrupted)

	// Repeat the stop while interrupted, since Execute discards a stop
	// made just before it starts.
	if h.state.Load() == stateInterrupted {
		h.cpu.Stop()
	}
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.print("* ")
		h.flush()
	}
}

func (h *Host) displayRegisters() {
	str := registerString(&h.cpu.Reg)
	if h.settings.ShowCycles {
		str += fmt.Sprintf(" C=%d", h.cpu.Cycles)
	}
	h.println(str)
}

func (h *Host) cmdBreakpointList(c *cmd.Command, args []string) error {
	h.println("Addr  Enabled  Hits")
	h.println("----- -------  ----")
	for _, b := range h.debugger.GetBreakpoints() {
		h.printf("$%04X %-5v    %d\n", b.Address, !b.Disabled, b.Hits)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c *cmd.Command, args []string) error {
	b := h.selectBreakpoint(c, args)
	if b == nil {
		return nil
	}

	h.debugger.RemoveBreakpoint(b.Address)
	h.printf("Breakpoint at $%04X removed.\n", b.Address)
	return nil
}

func (h *Host) cmdBreakpointEnable(c *cmd.Command, args []string) error {
	b := h.selectBreakpoint(c, args)
	if b == nil {
		return nil
	}

	b.Disabled = false
	h.printf("Breakpoint at $%04X enabled.\n", b.Address)
	return nil
}

func (h *Host) cmdBreakpointDisable(c *cmd.Command, args []string) error {
	b := h.selectBreakpoint(c, args)
	if b == nil {
		return nil
	}

	b.Disabled = true
	h.printf("Breakpoint at $%04X disabled.\n", b.Address)
	return nil
}

// selectBreakpoint returns the breakpoint addressed by the command's first
// argument, reporting why when there is none.
func (h *Host) selectBreakpoint(c *cmd.Command, args []string) *cpu.Breakpoint {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
	}
	return b
}

func (h *Host) cmdDataBreakpointList(c *cmd.Command, args []string) error {
	h.println("Addr  Enabled  Value   Hits")
	h.println("----- -------  ------  ----")
	for _, b := range h.debugger.GetDataBreakpoints() {
		if b.Conditional {
			h.printf("$%04X %-5v    $%02X     %d\n", b.Address, !b.Disabled, b.Value, b.Hits)
		} else {
			h.printf("$%04X %-5v    <none>  %d\n", b.Address, !b.Disabled, b.Hits)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if len(args) > 1 {
		v, err := h.parseByte(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, v)
		h.printf("Conditional data breakpoint added at $%04X for value $%02X.\n", addr, v)
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at $%04X.\n", addr)
	}
	return nil
}

func (h *Host) cmdDataBreakpointRemove(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if h.debugger.GetDataBreakpoint(addr) == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}

	h.debugger.RemoveDataBreakpoint(addr)
	h.printf("Data breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdExecute(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	budget, err := h.parseNumber(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	used := h.execute(budget)
	h.printf("Executed %d cycles.\n", used)
	h.displayRegisters()
	return nil
}

func (h *Host) cmdHelp(c *cmd.Command, args []string) error {
	if err := cmds.GetHelp(h.output, args); err != nil {
		h.printf("%v.\n", err)
	}
	h.flush()
	return nil
}

func (h *Host) cmdLoad(c *cmd.Command, args []string) error {
	if len(args) < 2 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseAddr(args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	filename := args[0]
	code, err := os.ReadFile(filename)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	if len(code) == 0 || len(code) > 0x10000-int(addr) {
		h.printf("File '%s' does not fit in memory at $%04X.\n", filename, addr)
		return nil
	}

	h.mem.StoreBytes(addr, code)
	h.printf("Loaded '%s' to $%04X..$%04X.\n", filename, addr, int(addr)+len(code)-1)

	h.settings.NextMemDumpAddr = addr
	return nil
}

func (h *Host) cmdMemoryDump(c *cmd.Command, args []string) error {
	addr := h.settings.NextMemDumpAddr
	if len(args) > 0 && args[0] != "$" {
		var err error
		addr, err = h.parseAddr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	bytes := h.settings.MemDumpBytes
	if len(args) > 1 {
		var err error
		bytes, err = h.parseNumber(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}
	bytes = min(bytes, 0x10000)

	h.dumpMemory(addr, bytes)

	h.settings.NextMemDumpAddr = addr + uint16(bytes)
	h.lastArgs = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (h *Host) cmdMemorySet(c *cmd.Command, args []string) error {
	if len(args) < 2 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := make([]byte, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := h.parseByte(a)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		b = append(b, v)
	}

	h.mem.StoreBytes(addr, b)
	h.printf("Stored %d byte(s) at $%04X.\n", len(b), addr)
	return nil
}

func (h *Host) cmdQuit(c *cmd.Command, args []string) error {
	return errQuit
}

func (h *Host) cmdRegister(c *cmd.Command, args []string) error {
	switch len(args) {
	case 0:
		h.displayRegisters()
		return nil
	case 1:
		h.displayUsage(c)
		return nil
	}

	key, value := strings.ToLower(args[0]), args[1]
	reg := &h.cpu.Reg

	var flag *bool
	switch key {
	case "c":
		flag = &reg.Carry
	case "z":
		flag = &reg.Zero
	case "i":
		flag = &reg.InterruptDisable
	case "d":
		flag = &reg.Decimal
	case "b":
		flag = &reg.Break
	case "v":
		flag = &reg.Overflow
	case "n":
		flag = &reg.Negative
	}
	if flag != nil {
		v, err := stringToBool(value)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		*flag = v
		h.printf("Flag %s set to %v.\n", strings.ToUpper(key), v)
		return nil
	}

	switch key {
	case "a", "x", "y", "sp":
		v, err := h.parseByte(value)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		switch key {
		case "a":
			reg.A = v
		case "x":
			reg.X = v
		case "y":
			reg.Y = v
		case "sp":
			reg.SP = v
		}
		h.printf("Register %s set to $%02X.\n", strings.ToUpper(key), v)

	case "pc":
		v, err := h.parseAddr(value)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.SetPC(v)
		h.printf("Register PC set to $%04X.\n", v)

	default:
		h.printf("Unknown register '%s'.\n", args[0])
	}
	return nil
}

func (h *Host) cmdReset(c *cmd.Command, args []string) error {
	h.cpu.Reset()
	h.settings.NextMemDumpAddr = 0
	h.println("CPU and memory reset.")
	return nil
}

func (h *Host) cmdSet(c *cmd.Command, args []string) error {
	switch len(args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()
		return nil
	case 1:
		h.displayUsage(c)
		return nil
	}

	name, err := h.settings.Set(args[0], strings.Join(args[1:], " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	h.printf("Setting '%s' updated.\n", name)
	return nil
}

func (h *Host) cmdStep(c *cmd.Command, args []string) error {
	count := 1
	if len(args) > 0 {
		var err error
		count, err = h.parseNumber(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	h.state.Store(stateRunning)
	for i := 0; i < count && h.state.Load() == stateRunning; i++ {
		h.cpu.Step()
		if i < h.settings.MaxStepLines {
			h.displayRegisters()
		}
	}
	h.finishRun()
	return nil
}

// execute runs the CPU until 'budget' cycles have been used, a breakpoint
// is hit, or the host is interrupted. It returns the cycles used.
func (h *Host) execute(budget int) int {
	h.state.Store(stateRunning)
	used := h.cpu.Execute(budget)
	h.finishRun()
	return used
}

func (h *Host) finishRun() {
	if h.state.Load() == stateInterrupted {
		h.println("Interrupted.")
	}
	h.state.Store(stateProcessingCommands)
}

func (h *Host) parseNumber(s string) (int, error) {
	return parseNumber(s, h.settings.HexMode)
}

// parseAddr parses a 16-bit address. A "." stands for the program counter.
func (h *Host) parseAddr(s string) (uint16, error) {
	if s == "." || strings.ToLower(s) == "pc" {
		return h.cpu.Reg.PC, nil
	}
	v, err := h.parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v > 0xffff {
		return 0, fmt.Errorf("address '%s' out of range", s)
	}
	return uint16(v), nil
}

func (h *Host) parseByte(s string) (byte, error) {
	v, err := h.parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v > 0xff {
		return 0, fmt.Errorf("byte value '%s' out of range", s)
	}
	return byte(v), nil
}

func (h *Host) dumpMemory(addr0 uint16, bytes int) {
	if bytes <= 0 {
		return
	}

	addr1 := uint32(addr0) + uint32(bytes) - 1
	if addr1 > 0xffff {
		addr1 = 0xffff
	}

	buf := []byte("    -" + strings.Repeat(" ", 35))

	// Don't align display for short dumps.
	if bytes <= 8 {
		addrToBuf(addr0, buf[0:4])
		for a, c1, c2 := uint32(addr0), 6, 32; a <= addr1; a, c1, c2 = a+1, c1+3, c2+1 {
			m := h.mem.LoadByte(uint16(a))
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(string(buf))
		return
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint32(addr0) & 0xfff8
	stop := (addr1 + 8) & 0x1fff8

	for r := start; r < stop; r += 8 {
		addrToBuf(uint16(r), buf[0:4])
		for a, c1, c2 := r, 6, 32; c1 < 29; a, c1, c2 = a+1, c1+3, c2+1 {
			if a >= uint32(addr0) && a <= addr1 {
				m := h.mem.LoadByte(uint16(a))
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

func (h *Host) displayUsage(c *cmd.Command) {
	c.DisplayUsage(h.output)
	h.flush()
}
