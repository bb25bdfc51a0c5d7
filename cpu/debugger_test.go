package cpu_test

import (
	"testing"

	"github.com/beevik/sim6502/cpu"
)

type breakRecorder struct {
	pcs    []uint16
	stores []uint16
}

func (r *breakRecorder) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	r.pcs = append(r.pcs, b.Address)
}

func (r *breakRecorder) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	r.stores = append(r.stores, b.Address)
}

func TestBreakpoints(t *testing.T) {
	c, _ := loadCPU(0x1000,
		0xa9, 0x01, // LDA #$01
		0xa9, 0x02, // LDA #$02
		0xa9, 0x03, // LDA #$03
	)
	rec := &breakRecorder{}
	d := cpu.NewDebugger(rec)
	c.AttachDebugger(d)

	d.AddBreakpoint(0x1002)
	d.AddBreakpoint(0x1004).Disabled = true

	expectCycles(t, c.Execute(6), 6)
	if len(rec.pcs) != 1 || rec.pcs[0] != 0x1002 {
		t.Errorf("breakpoint hits incorrect: %v", rec.pcs)
	}
	if b := d.GetBreakpoint(0x1002); b == nil || b.Hits != 1 {
		t.Errorf("breakpoint hit count incorrect: %+v", b)
	}

	bps := d.GetBreakpoints()
	if len(bps) != 2 || bps[0].Address != 0x1002 || bps[1].Address != 0x1004 {
		t.Errorf("breakpoint list incorrect: %v", bps)
	}

	d.RemoveBreakpoint(0x1002)
	if d.GetBreakpoint(0x1002) != nil {
		t.Error("breakpoint not removed")
	}
}

func TestDataBreakpoints(t *testing.T) {
	c, _ := loadCPU(0x1000,
		0xa9, 0x05, // LDA #$05
		0x85, 0x10, // STA $10
		0x85, 0x11, // STA $11
		0xa9, 0x06, // LDA #$06
		0x85, 0x11, // STA $11
	)
	rec := &breakRecorder{}
	d := cpu.NewDebugger(rec)
	c.AttachDebugger(d)

	d.AddDataBreakpoint(0x0010)
	d.AddConditionalDataBreakpoint(0x0011, 0x06)

	expectCycles(t, c.Execute(2+3+3+2+3), 13)
	if len(rec.stores) != 2 || rec.stores[0] != 0x0010 || rec.stores[1] != 0x0011 {
		t.Errorf("data breakpoint hits incorrect: %v", rec.stores)
	}

	// Detached, no more notifications.
	c.DetachDebugger()
	c.SetPC(0x1002)
	c.Step()
	if len(rec.stores) != 2 {
		t.Errorf("detached debugger still notified: %v", rec.stores)
	}
}

func TestDebuggerDoesNotAlterExecution(t *testing.T) {
	program := []byte{
		0xa2, 0x03, // LDX #$03
		0xca,       // DEX
		0x86, 0x20, // STX $20
		0x4c, 0x00, 0x10, // JMP $1000
	}

	plain, _ := loadCPU(0x1000, program...)
	plainCycles := plain.Execute(50)

	watched, _ := loadCPU(0x1000, program...)
	d := cpu.NewDebugger(&breakRecorder{})
	d.AddBreakpoint(0x1002)
	d.AddDataBreakpoint(0x0020)
	watched.AttachDebugger(d)
	watchedCycles := watched.Execute(50)

	if plainCycles != watchedCycles || plain.Reg != watched.Reg {
		t.Errorf("debugger altered execution. plain: %d %+v, watched: %d %+v",
			plainCycles, plain.Reg, watchedCycles, watched.Reg)
	}
}

type stopper struct{}

func (stopper) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	c.Stop()
}

func (stopper) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	c.Stop()
}

func TestExecuteStop(t *testing.T) {
	c, _ := loadCPU(0x1000,
		0xa9, 0x05, // LDA #$05
		0x85, 0x10, // STA $10
		0x4c, 0x00, 0x10, // JMP $1000
	)
	d := cpu.NewDebugger(stopper{})
	c.AttachDebugger(d)

	// A breakpoint handler stops Execute after the instruction that
	// reached the breakpoint.
	d.AddBreakpoint(0x1002)
	expectCycles(t, c.Execute(100), 2)
	expectPC(t, c, 0x1002)

	// A data breakpoint stops Execute after the storing instruction.
	d.RemoveBreakpoint(0x1002)
	d.AddDataBreakpoint(0x0010)
	expectCycles(t, c.Execute(100), 3)
	expectPC(t, c, 0x1004)

	// A Stop made before Execute starts is discarded.
	d.RemoveDataBreakpoint(0x0010)
	c.Stop()
	expectCycles(t, c.Execute(8), 8)
	expectPC(t, c, 0x1004)
}
