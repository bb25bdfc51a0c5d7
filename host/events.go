// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/sim6502/cpu"

// cpuEvents receives breakpoint and unknown-opcode notifications from the
// CPU while the host runs it. A breakpoint stops the run in progress.
type cpuEvents struct {
	host *Host
}

func (e cpuEvents) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	e.host.state.Store(stateBreakpoint)
	c.Stop()
	e.host.printf("Breakpoint hit at $%04X.\n", b.Address)
}

func (e cpuEvents) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	e.host.state.Store(stateBreakpoint)
	c.Stop()
	e.host.printf("Data breakpoint hit on address $%04X.\n", b.Address)
}

func (e cpuEvents) OnUnknownOpcode(c *cpu.CPU, err *cpu.OpcodeError) {
	e.host.printf("Warning: %v.\n", err)
}
