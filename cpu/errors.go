// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"
	"log"
)

// An OpcodeError reports an opcode byte the emulator does not implement.
// The byte's address is the location it was fetched from.
type OpcodeError struct {
	Addr   uint16
	Opcode byte
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("unimplemented opcode $%02X at $%04X", e.Opcode, e.Addr)
}

// OpcodeHandler is an interface implemented by types that wish to be
// notified when the CPU fetches an opcode it cannot execute. Execution
// continues with the byte following the opcode once the handler returns.
type OpcodeHandler interface {
	OnUnknownOpcode(cpu *CPU, err *OpcodeError)
}

// logHandler reports unknown opcodes through the standard logger.
type logHandler struct{}

func (logHandler) OnUnknownOpcode(cpu *CPU, err *OpcodeError) {
	log.Printf("cpu: %v", err)
}
