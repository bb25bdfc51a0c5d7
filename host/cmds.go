// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

// A cmdHandler is stored as the Data of every command in the tree.
type cmdHandler = func(h *Host, c *cmd.Command, args []string) error

var cmds *cmd.Tree

// The command handlers refer to cmds for help output, so the tree is built
// in init to avoid an initialization cycle.
func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "sim6502"})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        cmdHandler((*Host).cmdHelp),
	})

	// Breakpoint commands
	bp := root.AddSubtree(cmd.TreeDescriptor{Name: "breakpoint", Brief: "Breakpoint commands"})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List breakpoints",
		Description: "List all current breakpoints and their hit counts.",
		Usage:       "breakpoint list",
		Data:        cmdHandler((*Host).cmdBreakpointList),
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Add a breakpoint",
		Description: "Add a breakpoint at the specified address." +
			" The breakpoint starts enabled.",
		Usage: "breakpoint add <address>",
		Data:  cmdHandler((*Host).cmdBreakpointAdd),
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "remove",
		Brief:       "Remove a breakpoint",
		Description: "Remove a breakpoint at the specified address.",
		Usage:       "breakpoint remove <address>",
		Data:        cmdHandler((*Host).cmdBreakpointRemove),
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "enable",
		Brief:       "Enable a breakpoint",
		Description: "Enable a previously added breakpoint.",
		Usage:       "breakpoint enable <address>",
		Data:        cmdHandler((*Host).cmdBreakpointEnable),
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:  "disable",
		Brief: "Disable a breakpoint",
		Description: "Disable a previously added breakpoint. This" +
			" prevents the breakpoint from being hit when running the" +
			" CPU.",
		Usage: "breakpoint disable <address>",
		Data:  cmdHandler((*Host).cmdBreakpointDisable),
	})

	// Data breakpoint commands
	db := root.AddSubtree(cmd.TreeDescriptor{Name: "databreakpoint", Brief: "Data breakpoint commands"})
	db.AddCommand(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List data breakpoints",
		Description: "List all current data breakpoints and their hit counts.",
		Usage:       "databreakpoint list",
		Data:        cmdHandler((*Host).cmdDataBreakpointList),
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Add a data breakpoint",
		Description: "Add a new data breakpoint at the specified" +
			" memory address. When the CPU stores data at this address," +
			" the breakpoint stops the CPU. Optionally, a byte value may" +
			" be specified, and the CPU will stop only when this value" +
			" is stored.",
		Usage: "databreakpoint add <address> [<value>]",
		Data:  cmdHandler((*Host).cmdDataBreakpointAdd),
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:  "remove",
		Brief: "Remove a data breakpoint",
		Description: "Remove a previously added data breakpoint at" +
			" the specified memory address.",
		Usage: "databreakpoint remove <address>",
		Data:  cmdHandler((*Host).cmdDataBreakpointRemove),
	})

	root.AddCommand(cmd.CommandDescriptor{
		Name:  "execute",
		Brief: "Run the CPU for a number of cycles",
		Description: "Run the CPU until the cycle budget has been spent," +
			" a breakpoint is hit, or the user types Ctrl-C. The last" +
			" instruction always completes, so slightly more cycles than" +
			" requested may be used.",
		Usage: "execute <cycles>",
		Data:  cmdHandler((*Host).cmdExecute),
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "load",
		Brief: "Load a binary file",
		Description: "Load the contents of a raw binary file into memory" +
			" at the specified address. The program counter is not changed.",
		Usage: "load <filename> <address>",
		Data:  cmdHandler((*Host).cmdLoad),
	})

	// Memory commands
	me := root.AddSubtree(cmd.TreeDescriptor{Name: "memory", Brief: "Memory commands"})
	me.AddCommand(cmd.CommandDescriptor{
		Name:  "dump",
		Brief: "Dump memory at address",
		Description: "Dump the contents of memory starting from the" +
			" specified address. The number of bytes to dump may be" +
			" specified as an option. Without an address, the dump" +
			" continues where the previous one ended.",
		Usage: "memory dump [<address>] [<bytes>]",
		Data:  cmdHandler((*Host).cmdMemoryDump),
	})
	me.AddCommand(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Store bytes in memory",
		Description: "Store one or more byte values in memory," +
			" starting at the specified address.",
		Usage: "memory set <address> <byte> [<byte> ...]",
		Data:  cmdHandler((*Host).cmdMemorySet),
	})

	root.AddCommand(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
		Data:        cmdHandler((*Host).cmdQuit),
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "register",
		Brief: "Display or change registers",
		Description: "Without arguments, display the current contents of" +
			" all CPU registers. With a register name and value, change the" +
			" register. Register names are a, x, y, sp, pc and the flags c," +
			" z, i, d, b, v and n.",
		Usage: "register [<name> <value>]",
		Data:  cmdHandler((*Host).cmdRegister),
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "reset",
		Brief: "Reset the CPU and memory",
		Description: "Put the CPU registers in their power-up state, zero" +
			" the cycle counter and clear all memory. Breakpoints are kept.",
		Usage: "reset",
		Data:  cmdHandler((*Host).cmdReset),
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. Type the set" +
			" command without a variable name or value to display the current" +
			" values of all configuration variables.",
		Usage: "set [<var> <value>]",
		Data:  cmdHandler((*Host).cmdSet),
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "step",
		Brief: "Step the CPU",
		Description: "Step the CPU by a single instruction. The number of" +
			" steps may be specified as an option. Stepping stops early when" +
			" a breakpoint is hit.",
		Usage: "step [<count>]",
		Data:  cmdHandler((*Host).cmdStep),
	})

	// Add command shortcuts.
	root.AddShortcut("ba", "breakpoint add")
	root.AddShortcut("br", "breakpoint remove")
	root.AddShortcut("bl", "breakpoint list")
	root.AddShortcut("be", "breakpoint enable")
	root.AddShortcut("bd", "breakpoint disable")
	root.AddShortcut("dbl", "databreakpoint list")
	root.AddShortcut("dba", "databreakpoint add")
	root.AddShortcut("dbr", "databreakpoint remove")
	root.AddShortcut("m", "memory dump")
	root.AddShortcut("ms", "memory set")
	root.AddShortcut("r", "register")
	root.AddShortcut("s", "step")
	root.AddShortcut("?", "help")

	cmds = root
}
