package cpu

import (
	"fmt"
	"io"

	"github.com/KRousselFr/EmulatorAVR8/disasm"
)

// traceWriter is the sink a Tracer writes lines to. Any io.Writer
// satisfies it; the alias exists so SetTraceOutput's signature reads
// naturally without importing io everywhere it is called.
type traceWriter = io.Writer

// Tracer owns a disassembler instance and writes one logical record per
// executed instruction: the disassembly of the instruction fetched before
// execution, followed by a register/flag snapshot taken after. Attaching
// or detaching the sink is done through CPU.SetTraceOutput, which
// allocates or releases the Tracer cleanly.
type Tracer struct {
	w  io.Writer
	da *disasm.Disassembler
}

func newTracer(w io.Writer, da *disasm.Disassembler) *Tracer {
	return &Tracer{w: w, da: da}
}

func (t *Tracer) markReset() {
	if t == nil {
		return
	}
	fmt.Fprintln(t.w, "*** RESET! ***")
}

// emitBefore writes the disassembly line for the instruction about to be
// executed, fetched via src at pc.
func (t *Tracer) emitBefore(src disasm.Source, pc uint32) {
	if t == nil {
		return
	}
	line, _ := t.da.DisassembleInstructionAt(src, pc)
	fmt.Fprintln(t.w, line)
}

// emitAfter writes the post-execution register/flag snapshot.
func (t *Tracer) emitAfter(c *CPU) {
	if t == nil {
		return
	}
	fmt.Fprintf(t.w, "=> PC=$%05X\n", c.PC)
	fmt.Fprintf(t.w, "   SP=$%04X\n", c.SP)
	fmt.Fprint(t.w, "    ")
	for i := 0; i < 32; i++ {
		fmt.Fprintf(t.w, "R%d=$%02X ", i, c.R[i])
	}
	fmt.Fprintln(t.w)
	fmt.Fprintf(t.w, "   SREG=$%02X (I=%v T=%v H=%v S=%v V=%v N=%v Z=%v C=%v)\n",
		c.SREG(), c.flagI, c.flagT, c.flagH, c.Sign(), c.flagV, c.flagN, c.flagZ, c.flagC)
}
