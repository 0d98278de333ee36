// Command avrstep loads a raw AVR8 program image into a flat RAM/ROM model
// and single-steps it, tracing every instruction to stdout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/KRousselFr/EmulatorAVR8/cpu"
)

// flatMemory is a demonstration MemorySpace: program memory is the loaded
// image, data memory is a fixed-size byte array with no I/O routing. It
// exists only to give this CLI something to run against — the core itself
// never depends on it.
type flatMemory struct {
	prog []byte
	data []byte
}

func newFlatMemory(prog []byte, dataSize int) *flatMemory {
	return &flatMemory{prog: prog, data: make([]byte, dataSize)}
}

func (m *flatMemory) ReadProgramMemory(addr uint32) (uint16, bool) {
	i := addr * 2
	if i+1 >= uint32(len(m.prog)) {
		return 0, false
	}
	return uint16(m.prog[i+1])<<8 | uint16(m.prog[i]), true
}

func (m *flatMemory) ReadDataMemory(addr uint16) (uint8, bool) {
	if int(addr) >= len(m.data) {
		return 0, false
	}
	return m.data[addr], true
}

func (m *flatMemory) WriteDataMemory(addr uint16, v uint8) bool {
	if int(addr) >= len(m.data) {
		return false
	}
	m.data[addr] = v
	return true
}

func main() {
	steps := flag.Int("steps", 10, "number of instructions to execute")
	dataSize := flag.Int("ram", 4096, "size of data memory in bytes")
	largePC := flag.Bool("largepc", false, "use a 22-bit program counter")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <inputfile>\n", os.Args[0])
		os.Exit(1)
	}

	code, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("error reading input file: %v", err)
	}

	mem := newFlatMemory(code, *dataSize)
	c := cpu.New(mem, *largePC)
	c.SP = uint16(*dataSize - 1)
	c.SetTraceOutput(os.Stdout)

	for i := 0; i < *steps; i++ {
		if c.IsAsleep() {
			fmt.Println("cpu asleep, stopping")
			break
		}
		if _, err := c.Step(); err != nil {
			fmt.Fprintf(os.Stderr, "stopped after %d steps: %v\n", i, err)
			os.Exit(1)
		}
	}

	fmt.Printf("\nfinal state: %s, %d cycles elapsed\n", c.String(), c.ElapsedCycles())
}
