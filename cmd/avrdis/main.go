// Command avrdis disassembles a raw AVR8 program image and prints it to
// stdout or, optionally, to a file.
package main

import (
	"fmt"
	"os"

	"github.com/KRousselFr/EmulatorAVR8/disasm"
)

// romSource serves program words out of a flat byte slice, little-endian
// word order (the convention AVR raw/objcopy binary images use for their
// opcode stream).
type romSource []byte

func (r romSource) ReadProgramMemory(addr uint32) (uint16, bool) {
	i := addr * 2
	if i+1 >= uint32(len(r)) {
		return 0, false
	}
	return uint16(r[i+1])<<8 | uint16(r[i]), true
}

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <inputfile> [outputfile]\n", os.Args[0])
		os.Exit(1)
	}

	inputFile := os.Args[1]
	var outputFile string
	if len(os.Args) == 3 {
		outputFile = os.Args[2]
	}

	code, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading input file: %v\n", err)
		os.Exit(1)
	}

	src := romSource(code)
	d := disasm.New()
	text := d.DisassembleMemory(src, 0, uint32(len(code)/2)-1)

	if outputFile == "" {
		fmt.Print(text)
		return
	}
	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("disassembly written to %s\n", outputFile)
}
