package cpu

// MemorySpace is the external collaborator every CPU instance is bound to.
// It exposes two independent address spaces, matching the AVR8's Harvard
// architecture: word-addressed program memory and byte-addressed data
// memory. A read returns ok=false when the address is not backed; a write
// returns ok=false to refuse it.
//
// Implementations are not provided by this package — RAM/ROM modeling,
// I/O register routing and peripheral behavior are all external
// collaborators the core only ever calls through this interface.
type MemorySpace interface {
	ReadProgramMemory(addr uint32) (word uint16, ok bool)
	ReadDataMemory(addr uint16) (value uint8, ok bool)
	WriteDataMemory(addr uint16, value uint8) (ok bool)
}

// readProgWord fetches one program-memory word, charging one cycle, and
// fails with AddressUnreadable if the backend refuses.
func (c *CPU) readProgWord(addr uint32) (uint16, error) {
	w, ok := c.mem.ReadProgramMemory(addr)
	c.cycles++
	if !ok {
		return 0, &OpError{Kind: KindAddressUnreadable, PC: c.PC, Addr: addr}
	}
	return w, nil
}

// readDataByte fetches one data-memory byte, charging one cycle.
func (c *CPU) readDataByte(addr uint16) (uint8, error) {
	v, ok := c.mem.ReadDataMemory(addr)
	c.cycles++
	if !ok {
		return 0, &OpError{Kind: KindAddressUnreadable, PC: c.PC, Addr: uint32(addr)}
	}
	return v, nil
}

// writeDataByte stores one data-memory byte, charging one cycle.
func (c *CPU) writeDataByte(addr uint16, val uint8) error {
	ok := c.mem.WriteDataMemory(addr, val)
	c.cycles++
	if !ok {
		return &OpError{Kind: KindAddressUnwritable, PC: c.PC, Addr: uint32(addr), Value: val}
	}
	return nil
}

// readIOByte is readDataByte corrected for the 1-cycle (not 2-cycle) cost
// of I/O register access.
func (c *CPU) readIOByte(addr uint16) (uint8, error) {
	v, err := c.readDataByte(addr)
	if err == nil {
		c.cycles--
	}
	return v, err
}

// writeIOByte is writeDataByte corrected for the 1-cycle cost of I/O
// register access.
func (c *CPU) writeIOByte(addr uint16, val uint8) error {
	err := c.writeDataByte(addr, val)
	if err == nil {
		c.cycles--
	}
	return err
}
