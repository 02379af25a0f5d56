package canbus

// encoderScratchSize is the largest SIZE_BYTES in the catalog rounded up;
// DataTransferMessage at 36 bytes is the current high-water mark, so 64
// leaves headroom for future message classes without resizing every
// encoder on the stack. Grounded on go-canard's TxQueue, which likewise
// serializes once into a fixed scratch buffer before framing.
const encoderScratchSize = 64

// Frame is one outgoing CAN frame: an identifier and up to 8 payload
// bytes, the last of which is always a tail byte.
type Frame struct {
	ID   uint32
	Data [8]byte
	Len  int
}

// Bytes returns the frame's payload, including its trailing tail byte.
func (f *Frame) Bytes() []byte { return f.Data[:f.Len] }

// Encoder splits one typed message into a sequence of CAN frames. It holds
// no pointers and performs no I/O; construct one, drain it with
// Next/HasNext, and discard it.
type Encoder struct {
	id         uint32
	scratch    [encoderScratchSize]byte
	messageLen int
	crc        uint16
	offset     int
	toggle     bool
	started    bool
}

// NewEncoder serializes m once and prepares an Encoder to frame it for
// transmission under the given node identity.
func NewEncoder(m Message, nodeType uint8, nodeID uint16) Encoder {
	var e Encoder
	e.id = m.WireID(nodeType, nodeID)
	e.messageLen = m.serialize(e.scratch[:])
	e.crc = crc16(e.scratch[:e.messageLen])
	return e
}

// HasNext reports whether another frame remains to be emitted.
func (e *Encoder) HasNext() bool {
	if !e.started {
		return true
	}
	return e.offset < e.messageLen
}

// Next produces the next frame of the transfer. It must not be called once
// HasNext returns false.
func (e *Encoder) Next() Frame {
	if !e.started && e.messageLen <= 7 {
		e.started = true
		var f Frame
		f.ID = e.id
		n := copy(f.Data[:], e.scratch[:e.messageLen])
		f.Data[n] = byte(makeTail(true, true, false))
		f.Len = n + 1
		e.offset = e.messageLen
		return f
	}

	if !e.started {
		e.started = true
		var f Frame
		f.ID = e.id
		f.Data[0] = byte(e.crc)
		f.Data[1] = byte(e.crc >> 8)
		n := copy(f.Data[2:7], e.scratch[0:min(5, e.messageLen)])
		f.Data[2+n] = byte(makeTail(true, false, false))
		f.Len = 2 + n + 1
		e.offset = 5
		e.toggle = !e.toggle
		return f
	}

	remaining := e.messageLen - e.offset
	if remaining <= 7 {
		var f Frame
		f.ID = e.id
		n := copy(f.Data[:], e.scratch[e.offset:e.messageLen])
		f.Data[n] = byte(makeTail(false, true, e.toggle))
		f.Len = n + 1
		e.offset = e.messageLen
		e.toggle = !e.toggle
		return f
	}

	var f Frame
	f.ID = e.id
	n := copy(f.Data[:7], e.scratch[e.offset:e.offset+7])
	f.Data[n] = byte(makeTail(false, false, e.toggle))
	f.Len = n + 1
	e.offset += 7
	e.toggle = !e.toggle
	return f
}
