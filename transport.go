package canbus

// Transmitter is the CAN driver boundary this package sends frames
// through. It is deliberately minimal and abstract — no concrete driver
// ships in this module, matching the physical CAN transceiver being an
// external collaborator per the codec's scope. Grounded on
// original_source/firmware-common-new/src/can_bus/mod.rs's CanBusTX trait.
type Transmitter interface {
	Send(id uint32, data []byte) error
}

// Receiver is the CAN driver boundary this package receives frames from.
// TimestampUs is the caller's monotonic microsecond clock at the moment
// the frame was captured, used by Decoder for LRU eviction ordering.
// Grounded on can_bus/mod.rs's CanBusRX trait.
type Receiver interface {
	Receive() (id uint32, data []byte, timestampUs uint64, err error)
}

// SendMessage serializes m and pushes its frames to tx in order, using the
// given node identity to compute the wire identifier.
func SendMessage(tx Transmitter, m Message, nodeType uint8, nodeID uint16) error {
	e := NewEncoder(m, nodeType, nodeID)
	for e.HasNext() {
		f := e.Next()
		if err := tx.Send(f.ID, f.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
