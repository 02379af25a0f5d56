package canbus

// Extended CAN identifier layout, MSB to LSB: 3 reserved bits (zero), 3 bits
// priority, 8 bits message type, 6 bits node type, 12 bits node ID.
const (
	priorityBits    = 3
	messageTypeBits = 8
	nodeTypeBits    = 6
	nodeIDBits      = 12

	nodeIDShift      = 0
	nodeTypeShift    = nodeIDShift + nodeIDBits
	messageTypeShift = nodeTypeShift + nodeTypeBits
	priorityShift    = messageTypeShift + messageTypeBits

	priorityMask    = uint32(1)<<priorityBits - 1
	messageTypeMask = uint32(1)<<messageTypeBits - 1
	nodeTypeMask    = uint32(1)<<nodeTypeBits - 1
	nodeIDMask      = uint32(1)<<nodeIDBits - 1
)

// Priority is a 3-bit CAN arbitration priority; 0 is highest.
type Priority uint8

// PriorityMax is the highest representable (i.e. numerically largest,
// lowest-precedence) priority value.
const PriorityMax Priority = 7

// MakeID packs (priority, messageType, nodeType, nodeID) into a 29-bit
// extended CAN identifier per the fleet layout. Each field is masked to its
// declared width; out-of-range values are silently truncated rather than
// rejected — the composer trusts its caller, matching the fixed-size,
// panic-free contract the rest of the codec relies on. The reserved top 3
// bits of the returned 32-bit value are always zero.
func MakeID(priority Priority, messageType uint8, nodeType uint8, nodeID uint16) uint32 {
	id := (uint32(priority)&priorityMask)<<priorityShift |
		(uint32(messageType)&messageTypeMask)<<messageTypeShift |
		(uint32(nodeType)&nodeTypeMask)<<nodeTypeShift |
		(uint32(nodeID)&nodeIDMask)<<nodeIDShift
	return id
}

// SplitID decomposes an extended CAN identifier back into its fields. It is
// the inverse of MakeID and is mainly useful for tests and diagnostics; the
// decoder itself only ever needs the message type field (see messageTypeOf).
func SplitID(id uint32) (priority Priority, messageType uint8, nodeType uint8, nodeID uint16) {
	priority = Priority((id >> priorityShift) & priorityMask)
	messageType = uint8((id >> messageTypeShift) & messageTypeMask)
	nodeType = uint8((id >> nodeTypeShift) & nodeTypeMask)
	nodeID = uint16((id >> nodeIDShift) & nodeIDMask)
	return
}

func messageTypeOf(id uint32) uint8 {
	return uint8((id >> messageTypeShift) & messageTypeMask)
}

// Node types for every role in the fleet, per the network's node type
// registry. The lower the number, the higher the arbitration priority a
// node's frames tend to receive when priorities otherwise tie; the maximum
// representable node type is 63.
const (
	NodeTypeAvionics           uint8 = 5  // main flight computer
	NodeTypePowerDistribution  uint8 = 10 // switches and monitors bus power outputs
	NodeTypeAirBrakes          uint8 = 15 // active air brakes actuator node
	NodeTypePayloadActivation  uint8 = 20 // arms and fires the payload bay
	NodeTypeStrainGauge        uint8 = 25 // structural strain-gauge (Ozys) node
	NodeTypeBulkhead           uint8 = 30 // bulkhead sensor node
	NodeTypePayloadPowerSupply uint8 = 40 // EPS node inside the payload bay
	NodeTypeGroundSupport      uint8 = 50 // ground station / umbilical interface
)
