package canbus

import "math"

// PowerOutputOverwrite is a 2-bit forcing state applied to a single power
// output, overriding whatever its normal control logic would decide.
type PowerOutputOverwrite uint8

const (
	PowerOutputNoOverwrite   PowerOutputOverwrite = 0
	PowerOutputForceEnabled  PowerOutputOverwrite = 1
	PowerOutputForceDisabled PowerOutputOverwrite = 2
)

// ResetSizeBytes is the wire length of ResetMessage.
const ResetSizeBytes = 2

// ResetMessage asks the addressed node (or, if ResetAll is set, every node)
// to restart, optionally straight into its bootloader.
type ResetMessage struct {
	NodeID         uint16
	ResetAll       bool
	IntoBootloader bool
}

func (ResetMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityReset, MessageTypeReset, nodeType, nodeID)
}

func (m ResetMessage) Serialize(out []byte) {
	_ = out[:ResetSizeBytes]
	nid := m.NodeID & uint16(nodeIDMask)
	out[0] = byte(nid >> 4)
	out[1] = byte(nid<<4) & 0xF0
	if m.ResetAll {
		out[1] |= 1 << 3
	}
	if m.IntoBootloader {
		out[1] |= 1 << 2
	}
}

func DeserializeReset(in []byte) ResetMessage {
	_ = in[:ResetSizeBytes]
	nid := uint16(in[0])<<4 | uint16(in[1])>>4
	return ResetMessage{
		NodeID:         nid,
		ResetAll:       in[1]&(1<<3) != 0,
		IntoBootloader: in[1]&(1<<2) != 0,
	}
}

// AckSizeBytes is the wire length of AckMessage.
const AckSizeBytes = 4

// AckMessage acknowledges receipt of a previously sent transfer identified
// by its CRC.
type AckMessage struct {
	CRC    uint16
	NodeID uint16
}

func (AckMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityAck, MessageTypeAck, nodeType, nodeID)
}

func (m AckMessage) Serialize(out []byte) {
	_ = out[:AckSizeBytes]
	putUint16(out[0:2], m.CRC)
	putUint16(out[2:4], (m.NodeID&uint16(nodeIDMask))<<4)
}

func DeserializeAck(in []byte) AckMessage {
	_ = in[:AckSizeBytes]
	return AckMessage{
		CRC:    getUint16(in[0:2]),
		NodeID: getUint16(in[2:4]) >> 4,
	}
}

// AmpOverwriteSizeBytes is the wire length of AmpOverwriteMessage.
const AmpOverwriteSizeBytes = 1

// AmpOverwriteMessage forces the four amp board outputs into a fixed state
// regardless of their normal control loop.
type AmpOverwriteMessage struct {
	Out1, Out2, Out3, Out4 PowerOutputOverwrite
}

func (AmpOverwriteMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityAmpOverwrite, MessageTypeAmpOverwrite, nodeType, nodeID)
}

func (m AmpOverwriteMessage) Serialize(out []byte) {
	_ = out[:AmpOverwriteSizeBytes]
	out[0] = byte(m.Out1)<<6 | byte(m.Out2)<<4 | byte(m.Out3)<<2 | byte(m.Out4)
}

func DeserializeAmpOverwrite(in []byte) AmpOverwriteMessage {
	_ = in[:AmpOverwriteSizeBytes]
	b := in[0]
	return AmpOverwriteMessage{
		Out1: PowerOutputOverwrite(b >> 6 & 0x3),
		Out2: PowerOutputOverwrite(b >> 4 & 0x3),
		Out3: PowerOutputOverwrite(b >> 2 & 0x3),
		Out4: PowerOutputOverwrite(b & 0x3),
	}
}

// AmpResetOutputSizeBytes is the wire length of AmpResetOutputMessage.
const AmpResetOutputSizeBytes = 1

// AmpResetOutputMessage asks the amp board to power-cycle a single output
// (1..4). Adopted from the fleet's original amp firmware, which the
// distilled catalog names (message type 68) without spelling out its
// payload.
type AmpResetOutputMessage struct {
	Output uint8
}

func (AmpResetOutputMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityAmpResetOutput, MessageTypeAmpResetOutput, nodeType, nodeID)
}

func (m AmpResetOutputMessage) Serialize(out []byte) {
	_ = out[:AmpResetOutputSizeBytes]
	out[0] = m.Output
}

func DeserializeAmpResetOutput(in []byte) AmpResetOutputMessage {
	_ = in[:AmpResetOutputSizeBytes]
	return AmpResetOutputMessage{Output: in[0]}
}

// AmpControlSizeBytes is the wire length of AmpControlMessage.
const AmpControlSizeBytes = 1

// AmpControlMessage sets the normal (non-overwritten) enable state of the
// four amp board outputs.
type AmpControlMessage struct {
	Out1Enable, Out2Enable, Out3Enable, Out4Enable bool
}

func (AmpControlMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityAmpControl, MessageTypeAmpControl, nodeType, nodeID)
}

func (m AmpControlMessage) Serialize(out []byte) {
	_ = out[:AmpControlSizeBytes]
	var b byte
	if m.Out1Enable {
		b |= 1 << 7
	}
	if m.Out2Enable {
		b |= 1 << 6
	}
	if m.Out3Enable {
		b |= 1 << 5
	}
	if m.Out4Enable {
		b |= 1 << 4
	}
	out[0] = b
}

func DeserializeAmpControl(in []byte) AmpControlMessage {
	_ = in[:AmpControlSizeBytes]
	b := in[0]
	return AmpControlMessage{
		Out1Enable: b&(1<<7) != 0,
		Out2Enable: b&(1<<6) != 0,
		Out3Enable: b&(1<<5) != 0,
		Out4Enable: b&(1<<4) != 0,
	}
}

// PayloadEPSOutputOverwriteSizeBytes is the wire length of
// PayloadEPSOutputOverwriteMessage.
const PayloadEPSOutputOverwriteSizeBytes = 3

// PayloadEPSOutputOverwriteMessage forces the three payload EPS outputs of
// a specific EPS node into a fixed state.
type PayloadEPSOutputOverwriteMessage struct {
	Out3V3, Out5V, Out9V PowerOutputOverwrite
	NodeID               uint16
}

func (PayloadEPSOutputOverwriteMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityPayloadEPSOutputOverwrite, MessageTypePayloadEPSOutputOverwrite, nodeType, nodeID)
}

func (m PayloadEPSOutputOverwriteMessage) Serialize(out []byte) {
	_ = out[:PayloadEPSOutputOverwriteSizeBytes]
	nid := m.NodeID & uint16(nodeIDMask)
	out[0] = byte(m.Out3V3)<<6 | byte(m.Out5V)<<4 | byte(m.Out9V)<<2 | byte(nid>>10)
	out[1] = byte(nid >> 2)
	out[2] = byte(nid<<6) & 0xC0
}

func DeserializePayloadEPSOutputOverwrite(in []byte) PayloadEPSOutputOverwriteMessage {
	_ = in[:PayloadEPSOutputOverwriteSizeBytes]
	nid := uint16(in[0]&0x3)<<10 | uint16(in[1])<<2 | uint16(in[2])>>6
	return PayloadEPSOutputOverwriteMessage{
		Out3V3: PowerOutputOverwrite(in[0] >> 6 & 0x3),
		Out5V:  PowerOutputOverwrite(in[0] >> 4 & 0x3),
		Out9V:  PowerOutputOverwrite(in[0] >> 2 & 0x3),
		NodeID: nid,
	}
}

// AirBrakesControlSizeBytes is the wire length of AirBrakesControlMessage.
const AirBrakesControlSizeBytes = 6

// AirBrakesControlMessage commands the active air brakes to a target
// extension fraction.
type AirBrakesControlMessage struct {
	// ExtensionPercentage is the commanded extension as a fraction in 0..1.
	ExtensionPercentage float32
}

func (AirBrakesControlMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityAirBrakesControl, MessageTypeAirBrakesControl, nodeType, nodeID)
}

func (m AirBrakesControlMessage) Serialize(out []byte) {
	_ = out[:AirBrakesControlSizeBytes]
	putUint16(out[0:2], uint16(math.Round(float64(m.ExtensionPercentage)*1000)))
	out[2], out[3], out[4], out[5] = 0, 0, 0, 0
}

func DeserializeAirBrakesControl(in []byte) AirBrakesControlMessage {
	_ = in[:AirBrakesControlSizeBytes]
	return AirBrakesControlMessage{ExtensionPercentage: float32(getUint16(in[0:2])) / 1000}
}
