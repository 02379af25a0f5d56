package canbus

import "math"

// NodeHealth summarizes a node's self-assessed condition.
type NodeHealth uint8

const (
	NodeHealthHealthy  NodeHealth = 0
	NodeHealthWarning  NodeHealth = 1
	NodeHealthError    NodeHealth = 2
	NodeHealthCritical NodeHealth = 3
)

// NodeMode is a node's current lifecycle stage.
type NodeMode uint8

const (
	NodeModeOperational    NodeMode = 0
	NodeModeInitialization NodeMode = 1
	NodeModeMaintenance    NodeMode = 2
	NodeModeOffline        NodeMode = 3
)

// NodeStatusSizeBytes is the wire length of NodeStatusMessage.
const NodeStatusSizeBytes = 5

// NodeStatusMessage is the heartbeat every node on the bus emits
// periodically; its absence for too long marks the node offline.
type NodeStatusMessage struct {
	UptimeS uint32
	Health  NodeHealth
	Mode    NodeMode
	// CustomStatusRaw is node-specific status, 11 usable bits.
	CustomStatusRaw uint16
}

func (NodeStatusMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityNodeStatus, MessageTypeNodeStatus, nodeType, nodeID)
}

func (m NodeStatusMessage) Serialize(out []byte) {
	_ = out[:NodeStatusSizeBytes]
	putUint24(out[0:3], m.UptimeS&0xFFFFFF)
	custom := m.CustomStatusRaw & 0x7FF
	out[3] = byte(m.Health)<<6 | byte(m.Mode)<<4 | byte(custom>>7)
	out[4] = byte(custom<<1) & 0xFE
}

func DeserializeNodeStatus(in []byte) NodeStatusMessage {
	_ = in[:NodeStatusSizeBytes]
	custom := uint16(in[3]&0x0F)<<7 | uint16(in[4]>>1)
	return NodeStatusMessage{
		UptimeS:         getUint24(in[0:3]),
		Health:          NodeHealth(in[3] >> 6 & 0x3),
		Mode:            NodeMode(in[3] >> 4 & 0x3),
		CustomStatusRaw: custom,
	}
}

// PowerOutputStatus is the observed health of a single power output.
type PowerOutputStatus uint8

const (
	PowerOutputDisabled  PowerOutputStatus = 0
	PowerOutputPowerGood PowerOutputStatus = 1
	PowerOutputPowerBad  PowerOutputStatus = 2
)

// AmpOutputStatus is the per-output field embedded four times in
// AmpStatusMessage.
type AmpOutputStatus struct {
	Overwrote bool
	Status    PowerOutputStatus
}

func putAmpOutputStatus(b byte, s AmpOutputStatus) byte {
	_ = b
	var v byte
	if s.Overwrote {
		v |= 1 << 7
	}
	v |= byte(s.Status) << 5
	return v
}

func getAmpOutputStatus(b byte) AmpOutputStatus {
	return AmpOutputStatus{
		Overwrote: b&(1<<7) != 0,
		Status:    PowerOutputStatus(b >> 5 & 0x3),
	}
}

// AmpStatusSizeBytes is the wire length of AmpStatusMessage.
const AmpStatusSizeBytes = 6

// AmpStatusMessage reports the shared battery voltage and the health of
// each of the amp board's four outputs.
type AmpStatusMessage struct {
	SharedBatteryMV        uint16
	Out1, Out2, Out3, Out4 AmpOutputStatus
}

func (AmpStatusMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityAmpStatus, MessageTypeAmpStatus, nodeType, nodeID)
}

func (m AmpStatusMessage) Serialize(out []byte) {
	_ = out[:AmpStatusSizeBytes]
	putUint16(out[0:2], m.SharedBatteryMV)
	out[2] = putAmpOutputStatus(out[2], m.Out1)
	out[3] = putAmpOutputStatus(out[3], m.Out2)
	out[4] = putAmpOutputStatus(out[4], m.Out3)
	out[5] = putAmpOutputStatus(out[5], m.Out4)
}

func DeserializeAmpStatus(in []byte) AmpStatusMessage {
	_ = in[:AmpStatusSizeBytes]
	return AmpStatusMessage{
		SharedBatteryMV: getUint16(in[0:2]),
		Out1:            getAmpOutputStatus(in[2]),
		Out2:            getAmpOutputStatus(in[3]),
		Out3:            getAmpOutputStatus(in[4]),
		Out4:            getAmpOutputStatus(in[5]),
	}
}

// PayloadEPSOutputStatus is the per-output field embedded three times in
// PayloadEPSStatusMessage.
type PayloadEPSOutputStatus struct {
	CurrentMA uint16
	Overwrote bool
	Status    PowerOutputStatus
}

func putPayloadEPSOutputStatus(out []byte, s PayloadEPSOutputStatus) {
	current := s.CurrentMA & 0x1FFF
	out[0] = byte(current >> 5)
	b1 := byte(current<<3) & 0xF8
	if s.Overwrote {
		b1 |= 1 << 2
	}
	b1 |= byte(s.Status) & 0x3
	out[1] = b1
}

func getPayloadEPSOutputStatus(in []byte) PayloadEPSOutputStatus {
	current := uint16(in[0])<<5 | uint16(in[1])>>3
	return PayloadEPSOutputStatus{
		CurrentMA: current & 0x1FFF,
		Overwrote: in[1]&(1<<2) != 0,
		Status:    PowerOutputStatus(in[1] & 0x3),
	}
}

// PayloadEPSStatusSizeBytes is the wire length of PayloadEPSStatusMessage.
const PayloadEPSStatusSizeBytes = 14

// PayloadEPSStatusMessage reports both batteries and all three outputs of
// a payload EPS node.
type PayloadEPSStatusMessage struct {
	Battery1MV                    uint16
	Battery1TemperatureRaw        uint16 // unit 0.1C
	Battery2MV                    uint16
	Battery2TemperatureRaw        uint16 // unit 0.1C
	Output3V3, Output5V, Output9V PayloadEPSOutputStatus
}

func (PayloadEPSStatusMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityPayloadEPSStatus, MessageTypePayloadEPSStatus, nodeType, nodeID)
}

func (m PayloadEPSStatusMessage) Serialize(out []byte) {
	_ = out[:PayloadEPSStatusSizeBytes]
	putUint16(out[0:2], m.Battery1MV)
	putUint16(out[2:4], m.Battery1TemperatureRaw)
	putUint16(out[4:6], m.Battery2MV)
	putUint16(out[6:8], m.Battery2TemperatureRaw)
	putPayloadEPSOutputStatus(out[8:10], m.Output3V3)
	putPayloadEPSOutputStatus(out[10:12], m.Output5V)
	putPayloadEPSOutputStatus(out[12:14], m.Output9V)
}

func DeserializePayloadEPSStatus(in []byte) PayloadEPSStatusMessage {
	_ = in[:PayloadEPSStatusSizeBytes]
	return PayloadEPSStatusMessage{
		Battery1MV:             getUint16(in[0:2]),
		Battery1TemperatureRaw: getUint16(in[2:4]),
		Battery2MV:             getUint16(in[4:6]),
		Battery2TemperatureRaw: getUint16(in[6:8]),
		Output3V3:              getPayloadEPSOutputStatus(in[8:10]),
		Output5V:               getPayloadEPSOutputStatus(in[10:12]),
		Output9V:               getPayloadEPSOutputStatus(in[12:14]),
	}
}

// FlightStage is the rocket's coarse flight-software state machine
// position; stages may be skipped and the machine may fall back to an
// earlier stage.
type FlightStage uint8

const (
	FlightStageLowPower       FlightStage = 0
	FlightStageSelfTest       FlightStage = 1
	FlightStageArmed          FlightStage = 2
	FlightStagePoweredAscent  FlightStage = 3
	FlightStageCoasting       FlightStage = 4
	FlightStageDrogueDeployed FlightStage = 5
	FlightStageMainDeployed   FlightStage = 6
	FlightStageLanded         FlightStage = 7
)

// VLStatusSizeBytes is the wire length of VLStatusMessage.
const VLStatusSizeBytes = 5

// VLStatusMessage reports the flight computer's current stage and battery
// voltage.
type VLStatusMessage struct {
	FlightStage FlightStage
	BatteryMV   uint16
}

func (VLStatusMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityVLStatus, MessageTypeVLStatus, nodeType, nodeID)
}

func (m VLStatusMessage) Serialize(out []byte) {
	_ = out[:VLStatusSizeBytes]
	out[0] = byte(m.FlightStage)
	putUint16(out[1:3], m.BatteryMV)
	out[3], out[4] = 0, 0
}

func DeserializeVLStatus(in []byte) VLStatusMessage {
	_ = in[:VLStatusSizeBytes]
	return VLStatusMessage{
		FlightStage: FlightStage(in[0]),
		BatteryMV:   getUint16(in[1:3]),
	}
}

// IcarusStatusSizeBytes is the wire length of IcarusStatusMessage.
const IcarusStatusSizeBytes = 6

// IcarusStatusMessage reports the payload bay airbrake actuator's current
// extension, temperature, and drive current.
type IcarusStatusMessage struct {
	// ExtensionPercentage is a fraction in 0..1.
	ExtensionPercentage float32
	// TemperatureC is in degrees Celsius, tenths precision on the wire.
	TemperatureC float32
	// CurrentA is drive current in amps, hundredths precision on the wire.
	CurrentA float32
}

func (IcarusStatusMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityIcarusStatus, MessageTypeIcarusStatus, nodeType, nodeID)
}

func (m IcarusStatusMessage) Serialize(out []byte) {
	_ = out[:IcarusStatusSizeBytes]
	putUint16(out[0:2], uint16(math.Round(float64(m.ExtensionPercentage)*1000)))
	putUint16(out[2:4], uint16(int16(math.Round(float64(m.TemperatureC)*10))))
	putUint16(out[4:6], uint16(math.Round(float64(m.CurrentA)*100)))
}

func DeserializeIcarusStatus(in []byte) IcarusStatusMessage {
	_ = in[:IcarusStatusSizeBytes]
	return IcarusStatusMessage{
		ExtensionPercentage: float32(getUint16(in[0:2])) / 1000,
		TemperatureC:        float32(int16(getUint16(in[2:4]))) / 10,
		CurrentA:            float32(getUint16(in[4:6])) / 100,
	}
}
