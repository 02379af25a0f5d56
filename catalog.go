package canbus

// Message type identifiers, per the fleet's message catalog. Each constant
// is the u8 placed in the message_type field of the extended CAN ID.
const (
	MessageTypeReset                     uint8 = 0
	MessageTypeUnixTime                  uint8 = 7
	MessageTypePreUnixTime               uint8 = 8
	MessageTypeDataTransfer              uint8 = 16
	MessageTypeNodeStatus                uint8 = 32
	MessageTypeAmpStatus                 uint8 = 33
	MessageTypePayloadEPSStatus          uint8 = 34
	MessageTypeVLStatus                  uint8 = 36
	MessageTypeAmpControl                uint8 = 64
	MessageTypePayloadEPSOutputOverwrite uint8 = 65
	MessageTypeAck                       uint8 = 66
	MessageTypeAmpOverwrite              uint8 = 67
	MessageTypeAmpResetOutput            uint8 = 68
	MessageTypeAirBrakesControl          uint8 = 69
	MessageTypeBaroMeasurement           uint8 = 128
	MessageTypeIMUMeasurement            uint8 = 129
	MessageTypeBrightnessMeasurement     uint8 = 130
	MessageTypeRocketState               uint8 = 131
	MessageTypeMagMeasurement            uint8 = 132
	MessageTypeOzysMeasurement           uint8 = 133
	MessageTypeIcarusStatus              uint8 = 160

	// messageTypeLogChannel is reserved for the log multiplexer; the
	// decoder ignores frames bearing it without touching any slot.
	messageTypeLogChannel uint8 = 255
)

// Priorities for every message class in the catalog; 0 is highest.
const (
	priorityReset                     Priority = 0
	priorityUnixTime                  Priority = 1
	priorityPreUnixTime               Priority = 1 // resolved default, see DESIGN.md OQ-1
	priorityDataTransfer              Priority = 6
	priorityNodeStatus                Priority = 5
	priorityAmpStatus                 Priority = 5
	priorityPayloadEPSStatus          Priority = 5
	priorityVLStatus                  Priority = 2
	priorityAmpControl                Priority = 2
	priorityPayloadEPSOutputOverwrite Priority = 2
	priorityAck                       Priority = 4
	priorityAmpOverwrite              Priority = 2
	priorityAmpResetOutput            Priority = 2
	priorityAirBrakesControl          Priority = 2
	priorityBaroMeasurement           Priority = 3
	priorityIMUMeasurement            Priority = 3
	priorityBrightnessMeasurement     Priority = 5
	priorityRocketState               Priority = 3
	priorityMagMeasurement            Priority = 3
	priorityOzysMeasurement           Priority = 5
	priorityIcarusStatus              Priority = 5
)

// catalogEntry describes one message class for the size lookup Decode
// performs on a reassembled payload.
type catalogEntry struct {
	messageType uint8
	sizeBytes   int
}

var catalog = [...]catalogEntry{
	{MessageTypeReset, ResetSizeBytes},
	{MessageTypeUnixTime, UnixTimeSizeBytes},
	{MessageTypePreUnixTime, PreUnixTimeSizeBytes},
	{MessageTypeDataTransfer, DataTransferSizeBytes},
	{MessageTypeNodeStatus, NodeStatusSizeBytes},
	{MessageTypeAmpStatus, AmpStatusSizeBytes},
	{MessageTypePayloadEPSStatus, PayloadEPSStatusSizeBytes},
	{MessageTypeVLStatus, VLStatusSizeBytes},
	{MessageTypeAmpControl, AmpControlSizeBytes},
	{MessageTypePayloadEPSOutputOverwrite, PayloadEPSOutputOverwriteSizeBytes},
	{MessageTypeAck, AckSizeBytes},
	{MessageTypeAmpOverwrite, AmpOverwriteSizeBytes},
	{MessageTypeAmpResetOutput, AmpResetOutputSizeBytes},
	{MessageTypeAirBrakesControl, AirBrakesControlSizeBytes},
	{MessageTypeBaroMeasurement, BaroMeasurementSizeBytes},
	{MessageTypeIMUMeasurement, IMUMeasurementSizeBytes},
	{MessageTypeBrightnessMeasurement, BrightnessMeasurementSizeBytes},
	{MessageTypeRocketState, RocketStateSizeBytes},
	{MessageTypeMagMeasurement, MagMeasurementSizeBytes},
	{MessageTypeOzysMeasurement, OzysMeasurementSizeBytes},
	{MessageTypeIcarusStatus, IcarusStatusSizeBytes},
}

// messageLen returns the fixed serialized length of messageType, or false if
// the type is not in the catalog. Decode uses it to reject unknown types and
// payloads shorter than the type's declared length; the multi-frame decoder
// tells single-frame from multi-frame transfers by the tail byte alone.
func messageLen(messageType uint8) (int, bool) {
	for _, e := range catalog {
		if e.messageType == messageType {
			return e.sizeBytes, true
		}
	}
	return 0, false
}

// FilterMask returns a CAN acceptance-filter mask (frame_accepted =
// incoming_id&mask == 0) that passes the given message types, plus Reset
// and UnixTime which every node must always accept regardless of the
// requested set. The mask is the complement of the bitwise OR of those
// types, so any message type whose set bits all fall inside that OR passes
// as well (requesting BaroMeasurement also passes IMUMeasurement, for
// example); the priority, node type and node ID fields are never filtered.
// Grounded on
// original_source/firmware-common-new/src/can_bus/id.rs's
// create_can_bus_message_type_filter_mask: nodes that want to program a
// hardware CAN acceptance filter can derive it from the message types they
// actually care about rather than hand-rolling the identifier arithmetic.
func FilterMask(acceptMessageTypes ...uint8) uint32 {
	var accepted uint8
	for _, mt := range acceptMessageTypes {
		accepted |= mt
	}
	accepted |= MessageTypeReset
	accepted |= MessageTypeUnixTime
	return MakeID(0, ^accepted, 0, 0)
}
