package canbus

// Message is a tagged union over every message class in the catalog. Kind
// holds the message_type value that selects which of the variant fields is
// meaningful; the others are zero. Using one struct with a discriminant
// rather than an interface keeps every Message on the stack — decoding
// never allocates.
type Message struct {
	Kind uint8

	Reset                     ResetMessage
	UnixTime                  UnixTimeMessage
	PreUnixTime               PreUnixTimeMessage
	DataTransfer              DataTransferMessage
	NodeStatus                NodeStatusMessage
	AmpStatus                 AmpStatusMessage
	PayloadEPSStatus          PayloadEPSStatusMessage
	VLStatus                  VLStatusMessage
	AmpControl                AmpControlMessage
	PayloadEPSOutputOverwrite PayloadEPSOutputOverwriteMessage
	Ack                       AckMessage
	AmpOverwrite              AmpOverwriteMessage
	AmpResetOutput            AmpResetOutputMessage
	AirBrakesControl          AirBrakesControlMessage
	BaroMeasurement           BaroMeasurementMessage
	IMUMeasurement            IMUMeasurementMessage
	BrightnessMeasurement     BrightnessMeasurementMessage
	RocketState               RocketStateMessage
	MagMeasurement            MagMeasurementMessage
	OzysMeasurement           OzysMeasurementMessage
	IcarusStatus              IcarusStatusMessage
}

// WireID returns the extended CAN identifier this message would be sent
// under from a node of the given type and ID.
func (m Message) WireID(nodeType uint8, nodeID uint16) uint32 {
	switch m.Kind {
	case MessageTypeReset:
		return m.Reset.WireID(nodeType, nodeID)
	case MessageTypeUnixTime:
		return m.UnixTime.WireID(nodeType, nodeID)
	case MessageTypePreUnixTime:
		return m.PreUnixTime.WireID(nodeType, nodeID)
	case MessageTypeDataTransfer:
		return m.DataTransfer.WireID(nodeType, nodeID)
	case MessageTypeNodeStatus:
		return m.NodeStatus.WireID(nodeType, nodeID)
	case MessageTypeAmpStatus:
		return m.AmpStatus.WireID(nodeType, nodeID)
	case MessageTypePayloadEPSStatus:
		return m.PayloadEPSStatus.WireID(nodeType, nodeID)
	case MessageTypeVLStatus:
		return m.VLStatus.WireID(nodeType, nodeID)
	case MessageTypeAmpControl:
		return m.AmpControl.WireID(nodeType, nodeID)
	case MessageTypePayloadEPSOutputOverwrite:
		return m.PayloadEPSOutputOverwrite.WireID(nodeType, nodeID)
	case MessageTypeAck:
		return m.Ack.WireID(nodeType, nodeID)
	case MessageTypeAmpOverwrite:
		return m.AmpOverwrite.WireID(nodeType, nodeID)
	case MessageTypeAmpResetOutput:
		return m.AmpResetOutput.WireID(nodeType, nodeID)
	case MessageTypeAirBrakesControl:
		return m.AirBrakesControl.WireID(nodeType, nodeID)
	case MessageTypeBaroMeasurement:
		return m.BaroMeasurement.WireID(nodeType, nodeID)
	case MessageTypeIMUMeasurement:
		return m.IMUMeasurement.WireID(nodeType, nodeID)
	case MessageTypeBrightnessMeasurement:
		return m.BrightnessMeasurement.WireID(nodeType, nodeID)
	case MessageTypeRocketState:
		return m.RocketState.WireID(nodeType, nodeID)
	case MessageTypeMagMeasurement:
		return m.MagMeasurement.WireID(nodeType, nodeID)
	case MessageTypeOzysMeasurement:
		return m.OzysMeasurement.WireID(nodeType, nodeID)
	case MessageTypeIcarusStatus:
		return m.IcarusStatus.WireID(nodeType, nodeID)
	default:
		return 0
	}
}

// serialize writes m's variant payload into out, returning the number of
// bytes written. out must have length at least the variant's SIZE_BYTES;
// the multi-frame encoder guarantees this via its 64-byte scratch buffer.
func (m Message) serialize(out []byte) int {
	switch m.Kind {
	case MessageTypeReset:
		m.Reset.Serialize(out)
		return ResetSizeBytes
	case MessageTypeUnixTime:
		m.UnixTime.Serialize(out)
		return UnixTimeSizeBytes
	case MessageTypePreUnixTime:
		m.PreUnixTime.Serialize(out)
		return PreUnixTimeSizeBytes
	case MessageTypeDataTransfer:
		m.DataTransfer.Serialize(out)
		return DataTransferSizeBytes
	case MessageTypeNodeStatus:
		m.NodeStatus.Serialize(out)
		return NodeStatusSizeBytes
	case MessageTypeAmpStatus:
		m.AmpStatus.Serialize(out)
		return AmpStatusSizeBytes
	case MessageTypePayloadEPSStatus:
		m.PayloadEPSStatus.Serialize(out)
		return PayloadEPSStatusSizeBytes
	case MessageTypeVLStatus:
		m.VLStatus.Serialize(out)
		return VLStatusSizeBytes
	case MessageTypeAmpControl:
		m.AmpControl.Serialize(out)
		return AmpControlSizeBytes
	case MessageTypePayloadEPSOutputOverwrite:
		m.PayloadEPSOutputOverwrite.Serialize(out)
		return PayloadEPSOutputOverwriteSizeBytes
	case MessageTypeAck:
		m.Ack.Serialize(out)
		return AckSizeBytes
	case MessageTypeAmpOverwrite:
		m.AmpOverwrite.Serialize(out)
		return AmpOverwriteSizeBytes
	case MessageTypeAmpResetOutput:
		m.AmpResetOutput.Serialize(out)
		return AmpResetOutputSizeBytes
	case MessageTypeAirBrakesControl:
		m.AirBrakesControl.Serialize(out)
		return AirBrakesControlSizeBytes
	case MessageTypeBaroMeasurement:
		m.BaroMeasurement.Serialize(out)
		return BaroMeasurementSizeBytes
	case MessageTypeIMUMeasurement:
		m.IMUMeasurement.Serialize(out)
		return IMUMeasurementSizeBytes
	case MessageTypeBrightnessMeasurement:
		m.BrightnessMeasurement.Serialize(out)
		return BrightnessMeasurementSizeBytes
	case MessageTypeRocketState:
		m.RocketState.Serialize(out)
		return RocketStateSizeBytes
	case MessageTypeMagMeasurement:
		m.MagMeasurement.Serialize(out)
		return MagMeasurementSizeBytes
	case MessageTypeOzysMeasurement:
		m.OzysMeasurement.Serialize(out)
		return OzysMeasurementSizeBytes
	case MessageTypeIcarusStatus:
		m.IcarusStatus.Serialize(out)
		return IcarusStatusSizeBytes
	default:
		return 0
	}
}

// Decode dispatches on messageType to the matching deserializer. It
// returns false for an unrecognized type or a buffer shorter than the
// type's declared length; the codec never panics on malformed input.
func Decode(messageType uint8, data []byte) (Message, bool) {
	size, ok := messageLen(messageType)
	if !ok || len(data) < size {
		return Message{}, false
	}
	switch messageType {
	case MessageTypeReset:
		return Message{Kind: messageType, Reset: DeserializeReset(data)}, true
	case MessageTypeUnixTime:
		return Message{Kind: messageType, UnixTime: DeserializeUnixTime(data)}, true
	case MessageTypePreUnixTime:
		return Message{Kind: messageType, PreUnixTime: DeserializePreUnixTime(data)}, true
	case MessageTypeDataTransfer:
		return Message{Kind: messageType, DataTransfer: DeserializeDataTransfer(data)}, true
	case MessageTypeNodeStatus:
		return Message{Kind: messageType, NodeStatus: DeserializeNodeStatus(data)}, true
	case MessageTypeAmpStatus:
		return Message{Kind: messageType, AmpStatus: DeserializeAmpStatus(data)}, true
	case MessageTypePayloadEPSStatus:
		return Message{Kind: messageType, PayloadEPSStatus: DeserializePayloadEPSStatus(data)}, true
	case MessageTypeVLStatus:
		return Message{Kind: messageType, VLStatus: DeserializeVLStatus(data)}, true
	case MessageTypeAmpControl:
		return Message{Kind: messageType, AmpControl: DeserializeAmpControl(data)}, true
	case MessageTypePayloadEPSOutputOverwrite:
		return Message{Kind: messageType, PayloadEPSOutputOverwrite: DeserializePayloadEPSOutputOverwrite(data)}, true
	case MessageTypeAck:
		return Message{Kind: messageType, Ack: DeserializeAck(data)}, true
	case MessageTypeAmpOverwrite:
		return Message{Kind: messageType, AmpOverwrite: DeserializeAmpOverwrite(data)}, true
	case MessageTypeAmpResetOutput:
		return Message{Kind: messageType, AmpResetOutput: DeserializeAmpResetOutput(data)}, true
	case MessageTypeAirBrakesControl:
		return Message{Kind: messageType, AirBrakesControl: DeserializeAirBrakesControl(data)}, true
	case MessageTypeBaroMeasurement:
		return Message{Kind: messageType, BaroMeasurement: DeserializeBaroMeasurement(data)}, true
	case MessageTypeIMUMeasurement:
		return Message{Kind: messageType, IMUMeasurement: DeserializeIMUMeasurement(data)}, true
	case MessageTypeBrightnessMeasurement:
		return Message{Kind: messageType, BrightnessMeasurement: DeserializeBrightnessMeasurement(data)}, true
	case MessageTypeRocketState:
		return Message{Kind: messageType, RocketState: DeserializeRocketState(data)}, true
	case MessageTypeMagMeasurement:
		return Message{Kind: messageType, MagMeasurement: DeserializeMagMeasurement(data)}, true
	case MessageTypeOzysMeasurement:
		return Message{Kind: messageType, OzysMeasurement: DeserializeOzysMeasurement(data)}, true
	case MessageTypeIcarusStatus:
		return Message{Kind: messageType, IcarusStatus: DeserializeIcarusStatus(data)}, true
	default:
		return Message{}, false
	}
}
