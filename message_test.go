package canbus

import (
	"fmt"
	"reflect"
	"testing"
)

// roundTripCases exercises properties 1 and 2 from spec.md §8: every
// message class serializes to exactly SIZE_BYTES and deserializes back to
// an equal value.
func roundTripCases() []Message {
	return []Message{
		{Kind: MessageTypeReset, Reset: ResetMessage{NodeID: 0xABC, ResetAll: true, IntoBootloader: false}},
		{Kind: MessageTypeUnixTime, UnixTime: UnixTimeMessage{TimestampUs: 0x00FFFFFFFFFFFFFF}},
		{Kind: MessageTypePreUnixTime, PreUnixTime: PreUnixTimeMessage{}},
		{Kind: MessageTypeDataTransfer, DataTransfer: DataTransferMessage{
			DataLen: 5, SequenceNumber: 3, StartOfData: true, EndOfData: false,
			DataType: DataTypeData, DestinationNodeID: 0x0AB,
		}},
		{Kind: MessageTypeNodeStatus, NodeStatus: NodeStatusMessage{
			UptimeS: 10, Health: NodeHealthHealthy, Mode: NodeModeMaintenance, CustomStatusRaw: 0,
		}},
		{Kind: MessageTypeAmpStatus, AmpStatus: AmpStatusMessage{
			SharedBatteryMV: 8001,
			Out1:            AmpOutputStatus{Overwrote: true, Status: PowerOutputPowerGood},
			Out2:            AmpOutputStatus{Overwrote: true, Status: PowerOutputPowerGood},
			Out3:            AmpOutputStatus{Overwrote: false, Status: PowerOutputPowerBad},
			Out4:            AmpOutputStatus{Overwrote: false, Status: PowerOutputPowerBad},
		}},
		{Kind: MessageTypePayloadEPSStatus, PayloadEPSStatus: PayloadEPSStatusMessage{
			Battery1MV: 7400, Battery1TemperatureRaw: 250,
			Battery2MV: 7401, Battery2TemperatureRaw: 251,
			Output3V3: PayloadEPSOutputStatus{CurrentMA: 4000, Overwrote: true, Status: PowerOutputPowerGood},
			Output5V:  PayloadEPSOutputStatus{CurrentMA: 100, Overwrote: false, Status: PowerOutputDisabled},
			Output9V:  PayloadEPSOutputStatus{CurrentMA: 8191, Overwrote: true, Status: PowerOutputPowerBad},
		}},
		{Kind: MessageTypeVLStatus, VLStatus: VLStatusMessage{FlightStage: FlightStageCoasting, BatteryMV: 7600}},
		{Kind: MessageTypeAmpControl, AmpControl: AmpControlMessage{Out1Enable: true, Out2Enable: false, Out3Enable: true, Out4Enable: false}},
		{Kind: MessageTypePayloadEPSOutputOverwrite, PayloadEPSOutputOverwrite: PayloadEPSOutputOverwriteMessage{
			Out3V3: PowerOutputForceEnabled, Out5V: PowerOutputForceDisabled, Out9V: PowerOutputNoOverwrite, NodeID: 0x0FFF,
		}},
		{Kind: MessageTypeAck, Ack: AckMessage{CRC: 0x1234, NodeID: 0x0AB}},
		{Kind: MessageTypeAmpOverwrite, AmpOverwrite: AmpOverwriteMessage{
			Out1: PowerOutputForceEnabled, Out2: PowerOutputForceDisabled, Out3: PowerOutputNoOverwrite, Out4: PowerOutputForceEnabled,
		}},
		{Kind: MessageTypeAmpResetOutput, AmpResetOutput: AmpResetOutputMessage{Output: 3}},
		{Kind: MessageTypeAirBrakesControl, AirBrakesControl: AirBrakesControlMessage{ExtensionPercentage: 0.732}},
		{Kind: MessageTypeBaroMeasurement, BaroMeasurement: BaroMeasurementMessage{Pressure: 103325.3, TemperatureC: 25.5, TimestampUs: 123456789}},
		{Kind: MessageTypeIMUMeasurement, IMUMeasurement: IMUMeasurementMessage{
			AccelMS2: [3]float32{1.1, -2.2, 3.3}, GyroDegS: [3]float32{-4.4, 5.5, -6.6}, TimestampUs: 987654321,
		}},
		{Kind: MessageTypeBrightnessMeasurement, BrightnessMeasurement: BrightnessMeasurementMessage{BrightnessLux: 1500.25, TimestampUs: 42}},
		{Kind: MessageTypeRocketState, RocketState: RocketStateMessage{
			VelocityMS: [2]float32{123.4, -56.7}, AltitudeAGL: 890.1, TimestampUs: 0x00FFFFFFFFFFFFFF, IsCoasting: true,
		}},
		{Kind: MessageTypeMagMeasurement, MagMeasurement: MagMeasurementMessage{MagTesla: [3]float32{0.1, 0.2, 0.3}, TimestampUs: 5}},
		{Kind: MessageTypeOzysMeasurement, OzysMeasurement: OzysMeasurementMessage{SG1: 1.0, SG2: 2.0, SG3: 3.0, SG4: 4.0}},
		{Kind: MessageTypeIcarusStatus, IcarusStatus: IcarusStatusMessage{ExtensionPercentage: 0.5, TemperatureC: -12.3, CurrentA: 1.75}},
	}
}

func TestMessageRoundTrip(t *testing.T) {
	for _, m := range roundTripCases() {
		m := m
		t.Run(messageName(m.Kind), func(t *testing.T) {
			size, ok := messageLen(m.Kind)
			if !ok {
				t.Fatalf("message type %d not in catalog", m.Kind)
			}
			buf := make([]byte, size)
			n := m.serialize(buf)
			if n != size {
				t.Fatalf("serialize wrote %d bytes, want %d", n, size)
			}
			got, ok := Decode(m.Kind, buf)
			if !ok {
				t.Fatalf("Decode failed for %x", buf)
			}
			if !reflect.DeepEqual(got, m) {
				t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, m)
			}
		})
	}
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	if _, ok := Decode(255, []byte{1, 2, 3}); ok {
		t.Fatal("expected decode of reserved log-channel type to fail")
	}
	if _, ok := Decode(200, []byte{1, 2, 3}); ok {
		t.Fatal("expected decode of unassigned type to fail")
	}
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	if _, ok := Decode(MessageTypeNodeStatus, []byte{0, 0, 0}); ok {
		t.Fatal("expected decode with truncated buffer to fail")
	}
}

func messageName(kind uint8) string {
	return fmt.Sprintf("message_type_%d", kind)
}
