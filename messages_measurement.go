package canbus

import "math"

func putFloat32Bits(out []byte, v float32) { putUint32(out, math.Float32bits(v)) }
func getFloat32Bits(in []byte) float32     { return math.Float32frombits(getUint32(in)) }

// BaroMeasurementSizeBytes is the wire length of BaroMeasurementMessage.
const BaroMeasurementSizeBytes = 13

// BaroMeasurementMessage is one barometer sample: raw pressure, coarse
// temperature, and the timestamp it was taken.
type BaroMeasurementMessage struct {
	// Pressure is in pascals, transported as raw IEEE-754 bits.
	Pressure float32
	// TemperatureC is in degrees Celsius, tenths precision on the wire.
	TemperatureC float32
	TimestampUs  uint64
}

func (BaroMeasurementMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityBaroMeasurement, MessageTypeBaroMeasurement, nodeType, nodeID)
}

func (m BaroMeasurementMessage) Serialize(out []byte) {
	_ = out[:BaroMeasurementSizeBytes]
	putFloat32Bits(out[0:4], m.Pressure)
	putUint16(out[4:6], uint16(int16(math.Round(float64(m.TemperatureC)*10))))
	putUint56(out[6:13], m.TimestampUs)
}

func DeserializeBaroMeasurement(in []byte) BaroMeasurementMessage {
	_ = in[:BaroMeasurementSizeBytes]
	return BaroMeasurementMessage{
		Pressure:     getFloat32Bits(in[0:4]),
		TemperatureC: float32(int16(getUint16(in[4:6]))) / 10,
		TimestampUs:  getUint56(in[6:13]),
	}
}

// BrightnessMeasurementSizeBytes is the wire length of
// BrightnessMeasurementMessage.
const BrightnessMeasurementSizeBytes = 11

// BrightnessMeasurementMessage is one photodiode sample.
type BrightnessMeasurementMessage struct {
	// BrightnessLux is transported as raw IEEE-754 bits.
	BrightnessLux float32
	TimestampUs   uint64
}

func (BrightnessMeasurementMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityBrightnessMeasurement, MessageTypeBrightnessMeasurement, nodeType, nodeID)
}

func (m BrightnessMeasurementMessage) Serialize(out []byte) {
	_ = out[:BrightnessMeasurementSizeBytes]
	putFloat32Bits(out[0:4], m.BrightnessLux)
	putUint56(out[4:11], m.TimestampUs)
}

func DeserializeBrightnessMeasurement(in []byte) BrightnessMeasurementMessage {
	_ = in[:BrightnessMeasurementSizeBytes]
	return BrightnessMeasurementMessage{
		BrightnessLux: getFloat32Bits(in[0:4]),
		TimestampUs:   getUint56(in[4:11]),
	}
}

// IMUMeasurementSizeBytes is the wire length of IMUMeasurementMessage.
const IMUMeasurementSizeBytes = 31

// IMUMeasurementMessage is one inertial measurement unit sample: three-axis
// acceleration and angular rate.
type IMUMeasurementMessage struct {
	// AccelMS2 is acceleration in m/s^2, raw IEEE-754 bits per axis.
	AccelMS2 [3]float32
	// GyroDegS is angular rate in deg/s, raw IEEE-754 bits per axis.
	GyroDegS    [3]float32
	TimestampUs uint64
}

func (IMUMeasurementMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityIMUMeasurement, MessageTypeIMUMeasurement, nodeType, nodeID)
}

func (m IMUMeasurementMessage) Serialize(out []byte) {
	_ = out[:IMUMeasurementSizeBytes]
	for i, v := range m.AccelMS2 {
		putFloat32Bits(out[i*4:i*4+4], v)
	}
	for i, v := range m.GyroDegS {
		putFloat32Bits(out[12+i*4:12+i*4+4], v)
	}
	putUint56(out[24:31], m.TimestampUs)
}

func DeserializeIMUMeasurement(in []byte) IMUMeasurementMessage {
	_ = in[:IMUMeasurementSizeBytes]
	var m IMUMeasurementMessage
	for i := range m.AccelMS2 {
		m.AccelMS2[i] = getFloat32Bits(in[i*4 : i*4+4])
	}
	for i := range m.GyroDegS {
		m.GyroDegS[i] = getFloat32Bits(in[12+i*4 : 12+i*4+4])
	}
	m.TimestampUs = getUint56(in[24:31])
	return m
}

// MagMeasurementSizeBytes is the wire length of MagMeasurementMessage.
const MagMeasurementSizeBytes = 19

// MagMeasurementMessage is one three-axis magnetometer sample, in tesla.
type MagMeasurementMessage struct {
	MagTesla    [3]float32
	TimestampUs uint64
}

func (MagMeasurementMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityMagMeasurement, MessageTypeMagMeasurement, nodeType, nodeID)
}

func (m MagMeasurementMessage) Serialize(out []byte) {
	_ = out[:MagMeasurementSizeBytes]
	for i, v := range m.MagTesla {
		putFloat32Bits(out[i*4:i*4+4], v)
	}
	putUint56(out[12:19], m.TimestampUs)
}

func DeserializeMagMeasurement(in []byte) MagMeasurementMessage {
	_ = in[:MagMeasurementSizeBytes]
	var m MagMeasurementMessage
	for i := range m.MagTesla {
		m.MagTesla[i] = getFloat32Bits(in[i*4 : i*4+4])
	}
	m.TimestampUs = getUint56(in[12:19])
	return m
}

// OzysMeasurementSizeBytes is the wire length of OzysMeasurementMessage.
const OzysMeasurementSizeBytes = 16

// OzysMeasurementMessage carries up to four strain-gauge readings. A gauge
// that isn't wired up reports NaN, which round-trips through the wire
// format as the IEEE-754 quiet-NaN bit pattern.
type OzysMeasurementMessage struct {
	SG1, SG2, SG3, SG4 float32
}

func (OzysMeasurementMessage) WireID(nodeType uint8, nodeID uint16) uint32 {
	return MakeID(priorityOzysMeasurement, MessageTypeOzysMeasurement, nodeType, nodeID)
}

func (m OzysMeasurementMessage) Serialize(out []byte) {
	_ = out[:OzysMeasurementSizeBytes]
	putFloat32Bits(out[0:4], m.SG1)
	putFloat32Bits(out[4:8], m.SG2)
	putFloat32Bits(out[8:12], m.SG3)
	putFloat32Bits(out[12:16], m.SG4)
}

func DeserializeOzysMeasurement(in []byte) OzysMeasurementMessage {
	_ = in[:OzysMeasurementSizeBytes]
	return OzysMeasurementMessage{
		SG1: getFloat32Bits(in[0:4]),
		SG2: getFloat32Bits(in[4:8]),
		SG3: getFloat32Bits(in[8:12]),
		SG4: getFloat32Bits(in[12:16]),
	}
}
