package canbus

import (
	"reflect"
	"testing"
)

func encodeAll(m Message, nodeType uint8, nodeID uint16) []Frame {
	e := NewEncoder(m, nodeType, nodeID)
	return drainFrames(e)
}

func TestDecodeSingleFrame(t *testing.T) {
	m := Message{Kind: MessageTypeReset, Reset: ResetMessage{NodeID: 0xABC, ResetAll: true}}
	frames := encodeAll(m, 10, 20)
	d := NewDecoder()
	got, ok := d.ProcessFrame(frames[0].ID, frames[0].Bytes(), 1000)
	if !ok {
		t.Fatal("expected a completed message")
	}
	if !reflect.DeepEqual(got.Message, m) {
		t.Fatalf("got %+v, want %+v", got.Message, m)
	}
}

// TestDecodeMultiFrame is scenario S2 from spec.md §8, checked by
// round-tripping through Encoder rather than the literal (internally
// inconsistent) example bytes; see SPEC_FULL.md §4.5 for why.
func TestDecodeMultiFrame(t *testing.T) {
	m := Message{Kind: MessageTypePayloadEPSStatus, PayloadEPSStatus: PayloadEPSStatusMessage{
		Battery1MV: 7400,
		Output3V3:  PayloadEPSOutputStatus{CurrentMA: 100, Status: PowerOutputPowerGood},
	}}
	frames := encodeAll(m, 10, 20)
	d := NewDecoder()
	var last ReceivedMessage
	var ok bool
	for i, f := range frames {
		last, ok = d.ProcessFrame(f.ID, f.Bytes(), uint64(1000+i))
		if i < len(frames)-1 && ok {
			t.Fatalf("frame %d unexpectedly completed the transfer", i)
		}
	}
	if !ok {
		t.Fatal("expected the closing frame to complete the transfer")
	}
	if !reflect.DeepEqual(last.Message, m) {
		t.Fatalf("got %+v, want %+v", last.Message, m)
	}
	wantCRC := crc16(func() []byte {
		buf := make([]byte, PayloadEPSStatusSizeBytes)
		m.PayloadEPSStatus.Serialize(buf)
		return buf
	}())
	if last.CRC != wantCRC {
		t.Fatalf("got crc %#x, want %#x", last.CRC, wantCRC)
	}
}

func TestDecodeIgnoresLogChannel(t *testing.T) {
	id := MakeID(0, messageTypeLogChannel, 10, 20)
	d := NewDecoder()
	if _, ok := d.ProcessFrame(id, []byte{1, 2, 3, 0xC0}, 1000); ok {
		t.Fatal("log channel frames must never produce a message")
	}
}

func TestDecodeRejectsSetToggleOnSingleFrame(t *testing.T) {
	m := Message{Kind: MessageTypeReset, Reset: ResetMessage{NodeID: 1}}
	frames := encodeAll(m, 10, 20)
	body := frames[0].Bytes()
	body[len(body)-1] |= tailToggle
	d := NewDecoder()
	if _, ok := d.ProcessFrame(frames[0].ID, body, 1000); ok {
		t.Fatal("single-frame transfer with toggle set must be rejected")
	}
}

// TestCRCDetection is property 5: flipping any bit in a multi-frame
// transfer's body causes the decoder to reject it.
func TestCRCDetection(t *testing.T) {
	m := Message{Kind: MessageTypePayloadEPSStatus, PayloadEPSStatus: PayloadEPSStatusMessage{Battery1MV: 7400}}
	frames := encodeAll(m, 10, 20)
	frames[0].Data[2] ^= 0x01 // corrupt a body byte inside the first frame

	d := NewDecoder()
	var sawCompletion bool
	for i, f := range frames {
		if _, ok := d.ProcessFrame(f.ID, f.Bytes(), uint64(1000+i)); ok {
			sawCompletion = true
		}
	}
	if sawCompletion {
		t.Fatal("corrupted transfer must never complete")
	}
}

// TestLRUEviction is property 6 / scenario S5.
func TestLRUEviction(t *testing.T) {
	d := NewDecoder()
	messages := make([]Message, reassemblySlotCount+1)
	frameSets := make([][]Frame, len(messages))
	for i := range messages {
		messages[i] = Message{Kind: MessageTypeMagMeasurement, MagMeasurement: MagMeasurementMessage{
			MagTesla: [3]float32{float32(i), 0, 0},
		}}
		frameSets[i] = encodeAll(messages[i], 10, uint16(100+i))
	}

	for i := 0; i < reassemblySlotCount; i++ {
		if _, ok := d.ProcessFrame(frameSets[i][0].ID, frameSets[i][0].Bytes(), uint64(1000+i)); ok {
			t.Fatalf("opening frame %d unexpectedly completed", i)
		}
	}
	// A 9th opening at a later timestamp evicts slot 0 (timestamp 1000, the
	// oldest).
	if _, ok := d.ProcessFrame(frameSets[reassemblySlotCount][0].ID, frameSets[reassemblySlotCount][0].Bytes(), 2000); ok {
		t.Fatal("opening frame unexpectedly completed")
	}

	// Slot 0's continuation frames must no longer complete its transfer.
	for _, f := range frameSets[0][1:] {
		if _, ok := d.ProcessFrame(f.ID, f.Bytes(), 1000); ok {
			t.Fatal("evicted transfer's continuation unexpectedly completed")
		}
	}
}

// TestTogglePolicing is property 7: a frame with the wrong toggle bit is
// dropped without disturbing slot state, and the correct next frame still
// completes the transfer.
func TestTogglePolicing(t *testing.T) {
	m := Message{Kind: MessageTypeMagMeasurement, MagMeasurement: MagMeasurementMessage{MagTesla: [3]float32{1, 2, 3}}}
	frames := encodeAll(m, 10, 20)
	if len(frames) < 3 {
		t.Fatalf("need at least 3 frames to exercise a middle toggle, got %d", len(frames))
	}

	d := NewDecoder()
	if _, ok := d.ProcessFrame(frames[0].ID, frames[0].Bytes(), 1000); ok {
		t.Fatal("opening frame unexpectedly completed")
	}

	bad := frames[1].Bytes()
	corrupted := append([]byte(nil), bad...)
	corrupted[len(corrupted)-1] ^= tailToggle
	if _, ok := d.ProcessFrame(frames[1].ID, corrupted, 1001); ok {
		t.Fatal("frame with wrong toggle unexpectedly completed")
	}

	var last ReceivedMessage
	var ok bool
	for _, f := range frames[1:] {
		last, ok = d.ProcessFrame(f.ID, f.Bytes(), 1002)
	}
	if !ok {
		t.Fatal("transfer failed to complete after toggle-policed retry")
	}
	if !reflect.DeepEqual(last.Message, m) {
		t.Fatalf("got %+v, want %+v", last.Message, m)
	}
}
