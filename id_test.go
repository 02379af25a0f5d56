package canbus

import "testing"

func TestMakeIDSplitIDRoundTrip(t *testing.T) {
	cases := []struct {
		priority    Priority
		messageType uint8
		nodeType    uint8
		nodeID      uint16
	}{
		{0, 0, 0, 0},
		{PriorityMax, 0xFF, 0x3F, 0x0FFF},
		{priorityNodeStatus, MessageTypeNodeStatus, NodeTypeAvionics, 20},
		{priorityDataTransfer, MessageTypeDataTransfer, NodeTypePayloadPowerSupply, 4095},
	}
	for _, c := range cases {
		id := MakeID(c.priority, c.messageType, c.nodeType, c.nodeID)
		if id>>29 != 0 {
			t.Fatalf("reserved bits not zero: id=%#x", id)
		}
		gotP, gotMT, gotNT, gotNID := SplitID(id)
		if gotP != c.priority || gotMT != c.messageType || gotNT != c.nodeType || gotNID != c.nodeID {
			t.Fatalf("SplitID(%#x) = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
				id, gotP, gotMT, gotNT, gotNID, c.priority, c.messageType, c.nodeType, c.nodeID)
		}
	}
}

func TestMakeIDMasksOutOfRangeFields(t *testing.T) {
	id := MakeID(Priority(0xFF), 0, 0, 0)
	p, _, _, _ := SplitID(id)
	if p != Priority(0x07) {
		t.Fatalf("priority not masked: got %d", p)
	}
}

func TestMessageTypeOf(t *testing.T) {
	id := MakeID(priorityNodeStatus, MessageTypeNodeStatus, NodeTypeAvionics, 20)
	if got := messageTypeOf(id); got != MessageTypeNodeStatus {
		t.Fatalf("got %d, want %d", got, MessageTypeNodeStatus)
	}
}

// TestNodeStatusFrameID exercises property 3 (identifier composition) under
// the frame-reference convention (node_type=10, node_id=20).
func TestNodeStatusFrameID(t *testing.T) {
	id := NodeStatusMessage{}.WireID(10, 20)
	p, mt, nt, nid := SplitID(id)
	if p != priorityNodeStatus || mt != MessageTypeNodeStatus || nt != 10 || nid != 20 {
		t.Fatalf("unexpected decomposition: %d %d %d %d", p, mt, nt, nid)
	}
}
