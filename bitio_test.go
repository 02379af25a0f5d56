package canbus

import "testing"

func TestUint16RoundTrip(t *testing.T) {
	buf := make([]byte, 2)
	putUint16(buf, 0xBEEF)
	if got := getUint16(buf); got != 0xBEEF {
		t.Fatalf("got %#x, want %#x", got, 0xBEEF)
	}
	if buf[0] != 0xBE || buf[1] != 0xEF {
		t.Fatalf("wrong byte order: %x", buf)
	}
}

func TestUint24RoundTrip(t *testing.T) {
	buf := make([]byte, 3)
	putUint24(buf, 0xABCDEF)
	if got := getUint24(buf); got != 0xABCDEF {
		t.Fatalf("got %#x, want %#x", got, 0xABCDEF)
	}
	if buf[0] != 0xAB || buf[1] != 0xCD || buf[2] != 0xEF {
		t.Fatalf("wrong byte order: %x", buf)
	}
}

func TestUint32RoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	putUint32(buf, 0x01020304)
	if got := getUint32(buf); got != 0x01020304 {
		t.Fatalf("got %#x, want %#x", got, 0x01020304)
	}
}

func TestUint56RoundTrip(t *testing.T) {
	buf := make([]byte, 7)
	const v uint64 = 0x00FFFFFFFFFFFFFF
	putUint56(buf, v)
	if got := getUint56(buf); got != v {
		t.Fatalf("got %#x, want %#x", got, v)
	}
}

func TestUint64RoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	const v uint64 = 0x0102030405060708
	putUint64(buf, v)
	if got := getUint64(buf); got != v {
		t.Fatalf("got %#x, want %#x", got, v)
	}
}
