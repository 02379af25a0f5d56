package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tarm/serial"

	canbus "github.com/highspire-avionics/can-codec"
)

// loopbackBus is the transport used when no CANSH_SERIAL_PORT is configured.
// It hands every sent frame straight back to its own receive queue, letting
// the shell demonstrate encode/decode and the sniff/filter commands without
// real hardware attached.
type loopbackBus struct {
	mu    sync.Mutex
	cond  *sync.Cond
	queue []loopbackFrame
}

type loopbackFrame struct {
	id        uint32
	data      []byte
	timestamp uint64
}

func newLoopbackBus() *loopbackBus {
	b := &loopbackBus{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *loopbackBus) Send(id uint32, data []byte) error {
	cp := append([]byte(nil), data...)
	b.mu.Lock()
	b.queue = append(b.queue, loopbackFrame{id: id, data: cp, timestamp: uint64(time.Now().UnixMicro())})
	b.cond.Signal()
	b.mu.Unlock()
	return nil
}

func (b *loopbackBus) Receive() (uint32, []byte, uint64, error) {
	b.mu.Lock()
	for len(b.queue) == 0 {
		b.cond.Wait()
	}
	f := b.queue[0]
	b.queue = b.queue[1:]
	b.mu.Unlock()
	return f.id, f.data, f.timestamp, nil
}

// serialBus is a line-oriented adapter over a real serial-CAN dongle,
// grounded on amken3d-gopper/host/serial's tarm/serial wrapping (a
// serial.Config{Name, Baud, ReadTimeout} opened with serial.OpenPort). Each
// frame is one line: "<hex id>#<hex data bytes>\n", the same shape as the
// SLCAN convention common to USB-CAN adapters.
type serialBus struct {
	port   *serial.Port
	reader *bufio.Reader
}

func openSerialBus(device string, baud int) (*serialBus, error) {
	cfg := &serial.Config{Name: device, Baud: baud, ReadTimeout: 100 * time.Millisecond}
	port, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", device, err)
	}
	return &serialBus{port: port, reader: bufio.NewReader(port)}, nil
}

func (s *serialBus) Send(id uint32, data []byte) error {
	line := fmt.Sprintf("%08X#%X\n", id, data)
	_, err := s.port.Write([]byte(line))
	return err
}

func (s *serialBus) Receive() (uint32, []byte, uint64, error) {
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return 0, nil, 0, err
		}
		line = strings.TrimSpace(line)
		id, data, ok := parseSLCANLine(line)
		if !ok {
			continue
		}
		return id, data, uint64(time.Now().UnixMicro()), nil
	}
}

func (s *serialBus) Close() error {
	return s.port.Close()
}

func parseSLCANLine(line string) (uint32, []byte, bool) {
	parts := strings.SplitN(line, "#", 2)
	if len(parts) != 2 {
		return 0, nil, false
	}
	id64, err := strconv.ParseUint(parts[0], 16, 32)
	if err != nil {
		return 0, nil, false
	}
	hex := parts[1]
	if len(hex)%2 != 0 {
		return 0, nil, false
	}
	data := make([]byte, len(hex)/2)
	for i := range data {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return 0, nil, false
		}
		data[i] = byte(v)
	}
	return uint32(id64), data, true
}

var (
	_ canbus.Transmitter = (*loopbackBus)(nil)
	_ canbus.Receiver    = (*loopbackBus)(nil)
	_ canbus.Transmitter = (*serialBus)(nil)
	_ canbus.Receiver    = (*serialBus)(nil)
)
