// Package canbus implements the wire codec for the fleet's rocket avionics
// CAN bus: a 29-bit extended-identifier scheme, per-message big-endian
// bit-packed serialization, and a framing/reassembly engine that splits
// payloads larger than a single 8-byte CAN frame across multiple frames and
// reassembles them with bounded, allocation-free per-transfer state.
//
// The package is deliberately narrow. It does not talk to CAN hardware, does
// not schedule retransmissions, and does not authenticate anything — it
// turns typed messages into (identifier, bytes) frames and back. Everything
// else — the physical driver, clocks, dispatch of decoded messages to the
// rest of the flight software — lives outside this package.
//
// Every exported codec type is safe to embed directly in a struct with no
// heap allocation: encoders carry a fixed 64-byte scratch buffer, decoders
// carry Q fixed-size reassembly slots, and Decode returns a fixed-size
// tagged union by value.
package canbus
