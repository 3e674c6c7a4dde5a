package artnet

import (
	"bytes"
	"encoding/binary"

	"artnetnode/internal/dmx"
)

// packetID is the 8-byte signature opening every Art-Net packet.
var packetID = []byte{'A', 'r', 't', '-', 'N', 'e', 't', 0}

// Common header layout.
const (
	opCodeOffset = 8  // 2 bytes, low byte first
	headerSize   = 10 // signature + opcode
)

// ArtDMX field offsets.
const (
	dmxVersionOffset  = 10 // 2 bytes, big-endian protocol version
	dmxSequenceOffset = 12 // 1 byte
	dmxPhysicalOffset = 13 // 1 byte, physical input port
	dmxUniverseOffset = 14 // 1 byte: high nibble subnet, low nibble universe
	dmxLengthOffset   = 16 // 2 bytes, big-endian slot count
	dmxDataOffset     = 18 // up to 512 bytes of slot data
)

// ArtAddress fields, anchored at the addressing/command region base.
// Absolute offsets match what third-party controllers put on the wire.
const (
	// AddressOffset is the start of the ArtAddress addressing region.
	AddressOffset = 17

	addressSwOutOffset   = AddressOffset + 83 // 100: output universe, flag-encoded
	addressSubnetOffset  = AddressOffset + 87 // 104: subnet, flag-encoded
	addressCommandOffset = AddressOffset + 89 // 106: node command byte

	// addressSize is the smallest datagram carrying the command byte.
	addressSize = addressCommandOffset + 1

	// commandCancelMerge releases the recorded DMX sender.
	commandCancelMerge = 0x01
)

// ArtPollReply field offsets.
const (
	replyIPOffset        = 10  // 4 bytes, node IP
	replyPortOffset      = 14  // 2 bytes, low byte first
	replySubnetOffset    = 19  // 1 byte, subnet nibble
	replyShortNameOffset = 26  // 18 bytes, NUL-terminated
	replyLongNameOffset  = 44  // 64 bytes, NUL-terminated
	replyNumPortsOffset  = 172 // 2 bytes, big-endian
	replyPortTypesOffset = 174 // 4 bytes, one per port
	replyGoodOutOffset   = 182 // 4 bytes, one per port
	replySwOutOffset     = 190 // 4 bytes, output universe nibble per port
)

// parseHeader validates the Art-Net signature and extracts the opcode.
// Anything malformed or outside the recognized set classifies as OpNop.
func parseHeader(data []byte) OpCode {
	if len(data) < headerSize || !bytes.Equal(data[:opCodeOffset], packetID) {
		return OpNop
	}
	op := OpCode(binary.LittleEndian.Uint16(data[opCodeOffset : opCodeOffset+2]))
	switch op {
	case OpPoll, OpPollReply, OpDMX, OpAddress:
		return op
	}
	return OpNop
}

// BuildDMX serializes the node's buffer as an ArtDMX packet. Each call
// advances the outgoing sequence counter, skipping the reserved value 0.
// The returned slice is freshly allocated; callers may hold it across
// later parse or build calls.
func (n *Node) BuildDMX() []byte {
	slots := n.buf.SlotCount()
	p := make([]byte, dmxDataOffset+slots)
	copy(p, packetID)
	binary.LittleEndian.PutUint16(p[opCodeOffset:], uint16(OpDMX))
	binary.BigEndian.PutUint16(p[dmxVersionOffset:], ProtocolVersion)
	n.sequence++
	if n.sequence == 0 {
		n.sequence = 1
	}
	p[dmxSequenceOffset] = n.sequence
	p[dmxPhysicalOffset] = 0
	p[dmxUniverseOffset] = n.universe
	binary.BigEndian.PutUint16(p[dmxLengthOffset:], uint16(slots))
	copy(p[dmxDataOffset:], n.buf.Raw())
	return p
}

// BuildPollReply serializes the fixed 239-byte ArtPollReply describing
// this node: its IP, port, subnet/universe and names, with one output
// port flagged as transmitting DMX from the network. Fields this node
// does not use stay zero.
func (n *Node) BuildPollReply() []byte {
	p := make([]byte, ReplySize)
	copy(p, packetID)
	binary.LittleEndian.PutUint16(p[opCodeOffset:], uint16(OpPollReply))
	if ip4 := n.myAddr.To4(); ip4 != nil {
		copy(p[replyIPOffset:replyIPOffset+4], ip4)
	}
	p[replyPortOffset] = Port & 0xff
	p[replyPortOffset+1] = Port >> 8
	p[replySubnetOffset] = n.universe >> 4
	copy(p[replyShortNameOffset:replyShortNameOffset+17], n.shortName)
	copy(p[replyLongNameOffset:replyLongNameOffset+63], n.longName)
	binary.BigEndian.PutUint16(p[replyNumPortsOffset:], 1)
	p[replyPortTypesOffset] = 0x80 // port 1 outputs DMX from the network
	p[replyGoodOutOffset] = 0x80   // port 1 is transmitting
	p[replySwOutOffset] = n.universe & 0x0f
	return p
}

// clampSlots bounds an ArtDMX declared length to what the datagram
// actually carries and to a full universe.
func clampSlots(declared, available int) int {
	if declared > available {
		declared = available
	}
	if declared > dmx.MaxSlots {
		declared = dmx.MaxSlots
	}
	return declared
}
