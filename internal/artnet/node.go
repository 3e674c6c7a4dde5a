package artnet

import (
	"encoding/binary"
	"net"

	"artnetnode/internal/dmx"
)

// Node is a single-universe Art-Net node. It classifies incoming
// datagrams, keeps one DMX512 universe of data, and serializes the
// packets the node sends in return.
//
// The node does not merge: the first host to deliver a valid ArtDMX
// packet owns the universe, and packets from other senders are dropped
// until an ArtAddress cancel-merge command releases the lock.
//
// A Node is not safe for concurrent use; callers must serialize access.
type Node struct {
	buf       *dmx.Buffer
	myAddr    net.IP
	broadcast net.IP
	universe  uint8
	sequence  uint8
	dmxSender net.IP
	shortName string
	longName  string
}

// NewNode creates a node that reports addr in poll replies and unicasts
// those replies back to the poll sender.
func NewNode(addr net.IP) *Node {
	return &Node{
		buf:       dmx.NewBuffer(),
		myAddr:    addr,
		shortName: "ArtNetNode",
		longName:  "ArtNetNode single universe DMX output",
	}
}

// NewBroadcastNode creates a node that broadcasts poll replies to the
// directed broadcast address derived from addr and mask.
func NewBroadcastNode(addr net.IP, mask net.IPMask) *Node {
	n := NewNode(addr)
	n.broadcast = BroadcastAddress(addr, mask)
	return n
}

// DMX returns the node's universe buffer for the downstream output sink.
func (n *Node) DMX() *dmx.Buffer {
	return n.buf
}

// Universe returns the combined address byte: high nibble subnet, low
// nibble universe.
func (n *Node) Universe() uint8 {
	return n.universe
}

// SetUniverse sets the combined subnet/universe byte.
func (n *Node) SetUniverse(u uint8) {
	n.universe = u
}

// SetSubnetUniverse sets the subnet (high nibble) and universe (low
// nibble) separately.
func (n *Node) SetSubnetUniverse(subnet, universe uint8) {
	n.universe = subnet<<4 | universe&0x0f
}

// SetUniverseAddress applies an ArtAddress universe byte: 0x7f leaves
// the universe unchanged, a value with bit 0x80 set replaces the low
// nibble, anything else is ignored.
func (n *Node) SetUniverseAddress(u uint8) {
	if u != 0x7f && u&0x80 != 0 {
		n.universe = n.universe&0xf0 | u&0x0f
	}
}

// SetSubnetAddress applies an ArtAddress subnet byte with the same
// flag encoding as SetUniverseAddress, replacing the high nibble.
func (n *Node) SetSubnetAddress(s uint8) {
	if s != 0x7f && s&0x80 != 0 {
		n.universe = n.universe&0x0f | s<<4
	}
}

// SetNames sets the short and long names reported in poll replies.
// Names longer than the wire fields (17 and 63 bytes) are truncated.
func (n *Node) SetNames(short, long string) {
	if short != "" {
		n.shortName = short
	}
	if long != "" {
		n.longName = long
	}
}

// ReplyAddress returns where a poll reply should be sent: the configured
// broadcast address if there is one, otherwise the poll sender itself.
func (n *Node) ReplyAddress(pollSender net.IP) net.IP {
	if n.broadcast != nil {
		return n.broadcast
	}
	return pollSender
}

// ClassifyPacket validates and dispatches one received datagram,
// updating node state as a side effect. It returns the packet's opcode,
// or OpNop for anything malformed, mis-addressed, oversized, sent by a
// non-owning host, or simply not Art-Net. It never fails.
func (n *Node) ClassifyPacket(data []byte, sender net.IP) OpCode {
	if len(data) > BufferMax {
		return OpNop
	}
	op := parseHeader(data)
	switch op {
	case OpDMX:
		return n.parseDMX(data, sender)
	case OpAddress:
		return n.parseAddress(data)
	default:
		// OpPoll and OpPollReply carry no state for this node; the
		// caller decides whether to answer a poll.
		return op
	}
}

// parseDMX applies an ArtDMX packet to the universe buffer if it is
// addressed to this node and passes the first-sender-wins policy.
func (n *Node) parseDMX(data []byte, sender net.IP) OpCode {
	if len(data) <= dmxDataOffset {
		return OpNop
	}
	if data[dmxUniverseOffset] != n.universe {
		return OpNop
	}
	declared := int(binary.BigEndian.Uint16(data[dmxLengthOffset:]))
	slots := clampSlots(declared, len(data)-dmxDataOffset)
	if slots < 1 {
		return OpNop
	}
	if n.dmxSender == nil {
		n.dmxSender = append(net.IP(nil), sender...)
	} else if !n.dmxSender.Equal(sender) {
		return OpNop
	}
	n.buf.Load(data[dmxDataOffset : dmxDataOffset+slots])
	return OpDMX
}

// parseAddress applies an ArtAddress packet: flag-encoded universe and
// subnet bytes, and the cancel-merge command that releases the recorded
// DMX sender.
func (n *Node) parseAddress(data []byte) OpCode {
	if len(data) < addressSize {
		return OpNop
	}
	n.SetUniverseAddress(data[addressSwOutOffset])
	n.SetSubnetAddress(data[addressSubnetOffset])
	if data[addressCommandOffset] == commandCancelMerge {
		n.dmxSender = nil
	}
	return OpAddress
}
