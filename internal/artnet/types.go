package artnet

import "net"

// Protocol constants.
const (
	// Port is the UDP port used by Art-Net (0x1936 = 6454).
	Port = 0x1936
	// BufferMax is the largest Art-Net datagram this node handles:
	// an ArtDMX header plus a full universe of data.
	BufferMax = 530
	// ReplySize is the fixed size of an ArtPollReply packet.
	ReplySize = 239
	// ProtocolVersion is the Art-Net protocol revision sent in packets.
	ProtocolVersion = 14
)

// OpCode identifies an Art-Net packet type. Stored low byte first on the
// wire. OpNop is the classification for anything the node ignores.
type OpCode uint16

const (
	OpNop       OpCode = 0x0000
	OpPoll      OpCode = 0x2000
	OpPollReply OpCode = 0x2100
	OpDMX       OpCode = 0x5000
	OpAddress   OpCode = 0x6000
)

func (op OpCode) String() string {
	switch op {
	case OpNop:
		return "OpNop"
	case OpPoll:
		return "OpPoll"
	case OpPollReply:
		return "OpPollReply"
	case OpDMX:
		return "OpDmx"
	case OpAddress:
		return "OpAddress"
	}
	return "OpUnknown"
}

// Transport carries Art-Net datagrams for the node. Implementations own
// the sockets; the node itself never opens one.
type Transport interface {
	// Receive blocks for the next datagram and returns its payload and
	// the sender's IP.
	Receive() (payload []byte, sender net.IP, err error)
	// Send transmits a datagram to dest on the given UDP port.
	Send(payload []byte, dest net.IP, port int) error
}

// Frame is one accepted universe of DMX data, handed to the output sink.
type Frame struct {
	Universe uint8
	Slots    []byte
}

// FrameSink consumes accepted DMX frames, e.g. a hardware DMX driver or
// the MQTT publisher.
type FrameSink interface {
	WriteFrame(frame Frame) error
}
