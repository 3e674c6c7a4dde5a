package artnet

import (
	"context"
	"net"

	"artnetnode/internal/logger"
)

// Receiver drives a Node from a Transport: it reads datagrams, lets the
// node classify them, answers discovery polls and forwards accepted DMX
// frames to the output sink. All node access happens on the receive
// goroutine, so the node needs no locking.
type Receiver struct {
	log       logger.Logger
	node      *Node
	transport Transport
	sink      FrameSink
}

// NewReceiver wires a node to its transport. sink may be nil when no
// downstream consumer is configured.
func NewReceiver(log logger.Logger, node *Node, transport Transport, sink FrameSink) *Receiver {
	return &Receiver{
		log:       log,
		node:      node,
		transport: transport,
		sink:      sink,
	}
}

// Start launches the receive loop. The loop runs until the context is
// canceled and the transport is closed by the caller, which unblocks the
// pending Receive.
func (r *Receiver) Start(ctx context.Context) {
	go r.loop(ctx)
}

func (r *Receiver) loop(ctx context.Context) {
	for {
		data, sender, err := r.transport.Receive()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				r.log.With(logger.Fields{"module": "art-net"}).Errorf("receive failed: %v", err)
				continue
			}
		}
		r.handlePacket(data, sender)
	}
}

// handlePacket classifies one datagram and performs the follow-up the
// protocol expects from a node.
func (r *Receiver) handlePacket(data []byte, sender net.IP) {
	switch op := r.node.ClassifyPacket(data, sender); op {
	case OpPoll:
		dest := r.node.ReplyAddress(sender)
		if err := r.transport.Send(r.node.BuildPollReply(), dest, Port); err != nil {
			r.log.With(logger.Fields{"module": "art-net"}).Errorf("poll reply to %s failed: %v", dest, err)
			return
		}
		r.log.With(logger.Fields{"module": "art-net"}).Debugf("poll from %s answered via %s", sender, dest)
	case OpDMX:
		if r.sink == nil {
			return
		}
		frame := Frame{
			Universe: r.node.Universe(),
			Slots:    append([]byte(nil), r.node.DMX().Raw()...),
		}
		if err := r.sink.WriteFrame(frame); err != nil {
			r.log.With(logger.Fields{"module": "art-net"}).Errorf("frame sink rejected %d slots: %v", len(frame.Slots), err)
		}
	case OpAddress:
		r.log.With(logger.Fields{"module": "art-net"}).Infof("node address updated by %s, universe now 0x%02x", sender, r.node.Universe())
	default:
		// OpNop and opcodes this node does not act on.
	}
}
