// Package transport provides the UDP datagram transport consumed by the
// Art-Net node.
package transport

import (
	"fmt"
	"net"

	"artnetnode/internal/artnet"
)

// UDP is a bound Art-Net socket implementing artnet.Transport.
type UDP struct {
	conn *net.UDPConn
	buf  []byte
}

// Listen binds a UDP socket on the given address and port.
func Listen(bind string, port int) (*UDP, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.ParseIP(bind), Port: port})
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s:%d: %w", bind, port, err)
	}
	return &UDP{
		conn: conn,
		buf:  make([]byte, artnet.BufferMax),
	}, nil
}

// Receive blocks for the next datagram and returns a copy of its payload
// with the sender's IP. Datagrams beyond the Art-Net maximum arrive
// truncated. Receive must be called from a single goroutine because the
// read buffer is reused between calls.
func (u *UDP) Receive() ([]byte, net.IP, error) {
	n, addr, err := u.conn.ReadFromUDP(u.buf)
	if err != nil {
		return nil, nil, err
	}
	payload := make([]byte, n)
	copy(payload, u.buf[:n])
	return payload, addr.IP, nil
}

// Send transmits a datagram to dest on the given port.
func (u *UDP) Send(payload []byte, dest net.IP, port int) error {
	if _, err := u.conn.WriteToUDP(payload, &net.UDPAddr{IP: dest, Port: port}); err != nil {
		return fmt.Errorf("failed to send %d bytes to %s:%d: %w", len(payload), dest, port, err)
	}
	return nil
}

// LocalAddr returns the bound socket address.
func (u *UDP) LocalAddr() net.Addr {
	return u.conn.LocalAddr()
}

// Close closes the socket, unblocking a pending Receive.
func (u *UDP) Close() error {
	return u.conn.Close()
}
