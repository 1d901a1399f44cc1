// File: internal/netio/udpsocket.go
package netio

import (
	"fmt"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// Socket is a UDP sender with SO_BROADCAST enabled, so directed-broadcast
// cube controller addresses (e.g. a /24 broadcast IP) work alongside plain
// unicast endpoints. It implements artnet.Sender.
type Socket struct {
	conn *net.UDPConn
}

// NewSocket opens an unconnected UDP socket and enables SO_BROADCAST on its
// underlying file descriptor.
func NewSocket() (*Socket, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{})
	if err != nil {
		return nil, fmt.Errorf("netio: listen udp: %w", err)
	}

	rawConn, err := conn.SyscallConn()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("netio: syscall conn: %w", err)
	}

	var sockErr error
	err = rawConn.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_BROADCAST, 1)
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("netio: control: %w", err)
	}
	if sockErr != nil {
		conn.Close()
		return nil, fmt.Errorf("netio: set SO_BROADCAST: %w", sockErr)
	}

	return &Socket{conn: conn}, nil
}

// SendTo transmits payload to ip:port. Errors are returned to the caller
// (the fan-out) rather than logged here — reporting them to the
// SenderMonitor is the fan-out's job, not the socket's.
func (s *Socket) SendTo(ip string, port uint16, payload []byte) error {
	addr := &net.UDPAddr{IP: net.ParseIP(ip), Port: int(port)}
	if addr.IP == nil {
		return fmt.Errorf("netio: invalid address %q", ip)
	}
	_, err := s.conn.WriteToUDP(payload, addr)
	return err
}

// Close releases the underlying file descriptor.
func (s *Socket) Close() error {
	return s.conn.Close()
}
