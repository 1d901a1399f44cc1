// File: internal/netio/udpsocket_test.go
package netio_test

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/voxelfleet/cuberenderer/internal/netio"
)

func TestSocketSendToDeliversOverLoopback(t *testing.T) {
	server, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	require.NoError(t, err)
	defer server.Close()

	port := server.LocalAddr().(*net.UDPAddr).Port

	sock, err := netio.NewSocket()
	require.NoError(t, err)
	defer sock.Close()

	require.NoError(t, sock.SendTo("127.0.0.1", uint16(port), []byte("hello")))

	buf := make([]byte, 16)
	require.NoError(t, server.SetReadDeadline(time.Now().Add(time.Second)))
	n, _, err := server.ReadFromUDP(buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))
}

func TestSocketSendToRejectsInvalidAddress(t *testing.T) {
	sock, err := netio.NewSocket()
	require.NoError(t, err)
	defer sock.Close()

	err = sock.SendTo("not-an-ip", 6454, []byte("x"))
	require.Error(t, err)
}
