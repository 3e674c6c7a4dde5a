package artnet

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcastAddress(t *testing.T) {
	tests := []struct {
		name string
		ip   net.IP
		mask net.IPMask
		want net.IP
	}{
		{
			name: "class c",
			ip:   net.IPv4(192, 168, 6, 10),
			mask: net.IPv4Mask(255, 255, 255, 0),
			want: net.IPv4(192, 168, 6, 255),
		},
		{
			name: "class b",
			ip:   net.IPv4(10, 1, 2, 3),
			mask: net.IPv4Mask(255, 255, 0, 0),
			want: net.IPv4(10, 1, 255, 255),
		},
		{
			name: "narrow subnet",
			ip:   net.IPv4(10, 0, 0, 130),
			mask: net.IPv4Mask(255, 255, 255, 128),
			want: net.IPv4(10, 0, 0, 255),
		},
		{
			name: "cidr mask form",
			ip:   net.IPv4(172, 16, 4, 2),
			mask: net.CIDRMask(24, 32),
			want: net.IPv4(172, 16, 4, 255),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BroadcastAddress(tt.ip, tt.mask)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestBroadcastAddressInvalidInput(t *testing.T) {
	assert.Nil(t, BroadcastAddress(net.ParseIP("fe80::1"), net.IPv4Mask(255, 255, 255, 0)))
	assert.Nil(t, BroadcastAddress(net.IPv4(10, 0, 0, 1), net.IPMask{255, 0}))
}

func TestFindInterfaceIPBadCIDR(t *testing.T) {
	_, err := FindInterfaceIP("not-a-cidr")
	assert.Error(t, err)
}

func TestFindInterfaceIPNoMatch(t *testing.T) {
	// TEST-NET-3 is reserved for documentation; no interface should sit in it.
	ip, err := FindInterfaceIP("203.0.113.0/24")
	assert.NoError(t, err)
	assert.Nil(t, ip)
}
