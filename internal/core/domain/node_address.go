package domain

import (
	"net"
	"strconv"
)

// NodeAddress is the network address of a peer on the trading network.
type NodeAddress struct {
	HostName string
	Port     uint32
}

// ParseNodeAddress parses an address in host:port form.
func ParseNodeAddress(s string) (NodeAddress, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return NodeAddress{}, ErrInvalidNodeAddress
	}
	port, err := strconv.ParseUint(portStr, 10, 32)
	if err != nil || host == "" {
		return NodeAddress{}, ErrInvalidNodeAddress
	}
	return NodeAddress{HostName: host, Port: uint32(port)}, nil
}

func (a NodeAddress) String() string {
	return net.JoinHostPort(a.HostName, strconv.FormatUint(uint64(a.Port), 10))
}

// IsEmpty returns whether the address misses its host name or port.
func (a NodeAddress) IsEmpty() bool {
	return a.HostName == "" || a.Port == 0
}
