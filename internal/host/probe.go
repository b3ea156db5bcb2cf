package host

import (
	"context"
	"net"
	"time"

	"github.com/kenjikellens/ivids-core/internal/logger"
	"github.com/kenjikellens/ivids-core/internal/ports"
)

// DialProbe reports connectivity by opening a TCP connection to a well-known
// address. An empty address means the network is always considered available.
type DialProbe struct {
	address string
	timeout time.Duration
}

var _ ports.NetworkProbe = (*DialProbe)(nil)

func NewDialProbe(address string, timeout time.Duration) *DialProbe {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &DialProbe{address: address, timeout: timeout}
}

func (p *DialProbe) Available(ctx context.Context) bool {
	if p.address == "" {
		return true
	}

	d := net.Dialer{Timeout: p.timeout}
	conn, err := d.DialContext(ctx, "tcp", p.address)
	if err != nil {
		logger.Warn(ctx, "network unavailable", "address", p.address, "error", err)
		return false
	}
	_ = conn.Close()
	return true
}
