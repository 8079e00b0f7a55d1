package antivirus

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"strings"
	"time"
)

// ClamAVScanner talks to a clamd daemon over the INSTREAM protocol.
type ClamAVScanner struct {
	address string        // TCP address (host:port) or Unix socket path
	timeout time.Duration // Connection and scan timeout
}

var _ Scanner = (*ClamAVScanner)(nil)

// NewClamAVScanner creates a ClamAV scanner
// address: TCP "localhost:3310" or Unix socket "/var/run/clamav/clamd.sock"
func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{
		address: address,
		timeout: timeout,
	}
}

func (c *ClamAVScanner) Name() string {
	return "clamav"
}

func (c *ClamAVScanner) network() string {
	if strings.HasPrefix(c.address, "/") {
		return "unix"
	}
	return "tcp"
}

// Scan streams data to clamd in a single chunk.
func (c *ClamAVScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	result := ScanResult{ScannerName: c.Name()}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, c.network(), c.address)
	if err != nil {
		result.Err = fmt.Errorf("failed to connect to clamd: %w", err)
		return result
	}
	defer conn.Close()

	deadline, _ := ctx.Deadline()
	_ = conn.SetDeadline(deadline)

	// zINSTREAM: null-terminated command, then <len uint32 BE><bytes>..., then a zero length.
	frame := make([]byte, 0, len("zINSTREAM\x00")+4+len(data)+4)
	frame = append(frame, "zINSTREAM\x00"...)
	frame = binary.BigEndian.AppendUint32(frame, uint32(len(data)))
	frame = append(frame, data...)
	frame = binary.BigEndian.AppendUint32(frame, 0)

	if _, err := conn.Write(frame); err != nil {
		result.Err = fmt.Errorf("failed to stream %s: %w", filename, err)
		return result
	}

	reply, err := bufio.NewReader(conn).ReadString(0)
	if err != nil && reply == "" {
		result.Err = fmt.Errorf("failed to read response: %w", err)
		return result
	}
	reply = strings.TrimSpace(strings.TrimRight(reply, "\x00"))

	// Clean: "stream: OK"
	// Infected: "stream: Eicar-Signature FOUND"
	// Error: "stream: <error message> ERROR"
	switch {
	case strings.HasSuffix(reply, "FOUND"):
		result.Infected = true
		if _, threat, ok := strings.Cut(reply, ":"); ok {
			result.ThreatName = strings.TrimSuffix(strings.TrimSpace(threat), " FOUND")
		}
	case strings.HasSuffix(reply, "ERROR"):
		result.Err = fmt.Errorf("scan error: %s", reply)
	case !strings.HasSuffix(reply, "OK"):
		result.Err = fmt.Errorf("unexpected clamd reply: %q", reply)
	}

	return result
}
