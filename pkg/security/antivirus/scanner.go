package antivirus

import "context"

// ScanResult contains the result of a malware scan
type ScanResult struct {
	Infected    bool   // True if malware was detected
	ThreatName  string // Name of detected threat (empty if clean)
	ScannerName string // Name of scanner that produced this result
	Err         error  // Scan could not complete; Infected is false
}

// Scanner is the interface for pluggable antivirus implementations.
// Callers decide what an incomplete scan (Err != nil) means for them.
type Scanner interface {
	Scan(ctx context.Context, filename string, data []byte) ScanResult

	// Name returns the scanner implementation name (for logging)
	Name() string
}
