package domain

import "time"

// CertificateStatus is the CMVP-published state of a certificate.
type CertificateStatus string

const (
	StatusActive     CertificateStatus = "Active"
	StatusHistorical CertificateStatus = "Historical"
	StatusRevoked    CertificateStatus = "Revoked"
)

// CertificateEntry is cached knowledge about one CMVP certificate, as
// captured by the out-of-band cache refresh job.
type CertificateEntry struct {
	CertificateNumber int               `json:"certificateNumber"`
	ModuleName        string            `json:"moduleName,omitempty"`
	Vendor            Vendor            `json:"vendor,omitempty"`
	Status            CertificateStatus `json:"status"`
	Standard          string            `json:"standard,omitempty"`
	SecurityLevel     int               `json:"securityLevel,omitempty"`
	ValidationDate    string            `json:"validationDate,omitempty"`
	SunsetDate        string            `json:"sunsetDate,omitempty"`
	Algorithms        []string          `json:"algorithms,omitempty"`
	LastScraped       string            `json:"lastScraped,omitempty"`
}

type Vendor struct {
	Name string `json:"name,omitempty"`
}

// Snapshot is the fully loaded, read-only certificate cache used during a
// validation run. Freshness is the caller's responsibility; TakenAt is
// surfaced in reports so staleness is at least visible.
type Snapshot struct {
	Certificates map[int]CertificateEntry
	TakenAt      time.Time
	StatusCounts map[CertificateStatus]int
}

// Resolve looks up a certificate number. It is total over all integers:
// an unknown number is a NotFound outcome, not an error. Policy rules turn
// NotFound into a finding.
func (s *Snapshot) Resolve(number int) (CertificateEntry, bool) {
	if s == nil {
		return CertificateEntry{}, false
	}
	entry, ok := s.Certificates[number]
	return entry, ok
}

// Total returns the number of cached certificates.
func (s *Snapshot) Total() int {
	if s == nil {
		return 0
	}
	return len(s.Certificates)
}
