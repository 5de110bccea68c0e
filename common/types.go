package common

import "time"

type AdmitParams struct {
	Name       string `json:"name"`
	Severity   int    `json:"severity"`
	Department string `json:"department"`
}

// EntryInfo is a waiting patient.
type EntryInfo struct {
	Severity   int    `json:"severity"`
	Sequence   int    `json:"sequence"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// ServedInfo is an entry of the served log.
type ServedInfo struct {
	Name       string    `json:"name"`
	Severity   int       `json:"severity"`
	Department string    `json:"department"`
	ServedAt   time.Time `json:"servedAt"`
}

// ServeResult is the response for patient.serveNext. Served is nil when the
// queue was empty.
type ServeResult struct {
	Empty  bool        `json:"empty"`
	Served *ServedInfo `json:"served,omitempty"`
}

type WaitingResult struct {
	Date    string       `json:"date"`
	Entries []*EntryInfo `json:"entries"`
}

type ServedResult struct {
	Date    string        `json:"date"`
	Records []*ServedInfo `json:"records"`
}

// SeverityResult is the response for analytics.severity. Min and Max are
// the configured severity bounds; both are zero when analytics is disabled.
type SeverityResult struct {
	Counts      map[int]int    `json:"counts"`
	Departments map[string]int `json:"departments"`
	Min         int            `json:"min"`
	Max         int            `json:"max"`
}

type ResetParams struct {
	// Analytics also zeroes the severity histogram.
	Analytics bool `json:"analytics,omitempty"`
}

// VersionResult is the response for system.getVersion.
type VersionResult struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"buildType,omitempty"`
}

// EmptyResult is a placeholder for methods that return no data.
type EmptyResult struct{}

// ResetNotification is pushed when the queue is emptied.
type ResetNotification struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// Reasons carried by ResetNotification.
const (
	ResetManual   = "manual"
	ResetRollover = "rollover"
)
