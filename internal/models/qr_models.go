package models

import "time"

// QRHistoryType tells whether a history entry came from a scan or a generation.
type QRHistoryType string

const (
	QRHistoryScan     QRHistoryType = "scan"
	QRHistoryGenerate QRHistoryType = "generate"
)

// MaxQRHistoryEntries caps the QR history; older entries fall off.
const MaxQRHistoryEntries = 50

// QRHistoryEntry is one scan or generation event.
type QRHistoryEntry struct {
	ID           string        `json:"id"`
	Type         QRHistoryType `json:"type"`
	Data         string        `json:"data"`
	Timestamp    time.Time     `json:"timestamp"`
	ImageDataURL string        `json:"image_data_url,omitempty"`
}

// ScanMatchKind names the entity a scan resolved to.
type ScanMatchKind string

const (
	ScanMatchNone      ScanMatchKind = "none"
	ScanMatchInventory ScanMatchKind = "inventory"
	ScanMatchLocation  ScanMatchKind = "location"
)

// ScanResult is the outcome of resolving scanned text against items and locations.
type ScanResult struct {
	Data      string         `json:"data"`
	Matched   bool           `json:"matched"`
	Kind      ScanMatchKind  `json:"kind"`
	MatchedBy string         `json:"matched_by,omitempty"`
	Item      *InventoryItem `json:"item,omitempty"`
	Location  *Location      `json:"location,omitempty"`
}
