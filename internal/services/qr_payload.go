package services

import (
	"bufio"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"warehouse_backend/internal/models"
)

// QRPayloadVersion is written into every JSON payload this service produces.
const QRPayloadVersion = 1

const (
	qrTypeInventory = "inventory"
	qrTypeLocation  = "location"
	unknownLocation = "Unknown Location"
	notAvailable    = "N/A"
)

// InventoryQRPayload is the JSON encoded into an inventory item's QR code.
type InventoryQRPayload struct {
	V            int    `json:"v"`
	Type         string `json:"type"`
	ItemID       string `json:"itemId"`
	InternalID   string `json:"internalId"`
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber"`
	Location     string `json:"location"`
	Supplier     string `json:"supplier"`
	CreatedAt    string `json:"createdAt"`
}

// LocationQRPayload is the JSON encoded into a location's QR code.
type LocationQRPayload struct {
	V            int    `json:"v"`
	Type         string `json:"type"`
	LocationID   string `json:"locationId"`
	LocationCode string `json:"locationCode"`
	Name         string `json:"name"`
	Level        int    `json:"level"`
}

// NewInventoryQRPayload builds the payload for item. locationName may be empty.
func NewInventoryQRPayload(item models.InventoryItem, locationName string) InventoryQRPayload {
	if locationName == "" {
		locationName = unknownLocation
	}
	serial := notAvailable
	if item.SerialNumber != nil {
		serial = *item.SerialNumber
	}
	return InventoryQRPayload{
		V:            QRPayloadVersion,
		Type:         qrTypeInventory,
		ItemID:       item.ID,
		InternalID:   item.InternalID,
		Name:         item.Name,
		SerialNumber: serial,
		Location:     locationName,
		Supplier:     item.PurchasedFrom,
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewLocationQRPayload builds the payload for location.
func NewLocationQRPayload(location models.Location) LocationQRPayload {
	return LocationQRPayload{
		V:            QRPayloadVersion,
		Type:         qrTypeLocation,
		LocationID:   location.ID,
		LocationCode: location.Code,
		Name:         location.Name,
		Level:        location.Level,
	}
}

func encodePayload(payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// scannedPayload is the union of every payload shape a scan may carry: the current
// versioned schema, the generator form payloads and the untyped add-item payload.
type scannedPayload struct {
	Type         string `json:"type"`
	ItemID       string `json:"itemId"`
	ItemName     string `json:"itemName"`
	InternalID   string `json:"internalId"`
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber"`
	LocationID   string `json:"locationId"`
	LocationCode string `json:"locationCode"`
	BuildingID   string `json:"buildingId"`
	FloorID      string `json:"floorId"`
	RoomID       string `json:"roomId"`
	ShelfID      string `json:"shelfId"`
}

// parseJSONPayload decodes text as a JSON object payload.
func parseJSONPayload(text string) (*scannedPayload, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var p scannedPayload
	if err := json.Unmarshal([]byte(trimmed), &p); err != nil {
		return nil, false
	}
	return &p, true
}

// parseKeyValuePayload reads the older newline separated "KEY: value" item labels.
// It needs at least one of the item keys to count as a payload.
func parseKeyValuePayload(text string) (*scannedPayload, bool) {
	if !strings.Contains(text, "\n") && !strings.Contains(text, ":") {
		return nil, false
	}
	p := &scannedPayload{}
	found := false
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(key), " ", "")) {
		case "ITEMID":
			p.ItemID, found = value, true
		case "INTERNALID":
			p.InternalID, found = value, true
		case "SERIALNUMBER":
			p.SerialNumber, found = value, true
		case "NAME":
			p.Name, found = value, true
		}
	}
	return p, found
}

// locationComponents returns the non-empty structural ids of a generator location payload.
func (p *scannedPayload) locationComponents() []string {
	var out []string
	for _, c := range []string{p.BuildingID, p.FloorID, p.RoomID, p.ShelfID} {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// describePayload renders a short human readable summary for logs.
func describePayload(p *scannedPayload) string {
	parts := []string{"type=" + strconv.Quote(p.Type)}
	fields := [][2]string{{"itemId", p.ItemID}, {"internalId", p.InternalID}, {"locationId", p.LocationID}}
	for _, f := range fields {
		if f[1] != "" {
			parts = append(parts, f[0]+"="+strconv.Quote(f[1]))
		}
	}
	return strings.Join(parts, " ")
}
