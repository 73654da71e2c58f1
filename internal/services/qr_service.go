package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"
	"time"

	"warehouse_backend/internal/models"
	"warehouse_backend/internal/repositories"
	"warehouse_backend/pkg/utils"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/skip2/go-qrcode"
)

// --- Custom Service Errors for QR ---
var (
	ErrQREncode          = errors.New("failed to encode QR code")
	ErrQRDecode          = errors.New("failed to decode QR code")
	ErrQRHistoryNotFound = errors.New("qr history entry not found")
	ErrQRValidation      = fmt.Errorf("%w: qr request", ErrValidation)
)

// QRKind selects what a generated code carries.
type QRKind string

const (
	QRKindText      QRKind = "text"
	QRKindURL       QRKind = "url"
	QRKindInventory QRKind = "inventory"
	QRKindLocation  QRKind = "location"
	QRKindCustom    QRKind = "custom"
)

const (
	defaultQRSize      = 256
	defaultQRMargin    = 1
	defaultJPEGQuality = 92
	maxScanDimension   = 1600
)

// --- QR DTOs ---

// QRImageOptions controls rendering. Zero values fall back to the defaults.
type QRImageOptions struct {
	ErrorCorrection string `json:"error_correction" validate:"omitempty,oneof=L M Q H"`
	Size            int    `json:"size" validate:"omitempty,min=64,max=2048"`
	Margin          *int   `json:"margin" validate:"omitempty,min=0,max=16"`
	DarkColor       string `json:"dark_color" validate:"omitempty,hexcolor"`
	LightColor      string `json:"light_color" validate:"omitempty,hexcolor"`
	Format          string `json:"format" validate:"omitempty,oneof=png jpeg"`
	Quality         int    `json:"quality" validate:"omitempty,min=1,max=100"`
}

type GenerateQRRequest struct {
	Kind       QRKind         `json:"kind" validate:"required,oneof=text url inventory location custom"`
	Data       string         `json:"data"`
	ItemID     string         `json:"item_id"`
	LocationID string         `json:"location_id"`
	Options    QRImageOptions `json:"options"`
}

type ScanRequest struct {
	Data string `json:"data" validate:"required"`
}

// QRImage is a rendered code.
type QRImage struct {
	Data        string `json:"data"`
	ContentType string `json:"content_type"`
	DataURL     string `json:"data_url"`
	Bytes       []byte `json:"-"`
}

// --- QRService Interface ---
type QRService interface {
	Generate(req GenerateQRRequest) (*QRImage, error)
	ItemQR(itemID string, opts QRImageOptions) (*QRImage, error)
	LocationQR(locationID string, opts QRImageOptions) (*QRImage, error)
	Scan(req ScanRequest) (*models.ScanResult, error)
	ScanImage(r io.Reader) (*models.ScanResult, error)
	GetHistory() ([]models.QRHistoryEntry, error)
	DeleteHistoryEntry(id string) error
	ClearHistory() error
}

type qrService struct {
	store        *repositories.Store
	itemRepo     repositories.ItemRepository
	locationRepo repositories.LocationRepository
	historyRepo  repositories.QRHistoryRepository
	now          func() time.Time
}

// NewQRService creates a new instance of QRService.
func NewQRService(
	store *repositories.Store,
	itemRepo repositories.ItemRepository,
	locationRepo repositories.LocationRepository,
	historyRepo repositories.QRHistoryRepository,
) QRService {
	return &qrService{store: store, itemRepo: itemRepo, locationRepo: locationRepo, historyRepo: historyRepo, now: time.Now}
}

// Generate renders a code for the requested kind and records it in the history.
func (s *qrService) Generate(req GenerateQRRequest) (*QRImage, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var data string
	switch req.Kind {
	case QRKindInventory:
		payload, err := s.inventoryPayload(req.ItemID)
		if err != nil {
			return nil, err
		}
		data = payload
	case QRKindLocation:
		payload, err := s.locationPayload(req.LocationID)
		if err != nil {
			return nil, err
		}
		data = payload
	case QRKindURL:
		data = strings.TrimSpace(req.Data)
		if err := utils.ValidateVar(data, "required,url"); err != nil {
			return nil, fmt.Errorf("%w: data must be a valid URL", ErrQRValidation)
		}
	default:
		data = req.Data
	}
	if utils.IsEmpty(data) {
		return nil, fmt.Errorf("%w: please enter data to encode", ErrQRValidation)
	}

	img, err := RenderQR(data, req.Options)
	if err != nil {
		return nil, err
	}
	s.record(models.QRHistoryGenerate, data, img.DataURL)
	return img, nil
}

func (s *qrService) ItemQR(itemID string, opts QRImageOptions) (*QRImage, error) {
	if err := validateRequest(opts); err != nil {
		return nil, err
	}
	data, err := s.inventoryPayload(itemID)
	if err != nil {
		return nil, err
	}
	return RenderQR(data, opts)
}

func (s *qrService) LocationQR(locationID string, opts QRImageOptions) (*QRImage, error) {
	if err := validateRequest(opts); err != nil {
		return nil, err
	}
	data, err := s.locationPayload(locationID)
	if err != nil {
		return nil, err
	}
	return RenderQR(data, opts)
}

func (s *qrService) inventoryPayload(itemID string) (string, error) {
	var payload InventoryQRPayload
	err := s.store.View(func(tx *repositories.Tx) error {
		item, err := s.itemRepo.GetItemByID(tx, itemID)
		if err != nil {
			return translateNotFound(err, ErrItemNotFound, "getting item")
		}
		locationName := ""
		if item.LocationID != nil {
			if loc, err := s.locationRepo.GetLocationByID(tx, *item.LocationID); err == nil {
				locationName = loc.Name
			}
		}
		payload = NewInventoryQRPayload(*item, locationName)
		return nil
	})
	if err != nil {
		return "", err
	}
	return encodePayload(payload)
}

func (s *qrService) locationPayload(locationID string) (string, error) {
	location, err := s.locationRepo.GetLocationByID(s.store, locationID)
	if err != nil {
		return "", translateNotFound(err, ErrLocationNotFound, "getting location")
	}
	return encodePayload(NewLocationQRPayload(*location))
}

// record adds a history entry. History is best effort; failures are only logged.
func (s *qrService) record(kind models.QRHistoryType, data, dataURL string) {
	entry := &models.QRHistoryEntry{
		ID:           utils.GenerateID(),
		Type:         kind,
		Data:         data,
		Timestamp:    s.now(),
		ImageDataURL: dataURL,
	}
	if err := s.historyRepo.AddEntry(s.store, entry); err != nil {
		utils.LogError(err, "Failed to record QR history", map[string]interface{}{"type": kind})
	}
}

// Scan resolves scanned text to an item or a location and records the scan.
// Text that matches nothing is not an error.
func (s *qrService) Scan(req ScanRequest) (*models.ScanResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	s.record(models.QRHistoryScan, req.Data, "")

	var result *models.ScanResult
	err := s.store.View(func(tx *repositories.Tx) error {
		items, err := s.itemRepo.GetAllItems(tx)
		if err != nil {
			return fmt.Errorf("listing items: %w", err)
		}
		locations, err := s.locationRepo.GetLocations(tx)
		if err != nil {
			return fmt.Errorf("listing locations: %w", err)
		}
		result = ResolveScan(req.Data, items, locations)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !result.Matched {
		utils.LogInfo("QR code scanned but no matching item or location found", map[string]interface{}{"data": req.Data, "matched": false})
	}
	return result, nil
}

// ScanImage reads a QR code from an uploaded image and resolves its text.
func (s *qrService) ScanImage(r io.Reader) (*models.ScanResult, error) {
	text, err := DecodeQRImage(r)
	if err != nil {
		return nil, err
	}
	return s.Scan(ScanRequest{Data: text})
}

func (s *qrService) GetHistory() ([]models.QRHistoryEntry, error) {
	return s.historyRepo.GetEntries(s.store)
}

func (s *qrService) DeleteHistoryEntry(id string) error {
	if err := s.historyRepo.DeleteEntry(s.store, id); err != nil {
		return translateNotFound(err, ErrQRHistoryNotFound, "deleting qr history entry")
	}
	return nil
}

func (s *qrService) ClearHistory() error {
	return s.historyRepo.ClearEntries(s.store)
}

// --- Scan resolution ---

// ResolveScan matches text against items and locations. JSON payloads are tried
// first by their type, then untyped add-item payloads, then "KEY: value" labels,
// and finally the raw text as an internal id, serial number, code, name or id.
func ResolveScan(text string, items []models.InventoryItem, locations []models.Location) *models.ScanResult {
	result := &models.ScanResult{Data: text, Kind: models.ScanMatchNone}

	if p, ok := parseJSONPayload(text); ok {
		switch {
		case p.Type == qrTypeInventory:
			matchItem(result, p, items)
		case p.Type == qrTypeLocation:
			matchLocation(result, p, locations)
		case p.Type == "" && p.InternalID != "":
			matchItem(result, p, items)
		}
		if !result.Matched {
			utils.LogDebug("Structured QR payload did not match", map[string]interface{}{"payload": describePayload(p)})
		}
		return result
	}

	if p, ok := parseKeyValuePayload(text); ok {
		matchItem(result, p, items)
		if result.Matched {
			return result
		}
	}

	matchLiteral(result, strings.TrimSpace(text), items, locations)
	return result
}

func setItem(result *models.ScanResult, item models.InventoryItem, by string) {
	result.Matched = true
	result.Kind = models.ScanMatchInventory
	result.MatchedBy = by
	result.Item = &item
}

func setLocation(result *models.ScanResult, location models.Location, by string) {
	result.Matched = true
	result.Kind = models.ScanMatchLocation
	result.MatchedBy = by
	result.Location = &location
}

func matchItem(result *models.ScanResult, p *scannedPayload, items []models.InventoryItem) {
	if id := p.ItemID; id != "" {
		for _, item := range items {
			if item.ID == id {
				setItem(result, item, "id")
				return
			}
		}
		for _, item := range items {
			if item.InternalID == id {
				setItem(result, item, "internal_id")
				return
			}
		}
	}
	if p.InternalID != "" {
		for _, item := range items {
			if item.InternalID == p.InternalID {
				setItem(result, item, "internal_id")
				return
			}
		}
	}
	if serial := p.SerialNumber; serial != "" && serial != notAvailable {
		for _, item := range items {
			if item.SerialNumber != nil && *item.SerialNumber == serial {
				setItem(result, item, "serial_number")
				return
			}
		}
	}
	for _, name := range []string{p.Name, p.ItemName} {
		if name == "" {
			continue
		}
		for _, item := range items {
			if strings.EqualFold(item.Name, name) {
				setItem(result, item, "name")
				return
			}
		}
	}
}

func matchLocation(result *models.ScanResult, p *scannedPayload, locations []models.Location) {
	if p.LocationID != "" {
		for _, loc := range locations {
			if loc.ID == p.LocationID {
				setLocation(result, loc, "id")
				return
			}
		}
	}
	if p.LocationCode != "" {
		for _, loc := range locations {
			if loc.Code == p.LocationCode {
				setLocation(result, loc, "code")
				return
			}
		}
	}
	names := append([]string{p.Name}, p.locationComponents()...)
	for _, loc := range locations {
		for _, n := range names {
			if n != "" && loc.Name == n {
				setLocation(result, loc, "name")
				return
			}
		}
	}
	for _, loc := range locations {
		if loc.Description == nil {
			continue
		}
		for _, c := range p.locationComponents() {
			if strings.Contains(*loc.Description, c) {
				setLocation(result, loc, "description")
				return
			}
		}
	}
}

// matchLiteral compares the raw text field by field: every item's internal id, then every
// serial number, name and id, and only then location codes, names and ids. A field earlier
// in that order wins over list position.
func matchLiteral(result *models.ScanResult, text string, items []models.InventoryItem, locations []models.Location) {
	if text == "" {
		return
	}
	itemFields := []struct {
		by    string
		match func(models.InventoryItem) bool
	}{
		{"internal_id", func(it models.InventoryItem) bool { return it.InternalID == text }},
		{"serial_number", func(it models.InventoryItem) bool { return it.SerialNumber != nil && *it.SerialNumber == text }},
		{"name", func(it models.InventoryItem) bool { return strings.EqualFold(it.Name, text) }},
		{"id", func(it models.InventoryItem) bool { return it.ID == text }},
	}
	for _, f := range itemFields {
		for _, item := range items {
			if f.match(item) {
				setItem(result, item, f.by)
				return
			}
		}
	}

	locationFields := []struct {
		by    string
		match func(models.Location) bool
	}{
		{"code", func(l models.Location) bool { return l.Code == text }},
		{"name", func(l models.Location) bool { return strings.EqualFold(l.Name, text) }},
		{"id", func(l models.Location) bool { return l.ID == text }},
	}
	for _, f := range locationFields {
		for _, loc := range locations {
			if f.match(loc) {
				setLocation(result, loc, f.by)
				return
			}
		}
	}
}

// --- Image encoding and decoding ---

var recoveryLevels = map[string]qrcode.RecoveryLevel{
	"L": qrcode.Low,
	"M": qrcode.Medium,
	"Q": qrcode.High,
	"H": qrcode.Highest,
}

// RenderQR encodes data as a QR code image with the given options.
func RenderQR(data string, opts QRImageOptions) (*QRImage, error) {
	if err := validateRequest(opts); err != nil {
		return nil, err
	}
	level, ok := recoveryLevels[opts.ErrorCorrection]
	if !ok {
		level = qrcode.Medium
	}
	size := opts.Size
	if size == 0 {
		size = defaultQRSize
	}
	margin := defaultQRMargin
	if opts.Margin != nil {
		margin = *opts.Margin
	}
	dark, err := parseHexColor(opts.DarkColor, color.Black)
	if err != nil {
		return nil, fmt.Errorf("%w: dark_color: %v", ErrQRValidation, err)
	}
	light, err := parseHexColor(opts.LightColor, color.White)
	if err != nil {
		return nil, fmt.Errorf("%w: light_color: %v", ErrQRValidation, err)
	}

	q, err := qrcode.New(data, level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQREncode, err)
	}
	q.DisableBorder = true
	q.ForegroundColor = dark
	q.BackgroundColor = light

	modules := len(q.Bitmap())
	symbol := q.Image(size)
	symbolSize := symbol.Bounds().Dx()
	marginPx := 0
	if modules > 0 {
		marginPx = symbolSize * margin / modules
	}
	canvas := imaging.New(symbolSize+2*marginPx, symbolSize+2*marginPx, light)
	canvas = imaging.Paste(canvas, symbol, image.Pt(marginPx, marginPx))
	final := imaging.Resize(canvas, size, size, imaging.NearestNeighbor)

	format, contentType := imaging.PNG, "image/png"
	var encodeOpts []imaging.EncodeOption
	if opts.Format == "jpeg" {
		quality := opts.Quality
		if quality == 0 {
			quality = defaultJPEGQuality
		}
		format, contentType = imaging.JPEG, "image/jpeg"
		encodeOpts = append(encodeOpts, imaging.JPEGQuality(quality))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, final, format, encodeOpts...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQREncode, err)
	}
	return &QRImage{
		Data:        data,
		ContentType: contentType,
		DataURL:     "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Bytes:       buf.Bytes(),
	}, nil
}

// DecodeQRImage finds a QR code in an image and returns its text.
// Large photos are scaled down before detection.
func DecodeQRImage(r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: unreadable image: %v", ErrQRDecode, err)
	}
	b := img.Bounds()
	if b.Dx() > maxScanDimension || b.Dy() > maxScanDimension {
		img = imaging.Fit(img, maxScanDimension, maxScanDimension, imaging.Lanczos)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrQRDecode, err)
	}
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	res, err := zxingqr.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%w: no QR code found in image: %v", ErrQRDecode, err)
	}
	return res.GetText(), nil
}

// parseHexColor reads #RGB or #RRGGBB.
func parseHexColor(s string, fallback color.Color) (color.Color, error) {
	if s == "" {
		return fallback, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
