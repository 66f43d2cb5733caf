package qrscan

import (
	"image"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/makiuchi-d/gozxing"
)

// SymbolTypeQR is the symbol type reported for QR codes.
const SymbolTypeQR = "QRCODE"

// Rect is a pixel-space rectangle.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// ScanRecord is one decoded symbol.
type ScanRecord struct {
	Text       string
	SymbolType string
	Bounds     Rect
}

// finderHalfWidth is half a finder pattern's side, in modules.
const finderHalfWidth = 3.5

type moduleSizer interface {
	GetEstimatedModuleSize() float64
}

// newRecord converts a decoder result. The second value reports whether
// the text had to be repaired into valid UTF-8.
func newRecord(res *gozxing.Result, bounds image.Rectangle) (ScanRecord, bool) {
	text := res.GetText()
	repaired := false
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
		repaired = true
	}

	return ScanRecord{
		Text:       text,
		SymbolType: symbolType(res.GetBarcodeFormat()),
		Bounds:     boundingRect(res.GetResultPoints(), bounds),
	}, repaired
}

func symbolType(f gozxing.BarcodeFormat) string {
	if f == gozxing.BarcodeFormat_QR_CODE {
		return SymbolTypeQR
	}
	return strings.ReplaceAll(f.String(), "_", "")
}

// boundingRect returns the envelope of the finder/alignment centres,
// grown by half a finder pattern so it covers the symbol edge, clamped to
// the image.
func boundingRect(points []gozxing.ResultPoint, bounds image.Rectangle) Rect {
	if len(points) == 0 {
		return Rect{}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	module := 0.0
	for _, p := range points {
		if p == nil {
			continue
		}
		minX = math.Min(minX, p.GetX())
		minY = math.Min(minY, p.GetY())
		maxX = math.Max(maxX, p.GetX())
		maxY = math.Max(maxY, p.GetY())
		if ms, ok := p.(moduleSizer); ok {
			module = math.Max(module, ms.GetEstimatedModuleSize())
		}
	}
	if math.IsInf(minX, 1) {
		return Rect{}
	}

	pad := finderHalfWidth * module
	r := image.Rect(
		int(math.Floor(minX-pad)),
		int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad)),
		int(math.Ceil(maxY+pad)),
	).Intersect(bounds)

	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}
