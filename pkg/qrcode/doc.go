// Package qrcode writes QR codes as PNG files.
//
// Symbol construction (mode selection, version fitting, Reed-Solomon
// coding, masking) is done by github.com/skip2/go-qrcode. This package
// picks the error-correction level, renders the module grid at a fixed
// pixel size per module with a configurable quiet zone, and writes the
// image atomically.
//
// # Usage
//
//	gen := qrcode.NewGenerator(qrcode.WithLogger(log))
//
//	req := qrcode.NewEncodeRequest("https://example.com")
//	req.OutputPath = "site.png"
//	req.Level = qrcode.LevelQ
//
//	res, err := gen.Generate(ctx, req)
//	if err != nil {
//		// errors.Is(err, qrcode.ErrEncodeFailed) is always true here
//		return err
//	}
//	fmt.Printf("version %d, %dx%d modules\n", res.Version, res.ModuleCount, res.ModuleCount)
//
// # Error Correction Levels
//
//   - L recovers ~7% of damaged codewords
//   - M recovers ~15% (default)
//   - Q recovers ~25%
//   - H recovers ~30%
//
// ParseLevel never fails: unknown tokens fall back to M.
//
// # Output
//
// The image is black on white. Its side is
// (ModuleCount + 2*Border) * ModuleSize pixels. The file is written to a
// temporary file next to the target and renamed into place, so an
// existing file at the target path is replaced only by a complete image.
// The target directory must already exist.
package qrcode
