// Package qrscan finds and decodes QR codes in raster images.
//
// Detection and decoding are done by github.com/makiuchi-d/gozxing. The
// scanner adds file checks, image loading and a stable error taxonomy:
//
//	ErrFileNotFound     the path does not exist
//	ErrUnreadableFile   the path exists but cannot be opened as a file
//	ErrUnreadableImage  the file is not a PNG, JPEG or GIF image
//	ErrNoSymbolFound    the image decodes but contains no QR code
//	ErrDecodeFailed     a symbol was located but could not be decoded
//
// Every failure returns an empty record list; the error says why.
//
//	s := qrscan.NewScanner(qrscan.WithLogger(log))
//	records, err := s.Scan(ctx, "site.png")
//	if errors.Is(err, qrscan.ErrNoSymbolFound) {
//		fmt.Println("No QR code found in the image")
//	}
//	for i, r := range records {
//		fmt.Printf("#%d %s %q at %+v\n", i+1, r.SymbolType, r.Text, r.Bounds)
//	}
//
// Records keep the decoder's detection order, which is not guaranteed to
// be spatial.
package qrscan
