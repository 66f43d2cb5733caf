package console

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/qrkit/pkg/qrscan"
)

const width = 60

var (
	rule     = strings.Repeat("=", width)
	thinRule = strings.Repeat("-", width)
)

func (c *Controller) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Controller) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Controller) printHeader() {
	c.println("\n" + rule)
	c.println(strings.Repeat(" ", 15) + "QR CODE GENERATOR & SCANNER")
	c.println(rule)
}

func (c *Controller) printMenu() {
	c.println("\n" + rule)
	c.println("MAIN MENU")
	c.println(thinRule)
	c.println("1. Generate QR Code")
	c.println("2. Scan QR Code from Image")
	c.println("3. Exit")
	c.println(thinRule)
}

func (c *Controller) printBanner(title string) {
	c.println("\n" + rule)
	c.println(title)
	c.println(rule)
}

func (c *Controller) printScanResults(records []qrscan.ScanRecord) {
	c.println(rule)
	c.println("SCAN RESULTS")
	c.println(rule)

	for i, r := range records {
		c.printf("\nQR Code #%d:\n", i+1)
		c.printf("  Decoded Data: %s\n", r.Text)
		c.printf("  Type: %s\n", r.SymbolType)
		c.printf("  Position: x=%d, y=%d\n", r.Bounds.X, r.Bounds.Y)
		c.printf("  Size: %dx%d pixels\n", r.Bounds.Width, r.Bounds.Height)
	}

	c.println("\n" + rule)
	c.printf("✓ Successfully decoded %d QR code(s)!\n", len(records))
	c.println(rule)
}
