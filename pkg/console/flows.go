package console

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrymomot/qrkit/core/logger"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrscan"
)

func (c *Controller) generateFlow(ctx context.Context) error {
	c.state = Generating
	c.printBanner("QR CODE GENERATOR")

	data, err := c.prompt(ctx, "\nEnter data to encode: ")
	if err != nil {
		return err
	}
	if data == "" {
		c.println("Data cannot be empty.")
		return nil
	}

	name, err := c.prompt(ctx, fmt.Sprintf("Enter output filename (press Enter for '%s'): ", c.defaults.Filename))
	if err != nil {
		return err
	}
	if name == "" {
		name = c.defaults.Filename
	}

	c.println("\nGenerating QR code...")
	c.dispatch(ctx, GenerateQR{Request: qrcode.EncodeRequest{
		Payload:    data,
		OutputPath: qrcode.NormalizeFilename(name),
		Level:      c.defaults.Level,
		ModuleSize: c.defaults.ModuleSize,
		Border:     c.defaults.Border,
	}})
	return nil
}

// handleGenerate reports failures to the operator and returns nil for
// them; the generator has already logged the cause.
func (c *Controller) handleGenerate(ctx context.Context, cmd GenerateQR) error {
	res, err := c.generator.Generate(ctx, cmd.Request)
	if err != nil {
		c.printf("\n Error generating QR code: %v\n", err)
		return nil
	}
	if res == nil {
		c.println("\n Error generating QR code: no result")
		return nil
	}

	c.println("\n QR code generated successfully!")
	c.printf("  File: %s\n", res.OutputPath)
	c.printf("  Version: %d\n", res.Version)
	c.printf("  Size: %dx%d modules\n", res.ModuleCount, res.ModuleCount)
	c.printf("  Error Correction: %s (%s)\n", res.Level, res.Level.Percent())

	if c.defaults.Preview {
		c.println("")
		if err := qrcode.Preview(c.out, cmd.Request.Payload, res.Level); err != nil {
			c.logger.WarnContext(ctx, "terminal preview failed", logger.Error(err))
		}
	}

	c.printf("\n SUCCESS! QR code saved to: %s\n", c.absPath(res.OutputPath))
	return nil
}

func (c *Controller) scanFlow(ctx context.Context) error {
	c.state = Scanning
	c.printBanner("QR CODE SCANNER")

	name, err := c.prompt(ctx, "\nEnter image filename to scan: ")
	if err != nil {
		return err
	}
	if name == "" {
		c.println(" Filename cannot be empty.")
		return nil
	}

	if err := qrscan.CheckFile(name); errors.Is(err, qrscan.ErrFileNotFound) {
		c.printf(" File not found: %s\n", name)
		c.printf("   Looking in: %s\n", c.workingDir())
		return nil
	}

	c.printf("\nScanning %s...\n", name)
	c.dispatch(ctx, ScanQR{Path: name})
	return nil
}

// handleScan reports every scan failure kind with its own message. Like
// handleGenerate it does not return them, so they are not logged twice.
func (c *Controller) handleScan(ctx context.Context, cmd ScanQR) error {
	records, err := c.scanner.Scan(ctx, cmd.Path)
	switch {
	case errors.Is(err, qrscan.ErrNoSymbolFound):
		c.println("\n No QR code found in the image")
		return nil
	case errors.Is(err, qrscan.ErrFileNotFound):
		c.printf("\n File not found: %s\n", cmd.Path)
		return nil
	case errors.Is(err, qrscan.ErrUnreadableFile):
		c.printf("\n Cannot read file: %s\n", cmd.Path)
		return nil
	case errors.Is(err, qrscan.ErrUnreadableImage):
		c.printf("\n Could not read image: %s\n", cmd.Path)
		return nil
	case err != nil:
		c.printf("\n Error scanning QR code: %v\n", err)
		return nil
	case len(records) == 0:
		c.println("\n No QR code found in the image")
		return nil
	}

	c.printScanResults(records)
	return nil
}

func (c *Controller) workingDir() string {
	wd, err := c.getwd()
	if err != nil {
		return "."
	}
	return wd
}

func (c *Controller) absPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.workingDir(), path)
}
