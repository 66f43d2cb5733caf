package console_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/core/logger"
	"github.com/dmitrymomot/qrkit/pkg/console"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrscan"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, req qrcode.EncodeRequest) (*qrcode.EncodeResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*qrcode.EncodeResult)
	return res, args.Error(1)
}

type mockScanner struct {
	mock.Mock
}

func (m *mockScanner) Scan(ctx context.Context, path string) ([]qrscan.ScanRecord, error) {
	args := m.Called(ctx, path)
	records, _ := args.Get(0).([]qrscan.ScanRecord)
	return records, args.Error(1)
}

const fakeWD = "/work/qr"

type harness struct {
	ctrl *console.Controller
	out  *bytes.Buffer
	gen  *mockGenerator
	scan *mockScanner
}

func newHarness(t *testing.T, input string, opts ...console.Option) *harness {
	t.Helper()
	h := &harness{out: &bytes.Buffer{}, gen: &mockGenerator{}, scan: &mockScanner{}}

	opts = append([]console.Option{
		console.WithLogger(logger.Discard()),
		console.WithWorkingDir(func() (string, error) { return fakeWD, nil }),
	}, opts...)

	ctrl, err := console.New(strings.NewReader(input), h.out, h.gen, h.scan, opts...)
	require.NoError(t, err)
	h.ctrl = ctrl
	return h
}

func (h *harness) run(t *testing.T) string {
	t.Helper()
	require.NoError(t, h.ctrl.Run(context.Background()))
	assert.Equal(t, console.Exited, h.ctrl.State())
	h.gen.AssertExpectations(t)
	h.scan.AssertExpectations(t)
	return h.out.String()
}

func TestNew(t *testing.T) {
	_, err := console.New(nil, &bytes.Buffer{}, &mockGenerator{}, &mockScanner{})
	assert.Error(t, err)

	_, err = console.New(strings.NewReader(""), &bytes.Buffer{}, nil, &mockScanner{})
	assert.Error(t, err)
}

func TestMenu(t *testing.T) {
	t.Run("exit prints closing banner", func(t *testing.T) {
		out := newHarness(t, "3\n").run(t)

		assert.Contains(t, out, "QR CODE GENERATOR & SCANNER")
		assert.Contains(t, out, "1. Generate QR Code")
		assert.Contains(t, out, "2. Scan QR Code from Image")
		assert.Contains(t, out, "3. Exit")
		assert.Contains(t, out, "Thank you for using QR Code Tool!")
	})

	t.Run("invalid choice redisplays menu", func(t *testing.T) {
		out := newHarness(t, "9\nhello\n3\n").run(t)

		assert.Equal(t, 2, strings.Count(out, "Invalid choice! Please enter 1, 2, or 3."))
		assert.Equal(t, 3, strings.Count(out, "MAIN MENU"))
	})

	t.Run("end of input exits", func(t *testing.T) {
		out := newHarness(t, "").run(t)
		assert.Contains(t, out, "Thank you for using QR Code Tool!")
	})

	t.Run("end of input inside a flow exits", func(t *testing.T) {
		out := newHarness(t, "1\n").run(t)
		assert.Contains(t, out, "Enter data to encode: ")
		assert.Contains(t, out, "Thank you for using QR Code Tool!")
	})

	t.Run("cancelled context exits", func(t *testing.T) {
		h := newHarness(t, "1\nhello\n\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, h.ctrl.Run(ctx))
		assert.Equal(t, console.Exited, h.ctrl.State())
		h.gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})
}

// watchedWriter records output and closes seen once it contains match.
type watchedWriter struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	match string
	seen  chan struct{}
	once  sync.Once
}

func (w *watchedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, err := w.buf.Write(p)
	if strings.Contains(w.buf.String(), w.match) {
		w.once.Do(func() { close(w.seen) })
	}
	return n, err
}

func (w *watchedWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestRunCancelledAtPrompt(t *testing.T) {
	tests := []struct {
		name   string
		typed  string
		prompt string
	}{
		{name: "menu choice", typed: "", prompt: "Enter your choice: "},
		{name: "generate payload", typed: "1\n", prompt: "Enter data to encode: "},
		{name: "scan filename", typed: "2\n", prompt: "Enter image filename to scan: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr, pw := io.Pipe()
			t.Cleanup(func() { _ = pw.Close() })

			out := &watchedWriter{match: tt.prompt, seen: make(chan struct{})}
			gen, scan := &mockGenerator{}, &mockScanner{}
			ctrl, err := console.New(pr, out, gen, scan, console.WithLogger(logger.Discard()))
			require.NoError(t, err)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			done := make(chan error, 1)
			go func() { done <- ctrl.Run(ctx) }()

			if tt.typed != "" {
				_, err := io.WriteString(pw, tt.typed)
				require.NoError(t, err)
			}

			select {
			case <-out.seen:
			case <-time.After(5 * time.Second):
				t.Fatalf("prompt %q never shown", tt.prompt)
			}
			cancel()

			select {
			case err := <-done:
				require.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("Run kept waiting for input after cancellation")
			}

			assert.Equal(t, console.Exited, ctrl.State())
			assert.Contains(t, out.String(), "Thank you for using QR Code Tool!")
			gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
			scan.AssertNotCalled(t, "Scan", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateFlow(t *testing.T) {
	t.Run("empty payload is rejected before the generator", func(t *testing.T) {
		h := newHarness(t, "1\n   \n3\n")
		out := h.run(t)

		assert.Contains(t, out, "Data cannot be empty.")
		h.gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("applies defaults", func(t *testing.T) {
		h := newHarness(t, "1\n  hello world  \n\n3\n")
		want := qrcode.EncodeRequest{
			Payload:    "hello world",
			OutputPath: "qr_code.png",
			Level:      qrcode.LevelM,
			ModuleSize: 10,
			Border:     4,
		}
		h.gen.On("Generate", mock.Anything, want).Return(&qrcode.EncodeResult{
			OutputPath:  "qr_code.png",
			Version:     1,
			ModuleCount: 21,
			Level:       qrcode.LevelM,
		}, nil).Once()

		out := h.run(t)

		assert.Contains(t, out, "Generating QR code...")
		assert.Contains(t, out, "QR code generated successfully!")
		assert.Contains(t, out, "File: qr_code.png")
		assert.Contains(t, out, "Version: 1")
		assert.Contains(t, out, "Size: 21x21 modules")
		assert.Contains(t, out, "Error Correction: M (15%)")
		assert.Contains(t, out, "SUCCESS! QR code saved to: "+filepath.Join(fakeWD, "qr_code.png"))
	})

	t.Run("normalizes filename", func(t *testing.T) {
		tests := map[string]string{
			"out":      "out.png",
			"out.PNG":  "out.PNG",
			"logo.jpg": "logo.jpg.png",
		}
		for input, want := range tests {
			t.Run(input, func(t *testing.T) {
				h := newHarness(t, "1\ndata\n"+input+"\n3\n")
				h.gen.On("Generate", mock.Anything, mock.MatchedBy(func(req qrcode.EncodeRequest) bool {
					return req.OutputPath == want
				})).Return(&qrcode.EncodeResult{OutputPath: want, Version: 1, ModuleCount: 21}, nil).Once()

				h.run(t)
			})
		}
	})

	t.Run("uses configured defaults", func(t *testing.T) {
		h := newHarness(t, "1\ndata\n\n3\n", console.WithDefaults(console.Defaults{
			Filename:   "custom",
			Level:      qrcode.LevelH,
			ModuleSize: 3,
			Border:     0,
		}))
		h.gen.On("Generate", mock.Anything, qrcode.EncodeRequest{
			Payload:    "data",
			OutputPath: "custom.png",
			Level:      qrcode.LevelH,
			ModuleSize: 3,
			Border:     0,
		}).Return(&qrcode.EncodeResult{OutputPath: "custom.png", Version: 1, ModuleCount: 21, Level: qrcode.LevelH}, nil).Once()

		out := h.run(t)
		assert.Contains(t, out, "press Enter for 'custom.png'")
		assert.Contains(t, out, "Error Correction: H (30%)")
	})

	t.Run("reports generator failure and keeps looping", func(t *testing.T) {
		h := newHarness(t, "1\ndata\n/missing/dir/x\n3\n")
		h.gen.On("Generate", mock.Anything, mock.Anything).
			Return(nil, errors.Join(qrcode.ErrEncodeFailed, os.ErrNotExist)).Once()

		out := h.run(t)
		assert.Contains(t, out, "Error generating QR code:")
		assert.NotContains(t, out, "SUCCESS!")
		assert.Contains(t, out, "Thank you for using QR Code Tool!")
	})

	t.Run("reported failure is not logged again as a command failure", func(t *testing.T) {
		var logs bytes.Buffer
		log := logger.New(logger.WithOutput(&logs), logger.WithLevel(slog.LevelWarn))

		h := newHarness(t, "1\ndata\n/missing/dir/x\n3\n", console.WithLogger(log))
		h.gen.On("Generate", mock.Anything, mock.Anything).
			Return(nil, errors.Join(qrcode.ErrEncodeFailed, os.ErrNotExist)).Once()

		out := h.run(t)
		assert.Contains(t, out, "Error generating QR code:")
		assert.NotContains(t, logs.String(), "command failed")
	})

	t.Run("recovers from generator panic", func(t *testing.T) {
		h := newHarness(t, "1\ndata\n\n3\n")
		h.gen.On("Generate", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
			panic("encoder exploded")
		}).Once()

		out := h.run(t)
		assert.Contains(t, out, "Unexpected error:")
		assert.Contains(t, out, "encoder exploded")
		assert.Contains(t, out, "Thank you for using QR Code Tool!")
	})

	t.Run("state is generating during the call", func(t *testing.T) {
		h := newHarness(t, "1\ndata\n\n3\n")
		var during console.State
		h.gen.On("Generate", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
			during = h.ctrl.State()
		}).Return(&qrcode.EncodeResult{OutputPath: "qr_code.png", Version: 1, ModuleCount: 21}, nil).Once()

		h.run(t)
		assert.Equal(t, console.Generating, during)
	})
}

func TestScanFlow(t *testing.T) {
	t.Run("empty filename is rejected", func(t *testing.T) {
		h := newHarness(t, "2\n\n3\n")
		out := h.run(t)

		assert.Contains(t, out, "Filename cannot be empty.")
		h.scan.AssertNotCalled(t, "Scan", mock.Anything, mock.Anything)
	})

	t.Run("missing file is reported with working directory", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope.png")
		h := newHarness(t, "2\n"+missing+"\n3\n")
		out := h.run(t)

		assert.Contains(t, out, "File not found: "+missing)
		assert.Contains(t, out, "Looking in: "+fakeWD)
		h.scan.AssertNotCalled(t, "Scan", mock.Anything, mock.Anything)
	})

	existing := func(t *testing.T) string {
		path := filepath.Join(t.TempDir(), "codes.png")
		require.NoError(t, os.WriteFile(path, []byte("stub"), 0o644))
		return path
	}

	t.Run("prints numbered results", func(t *testing.T) {
		path := existing(t)
		h := newHarness(t, "2\n"+path+"\n3\n")
		h.scan.On("Scan", mock.Anything, path).Return([]qrscan.ScanRecord{
			{Text: "https://example.com", SymbolType: "QRCODE", Bounds: qrscan.Rect{X: 40, Y: 40, Width: 250, Height: 250}},
			{Text: "second", SymbolType: "QRCODE", Bounds: qrscan.Rect{X: 400, Y: 40, Width: 210, Height: 210}},
		}, nil).Once()

		out := h.run(t)

		assert.Contains(t, out, "Scanning "+path+"...")
		assert.Contains(t, out, "SCAN RESULTS")
		assert.Contains(t, out, "QR Code #1:\n  Decoded Data: https://example.com\n  Type: QRCODE")
		assert.Contains(t, out, "Position: x=40, y=40")
		assert.Contains(t, out, "Size: 250x250 pixels")
		assert.Contains(t, out, "QR Code #2:\n  Decoded Data: second")
		assert.Contains(t, out, "Successfully decoded 2 QR code(s)!")
	})

	failures := []struct {
		name string
		err  error
		want string
	}{
		{"no symbol", qrscan.ErrNoSymbolFound, "No QR code found in the image"},
		{"unreadable image", qrscan.ErrUnreadableImage, "Could not read image: "},
		{"unreadable file", qrscan.ErrUnreadableFile, "Cannot read file: "},
		{"decode failure", qrscan.ErrDecodeFailed, "Error scanning QR code: "},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			path := existing(t)
			h := newHarness(t, "2\n"+path+"\n3\n")
			h.scan.On("Scan", mock.Anything, path).Return(nil, tt.err).Once()

			out := h.run(t)
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "SCAN RESULTS")
		})
	}

	t.Run("state is scanning during the call", func(t *testing.T) {
		path := existing(t)
		h := newHarness(t, "2\n"+path+"\n3\n")
		var during console.State
		h.scan.On("Scan", mock.Anything, path).Run(func(mock.Arguments) {
			during = h.ctrl.State()
		}).Return([]qrscan.ScanRecord{}, nil).Once()

		out := h.run(t)
		assert.Equal(t, console.Scanning, during)
		assert.Contains(t, out, "No QR code found in the image")
	})
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "site")
	input := strings.Join([]string{
		"1", "https://example.com", target,
		"2", target + ".png",
		"3",
	}, "\n") + "\n"

	var out bytes.Buffer
	log := logger.Discard()
	ctrl, err := console.New(
		strings.NewReader(input),
		&out,
		qrcode.NewGenerator(qrcode.WithLogger(log)),
		qrscan.NewScanner(qrscan.WithLogger(log)),
		console.WithLogger(log),
		console.WithDefaults(console.Defaults{Level: qrcode.LevelQ, ModuleSize: 10, Border: 4, Preview: true}),
	)
	require.NoError(t, err)
	require.NoError(t, ctrl.Run(context.Background()))

	text := out.String()
	assert.FileExists(t, target+".png")
	assert.Contains(t, text, "SUCCESS! QR code saved to: "+target+".png")
	assert.Contains(t, text, "Error Correction: Q (25%)")
	assert.Contains(t, text, "Decoded Data: https://example.com")
	assert.Contains(t, text, "Type: QRCODE")
	assert.Contains(t, text, "Successfully decoded 1 QR code(s)!")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "menu_wait", console.MenuWait.String())
	assert.Equal(t, "generating", console.Generating.String())
	assert.Equal(t, "scanning", console.Scanning.String())
	assert.Equal(t, "exited", console.Exited.String())
	assert.Equal(t, "unknown", console.State(9).String())
}
