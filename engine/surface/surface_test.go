package surface

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestConfigureRejectsZeroSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{name: "zero width", width: 0, height: 600},
		{name: "zero height", width: 800, height: 0},
		{name: "both zero", width: 0, height: 0},
		{name: "negative width", width: -1, height: 600},
		{name: "negative height", width: 800, height: -300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A manager with no GPU handles: the zero-size check must reject
			// the request before any surface access happens, so this must not
			// dereference the nil surface.
			m := &manager{presentMode: wgpu.PresentModeFifo}

			err := m.Configure(tt.width, tt.height)
			if !errors.Is(err, ErrZeroSize) {
				t.Fatalf("Configure(%d, %d) error = %v, want ErrZeroSize", tt.width, tt.height, err)
			}
			if m.Configured() {
				t.Error("Configured() = true after rejected configure")
			}
		})
	}
}

func TestPreferredFormatTakesFirstReported(t *testing.T) {
	capabilities := wgpu.SurfaceCapabilities{
		Formats: []wgpu.TextureFormat{
			wgpu.TextureFormatBGRA8Unorm,
			wgpu.TextureFormatRGBA8Unorm,
			wgpu.TextureFormatRGBA16Float,
		},
	}

	format, ok := preferredFormat(capabilities)
	if !ok {
		t.Fatal("preferredFormat() reported no format")
	}
	if format != wgpu.TextureFormatBGRA8Unorm {
		t.Errorf("preferredFormat() = %v, want first reported format %v", format, wgpu.TextureFormatBGRA8Unorm)
	}
}

func TestPreferredFormatEmptyCapabilities(t *testing.T) {
	if _, ok := preferredFormat(wgpu.SurfaceCapabilities{}); ok {
		t.Error("preferredFormat() ok = true for empty capabilities")
	}
}

func TestPreferredAlphaMode(t *testing.T) {
	capabilities := wgpu.SurfaceCapabilities{
		AlphaModes: []wgpu.CompositeAlphaMode{
			wgpu.CompositeAlphaModeOpaque,
			wgpu.CompositeAlphaModeAuto,
		},
	}
	if got := preferredAlphaMode(capabilities); got != wgpu.CompositeAlphaModeOpaque {
		t.Errorf("preferredAlphaMode() = %v, want first reported mode", got)
	}

	// No reported modes falls back to automatic selection.
	if got := preferredAlphaMode(wgpu.SurfaceCapabilities{}); got != wgpu.CompositeAlphaModeAuto {
		t.Errorf("preferredAlphaMode(empty) = %v, want auto", got)
	}
}

func TestAcquireFrameBeforeConfigure(t *testing.T) {
	m := &manager{presentMode: wgpu.PresentModeFifo}

	if _, err := m.AcquireFrame(); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("AcquireFrame() error = %v, want ErrNotConfigured", err)
	}
}

func TestFrameSingleUse(t *testing.T) {
	presents := 0
	f := &surfaceFrame{present: func() { presents++ }}

	if err := f.Present(); err != nil {
		t.Fatalf("first Present() error = %v", err)
	}
	if presents != 1 {
		t.Fatalf("present calls = %d, want 1", presents)
	}

	if err := f.Present(); !errors.Is(err, ErrFrameConsumed) {
		t.Fatalf("second Present() error = %v, want ErrFrameConsumed", err)
	}
	if presents != 1 {
		t.Errorf("present calls after rejected reuse = %d, want 1", presents)
	}
}

func TestFrameDiscardDoesNotPresent(t *testing.T) {
	presents := 0
	f := &surfaceFrame{present: func() { presents++ }}

	f.Discard()
	if presents != 0 {
		t.Fatalf("Discard() presented the frame")
	}

	// A discarded frame can no longer be presented.
	if err := f.Present(); !errors.Is(err, ErrFrameConsumed) {
		t.Fatalf("Present() after Discard() error = %v, want ErrFrameConsumed", err)
	}

	// Discard is safe to repeat.
	f.Discard()
}
