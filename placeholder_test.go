package landing

import (
	"bytes"
	"image/png"
	"testing"
)

func TestRenderPlaceholderProducesPNG(t *testing.T) {
	data, err := renderPlaceholder(600, 400, "The Plan")
	if err != nil {
		t.Fatalf("renderPlaceholder() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 600 || bounds.Dy() != 400 {
		t.Fatalf("bounds = %dx%d, want 600x400", bounds.Dx(), bounds.Dy())
	}
}

func TestPlaceholderSizePattern(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"600x400.png", true},
		{"1x1.png", true},
		{"600x400.jpg", false},
		{"600x400", false},
		{"x400.png", false},
		{"600x.png", false},
		{"-1x400.png", false},
	}
	for _, tt := range tests {
		if got := placeholderSizeRe.MatchString(tt.in); got != tt.ok {
			t.Fatalf("match(%q) = %v, want %v", tt.in, got, tt.ok)
		}
	}
}
