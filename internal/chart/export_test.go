package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"StockBoard/internal/model"
)

func TestExportPNG(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	var buf bytes.Buffer
	if err := r.Export(&buf, "AAPL", model.Range1y, ImagePNG); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Errorf("expected PNG header, got % x", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestExportSVG(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	var buf bytes.Buffer
	if err := r.Export(&buf, "AAPL", model.Range1mo, ImageSVG); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Errorf("expected svg output, got %q", buf.String())
	}
}

func TestExportErrors(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	if err := r.Export(&bytes.Buffer{}, "MSFT", model.Range1mo, ImagePNG); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
	one := model.Series{TimeStamp: []int64{0}, Value: []float64{1}}
	if err := WriteImage(&bytes.Buffer{}, "X", one, nil, ImagePNG); err == nil {
		t.Error("expected error for single point")
	}
}

func TestParseImageFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ImageFormat
		wantErr bool
	}{
		{"png", ImagePNG, false},
		{"SVG", ImageSVG, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseImageFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseImageFormat(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseImageFormat(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
