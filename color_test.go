package reui

import "testing"

func TestColorPremultiplied(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want [4]uint8
	}{
		{"opaque white", White, [4]uint8{255, 255, 255, 255}},
		{"transparent", Transparent, [4]uint8{0, 0, 0, 0}},
		{"half red", RGBA(1, 0, 0, 0.5), [4]uint8{128, 0, 0, 128}},
		{"clamped", RGBA(2, -1, 0.5, 1), [4]uint8{255, 0, 128, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Premultiplied(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHSLA(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float32
		want    Color
	}{
		{"red", 0, 1, 0.5, RGB(1, 0, 0)},
		{"green", 1.0 / 3, 1, 0.5, RGB(0, 1, 0)},
		{"blue", 2.0 / 3, 1, 0.5, RGB(0, 0, 1)},
		{"gray", 0.4, 0, 0.5, RGB(0.5, 0.5, 0.5)},
		{"wrapped hue", 1, 1, 0.5, RGB(1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HSLA(tt.h, tt.s, tt.l, 1)
			if !approx(got.R, tt.want.R) || !approx(got.G, tt.want.G) || !approx(got.B, tt.want.B) {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestColorRGBA8(t *testing.T) {
	c := RGBA8(255, 0, 51, 255)
	if !approx(c.R, 1) || c.G != 0 || !approx(c.B, 0.2) || !approx(c.A, 1) {
		t.Errorf("unexpected color %+v", c)
	}
}
