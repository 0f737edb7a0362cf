package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
)

// LoadPNG returns width, height, and tightly packed RGBA8 pixels (row-major,
// top-left origin, matching the UV convention of renderer2d).
func LoadPNG(path string) (w, h int, rgba []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	w, h, rgba, err = DecodePNG(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode png %q: %w", path, err)
	}
	return w, h, rgba, nil
}

func DecodePNG(r io.Reader) (w, h int, rgba []byte, err error) {
	img, err := png.Decode(r)
	if err != nil {
		return 0, 0, nil, err
	}
	w, h, rgba = Pixels(img)
	return w, h, rgba, nil
}

// Pixels repacks img as tight RGBA8 rows (stride == 4*w).
func Pixels(img image.Image) (w, h int, rgba []byte) {
	m := imageToRGBA(img)
	w, h = m.Bounds().Dx(), m.Bounds().Dy()
	if m.Stride == w*4 && len(m.Pix) == w*h*4 {
		return w, h, m.Pix
	}

	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], m.Pix[y*m.Stride:y*m.Stride+w*4])
	}
	return w, h, out
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
