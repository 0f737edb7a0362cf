package assets

import (
	"image"
	"image/color"
	"image/draw"
)

// Cells of the generated tileset, left to right. A tile's GID is its cell
// plus the tileset's first GID.
const (
	TileFloor = iota
	TileWall
	TileBox
	TileGoal
	TilePlayer

	TilesetColumns
)

var (
	floorBase   = color.RGBA{0x3b, 0x44, 0x4b, 0xff}
	floorEdge   = color.RGBA{0x33, 0x3a, 0x40, 0xff}
	brick       = color.RGBA{0x8a, 0x4b, 0x38, 0xff}
	mortar      = color.RGBA{0x5a, 0x2f, 0x24, 0xff}
	wood        = color.RGBA{0xc2, 0x8a, 0x4a, 0xff}
	woodDark    = color.RGBA{0x7a, 0x52, 0x2a, 0xff}
	goalColor   = color.RGBA{0xf4, 0xd0, 0x3f, 0xff}
	playerColor = color.RGBA{0x4f, 0xa8, 0xe0, 0xff}
)

// GenerateTileset paints a one-row atlas of square tiles of size ts.
func GenerateTileset(ts int) *image.RGBA {
	if ts < 4 {
		ts = 4
	}
	img := image.NewRGBA(image.Rect(0, 0, ts*TilesetColumns, ts))
	cell := func(i int) image.Rectangle { return image.Rect(i*ts, 0, (i+1)*ts, ts) }

	// floor: flat with a one pixel seam on the top and left
	r := cell(TileFloor)
	fill(img, r, floorBase)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), floorEdge)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), floorEdge)

	// wall: four staggered brick courses
	r = cell(TileWall)
	fill(img, r, brick)
	course := ts / 4
	for row := 0; row < 4; row++ {
		y := r.Min.Y + row*course
		fill(img, image.Rect(r.Min.X, y, r.Max.X, y+1), mortar)
		x := r.Min.X + (row%2)*ts/2
		fill(img, image.Rect(x, y, x+1, y+course), mortar)
	}

	// box: planks with a frame and a cross brace
	r = cell(TileBox)
	fill(img, r, wood)
	outline(img, r, max(ts/8, 1), woodDark)
	for i := 0; i < ts; i++ {
		img.SetRGBA(r.Min.X+i, r.Min.Y+i, woodDark)
		img.SetRGBA(r.Max.X-1-i, r.Min.Y+i, woodDark)
	}

	// goal: hollow square on a transparent cell
	r = cell(TileGoal)
	outline(img, r.Inset(ts/4), max(ts/16, 1), goalColor)

	// player: filled disc
	r = cell(TilePlayer)
	c := float64(ts-1) * 0.5
	rad := float64(ts) * 0.4
	for y := 0; y < ts; y++ {
		for x := 0; x < ts; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			if dx*dx+dy*dy <= rad*rad {
				img.SetRGBA(r.Min.X+x, r.Min.Y+y, playerColor)
			}
		}
	}
	return img
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func outline(img *image.RGBA, r image.Rectangle, w int, c color.RGBA) {
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y), c)
}
