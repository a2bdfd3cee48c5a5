// Command reui-atlas lays out text with the glyph atlas and writes the
// atlas texture as a PNG. It prints the line breaks and the size of the
// mesh built around the text block.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/lain-dono/reui"
	"github.com/lain-dono/reui/stash"
	"github.com/lain-dono/reui/tess"
)

const sampleText = "The quick brown fox jumps over the lazy dog.\n" +
	"Pack my box with five dozen liquor jugs. 日本語の文章も一文字ずつ折り返されます。"

func main() {
	var (
		fontPath  = flag.String("font", "", "TrueType font file (default: Go Regular)")
		text      = flag.String("text", sampleText, "text to lay out")
		size      = flag.Float64("size", 24, "font size in pixels")
		blur      = flag.Float64("blur", 0, "glyph blur radius")
		rowWidth  = flag.Float64("width", 320, "line break width in pixels")
		atlasSize = flag.Int("atlas", 128, "initial atlas size")
		maxAtlas  = flag.Int("max-atlas", 4096, "maximum atlas size")
		output    = flag.String("output", "atlas.png", "output file")
		zoom      = flag.Int("zoom", 1, "integer zoom of the written atlas")
		verbose   = flag.Bool("v", false, "log atlas activity")
	)
	flag.Parse()

	if *verbose {
		reui.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	data := goregular.TTF
	if *fontPath != "" {
		b, err := os.ReadFile(*fontPath)
		if err != nil {
			log.Fatalf("Failed to read font: %v", err)
		}
		data = b
	}

	cfg := stash.DefaultConfig()
	cfg.Width, cfg.Height = *atlasSize, *atlasSize
	s, err := stash.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create stash: %v", err)
	}
	fnt, err := s.AddFont("main", data)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	s.SetFont(fnt)
	s.SetSize(float32(*size))
	s.SetBlur(float32(*blur))
	s.SetAlign(stash.AlignLeft | stash.AlignTop)

	rows, err := s.BreakLines(*text, float32(*rowWidth))
	if err != nil {
		log.Fatalf("Failed to break lines: %v", err)
	}
	_, _, lineh := s.VertMetrics()

	l := layout{stash: s, maxAtlas: *maxAtlas}
	if err := l.run(*text, rows, lineh); err != nil {
		log.Fatalf("Failed to draw text: %v", err)
	}
	for i, row := range rows {
		line := (*text)[row.Start:row.End]
		fmt.Printf("row %d: %q width=%.1f x=[%.1f, %.1f]\n", i, line, row.Width, row.MinX, row.MaxX)
	}

	m, err := buildMesh(rows, lineh, float32(*rowWidth))
	if err != nil {
		log.Fatalf("Failed to build mesh: %v", err)
	}
	fmt.Printf("mesh: %d vertices (%d bytes), %d indices, %d calls\n",
		len(m.Vertices), len(m.VertexBytes(nil)), len(m.Indices), len(m.Calls))
	for _, c := range m.Calls {
		fmt.Printf("  %v: fill=%d fringe=%d cover=%d\n", c.Kind, c.Fill.Count, c.Fringe.Count, c.Cover.Count)
	}

	w, h := s.AtlasSize()
	tex := &grayTexture{img: image.NewGray(image.Rect(0, 0, w, h))}
	if err := s.Upload(tex); err != nil {
		log.Fatalf("Failed to upload atlas: %v", err)
	}

	var img image.Image = tex.img
	if z := *zoom; z > 1 {
		dst := image.NewGray(image.Rect(0, 0, w*z, h*z))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), tex.img, tex.img.Bounds(), draw.Src, nil)
		img = dst
	}
	if err := writePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Atlas saved to %s (%dx%d, %d quads)\n", *output, w, h, len(l.quads))
}

// layout draws lines into the atlas, growing it whenever it fills up.
type layout struct {
	stash    *stash.Stash
	maxAtlas int
	quads    []stash.Quad
}

// errRelayout reports that the atlas grew mid-layout. Texture coordinates
// of quads emitted before the growth are normalized to the old size.
var errRelayout = errors.New("atlas grew")

// run lays out every row, starting over after each atlas growth so that
// all quads share the final texture size. Cached glyphs survive growth,
// so later passes only rasterize what did not fit before.
func (l *layout) run(text string, rows []stash.TextRow, lineh float32) error {
	for {
		l.quads = l.quads[:0]
		err := l.drawRows(text, rows, lineh)
		if !errors.Is(err, errRelayout) {
			return err
		}
	}
}

func (l *layout) drawRows(text string, rows []stash.TextRow, lineh float32) error {
	for i, row := range rows {
		if err := l.draw(0, float32(i)*lineh, text[row.Start:row.End]); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

func (l *layout) draw(x, y float32, text string) error {
	it, err := l.stash.TextIterInit(x, y, text, stash.BitmapRequired)
	if err != nil {
		return err
	}
	var q stash.Quad
	for it.Next(&q) {
		if errors.Is(it.Err(), stash.ErrAtlasFull) {
			if err := l.grow(); err != nil {
				return err
			}
			return errRelayout
		}
		if err := it.Err(); err != nil {
			return err
		}
		l.quads = append(l.quads, q)
	}
	return nil
}

func (l *layout) grow() error {
	w, h := l.stash.AtlasSize()
	if w >= l.maxAtlas && h >= l.maxAtlas {
		return fmt.Errorf("atlas reached %dx%d: %w", w, h, stash.ErrAtlasFull)
	}
	return l.stash.ExpandAtlas(min(w*2, l.maxAtlas), min(h*2, l.maxAtlas))
}

// buildMesh tessellates a panel behind the text and an underline per row.
func buildMesh(rows []stash.TextRow, lineh, width float32) (*tess.Mesh, error) {
	t, err := tess.New(tess.DefaultOptions())
	if err != nil {
		return nil, err
	}
	var m tess.Mesh

	height := lineh * float32(len(rows))
	panel := reui.NewPath().RoundRect(reui.RectLTWH(-8, -8, width+16, height+16), 6)
	m.Fill(t, panel, reui.Identity(), reui.SolidPaint(reui.RGBA(1, 1, 1, 0.9)), 1)
	m.Stroke(t, panel, reui.Identity(), reui.SolidPaint(reui.RGB(0.2, 0.2, 0.2)), 1, tess.DefaultStrokeStyle())

	underline := reui.NewPath()
	for i, r := range rows {
		y := lineh*float32(i+1) - 2
		underline.MoveTo(reui.Pt(r.MinX, y)).LineTo(reui.Pt(r.MaxX, y))
	}
	style := tess.DefaultStrokeStyle()
	style.Cap = reui.LineCapRound
	m.Stroke(t, underline, reui.Identity(), reui.SolidPaint(reui.RGB(0, 0.4, 0.8)), 1, style)

	return &m, nil
}

// grayTexture stands in for a GPU texture and receives partial atlas
// uploads.
type grayTexture struct {
	img *image.Gray
}

func (g *grayTexture) UpdateRegion(origin gputypes.Origin3D, size gputypes.Extent3D, data []byte, bytesPerRow uint32) error {
	r := image.Rect(int(origin.X), int(origin.Y), int(origin.X+size.Width), int(origin.Y+size.Height))
	if !r.In(g.img.Rect) {
		return fmt.Errorf("region %v outside texture %v", r, g.img.Rect)
	}
	stride := int(bytesPerRow)
	for y := range r.Dy() {
		copy(g.img.Pix[g.img.PixOffset(r.Min.X, r.Min.Y+y):], data[y*stride:y*stride+r.Dx()])
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
