package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/motionmatch/pkg/math"
)

// ScreenshotCapture writes top-down plots of recorded debug lines.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
	}
}

// Render rasterizes lines onto a size×size image viewed from above (X right,
// Y up), fitted to the lines' XY bounds.
func Render(lines []Line, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+3] = 255
	}
	if len(lines) == 0 || size < 2 {
		return img
	}

	minX, minY := lines[0].From.X, lines[0].From.Y
	maxX, maxY := minX, minY
	grow := func(x, y float32) {
		minX, maxX = minf(minX, x), maxf(maxX, x)
		minY, maxY = minf(minY, y), maxf(maxY, y)
	}
	for _, l := range lines {
		grow(l.From.X, l.From.Y)
		grow(l.To.X, l.To.Y)
	}
	extent := maxf(maxX-minX, maxY-minY)
	if extent == 0 {
		extent = 1
	}
	scale := float32(size-1) / extent

	// World XY to pixels: shift to the min corner, scale, flip Y.
	view := math.Transform{
		Translation: math.Vec3{X: -minX * scale, Y: float32(size-1) + minY*scale},
		Rotation:    math.QuatIdentity(),
		Scale:       math.Vec3{X: scale, Y: -scale, Z: 1},
	}.ToMat4()
	last := size - 1
	toPixel := func(x, y float32) (int, int) {
		p := view.TransformPoint(math.Vec3{X: x, Y: y})
		return clampInt(int(p.X+0.5), 0, last), clampInt(int(p.Y+0.5), 0, last)
	}
	for _, l := range lines {
		x0, y0 := toPixel(l.From.X, l.From.Y)
		x1, y1 := toPixel(l.To.X, l.To.Y)
		drawLine(img, x0, y0, x1, y1, color.RGBA{l.Color.R, l.Color.G, l.Color.B, 255})
	}
	return img
}

// drawLine plots a segment with Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.SetRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// CaptureLines renders lines and saves them as a timestamped PNG.
func (sc *ScreenshotCapture) CaptureLines(lines []Line, size int) (string, error) {
	return sc.CaptureFromImage(Render(lines, size))
}

// CaptureFromImage saves an image as a timestamped PNG.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", sc.prefix, timestamp)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
