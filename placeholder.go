package landing

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"regexp"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const maxPlaceholderDim = 2000

var placeholderSizeRe = regexp.MustCompile(`^(\d{1,4})x(\d{1,4})\.png$`)

// handlePlaceholder generates teaser card images locally instead of leaning
// on an external placeholder service. URL shape: /placeholder/600x400.png?text=...
func (a *App) handlePlaceholder(c echo.Context) error {
	m := placeholderSizeRe.FindStringSubmatch(c.Param("size"))
	if m == nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	if w == 0 || h == 0 || w > maxPlaceholderDim || h > maxPlaceholderDim {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	text := c.QueryParam("text")
	if text == "" {
		text = a.Config.FallbackCardText
	}
	data, err := renderPlaceholder(w, h, text)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

// renderPlaceholder draws the label centered on a flat background and
// encodes it as PNG.
func renderPlaceholder(w, h int, text string) ([]byte, error) {
	bg := color.RGBA{0xe2, 0xe8, 0xf0, 0xff}
	fg := color.RGBA{0x0f, 0x17, 0x2a, 0xff}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
	}
	width := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: (fixed.I(w) - width) / 2,
		Y: fixed.I(h/2 + face.Height/2),
	}
	d.DrawString(text)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
