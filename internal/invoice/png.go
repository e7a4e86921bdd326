package invoice

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	pngWidth   = 720
	pngMargin  = 32
	lineHeight = 20
)

// PNGRenderer rasterizes the invoice layout.
type PNGRenderer struct {
	// Scale multiplies the canvas size; 0 means 1.
	Scale int
}

func (PNGRenderer) Format() Format { return FormatPNG }

// Render draws the document. A panic inside the rasterizer is returned as an error.
func (r PNGRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return guardRender("rasterize", doc, func() ([]byte, error) {
		img := r.draw(doc)
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), nil
	})
}

type canvas struct {
	img  *image.RGBA
	face font.Face
	y    int
}

func (c *canvas) text(x int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(x, c.y),
	}
	d.DrawString(s)
}

func (c *canvas) textRight(right int, s string, col color.Color) {
	w := font.MeasureString(c.face, s).Ceil()
	c.text(right-w, s, col)
}

func (c *canvas) rule(col color.Color) {
	y := c.y - lineHeight/2
	draw.Draw(c.img, image.Rect(pngMargin, y, pngWidth-pngMargin, y+1), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) newline(n int) { c.y += n * lineHeight }

func (r PNGRenderer) draw(doc Document) image.Image {
	a := accentOf(doc.Settings.Theme)
	accent := color.RGBA{a.R, a.G, a.B, 0xff}
	ink := color.RGBA{0x1f, 0x29, 0x37, 0xff}
	muted := color.RGBA{0x6b, 0x72, 0x80, 0xff}
	grey := color.RGBA{0xe5, 0xe7, 0xeb, 0xff}

	notes := splitLines(doc.Settings.FooterNotes)
	address := splitLines(doc.Settings.CompanyAddress)
	rows := 10 + len(address) + len(doc.Order.Items) + len(doc.totalsLines()) + len(notes)
	height := pngMargin*2 + rows*lineHeight + 60

	img := image.NewRGBA(image.Rect(0, 0, pngWidth, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	// accent band
	draw.Draw(img, image.Rect(0, 0, pngWidth, 8), image.NewUniform(accent), image.Point{}, draw.Src)

	c := &canvas{img: img, face: basicfont.Face7x13, y: pngMargin + 20}
	right := pngWidth - pngMargin

	c.text(pngMargin, doc.Title(), accent)
	c.textRight(right, doc.Settings.InvoiceTitle+" #"+doc.Order.OrderNumber, accent)
	c.newline(1)
	for _, l := range address {
		c.text(pngMargin, l, muted)
		c.newline(1)
	}
	c.textRight(right, FormatDate(doc.Order.OrderDate), muted)
	c.newline(1)
	c.rule(grey)

	cust := doc.Order.Customer
	c.text(pngMargin, "BILL TO", ink)
	c.newline(1)
	c.text(pngMargin, cust.Name, ink)
	c.newline(1)
	phones := cust.Phone1
	if cust.Phone2 != "" {
		phones += " / " + cust.Phone2
	}
	c.text(pngMargin, phones, muted)
	c.newline(1)
	c.text(pngMargin, cust.Address+", "+cust.Governorate, muted)
	c.newline(2)

	qtyX, priceX := right-260, right-130
	c.text(pngMargin, "Item", ink)
	c.textRight(qtyX, "Qty", ink)
	c.textRight(priceX, "Price", ink)
	c.textRight(right, "Total", ink)
	c.newline(1)
	c.rule(grey)
	for _, it := range doc.Order.Items {
		col := color.Color(ink)
		if it.IsGift {
			col = accent
		}
		c.text(pngMargin, it.Name, col)
		c.textRight(qtyX, strconv.Itoa(it.Quantity), col)
		c.textRight(priceX, itemUnitPrice(it), col)
		c.textRight(right, itemAmount(it), col)
		c.newline(1)
	}
	c.rule(grey)
	c.newline(1)

	lines := doc.totalsLines()
	for i, l := range lines {
		col := color.Color(muted)
		if i == len(lines)-1 {
			col = accent
		}
		c.textRight(priceX, l[0], col)
		c.textRight(right, l[1], col)
		c.newline(1)
	}

	if len(notes) > 0 {
		c.newline(1)
		c.rule(grey)
		for _, l := range notes {
			c.text(pngMargin, l, muted)
			c.newline(1)
		}
	}

	if r.Scale > 1 {
		return scale(img, r.Scale)
	}
	return img
}

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// scale does nearest-neighbour upscaling by an integer factor.
func scale(src *image.RGBA, k int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*k, b.Dy()*k))
	for y := 0; y < dst.Bounds().Dy(); y++ {
		for x := 0; x < dst.Bounds().Dx(); x++ {
			dst.SetRGBA(x, y, src.RGBAAt(x/k, y/k))
		}
	}
	return dst
}
