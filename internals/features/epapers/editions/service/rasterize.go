// internals/features/epapers/editions/service/rasterize.go
package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	_ "image/jpeg"
	_ "image/png"

	_ "github.com/chai2010/webp"

	"github.com/disintegration/imaging"
	pdfmodel "github.com/unidoc/unipdf/v3/model"
	pdfrender "github.com/unidoc/unipdf/v3/render"
)

const (
	// Render PDFs at 2.0× of the native page resolution before resizing.
	pdfRenderScale = 2.0

	pageMaxWidth  = 1200
	pageMaxHeight = 1600
	jpegQuality   = 90

	thumbWidth  = 400
	thumbHeight = 533
)

// decodeImage decodes jpeg/png/webp bytes (decoders registered above).
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// flattenOnWhite drops any transparency onto a white background,
// normalizing into sRGB-backed NRGBA.
func flattenOnWhite(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// fitPage resizes to fit within 1200×1600 preserving aspect ratio.
// PDF-derived pages are always scaled to the box, including upward;
// raw-image uploads are never enlarged past their original size.
func fitPage(img image.Image, allowEnlarge bool) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}

	scaleW := float64(pageMaxWidth) / float64(w)
	scaleH := float64(pageMaxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	if scale >= 1 {
		if !allowEnlarge {
			return img
		}
		newW := int(float64(w)*scale + 0.5)
		newH := int(float64(h)*scale + 0.5)
		return imaging.Resize(img, newW, newH, imaging.Lanczos)
	}
	return imaging.Fit(img, pageMaxWidth, pageMaxHeight, imaging.Lanczos)
}

// makeThumbnail cover-crops to exactly 400×533.
func makeThumbnail(img image.Image) image.Image {
	return imaging.Fill(img, thumbWidth, thumbHeight, imaging.Center, imaging.Lanczos)
}

// saveJPEG encodes to disk at quality 90 (format from the .jpg extension).
func saveJPEG(img image.Image, absPath string) error {
	return imaging.Save(img, absPath, imaging.JPEGQuality(jpegQuality))
}

func loadImageFile(absPath string) (image.Image, error) {
	return imaging.Open(absPath)
}

// renderWidth converts a media-box width in points into the render
// target width at pdfRenderScale. The device width is set from this
// per page; no page inherits a neighbor's dimensions.
func renderWidth(ptWidth float64) int {
	return int(ptWidth * pdfRenderScale)
}

// renderPDFPages rasterizes every page of a PDF at pdfRenderScale of
// its native width. Any failure aborts — a PDF has no partial-success
// path.
func renderPDFPages(absPath string) ([]image.Image, error) {
	reader, f, err := pdfmodel.NewPdfReaderFromFile(absPath, nil)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, fmt.Errorf("read pdf page count: %w", err)
	}

	device := pdfrender.NewImageDevice()
	pages := make([]image.Image, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("read pdf page %d: %w", i, err)
		}

		mbox, err := page.GetMediaBox()
		if err != nil {
			return nil, fmt.Errorf("read pdf page %d media box: %w", i, err)
		}
		device.OutputWidth = renderWidth(mbox.Urx - mbox.Llx)

		img, err := device.Render(page)
		if err != nil {
			return nil, fmt.Errorf("render pdf page %d: %w", i, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
