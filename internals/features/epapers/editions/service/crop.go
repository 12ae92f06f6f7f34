// internals/features/epapers/editions/service/crop.go
package service

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

var ErrCropOutOfBounds = errors.New("crop rectangle extends past the page image")

// CropPageImage cuts a rectangle out of a stored page image and writes
// it to the crops bucket under the share token's name. The rectangle is
// rejected outright when any part of it falls outside the page.
func CropPageImage(store *ArtifactStore, pageWebPath string, x, y, w, h int, token string) (string, error) {
	img, err := loadImageFile(store.AbsFromWebPath(pageWebPath))
	if err != nil {
		return "", fmt.Errorf("load page image: %w", err)
	}

	b := img.Bounds()
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > b.Dx() || y+h > b.Dy() {
		return "", ErrCropOutOfBounds
	}

	cropped := imaging.Crop(img, image.Rect(x, y, x+w, y+h))

	name := CropFilename(token)
	if err := saveJPEG(cropped, store.AbsPath(BucketCrops, name)); err != nil {
		return "", fmt.Errorf("save crop: %w", err)
	}
	return store.WebPath(BucketCrops, name), nil
}
