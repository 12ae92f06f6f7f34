// internals/features/epapers/editions/service/source.go
package service

import (
	"errors"
)

// Source is the tagged ingestion input: exactly one branch executes.
// When an upload carries both a PDF and images, the PDF wins and the
// images are ignored.
type Source interface {
	isSource()
}

// SourcePDF points at the stored upload; pages come from rendering it.
type SourcePDF struct {
	AbsPath string // on-disk location of the stored document
	WebPath string // stored in the edition row
}

func (SourcePDF) isSource() {}

// SourceImages is an ordered batch of raster uploads; order defines
// page numbering.
type SourceImages struct {
	Files []SourceImage
}

func (SourceImages) isSource() {}

// SourceImage is one raw upload, already read into memory.
type SourceImage struct {
	Filename string
	Data     []byte
}

var ErrNoSource = errors.New("a PDF or image files are required")

// ResolveSource picks the branch once, ahead of ingestion.
func ResolveSource(pdf *SourcePDF, images []SourceImage) (Source, error) {
	if pdf != nil {
		return *pdf, nil
	}
	if len(images) > 0 {
		return SourceImages{Files: images}, nil
	}
	return nil, ErrNoSource
}
