package covers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"github.com/bbrks/go-blurhash"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// maxDimension bounds the stored cover size. Provider covers arrive at
	// arbitrary resolutions; anything larger gets scaled down.
	maxDimension = 600

	// blurHashSize is the thumbnail size for BlurHash computation.
	// BlurHash doesn't need high resolution - a small thumbnail produces
	// nearly identical results at a fraction of the cost.
	blurHashSize = 64

	// jpegQuality for re-encoded covers.
	jpegQuality = 85
)

// Processed is the output of running a raw cover through the pipeline.
type Processed struct {
	Data     []byte // Scaled, JPEG-encoded cover
	BlurHash string
	Width    int
	Height   int
}

// Process decodes raw image data, scales it to fit maxDimension, re-encodes
// as JPEG, and computes a BlurHash placeholder.
func Process(data []byte) (*Processed, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	scaled := scaleToFit(img, maxDimension)
	bounds := scaled.Bounds()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	// 4 horizontal, 3 vertical components - sweet spot for book covers.
	hash, err := blurhash.Encode(4, 3, scaleToFit(scaled, blurHashSize))
	if err != nil {
		return nil, fmt.Errorf("encode blurhash: %w", err)
	}

	return &Processed{
		Data:     buf.Bytes(),
		BlurHash: hash,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}, nil
}

// scaleToFit returns img scaled so that its longer side is at most max,
// preserving aspect ratio. Images already within bounds are returned as-is.
func scaleToFit(img image.Image, max int) image.Image {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	if srcW <= max && srcH <= max {
		return img
	}

	var dstW, dstH int
	if srcW > srcH {
		dstW = max
		dstH = (srcH * max) / srcW
		if dstH < 1 {
			dstH = 1
		}
	} else {
		dstH = max
		dstW = (srcW * max) / srcH
		if dstW < 1 {
			dstW = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
