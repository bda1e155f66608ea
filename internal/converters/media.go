package converters

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	// Register decoders for the payload formats image operations accept.
	_ "image/gif"

	"github.com/chai2010/webp"
	"github.com/ledongthuc/pdf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	apperrors "github.com/yuggu7665-beep/converter-tools/internal/errors"
	"github.com/yuggu7665-beep/converter-tools/internal/validate"
)

const (
	// compressQualityStep/Floor bound the quality walk-down of ImageCompress.
	compressQualityStep  = 5
	compressQualityFloor = 20
)

type ImageToWebPResult struct {
	WebPImage          string `json:"webp_image"`
	OriginalSizeBytes  int    `json:"original_size_bytes"`
	ConvertedSizeBytes int    `json:"converted_size_bytes"`
}

// ImageToWebP re-encodes an image payload as WebP at the requested quality.
func ImageToWebP(_ context.Context, in *validate.Input) (any, error) {
	payload := in.Payload()
	quality := in.Int("quality")

	img, _, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("payload is not a supported image: %v", err))
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, apperrors.Internal("failed to encode WebP", err)
	}

	return ImageToWebPResult{
		WebPImage:          dataURI("image/webp", buf.Bytes()),
		OriginalSizeBytes:  len(payload),
		ConvertedSizeBytes: buf.Len(),
	}, nil
}

type ImageCompressResult struct {
	CompressedImage         string  `json:"compressed_image"`
	Format                  string  `json:"format"`
	OriginalSizeBytes       int     `json:"original_size_bytes"`
	CompressedSizeBytes     int     `json:"compressed_size_bytes"`
	CompressionRatioPercent float64 `json:"compression_ratio_percent"`
	FinalQuality            int     `json:"final_quality"`
}

// ImageCompress re-encodes an image towards a target size. Lossy formats
// walk the quality down in steps until the target is met or the quality
// floor is reached; PNG and GIF are re-encoded once at best compression.
func ImageCompress(_ context.Context, in *validate.Input) (any, error) {
	payload := in.Payload()
	maxSizeKB := in.Int("max_size_kb")
	quality := in.Int("quality")

	img, format, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("payload is not a supported image: %v", err))
	}

	var compressed []byte
	finalQuality := quality

	switch format {
	case "png", "gif":
		var buf bytes.Buffer
		encoder := png.Encoder{CompressionLevel: png.BestCompression}
		if err := encoder.Encode(&buf, img); err != nil {
			return nil, apperrors.Internal("failed to encode PNG", err)
		}
		compressed = buf.Bytes()
		format = "png"
	default:
		targetBytes := maxSizeKB * 1024
		for {
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: finalQuality}); err != nil {
				return nil, apperrors.Internal("failed to encode JPEG", err)
			}
			compressed = buf.Bytes()
			if len(compressed) <= targetBytes || finalQuality <= compressQualityFloor {
				break
			}
			finalQuality -= compressQualityStep
		}
		format = "jpeg"
	}

	ratio := (1 - float64(len(compressed))/float64(len(payload))) * 100

	return ImageCompressResult{
		CompressedImage:         dataURI("image/"+format, compressed),
		Format:                  format,
		OriginalSizeBytes:       len(payload),
		CompressedSizeBytes:     len(compressed),
		CompressionRatioPercent: round2(ratio),
		FinalQuality:            finalQuality,
	}, nil
}

type PDFToTextResult struct {
	TotalPages     int    `json:"total_pages"`
	Text           string `json:"text"`
	CharacterCount int    `json:"character_count"`
	WordCount      int    `json:"word_count"`
}

// PDFToText extracts the plain text of a PDF payload.
func PDFToText(_ context.Context, in *validate.Input) (result any, err error) {
	payload := in.Payload()

	// The PDF parser panics on some malformed inputs; keep that inside the
	// converter so callers see an unsupported-format failure, not a crash.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = apperrors.UnsupportedFormat(fmt.Sprintf("malformed PDF: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil, apperrors.UnsupportedFormat(fmt.Sprintf("payload is not a valid PDF: %v", err))
	}

	totalPages := reader.NumPage()
	var pages []string
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}

	fullText := strings.Join(pages, "\n\n")

	return PDFToTextResult{
		TotalPages:     totalPages,
		Text:           fullText,
		CharacterCount: len(fullText),
		WordCount:      len(strings.Fields(fullText)),
	}, nil
}
