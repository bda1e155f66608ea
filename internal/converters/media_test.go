package converters

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yuggu7665-beep/converter-tools/internal/errors"
)

func testImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 13), B: uint8((x + y) * 3), A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(width, height)))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, width, height, quality int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(width, height), &jpeg.Options{Quality: quality}))
	return buf.Bytes()
}

func TestImageToWebP(t *testing.T) {
	payload := pngBytes(t, 32, 32)
	in := inputWithPayload(t, map[string]any{"quality": 80}, payload)

	result, err := ImageToWebP(context.Background(), in)

	require.NoError(t, err)
	webp := result.(ImageToWebPResult)
	assert.True(t, strings.HasPrefix(webp.WebPImage, "data:image/webp;base64,"))
	assert.Equal(t, len(payload), webp.OriginalSizeBytes)
	assert.Positive(t, webp.ConvertedSizeBytes)
}

func TestImageToWebPRejectsNonImage(t *testing.T) {
	in := inputWithPayload(t, map[string]any{"quality": 80}, []byte("definitely not an image"))

	_, err := ImageToWebP(context.Background(), in)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnsupportedFormat, apperrors.AsStructuredError(err).Kind)
}

func TestImageCompressPNGStaysPNG(t *testing.T) {
	payload := pngBytes(t, 64, 64)
	in := inputWithPayload(t, map[string]any{"max_size_kb": 500, "quality": 85}, payload)

	result, err := ImageCompress(context.Background(), in)

	require.NoError(t, err)
	compressed := result.(ImageCompressResult)
	assert.Equal(t, "png", compressed.Format)
	assert.True(t, strings.HasPrefix(compressed.CompressedImage, "data:image/png;base64,"))
	assert.Equal(t, len(payload), compressed.OriginalSizeBytes)
}

func TestImageCompressJPEGMeetsTarget(t *testing.T) {
	payload := jpegBytes(t, 256, 256, 100)
	in := inputWithPayload(t, map[string]any{"max_size_kb": 8, "quality": 85}, payload)

	result, err := ImageCompress(context.Background(), in)

	require.NoError(t, err)
	compressed := result.(ImageCompressResult)
	assert.Equal(t, "jpeg", compressed.Format)
	assert.LessOrEqual(t, compressed.CompressedSizeBytes, 8*1024)
	assert.LessOrEqual(t, compressed.FinalQuality, 85)
	assert.GreaterOrEqual(t, compressed.FinalQuality, compressQualityFloor)
}

func TestImageCompressQualityFloorStopsWalkdown(t *testing.T) {
	// A 1 KiB target is unreachable; the walk-down must stop at the floor
	// instead of looping.
	payload := jpegBytes(t, 512, 512, 100)
	in := inputWithPayload(t, map[string]any{"max_size_kb": 1, "quality": 85}, payload)

	result, err := ImageCompress(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, compressQualityFloor, result.(ImageCompressResult).FinalQuality)
}

func TestImageCompressRejectsNonImage(t *testing.T) {
	in := inputWithPayload(t, map[string]any{"max_size_kb": 500, "quality": 85}, []byte{0x00, 0x01})

	_, err := ImageCompress(context.Background(), in)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnsupportedFormat, apperrors.AsStructuredError(err).Kind)
}

func TestPDFToTextRejectsNonPDF(t *testing.T) {
	in := inputWithPayload(t, map[string]any{}, []byte("plain text, not a PDF"))

	_, err := PDFToText(context.Background(), in)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnsupportedFormat, apperrors.AsStructuredError(err).Kind)
}

func TestPDFToTextSurvivesTruncatedPDF(t *testing.T) {
	// A valid header with a truncated body trips the parser's panic paths;
	// the converter must turn that into a typed failure.
	in := inputWithPayload(t, map[string]any{}, []byte("%PDF-1.7\n1 0 obj\n<<"))

	_, err := PDFToText(context.Background(), in)

	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnsupportedFormat, apperrors.AsStructuredError(err).Kind)
}
