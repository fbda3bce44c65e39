package models

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewImage_SniffsContentType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	img := NewImage("front.png", png)

	require.Equal(t, "front.png", img.Filename)
	require.Equal(t, "image/png", img.ContentType)

	b, err := io.ReadAll(img.Body)
	require.NoError(t, err)
	require.Equal(t, png, b)
}

func TestNewImage_UnknownData(t *testing.T) {
	img := NewImage("x.bin", []byte{0x00, 0x01, 0x02})
	require.Equal(t, "application/octet-stream", img.ContentType)
}
