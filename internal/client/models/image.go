// Package models defines client-side values shared between the market API,
// image sources and the CLI.
package models

import (
	"bytes"
	"io"
	"net/http"
)

// Image is one file to be uploaded into a draft. Body is read once.
type Image struct {
	// Filename is sent as the multipart file name.
	Filename string
	// ContentType of the part; application/octet-stream when empty.
	ContentType string
	Body        io.Reader
}

// NewImage wraps data and sniffs its content type.
func NewImage(filename string, data []byte) Image {
	return Image{
		Filename:    filename,
		ContentType: http.DetectContentType(data),
		Body:        bytes.NewReader(data),
	}
}
