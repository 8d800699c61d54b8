// Package screenshot handles the uploaded payment proof image: content-type
// sniffing, the in-memory/on-disk source strategy and the retention store.
package screenshot

import (
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
)

// Source yields the screenshot for the relay. The two upload paths (direct
// stream and disk-buffered) collapse behind it; callers never care where the
// bytes live.
type Source interface {
	Bytes() []byte
	// Filename is the client-declared name. Informational only; it is never
	// written to disk and never trusted for type decisions.
	Filename() string
	// MIMEType is sniffed from the content, not taken from the upload header.
	MIMEType() string
}

// allowedTypes maps accepted sniffed MIME types to canonical extensions.
var allowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

type memorySource struct {
	data     []byte
	filename string
	mime     *mimetype.MIME
}

// FromBytes builds a Source over an in-memory buffer and sniffs its type.
func FromBytes(data []byte, filename string) Source {
	return &memorySource{
		data:     data,
		filename: filename,
		mime:     mimetype.Detect(data),
	}
}

// FromUpload reads a multipart file fully into memory. The declared
// content-type header is ignored in favor of sniffing.
func FromUpload(fh *multipart.FileHeader) (Source, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return FromBytes(data, fh.Filename), nil
}

func (m *memorySource) Bytes() []byte    { return m.data }
func (m *memorySource) Filename() string { return m.filename }
func (m *memorySource) MIMEType() string { return m.mime.String() }

// Allowed reports whether the sniffed content type is an accepted image type.
func Allowed(src Source) bool {
	_, ok := allowedTypes[src.MIMEType()]
	return ok
}

// Extension returns the canonical extension for the sniffed type, or "bin"
// when the type is not an accepted image.
func Extension(src Source) string {
	if ext, ok := allowedTypes[src.MIMEType()]; ok {
		return ext
	}
	return "bin"
}
