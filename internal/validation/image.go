package validation

import (
	"bytes"
	"fmt"
	"image"
	"net/http"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/webp" // register WebP decoder
)

// SniffImage verifies that content is a decodable image of a supported
// encoding. The check is on the bytes, not the filename: a renamed text file
// is rejected. Returns the decoded format name.
func SniffImage(content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("empty file")
	}

	detected := http.DetectContentType(content)
	switch detected {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
	default:
		return "", fmt.Errorf("unsupported content type %s", detected)
	}

	_, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("not a decodable image: %w", err)
	}
	return format, nil
}
