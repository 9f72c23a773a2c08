package tools

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrInvalidDataURL = errors.New("invalid image format")

var dataURLPattern = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

// ParseDataURL splits a data:<mime>;base64,<data> string and checks the payload decodes.
func ParseDataURL(s string) (mimeType string, data []byte, err error) {
	m := dataURLPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", nil, ErrInvalidDataURL
	}
	data, err = base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", nil, ErrInvalidDataURL
	}
	return m[1], data, nil
}

func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DetectMimeType prefers the declared type and sniffs the bytes when it is missing or generic.
func DetectMimeType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if len(data) > 0 {
		if m := mimetype.Detect(data); strings.HasPrefix(m.String(), "image/") {
			return m.String()
		}
	}
	return "image/png"
}
