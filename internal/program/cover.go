package program

import (
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mitchellh/go-homedir"
)

// ReadCover loads a cover image from path ("~" is expanded) and detects its
// content type from the bytes, not the file name. Empty files are rejected.
func ReadCover(path string) (data []byte, contentType string, err error) {
	expanded, err := homedir.Expand(strings.TrimSpace(path))
	if err != nil {
		return nil, "", err
	}
	data, err = os.ReadFile(expanded)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%s is empty", expanded)
	}
	return data, mimetype.Detect(data).String(), nil
}

// CoverExtension is the usual file extension for contentType, including
// the dot, or "" when the type is unknown.
func CoverExtension(contentType string) string {
	if m := mimetype.Lookup(contentType); m != nil {
		return m.Extension()
	}
	return ""
}
