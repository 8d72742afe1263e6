package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var imageExtRegex = regexp.MustCompile(`(?i)\.(png|jpg|jpeg)$`)

// ParsedProductName holds the brand and product name extracted from an
// imported image filename.
type ParsedProductName struct {
	Brand string
	Name  string
}

// ParseProductFileName parses an imported image filename following the
// pattern BRAND-PRODUCT NAME.png
// Example: "SportTech-Air Max Revolution.png" -> brand "SportTech",
// name "Air Max Revolution".
func ParseProductFileName(filename string) (*ParsedProductName, error) {
	if !imageExtRegex.MatchString(filename) {
		return nil, fmt.Errorf("invalid filename %q: expected a .png, .jpg or .jpeg image", filename)
	}
	nameWithoutExt := imageExtRegex.ReplaceAllString(filename, "")

	parts := strings.SplitN(nameWithoutExt, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid filename format %q: expected BRAND-PRODUCT NAME", filename)
	}

	brand := strings.TrimSpace(parts[0])
	name := strings.TrimSpace(parts[1])
	if brand == "" || name == "" {
		return nil, fmt.Errorf("invalid filename format %q: brand and name must be non-empty", filename)
	}

	return &ParsedProductName{Brand: brand, Name: name}, nil
}
