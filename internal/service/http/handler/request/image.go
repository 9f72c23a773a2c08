package request

import (
	"fmt"
	"strings"

	"github.com/reusedev/room-stager/internal/modules/flow"
	"github.com/reusedev/room-stager/tools"
)

// DecodeImage parses a data URL field into raw image bytes.
func DecodeImage(dataURL string) (flow.Image, error) {
	mimeType, data, err := tools.ParseDataURL(dataURL)
	if err != nil {
		return flow.Image{}, err
	}
	return flow.Image{MimeType: mimeType, Data: data}, nil
}

type Furnish struct {
	ClearedImage string `json:"clearedImage"`
	Prompt       string `json:"prompt"`
	Count        *int   `json:"count"` // nil means the configured default
}

func (f *Furnish) Valid() error {
	if f.ClearedImage == "" || strings.TrimSpace(f.Prompt) == "" {
		return fmt.Errorf("Missing clearedImage or prompt")
	}
	return nil
}

func (f *Furnish) VariantCount(defaultCount int) int {
	if f.Count == nil {
		return defaultCount
	}
	return *f.Count
}

type ClearRegion struct {
	Image string       `json:"image"`
	Crop  *flow.Region `json:"crop"`
}

func (c *ClearRegion) Valid() error {
	if c.Image == "" || c.Crop == nil {
		return fmt.Errorf("Missing image or crop")
	}
	if err := c.Crop.Valid(); err != nil {
		return fmt.Errorf("Invalid crop: %w", err)
	}
	return nil
}

type Edit struct {
	Image  string `json:"image"`
	Prompt string `json:"prompt"`
}

func (e *Edit) Valid() error {
	if e.Image == "" || strings.TrimSpace(e.Prompt) == "" {
		return fmt.Errorf("Missing image or prompt")
	}
	return nil
}

type Refine struct {
	FurnishedImage string       `json:"furnishedImage"`
	Crop           *flow.Region `json:"crop"`
	Prompt         string       `json:"prompt"`
}

func (r *Refine) Valid() error {
	if r.FurnishedImage == "" || r.Crop == nil || strings.TrimSpace(r.Prompt) == "" {
		return fmt.Errorf("Missing required fields")
	}
	if err := r.Crop.Valid(); err != nil {
		return fmt.Errorf("Invalid crop: %w", err)
	}
	return nil
}
