package flow

import (
	"errors"
	"fmt"
	"math"

	"github.com/reusedev/room-stager/internal/modules/ai/parser"
)

var (
	ErrNoImage           = errors.New("model returned no image")
	ErrAllVariantsFailed = errors.New("all furnish variants failed")
)

const (
	MinVariants = 1
	MaxVariants = 5
)

type Image struct {
	MimeType string
	Data     []byte
}

// Region is a rectangle in absolute pixel coordinates of the referenced image.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Region) Valid() error {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("region coordinates must be finite")
		}
	}
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("region origin must be non-negative")
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("region size must be positive")
	}
	return nil
}

func (r Region) Rounded() (x, y, width, height int) {
	return int(math.Round(r.X)), int(math.Round(r.Y)), int(math.Round(r.Width)), int(math.Round(r.Height))
}

type AnalyzeResult struct {
	RemovedItems []string
	ClearedImage *parser.ImagePayload
}

type Variant struct {
	Image      *parser.ImagePayload
	AddedItems []string
}

type FurnishResult struct {
	Variants []Variant
	Failed   int
}

// ClampVariants bounds a requested variant count to [MinVariants, limit].
func ClampVariants(n, limit int) int {
	if limit > MaxVariants || limit < MinVariants {
		limit = MaxVariants
	}
	if n < MinVariants {
		return MinVariants
	}
	if n > limit {
		return limit
	}
	return n
}
