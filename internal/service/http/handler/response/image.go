package response

import "github.com/reusedev/room-stager/internal/modules/flow"

type Analyze struct {
	RemovedItems []string `json:"removedItems"`
	ClearedImage string   `json:"clearedImage"`
}

type Variant struct {
	Image      string   `json:"image"`
	AddedItems []string `json:"addedItems"`
}

type Furnish struct {
	FurnishedImage string    `json:"furnishedImage"`
	AddedItems     []string  `json:"addedItems"`
	Variants       []Variant `json:"variants"`
}

func NewFurnish(ret *flow.FurnishResult) Furnish {
	r := Furnish{Variants: make([]Variant, 0, len(ret.Variants))}
	for _, v := range ret.Variants {
		r.Variants = append(r.Variants, Variant{Image: v.Image.DataURL(), AddedItems: v.AddedItems})
	}
	// the first variant doubles as the single-result fields
	r.FurnishedImage = r.Variants[0].Image
	r.AddedItems = r.Variants[0].AddedItems
	return r
}

type ClearRegion struct {
	ClearedImage string `json:"clearedImage"`
}

type Edit struct {
	EditedImage string `json:"editedImage"`
}

type Refine struct {
	RefinedImage string `json:"refinedImage"`
}
