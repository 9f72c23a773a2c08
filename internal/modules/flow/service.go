package flow

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/reusedev/room-stager/internal/modules/ai"
	"github.com/reusedev/room-stager/internal/modules/ai/parser"
	"github.com/reusedev/room-stager/internal/modules/logs"
	"github.com/reusedev/room-stager/internal/modules/observer"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

type Service struct {
	orchestrator *ai.Orchestrator
	policy       ai.RetryPolicy
	maxVariants  int
}

func NewService(orchestrator *ai.Orchestrator, policy ai.RetryPolicy, maxVariants int) *Service {
	return &Service{
		orchestrator: orchestrator,
		policy:       policy,
		maxVariants:  maxVariants,
	}
}

func withFlow(ctx context.Context, name string) context.Context {
	r := observer.RequestFrom(ctx)
	r.Flow = name
	return observer.WithRequest(ctx, r)
}

func imagePart(img Image) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{Data: img.Data, MIMEType: img.MimeType}}
}

func payloadPart(p *parser.ImagePayload) (*genai.Part, error) {
	data, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return nil, fmt.Errorf("decode generated image: %w", err)
	}
	return imagePart(Image{MimeType: p.MimeType, Data: data}), nil
}

// generateImage runs one image-generation call through the fallback chain.
func (s *Service) generateImage(ctx context.Context, parts ...*genai.Part) (*parser.ImagePayload, error) {
	resp, err := s.orchestrator.SendWithFallback(ctx, parts...)
	if err != nil {
		return nil, err
	}
	img, ok := parser.ExtractImage(resp)
	if !ok {
		return nil, ErrNoImage
	}
	return img, nil
}

// listItems asks the text model for the items visible in an image.
func (s *Service) listItems(ctx context.Context, image *genai.Part, prompt string) ([]string, error) {
	session := s.orchestrator.Factory().CreateTextSession()
	resp, err := ai.WithRetry(ctx, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return session.SendMessage(ctx, image, genai.NewPartFromText(prompt))
	}, s.policy)
	if err != nil {
		return nil, err
	}
	return parser.ParseItemList(parser.ExtractText(resp)), nil
}

// Analyze lists the items in the room and produces an emptied version of it.
// Both upstream calls run concurrently; either failing fails the flow.
func (s *Service) Analyze(ctx context.Context, img Image) (*AnalyzeResult, error) {
	ctx = withFlow(ctx, "analyze")
	ret := &AnalyzeResult{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.listItems(gctx, imagePart(img), listVisibleItemsPrompt)
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		ret.RemovedItems = items
		return nil
	})
	g.Go(func() error {
		cleared, err := s.generateImage(gctx, imagePart(img), genai.NewPartFromText(clearRoomPrompt))
		if err != nil {
			return fmt.Errorf("clear room: %w", err)
		}
		ret.ClearedImage = cleared
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logs.Logger.Info().Str("request_id", observer.RequestFrom(ctx).ID).Int("removed_items", len(ret.RemovedItems)).Msg("analyze done")
	return ret, nil
}

// Furnish renders count independent furnished variants of an empty room.
// Variants run concurrently and the flow fails only when every variant fails.
func (s *Service) Furnish(ctx context.Context, img Image, style string, count int) (*FurnishResult, error) {
	ctx = withFlow(ctx, "furnish")
	n := ClampVariants(count, s.maxVariants)
	req := observer.RequestFrom(ctx)

	variants := make([]*Variant, n)
	errs := make([]error, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			v, err := s.furnishOnce(ctx, img, style)
			if err != nil {
				logs.Logger.Warn().Err(err).Str("request_id", req.ID).Int("variant", i).Msg("furnish variant failed")
				errs[i] = err
				return nil
			}
			variants[i] = v
			return nil
		})
	}
	_ = g.Wait()

	ret := &FurnishResult{}
	var firstErr error
	for i, v := range variants {
		if v == nil {
			ret.Failed++
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		ret.Variants = append(ret.Variants, *v)
	}
	if len(ret.Variants) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrAllVariantsFailed, firstErr)
	}
	logs.Logger.Info().Str("request_id", req.ID).Int("requested", n).Int("failed", ret.Failed).Msg("furnish done")
	return ret, nil
}

func (s *Service) furnishOnce(ctx context.Context, img Image, style string) (*Variant, error) {
	furnished, err := s.generateImage(ctx, imagePart(img), genai.NewPartFromText(furnishPrompt(style)))
	if err != nil {
		return nil, fmt.Errorf("furnish room: %w", err)
	}
	part, err := payloadPart(furnished)
	if err != nil {
		return nil, err
	}
	items, err := s.listItems(ctx, part, listAddedItemsPrompt)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return &Variant{Image: furnished, AddedItems: items}, nil
}

// ClearRegion empties one rectangle of the room and leaves the rest untouched.
func (s *Service) ClearRegion(ctx context.Context, img Image, region Region) (*parser.ImagePayload, error) {
	ctx = withFlow(ctx, "clear_region")
	return s.generateImage(ctx, imagePart(img), genai.NewPartFromText(clearRegionPrompt(region)))
}

// Edit applies a free-text instruction to the whole image.
func (s *Service) Edit(ctx context.Context, img Image, instruction string) (*parser.ImagePayload, error) {
	ctx = withFlow(ctx, "edit")
	return s.generateImage(ctx, imagePart(img), genai.NewPartFromText(editPrompt(instruction)))
}

// Refine replaces whatever sits in region with the described item.
func (s *Service) Refine(ctx context.Context, img Image, region Region, replacement string) (*parser.ImagePayload, error) {
	ctx = withFlow(ctx, "refine")
	return s.generateImage(ctx, imagePart(img), genai.NewPartFromText(refinePrompt(region, replacement)))
}
