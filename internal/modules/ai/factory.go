package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/reusedev/room-stager/config"
	"github.com/reusedev/room-stager/internal/modules/observer"
	"google.golang.org/genai"
)

var (
	textModalities  = []string{"TEXT"}
	imageModalities = []string{"TEXT", "IMAGE"}
)

type Options struct {
	Generator Generator
	APIKey    string
	TextModel string
	// ImageModels is the fallback order, most available first.
	ImageModels []string
	Observers   []observer.Observer
}

type Factory struct {
	generator   Generator
	textModel   string
	imageModels []string
	subject     *observer.Subject
}

func NewFactory(opts Options) (*Factory, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if opts.Generator == nil {
		return nil, errors.New("generator is nil")
	}
	if strings.TrimSpace(opts.TextModel) == "" {
		return nil, errors.New("text model is not configured")
	}
	if len(opts.ImageModels) == 0 {
		return nil, ErrNoCandidates
	}
	return &Factory{
		generator:   opts.Generator,
		textModel:   opts.TextModel,
		imageModels: append([]string(nil), opts.ImageModels...),
		subject:     observer.NewSubject(opts.Observers...),
	}, nil
}

// NewGenaiFactory checks the credential before any client is built, so a
// missing key stops the process at startup.
func NewGenaiFactory(ctx context.Context, cfg config.Gemini, httpClient *http.Client, observers ...observer.Observer) (*Factory, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return NewFactory(Options{
		Generator:   client.Models,
		APIKey:      cfg.APIKey,
		TextModel:   cfg.TextModel,
		ImageModels: cfg.ImageModels,
		Observers:   observers,
	})
}

// CreateTextSession binds the cheap text model; no image output.
func (f *Factory) CreateTextSession() *Session {
	return f.newSession(f.textModel, textModalities)
}

// CreateImageSession binds model, or the first image candidate, with text and image output.
func (f *Factory) CreateImageSession(model ...string) *Session {
	m := f.imageModels[0]
	if len(model) > 0 && model[0] != "" {
		m = model[0]
	}
	return f.newSession(m, imageModalities)
}

func (f *Factory) ImageCandidates() []string {
	return append([]string(nil), f.imageModels...)
}

func (f *Factory) newSession(model string, modalities []string) *Session {
	return &Session{
		generator: f.generator,
		model:     model,
		config: &genai.GenerateContentConfig{
			ResponseModalities: append([]string(nil), modalities...),
		},
		subject: f.subject,
	}
}
