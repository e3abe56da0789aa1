// Package extract turns one page image into a menu table by way of the
// hosted vision model.
package extract

import (
	"context"
	"encoding/json"

	"github.com/VJd357/Happyplates/internal/domain"
	"github.com/VJd357/Happyplates/internal/llm"
	"github.com/VJd357/Happyplates/internal/menutable"
	"github.com/VJd357/Happyplates/internal/observability"
)

// Service orchestrates single-image extraction: submit the image with the
// fixed instruction, slice the fenced JSON out of the reply, parse it and
// flatten it into rows.
type Service struct {
	llm    domain.CompletionClient
	logger *observability.Logger
	strict bool
}

// Option configures a Service.
type Option func(*Service)

// WithStrictSchema enables JSON-schema validation of the parsed sections
// before flattening. Off by default: partial-schema replies flow through as
// nulls for a human reviewing the output table.
func WithStrictSchema() Option {
	return func(s *Service) { s.strict = true }
}

// NewService creates a new extraction service.
func NewService(client domain.CompletionClient, logger *observability.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = observability.Nop()
	}
	s := &Service{
		llm:    client,
		logger: logger.WithComponent("extract"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractImage produces a menu table for one image, or an explicit failure.
// Model-call failures and malformed replies come back as errors for the
// caller to log and skip; they never crash the batch.
func (s *Service) ExtractImage(ctx context.Context, imagePath string) (*menutable.Table, error) {
	prompt := llm.MenuPrompt()

	s.logger.Info().Str("image", imagePath).Str("prompt", prompt).
		Msg("sending extraction request")

	reply, err := s.llm.Complete(ctx, llm.SystemPrompt(), prompt, imagePath)
	if err != nil {
		s.logger.Error().Str("image", imagePath).Err(err).Msg("model call failed")
		return nil, err
	}

	s.logger.Info().Str("image", imagePath).Str("reply", reply).
		Msg("received reply content")

	jsonText, err := llm.ExtractFencedJSON(reply)
	if err != nil {
		s.logger.Error().Str("image", imagePath).Err(err).Msg("malformed reply")
		return nil, err
	}

	s.logger.Info().Str("image", imagePath).Str("json", jsonText).
		Msg("extracted fenced JSON")

	var sections []domain.MenuSection
	if err := json.Unmarshal([]byte(jsonText), &sections); err != nil {
		parseErr := domain.ParseError("fenced block is not valid menu JSON", err)
		s.logger.Error().Str("image", imagePath).Err(parseErr).Msg("malformed reply")
		return nil, parseErr
	}

	if s.strict {
		if err := ValidateSections([]byte(jsonText)); err != nil {
			s.logger.Error().Str("image", imagePath).Err(err).Msg("schema validation failed")
			return nil, err
		}
	}

	table := &menutable.Table{Rows: Flatten(sections)}

	s.logger.Info().Str("image", imagePath).Int("rows", table.Len()).
		Msg("flattened menu sections")

	return table, nil
}
