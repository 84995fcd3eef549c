package analysis

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/config"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
	pkghttp "github.com/MisticalPy/solution-to-combat-burnout/pkg/http"
)

// Connector talks to an OpenAI-compatible chat completions endpoint.
// Both operations are the same capability: submit a role-tagged prompt,
// get free text back.
type Connector struct {
	config           config.AnalysisConnectorConfig
	connector        *pkghttp.Connector
	symptomChecklist string
	logger           *zap.Logger
}

func NewConnector(
	cfg config.AnalysisConnectorConfig,
	symptomChecklist string,
	logger *zap.Logger,
) *Connector {
	connCfg := &pkghttp.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	httpConnector := pkghttp.NewConnector(
		connCfg,
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
		pkghttp.WithClientKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
		pkghttp.WithAuthToken(cfg.Token),
	)

	return &Connector{
		config:           cfg,
		connector:        httpConnector,
		symptomChecklist: symptomChecklist,
		logger:           logger,
	}
}

// complete submits one system+user prompt pair and returns the generated text.
func (c *Connector) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := &entity.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: c.config.Temperature,
		Messages: []entity.ChatMessage{
			{Role: entity.ChatRoleSystem, Content: systemPrompt},
			{Role: entity.ChatRoleUser, Content: userPrompt},
		},
	}

	var text string
	err := retry.Do(func() error {
		var resp entity.ChatCompletionResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionsEndpoint, req, &resp); err != nil {
			return err
		}

		text = resp.Text()
		if text == "" {
			return fmt.Errorf("completion response contains no choices")
		}
		return nil
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return "", err
	}

	return text, nil
}

// GenerateQuestions asks the model for the 15-item questionnaire built from
// the symptom checklist. The count is a prompt contract with the model; the
// response shape is re-validated here and a parse failure is surfaced as
// entity.ErrQuestionsParse so the caller can recover.
func (c *Connector) GenerateQuestions(ctx context.Context) ([]string, error) {
	ctxzap.Info(ctx, "generating survey questions")

	raw, err := c.complete(ctx,
		fmt.Sprintf(questionsSystemPrompt, c.symptomChecklist),
		questionsUserPrompt,
	)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	questions, err := ParseQuestionList(raw)
	if err != nil {
		ctxzap.Error(ctx, "unparseable question list",
			zap.Error(err),
			zap.Int("raw_length", len(raw)),
		)
		return nil, err
	}

	ctxzap.Info(ctx, "survey questions generated", zap.Int("count", len(questions)))
	return questions, nil
}

// GenerateAnalysis asks the model for a burnout analysis of one employee.
// The employee summary is the formatted field dump from entity.Employee.
func (c *Connector) GenerateAnalysis(ctx context.Context, employeeSummary string) (string, error) {
	ctxzap.Info(ctx, "generating burnout analysis")

	text, err := c.complete(ctx,
		analysisSystemPrompt,
		fmt.Sprintf(analysisUserPrompt, employeeSummary),
	)
	if err != nil {
		return "", fmt.Errorf("generate analysis: %w", err)
	}

	ctxzap.Info(ctx, "burnout analysis generated", zap.Int("result_length", len(text)))
	return text, nil
}
