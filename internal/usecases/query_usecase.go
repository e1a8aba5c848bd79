package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/domain/gateways"
	"studio-ops.backend/pkg/logger"
)

const (
	maxResultRows   = 10
	maxCellWidth    = 20
	fieldQuestion   = "Question"
	fieldQuery      = "Generated Query"
	noQuestionValue = "No question provided"
)

// QueryUsecase turns questions into reviewed read-only SQL
type QueryUsecase struct {
	assistant gateways.QueryAssistant
	runner    gateways.QueryRunner
}

func NewQueryUsecase(assistant gateways.QueryAssistant, runner gateways.QueryRunner) *QueryUsecase {
	return &QueryUsecase{assistant: assistant, runner: runner}
}

// Ask returns a review card with Execute and Cancel buttons.
func (u *QueryUsecase) Ask(ctx context.Context, question string) (*entities.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return &entities.ChatMessage{Content: "Please provide a question to ask the AI."}, nil
	}

	generated, err := u.assistant.GenerateQuery(ctx, question)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotConfigured) {
			return &entities.ChatMessage{Content: "AI service is not properly configured."}, nil
		}
		return nil, err
	}

	query := generated.Query
	if query == "" {
		query = "No query generated"
	}
	return &entities.ChatMessage{
		Embeds: []entities.Embed{{
			Title:  "Review Generated SQL Query",
			Color:  entities.ColorInfo,
			Footer: "Review the query before execution",
			Fields: []entities.EmbedField{
				{Name: fieldQuestion, Value: question},
				{Name: fieldQuery, Value: query},
			},
		}},
		Buttons: []entities.Button{
			{CustomID: ExecuteQueryComponentID, Label: "Execute Query", Style: entities.ButtonPrimary},
			{CustomID: CancelQueryComponentID, Label: "Cancel", Style: entities.ButtonSecondary},
		},
	}, nil
}

// Execute runs the query from a review card and renders the result card.
// Failures are rendered as an error card rather than returned.
func (u *QueryUsecase) Execute(ctx context.Context, review *entities.Embed) *entities.ChatMessage {
	question, query := reviewFields(review)
	if query == "" {
		return executionFailed(domainerrors.BadRequest("Query not found in message embed"))
	}
	if question == "" {
		question = noQuestionValue
	}

	result, err := u.runner.RunSelect(ctx, query)
	if err != nil {
		logger.Warn(ctx, "Query execution failed", zap.Error(err))
		return executionFailed(err)
	}

	return &entities.ChatMessage{Embeds: []entities.Embed{{
		Title:  "Result",
		Color:  entities.ColorSuccess,
		Footer: "Query executed successfully",
		Fields: []entities.EmbedField{
			{Name: fieldQuestion, Value: question},
			{Name: fieldQuery, Value: "```" + query + "```"},
			{Name: "Output", Value: FormatQueryResult(result)},
		},
	}}}
}

// Cancel greys out the review card.
func (u *QueryUsecase) Cancel(review *entities.Embed) *entities.ChatMessage {
	embed := entities.Embed{}
	if review != nil {
		embed = *review
	}
	embed.Title = "Query Cancelled"
	embed.Color = entities.ColorMuted
	return &entities.ChatMessage{Embeds: []entities.Embed{embed}}
}

// FormatQueryResult renders at most ten rows as a fenced pipe table.
func FormatQueryResult(result *entities.QueryResult) string {
	if result == nil || len(result.Rows) == 0 {
		return "No results found."
	}

	var b strings.Builder
	b.WriteString("```\n")
	b.WriteString(strings.Join(result.Columns, " | "))
	b.WriteString("\n")
	sep := make([]string, len(result.Columns))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString(strings.Join(sep, " | "))
	b.WriteString("\n")

	shown := result.Rows
	if len(shown) > maxResultRows {
		shown = shown[:maxResultRows]
	}
	for _, row := range shown {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = truncateRunes(v, maxCellWidth)
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString("\n")
	}
	b.WriteString("```\n")

	if len(result.Rows) > maxResultRows {
		fmt.Fprintf(&b, "\n_Showing %d of %d results._", maxResultRows, len(result.Rows))
	}
	return b.String()
}

func reviewFields(review *entities.Embed) (question, query string) {
	if review == nil {
		return "", ""
	}
	if len(review.Fields) > 0 {
		question = review.Fields[0].Value
	}
	if len(review.Fields) > 1 {
		query = review.Fields[1].Value
	}
	return question, query
}

func executionFailed(err error) *entities.ChatMessage {
	message := err.Error()
	if appErr, ok := domainerrors.As(err); ok {
		message = appErr.Message
	}
	return &entities.ChatMessage{Embeds: []entities.Embed{{
		Title:       "Query Execution Failed",
		Color:       entities.ColorFailure,
		Description: "Error: " + message,
	}}}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
