package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/healthdiary-go/internal/completion"
	"github.com/tphakala/healthdiary-go/internal/diary"
	"github.com/tphakala/healthdiary-go/internal/errors"
)

// QuestionRequest carries a free-form question plus the diary window the
// answer should draw on. Nothing from this request is stored.
type QuestionRequest struct {
	Question          string                  `json:"question"`
	Days              diary.IntValue          `json:"days"`
	FoodEntries       []diary.FoodEntry       `json:"foodEntries"`
	SymptomEntries    []diary.SymptomEntry    `json:"symptomEntries"`
	MedicationEntries []diary.MedicationEntry `json:"medicationEntries"`
	DrinkEntries      []diary.DrinkEntry      `json:"drinkEntries"`
}

// QuestionResponse returns the generated answer.
type QuestionResponse struct {
	Answer string `json:"answer"`
}

// AskQuestion handles POST /api/v2/question.
func (c *Controller) AskQuestion(ctx echo.Context) error {
	var req QuestionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if strings.TrimSpace(req.Question) == "" {
		err := errors.Newf("question is required").
			Component("api").
			Category(errors.CategoryValidation).
			Build()
		return c.HandleError(ctx, err, "No question provided", http.StatusBadRequest)
	}

	completer, err := c.textCompleter()
	if err != nil {
		return c.HandleError(ctx, err, "Completion service is not configured", http.StatusInternalServerError)
	}

	prompt := completion.QuestionPrompt(req.Question, int(req.Days),
		req.FoodEntries, req.SymptomEntries, req.MedicationEntries, req.DrinkEntries)
	answer, err := completer.Complete(ctx.Request().Context(), prompt, c.Settings.Completion.QuestionMaxTokens)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to answer question", errors.HTTPStatus(err))
	}

	return ctx.JSON(http.StatusOK, QuestionResponse{Answer: answer})
}
