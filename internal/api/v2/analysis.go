package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/healthdiary-go/internal/completion"
	"github.com/tphakala/healthdiary-go/internal/diary"
	"github.com/tphakala/healthdiary-go/internal/errors"
)

// AnalysisRequest carries the diary window the client wants analyzed. The
// client supplies the entries itself so the analysis covers exactly what
// the user sees on screen.
type AnalysisRequest struct {
	FoodEntries    []diary.FoodEntry    `json:"foodEntries"`
	SymptomEntries []diary.SymptomEntry `json:"symptomEntries"`
	Days           diary.IntValue       `json:"days"`
}

// AnalysisResponse returns the generated analysis after it has been stored.
type AnalysisResponse struct {
	Success  bool   `json:"success"`
	Analysis string `json:"analysis"`
}

// GetAnalysisEntries handles GET /api/v2/analysis.
func (c *Controller) GetAnalysisEntries(ctx echo.Context) error {
	store, err := c.entryStore()
	if err != nil {
		return c.HandleError(ctx, err, "Storage is not configured", http.StatusInternalServerError)
	}

	entities, err := store.ListEntities(ctx.Request().Context(), diary.AnalysisTable)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list analysis entries", errors.HTTPStatus(err))
	}

	entries := make([]diary.AnalysisEntry, 0, len(entities))
	for _, ent := range entities {
		entries = append(entries, diary.AnalysisEntryFromEntity(ent))
	}
	return ctx.JSON(http.StatusOK, entries)
}

// RunAnalysis handles POST /api/v2/analysis. The completion runs before
// anything is written, so a failed completion leaves no stored entry.
func (c *Controller) RunAnalysis(ctx echo.Context) error {
	var req AnalysisRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if req.FoodEntries == nil || req.SymptomEntries == nil {
		err := errors.Newf("foodEntries and symptomEntries are required").
			Component("api").
			Category(errors.CategoryValidation).
			Build()
		return c.HandleError(ctx, err, "Missing required data", http.StatusBadRequest)
	}

	completer, err := c.textCompleter()
	if err != nil {
		return c.HandleError(ctx, err, "Completion service is not configured", http.StatusInternalServerError)
	}
	store, err := c.entryStore()
	if err != nil {
		return c.HandleError(ctx, err, "Storage is not configured", http.StatusInternalServerError)
	}

	prompt := completion.AnalysisPrompt(req.FoodEntries, req.SymptomEntries, int(req.Days))
	analysis, err := completer.Complete(ctx.Request().Context(), prompt, c.Settings.Completion.AnalysisMaxTokens)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to generate analysis", errors.HTTPStatus(err))
	}

	entry := diary.AnalysisEntry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Days:      req.Days,
		Analysis:  analysis,
	}
	if err := store.InsertEntity(ctx.Request().Context(), diary.AnalysisTable, entry.ToEntity()); err != nil {
		return c.HandleError(ctx, err, "Failed to store analysis", errors.HTTPStatus(err))
	}

	return ctx.JSON(http.StatusOK, AnalysisResponse{Success: true, Analysis: analysis})
}
