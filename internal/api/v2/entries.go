package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/healthdiary-go/internal/diary"
	"github.com/tphakala/healthdiary-go/internal/errors"
)

// GetFoodEntries handles GET /api/v2/food.
func (c *Controller) GetFoodEntries(ctx echo.Context) error {
	store, err := c.entryStore()
	if err != nil {
		return c.HandleError(ctx, err, "Storage is not configured", http.StatusInternalServerError)
	}

	entities, err := store.ListEntities(ctx.Request().Context(), diary.FoodTable)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list food entries", errors.HTTPStatus(err))
	}

	entries := make([]diary.FoodEntry, 0, len(entities))
	for _, ent := range entities {
		entries = append(entries, diary.FoodEntryFromEntity(ent))
	}
	return ctx.JSON(http.StatusOK, entries)
}

// CreateFoodEntry handles POST /api/v2/food.
func (c *Controller) CreateFoodEntry(ctx echo.Context) error {
	var entry diary.FoodEntry
	if err := ctx.Bind(&entry); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if err := entry.Validate(); err != nil {
		return c.HandleError(ctx, err, "Invalid food entry", http.StatusBadRequest)
	}

	store, err := c.entryStore()
	if err != nil {
		return c.HandleError(ctx, err, "Storage is not configured", http.StatusInternalServerError)
	}
	if err := store.InsertEntity(ctx.Request().Context(), diary.FoodTable, entry.ToEntity()); err != nil {
		return c.HandleError(ctx, err, "Failed to store food entry", errors.HTTPStatus(err))
	}
	return ctx.JSON(http.StatusCreated, SuccessResponse{Success: true})
}

// GetSymptomEntries handles GET /api/v2/symptoms.
func (c *Controller) GetSymptomEntries(ctx echo.Context) error {
	store, err := c.entryStore()
	if err != nil {
		return c.HandleError(ctx, err, "Storage is not configured", http.StatusInternalServerError)
	}

	entities, err := store.ListEntities(ctx.Request().Context(), diary.SymptomTable)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list symptom entries", errors.HTTPStatus(err))
	}

	entries := make([]diary.SymptomEntry, 0, len(entities))
	for _, ent := range entities {
		entries = append(entries, diary.SymptomEntryFromEntity(ent))
	}
	return ctx.JSON(http.StatusOK, entries)
}

// CreateSymptomEntry handles POST /api/v2/symptoms.
func (c *Controller) CreateSymptomEntry(ctx echo.Context) error {
	var entry diary.SymptomEntry
	if err := ctx.Bind(&entry); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if err := entry.Validate(); err != nil {
		return c.HandleError(ctx, err, "Invalid symptom entry", http.StatusBadRequest)
	}

	store, err := c.entryStore()
	if err != nil {
		return c.HandleError(ctx, err, "Storage is not configured", http.StatusInternalServerError)
	}
	if err := store.InsertEntity(ctx.Request().Context(), diary.SymptomTable, entry.ToEntity()); err != nil {
		return c.HandleError(ctx, err, "Failed to store symptom entry", errors.HTTPStatus(err))
	}
	return ctx.JSON(http.StatusCreated, SuccessResponse{Success: true})
}

// GetMedicationEntries handles GET /api/v2/medications.
func (c *Controller) GetMedicationEntries(ctx echo.Context) error {
	store, err := c.entryStore()
	if err != nil {
		return c.HandleError(ctx, err, "Storage is not configured", http.StatusInternalServerError)
	}

	entities, err := store.ListEntities(ctx.Request().Context(), diary.MedicationTable)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list medication entries", errors.HTTPStatus(err))
	}

	entries := make([]diary.MedicationEntry, 0, len(entities))
	for _, ent := range entities {
		entries = append(entries, diary.MedicationEntryFromEntity(ent))
	}
	return ctx.JSON(http.StatusOK, entries)
}

// CreateMedicationEntry handles POST /api/v2/medications.
func (c *Controller) CreateMedicationEntry(ctx echo.Context) error {
	var entry diary.MedicationEntry
	if err := ctx.Bind(&entry); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if err := entry.Validate(); err != nil {
		return c.HandleError(ctx, err, "Invalid medication entry", http.StatusBadRequest)
	}

	store, err := c.entryStore()
	if err != nil {
		return c.HandleError(ctx, err, "Storage is not configured", http.StatusInternalServerError)
	}
	if err := store.InsertEntity(ctx.Request().Context(), diary.MedicationTable, entry.ToEntity()); err != nil {
		return c.HandleError(ctx, err, "Failed to store medication entry", errors.HTTPStatus(err))
	}
	return ctx.JSON(http.StatusCreated, SuccessResponse{Success: true})
}

// GetDrinkEntries handles GET /api/v2/drinks.
func (c *Controller) GetDrinkEntries(ctx echo.Context) error {
	store, err := c.entryStore()
	if err != nil {
		return c.HandleError(ctx, err, "Storage is not configured", http.StatusInternalServerError)
	}

	entities, err := store.ListEntities(ctx.Request().Context(), diary.DrinkTable)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list drink entries", errors.HTTPStatus(err))
	}

	entries := make([]diary.DrinkEntry, 0, len(entities))
	for _, ent := range entities {
		entries = append(entries, diary.DrinkEntryFromEntity(ent))
	}
	return ctx.JSON(http.StatusOK, entries)
}

// CreateDrinkEntry handles POST /api/v2/drinks.
func (c *Controller) CreateDrinkEntry(ctx echo.Context) error {
	var entry diary.DrinkEntry
	if err := ctx.Bind(&entry); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if err := entry.Validate(); err != nil {
		return c.HandleError(ctx, err, "Invalid drink entry", http.StatusBadRequest)
	}

	store, err := c.entryStore()
	if err != nil {
		return c.HandleError(ctx, err, "Storage is not configured", http.StatusInternalServerError)
	}
	if err := store.InsertEntity(ctx.Request().Context(), diary.DrinkTable, entry.ToEntity()); err != nil {
		return c.HandleError(ctx, err, "Failed to store drink entry", errors.HTTPStatus(err))
	}
	return ctx.JSON(http.StatusCreated, SuccessResponse{Success: true})
}
