package completion

import (
	"fmt"
	"strings"

	"github.com/tphakala/healthdiary-go/internal/diary"
)

// formatFoodLine renders one food entry for a prompt, e.g.
// "2024-01-01 12:30: Ate porridge (with oat milk)".
func formatFoodLines(entries []diary.FoodEntry, verb string) string {
	lines := make([]string, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		line := fmt.Sprintf("%s %s: %s%s", e.Date, e.Time, verb, e.Food)
		if e.Notes != "" {
			line += " (" + e.Notes + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatSymptomLines(entries []diary.SymptomEntry) string {
	lines := make([]string, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		line := fmt.Sprintf("%s %s: Symptom severity %d/10", e.Date, e.Time, int(e.SymptomScore))
		if e.Notes != "" {
			line += " (" + e.Notes + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatMedicationLines(entries []diary.MedicationEntry) string {
	lines := make([]string, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		line := fmt.Sprintf("%s %s: %s", e.Date, e.Time, e.Medication)
		if e.Dosage != "" {
			line += " - " + e.Dosage
		}
		if e.Notes != "" {
			line += " (" + e.Notes + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatDrinkLines(entries []diary.DrinkEntry) string {
	lines := make([]string, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		line := fmt.Sprintf("%s %s: %s", e.Date, e.Time, e.Drink)
		if e.Amount != "" {
			line += " - " + e.Amount
		}
		if e.Notes != "" {
			line += " (" + e.Notes + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func orPlaceholder(text, placeholder string) string {
	if text == "" {
		return placeholder
	}
	return text
}

// AnalysisPrompt composes the food-trigger analysis prompt over a window
// of food and symptom entries.
func AnalysisPrompt(foodEntries []diary.FoodEntry, symptomEntries []diary.SymptomEntry, days int) string {
	return fmt.Sprintf(`You are a medical assistant helping identify food triggers for stomach issues. Analyze the following data from the last %d day(s).

FOOD ENTRIES:
%s

SYMPTOM ENTRIES:
%s

Please provide a concise analysis covering:
1. Which foods correlate with symptoms appearing 1-6 hours later?
2. Time delays: How long after eating do symptoms typically appear?
3. Which foods seem safe (no symptoms following them)?
4. Any patterns by time of day or food combinations?
5. Severity patterns: which foods correlate with higher symptom scores?
6. An analysis of the adherence to the 'five a day' fruit and vegetable guideline and its impact on symptoms.

Be specific about time delays and patterns. Remind the user to consult a healthcare provider.`,
		days,
		formatFoodLines(foodEntries, "Ate "),
		formatSymptomLines(symptomEntries))
}

// QuestionPrompt composes a free-form question prompt over every entry
// type, substituting placeholders for empty periods.
func QuestionPrompt(question string, days int, foodEntries []diary.FoodEntry, symptomEntries []diary.SymptomEntry, medicationEntries []diary.MedicationEntry, drinkEntries []diary.DrinkEntry) string {
	return fmt.Sprintf(`You are a helpful assistant analyzing health diary data. The user has tracked their food, symptoms, medications, and drinks over the last %d day(s).

USER'S QUESTION:
%s

DATA FROM THE LAST %d DAY(S):

FOOD ENTRIES:
%s

SYMPTOM ENTRIES:
%s

MEDICATION/SUPPLEMENT ENTRIES:
%s

ALCOHOLIC DRINK ENTRIES:
%s

Please answer the user's question based on the data provided. Be specific and reference actual entries from their data. If the question cannot be answered with the available data, explain what's missing. Be helpful and concise.`,
		days,
		question,
		days,
		orPlaceholder(formatFoodLines(foodEntries, ""), "No food entries in this period."),
		orPlaceholder(formatSymptomLines(symptomEntries), "No symptom entries in this period."),
		orPlaceholder(formatMedicationLines(medicationEntries), "No medication entries in this period."),
		orPlaceholder(formatDrinkLines(drinkEntries), "No drink entries in this period."))
}
