package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"textlens/internal/clix"
	"textlens/internal/models"
)

const maxSnippetLength = 60

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// gibberishColor highlights how far a text is from clean language.
func gibberishColor(label string) func(format string, a ...interface{}) string {
	switch label {
	case "clean":
		return color.GreenString
	case "mild gibberish":
		return color.YellowString
	default:
		return color.RedString
	}
}

func printAnalysis(w io.Writer, record *models.AnalysisRecord, format clix.OutputFormat) error {
	if format == clix.OutputJSON {
		return writeJSON(w, record.Result())
	}
	fmt.Fprintf(w, "Entry:     %d\n", record.ID)
	fmt.Fprintf(w, "Emotion:   %s (%.4f)\n", color.CyanString(record.EmotionLabel), record.EmotionConfidence)
	fmt.Fprintf(w, "Gibberish: %s (%.4f)\n", gibberishColor(record.GibberishLabel)(record.GibberishLabel), record.GibberishScore)
	return nil
}

func printEntry(w io.Writer, record *models.AnalysisRecord, format clix.OutputFormat) error {
	if format == clix.OutputJSON {
		return writeJSON(w, record)
	}
	fmt.Fprintf(w, "ID:        %d\n", record.ID)
	fmt.Fprintf(w, "Text:      %s\n", record.Text)
	fmt.Fprintf(w, "Emotion:   %s (%.4f)\n", record.EmotionLabel, record.EmotionConfidence)
	fmt.Fprintf(w, "Gibberish: %s (%.4f)\n", record.GibberishLabel, record.GibberishScore)
	return nil
}

func printEntries(w io.Writer, records []*models.AnalysisRecord, format clix.OutputFormat) error {
	if format == clix.OutputJSON {
		if records == nil {
			records = []*models.AnalysisRecord{}
		}
		return writeJSON(w, records)
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Text", "Emotion", "Confidence", "Gibberish", "Score"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range records {
		table.Append([]string{
			strconv.FormatInt(r.ID, 10),
			snippet(r.Text),
			r.EmotionLabel,
			strconv.FormatFloat(r.EmotionConfidence, 'f', 4, 64),
			r.GibberishLabel,
			strconv.FormatFloat(r.GibberishScore, 'f', 4, 64),
		})
	}
	table.Render()
	fmt.Fprintf(w, "Displayed %d entries.\n", len(records))
	return nil
}

// snippet flattens newlines and shortens long texts for table cells.
func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > maxSnippetLength {
		return string(runes[:maxSnippetLength]) + "..."
	}
	return text
}
