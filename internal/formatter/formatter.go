// package formatter provides functions to export rotation plans to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/openchord/rotx/internal/models"
	"github.com/openchord/rotx/internal/tasks"
)

// ExportToCSV converts a PlanResult to CSV format with columns: ID, Title, Author, LastScheduledAt, UsageCount
func ExportToCSV(result *tasks.PlanResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Author", "LastScheduledAt", "UsageCount"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range result.Songs {
		record := []string{
			song.ID,
			song.Title,
			song.Author,
			formatDate(song.LastScheduledAt),
			strconv.Itoa(song.Schedules.TotalCount),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a PlanResult to a Markdown report with the plan
// table and any per-song fetch failures.
func ExportToMarkdown(result *tasks.PlanResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Rotation Plan %s\n\n", result.RunID)
	fmt.Fprintf(&buf, "%d of %d catalog songs planned (%d candidates after catalog filters)\n\n",
		result.PlannedCount, result.CatalogCount, result.CandidateCount)

	buf.WriteString("| # | Title | Author | Last Scheduled | Usage |\n")
	buf.WriteString("|---|-------|--------|----------------|-------|\n")

	for i, song := range result.Songs {
		fmt.Fprintf(&buf, "| %d | %s | %s | %s | %d |\n",
			i+1,
			song.Title,
			song.Author,
			formatDate(song.LastScheduledAt),
			song.Schedules.TotalCount,
		)
	}

	if len(result.Failures) > 0 {
		buf.WriteString("\n## Excluded by fetch failures\n\n")
		for _, failure := range result.Failures {
			fmt.Fprintf(&buf, "- %s: %v\n", failure.Song.Title, failure.Err)
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a PlanResult to a plain text listing, least-used first.
func ExportToText(result *tasks.PlanResult) ([]byte, error) {
	var buf bytes.Buffer

	for i, song := range result.Songs {
		line := fmt.Sprintf("%d. %s", i+1, song.Title)
		if song.Author != "" {
			line += " - " + song.Author
		}
		line += fmt.Sprintf(" (%d uses)", song.Schedules.TotalCount)
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// WritePlanExport renders a PlanResult in the given format and writes it to path.
// Unknown formats fall back to indented JSON.
func WritePlanExport(result *tasks.PlanResult, format, path string) error {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = ExportToCSV(result)
	case "markdown":
		data, err = ExportToMarkdown(result)
	case "txt":
		data, err = ExportToText(result)
	case "json":
		fallthrough
	default:
		data, err = json.MarshalIndent(result, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to render %s export: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// SongLine renders one enriched song for terminal output.
func SongLine(index int, song models.EnrichedSong) string {
	line := fmt.Sprintf("%3d. %-40s %4d uses", index, song.Title, song.Schedules.TotalCount)
	if song.Author != "" {
		line += "  " + song.Author
	}
	return line
}
