// Package export renders task collections in interchange and report formats.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"github.com/tiwariParth/go-task-tracker/internal/models"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatPDF  = "pdf"
)

// Formats lists the supported export formats.
var Formats = []string{FormatJSON, FormatCSV, FormatYAML, FormatTOML, FormatPDF}

var csvHeader = []string{"ID", "Title", "Description", "Due Date", "Priority", "Status", "Created At"}

// taskList wraps the tasks for formats that need a top-level table.
type taskList struct {
	Tasks []models.Task `yaml:"tasks" toml:"tasks"`
}

// Export renders tasks in the given format.
func Export(tasks []models.Task, format string) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}

	switch strings.ToLower(format) {
	case FormatJSON:
		return json.MarshalIndent(tasks, "", "    ")
	case FormatCSV:
		return exportCSV(tasks)
	case FormatYAML:
		return yaml.Marshal(taskList{Tasks: tasks})
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(taskList{Tasks: tasks}); err != nil {
			return nil, fmt.Errorf("failed to marshal TOML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatPDF:
		return exportPDF(tasks)
	default:
		return nil, fmt.Errorf("unsupported format: %s (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

func exportCSV(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		record := []string{
			strconv.Itoa(t.ID),
			t.Title,
			t.Description,
			t.DueDate,
			t.Priority,
			string(t.Status),
			t.CreatedAt,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func exportPDF(tasks []models.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, "No tasks found.", "0", "L", false)
	}
	for _, t := range tasks {
		pdf.SetFont("Arial", "B", 10)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("#%d %s", t.ID, t.Title)), "0", "L", false)
		pdf.SetFont("Arial", "", 10)
		line := fmt.Sprintf("Status: %s   Priority: %s   Due: %s   Created: %s", t.Status, t.Priority, t.DueDate, t.CreatedAt)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
		if t.Description != "" {
			pdf.MultiCell(0, 6, tr(t.Description), "0", "L", false)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
