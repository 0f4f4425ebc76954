package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"programctl/internal/api"
	"programctl/internal/program"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputYAML = "yaml"
	outputJSON = "json"
)

func checkOutputFormat(format string) error {
	switch format {
	case outputText, outputYAML, outputJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, yaml or json)", format)
	}
}

// listOutput is the structured form of a list answer.
type listOutput struct {
	TotalCount int               `json:"totalCount" yaml:"totalCount"`
	Items      []program.Program `json:"items" yaml:"items"`
}

func printPage(w io.Writer, format string, page api.Page) error {
	switch format {
	case outputYAML:
		return printYAML(w, listOutput{TotalCount: page.TotalCount, Items: page.Items})
	case outputJSON:
		return printJSON(w, listOutput{TotalCount: page.TotalCount, Items: page.Items})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "START", "END", "TAGS", "OWNER")
	for _, p := range page.Items {
		t.Row(strconv.FormatInt(p.ID, 10), p.Title, p.StartDate, p.EndDate, p.Tags, p.OwnerLogin())
	}
	_, err := fmt.Fprintf(w, "%s\n%d of %d Programs\n", t.Render(), len(page.Items), page.TotalCount)
	return err
}

func printProgram(w io.Writer, format string, p program.Program) error {
	switch format {
	case outputYAML:
		return printYAML(w, p)
	case outputJSON:
		return printJSON(w, p)
	}

	cover := ""
	if p.HasCover() {
		cover = strings.TrimPrefix(p.CoverContentType+", "+p.CoverSize(), ", ")
	}
	rows := [][2]string{
		{"ID", strconv.FormatInt(p.ID, 10)},
		{"Cover", cover},
		{"Title", p.Title},
		{"Description", p.Description},
		{"Start Date", p.StartDate},
		{"End Date", p.EndDate},
		{"Tags", p.Tags},
		{"User", p.OwnerLogin()},
	}
	label := lipgloss.NewStyle().Width(13)
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, label.Render(r[0])+r[1]); err != nil {
			return err
		}
	}
	return nil
}

func printYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
