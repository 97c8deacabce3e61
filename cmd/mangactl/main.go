// cmd/mangactl/main.go
//
// mangactl is a small terminal companion for a running MangaStudioMCP
// server: deadline reports, export downloads and session resets without
// opening the dashboard.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Corphon/MangaStudioMCP/internal/models"
)

// Color definitions for terminal output.
var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warningColor = color.New(color.FgYellow)
	headerColor  = color.New(color.FgMagenta, color.Bold)
)

// envelope is the server's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type client struct {
	baseURL string
	http    *http.Client
}

func (c *client) get(path string, out interface{}) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()
	return decodeEnvelope(resp, out)
}

func (c *client) post(path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()
	return decodeEnvelope(resp, out)
}

func decodeEnvelope(resp *http.Response, out interface{}) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("server error: %s", env.Error)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	if out != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func main() {
	var serverURL string

	rootCmd := &cobra.Command{
		Use:   "mangactl",
		Short: "Terminal companion for a running MangaStudioMCP server",
		Long: `mangactl talks to a running MangaStudioMCP server over its HTTP API.

It prints deadline and workload reports, downloads JSON exports and
resets the in-memory session.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "Server base URL")

	newClient := func() *client {
		return &client{
			baseURL: strings.TrimRight(serverURL, "/"),
			http:    &http.Client{Timeout: 30 * time.Second},
		}
	}

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print a deadline and workload report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(newClient())
		},
	}

	var outFile string
	var categories []string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Download an export document as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(newClient(), outFile, categories)
		},
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "Output file (default: timestamped name)")
	exportCmd.Flags().StringSliceVar(&categories, "categories", nil,
		"Categories to export (default: all): "+strings.Join(models.ExportCategories, ", "))

	var yes bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the server's in-memory session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm("This wipes every project, idea and evaluation on the server. Continue? [y/N] ") {
				infoColor.Println("aborted")
				return nil
			}
			if err := newClient().post("/api/session/reset", struct{}{}, nil); err != nil {
				return err
			}
			successColor.Println("✓ session reset")
			return nil
		},
	}
	resetCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(reportCmd, exportCmd, resetCmd)

	if err := rootCmd.Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}

func runReport(c *client) error {
	var doc models.ExportDocument
	if err := c.get("/api/export?categories=projects,all_tasks", &doc); err != nil {
		return err
	}

	headerColor.Println("=== Manga Studio Report ===")
	fmt.Printf("Projects: %d   Tasks: %d\n\n", len(doc.Projects), len(doc.AllTasks))

	today := models.NewDate(time.Now())
	printDeadlines(doc.AllTasks, today)
	printWorkload(doc.AllTasks)
	return nil
}

func printDeadlines(tasks []models.Task, today models.Date) {
	headerColor.Println("-- Deadlines --")
	var overdue, dueSoon []models.Task
	for _, t := range tasks {
		if t.Status == models.TaskDone || t.EndDate.IsZero() {
			continue
		}
		daysLeft := t.EndDate.DaysUntil(today)
		switch {
		case daysLeft < 0:
			overdue = append(overdue, t)
		case daysLeft <= 7:
			dueSoon = append(dueSoon, t)
		}
	}

	if len(overdue) == 0 && len(dueSoon) == 0 {
		successColor.Println("no overdue or due-soon tasks")
		fmt.Println()
		return
	}
	for _, t := range overdue {
		errorColor.Printf("OVERDUE  %-30s  %s  (%s, due %s)\n",
			t.Name, t.Assignee, t.Status, t.EndDate)
	}
	for _, t := range dueSoon {
		warningColor.Printf("DUE SOON %-30s  %s  (%s, due %s)\n",
			t.Name, t.Assignee, t.Status, t.EndDate)
	}
	fmt.Println()
}

func printWorkload(tasks []models.Task) {
	headerColor.Println("-- Workload (open tasks) --")
	counts := map[string]int{}
	for _, t := range tasks {
		if t.Status == models.TaskDone {
			continue
		}
		assignee := t.Assignee
		if assignee == "" {
			assignee = "(unassigned)"
		}
		counts[assignee]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-20s %s (%d)\n", name, strings.Repeat("#", counts[name]), counts[name])
	}
	fmt.Println()
}

func runExport(c *client, outFile string, categories []string) error {
	path := "/api/export"
	if len(categories) > 0 {
		path += "?categories=" + strings.Join(categories, ",")
	}

	var doc json.RawMessage
	if err := c.get(path, &doc); err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc, "", "  "); err != nil {
		return err
	}

	if outFile == "" {
		outFile = fmt.Sprintf("manga_studio_export_%s.json", time.Now().Format("20060102_150405"))
	}
	if err := os.WriteFile(outFile, pretty.Bytes(), 0644); err != nil {
		return err
	}
	successColor.Printf("✓ export written to %s (%d bytes)\n", outFile, pretty.Len())
	return nil
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
