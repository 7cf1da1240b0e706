package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gradesheets/internal/config"
	"gradesheets/internal/exporter"
	"gradesheets/internal/model"
	"gradesheets/internal/service/docx"
	"gradesheets/internal/service/excel"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate grading sheets and range labels from a roster file",
		Example: `  gradesheets generate --roster roster.xlsx --course MATH101 --exam Midterm \
      --subq 2,0,3 --graders 4 --out ./out`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
	cmd.Flags().String("roster", "", "roster workbook (.xlsx)")
	cmd.Flags().String("course", "", "course name")
	cmd.Flags().String("exam", "", "exam name")
	cmd.Flags().String("subq", "", "sub-question count per question, comma separated")
	cmd.Flags().Int("graders", 1, "number of graders")
	cmd.Flags().String("out", ".", "output directory")
	cmd.Flags().String("config", "", "config file for label font settings")
	cmd.Flags().BoolP("verbose", "v", false, "print the generated range labels")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	rosterPath, _ := cmd.Flags().GetString("roster")
	course, _ := cmd.Flags().GetString("course")
	exam, _ := cmd.Flags().GetString("exam")
	subq, _ := cmd.Flags().GetString("subq")
	graders, _ := cmd.Flags().GetInt("graders")
	outDir, _ := cmd.Flags().GetString("out")
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	counts, err := parseCounts(subq)
	if err != nil {
		return err
	}

	run := model.GradingRun{
		Roster:       model.None[model.Roster](),
		CourseName:   model.Text(course),
		ExamName:     model.Text(exam),
		SubQuestions: counts,
		Graders:      graders,
	}
	if rosterPath != "" {
		roster, err := readRosterFile(rosterPath)
		if err != nil {
			return err
		}
		run.Roster = model.Some(roster)
	}
	if missing := run.Missing(); len(missing) > 0 {
		return fmt.Errorf("missing required input: %s", strings.Join(missing, ", "))
	}

	cfg, _, err := config.LoadConfigWithInfo(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	exp := exporter.NewExporter(docx.LabelStyle{Font: cfg.Labels.Font, SizePt: cfg.Labels.SizePt})

	bundle, err := exp.Export(exporter.ExportOptions{Run: run})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, f := range []struct {
		name string
		data []byte
	}{
		{bundle.SheetsName, bundle.Sheets},
		{bundle.LabelsName, bundle.LabelsDoc},
	} {
		path := filepath.Join(outDir, f.name)
		if err := os.WriteFile(path, f.data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
		fmt.Fprintln(out, path)
	}

	if verbose {
		labels, err := docx.ReadLabels(bytes.NewReader(bundle.LabelsDoc), int64(len(bundle.LabelsDoc)))
		if err != nil {
			return err
		}
		for _, l := range labels {
			fmt.Fprintln(out, "  "+l)
		}
	}
	return nil
}

func readRosterFile(path string) (model.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()
	return excel.ReadRoster(f)
}

func parseCounts(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	counts := make([]int, 0, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("--subq entry %d: %q is not a whole number", i+1, p)
		}
		counts = append(counts, n)
	}
	return counts, nil
}
