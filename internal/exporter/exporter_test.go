package exporter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"gradesheets/internal/model"
	"gradesheets/internal/service/archive"
	"gradesheets/internal/service/docx"
	"gradesheets/internal/service/grading"
)

func newRun(subq []int, graders int) model.GradingRun {
	return model.GradingRun{
		Roster:       model.Some(model.RosterOf("1234567", "2345678", "3456789", "4567890", "5678901")),
		CourseName:   model.Text("ANA"),
		ExamName:     model.Text("Midterm"),
		SubQuestions: subq,
		Graders:      graders,
	}
}

func TestExport(t *testing.T) {
	var events []ProgressEvent
	exp := NewExporter(docx.DefaultLabelStyle())
	bundle, err := exp.Export(ExportOptions{
		Run:      newRun([]int{2, 0}, 2),
		Progress: func(p ProgressEvent) { events = append(events, p) },
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if bundle.SheetsName != "ANA_Midterm_grading_sheets.zip" {
		t.Fatalf("SheetsName=%q", bundle.SheetsName)
	}
	if bundle.LabelsName != "ANA_Midterm_grading_labels.docx" {
		t.Fatalf("LabelsName=%q", bundle.LabelsName)
	}

	entries, err := archive.Entries(bundle.Sheets)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "grading_sheet_1.xlsx" || entries[1].Name != "grading_sheet_2.xlsx" {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(entries[0].Data))
	if err != nil {
		t.Fatalf("open sheet 1: %v", err)
	}
	defer wb.Close()
	rows, err := wb.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	want := [][]string{{"Identifier", "1a", "1b", "2"}, {"1234567"}, {"2345678"}, {"3456789"}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("sheet 1 rows (-want +got):\n%s", diff)
	}

	labels, err := docx.ReadLabels(bytes.NewReader(bundle.LabelsDoc), int64(len(bundle.LabelsDoc)))
	if err != nil {
		t.Fatalf("ReadLabels failed: %v", err)
	}
	if diff := cmp.Diff([]string{"1. S1234567 - S3456789", "2. S4567890 - S5678901"}, labels); diff != "" {
		t.Fatalf("labels (-want +got):\n%s", diff)
	}

	if len(events) == 0 || events[len(events)-1].Percent != 100 {
		t.Fatalf("progress did not finish: %+v", events)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Percent < events[i-1].Percent {
			t.Fatalf("progress went backwards: %+v", events)
		}
	}
}

func TestExport_MoreGradersThanStudents(t *testing.T) {
	bundle, err := NewExporter(docx.DefaultLabelStyle()).Export(ExportOptions{Run: newRun(nil, 7)})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	entries, err := archive.Entries(bundle.Sheets)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 7 {
		t.Fatalf("entries=%d, want 7", len(entries))
	}
	if got := bundle.Groups[6].Len(); got != 0 {
		t.Fatalf("last group size=%d, want 0", got)
	}
}

func TestExport_Errors(t *testing.T) {
	exp := NewExporter(docx.DefaultLabelStyle())

	incomplete := newRun(nil, 1)
	incomplete.ExamName = model.Text("   ")
	if _, err := exp.Export(ExportOptions{Run: incomplete}); !errors.Is(err, ErrRunIncomplete) {
		t.Fatalf("incomplete run err=%v", err)
	}

	if b, err := exp.Export(ExportOptions{Run: newRun([]int{27}, 1)}); !errors.Is(err, grading.ErrLabelRangeExceeded) || b != nil {
		t.Fatalf("label range err=%v bundle=%v", err, b)
	}

	if b, err := exp.Export(ExportOptions{Run: newRun(nil, 0)}); !errors.Is(err, grading.ErrInvalidGroupCount) || b != nil {
		t.Fatalf("group count err=%v bundle=%v", err, b)
	}
}

func TestReportProgress_Clamps(t *testing.T) {
	var got []int
	fn := func(p ProgressEvent) { got = append(got, p.Percent) }
	reportProgress(fn, -5, "a")
	reportProgress(fn, 150, "b")
	reportProgress(nil, 50, "ignored")
	if diff := cmp.Diff([]int{0, 100}, got); diff != "" {
		t.Fatalf("clamped (-want +got):\n%s", diff)
	}
	if sheetPercent(0, 0) != sheetsEndPercent {
		t.Fatalf("sheetPercent with no sheets")
	}
}
