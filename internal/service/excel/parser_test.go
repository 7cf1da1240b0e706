package excel_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"gradesheets/internal/model"
	"gradesheets/internal/service/excel"
)

func buildRosterWorkbook(t *testing.T, cells map[string]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	for cell, v := range cells {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("SetCellValue %s failed: %v", cell, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf
}

func TestReadRoster(t *testing.T) {
	buf := buildRosterWorkbook(t, map[string]interface{}{
		"A1": "S-number",
		"A2": 1234567,
		"A3": 2345678,
		"A5": "x999",
		"A6": 3456789.0,
		"B2": "ignored",
	})

	roster, err := excel.ReadRoster(buf)
	if err != nil {
		t.Fatalf("ReadRoster failed: %v", err)
	}
	want := model.RosterOf("1234567", "2345678", "x999", "3456789")
	if diff := cmp.Diff(want, roster); diff != "" {
		t.Fatalf("roster mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRoster_KeepsDuplicatesAndOrder(t *testing.T) {
	buf := buildRosterWorkbook(t, map[string]interface{}{
		"A1": "id",
		"A2": 3,
		"A3": 1,
		"A4": 3,
	})

	roster, err := excel.ReadRoster(buf)
	if err != nil {
		t.Fatalf("ReadRoster failed: %v", err)
	}
	if diff := cmp.Diff(model.RosterOf("3", "1", "3"), roster); diff != "" {
		t.Fatalf("roster mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRoster_Malformed(t *testing.T) {
	cases := map[string]func(t *testing.T) *bytes.Buffer{
		"not a workbook": func(t *testing.T) *bytes.Buffer {
			return bytes.NewBufferString("student,number\n1,2\n")
		},
		"header only": func(t *testing.T) *bytes.Buffer {
			return buildRosterWorkbook(t, map[string]interface{}{"A1": "S-number"})
		},
		"blank column": func(t *testing.T) *bytes.Buffer {
			return buildRosterWorkbook(t, map[string]interface{}{"A1": "S-number", "B2": 1})
		},
	}
	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := excel.ReadRoster(build(t))
			if !errors.Is(err, excel.ErrMalformedRoster) {
				t.Fatalf("err=%v, want ErrMalformedRoster", err)
			}
			if !strings.HasPrefix(err.Error(), "upload ") {
				t.Fatalf("err=%v, want upload file id prefix", err)
			}
		})
	}
}

func TestParser_FileID(t *testing.T) {
	a, b := excel.NewParser(), excel.NewParser()
	if a.GetFileID() == "" || a.GetFileID() == b.GetFileID() {
		t.Fatalf("file ids should be unique: %q %q", a.GetFileID(), b.GetFileID())
	}
	if _, err := a.Roster(); err == nil || !strings.Contains(err.Error(), "no file loaded") {
		t.Fatalf("Roster without file err=%v", err)
	}
}
