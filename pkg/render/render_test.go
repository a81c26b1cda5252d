package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/user/vascope/pkg/engine"
	"github.com/user/vascope/pkg/testutil"
)

func sampleRows() []engine.AggregateRow {
	return []engine.AggregateRow{
		{Name: "Open Relay", Risk: "Critical", TotalCount: 1, Host: "h2", PerHostCount: 1},
		{Name: "Weak TLS", Risk: "High", TotalCount: 3, Host: "h1", PerHostCount: 2},
	}
}

func TestWriteReportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "summary.csv")

	require.NoError(t, WriteReportCSV(path, sampleRows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Name,Risk,Total_Count,Host,Per_Host_Count\n"+
			"Open Relay,Critical,1,h2,1\n"+
			"Weak TLS,High,3,h1,2\n",
		string(data))
}

func TestWriteReportCSV_EmptyKeepsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")

	require.NoError(t, WriteReportCSV(path, []engine.AggregateRow{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name,Risk,Total_Count,Host,Per_Host_Count\n", string(data))
}

func TestWriteFileAtomic_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.csv")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	boom := errors.New("boom")
	err := writeFileAtomic(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

var periodHeader = []string{"Plugin ID", "Name", "Risk", "Host", "Protocol", "Port"}

func currentFindings() []engine.Finding {
	return []engine.Finding{
		{PluginID: "P1", Name: "Weak TLS", Risk: "High", Host: "H1", Protocol: "TCP", Port: "80", Row: 2},
		{PluginID: "P1", Name: "Weak TLS", Risk: "High", Host: "H1", Protocol: "TCP", Port: "80", Row: 3},
		{PluginID: "P2", Name: "Open Relay", Risk: "Critical", Host: "H1", Protocol: "TCP", Port: "443", Row: 4},
		{PluginID: "", Name: "Banner", Risk: "None", Host: "H1", Protocol: "TCP", Port: "22", Row: 5},
	}
}

func writeCurrent(t *testing.T, dir string, extra ...testutil.SheetData) string {
	t.Helper()
	sheets := append([]testutil.SheetData{{Name: "web", Rows: [][]string{
		periodHeader,
		{"P1", "Weak TLS", "High", "H1", "TCP", "80"},
		{"P1", "Weak TLS", "High", "H1", "TCP", "80"},
		{"P2", "Open Relay", "Critical", "H1", "TCP", "443"},
		{"", "Banner", "None", "H1", "TCP", "22"},
	}}}, extra...)
	return testutil.WriteWorkbook(t, dir, "VA_Q4.xlsx", sheets...)
}

func classifyWeb() (SheetResult, engine.Summary) {
	prior := engine.NewPriorSet([]engine.Finding{
		{PluginID: "p1", Host: "h1", Protocol: "tcp", Port: "80"},
	})
	c := engine.ClassifyDomain("web", currentFindings(), prior)
	return SheetResult{Classification: c, NameCol: 2}, engine.BuildSummary([]engine.DomainCounts{c.Counts})
}

func cellStyle(t *testing.T, f *excelize.File, sheet, cell string) *excelize.Style {
	t.Helper()
	id, err := f.GetCellStyle(sheet, cell)
	require.NoError(t, err)
	st, err := f.GetStyle(id)
	require.NoError(t, err)
	return st
}

func assertHeaderStyle(t *testing.T, f *excelize.File, cell string) {
	t.Helper()
	st := cellStyle(t, f, SummarySheet, cell)
	assert.Equal(t, []string{headerColor}, st.Fill.Color, cell)
	require.NotNil(t, st.Font, cell)
	assert.True(t, st.Font.Bold, cell)
	assert.Equal(t, "FFFFFF", st.Font.Color, cell)
	require.NotNil(t, st.Alignment, cell)
	assert.Equal(t, "center", st.Alignment.Horizontal, cell)
	assert.Equal(t, "center", st.Alignment.Vertical, cell)
}

func TestAnnotateWorkbook_DomainSheet(t *testing.T) {
	dir := t.TempDir()
	src := writeCurrent(t, dir, testutil.SheetData{Name: "notes", Rows: [][]string{{"Comment"}, {"keep me"}}})
	dst := filepath.Join(dir, "output", "VA_New_Issues_Final.xlsx")
	res, summary := classifyWeb()

	require.NoError(t, AnnotateWorkbook(src, dst, []SheetResult{res}, summary))

	assert.Equal(t, []string{SummarySheet, "web", "notes"}, testutil.SheetNames(t, dst))

	rows := testutil.ReadSheet(t, dst, "web")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Plugin ID", "Name", "Status", "Risk", "Host", "Protocol", "Port"}, rows[0])
	assert.Equal(t, []string{"P1", "Weak TLS", "Existing", "High", "H1", "TCP", "80"}, rows[1])
	assert.Equal(t, []string{"P2", "Open Relay", "New Issue", "Critical", "H1", "TCP", "443"}, rows[2])

	assert.Equal(t, [][]string{{"Comment"}, {"keep me"}}, testutil.ReadSheet(t, dst, "notes"))

	f, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{existingColor}, cellStyle(t, f, "web", "C2").Fill.Color)
	assert.Equal(t, []string{newColor}, cellStyle(t, f, "web", "C3").Fill.Color)
	assert.Empty(t, cellStyle(t, f, "web", "B2").Fill.Color)

	// the input workbook is left as it was
	assert.Len(t, testutil.ReadSheet(t, src, "web"), 5)
	assert.Equal(t, []string{"web", "notes"}, testutil.SheetNames(t, src))
}

func TestAnnotateWorkbook_SummaryLayout(t *testing.T) {
	dir := t.TempDir()
	src := writeCurrent(t, dir)
	dst := filepath.Join(dir, "final.xlsx")
	res, summary := classifyWeb()

	require.NoError(t, AnnotateWorkbook(src, dst, []SheetResult{res}, summary))

	rows := testutil.ReadSheet(t, dst, SummarySheet)
	require.GreaterOrEqual(t, len(rows), 19)

	assert.Equal(t, []string{"", "New Vulnerability Issue Summary"}, rows[1])
	assert.Equal(t, []string{"", "Domain", "New Issue", "Existing Issue", "Total Issue"}, rows[2])
	assert.Equal(t, []string{"", "web", "1", "1", "2"}, rows[3])
	assert.Equal(t, []string{"", "Total", "1", "1", "2"}, rows[4])

	assert.Equal(t, []string{"", "New Issues Risk Summary"}, rows[8])
	assert.Equal(t, []string{"", "Domain", "CRITICAL", "HIGH", "MEDIUM", "LOW", "Total"}, rows[9])
	assert.Equal(t, []string{"", "web", "1", "-", "-", "-", "1"}, rows[10])
	assert.Equal(t, []string{"", "Total", "1", "-", "-", "-", "1"}, rows[11])

	assert.Equal(t, []string{"", "Existing Issues Risk Summary"}, rows[15])
	assert.Equal(t, []string{"", "web", "-", "1", "-", "-", "1"}, rows[17])
	assert.Equal(t, []string{"", "Total", "-", "1", "-", "-", "1"}, rows[18])

	f, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, 0, f.GetActiveSheetIndex())
	assert.Equal(t, SummarySheet, f.GetSheetName(0))

	// titles, headers and total rows of all three tables
	for _, cell := range []string{"B2", "B3", "E3", "B5", "C5", "B9", "G10", "G12", "B16", "B19"} {
		assertHeaderStyle(t, f, cell)
	}
	assert.Empty(t, cellStyle(t, f, SummarySheet, "C4").Fill.Color)

	width, err := f.GetColWidth(SummarySheet, "B")
	require.NoError(t, err)
	assert.Equal(t, 35.0, width)
	for _, col := range []string{"C", "D", "E", "F", "G"} {
		width, err := f.GetColWidth(SummarySheet, col)
		require.NoError(t, err)
		assert.Equal(t, 15.0, width, col)
	}
}

func TestAnnotateWorkbook_ReplacesExistingSummary(t *testing.T) {
	dir := t.TempDir()
	src := writeCurrent(t, dir, testutil.SheetData{Name: SummarySheet, Rows: [][]string{{"stale"}}})
	dst := filepath.Join(dir, "final.xlsx")
	res, summary := classifyWeb()

	require.NoError(t, AnnotateWorkbook(src, dst, []SheetResult{res}, summary))

	assert.Equal(t, []string{SummarySheet, "web"}, testutil.SheetNames(t, dst))
	rows := testutil.ReadSheet(t, dst, SummarySheet)
	require.NotEmpty(t, rows)
	assert.NotContains(t, rows[0], "stale")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	f, err = ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestRenderers(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	_, summary := classifyWeb()

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, New(FormatJSON).Report(&buf, sampleRows()))

		var got []engine.AggregateRow
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, sampleRows(), got)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, New(FormatYAML).Summary(&buf, summary))

		var got engine.Summary
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, summary.Scope.Total, got.Scope.Total)
		assert.Equal(t, "Existing Issues Risk Summary", got.Existing.Title)
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		r := New(FormatTable)
		require.NoError(t, r.Report(&buf, sampleRows()))
		require.NoError(t, r.Summary(&buf, summary))

		out := buf.String()
		assert.Contains(t, out, "Per_Host_Count")
		assert.Contains(t, out, "Weak TLS")
		assert.Contains(t, out, "New Vulnerability Issue Summary")
		assert.Contains(t, out, "CRITICAL")
	})
}
