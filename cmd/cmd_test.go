package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/zalepa/ridership/ridership"
)

func TestReorderArgs(t *testing.T) {
	tests := []struct {
		input []string
		want  []string
	}{
		{
			[]string{"a.csv", "b.csv", "--line", "2호선", "--station", "강남"},
			[]string{"--line", "2호선", "--station", "강남", "a.csv", "b.csv"},
		},
		{
			[]string{"--quiet", "a.csv", "--png=out.png"},
			[]string{"--quiet", "--png=out.png", "a.csv"},
		},
		{
			[]string{"--line", "2호선", "--", "-odd.csv"},
			[]string{"--line", "2호선", "-odd.csv"},
		},
	}
	for _, tt := range tests {
		got := reorderArgs(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("reorderArgs(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		input []float64
		want  string
	}{
		{nil, ""},
		{[]float64{1, 8}, "▁█"},
		{[]float64{5, 5, 5}, "▅▅▅"},
		{[]float64{0, 50, 100}, "▁▄█"},
	}
	for _, tt := range tests {
		if got := sparkline(tt.input); got != tt.want {
			t.Errorf("sparkline(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, "2호선", "강남", ridership.ComparisonTable{
		{Year: "2022", Boarding: 1000, Alighting: 900},
		{Year: "2023", Boarding: 1500000, Alighting: 0},
	})
	out := buf.String()

	for _, want := range []string{"2호선 강남역", "2022", "1,000", "1,500,000", "Trend: boarding ▁█   alighting █▁"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLoadInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.csv", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}
	single := filepath.Join(t.TempDir(), "single.csv")
	if err := os.WriteFile(single, []byte("single"), 0644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2024.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("remote"))
	}))
	defer srv.Close()

	uploads, err := loadInputs([]string{single, dir, srv.URL + "/data/2024.csv"})
	if err != nil {
		t.Fatal(err)
	}
	want := []ridership.Upload{
		{Name: "single.csv", Data: []byte("single")},
		{Name: "a.csv", Data: []byte("a.csv")},
		{Name: "b.csv", Data: []byte("b.csv")},
		{Name: "2024.csv", Data: []byte("remote")},
	}
	if !reflect.DeepEqual(uploads, want) {
		t.Errorf("got %+v, want %+v", uploads, want)
	}

	if _, err := loadInputs([]string{srv.URL + "/missing.csv"}); err == nil {
		t.Error("want error for 404 URL")
	}
	if _, err := loadInputs([]string{filepath.Join(dir, "absent.csv")}); err == nil {
		t.Error("want error for missing file")
	}
}
