package ridership

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/korean"
)

const header = "사용일자,노선명,역명,승차총승객수,하차총승객수,등록일자\n"

func csvFile(lines ...string) []byte {
	return []byte(header + strings.Join(lines, "\n") + "\n")
}

func cp949(t *testing.T, s string) []byte {
	t.Helper()
	b, err := korean.EUCKR.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encode cp949: %v", err)
	}
	return b
}

func TestDecode(t *testing.T) {
	text, enc, err := Decode([]byte("\xEF\xBB\xBF날짜,노선\n"))
	if err != nil {
		t.Fatalf("utf-8: %v", err)
	}
	if enc != UTF8 || text != "날짜,노선\n" {
		t.Errorf("utf-8: got %q (%s)", text, enc)
	}

	text, enc, err = Decode(cp949(t, "사용일자,노선명\n20230101,2호선\n"))
	if err != nil {
		t.Fatalf("cp949: %v", err)
	}
	if enc != CP949 || text != "사용일자,노선명\n20230101,2호선\n" {
		t.Errorf("cp949: got %q (%s)", text, enc)
	}
}

func TestDecodeGarbage(t *testing.T) {
	// 0xFF is not a lead byte in either encoding.
	_, _, err := Decode([]byte{'a', 0xFF, 0xFF, 'b'})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("got %v, want *DecodeError", err)
	}
	if !errors.Is(err, ErrUndecodable) {
		t.Errorf("got %v, want ErrUndecodable", err)
	}
}

func TestParseRows(t *testing.T) {
	text := header +
		"20230101,2호선,강남,\"1,200\",1100,20230104\n" +
		"20230102,2호선,역삼,300.0,250\n"
	got, err := ParseRows(text)
	if err != nil {
		t.Fatal(err)
	}
	want := []RawRow{
		{UsageDate: "20230101", Line: "2호선", Station: "강남", Boarding: 1200, Alighting: 1100},
		{UsageDate: "20230102", Line: "2호선", Station: "역삼", Boarding: 300, Alighting: 250},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseRowsIgnoresHeaderText(t *testing.T) {
	got, err := ParseRows("a,b,c,d,e\n2022,1호선,서울역,5,6\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Station != "서울역" || got[0].Alighting != 6 {
		t.Errorf("got %+v", got)
	}
}

func TestParseRowsErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
		want error
	}{
		{"empty file", "", 0, ErrNoHeader},
		{"short row", header + "20230101,2호선,강남,1\n", 2, ErrShortRow},
		{"non-numeric boarding", header + "20230101,2호선,강남,abc,1\n", 2, ErrBadCount},
		{"negative alighting", header + "20230101,2호선,강남,1,-4\n", 2, ErrBadCount},
		{"fractional count", header + "20230101,2호선,강남,1.5,4\n", 2, ErrBadCount},
		{"empty count", header + "20230101,2호선,강남,1,4\n20230102,2호선,강남,,4\n", 3, ErrBadCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseRows(tt.text)
			if rows != nil {
				t.Errorf("got %d rows, want none", len(rows))
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("got %v, want *ParseError", err)
			}
			if pe.Line != tt.line {
				t.Errorf("line = %d, want %d", pe.Line, tt.line)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseRowsHeaderOnly(t *testing.T) {
	rows, err := ParseRows(header)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestYearOf(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"20230101", "2023"},
		{"2023-01-01", "2023"},
		{"202", "202"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := YearOf(tt.input); got != tt.want {
			t.Errorf("YearOf(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func dates(ds ...string) []RawRow {
	rows := make([]RawRow, len(ds))
	for i, d := range ds {
		rows[i] = RawRow{UsageDate: d}
	}
	return rows
}

func TestInferYear(t *testing.T) {
	tests := []struct {
		name string
		rows []RawRow
		want string
	}{
		{"uniform", dates("20230101", "20230102"), "2023"},
		{"stray rows", dates("20221231", "20230101", "20230102", "20240101"), "2023"},
		{"tie goes to first seen", dates("20240101", "20230101", "20230102", "20240102"), "2024"},
		{"single", dates("20190101"), "2019"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InferYear(tt.rows)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			again, _ := InferYear(tt.rows)
			if again != got {
				t.Errorf("second call = %q, first = %q", again, got)
			}
		})
	}
}

func TestInferYearEmpty(t *testing.T) {
	_, err := InferYear(nil)
	var ee *EmptyDatasetError
	if !errors.As(err, &ee) || !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("got %v, want *EmptyDatasetError", err)
	}
}
