package features

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "dataprep/internal/errors"
	"dataprep/internal/shared/missing"
)

const (
	dateColumn  = "date"
	closeColumn = "close"
)

// dateFormats are tried in order
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// LoadPriceSeries reads a daily price CSV with a header row. Date and Close
// are required; any other columns are carried through as text.
func LoadPriceSeries(r io.Reader) (*Series, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewParsingError("price CSV has no header", nil)
	}
	if err != nil {
		return nil, csvError(err)
	}

	s := &Series{Header: header, dateCol: -1, closeCol: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case dateColumn:
			if s.dateCol < 0 {
				s.dateCol = i
			}
		case closeColumn:
			if s.closeCol < 0 {
				s.closeCol = i
			}
		}
	}
	if s.dateCol < 0 {
		return nil, apperrors.NewMissingColumnError("Date")
	}
	if s.closeCol < 0 {
		return nil, apperrors.NewMissingColumnError("Close")
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		line, _ := reader.FieldPos(0)

		bar, err := parseBar(record, s.dateCol, s.closeCol, line)
		if err != nil {
			return nil, err
		}
		bar.Index = len(s.Bars)
		s.Bars = append(s.Bars, bar)
	}

	return s, nil
}

func parseBar(record []string, dateCol, closeCol, line int) (Bar, error) {
	bar := Bar{Raw: record, Close: math.NaN()}

	if dateStr := strings.TrimSpace(record[dateCol]); !missing.Is(dateStr) {
		date, err := parseDate(dateStr)
		if err != nil {
			return Bar{}, apperrors.NewParsingError(fmt.Sprintf("parse date (line %d)", line), err).
				WithContext("line", line).
				WithContext("value", dateStr)
		}
		bar.Date = date
		bar.HasDate = true
	}

	if closeStr := strings.TrimSpace(record[closeCol]); !missing.Is(closeStr) {
		v, err := strconv.ParseFloat(closeStr, 64)
		if err != nil {
			return Bar{}, apperrors.NewParsingError(fmt.Sprintf("parse close (line %d)", line), err).
				WithContext("line", line).
				WithContext("value", closeStr)
		}
		bar.Close = v
	}

	return bar, nil
}

// parseDate attempts to parse date strings in multiple formats
func parseDate(dateStr string) (time.Time, error) {
	for _, format := range dateFormats {
		if date, err := time.Parse(format, dateStr); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

func csvError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return apperrors.NewParsingError("malformed price CSV", err).
			WithContext("line", perr.Line)
	}
	return apperrors.NewParsingError("failed to read price CSV", err)
}
