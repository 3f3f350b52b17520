package gateway

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pms-data-checker/internal/domain"
)

// Column aliases accepted for the reference dataset. Header names vary by
// source system, so they are mapped, not assumed literal. Matching is
// case-insensitive and separator-insensitive ("Rooms Sold" == "rooms_sold").
var (
	dateAliases    = []string{"occupancy_date", "date", "business_date", "stay_date"}
	roomsAliases   = []string{"rooms_sold", "rooms", "total_rooms_sold"}
	revenueAliases = []string{"net_revenue", "revenue", "room_revenue", "net_room_revenue"}
)

// Date formats seen across reference sources.
var referenceDateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006", "02.01.2006"}

// CSVReferenceRepository implements the ReferenceRepository interface for
// delimited text files.
type CSVReferenceRepository struct{}

// NewCSVReferenceRepository creates a new repository instance.
func NewCSVReferenceRepository() *CSVReferenceRepository {
	return &CSVReferenceRepository{}
}

// GetReferenceRecords reads and parses the reference dataset. Malformed
// headers or cells fail with a ParseError naming the row and field.
func (r *CSVReferenceRepository) GetReferenceRecords(ctx context.Context, path string) ([]domain.ReferenceRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference file %s: %w", path, err)
	}
	source := filepath.Base(path)

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = sniffDelimiter(raw)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	dateCol, err := findColumn(source, header, "occupancy date", dateAliases)
	if err != nil {
		return nil, err
	}
	roomsCol, err := findColumn(source, header, "rooms sold", roomsAliases)
	if err != nil {
		return nil, err
	}
	revenueCol, err := findColumn(source, header, "net revenue", revenueAliases)
	if err != nil {
		return nil, err
	}

	var records []domain.ReferenceRecord
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}

		date, err := parseReferenceDate(record[dateCol])
		if err != nil {
			return nil, &domain.ParseError{Source: source, Row: row, Field: "occupancy date", Reason: err.Error()}
		}
		rooms, err := parseRooms(record[roomsCol])
		if err != nil {
			return nil, &domain.ParseError{Source: source, Row: row, Field: "rooms sold", Reason: err.Error()}
		}
		revenue, err := parseRevenue(record[revenueCol])
		if err != nil {
			return nil, &domain.ParseError{Source: source, Row: row, Field: "net revenue", Reason: err.Error()}
		}

		records = append(records, domain.ReferenceRecord{
			OccupancyDate: date,
			RoomsSold:     rooms,
			NetRevenue:    revenue,
			Source:        source,
		})
	}
	return records, nil
}

// sniffDelimiter inspects the header line; semicolon and tab separated
// exports are common alongside plain CSV.
func sniffDelimiter(raw []byte) rune {
	line := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i]
	}
	if !bytes.ContainsRune(line, ',') {
		if bytes.ContainsRune(line, ';') {
			return ';'
		}
		if bytes.ContainsRune(line, '\t') {
			return '\t'
		}
	}
	return ','
}

func findColumn(source string, header []string, field string, aliases []string) (int, error) {
	for i, name := range header {
		normalized := normalizeHeader(name)
		for _, alias := range aliases {
			if normalized == alias {
				return i, nil
			}
		}
	}
	return 0, &domain.ParseError{
		Source: source,
		Row:    1,
		Field:  field,
		Reason: fmt.Sprintf("no column matches any of [%s]", strings.Join(aliases, ", ")),
	}
}

func normalizeHeader(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, "\ufeff") // Excel exports like their BOMs
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

func parseReferenceDate(value string) (domain.Date, error) {
	v := strings.TrimSpace(value)
	for _, layout := range referenceDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return domain.DateOf(t.UTC()), nil
		}
	}
	return domain.Date{}, fmt.Errorf("unrecognized date %q", v)
}

func parseRooms(value string) (int64, error) {
	v := strings.TrimSpace(value)
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse rooms sold %q", v)
	}
	return n, nil
}

func parseRevenue(value string) (decimal.Decimal, error) {
	v := strings.TrimSpace(value)
	v = strings.TrimPrefix(v, "$")
	v = strings.ReplaceAll(v, ",", "")
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("could not parse net revenue %q", value)
	}
	return d, nil
}
