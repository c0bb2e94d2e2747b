// Package codec flattens nested crop records into flat CSV rows and
// reconstructs them on import.
//
// The column schema is dynamic: after the five fixed columns, every
// input kind present anywhere in the record set contributes four
// prefixed columns. A record lacking a kind leaves those cells empty,
// and an empty {kind}_name cell on import means the kind was not
// applied to that record.
package codec

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/farmtech/fieldbook/internal/apperr"
	"github.com/farmtech/fieldbook/internal/catalog"
	"github.com/farmtech/fieldbook/internal/field"
)

const (
	colType    = "type"
	colLength  = "length"
	colWidth   = "width"
	colArea    = "area"
	colNumRows = "num_rows"
)

var fixedColumns = []string{colType, colLength, colWidth, colArea, colNumRows}

// kindSubFields are the per-kind column suffixes, in schema order.
var kindSubFields = []string{"name", "amount_per_ha", "total_amount", "unit"}

// Codec converts between crop records and the flat tabular format. It
// holds no state between calls; each encode or decode is one atomic pass.
type Codec struct {
	cat *catalog.Catalog
}

// New creates a codec that resolves input kinds against cat.
func New(cat *catalog.Catalog) *Codec {
	return &Codec{cat: cat}
}

// Schema computes the column set for the given record set: the fixed
// columns followed by four columns per input kind. Kinds appear in the
// order they are first encountered across records; within a record the
// iteration order is the catalog's declaration order. The result is
// deterministic, so re-encoding unchanged records yields an identical
// header.
func (c *Codec) Schema(records []field.Record) []string {
	kinds := orderedmap.New[string, struct{}]()
	for _, r := range records {
		for pair := r.Inputs.Oldest(); pair != nil; pair = pair.Next() {
			kinds.Set(pair.Key, struct{}{})
		}
	}
	columns := make([]string, 0, len(fixedColumns)+kinds.Len()*len(kindSubFields))
	columns = append(columns, fixedColumns...)
	for kind := kinds.Oldest(); kind != nil; kind = kind.Next() {
		for _, sub := range kindSubFields {
			columns = append(columns, kind.Key+"_"+sub)
		}
	}
	return columns
}

// Encode writes a header row and one row per record to w. Returns
// apperr.ErrNoData for an empty record set without touching w.
func (c *Codec) Encode(w io.Writer, records []field.Record) error {
	if len(records) == 0 {
		return apperr.ErrNoData
	}

	columns := c.Schema(records)
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		index[col] = i
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("codec: write header: %w", err)
	}
	for i, r := range records {
		row := make([]string, len(columns))
		row[index[colType]] = r.Type
		row[index[colLength]] = formatFloat(r.Length)
		row[index[colWidth]] = formatFloat(r.Width)
		row[index[colArea]] = formatFloat(r.Area)
		row[index[colNumRows]] = strconv.Itoa(r.NumRows)
		for pair := r.Inputs.Oldest(); pair != nil; pair = pair.Next() {
			m := pair.Value
			row[index[pair.Key+"_name"]] = m.Name
			row[index[pair.Key+"_amount_per_ha"]] = formatFloat(m.AmountPerHa)
			row[index[pair.Key+"_total_amount"]] = formatFloat(m.TotalAmount)
			row[index[pair.Key+"_unit"]] = m.Unit
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("codec: write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("codec: flush: %w", err)
	}
	return nil
}

// Decode reads the flat tabular data from r and reconstructs the full
// record sequence. The pass is all-or-nothing: any row-level error
// aborts the whole decode and no partial result is returned.
//
// The stored area is trusted as-is rather than recomputed from the
// dimensions, so a file round-trips exactly even if inconsistent.
func (c *Codec) Decode(r io.Reader) ([]field.Record, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("codec: empty file: %w", apperr.ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("codec: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	for _, col := range fixedColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("codec: header: %q: %w", col, apperr.ErrMissingColumn)
		}
	}

	var out []field.Record
	rowNum := 1
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			return nil, fmt.Errorf("codec: row %d: %w", rowNum, err)
		}
		rec, err := c.decodeRow(index, cells, rowNum)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Codec) decodeRow(index map[string]int, cells []string, rowNum int) (field.Record, error) {
	cropType := cells[index[colType]]
	kinds, err := c.cat.Kinds(cropType)
	if err != nil {
		return field.Record{}, fmt.Errorf("codec: row %d: %w", rowNum, err)
	}

	length, err := parseFloat(cells, index, colLength, rowNum)
	if err != nil {
		return field.Record{}, err
	}
	width, err := parseFloat(cells, index, colWidth, rowNum)
	if err != nil {
		return field.Record{}, err
	}
	area, err := parseFloat(cells, index, colArea, rowNum)
	if err != nil {
		return field.Record{}, err
	}
	numRows, err := parseInt(cells, index, colNumRows, rowNum)
	if err != nil {
		return field.Record{}, err
	}

	rec := field.Record{
		Type:    cropType,
		Length:  length,
		Width:   width,
		Area:    area,
		NumRows: numRows,
		Inputs:  orderedmap.New[string, field.Measurement](),
	}

	// Reconstruct measurements in catalog order. A kind whose name
	// column is absent from the header, or whose name cell is empty,
	// was not applied to this record.
	for kind := kinds.Oldest(); kind != nil; kind = kind.Next() {
		nameIdx, ok := index[kind.Key+"_name"]
		if !ok || cells[nameIdx] == "" {
			continue
		}
		for _, sub := range kindSubFields[1:] {
			if _, ok := index[kind.Key+"_"+sub]; !ok {
				return field.Record{}, fmt.Errorf("codec: row %d: %q: %w", rowNum, kind.Key+"_"+sub, apperr.ErrMissingColumn)
			}
		}
		perHa, err := parseFloat(cells, index, kind.Key+"_amount_per_ha", rowNum)
		if err != nil {
			return field.Record{}, err
		}
		total, err := parseFloat(cells, index, kind.Key+"_total_amount", rowNum)
		if err != nil {
			return field.Record{}, err
		}
		rec.Inputs.Set(kind.Key, field.Measurement{
			Name:        cells[nameIdx],
			AmountPerHa: perHa,
			TotalAmount: total,
			Unit:        cells[index[kind.Key+"_unit"]],
		})
	}
	return rec, nil
}

func parseFloat(cells []string, index map[string]int, col string, rowNum int) (float64, error) {
	raw := cells[index[col]]
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("codec: row %d, column %s: %q: %w", rowNum, col, raw, apperr.ErrBadValue)
	}
	return v, nil
}

func parseInt(cells []string, index map[string]int, col string, rowNum int) (int, error) {
	raw := cells[index[col]]
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("codec: row %d, column %s: %q: %w", rowNum, col, raw, apperr.ErrBadValue)
	}
	return v, nil
}

// formatFloat uses the shortest representation that parses back to the
// same value, keeping exports byte-stable across round trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
