// Package renderer turns registry views into markdown, terminal output, HTML
// fragments and chart payloads.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"AssetWatch/internal/calculator"
	"AssetWatch/internal/model"
	"AssetWatch/internal/registry"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// summaryWindow is the trailing number of closes used for range and average.
const summaryWindow = 20

// DetailMarkdown renders one titled table per asset with its last points.
func DetailMarkdown(details []registry.Detail) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	for _, d := range details {
		doc.H3(d.Title)
		doc.Table(tableSet(d))
	}
	return doc.String()
}

// TableMarkdown renders the table of a single asset without its title.
func TableMarkdown(d registry.Detail) string {
	var buf bytes.Buffer
	return md.NewMarkdown(&buf).Table(tableSet(d)).String()
}

func tableSet(d registry.Detail) md.TableSet {
	align := make([]md.TableAlignment, len(d.Columns))
	for i := range d.Columns {
		align[i] = md.AlignRight
	}
	if len(align) > 0 {
		align[0] = md.AlignLeft
	}
	return md.TableSet{
		Alignment: align,
		Header:    d.Columns,
		Rows:      d.Rows,
	}
}

// SeriesSummaryMarkdown renders one line per chart series with its date span,
// last close, change and trailing statistics.
func SeriesSummaryMarkdown(series []registry.Series) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{"Asset", "Kind", "From", "To", "Points", "Last close", "Change", "High 20d", "Low 20d", "SMA 20d", "Range pos"},
		Rows:   [][]string{},
	}
	for _, s := range series {
		table.Rows = append(table.Rows, summaryRow(s))
	}
	doc.Table(table)
	return doc.String()
}

func summaryRow(s registry.Series) []string {
	points := make([]model.ClosePoint, len(s.X))
	for i := range s.X {
		points[i] = model.ClosePoint{Date: s.X[i], Close: s.Y[i]}
	}
	row := []string{s.Label, s.Kind.Label(), "", "", strconv.Itoa(len(points)), "", "", "", "", "", ""}
	if len(points) == 0 {
		return row
	}
	last := points[len(points)-1]
	row[2] = points[0].Date.String()
	row[3] = last.Date.String()
	row[5] = model.FormatPrice(last.Close, s.Currency)
	if _, pct, err := calculator.Change(points); err == nil {
		row[6] = fmt.Sprintf("%s%%", pct.StringFixed(2))
	}
	if high, low, err := calculator.Range(points, summaryWindow); err == nil {
		row[7] = model.FormatPrice(high, s.Currency)
		row[8] = model.FormatPrice(low, s.Currency)
	}
	if sma, err := calculator.SMA(points, summaryWindow); err == nil {
		row[9] = model.FormatPrice(sma, s.Currency)
	}
	// Position of the last close within the full history.
	if high, low, err := calculator.Range(points, 0); err == nil {
		if pos, err := calculator.Position(last.Close, high, low); err == nil {
			row[10] = fmt.Sprintf("%s%%", pos.Mul(decimal.NewFromInt(100)).StringFixed(0))
		}
	}
	return row
}
