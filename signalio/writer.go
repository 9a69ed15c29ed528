package signalio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
)

// Table is a set of equally long columns sharing one axis
type Table struct {
	Title   string      `yaml:"title"`
	Axis    string      `yaml:"axis"`
	Columns []string    `yaml:"columns"`
	Rows    [][]float64 `yaml:"rows"`
}

// NewTable lays channels out side by side over their visible ranges. The
// first column is the independent axis (Times/Frequency), named by axis.
func NewTable(title, axis string, channels ...*signal.Channel) (*Table, error) {
	if len(channels) == 0 {
		return nil, errors.New("no channels to tabulate")
	}

	extracted := make([]*signal.Extracted, len(channels))
	for i, c := range channels {
		e, err := c.Extract()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read channel %q", c.Name)
		}
		if i > 0 && len(e.Values) != len(extracted[0].Values) {
			return nil, errors.Errorf("channel %q has %d values, %q has %d",
				c.Name, len(e.Values), channels[0].Name, len(extracted[0].Values))
		}
		extracted[i] = e
	}

	table := &Table{Title: title, Axis: axis}
	for _, c := range channels {
		table.Columns = append(table.Columns, c.Name)
	}

	for row := range extracted[0].Values {
		values := make([]float64, 0, len(channels)+1)
		values = append(values, extracted[0].Times[row])
		for _, e := range extracted {
			values = append(values, e.Values[row])
		}
		table.Rows = append(table.Rows, values)
	}

	return table, nil
}

// Write renders the table as "table", "csv" or "yaml"
func Write(w io.Writer, format string, table *Table, precision int) error {
	switch format {
	case "table":
		return writeText(w, table, precision)
	case "csv":
		return writeCSV(w, table, precision)
	case "yaml":
		return writeYAML(w, table)
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}

func formatValue(v float64, precision int) string {
	return strconv.FormatFloat(v, 'g', precision, 64)
}

func (t *Table) header() []string {
	return append([]string{t.Axis}, t.Columns...)
}

func writeText(w io.Writer, table *Table, precision int) error {
	if table.Title != "" {
		if _, err := fmt.Fprintf(w, "%s\n%s\n", table.Title, strings.Repeat("=", len(table.Title))); err != nil {
			return errors.Wrap(err, "failed to write title")
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(table.header(), "\t")+"\t")
	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v, precision)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}

	return errors.Wrap(tw.Flush(), "failed to write table")
}

func writeCSV(w io.Writer, table *Table, precision int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.header()); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}

	for _, row := range table.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatValue(v, precision)
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "failed to write csv row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush csv")
}

func writeYAML(w io.Writer, table *Table) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(table); err != nil {
		return errors.Wrap(err, "failed to encode yaml")
	}
	return errors.Wrap(encoder.Close(), "failed to flush yaml")
}

// WriteDocuments writes signals as a YAML stream that Decode reads back
func WriteDocuments(w io.Writer, docs ...Document) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	for _, doc := range docs {
		if err := encoder.Encode(doc); err != nil {
			return errors.Wrapf(err, "failed to encode signal %q", doc.Name)
		}
	}
	return errors.Wrap(encoder.Close(), "failed to flush yaml")
}
