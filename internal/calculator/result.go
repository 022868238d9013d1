package calculator

import (
	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/input"
)

// Chart is the suggested visualization of a series.
type Chart string

const (
	ChartLine Chart = "line"
	ChartArea Chart = "area"
	ChartBar  Chart = "bar"
	ChartPie  Chart = "pie"
)

// Card is a headline figure.
type Card struct {
	Key         string     `json:"key" yaml:"key"`
	Title       string     `json:"title" yaml:"title"`
	Kind        input.Kind `json:"kind" yaml:"kind"`
	Value       float64    `json:"value" yaml:"value"`
	Text        string     `json:"text,omitempty" yaml:"text,omitempty"` // non-numeric cards
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
}

// Column describes one numeric column of a table.
type Column struct {
	Key   string     `json:"key" yaml:"key"`
	Title string     `json:"title" yaml:"title"`
	Kind  input.Kind `json:"kind" yaml:"kind"`
}

// Row is a labelled row of a table; Values line up with the table's Columns.
type Row struct {
	Label  string    `json:"label" yaml:"label"`
	Values []float64 `json:"values" yaml:"values"`
}

// Table is a tabular breakdown.
type Table struct {
	Key         string   `json:"key" yaml:"key"`
	Title       string   `json:"title" yaml:"title"`
	LabelHeader string   `json:"labelHeader" yaml:"labelHeader"`
	Columns     []Column `json:"columns" yaml:"columns"`
	Rows        []Row    `json:"rows" yaml:"rows"`
}

// Dataset is one named line, bar group or pie of a series.
type Dataset struct {
	Name   string    `json:"name" yaml:"name"`
	Values []float64 `json:"values" yaml:"values"`
}

// Series is chart data keyed by period or category label.
type Series struct {
	Key      string    `json:"key" yaml:"key"`
	Title    string    `json:"title" yaml:"title"`
	Chart    Chart     `json:"chart" yaml:"chart"`
	Labels   []string  `json:"labels" yaml:"labels"`
	Datasets []Dataset `json:"datasets" yaml:"datasets"`
}

// Result is everything a calculator presents for one set of inputs.
type Result struct {
	Calculator string   `json:"calculator" yaml:"calculator"`
	Cards      []Card   `json:"cards" yaml:"cards"`
	Tables     []Table  `json:"tables,omitempty" yaml:"tables,omitempty"`
	Series     []Series `json:"series,omitempty" yaml:"series,omitempty"`
	Notes      []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Card returns the card with the given key.
func (r Result) Card(key string) (Card, bool) {
	for _, c := range r.Cards {
		if c.Key == key {
			return c, true
		}
	}
	return Card{}, false
}

// Table returns the table with the given key.
func (r Result) Table(key string) (Table, bool) {
	for _, t := range r.Tables {
		if t.Key == key {
			return t, true
		}
	}
	return Table{}, false
}

// SeriesByKey returns the series with the given key.
func (r Result) SeriesByKey(key string) (Series, bool) {
	for _, s := range r.Series {
		if s.Key == key {
			return s, true
		}
	}
	return Series{}, false
}

func currencyCard(key, title string, value float64) Card {
	return Card{Key: key, Title: title, Kind: input.KindCurrency, Value: value}
}

func percentCard(key, title string, value float64) Card {
	return Card{Key: key, Title: title, Kind: input.KindPercent, Value: value}
}

func textCard(key, title, text string) Card {
	return Card{Key: key, Title: title, Kind: input.KindText, Text: text}
}

func currencyColumn(key, title string) Column {
	return Column{Key: key, Title: title, Kind: input.KindCurrency}
}

// Formatted returns the card's display value in the default locale.
func (c Card) Formatted() string {
	return c.FormattedIn(format.Default())
}

// FormattedIn returns the card's display value rendered by f.
func (c Card) FormattedIn(f *format.Formatter) string {
	if c.Kind == input.KindText {
		return c.Text
	}
	return f.Value(c.Kind, c.Value)
}
