package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/input"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageNames = []string{"index", "contact", "calculator", "notfound"}

// pages holds one template set per page, each sharing the layout.
type pages struct {
	sets map[string]*template.Template
}

func mustLoadPages() *pages {
	p := &pages{sets: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		set, err := template.ParseFS(templateFiles, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			panic(fmt.Sprintf("failed to parse embedded template %s: %v", name, err))
		}
		p.sets[name] = set
	}
	return p
}

type view struct {
	Title      string
	Menu       []calculatorSummary
	Path       string
	Calculator calculatorSummary
	Fields     []fieldView
	Cards      []formattedCard
	Tables     []tableView
	Notes      []string
	Warnings   []string
	ExportCSV  string
	ExportPDF  string
}

func (v view) withPath(path string) view {
	v.Path = path
	return v
}

type fieldView struct {
	input.Field
	Value     float64
	Text      string
	Formatted string
}

type tableView struct {
	Title       string
	LabelHeader string
	Columns     []string
	Rows        []rowView
}

type rowView struct {
	Label string
	Cells []string
}

func (h *handler) baseView(title string) view {
	v := view{Title: title}
	for _, c := range h.registry.List() {
		v.Menu = append(v.Menu, summarize(c))
	}
	return v
}

func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, "index", h.baseView("Financial Calculators"))
}

func (h *handler) handleContact(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, "contact", h.baseView("Contact"))
}

func (h *handler) handleCalculatorPage(w http.ResponseWriter, r *http.Request) {
	calc, err := h.registry.Get(chi.URLParam(r, "slug"))
	if err != nil {
		h.handleNotFound(w, r)
		return
	}

	page := calculator.NewPageIn(calc, h.formatter)
	result, warnings := page.ApplyText(queryValues(r))
	values := page.Values()

	v := h.baseView(calc.Title())
	v.Calculator = summarize(calc)
	v.Warnings = warnings
	v.Cards = formatCards(result.Cards, h.formatter)
	v.Notes = result.Notes
	for _, f := range page.Fields() {
		value := values[f.Key]
		v.Fields = append(v.Fields, fieldView{
			Field:     f,
			Value:     value,
			Text:      strconv.FormatFloat(value, 'f', -1, 64),
			Formatted: h.formatter.Value(f.Kind, value),
		})
	}
	for _, t := range result.Tables {
		v.Tables = append(v.Tables, buildTableView(t, h.formatter))
	}

	query := url.Values{}
	for key, value := range values {
		query.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
	}
	base := "/api/calculators/" + calc.Slug() + "/export."
	v.ExportCSV = base + constants.OutputFormatCSV + "?" + query.Encode()
	v.ExportPDF = base + constants.OutputFormatPDF + "?" + query.Encode()

	h.renderPage(w, http.StatusOK, "calculator", v)
}

func buildTableView(t calculator.Table, f *format.Formatter) tableView {
	tv := tableView{Title: t.Title, LabelHeader: t.LabelHeader}
	for _, c := range t.Columns {
		tv.Columns = append(tv.Columns, c.Title)
	}
	for _, row := range t.Rows {
		rv := rowView{Label: row.Label}
		for i, value := range row.Values {
			kind := input.KindNumber
			if i < len(t.Columns) {
				kind = t.Columns[i].Kind
			}
			rv.Cells = append(rv.Cells, f.Value(kind, value))
		}
		tv.Rows = append(tv.Rows, rv)
	}
	return tv
}

// renderPage buffers the page so template errors still produce a clean 500.
func (h *handler) renderPage(w http.ResponseWriter, status int, name string, v view) {
	var buf bytes.Buffer
	if err := h.pages.sets[name].ExecuteTemplate(&buf, "layout", v); err != nil {
		h.logger.Error("failed to render page",
			zap.String("op", "server.renderPage"),
			zap.String("page", name),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.writeRaw(w, status, "text/html; charset=utf-8", buf.Bytes())
}
