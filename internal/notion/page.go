package notion

import (
	"strings"
	"time"
)

// Page is a Notion page with its property map. Accessor methods tolerate
// missing properties and wrong types, returning zero values instead, because
// content editors can and do leave fields blank.
type Page struct {
	ID             string              `json:"id"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Properties     map[string]Property `json:"properties"`
}

// Property is a single page property. Only the field matching Type is set.
type Property struct {
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Checkbox    bool           `json:"checkbox,omitempty"`
	URL         string         `json:"url,omitempty"`
	Date        *DateRange     `json:"date,omitempty"`
	Files       []File         `json:"files,omitempty"`
}

// RichText is one block of a rich text value.
type RichText struct {
	PlainText string `json:"plain_text"`
}

// SelectOption is a select or multi-select choice.
type SelectOption struct {
	Name string `json:"name"`
}

// DateRange is a date property value; End is null for single-day dates.
type DateRange struct {
	Start string  `json:"start"`
	End   *string `json:"end"`
}

// File is one entry of a files property, hosted either externally or by the
// content store itself.
type File struct {
	Type     string   `json:"type"`
	External *FileRef `json:"external,omitempty"`
	File     *FileRef `json:"file,omitempty"`
}

// FileRef carries the actual file URL.
type FileRef struct {
	URL string `json:"url"`
}

func joinRichText(blocks []RichText) string {
	var b strings.Builder
	for _, rt := range blocks {
		b.WriteString(rt.PlainText)
	}
	return b.String()
}

// Title returns the plain text of a title property.
func (p *Page) Title(name string) string {
	return joinRichText(p.Properties[name].Title)
}

// Text returns the joined plain text of a rich text property.
func (p *Page) Text(name string) string {
	return joinRichText(p.Properties[name].RichText)
}

// SelectName returns the selected option name, or "" when unset.
func (p *Page) SelectName(name string) string {
	sel := p.Properties[name].Select
	if sel == nil {
		return ""
	}
	return sel.Name
}

// MultiSelect returns the selected option names in store order.
func (p *Page) MultiSelect(name string) []string {
	opts := p.Properties[name].MultiSelect
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Name)
	}
	return out
}

// Number returns a number property, or 0 when unset.
func (p *Page) Number(name string) float64 {
	n := p.Properties[name].Number
	if n == nil {
		return 0
	}
	return *n
}

// Checkbox returns a checkbox property.
func (p *Page) Checkbox(name string) bool {
	return p.Properties[name].Checkbox
}

// DateSpan returns the start and end of a date property. End falls back to
// start when the store has no explicit end date.
func (p *Page) DateSpan(name string) (start, end string) {
	d := p.Properties[name].Date
	if d == nil {
		return "", ""
	}
	start = d.Start
	end = start
	if d.End != nil && *d.End != "" {
		end = *d.End
	}
	return start, end
}

// FileURLs returns the URLs of a files property in display order, skipping
// entries with no resolvable URL.
func (p *Page) FileURLs(name string) []string {
	files := p.Properties[name].Files
	out := make([]string, 0, len(files))
	for _, f := range files {
		switch {
		case f.External != nil && f.External.URL != "":
			out = append(out, f.External.URL)
		case f.File != nil && f.File.URL != "":
			out = append(out, f.File.URL)
		}
	}
	return out
}
