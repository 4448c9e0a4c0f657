package workspace

import (
	"strings"

	"github.com/google/uuid"
)

// Total accessors over a page's property bag. A missing or wrong-shaped
// property always yields the zero value for the accessor, never an error, so
// callers can normalize records without guarding every field.

func (p Page) prop(name string) (Property, bool) {
	v, ok := p.Properties[name]
	return v, ok
}

// Title returns the joined plain text of a title property, or "".
func (p Page) Title(name string) string {
	v, ok := p.prop(name)
	if !ok {
		return ""
	}
	return joinPlainText(v.Title)
}

// Text returns the joined plain text of a rich-text property, or "".
func (p Page) Text(name string) string {
	v, ok := p.prop(name)
	if !ok {
		return ""
	}
	return joinPlainText(v.RichText)
}

// Date returns the start date of a date property, or "".
func (p Page) Date(name string) string {
	v, ok := p.prop(name)
	if !ok || v.Date == nil {
		return ""
	}
	return v.Date.Start
}

// Select returns the selected option's name, or "".
func (p Page) Select(name string) string {
	v, ok := p.prop(name)
	if !ok || v.Select == nil {
		return ""
	}
	return v.Select.Name
}

// MultiSelect returns the selected option names in source order. Always
// non-nil so snapshots serialize an empty list rather than null.
func (p Page) MultiSelect(name string) []string {
	out := []string{}
	v, ok := p.prop(name)
	if !ok {
		return out
	}
	for _, s := range v.MultiSelect {
		out = append(out, s.Name)
	}
	return out
}

// Number returns a number property's value and whether it was present. The
// boolean lets callers distinguish an explicit zero from an absent value.
func (p Page) Number(name string) (float64, bool) {
	v, ok := p.prop(name)
	if !ok || v.Number == nil {
		return 0, false
	}
	return *v.Number, true
}

// Checkbox returns a checkbox property's value, false when absent.
func (p Page) Checkbox(name string) bool {
	v, ok := p.prop(name)
	if !ok || v.Checkbox == nil {
		return false
	}
	return *v.Checkbox
}

// FileURL returns the first file's URL from a files property, or "".
// Hosted files win over external references.
func (p Page) FileURL(name string) string {
	v, ok := p.prop(name)
	if !ok || len(v.Files) == 0 {
		return ""
	}
	f := v.Files[0]
	if f.File != nil {
		return f.File.URL
	}
	if f.External != nil {
		return f.External.URL
	}
	return ""
}

// Link returns a URL property's value, or "".
func (p Page) Link(name string) string {
	v, ok := p.prop(name)
	if !ok {
		return ""
	}
	return v.URL
}

// RecordID derives the snapshot record ID from a page ID: lowercase with
// separator dashes stripped. Page IDs are UUIDs; parsing through the uuid
// package also normalizes casing before the dashes are removed.
func RecordID(id string) string {
	if u, err := uuid.Parse(id); err == nil {
		id = u.String()
	}
	return strings.ReplaceAll(strings.ToLower(id), "-", "")
}

func joinPlainText(runs []RichText) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.PlainText)
	}
	return b.String()
}
