package view

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"mainframe/cards"
)

// ErrNoTemplate is returned when a card is rendered without a template.
var ErrNoTemplate = errors.New("view: no card template")

// DefaultLabel is the accessible label template for card views.
const DefaultLabel = "Visit {{.Title}}: {{.Description}}"

// CardView is a rendered card as shown in a grid.
type CardView struct {
	Href            string
	Label           string
	Title           string
	Description     string
	Status          cards.Status
	StatusClass     string
	Metadata        string
	MetadataVisible bool

	// Local cards load in place as articles instead of opening externally.
	Local bool
}

// CardRenderer builds card views from cards.
type CardRenderer struct {
	domain string
	label  *template.Template
}

// NewCardRenderer parses the label template. An empty template yields a
// renderer that fails every card with ErrNoTemplate.
func NewCardRenderer(domain, label string) (*CardRenderer, error) {
	r := &CardRenderer{domain: domain}
	if label == "" {
		return r, nil
	}
	t, err := template.New("card").Parse(label)
	if err != nil {
		return nil, fmt.Errorf("parsing card template: %w", err)
	}
	r.label = t
	return r, nil
}

// Render builds the view for c.
func (r *CardRenderer) Render(c cards.Card) (*CardView, error) {
	if r == nil || r.label == nil {
		return nil, ErrNoTemplate
	}

	var label strings.Builder
	if err := r.label.Execute(&label, c); err != nil {
		return nil, fmt.Errorf("rendering card %q: %w", c.Title, err)
	}

	status := cards.StatusOf(c, r.domain)
	v := &CardView{
		Href:        c.URL,
		Label:       label.String(),
		Title:       c.Title,
		Description: c.Description,
		Status:      status,
		StatusClass: status.Class(),
		Local:       cards.IsLocalArticle(c.URL),
	}
	if c.HasMetadata() {
		v.Metadata = c.Metadata
		v.MetadataVisible = true
	}
	return v, nil
}
