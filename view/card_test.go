package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mainframe/cards"
)

func TestRenderCard(t *testing.T) {
	r, err := NewCardRenderer(cards.DefaultDomain, DefaultLabel)
	require.NoError(t, err)

	tests := []struct {
		name            string
		card            cards.Card
		wantClass       string
		wantLocal       bool
		wantMetaVisible bool
		wantMeta        string
	}{
		{
			name:      "local article without metadata",
			card:      cards.Card{URL: "posts/a.html", Title: "A", Description: "first"},
			wantClass: "status-external",
			wantLocal: true,
		},
		{
			name:      "blank metadata stays hidden",
			card:      cards.Card{URL: "https://manni-dm.dev/x", Title: "B", Metadata: "   \t"},
			wantClass: "status-online",
		},
		{
			name:            "metadata shown verbatim",
			card:            cards.Card{URL: "https://example.com", Title: "C", Metadata: " CAUTION: wip "},
			wantClass:       "status-internal",
			wantMetaVisible: true,
			wantMeta:        " CAUTION: wip ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := r.Render(tt.card)
			require.NoError(t, err)
			assert.Equal(t, tt.card.URL, v.Href)
			assert.Equal(t, tt.card.Title, v.Title)
			assert.Equal(t, tt.wantClass, v.StatusClass)
			assert.Equal(t, tt.wantLocal, v.Local)
			assert.Equal(t, tt.wantMetaVisible, v.MetadataVisible)
			assert.Equal(t, tt.wantMeta, v.Metadata)
		})
	}
}

func TestRenderCardLabel(t *testing.T) {
	r, err := NewCardRenderer(cards.DefaultDomain, DefaultLabel)
	require.NoError(t, err)

	v, err := r.Render(cards.Card{Title: "Notes", Description: "chia farming"})
	require.NoError(t, err)
	assert.Equal(t, "Visit Notes: chia farming", v.Label)
}

func TestRenderWithoutTemplate(t *testing.T) {
	r, err := NewCardRenderer(cards.DefaultDomain, "")
	require.NoError(t, err)

	_, err = r.Render(cards.Card{Title: "x"})
	assert.True(t, errors.Is(err, ErrNoTemplate))

	var nilRenderer *CardRenderer
	_, err = nilRenderer.Render(cards.Card{Title: "x"})
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestBadTemplate(t *testing.T) {
	_, err := NewCardRenderer(cards.DefaultDomain, "{{.Title")
	assert.Error(t, err)
}
