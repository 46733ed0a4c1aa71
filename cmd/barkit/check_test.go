package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkit-dev/barkit/internal/domain/entities"
	domainservices "github.com/barkit-dev/barkit/internal/domain/services"
)

func TestFilterFindings(t *testing.T) {
	findings := []entities.Finding{
		{Path: "bars[0].widgets[0].colour", Code: entities.CodeUnknownOption},
		{Path: "bars[0].widgets[2].api_key", Code: entities.CodeMissingRequired},
		{Path: "bars[0].widgets[21].type", Code: entities.CodeUnknownWidgetType},
	}
	refs := []domainservices.WidgetRef{
		{BarIndex: 0, Index: 2},
	}

	kept := filterFindings(findings, refs)

	require.Len(t, kept, 1)
	assert.Equal(t, "bars[0].widgets[2].api_key", kept[0].Path)
}

func TestFilterFindings_IndexPrefixIsNotEnough(t *testing.T) {
	// widgets[2] must not match widgets[21].
	findings := []entities.Finding{
		{Path: "bars[0].widgets[21].type", Code: entities.CodeUnknownWidgetType},
	}
	refs := []domainservices.WidgetRef{{BarIndex: 0, Index: 2}}

	assert.Empty(t, filterFindings(findings, refs))
}

func TestBuildInitialDocument_Defaults(t *testing.T) {
	doc, err := buildInitialDocument(initOptions{
		BarName:  "main",
		Position: "bottom",
		Widgets:  []string{"clock", "weather"},
	})
	require.NoError(t, err)

	require.Len(t, doc.Bars, 1)
	bar := doc.Bars[0]
	assert.Equal(t, "main", bar.Name)
	assert.Equal(t, "bottom", bar.Position)
	require.Len(t, bar.Widgets, 2)

	// Defaults from the schema table are filled in; required options
	// without defaults stay absent so check flags them.
	assert.Equal(t, "%H:%M", bar.Widgets[0].Options["format"])
	assert.NotContains(t, bar.Widgets[1].Options, "api_key")
	assert.Equal(t, "auto", bar.Widgets[1].Options["location"])
}

func TestBuildInitialDocument_UnknownWidgetType(t *testing.T) {
	_, err := buildInitialDocument(initOptions{
		BarName:  "main",
		Position: "top",
		Widgets:  []string{"clock", "bogus"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestBuildInitialDocument_BadPosition(t *testing.T) {
	_, err := buildInitialDocument(initOptions{BarName: "main", Position: "sideways"})
	assert.Error(t, err)
}

func TestBuildInitialDocument_NoWidgetsKeepsDefault(t *testing.T) {
	doc, err := buildInitialDocument(initOptions{
		BarName:       "main",
		Position:      "top",
		NoInteractive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, doc.WidgetCount())
}
