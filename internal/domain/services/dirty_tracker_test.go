package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkit-dev/barkit/internal/domain/entities"
)

func trackerDoc() *entities.Document {
	return &entities.Document{
		Settings: map[string]interface{}{"debug": false},
		Bars: []entities.Bar{
			{
				Name: "primary",
				Widgets: []entities.Widget{
					{Type: "clock", Options: map[string]interface{}{"format": "%H:%M"}},
				},
			},
		},
	}
}

func TestDirtyTracker_CleanAfterMark(t *testing.T) {
	tracker := NewDirtyTracker()
	doc := trackerDoc()

	require.NoError(t, tracker.Mark(doc))
	assert.False(t, tracker.IsDirty(doc))
}

func TestDirtyTracker_DetectsChange(t *testing.T) {
	tracker := NewDirtyTracker()
	doc := trackerDoc()
	require.NoError(t, tracker.Mark(doc))

	doc.Bars[0].Widgets[0].Options["format"] = "%H:%M:%S"
	assert.True(t, tracker.IsDirty(doc))
}

func TestDirtyTracker_RevertedChangeIsClean(t *testing.T) {
	tracker := NewDirtyTracker()
	doc := trackerDoc()
	require.NoError(t, tracker.Mark(doc))

	doc.Bars[0].Widgets[0].Options["format"] = "%H:%M:%S"
	doc.Bars[0].Widgets[0].Options["format"] = "%H:%M"

	assert.False(t, tracker.IsDirty(doc))
}

func TestDirtyTracker_StructuralEquality(t *testing.T) {
	// Equality is structural: an equal document built independently is clean.
	tracker := NewDirtyTracker()
	require.NoError(t, tracker.Mark(trackerDoc()))

	assert.False(t, tracker.IsDirty(trackerDoc()))
}

func TestDirtyTracker_RemarkResetsBaseline(t *testing.T) {
	tracker := NewDirtyTracker()
	doc := trackerDoc()
	require.NoError(t, tracker.Mark(doc))

	doc.SetSetting("debug", true)
	require.True(t, tracker.IsDirty(doc))

	require.NoError(t, tracker.Mark(doc))
	assert.False(t, tracker.IsDirty(doc))
}

func TestDirtyTracker_Styles(t *testing.T) {
	tracker := NewDirtyTracker()
	tracker.MarkStyles(".bar { color: red; }")

	assert.False(t, tracker.StylesDirty(".bar { color: red; }"))
	assert.True(t, tracker.StylesDirty(".bar { color: blue; }"))
}
