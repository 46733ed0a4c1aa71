package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkit-dev/barkit/internal/domain/entities"
)

func filterDoc() *entities.Document {
	return &entities.Document{
		Bars: []entities.Bar{
			{
				Name: "primary",
				Widgets: []entities.Widget{
					{Type: "clock"},
					{Type: "weather", Options: map[string]interface{}{"units": "metric"}},
				},
			},
			{
				Name: "secondary",
				Widgets: []entities.Widget{
					{Type: "clock"},
				},
			},
		},
	}
}

func TestCompileFilter_Invalid(t *testing.T) {
	_, err := CompileFilter("type ==")
	assert.Error(t, err)

	_, err = CompileFilter("type")
	assert.Error(t, err, "non-boolean expression must fail at compile time")
}

func TestSelectWidgets_NilFilterSelectsAll(t *testing.T) {
	refs, err := SelectWidgets(filterDoc(), nil)
	require.NoError(t, err)
	assert.Len(t, refs, 3)
}

func TestSelectWidgets_ByType(t *testing.T) {
	filter, err := CompileFilter("type == 'clock'")
	require.NoError(t, err)

	refs, err := SelectWidgets(filterDoc(), filter)
	require.NoError(t, err)

	require.Len(t, refs, 2)
	assert.Equal(t, "primary", refs[0].Bar)
	assert.Equal(t, 0, refs[0].Index)
	assert.Equal(t, "secondary", refs[1].Bar)
}

func TestSelectWidgets_ByBarAndIndex(t *testing.T) {
	filter, err := CompileFilter("bar == 'primary' && index > 0")
	require.NoError(t, err)

	refs, err := SelectWidgets(filterDoc(), filter)
	require.NoError(t, err)

	require.Len(t, refs, 1)
	assert.Equal(t, "weather", refs[0].Widget.Type)
	assert.Equal(t, 0, refs[0].BarIndex)
	assert.Equal(t, 1, refs[0].Index)
}

func TestSelectWidgets_ByOption(t *testing.T) {
	filter, err := CompileFilter("options['units'] == 'metric'")
	require.NoError(t, err)

	refs, err := SelectWidgets(filterDoc(), filter)
	require.NoError(t, err)

	require.Len(t, refs, 1)
	assert.Equal(t, "weather", refs[0].Widget.Type)
}
