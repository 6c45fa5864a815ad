package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnanh/lotrinh-backend/models"
)

func TestOverlayProgress(t *testing.T) {
	tree := []RoadmapNode{
		{ID: "1", Label: "A", Children: []RoadmapNode{
			{ID: "1.1", Label: "B"},
		}},
		{ID: "2", Label: "C"},
	}
	progress := map[string]KnowledgeEntry{
		"B": {MasteryScore: 80, Status: models.StatusCompetent},
	}

	out := OverlayProgress(tree, progress)

	require.Len(t, out, 2)
	assert.Equal(t, 0, out[0].MasteryScore)
	assert.Equal(t, models.StatusNovice, out[0].Status)
	assert.Equal(t, 80, out[0].Children[0].MasteryScore)
	assert.Equal(t, models.StatusCompetent, out[0].Children[0].Status)
	assert.Equal(t, 0, out[1].MasteryScore)
	assert.Equal(t, models.StatusNovice, out[1].Status)

	// Cây input không bị sửa
	assert.Equal(t, 0, tree[0].Children[0].MasteryScore)
	assert.Equal(t, "", tree[0].Children[0].Status)
	assert.Equal(t, "", tree[0].Status)
}

func TestOverlayProgressEmptyMap(t *testing.T) {
	tree := []RoadmapNode{{ID: "1", Label: "X"}}
	out := OverlayProgress(tree, map[string]KnowledgeEntry{})
	require.Len(t, out, 1)
	assert.Equal(t, models.StatusNovice, out[0].Status)
}

func TestOverlayProgressNil(t *testing.T) {
	assert.Nil(t, OverlayProgress(nil, nil))
}
