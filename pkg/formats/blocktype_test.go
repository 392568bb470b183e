package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlockTypeCube(t *testing.T) {
	data := `{
	  "DrawType": "Cube",
	  "Textures": [{"All": "Blocks/Stone.png", "Up": "Blocks/Grass_Top.png", "Sides": "Blocks/Grass_Side.png"}]
	}`
	bt, err := ParseBlockType([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, DrawCube, bt.DrawType)
	assert.Equal(t, OpacitySolid, bt.Opacity)
	assert.Equal(t, [6]string{
		"Blocks/Grass_Side.png",
		"Blocks/Grass_Side.png",
		"Blocks/Grass_Side.png",
		"Blocks/Grass_Side.png",
		"Blocks/Grass_Top.png",
		"Blocks/Stone.png",
	}, bt.FaceTextures())
	assert.Equal(t, []string{"Blocks/Grass_Side.png", "Blocks/Grass_Top.png", "Blocks/Stone.png"}, bt.TexturePaths())
}

func TestParseBlockTypeWrappedModel(t *testing.T) {
	data := `{
	  "Id": "Furniture_Chair",
	  "BlockType": {
	    "DrawType": "Model",
	    "Opacity": "Transparent",
	    "CustomModel": "Blocks/Chair.blockymodel",
	    "CustomModelTexture": [{"Texture": "Blocks/Chair.png", "Weight": 1}]
	  }
	}`
	bt, err := ParseBlockType([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, DrawModel, bt.DrawType)
	assert.Equal(t, OpacityTransparent, bt.Opacity)
	assert.Equal(t, "Blocks/Chair.png", bt.ModelTexture())
	assert.Equal(t, []string{"Blocks/Chair.png"}, bt.TexturePaths())
}

func TestParseBlockTypeErrors(t *testing.T) {
	_, err := ParseBlockType([]byte(`[]`))
	assert.ErrorIs(t, err, ErrInvalidBlockType)

	_, err = ParseBlockType([]byte(`{"DrawType": "Model"}`))
	assert.ErrorIs(t, err, ErrInvalidBlockType)
}
