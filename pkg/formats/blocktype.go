package formats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidBlockType is returned for unparseable block type documents.
var ErrInvalidBlockType = errors.New("invalid block type")

// Draw types.
const (
	DrawCube  = "Cube"
	DrawModel = "Model"
	DrawEmpty = "Empty"
)

// Opacity classes as written in block type files.
const (
	OpacitySolid       = "Solid"
	OpacityCutout      = "Cutout"
	OpacityTransparent = "Transparent"
)

// BlockType describes how one block is drawn.
type BlockType struct {
	DrawType           string         `json:"DrawType"`
	Opacity            string         `json:"Opacity"`
	Textures           []BlockTexture `json:"Textures"`
	CustomModel        string         `json:"CustomModel"`
	CustomModelTexture []ModelTexture `json:"CustomModelTexture"`
	CustomModelScale   float32        `json:"CustomModelScale"`
}

// BlockTexture assigns textures to cube faces. More specific keys win:
// a face key beats Sides/UpDown, which beat All.
type BlockTexture struct {
	All    string  `json:"All"`
	Sides  string  `json:"Sides"`
	UpDown string  `json:"UpDown"`
	Up     string  `json:"Up"`
	Down   string  `json:"Down"`
	North  string  `json:"North"`
	South  string  `json:"South"`
	East   string  `json:"East"`
	West   string  `json:"West"`
	Weight float32 `json:"Weight"`
}

// ModelTexture is one texture variant of a custom model.
type ModelTexture struct {
	Texture string  `json:"Texture"`
	Weight  float32 `json:"Weight"`
}

// ParseBlockType parses a block type document. Both a bare definition and
// an item document wrapping it under "BlockType" are accepted.
func ParseBlockType(data []byte) (*BlockType, error) {
	var wrapper struct {
		BlockType json.RawMessage `json:"BlockType"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlockType, err)
	}
	if len(wrapper.BlockType) > 0 && !bytes.Equal(wrapper.BlockType, []byte("null")) {
		data = wrapper.BlockType
	}

	bt := BlockType{DrawType: DrawCube, Opacity: OpacitySolid}
	if err := json.Unmarshal(data, &bt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlockType, err)
	}
	if bt.DrawType == DrawModel && bt.CustomModel == "" {
		return nil, fmt.Errorf("%w: model draw type without CustomModel", ErrInvalidBlockType)
	}
	return &bt, nil
}

// FaceTextures resolves the first texture set into six face textures in
// front (north), back (south), right (east), left (west), top, bottom
// order. Faces with nothing assigned are empty.
func (b *BlockType) FaceTextures() [6]string {
	var out [6]string
	if len(b.Textures) == 0 {
		return out
	}
	t := b.Textures[0]
	side := first(t.Sides, t.All)
	upDown := first(t.UpDown, t.All)
	out[0] = first(t.North, side)
	out[1] = first(t.South, side)
	out[2] = first(t.East, side)
	out[3] = first(t.West, side)
	out[4] = first(t.Up, upDown)
	out[5] = first(t.Down, upDown)
	return out
}

// ModelTexture returns the first custom model texture, or "".
func (b *BlockType) ModelTexture() string {
	if len(b.CustomModelTexture) == 0 {
		return ""
	}
	return b.CustomModelTexture[0].Texture
}

// TexturePaths returns every distinct texture the block references.
func (b *BlockType) TexturePaths() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	if b.DrawType == DrawModel {
		add(b.ModelTexture())
		return out
	}
	for _, p := range b.FaceTextures() {
		add(p)
	}
	return out
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
