// Package formats provides parsers for the voxel asset formats: blocky
// models, block type definitions, prefabs and the binary block id list.
//
// Every parser takes raw bytes (ParseX) so callers can feed it from a
// directory, an archive or a test fixture alike.
package formats

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Vec2 is a JSON {x, y} pair.
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Vec3 is a JSON {x, y, z} triple.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Quat is a JSON {x, y, z, w} quaternion. A missing w defaults to 1.
type Quat struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

// UnmarshalJSON defaults W to 1 so partial quaternions stay valid.
func (q *Quat) UnmarshalJSON(data []byte) error {
	type raw Quat
	v := raw{W: 1}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*q = Quat(v)
	return nil
}

// Flag is a boolean that also accepts 0/1 numbers, as written by some
// model exporters.
type Flag bool

// UnmarshalJSON accepts true/false, numbers and quoted numbers.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		*f = true
		return nil
	case "false", "null":
		*f = false
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = n != 0
	return nil
}
