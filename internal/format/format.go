// Package format defines the fixed set of platform output presets.
package format

import (
	"fmt"
	"sort"

	"clipforge/internal/services"
)

// Output is a named platform preset with fixed dimensions.
type Output struct {
	Key    string
	Label  string
	Width  int
	Height int
}

// AspectRatio returns width divided by height.
func (o Output) AspectRatio() float64 {
	if o.Height == 0 {
		return 0
	}
	return float64(o.Width) / float64(o.Height)
}

func (o Output) String() string {
	return fmt.Sprintf("%s (%dx%d)", o.Key, o.Width, o.Height)
}

var presets = map[string]Output{
	"vertical":  {Key: "vertical", Label: "vertical 9:16", Width: 1080, Height: 1920},
	"square":    {Key: "square", Label: "square 1:1", Width: 1080, Height: 1080},
	"portrait":  {Key: "portrait", Label: "portrait 4:5", Width: 1080, Height: 1350},
	"landscape": {Key: "landscape", Label: "landscape 16:9", Width: 1920, Height: 1080},
}

// Lookup resolves a preset key to its Output definition.
func Lookup(key string) (Output, error) {
	preset, ok := presets[key]
	if !ok {
		return Output{}, services.Wrap(services.ErrValidation, "format", "lookup", fmt.Sprintf("unknown output format %q", key), nil)
	}
	return preset, nil
}

// Keys returns all preset keys in stable order.
func Keys() []string {
	keys := make([]string, 0, len(presets))
	for key := range presets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// All returns every preset in key order.
func All() []Output {
	keys := Keys()
	outputs := make([]Output, 0, len(keys))
	for _, key := range keys {
		outputs = append(outputs, presets[key])
	}
	return outputs
}
