// Package palette assigns colors to task buckets for the chart.
package palette

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// defaultCycle is the built-in qualitative color cycle, assigned to buckets
// in first-seen order and reused when buckets outnumber it.
var defaultCycle = []string{
	"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a",
	"#19d3f3", "#ff6692", "#b6e880", "#ff97ff", "#fecb52",
}

// overrideSchema validates a palette file: a flat object of bucket name to
// #rrggbb color.
const overrideSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": {
    "type": "string",
    "pattern": "^#[0-9a-fA-F]{6}$"
  }
}`

// Palette hands out stable bucket colors.
type Palette struct {
	assigned  map[string]string
	order     []string
	next      int
	overrides map[string]string
}

// New returns a palette using the built-in cycle.
func New() *Palette {
	return &Palette{assigned: make(map[string]string)}
}

// SetOverrides pins specific buckets to specific colors. Buckets not listed
// keep cycling through the defaults.
func (p *Palette) SetOverrides(colors map[string]string) {
	p.overrides = colors
}

// Color returns the color for a bucket, assigning the next cycle color the
// first time a bucket is seen.
func (p *Palette) Color(bucket string) string {
	if c, ok := p.overrides[bucket]; ok {
		return c
	}
	if c, ok := p.assigned[bucket]; ok {
		return c
	}
	c := defaultCycle[p.next%len(defaultCycle)]
	p.next++
	p.assigned[bucket] = c
	p.order = append(p.order, bucket)
	return c
}

// Buckets returns the bucket names seen so far, in first-seen order.
func (p *Palette) Buckets() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// LoadOverrides reads a bucket-to-color JSON file and validates it against
// the palette schema before use. An invalid file is a configuration error,
// not something to silently skip.
func LoadOverrides(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette file: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("palette.schema.json", strings.NewReader(overrideSchema)); err != nil {
		return nil, fmt.Errorf("register palette schema: %w", err)
	}
	schema, err := compiler.Compile("palette.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile palette schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse palette file: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid palette file %s: %w", path, err)
	}

	var colors map[string]string
	if err := json.Unmarshal(data, &colors); err != nil {
		return nil, fmt.Errorf("parse palette file: %w", err)
	}
	return colors, nil
}
