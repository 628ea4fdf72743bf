package normalize

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

//go:embed shapes.yaml
var shapesYAML []byte

// Record is a normalized entity: every raw field plus every declared field.
type Record map[string]any

// ID returns the record id as an int when it is numeric.
func (r Record) ID() (int, bool) {
	switch v := r["id"].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// Field declares one canonical attribute and its substitute value.
type Field struct {
	Name    string `yaml:"name"`
	Default any    `yaml:"default"`
}

// Shape is the canonical layout of one collection.
type Shape struct {
	Kind    models.Kind `yaml:"-"`
	Fields  []Field     `yaml:"fields"`
	Columns []string    `yaml:"columns"`
}

// LoadShapes parses a shapes document keyed by collection name.
func LoadShapes(data []byte) (map[models.Kind]Shape, error) {
	var raw map[string]Shape
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing entity shapes: %w", err)
	}

	shapes := make(map[models.Kind]Shape, len(raw))
	for name, shape := range raw {
		kind, err := models.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("parsing entity shapes: %w", err)
		}
		shape.Kind = kind
		shapes[kind] = shape
	}
	return shapes, nil
}

var (
	defaultShapes     map[models.Kind]Shape
	defaultShapesOnce sync.Once
)

// ShapeFor returns the built-in shape of a collection.
func ShapeFor(kind models.Kind) Shape {
	defaultShapesOnce.Do(func() {
		shapes, err := LoadShapes(shapesYAML)
		if err != nil {
			panic(err)
		}
		defaultShapes = shapes
	})
	return defaultShapes[kind]
}

type Normalizer struct {
	logger zerolog.Logger
}

func New() *Normalizer {
	return &Normalizer{logger: log.With().Str("component", "normalizer").Logger()}
}

// Normalize drops every entry that is not an object or has a falsy id,
// logging each drop, and fills the declared fields of the rest. It never
// fails the batch.
func (n *Normalizer) Normalize(raw []gjson.Result, shape Shape) []Record {
	records := make([]Record, 0, len(raw))

	for i, entry := range raw {
		if !entry.IsObject() || !Truthy(entry.Get("id")) {
			n.logger.Warn().
				Str("kind", shape.Kind.String()).
				Int("index", i).
				Str("record", entry.Raw).
				Msg("dropping invalid entry")
			continue
		}

		fields, _ := entry.Value().(map[string]interface{})
		record := make(Record, len(fields)+len(shape.Fields))
		for k, v := range fields {
			record[k] = v
		}

		for _, field := range shape.Fields {
			if value := entry.Get(field.Name); Truthy(value) {
				record[field.Name] = value.Value()
			} else {
				record[field.Name] = defaultValue(field.Default)
			}
		}

		records = append(records, record)
	}

	return records
}

// defaultValue hands out a fresh value so records never share a slice.
func defaultValue(def any) any {
	switch v := def.(type) {
	case []interface{}:
		return make([]interface{}, 0, len(v))
	case map[string]interface{}:
		return make(map[string]interface{}, len(v))
	}
	return def
}
