// Package catalog loads and serves the static crop input catalog: the
// mapping from crop type to the input kinds applicable to it. The
// catalog is loaded once at startup and never mutated afterwards.
package catalog

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/farmtech/fieldbook/internal/apperr"
	pkgconfig "github.com/farmtech/fieldbook/pkg/config"
)

// InputKind describes one category of agricultural input.
type InputKind struct {
	Name string `yaml:"name"`
	Unit string `yaml:"unit"`
}

// Validate validates an input kind entry.
func (k InputKind) Validate() error {
	return validation.ValidateStruct(&k,
		validation.Field(&k.Name, validation.Required),
		validation.Field(&k.Unit, validation.Required),
	)
}

// Catalog maps crop types to their applicable input kinds. Both levels
// preserve the declaration order of the source document; the flattening
// codec depends on that order being stable.
type Catalog struct {
	crops *orderedmap.OrderedMap[string, *orderedmap.OrderedMap[string, InputKind]]
}

// Load reads the catalog document at path. A failure here is fatal to startup.
func Load(path string) (*Catalog, error) {
	var c Catalog
	if err := pkgconfig.Load(path, &c); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return &c, nil
}

// UnmarshalYAML decodes the catalog document, keeping key order intact.
// A plain map would lose the declaration order of crops and kinds.
func (c *Catalog) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("catalog: document root must be a mapping")
	}
	c.crops = orderedmap.New[string, *orderedmap.OrderedMap[string, InputKind]]()
	for i := 0; i < len(value.Content); i += 2 {
		cropNode, kindsNode := value.Content[i], value.Content[i+1]
		if kindsNode.Kind != yaml.MappingNode {
			return fmt.Errorf("catalog: crop %q: expected a mapping of input kinds", cropNode.Value)
		}
		kinds := orderedmap.New[string, InputKind]()
		for j := 0; j < len(kindsNode.Content); j += 2 {
			kindNode, infoNode := kindsNode.Content[j], kindsNode.Content[j+1]
			var info InputKind
			if err := infoNode.Decode(&info); err != nil {
				return fmt.Errorf("catalog: crop %q, input %q: %w", cropNode.Value, kindNode.Value, err)
			}
			kinds.Set(kindNode.Value, info)
		}
		c.crops.Set(cropNode.Value, kinds)
	}
	return nil
}

// Validate checks that at least one crop type is defined and that every
// input kind carries a display name and a unit.
func (c *Catalog) Validate() error {
	if c.crops == nil || c.crops.Len() == 0 {
		return fmt.Errorf("catalog: no crop types defined")
	}
	for crop := c.crops.Oldest(); crop != nil; crop = crop.Next() {
		for kind := crop.Value.Oldest(); kind != nil; kind = kind.Next() {
			if err := kind.Value.Validate(); err != nil {
				return fmt.Errorf("catalog: crop %q, input %q: %w", crop.Key, kind.Key, err)
			}
		}
	}
	return nil
}

// CropTypes returns the crop types in declaration order.
func (c *Catalog) CropTypes() []string {
	out := make([]string, 0, c.crops.Len())
	for crop := c.crops.Oldest(); crop != nil; crop = crop.Next() {
		out = append(out, crop.Key)
	}
	return out
}

// Has reports whether cropType is defined in the catalog.
func (c *Catalog) Has(cropType string) bool {
	_, ok := c.crops.Get(cropType)
	return ok
}

// Kinds returns the input kinds applicable to cropType in declaration
// order. The returned map is shared and must be treated as read-only.
func (c *Catalog) Kinds(cropType string) (*orderedmap.OrderedMap[string, InputKind], error) {
	kinds, ok := c.crops.Get(cropType)
	if !ok {
		return nil, fmt.Errorf("catalog: %q: %w", cropType, apperr.ErrUnknownCrop)
	}
	return kinds, nil
}
