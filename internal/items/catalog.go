package items

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lootlogger/internal/domain"
)

// definition is one item in the catalog file.
type definition struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
	// NotedFor is the unnoted item this id is the banknote of, 0 otherwise.
	NotedFor int `yaml:"noted_for"`
}

// Catalog resolves item ids to display metadata.
type Catalog struct {
	byID map[int]definition
}

// Load reads an item catalog from a yaml file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item catalog: %w", err)
	}

	var file struct {
		Items []definition `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse item catalog %s: %w", path, err)
	}

	byID := make(map[int]definition, len(file.Items))
	for _, def := range file.Items {
		byID[def.ID] = def
	}
	return &Catalog{byID: byID}, nil
}

// Name returns the display name for the item.
func (c *Catalog) Name(id int) (string, error) {
	def, ok := c.byID[id]
	if !ok {
		return "", fmt.Errorf("unknown item id %d", id)
	}
	return def.Name, nil
}

// Entry builds a drop entry for the item. Banknotes price as the item they
// represent.
func (c *Catalog) Entry(id, quantity int) (domain.ItemEntry, error) {
	def, ok := c.byID[id]
	if !ok {
		return domain.ItemEntry{}, fmt.Errorf("unknown item id %d", id)
	}

	price := def.Price
	if def.NotedFor != 0 {
		if real, ok := c.byID[def.NotedFor]; ok {
			price = real.Price
		}
	}
	return domain.ItemEntry{Name: def.Name, ID: id, Quantity: quantity, Price: price}, nil
}
