package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/forja/internal/models"
)

//go:embed exercises.toml
var builtin []byte

var ErrNotFound = errors.New("exercise not found")

// Catalog is the read-only exercise library. It is static for the lifetime
// of the process.
type Catalog struct {
	exercises []models.Exercise
	byID      map[string]int
}

// Builtin returns the catalog shipped with the binary.
func Builtin() (*Catalog, error) {
	return Parse(builtin)
}

// Parse builds a catalog from TOML in the same shape as import-exercises files.
func Parse(data []byte) (*Catalog, error) {
	var imp models.ExerciseImport
	if err := toml.Unmarshal(data, &imp); err != nil {
		return nil, fmt.Errorf("Invalid TOML format: %w", err)
	}

	c := &Catalog{byID: make(map[string]int, len(imp.Exercises))}
	for _, def := range imp.Exercises {
		if def.ID == "" || def.Name == "" {
			return nil, fmt.Errorf("exercise definition needs both id and name (got id=%q name=%q)", def.ID, def.Name)
		}
		if _, dup := c.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate exercise id %q", def.ID)
		}
		c.byID[def.ID] = len(c.exercises)
		c.exercises = append(c.exercises, def.ToExercise())
	}
	return c, nil
}

func (c *Catalog) Get(id string) (models.Exercise, error) {
	idx, ok := c.byID[id]
	if !ok {
		return models.Exercise{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.exercises[idx], nil
}

// FindByName matches display names case-insensitively.
func (c *Catalog) FindByName(name string) (models.Exercise, error) {
	for _, ex := range c.exercises {
		if strings.EqualFold(ex.Name, strings.TrimSpace(name)) {
			return ex, nil
		}
	}
	return models.Exercise{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Resolve accepts either an id or a display name.
func (c *Catalog) Resolve(ref string) (models.Exercise, error) {
	if ex, err := c.Get(ref); err == nil {
		return ex, nil
	}
	return c.FindByName(ref)
}

// List returns every exercise in catalog order.
func (c *Catalog) List() []models.Exercise {
	return slices.Clone(c.exercises)
}

func (c *Catalog) ByMuscle(muscle string) []models.Exercise {
	var out []models.Exercise
	for _, ex := range c.exercises {
		if slices.ContainsFunc(ex.PrimaryMuscles, func(m string) bool {
			return strings.EqualFold(m, muscle)
		}) {
			out = append(out, ex)
		}
	}
	return out
}
