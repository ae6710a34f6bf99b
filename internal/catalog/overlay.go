package catalog

import (
	"errors"
	"fmt"
	"os"
)

// Load returns the builtin catalog extended with the user's exercises file.
// A missing file is fine.
func Load(userPath string) (*Catalog, error) {
	c, err := Builtin()
	if err != nil {
		return nil, err
	}
	if userPath == "" {
		return c, nil
	}

	data, err := os.ReadFile(userPath)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to read %s: %w", userPath, err)
	}

	extra, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", userPath, err)
	}
	if err := c.Merge(extra); err != nil {
		return nil, fmt.Errorf("%s: %w", userPath, err)
	}
	return c, nil
}

// Merge appends the exercises of other. Ids must not collide.
func (c *Catalog) Merge(other *Catalog) error {
	for _, ex := range other.exercises {
		if _, dup := c.byID[ex.ID]; dup {
			return fmt.Errorf("duplicate exercise id %q", ex.ID)
		}
	}
	for _, ex := range other.exercises {
		c.byID[ex.ID] = len(c.exercises)
		c.exercises = append(c.exercises, ex)
	}
	return nil
}
