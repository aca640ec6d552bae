package settings

import (
	_ "embed"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var categoriesYAML []byte

// CustomGroup names the group of keywords that belong to no category.
const CustomGroup = "Custom"

// Category is a named group of treatment keywords.
type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Catalog is the ordered list of built-in treatment categories.
type Catalog []Category

// ErrNoCategory is returned when a selection names no valid category.
var ErrNoCategory = eris.New("no valid categories selected")

// ParseCatalog parses a YAML document with a top-level "categories" list.
func ParseCatalog(data []byte) (Catalog, error) {
	var doc struct {
		Categories Catalog `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "settings: parse categories")
	}
	if len(doc.Categories) == 0 {
		return nil, eris.New("settings: categories document is empty")
	}
	return doc.Categories, nil
}

// Categories returns the built-in catalog.
func Categories() Catalog {
	c, err := ParseCatalog(categoriesYAML)
	if err != nil {
		// The embedded document is part of the binary.
		panic(err)
	}
	return c
}

// AllKeywords returns every keyword of the catalog in category order.
func (c Catalog) AllKeywords() []string {
	var out []string
	for _, cat := range c {
		out = append(out, cat.Keywords...)
	}
	return out
}

// Group is a category name with the active keywords that fall in it.
type Group struct {
	Name     string
	Keywords []string
}

// Group sorts the given keywords into catalog categories, in catalog order.
// Keywords outside the catalog end up in a trailing CustomGroup. Empty
// groups are omitted.
func (c Catalog) Group(keywords []string) []Group {
	active := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		active[k] = true
	}

	known := make(map[string]bool)
	var groups []Group
	for _, cat := range c {
		var hits []string
		for _, k := range cat.Keywords {
			known[k] = true
			if active[k] {
				hits = append(hits, k)
			}
		}
		if len(hits) > 0 {
			groups = append(groups, Group{Name: cat.Name, Keywords: hits})
		}
	}

	var custom []string
	for _, k := range keywords {
		if !known[k] {
			custom = append(custom, k)
		}
	}
	if len(custom) > 0 {
		groups = append(groups, Group{Name: CustomGroup, Keywords: custom})
	}
	return groups
}

// Select resolves a menu selection such as "1,3,5" (1-based) or "alle"/"all"
// into the union of the chosen categories' keywords and their names.
// Unknown entries are ignored.
func (c Catalog) Select(selection string) ([]string, []string, error) {
	selection = strings.TrimSpace(selection)
	switch strings.ToLower(selection) {
	case "alle", "all":
		names := make([]string, len(c))
		for i, cat := range c {
			names[i] = cat.Name
		}
		return c.AllKeywords(), names, nil
	}

	var keywords, names []string
	chosen := make(map[int]bool)
	for _, part := range strings.Split(selection, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > len(c) || chosen[n] {
			continue
		}
		chosen[n] = true
		cat := c[n-1]
		keywords = append(keywords, cat.Keywords...)
		names = append(names, cat.Name)
	}

	if len(keywords) == 0 {
		return nil, nil, ErrNoCategory
	}
	return keywords, names, nil
}
