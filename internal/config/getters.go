package config

import (
	"github.com/nibzard/todoboard/internal/store"
	"github.com/nibzard/todoboard/internal/todo"
)

// CategoryList returns the configured categories, or the built-in list when
// none are configured.
func (c *Config) CategoryList() []string {
	return store.New(store.WithCategories(c.Categories...)).Categories()
}

// StoreTemplates returns the configured templates, or the built-in set when
// none are configured.
func (c *Config) StoreTemplates() []store.Template {
	if len(c.Templates) == 0 {
		return store.DefaultTemplates()
	}
	out := make([]store.Template, 0, len(c.Templates))
	for _, tpl := range c.Templates {
		out = append(out, store.Template{
			Name:     tpl.Name,
			Title:    tpl.Title,
			Category: tpl.Category,
			Priority: todo.Priority(tpl.Priority),
		})
	}
	return out
}

// StoreOptions returns the store options implied by the configuration.
func (c *Config) StoreOptions() []store.Option {
	return []store.Option{
		store.WithCategories(c.Categories...),
		store.WithTemplates(c.StoreTemplates()...),
	}
}
