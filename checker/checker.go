// Package checker renders component templates outside the browser to catch
// malformed directives and failing expressions before they ship.
package checker

import (
	"fmt"
	"maps"
	"os"

	"github.com/vcrobe/nojs-html/markup"
	"github.com/vcrobe/nojs-html/vdom"
)

// Reference stands in for a registered component during a dry render.
type Reference struct {
	Name string
}

// Result is the outcome of rendering one template.
type Result struct {
	Template Template
	Source   string
	HTML     string
	Err      error
}

// Checker renders templates with the settings of a Config.
type Checker struct {
	cfg      *Config
	registry map[string]any
}

// New returns a Checker whose component registry holds the configured
// component names and the struct of every discovered template.
func New(cfg *Config, templates []Template) *Checker {
	registry := make(map[string]any)
	for _, name := range cfg.Components {
		registry[name] = Reference{Name: name}
	}
	for _, t := range templates {
		if t.Schema.Type != "" {
			registry[t.Schema.Type] = Reference{Name: t.Schema.Type}
		}
	}
	return &Checker{cfg: cfg, registry: registry}
}

// Conflicts lists registered names the HTML parser would mangle.
func (c *Checker) Conflicts() []string {
	return markup.ConflictingTagNames(c.registry)
}

// Check reads and renders t. Fields and methods of the template's struct
// resolve to placeholders unless the configuration context provides them.
func (c *Checker) Check(t Template) Result {
	res := Result{Template: t}

	data, err := os.ReadFile(t.Path)
	if err != nil {
		res.Err = fmt.Errorf("failed to read template: %w", err)
		return res
	}
	res.Source = string(data)
	res.HTML, res.Err = c.Render(res.Source, t.Schema.Context())
	return res
}

// CheckAll checks every template in order.
func (c *Checker) CheckAll(templates []Template) []Result {
	results := make([]Result, 0, len(templates))
	for _, t := range templates {
		results = append(results, c.Check(t))
	}
	return results
}

// Render renders src to HTML. ctx is overlaid with the configured context.
func (c *Checker) Render(src string, ctx map[string]any) (string, error) {
	merged := make(map[string]any, len(ctx)+len(c.cfg.Context))
	maps.Copy(merged, ctx)
	maps.Copy(merged, c.cfg.Context)

	r, err := markup.New(markup.Options{
		NodeFactory:           vdom.CreateElement,
		EvaluationContext:     merged,
		ComponentRegistry:     c.registry,
		RawTemplateEvaluation: c.cfg.RawTemplateEvaluation,
		ReplaceAllTokens:      c.cfg.ReplaceAllTokens,
		AttributeMap:          c.cfg.AttributeMap,
		DevMode:               c.cfg.Dev,
	})
	if err != nil {
		return "", err
	}

	nodes, err := r.Render(src)
	if err != nil {
		return "", err
	}
	return vdom.HTMLString(nodes...)
}
