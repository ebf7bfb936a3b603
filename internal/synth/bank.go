// ABOUTME: Embedded response template bank parsed once at package init
// ABOUTME: Templates are text/template strings rendered with missingkey=zero

package synth

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed templates/bank.yaml
var bankYAML []byte

type bankFile struct {
	Templates map[string]string `yaml:"templates"`
}

// Bank is an immutable set of parsed templates keyed by template key.
type Bank struct {
	raw    map[string]string
	parsed map[string]*template.Template
}

// ParseBank decodes bank YAML and compiles every template.
func ParseBank(data []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse template bank: %w", err)
	}
	if len(f.Templates) == 0 {
		return nil, fmt.Errorf("parse template bank: no templates")
	}

	b := &Bank{
		raw:    make(map[string]string, len(f.Templates)),
		parsed: make(map[string]*template.Template, len(f.Templates)),
	}
	for key, text := range f.Templates {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("template %q is empty", key)
		}
		tmpl, err := template.New(key).Option("missingkey=zero").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", key, err)
		}
		b.raw[key] = text
		b.parsed[key] = tmpl
	}
	return b, nil
}

// defaultBank is the compiled-in bank. A malformed embedded file is a
// build defect, so it panics at init.
var defaultBank = func() *Bank {
	b, err := ParseBank(bankYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded template bank: %v", err))
	}
	return b
}()

// DefaultBank returns the compiled-in template bank.
func DefaultBank() *Bank {
	return defaultBank
}

// Has reports whether key exists.
func (b *Bank) Has(key string) bool {
	_, ok := b.parsed[key]
	return ok
}

// Keys returns every template key, sorted.
func (b *Bank) Keys() []string {
	keys := make([]string, 0, len(b.parsed))
	for k := range b.parsed {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Raw returns the unrendered template text for key.
func (b *Bank) Raw(key string) (string, bool) {
	text, ok := b.raw[key]
	return text, ok
}

// Render executes the template for key with vars.
func (b *Bank) Render(key string, vars map[string]string) (string, error) {
	tmpl, ok := b.parsed[key]
	if !ok {
		return "", fmt.Errorf("unknown template %q", key)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("render template %q: %w", key, err)
	}
	return sb.String(), nil
}
