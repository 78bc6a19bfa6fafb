package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDomainSelectors are the site rules shipped with the service.
var DefaultDomainSelectors = map[string][]string{
	"mistagogia.mk": {`//div[@class="single_post"]`},
}

// DefaultSelector lists common article containers, most specific first.
var DefaultSelector = []string{
	`//div[contains(concat(" ", normalize-space(@class), " "), " entry-content ")]`,
	`//div[contains(concat(" ", normalize-space(@class), " "), " post-content ")]`,
	`//div[contains(concat(" ", normalize-space(@class), " "), " article-content ")]`,
	`//div[contains(concat(" ", normalize-space(@class), " "), " article-body ")]`,
	`//*[@itemprop="articleBody"]`,
	`//div[@class="single_post"]`,
	`//article`,
	`//main`,
}

// xpathList accepts either a single expression or a list in YAML.
type xpathList []string

func (l *xpathList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = xpathList{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*l = list
		return nil
	}
	return fmt.Errorf("line %d: expected XPath string or list", value.Line)
}

// SelectorFile is the on-disk shape of SELECTORS_FILE.
type SelectorFile struct {
	DomainSelectors map[string]xpathList `yaml:"domain_selectors"`
	DefaultSelector []string             `yaml:"default_selector"`
}

// LoadSelectors merges the selector file at path over the built-in rules.
// A missing file leaves the built-in rules in place.
func LoadSelectors(path string) (map[string][]string, []string, error) {
	domains := make(map[string][]string, len(DefaultDomainSelectors))
	for host, exprs := range DefaultDomainSelectors {
		domains[host] = append([]string(nil), exprs...)
	}
	def := append([]string(nil), DefaultSelector...)

	if path == "" {
		return domains, def, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return domains, def, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read selector file: %w", err)
	}

	var file SelectorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse selector file %s: %w", path, err)
	}

	for host, exprs := range file.DomainSelectors {
		host = strings.ToLower(strings.TrimSpace(host))
		if host == "" {
			continue
		}
		domains[host] = cleanExpressions(exprs)
	}
	if file.DefaultSelector != nil {
		def = cleanExpressions(file.DefaultSelector)
	}
	return domains, def, nil
}

func cleanExpressions(exprs []string) []string {
	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
