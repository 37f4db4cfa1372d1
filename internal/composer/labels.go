package composer

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed labels.yaml
var labelsYAML []byte

type fieldLabels struct {
	Product       string `yaml:"product"`
	Package       string `yaml:"package"`
	Quantity      string `yaml:"quantity"`
	ItemsHeader   string `yaml:"itemsHeader"`
	Item          string `yaml:"item"`
	City          string `yaml:"city"`
	Urgency       string `yaml:"urgency"`
	Name          string `yaml:"name"`
	Phone         string `yaml:"phone"`
	DetailsHeader string `yaml:"detailsHeader"`
}

type inclusionLabels struct {
	BarMitzvahBasic       string `yaml:"barMitzvahBasic"`
	BarMitzvahAccessories string `yaml:"barMitzvahAccessories"`
	Wedding               string `yaml:"wedding"`
	Home5                 string `yaml:"home5"`
	Home10                string `yaml:"home10"`
	HomeDefault           string `yaml:"homeDefault"`
}

type labelSet struct {
	Direction    string                 `yaml:"direction"`
	Placeholder  string                 `yaml:"placeholder"`
	Greeting     string                 `yaml:"greeting"`
	Fields       fieldLabels            `yaml:"fields"`
	Categories   map[Category]string    `yaml:"categories"`
	WritingTypes map[WritingType]string `yaml:"writingTypes"`
	Packages     map[PackageKind]string `yaml:"packages"`
	Inclusions   inclusionLabels        `yaml:"inclusions"`
}

var dictionary = mustLoadLabels(labelsYAML)

func labelsFor(l Language) *labelSet {
	if set, ok := dictionary[l]; ok {
		return set
	}
	return dictionary[DefaultLanguage]
}

func mustLoadLabels(data []byte) map[Language]*labelSet {
	dict, err := loadLabels(data)
	if err != nil {
		panic("composer: " + err.Error())
	}
	return dict
}

func loadLabels(data []byte) (map[Language]*labelSet, error) {
	var raw map[Language]*labelSet
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	for _, lang := range Languages {
		set, ok := raw[lang]
		if !ok || set == nil {
			return nil, fmt.Errorf("labels: missing language %q", lang)
		}
		if err := set.check(); err != nil {
			return nil, fmt.Errorf("labels %s: %w", lang, err)
		}
	}
	return raw, nil
}

func (s *labelSet) check() error {
	if s.Direction != "ltr" && s.Direction != "rtl" {
		return fmt.Errorf("direction must be ltr or rtl, got %q", s.Direction)
	}
	required := map[string]string{
		"placeholder":                      s.Placeholder,
		"greeting":                         s.Greeting,
		"fields.itemsHeader":               s.Fields.ItemsHeader,
		"fields.detailsHeader":             s.Fields.DetailsHeader,
		"inclusions.barMitzvahBasic":       s.Inclusions.BarMitzvahBasic,
		"inclusions.barMitzvahAccessories": s.Inclusions.BarMitzvahAccessories,
		"inclusions.home5":                 s.Inclusions.Home5,
		"inclusions.home10":                s.Inclusions.Home10,
		"inclusions.homeDefault":           s.Inclusions.HomeDefault,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is empty", key)
		}
	}

	templates := map[string]struct {
		value string
		args  int
	}{
		"fields.product":     {s.Fields.Product, 1},
		"fields.package":     {s.Fields.Package, 1},
		"fields.quantity":    {s.Fields.Quantity, 1},
		"fields.item":        {s.Fields.Item, 2},
		"fields.city":        {s.Fields.City, 1},
		"fields.urgency":     {s.Fields.Urgency, 1},
		"fields.name":        {s.Fields.Name, 1},
		"fields.phone":       {s.Fields.Phone, 1},
		"inclusions.wedding": {s.Inclusions.Wedding, 1},
	}
	for key, tpl := range templates {
		if strings.Count(tpl.value, "%s") != tpl.args || strings.Count(tpl.value, "%") != tpl.args {
			return fmt.Errorf("%s must contain exactly %d %%s verb(s)", key, tpl.args)
		}
	}

	for _, c := range Categories {
		if strings.TrimSpace(s.Categories[c]) == "" {
			return fmt.Errorf("category %q has no label", c)
		}
	}
	for _, w := range WritingTypes {
		if strings.TrimSpace(s.WritingTypes[w]) == "" {
			return fmt.Errorf("writing type %q has no label", w)
		}
	}
	for _, k := range PackageKinds {
		if strings.TrimSpace(s.Packages[k]) == "" {
			return fmt.Errorf("package %q has no label", k)
		}
	}
	return nil
}

// CategoryLabel returns the display label of a category.
func CategoryLabel(l Language, c Category) string {
	return labelsFor(l).Categories[c]
}

// WritingTypeLabel returns the display label of a parchment writing type.
func WritingTypeLabel(l Language, w WritingType) string {
	return labelsFor(l).WritingTypes[w]
}

// PackageLabel returns the display label of a package.
func PackageLabel(l Language, k PackageKind) string {
	return labelsFor(l).Packages[k]
}
