package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"merkaz_backend/internal/composer"
	"merkaz_backend/platform/apperr"
	"merkaz_backend/platform/sanitize"
)

// Language resolves the request locale, falling back to fallback when it is
// missing or unsupported.
func (r ComposeRequest) Language(fallback composer.Language) composer.Language {
	if lang, ok := composer.ParseLanguage(r.Locale); ok {
		return lang
	}
	return fallback
}

// ToSelection converts the wire request into a composer selection.
func (r ComposeRequest) ToSelection() (composer.Selection, error) {
	sel := composer.Selection{
		Contact: composer.Contact{
			Name:    sanitize.Text(r.Contact.Name),
			Phone:   sanitize.Text(r.Contact.Phone),
			City:    sanitize.Text(r.Contact.City),
			Urgency: sanitize.Text(r.Contact.Urgency),
			Details: sanitize.Text(r.Contact.Details),
		},
	}

	if r.Mode == ModeMulti {
		sel.Mode = composer.ModeMulti
		sel.Items = make([]composer.Line, 0, len(r.Items))
		for i, item := range r.Items {
			line, err := item.ToLine()
			if err != nil {
				return composer.Selection{}, withItemIndex(err, i)
			}
			sel.Items = append(sel.Items, line)
		}
		return sel, nil
	}

	sel.Mode = composer.ModeSingle
	if r.Line == nil || r.Line.isEmpty() {
		return sel, nil
	}
	line, err := r.Line.ToLine()
	if err != nil {
		return composer.Selection{}, err
	}
	sel.Line = line
	return sel, nil
}

// ItemsJSON is the raw item list stored with the lead, or nil outside multi
// mode.
func (r ComposeRequest) ItemsJSON() json.RawMessage {
	if r.Mode != ModeMulti {
		return nil
	}
	data, err := json.Marshal(r.Items)
	if err != nil {
		return nil
	}
	return data
}

func (l LineRequest) isEmpty() bool {
	return l == LineRequest{}
}

// ToLine converts one flat line into a ProductLine or a PackageLine.
func (l LineRequest) ToLine() (composer.Line, error) {
	if l.Kind == LineKindPackage {
		return l.toPackageLine()
	}
	return l.toProductLine()
}

func (l LineRequest) toProductLine() (composer.Line, error) {
	if l.PackageKind != "" || l.Accessories || l.MariageCount != "" || l.MaisonCount != "" {
		return nil, apperr.Validation("package options are not allowed on a product line")
	}
	category, ok := composer.ParseCategory(strings.TrimSpace(l.Category))
	if !ok {
		return nil, apperr.Validation("unknown category").WithDetails(l.Category)
	}

	var writing *composer.WritingChoice
	if l.WritingType != "" || strings.TrimSpace(l.CustomDescription) != "" {
		writing = &composer.WritingChoice{
			Type:   composer.WritingType(strings.TrimSpace(l.WritingType)),
			Custom: sanitize.Text(l.CustomDescription),
		}
	}

	line, err := composer.NewProductLine(category, l.Quantity, writing)
	if err != nil {
		return nil, err
	}
	return line, nil
}

func (l LineRequest) toPackageLine() (composer.Line, error) {
	if l.Category != "" || l.WritingType != "" || l.CustomDescription != "" {
		return nil, apperr.Validation("product options are not allowed on a package line")
	}
	kind, ok := composer.ParsePackageKind(strings.TrimSpace(l.PackageKind))
	if !ok {
		return nil, apperr.Validation("unknown package").WithDetails(l.PackageKind)
	}

	var (
		options composer.PackageOptions
		err     error
	)
	switch kind {
	case composer.PackageBarMitzvah:
		if l.MariageCount != "" || l.MaisonCount != "" {
			return nil, apperr.Validation("bar-mitzvah package only accepts accessories")
		}
		options = composer.BarMitzvahPackage{Accessories: l.Accessories}
	case composer.PackageWedding:
		if l.Accessories || l.MaisonCount != "" {
			return nil, apperr.Validation("mariage package only accepts mariageCount")
		}
		var count int
		if count, err = parseCount(l.MariageCount); err == nil {
			options, err = composer.NewWeddingPackage(count)
		}
	case composer.PackageHome:
		if l.Accessories || l.MariageCount != "" {
			return nil, apperr.Validation("maison package only accepts maisonCount")
		}
		var bulk int
		if bulk, err = parseCount(l.MaisonCount); err == nil {
			options, err = composer.NewHomePackage(bulk)
		}
	}
	if err != nil {
		return nil, err
	}

	line, err := composer.NewPackageLine(options, l.Quantity)
	if err != nil {
		return nil, err
	}
	return line, nil
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.Validation("count must be a number").WithDetails(s)
	}
	return n, nil
}

func withItemIndex(err error, index int) error {
	var e *apperr.Error
	if errors.As(err, &e) {
		return apperr.Validation(fmt.Sprintf("items[%d]: %s", index, e.Message)).WithDetails(e.Details)
	}
	return err
}
