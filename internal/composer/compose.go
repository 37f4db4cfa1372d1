// Package composer renders a visitor's request into the text message sent to
// the office over WhatsApp. Rendering is pure: the same selection and language
// always give the same bytes.
package composer

import (
	"fmt"
	"strconv"
	"strings"
)

// Compose renders the selection in the given language. It never fails:
// blank display fields are replaced by the language placeholder.
func Compose(sel Selection, lang Language) string {
	set := labelsFor(lang)

	blocks := []string{
		set.Greeting,
		selectionBlock(sel, set),
		contactBlock(sel.Contact, set),
	}
	if details := strings.TrimSpace(sel.Contact.Details); details != "" {
		blocks = append(blocks, set.Fields.DetailsHeader+"\n"+details)
	}
	return strings.Join(blocks, "\n\n")
}

func selectionBlock(sel Selection, set *labelSet) string {
	if sel.Mode == ModeMulti {
		lines := make([]string, 0, len(sel.Items)+1)
		lines = append(lines, set.Fields.ItemsHeader)
		if len(sel.Items) == 0 {
			lines = append(lines, "- "+set.Placeholder)
		}
		for _, item := range sel.Items {
			if item == nil {
				continue
			}
			lines = append(lines, fmt.Sprintf(set.Fields.Item, item.describe(set), item.quantity()))
		}
		return strings.Join(lines, "\n")
	}

	switch line := sel.Line.(type) {
	case PackageLine:
		return fmt.Sprintf(set.Fields.Package, line.describe(set)) + "\n" +
			fmt.Sprintf(set.Fields.Quantity, line.quantity())
	case ProductLine:
		return fmt.Sprintf(set.Fields.Product, line.describe(set)) + "\n" +
			fmt.Sprintf(set.Fields.Quantity, line.quantity())
	default:
		return fmt.Sprintf(set.Fields.Product, set.Placeholder) + "\n" +
			fmt.Sprintf(set.Fields.Quantity, NormalizeQuantity(""))
	}
}

func contactBlock(c Contact, set *labelSet) string {
	lines := []string{fmt.Sprintf(set.Fields.City, orPlaceholder(c.City, set))}
	if urgency := strings.TrimSpace(c.Urgency); urgency != "" {
		lines = append(lines, fmt.Sprintf(set.Fields.Urgency, urgency))
	}
	lines = append(lines, fmt.Sprintf(set.Fields.Name, orPlaceholder(c.Name, set)))
	if phone := strings.TrimSpace(c.Phone); phone != "" {
		lines = append(lines, fmt.Sprintf(set.Fields.Phone, phone))
	}
	return strings.Join(lines, "\n")
}

func (p ProductLine) describe(set *labelSet) string {
	label := orPlaceholder(set.Categories[p.Category], set)
	if p.Category != CategoryKlaf {
		return label
	}
	return label + " — " + p.writingLabel(set)
}

func (p ProductLine) writingLabel(set *labelSet) string {
	if p.Writing == nil {
		return set.Placeholder
	}
	if p.Writing.Type == WritingOther {
		return orPlaceholder(p.Writing.Custom, set)
	}
	return orPlaceholder(set.WritingTypes[p.Writing.Type], set)
}

func (p PackageLine) describe(set *labelSet) string {
	if p.Options == nil {
		return set.Placeholder
	}
	label := orPlaceholder(set.Packages[p.Options.Kind()], set)
	return label + " (" + p.Options.inclusion(set) + ")"
}

func (b BarMitzvahPackage) inclusion(set *labelSet) string {
	if b.Accessories {
		return set.Inclusions.BarMitzvahAccessories
	}
	return set.Inclusions.BarMitzvahBasic
}

func (w WeddingPackage) inclusion(set *labelSet) string {
	count := w.MezuzahCount
	if !containsInt(WeddingMezuzahCounts, count) {
		count = DefaultWeddingMezuzahCount
	}
	return fmt.Sprintf(set.Inclusions.Wedding, strconv.Itoa(count))
}

func (h HomePackage) inclusion(set *labelSet) string {
	switch h.Bulk {
	case 5:
		return set.Inclusions.Home5
	case 10:
		return set.Inclusions.Home10
	default:
		return set.Inclusions.HomeDefault
	}
}

func orPlaceholder(value string, set *labelSet) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return set.Placeholder
}
