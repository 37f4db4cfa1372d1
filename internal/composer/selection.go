package composer

import (
	"strings"

	"merkaz_backend/platform/apperr"
)

// Mode tells whether a request carries one configured line or a list.
type Mode int

const (
	ModeSingle Mode = iota
	ModeMulti
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == ModeMulti {
		return "multi"
	}
	return "single"
}

// Contact is what the visitor tells us about themselves. Urgency is free
// text such as "avant Pessah".
type Contact struct {
	Name    string
	Phone   string
	City    string
	Urgency string
	Details string
}

// Selection is a visitor's request as built by the order form.
// Line is used in ModeSingle, Items in ModeMulti.
type Selection struct {
	Mode    Mode
	Line    Line
	Items   []Line
	Contact Contact
}

// Lines returns the configured lines in output order.
func (s Selection) Lines() []Line {
	if s.Mode == ModeMulti {
		return s.Items
	}
	if s.Line == nil {
		return nil
	}
	return []Line{s.Line}
}

// ProductID is the catalog identifier of the single-mode line, or "" in
// multi mode.
func (s Selection) ProductID() string {
	if s.Mode == ModeMulti || s.Line == nil {
		return ""
	}
	return s.Line.ID()
}

// Line is one configured item. It is implemented by ProductLine and
// PackageLine only.
type Line interface {
	// ID is the catalog identifier (category or package kind).
	ID() string
	quantity() string
	describe(set *labelSet) string
}

// WritingChoice is the parchment writing sub-option of a klaf line.
type WritingChoice struct {
	Type WritingType
	// Custom is only read when Type is WritingOther.
	Custom string
}

// ProductLine is a single catalog product.
type ProductLine struct {
	Category Category
	Quantity string
	Writing  *WritingChoice
}

// NewProductLine validates the category and its writing sub-option.
func NewProductLine(category Category, quantity string, writing *WritingChoice) (ProductLine, error) {
	if _, ok := ParseCategory(string(category)); !ok {
		return ProductLine{}, apperr.Validation("unknown category").WithDetails(string(category))
	}
	if writing != nil {
		if category != CategoryKlaf {
			return ProductLine{}, apperr.Validation("writing type is only allowed for klaf")
		}
		if writing.Type != "" {
			if _, ok := ParseWritingType(string(writing.Type)); !ok {
				return ProductLine{}, apperr.Validation("unknown writing type").WithDetails(string(writing.Type))
			}
		}
		if writing.Type != WritingOther && strings.TrimSpace(writing.Custom) != "" {
			return ProductLine{}, apperr.Validation("custom description requires writing type autre")
		}
	}
	return ProductLine{Category: category, Quantity: NormalizeQuantity(quantity), Writing: writing}, nil
}

func (p ProductLine) ID() string { return string(p.Category) }

func (p ProductLine) quantity() string { return NormalizeQuantity(p.Quantity) }

// PackageOptions carries the kind-specific sub-options of a package. It is
// implemented by BarMitzvahPackage, WeddingPackage and HomePackage only.
type PackageOptions interface {
	Kind() PackageKind
	inclusion(set *labelSet) string
}

// BarMitzvahPackage chooses between the basic and the accessories bundle.
type BarMitzvahPackage struct {
	Accessories bool
}

func (BarMitzvahPackage) Kind() PackageKind { return PackageBarMitzvah }

// WeddingPackage carries the number of mezuzot. Zero means unset.
type WeddingPackage struct {
	MezuzahCount int
}

func (WeddingPackage) Kind() PackageKind { return PackageWedding }

// NewWeddingPackage rejects counts outside WeddingMezuzahCounts.
func NewWeddingPackage(count int) (WeddingPackage, error) {
	if count != 0 && !containsInt(WeddingMezuzahCounts, count) {
		return WeddingPackage{}, apperr.Validation("wedding mezuzah count must be 2, 3 or 4")
	}
	return WeddingPackage{MezuzahCount: count}, nil
}

// HomePackage carries the bulk mezuzah count. Zero means unset.
type HomePackage struct {
	Bulk int
}

func (HomePackage) Kind() PackageKind { return PackageHome }

// NewHomePackage rejects counts outside HomeBulkCounts.
func NewHomePackage(bulk int) (HomePackage, error) {
	if bulk != 0 && !containsInt(HomeBulkCounts, bulk) {
		return HomePackage{}, apperr.Validation("home bulk count must be 5 or 10")
	}
	return HomePackage{Bulk: bulk}, nil
}

// PackageLine is a bundled offer.
type PackageLine struct {
	Quantity string
	Options  PackageOptions
}

// NewPackageLine requires options; use the package constructors to validate
// their values.
func NewPackageLine(options PackageOptions, quantity string) (PackageLine, error) {
	if options == nil {
		return PackageLine{}, apperr.Validation("package options are required")
	}
	return PackageLine{Quantity: NormalizeQuantity(quantity), Options: options}, nil
}

func (p PackageLine) ID() string {
	if p.Options == nil {
		return ""
	}
	return string(p.Options.Kind())
}

func (p PackageLine) quantity() string { return NormalizeQuantity(p.Quantity) }

// NormalizeQuantity trims a quantity token and defaults it to "1".
// No numeric validation happens here.
func NormalizeQuantity(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return "1"
	}
	return q
}
