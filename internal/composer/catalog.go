package composer

// Category is a product or service in the catalog.
type Category string

const (
	CategoryMezouza Category = "mezouza"
	CategoryTefilin Category = "tefilin"
	CategorySefer   Category = "sefer"
	CategoryMeguila Category = "meguila"
	// CategoryKlaf is writing on parchment; it is the only category that
	// carries a WritingType.
	CategoryKlaf Category = "klaf"
)

// Categories lists the catalog in display order.
var Categories = []Category{CategoryMezouza, CategoryTefilin, CategorySefer, CategoryMeguila, CategoryKlaf}

// ParseCategory returns the category with the given identifier.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// WritingType is what gets written on parchment.
type WritingType string

const (
	WritingKetouba       WritingType = "ketouba"
	WritingBirkatHabayit WritingType = "birkat-habayit"
	// WritingOther requires a free-text description from the visitor.
	WritingOther WritingType = "autre"
)

// WritingTypes lists the parchment writing types in display order.
var WritingTypes = []WritingType{WritingKetouba, WritingBirkatHabayit, WritingOther}

// ParseWritingType returns the writing type with the given identifier.
func ParseWritingType(s string) (WritingType, bool) {
	for _, w := range WritingTypes {
		if string(w) == s {
			return w, true
		}
	}
	return "", false
}

// PackageKind identifies a bundled offer.
type PackageKind string

const (
	PackageBarMitzvah PackageKind = "bar-mitzvah"
	PackageWedding    PackageKind = "mariage"
	PackageHome       PackageKind = "maison"
)

// PackageKinds lists the packages in display order.
var PackageKinds = []PackageKind{PackageBarMitzvah, PackageWedding, PackageHome}

// ParsePackageKind returns the package kind with the given identifier.
func ParsePackageKind(s string) (PackageKind, bool) {
	for _, k := range PackageKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Allowed sub-option values. Zero means "not chosen".
var (
	WeddingMezuzahCounts = []int{2, 3, 4}
	HomeBulkCounts       = []int{5, 10}
)

// DefaultWeddingMezuzahCount is rendered when the visitor did not choose.
const DefaultWeddingMezuzahCount = 3

func containsInt(values []int, v int) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
