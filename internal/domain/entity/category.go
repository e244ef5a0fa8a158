package entity

// Category is one of a fixed, closed set of topic labels.
type Category string

// The full category set. Declaration order matters: the classifier breaks
// score ties by picking the first declared category.
const (
	CategoryWorld         Category = "World"
	CategoryPolitics      Category = "Politics"
	CategoryBusiness      Category = "Business"
	CategoryTechnology    Category = "Technology"
	CategoryScience       Category = "Science"
	CategoryHealth        Category = "Health"
	CategorySports        Category = "Sports"
	CategoryEntertainment Category = "Entertainment"
	CategoryProperty      Category = "Property"
	CategoryFinance       Category = "Finance"
	CategoryInsurance     Category = "Insurance"
	CategoryAI            Category = "AI"
	CategoryEnvironment   Category = "Environment"
	CategoryEducation     Category = "Education"
	CategoryAutomotive    Category = "Automotive"
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryWorld,
	CategoryPolitics,
	CategoryBusiness,
	CategoryTechnology,
	CategoryScience,
	CategoryHealth,
	CategorySports,
	CategoryEntertainment,
	CategoryProperty,
	CategoryFinance,
	CategoryInsurance,
	CategoryAI,
	CategoryEnvironment,
	CategoryEducation,
	CategoryAutomotive,
}

// Valid reports whether c is a member of the fixed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves a string to a Category, case-sensitively.
// Returns ErrInvalidInput wrapped in a ValidationError for unknown labels.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", &ValidationError{Field: "category", Message: "unknown category: " + s}
	}
	return c, nil
}
