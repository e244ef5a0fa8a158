package entity

// TrendingTopic is a derived ranking entry, never stored independently.
// Name is a normalized keyword extracted from article titles, Count its
// occurrence frequency within the current snapshot, and Sentiment the
// running average tone of the contributing articles.
type TrendingTopic struct {
	Name      string
	Count     int
	Sentiment float64
	Category  Category
}
