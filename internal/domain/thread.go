package domain

// Thread represents a book discussion thread, either created by a user
// or ingested from an external community source such as Reddit.
type Thread struct {
	Entity
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Upvotes     int64    `json:"upvotes"`
	Comments    int64    `json:"comments"`
	Tags        []string `json:"tags,omitempty"`
	CreatorID   string   `json:"creator_id,omitempty"`
	BookIDs     []string `json:"book_ids,omitempty"`
	// Source identifies where an imported thread came from ("reddit").
	// Empty for threads created in-app.
	Source string `json:"source,omitempty"`
	// Permalink is the canonical URL at the source. Imported threads are
	// deduplicated on it.
	Permalink string `json:"permalink,omitempty"`
}
