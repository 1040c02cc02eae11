package models

// TagCount is a tag name with its usage count, used by the popular,
// search, and related aggregations.
type TagCount struct {
	Tag   string `json:"tag" db:"tag"`
	Count int    `json:"count" db:"count"`
}

// TagCategory groups tags under a named category with a total usage count.
type TagCategory struct {
	Category string `json:"category" db:"category"`
	Count    int    `json:"count" db:"count"`
}
