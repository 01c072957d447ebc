package entity

// Council is a local council holding TLM inventory. The core API reports
// either region or district depending on endpoint version; District is the
// field scope resolution keys on.
type Council struct {
	ID       int64
	Name     string
	District string
	Region   string
	Code     string
}

// Item is a teaching-and-learning material in the national catalog.
type Item struct {
	ID       int64
	Name     string
	Code     string
	Category string
	Unit     string // counting unit, e.g. "piece", "box", "set"
}
