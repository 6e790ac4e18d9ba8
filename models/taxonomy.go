package models

// TaxonomyKind names a reference-data catalogue.
type TaxonomyKind string

const (
	KindPracticeArea   TaxonomyKind = "practice_area"
	KindSpecialization TaxonomyKind = "specialization"
	KindLanguage       TaxonomyKind = "language"
	KindCountry        TaxonomyKind = "country"
	KindState          TaxonomyKind = "state"
	KindCity           TaxonomyKind = "city"
)

// TaxonomyItem is one reference-data entry (a practice area, a city, ...).
type TaxonomyItem struct {
	ID       string       `bson:"id" json:"id"`
	Kind     TaxonomyKind `bson:"kind" json:"kind"`
	Name     string       `bson:"name" json:"name"`
	ParentID string       `bson:"parentId,omitempty" json:"parentId,omitempty"`
}
