package models

import "time"

// Resource is a bookable physical space. Rows are maintained by the
// periodic catalog import; the availability engine treats them as
// read-only.
type Resource struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Code      string    `db:"code"`
	Category  string    `db:"category"`
	Capacity  *int      `db:"capacity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// AliasKind tags how an alias value should be interpreted.
type AliasKind string

const (
	AliasKindForeignID AliasKind = "foreign_id"
	AliasKindName      AliasKind = "name"
	AliasKindCode      AliasKind = "code"
)

// ResourceAlias maps an external identifier to a canonical resource.
// (Kind, Value) is unique; a resource may carry many aliases.
type ResourceAlias struct {
	ID         int64     `db:"id"`
	ResourceID int64     `db:"resource_id"`
	Kind       AliasKind `db:"kind"`
	Value      string    `db:"value"`
	CreatedAt  time.Time `db:"created_at"`
}
