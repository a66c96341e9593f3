package model

// Country is a top-level geographic reference record.  Country names are
// globally unique.  This struct corresponds to a row in the `countries`
// table.
type Country struct {
	ID   uint64 // countries.id
	Name string // countries.name (unique)
}
