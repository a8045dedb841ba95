package aseprite

// UserDataProperty is one entry of a user-data properties map. Aseprite's
// property values are themselves variant-typed (int, string, nested map,
// ...); this reader keeps the raw decoded value as `any` rather than
// re-typing every property kind, since nothing downstream interprets them.
type UserDataProperty struct {
	Name  string
	Value any
}

// UserData attaches free-form text, an optional color, and optional
// properties to the most recent attachable chunk (spec §3, §4.1).
type UserData struct {
	Text       string
	HasText    bool
	Color      *[4]uint8
	Properties []UserDataProperty
}
