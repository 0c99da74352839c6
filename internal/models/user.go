package models

// Location is a named place saved on a user's account. The id is assigned
// by the store when the entry is appended.
type Location struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User is the persisted account record. PasswordHash is excluded from every
// serialized representation.
type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Metric       bool       `json:"metric"`
	Locations    []Location `json:"locations"`
}
