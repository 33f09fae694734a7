package entity

import "time"

// Theme is the UI color scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle flips light and dark
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ClientState is what one browser keeps between visits: its session and its theme
type ClientState struct {
	ClientID  string    `json:"clientId" bson:"clientId"`
	Token     string    `json:"-" bson:"token,omitempty"`
	UserID    int64     `json:"userId,omitempty" bson:"userId,omitempty"`
	Theme     Theme     `json:"theme" bson:"theme"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Authenticated reports whether a session token is held
func (s *ClientState) Authenticated() bool {
	return s != nil && s.Token != ""
}
