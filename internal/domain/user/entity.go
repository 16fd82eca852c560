// internal/domain/user/entity.go
package user

import (
	"strings"
)

// Profile represents the signed-in shopper
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// DisplayName returns the name, or the email when no name is set
func (p Profile) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return p.Email
}

// ProfilePatch carries the profile fields to change; nil fields are kept
type ProfilePatch struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Avatar *string `json:"avatar"`
	Phone  *string `json:"phone"`
}

// AddressType classifies an address
type AddressType string

// Address types
const (
	AddressHome  AddressType = "home"
	AddressWork  AddressType = "work"
	AddressOther AddressType = "other"
)

// Valid reports whether t is a known address type
func (t AddressType) Valid() bool {
	switch t {
	case AddressHome, AddressWork, AddressOther:
		return true
	}
	return false
}

// Address represents a shipping address in the shopper's address book
type Address struct {
	ID        string      `json:"id"`
	Type      AddressType `json:"type"`
	Name      string      `json:"name"`
	Street    string      `json:"street"`
	City      string      `json:"city"`
	State     string      `json:"state"`
	ZipCode   string      `json:"zip_code"`
	Country   string      `json:"country"`
	IsDefault bool        `json:"is_default"`
}

// AddressPatch carries the address fields to change; nil fields are kept
type AddressPatch struct {
	Type      *AddressType `json:"type"`
	Name      *string      `json:"name"`
	Street    *string      `json:"street"`
	City      *string      `json:"city"`
	State     *string      `json:"state"`
	ZipCode   *string      `json:"zip_code"`
	Country   *string      `json:"country"`
	IsDefault *bool        `json:"is_default"`
}

// Theme is the colour scheme preference
type Theme string

// Themes
const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// NotificationSettings selects the channels a shopper is contacted on
type NotificationSettings struct {
	Email     bool `json:"email"`
	Push      bool `json:"push"`
	SMS       bool `json:"sms"`
	Marketing bool `json:"marketing"`
}

// NotificationPatch carries the notification flags to change
type NotificationPatch struct {
	Email     *bool `json:"email"`
	Push      *bool `json:"push"`
	SMS       *bool `json:"sms"`
	Marketing *bool `json:"marketing"`
}

// PrivacySettings holds data-sharing consent
type PrivacySettings struct {
	ShareData bool `json:"share_data"`
	Tracking  bool `json:"tracking"`
}

// PrivacyPatch carries the privacy flags to change
type PrivacyPatch struct {
	ShareData *bool `json:"share_data"`
	Tracking  *bool `json:"tracking"`
}

// Preferences are kept across logins
type Preferences struct {
	Theme         Theme                `json:"theme"`
	Currency      string               `json:"currency"`
	Language      string               `json:"language"`
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	Dietary       []string             `json:"dietary"`
}

// PreferencesPatch carries the top-level preferences to change
type PreferencesPatch struct {
	Theme    *Theme    `json:"theme"`
	Currency *string   `json:"currency"`
	Language *string   `json:"language"`
	Dietary  *[]string `json:"dietary"`
}

// DefaultPreferences returns the preferences of a new shopper
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:    ThemeSystem,
		Currency: "USD",
		Language: "en",
		Notifications: NotificationSettings{
			Email: true,
			Push:  true,
		},
		Dietary: []string{},
	}
}
