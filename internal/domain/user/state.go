// internal/domain/user/state.go
package user

import (
	"fmt"
	"strings"

	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// State holds the authentication state, favorites, address book and preferences
type State struct {
	Profile         *Profile          `json:"profile,omitempty"`
	Token           string            `json:"token,omitempty"`
	IsAuthenticated bool              `json:"is_authenticated"`
	Favorites       []catalog.Product `json:"favorites"`
	Addresses       []Address         `json:"addresses"`
	Preferences     Preferences       `json:"preferences"`
}

// NewState returns an anonymous shopper with default preferences
func NewState() State {
	return State{
		Favorites:   []catalog.Product{},
		Addresses:   []Address{},
		Preferences: DefaultPreferences(),
	}
}

// LoginSuccess records the authenticated profile and its token
func (s State) LoginSuccess(profile Profile, token string) (State, error) {
	if profile.ID == "" {
		return s, domain.InvalidInput("user.LoginSuccess", "profile id is required")
	}
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	s.Profile = &profile
	s.Token = token
	s.IsAuthenticated = true
	return s, nil
}

// Logout forgets the profile, token, favorites and addresses. Preferences are kept.
func (s State) Logout() State {
	s.Profile = nil
	s.Token = ""
	s.IsAuthenticated = false
	s.Favorites = []catalog.Product{}
	s.Addresses = []Address{}
	return s
}

// SetToken replaces the session token
func (s State) SetToken(token string) State {
	s.Token = token
	return s
}

// UpdateProfile merges patch into the signed-in profile
func (s State) UpdateProfile(patch ProfilePatch) (State, error) {
	if s.Profile == nil {
		return s, domain.InvalidState("user.UpdateProfile", "", "no shopper is signed in")
	}
	p := *s.Profile
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if !strings.Contains(email, "@") {
			return s, domain.InvalidInput("user.UpdateProfile", fmt.Sprintf("invalid email %q", *patch.Email))
		}
		p.Email = email
	}
	if patch.Avatar != nil {
		p.Avatar = *patch.Avatar
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	s.Profile = &p
	return s, nil
}

// UpdatePreferences merges patch into the top-level preferences
func (s State) UpdatePreferences(patch PreferencesPatch) (State, error) {
	prefs := s.Preferences
	if patch.Theme != nil {
		if err := validateTheme("user.UpdatePreferences", *patch.Theme); err != nil {
			return s, err
		}
		prefs.Theme = *patch.Theme
	}
	if patch.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*patch.Currency))
		if len(currency) != 3 {
			return s, domain.InvalidInput("user.UpdatePreferences", fmt.Sprintf("invalid currency %q", *patch.Currency))
		}
		prefs.Currency = currency
	}
	if patch.Language != nil {
		prefs.Language = strings.TrimSpace(*patch.Language)
	}
	if patch.Dietary != nil {
		prefs.Dietary = append([]string{}, (*patch.Dietary)...)
	}
	s.Preferences = prefs
	return s, nil
}

// SetTheme changes the colour scheme
func (s State) SetTheme(theme Theme) (State, error) {
	if err := validateTheme("user.SetTheme", theme); err != nil {
		return s, err
	}
	s.Preferences.Theme = theme
	return s, nil
}

// UpdateNotificationSettings merges patch into the notification settings
func (s State) UpdateNotificationSettings(patch NotificationPatch) State {
	n := s.Preferences.Notifications
	if patch.Email != nil {
		n.Email = *patch.Email
	}
	if patch.Push != nil {
		n.Push = *patch.Push
	}
	if patch.SMS != nil {
		n.SMS = *patch.SMS
	}
	if patch.Marketing != nil {
		n.Marketing = *patch.Marketing
	}
	s.Preferences.Notifications = n
	return s
}

// UpdatePrivacySettings merges patch into the privacy settings
func (s State) UpdatePrivacySettings(patch PrivacyPatch) State {
	p := s.Preferences.Privacy
	if patch.ShareData != nil {
		p.ShareData = *patch.ShareData
	}
	if patch.Tracking != nil {
		p.Tracking = *patch.Tracking
	}
	s.Preferences.Privacy = p
	return s
}

// LoadUserData replaces profile, favorites and addresses in one step
func (s State) LoadUserData(profile Profile, favorites []catalog.Product, addresses []Address) State {
	s.Profile = &profile
	s = s.SetFavorites(favorites)
	return s.SetAddresses(addresses)
}

func validateTheme(op string, theme Theme) error {
	switch theme {
	case ThemeLight, ThemeDark, ThemeSystem:
		return nil
	}
	return domain.InvalidInput(op, fmt.Sprintf("unknown theme %q", theme))
}
