// internal/domain/ui/state.go
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/your-org/storefront/internal/domain"
)

const (
	// SearchHistoryLimit caps the remembered search queries
	SearchHistoryLimit = 10

	// Notification durations in milliseconds
	DefaultNotificationDuration = 5000
	SuccessNotificationDuration = 3000
	InfoNotificationDuration    = 4000
)

// NotificationType represents the severity of a notification
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
)

// Notification is a toast shown to the shopper
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Duration  int              `json:"duration"` // milliseconds
	CreatedAt time.Time        `json:"created_at"`
}

// ModalType identifies what a modal shows
type ModalType string

const (
	ModalAuth         ModalType = "auth"
	ModalCart         ModalType = "cart"
	ModalProduct      ModalType = "product"
	ModalAddress      ModalType = "address"
	ModalOrder        ModalType = "order"
	ModalConfirmation ModalType = "confirmation"
	ModalCustom       ModalType = "custom"
)

// Modal is a dialog and its payload
type Modal struct {
	ID     string         `json:"id"`
	Type   ModalType      `json:"type"`
	IsOpen bool           `json:"is_open"`
	Data   map[string]any `json:"data,omitempty"`
}

// ViewMode is the product list layout
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Analytics counts page views within a session
type Analytics struct {
	PageViews    int       `json:"page_views"`
	SessionStart time.Time `json:"session_start"`
	LastActivity time.Time `json:"last_activity"`
}

// SessionDuration returns the time between session start and last activity
func (a Analytics) SessionDuration() time.Duration {
	return a.LastActivity.Sub(a.SessionStart)
}

// State holds transient presentation state
type State struct {
	IsLoading        bool   `json:"is_loading"`
	LoadingMessage   string `json:"loading_message,omitempty"`
	IsMobileMenuOpen bool   `json:"is_mobile_menu_open"`
	IsSearchOpen     bool   `json:"is_search_open"`
	SidebarOpen      bool   `json:"sidebar_open"`

	Modals        []Modal        `json:"modals"`
	Notifications []Notification `json:"notifications"`

	SearchQuery   string   `json:"search_query"`
	SearchHistory []string `json:"search_history"`

	ViewMode ViewMode          `json:"view_mode"`
	Errors   map[string]string `json:"errors"`
	Features map[string]bool   `json:"features"`

	Analytics Analytics `json:"analytics"`
}

// NewState returns the initial UI state for a session starting at now
func NewState(now time.Time) State {
	return State{
		Modals:        []Modal{},
		Notifications: []Notification{},
		SearchHistory: []string{},
		ViewMode:      ViewGrid,
		Errors:        map[string]string{},
		Features: map[string]bool{
			"darkMode":      true,
			"notifications": true,
			"analytics":     false,
		},
		Analytics: Analytics{SessionStart: now, LastActivity: now},
	}
}

// SetLoading toggles the global loading flag; clearing it drops the message
func (s State) SetLoading(loading bool, message string) State {
	s.IsLoading = loading
	s.LoadingMessage = message
	if !loading {
		s.LoadingMessage = ""
	}
	return s
}

// ToggleMobileMenu flips the mobile menu
func (s State) ToggleMobileMenu() State {
	s.IsMobileMenuOpen = !s.IsMobileMenuOpen
	return s
}

// ToggleSearch flips the search overlay
func (s State) ToggleSearch() State {
	s.IsSearchOpen = !s.IsSearchOpen
	return s
}

// ToggleSidebar flips the sidebar
func (s State) ToggleSidebar() State {
	s.SidebarOpen = !s.SidebarOpen
	return s
}

// AddNotification appends a notification under id; a zero duration gets the default
func (s State) AddNotification(id string, n Notification, now time.Time) (State, error) {
	if id == "" {
		return s, domain.InvalidInput("ui.AddNotification", "notification id is required")
	}
	if n.Type == "" {
		n.Type = NotificationInfo
	}
	if n.Duration <= 0 {
		n.Duration = DefaultNotificationDuration
	}
	n.ID = id
	n.CreatedAt = now

	notifications := make([]Notification, len(s.Notifications), len(s.Notifications)+1)
	copy(notifications, s.Notifications)
	s.Notifications = append(notifications, n)
	return s, nil
}

// Notify is a shortcut for the success, error and info toasts
func (s State) Notify(id string, kind NotificationType, message string, now time.Time) (State, error) {
	n := Notification{Type: kind, Message: message}
	switch kind {
	case NotificationSuccess:
		n.Title, n.Duration = "Success", SuccessNotificationDuration
	case NotificationError:
		n.Title, n.Duration = "Error", DefaultNotificationDuration
	case NotificationInfo:
		n.Title, n.Duration = "Info", InfoNotificationDuration
	case NotificationWarning:
		n.Title, n.Duration = "Warning", DefaultNotificationDuration
	default:
		return s, domain.InvalidInput("ui.Notify", fmt.Sprintf("unknown notification type %q", kind))
	}
	return s.AddNotification(id, n, now)
}

// RemoveNotification drops a notification; absent ids are ignored
func (s State) RemoveNotification(id string) State {
	notifications := make([]Notification, 0, len(s.Notifications))
	for _, n := range s.Notifications {
		if n.ID != id {
			notifications = append(notifications, n)
		}
	}
	s.Notifications = notifications
	return s
}

// ClearNotifications drops every notification
func (s State) ClearNotifications() State {
	s.Notifications = []Notification{}
	return s
}

// ExpireNotifications drops notifications whose duration has elapsed at now
func (s State) ExpireNotifications(now time.Time) State {
	notifications := make([]Notification, 0, len(s.Notifications))
	for _, n := range s.Notifications {
		if now.Sub(n.CreatedAt) < time.Duration(n.Duration)*time.Millisecond {
			notifications = append(notifications, n)
		}
	}
	s.Notifications = notifications
	return s
}

// OpenModal opens a modal, reusing an existing one with the same id
func (s State) OpenModal(m Modal) (State, error) {
	if m.ID == "" {
		return s, domain.InvalidInput("ui.OpenModal", "modal id is required")
	}
	modals := s.cloneModals()
	m.IsOpen = true
	for i := range modals {
		if modals[i].ID == m.ID {
			modals[i].IsOpen = true
			modals[i].Data = m.Data
			s.Modals = modals
			return s, nil
		}
	}
	s.Modals = append(modals, m)
	return s, nil
}

// CloseModal closes a modal without forgetting it
func (s State) CloseModal(id string) State {
	modals := s.cloneModals()
	for i := range modals {
		if modals[i].ID == id {
			modals[i].IsOpen = false
		}
	}
	s.Modals = modals
	return s
}

// CloseAllModals closes every modal
func (s State) CloseAllModals() State {
	modals := s.cloneModals()
	for i := range modals {
		modals[i].IsOpen = false
	}
	s.Modals = modals
	return s
}

// RemoveModal forgets a modal
func (s State) RemoveModal(id string) State {
	modals := make([]Modal, 0, len(s.Modals))
	for _, m := range s.Modals {
		if m.ID != id {
			modals = append(modals, m)
		}
	}
	s.Modals = modals
	return s
}

// OpenModals lists the modals currently shown
func (s State) OpenModals() []Modal {
	open := make([]Modal, 0)
	for _, m := range s.Modals {
		if m.IsOpen {
			open = append(open, m)
		}
	}
	return open
}

// SetSearchQuery records the text in the search box
func (s State) SetSearchQuery(query string) State {
	s.SearchQuery = query
	return s
}

// AddToSearchHistory remembers a trimmed query. Blank and repeated queries are ignored.
func (s State) AddToSearchHistory(query string) State {
	query = strings.TrimSpace(query)
	if query == "" {
		return s
	}
	for _, q := range s.SearchHistory {
		if q == query {
			return s
		}
	}
	history := make([]string, 0, SearchHistoryLimit)
	history = append(history, query)
	for _, q := range s.SearchHistory {
		if len(history) == SearchHistoryLimit {
			break
		}
		history = append(history, q)
	}
	s.SearchHistory = history
	return s
}

// RemoveFromSearchHistory forgets one query
func (s State) RemoveFromSearchHistory(query string) State {
	history := make([]string, 0, len(s.SearchHistory))
	for _, q := range s.SearchHistory {
		if q != query {
			history = append(history, q)
		}
	}
	s.SearchHistory = history
	return s
}

// ClearSearchHistory forgets every query
func (s State) ClearSearchHistory() State {
	s.SearchHistory = []string{}
	return s
}

// SetViewMode switches the product list layout
func (s State) SetViewMode(mode ViewMode) (State, error) {
	if mode != ViewGrid && mode != ViewList {
		return s, domain.InvalidInput("ui.SetViewMode", fmt.Sprintf("unknown view mode %q", mode))
	}
	s.ViewMode = mode
	return s, nil
}

// SetError records an error message under key
func (s State) SetError(key, message string) State {
	errs := cloneMap(s.Errors)
	errs[key] = message
	s.Errors = errs
	return s
}

// ClearError forgets the error under key
func (s State) ClearError(key string) State {
	errs := cloneMap(s.Errors)
	delete(errs, key)
	s.Errors = errs
	return s
}

// ClearAllErrors forgets every error
func (s State) ClearAllErrors() State {
	s.Errors = map[string]string{}
	return s
}

// SetFeature sets a feature flag
func (s State) SetFeature(key string, enabled bool) State {
	features := cloneMap(s.Features)
	features[key] = enabled
	s.Features = features
	return s
}

// ToggleFeature flips a feature flag; unknown flags start disabled
func (s State) ToggleFeature(key string) State {
	return s.SetFeature(key, !s.Features[key])
}

// FeatureEnabled reports a feature flag
func (s State) FeatureEnabled(key string) bool {
	return s.Features[key]
}

// IncrementPageViews counts a page view at now
func (s State) IncrementPageViews(now time.Time) State {
	s.Analytics.PageViews++
	s.Analytics.LastActivity = now
	return s
}

// ResetAnalytics starts a new analytics session at now
func (s State) ResetAnalytics(now time.Time) State {
	s.Analytics = Analytics{SessionStart: now, LastActivity: now}
	return s
}

// Reset returns the initial UI state for a session starting at now
func (s State) Reset(now time.Time) State {
	return NewState(now)
}

func (s State) cloneModals() []Modal {
	modals := make([]Modal, len(s.Modals))
	copy(modals, s.Modals)
	return modals
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
