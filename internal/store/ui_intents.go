// internal/store/ui_intents.go
package store

import (
	"github.com/your-org/storefront/internal/domain/ui"
)

// AddNotification shows a toast under a generated id
type AddNotification struct{ Notification ui.Notification }

func (i AddNotification) Reduce(s State, env Env) (State, error) {
	return withUI(s)(s.UI.AddNotification(env.NewID(), i.Notification, env.Now()))
}

// Notify shows a success, error, warning or info toast
type Notify struct {
	Type    ui.NotificationType
	Message string
}

func (i Notify) Reduce(s State, env Env) (State, error) {
	return withUI(s)(s.UI.Notify(env.NewID(), i.Type, i.Message, env.Now()))
}

// RemoveNotification dismisses a toast
type RemoveNotification struct{ ID string }

func (i RemoveNotification) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.RemoveNotification(i.ID)
	return s, nil
}

// ClearNotifications dismisses every toast
type ClearNotifications struct{}

func (ClearNotifications) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.ClearNotifications()
	return s, nil
}

// ExpireNotifications dismisses toasts whose duration has elapsed
type ExpireNotifications struct{}

func (ExpireNotifications) Reduce(s State, env Env) (State, error) {
	s.UI = s.UI.ExpireNotifications(env.Now())
	return s, nil
}

// OpenModal opens a dialog
type OpenModal struct{ Modal ui.Modal }

func (i OpenModal) Reduce(s State, _ Env) (State, error) {
	return withUI(s)(s.UI.OpenModal(i.Modal))
}

// CloseModal closes a dialog
type CloseModal struct{ ID string }

func (i CloseModal) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.CloseModal(i.ID)
	return s, nil
}

// CloseAllModals closes every dialog
type CloseAllModals struct{}

func (CloseAllModals) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.CloseAllModals()
	return s, nil
}

// RemoveModal forgets a dialog
type RemoveModal struct{ ID string }

func (i RemoveModal) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.RemoveModal(i.ID)
	return s, nil
}

// SetSearchQuery records the search box text
type SetSearchQuery struct{ Query string }

func (i SetSearchQuery) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.SetSearchQuery(i.Query)
	return s, nil
}

// AddToSearchHistory remembers a query
type AddToSearchHistory struct{ Query string }

func (i AddToSearchHistory) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.AddToSearchHistory(i.Query)
	return s, nil
}

// RemoveFromSearchHistory forgets a query
type RemoveFromSearchHistory struct{ Query string }

func (i RemoveFromSearchHistory) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.RemoveFromSearchHistory(i.Query)
	return s, nil
}

// ClearSearchHistory forgets every query
type ClearSearchHistory struct{}

func (ClearSearchHistory) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.ClearSearchHistory()
	return s, nil
}

// SetViewMode switches between grid and list
type SetViewMode struct{ Mode ui.ViewMode }

func (i SetViewMode) Reduce(s State, _ Env) (State, error) {
	return withUI(s)(s.UI.SetViewMode(i.Mode))
}

// SetFeature sets a feature flag
type SetFeature struct {
	Key     string
	Enabled bool
}

func (i SetFeature) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.SetFeature(i.Key, i.Enabled)
	return s, nil
}

// ToggleFeature flips a feature flag
type ToggleFeature struct{ Key string }

func (i ToggleFeature) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.ToggleFeature(i.Key)
	return s, nil
}

// SetUIError records an error message under a key
type SetUIError struct {
	Key     string
	Message string
}

func (i SetUIError) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.SetError(i.Key, i.Message)
	return s, nil
}

// ClearUIError forgets the error under a key
type ClearUIError struct{ Key string }

func (i ClearUIError) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.ClearError(i.Key)
	return s, nil
}

// SetLoading toggles the loading indicator
type SetLoading struct {
	Loading bool
	Message string
}

func (i SetLoading) Reduce(s State, _ Env) (State, error) {
	s.UI = s.UI.SetLoading(i.Loading, i.Message)
	return s, nil
}

// IncrementPageViews counts a page view
type IncrementPageViews struct{}

func (IncrementPageViews) Reduce(s State, env Env) (State, error) {
	s.UI = s.UI.IncrementPageViews(env.Now())
	return s, nil
}

// ResetUI restores the initial presentation state
type ResetUI struct{}

func (ResetUI) Reduce(s State, env Env) (State, error) {
	s.UI = s.UI.Reset(env.Now())
	return s, nil
}

func withUI(s State) func(ui.State, error) (State, error) {
	return func(u ui.State, err error) (State, error) {
		if err != nil {
			return s, err
		}
		s.UI = u
		return s, nil
	}
}
