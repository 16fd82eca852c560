// internal/store/intent.go
package store

import (
	"reflect"

	"github.com/your-org/storefront/internal/domain"
)

// Intent is a request to change the state tree. Reduce must not modify its input.
type Intent interface {
	Reduce(s State, env Env) (State, error)
}

// Reduce applies intent to s. On error the returned state is s.
func Reduce(s State, intent Intent, env Env) (State, error) {
	if intent == nil {
		return s, domain.InvalidInput("store.Reduce", "intent is required")
	}
	next, err := intent.Reduce(s, env.withDefaults())
	if err != nil {
		return s, err
	}
	return next, nil
}

// IntentName returns the type name of an intent, used in logs
func IntentName(intent Intent) string {
	if intent == nil {
		return "<nil>"
	}
	t := reflect.TypeOf(intent)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
