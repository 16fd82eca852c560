// internal/domain/user/address.go
package user

import (
	"fmt"
	"strings"

	"github.com/your-org/storefront/internal/domain"
)

// AddAddress appends an address under id. The first address, or one flagged
// as default, becomes the only default.
func (s State) AddAddress(id string, addr Address) (State, error) {
	if id == "" {
		return s, domain.InvalidInput("user.AddAddress", "address id is required")
	}
	if _, ok := s.AddressByID(id); ok {
		return s, domain.InvalidInput("user.AddAddress", fmt.Sprintf("address %s already exists", id))
	}

	addr = normalizeAddress(addr)
	if err := ValidateAddress(addr); err != nil {
		return s, &domain.Error{Op: "user.AddAddress", Err: err}
	}
	addr.ID = id

	addresses := s.cloneAddresses()
	if len(addresses) == 0 {
		addr.IsDefault = true
	}
	if addr.IsDefault {
		unsetDefaults(addresses)
	}
	s.Addresses = append(addresses, addr)
	return s, nil
}

// UpdateAddress merges patch into the address with id
func (s State) UpdateAddress(id string, patch AddressPatch) (State, error) {
	i := s.addressIndex(id)
	if i < 0 {
		return s, domain.NotFound("user.UpdateAddress", id)
	}

	addresses := s.cloneAddresses()
	addr := addresses[i]
	if patch.Type != nil {
		addr.Type = *patch.Type
	}
	if patch.Name != nil {
		addr.Name = *patch.Name
	}
	if patch.Street != nil {
		addr.Street = *patch.Street
	}
	if patch.City != nil {
		addr.City = *patch.City
	}
	if patch.State != nil {
		addr.State = *patch.State
	}
	if patch.ZipCode != nil {
		addr.ZipCode = *patch.ZipCode
	}
	if patch.Country != nil {
		addr.Country = *patch.Country
	}
	addr = normalizeAddress(addr)
	if err := ValidateAddress(addr); err != nil {
		return s, &domain.Error{Op: "user.UpdateAddress", ID: id, Err: err}
	}

	if patch.IsDefault != nil {
		if *patch.IsDefault {
			unsetDefaults(addresses)
		}
		addr.IsDefault = *patch.IsDefault
	}
	addresses[i] = addr
	s.Addresses = addresses
	return s, nil
}

// RemoveAddress deletes an address. When the default is removed the first
// remaining address takes over.
func (s State) RemoveAddress(id string) (State, error) {
	i := s.addressIndex(id)
	if i < 0 {
		return s, domain.NotFound("user.RemoveAddress", id)
	}
	wasDefault := s.Addresses[i].IsDefault

	addresses := make([]Address, 0, len(s.Addresses)-1)
	addresses = append(addresses, s.Addresses[:i]...)
	addresses = append(addresses, s.Addresses[i+1:]...)
	if wasDefault && len(addresses) > 0 {
		addresses[0].IsDefault = true
	}
	s.Addresses = addresses
	return s, nil
}

// SetDefaultAddress makes id the only default address
func (s State) SetDefaultAddress(id string) (State, error) {
	if s.addressIndex(id) < 0 {
		return s, domain.NotFound("user.SetDefaultAddress", id)
	}
	addresses := s.cloneAddresses()
	for i := range addresses {
		addresses[i].IsDefault = addresses[i].ID == id
	}
	s.Addresses = addresses
	return s, nil
}

// SetAddresses replaces the address book. Only the first default survives.
func (s State) SetAddresses(addresses []Address) State {
	next := make([]Address, len(addresses))
	seenDefault := false
	for i, addr := range addresses {
		if addr.IsDefault {
			if seenDefault {
				addr.IsDefault = false
			}
			seenDefault = true
		}
		next[i] = addr
	}
	s.Addresses = next
	return s
}

// DefaultAddress returns the default address, if any
func (s State) DefaultAddress() (Address, bool) {
	for _, addr := range s.Addresses {
		if addr.IsDefault {
			return addr, true
		}
	}
	return Address{}, false
}

// AddressByID finds an address by id
func (s State) AddressByID(id string) (Address, bool) {
	if i := s.addressIndex(id); i >= 0 {
		return s.Addresses[i], true
	}
	return Address{}, false
}

// ValidateAddress validates address completeness for orders
func ValidateAddress(addr Address) error {
	if !addr.Type.Valid() {
		return fmt.Errorf("%w: address type must be home, work or other", domain.ErrInvalidInput)
	}
	required := []struct {
		field, value string
	}{
		{"name", addr.Name},
		{"street", addr.Street},
		{"city", addr.City},
		{"state", addr.State},
		{"zip code", addr.ZipCode},
		{"country", addr.Country},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, r.field)
		}
	}
	return nil
}

func normalizeAddress(addr Address) Address {
	addr.Type = AddressType(strings.ToLower(strings.TrimSpace(string(addr.Type))))
	addr.Name = strings.TrimSpace(addr.Name)
	addr.Street = strings.TrimSpace(addr.Street)
	addr.City = strings.TrimSpace(addr.City)
	addr.State = strings.TrimSpace(addr.State)
	addr.ZipCode = strings.TrimSpace(addr.ZipCode)
	addr.Country = strings.TrimSpace(addr.Country)
	return addr
}

func unsetDefaults(addresses []Address) {
	for i := range addresses {
		addresses[i].IsDefault = false
	}
}

func (s State) addressIndex(id string) int {
	for i, addr := range s.Addresses {
		if addr.ID == id {
			return i
		}
	}
	return -1
}

func (s State) cloneAddresses() []Address {
	addresses := make([]Address, len(s.Addresses))
	copy(addresses, s.Addresses)
	return addresses
}
