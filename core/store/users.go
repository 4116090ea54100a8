package store

import (
	"context"

	"ai-access-manager/core/identity"
)

// LoadUsers returns the cached user list. A missing key reads as an empty list.
func LoadUsers(ctx context.Context, s Store) ([]identity.Identity, error) {
	var users []identity.Identity
	if _, err := s.Get(ctx, KeyUsers, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []identity.Identity{}
	}
	return users, nil
}

// SaveUsers overwrites the cached user list wholesale.
func SaveUsers(ctx context.Context, s Store, users []identity.Identity) error {
	if users == nil {
		users = []identity.Identity{}
	}
	return s.Set(ctx, KeyUsers, users)
}

// MergeUser refreshes the memberships of the given providers in the cached
// entry for user's email. Memberships of other providers keep their place. A
// refreshed provider missing from user is dropped; the entry is created when
// absent and removed once no provider remains.
func MergeUser(ctx context.Context, s Store, user identity.Identity, providers ...string) error {
	users, err := LoadUsers(ctx, s)
	if err != nil {
		return err
	}

	refreshed := make(map[string]struct{}, len(providers))
	for _, p := range providers {
		refreshed[p] = struct{}{}
	}
	incoming := make(map[string]identity.ProviderMembership, len(user.Providers))
	for _, m := range user.Providers {
		incoming[m.Name] = m
	}

	for i := range users {
		if !identity.SameEmail(users[i].Email, user.Email) {
			continue
		}

		merged := make([]identity.ProviderMembership, 0, len(users[i].Providers)+len(user.Providers))
		for _, m := range users[i].Providers {
			if _, ok := refreshed[m.Name]; !ok {
				merged = append(merged, m)
				continue
			}
			if fresh, ok := incoming[m.Name]; ok {
				merged = append(merged, fresh)
				delete(incoming, m.Name)
			}
		}
		for _, m := range user.Providers {
			if _, ok := incoming[m.Name]; ok {
				merged = append(merged, m)
			}
		}

		if len(merged) == 0 {
			return SaveUsers(ctx, s, append(users[:i], users[i+1:]...))
		}
		users[i].Providers = merged
		if user.Name != "" {
			users[i].Name = user.Name
		}
		return SaveUsers(ctx, s, users)
	}

	if len(user.Providers) == 0 {
		return nil
	}
	return SaveUsers(ctx, s, append(users, user))
}

// ForgetProvider drops the given providers from the cached entry for email.
// The entry itself is removed once no provider remains.
func ForgetProvider(ctx context.Context, s Store, email string, providers ...string) error {
	users, err := LoadUsers(ctx, s)
	if err != nil {
		return err
	}

	drop := make(map[string]struct{}, len(providers))
	for _, p := range providers {
		drop[p] = struct{}{}
	}

	changed := false
	kept := make([]identity.Identity, 0, len(users))
	for _, u := range users {
		if !identity.SameEmail(u.Email, email) {
			kept = append(kept, u)
			continue
		}
		remaining := make([]identity.ProviderMembership, 0, len(u.Providers))
		for _, p := range u.Providers {
			if _, ok := drop[p.Name]; ok {
				changed = true
				continue
			}
			remaining = append(remaining, p)
		}
		if len(remaining) == 0 {
			changed = true
			continue
		}
		u.Providers = remaining
		kept = append(kept, u)
	}

	if !changed {
		return nil
	}
	return SaveUsers(ctx, s, kept)
}
