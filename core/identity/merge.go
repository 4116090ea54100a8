package identity

// Merge folds identity fragments into one Identity per normalized email.
//
// Groups are flattened one level and folded left to right. When an email was
// already seen, the fragment's providers are appended to the existing identity.
// No provider-level dedup happens: callers must not feed the same provider's
// data for the same user twice. The inputs are not mutated.
func Merge(groups ...[]Identity) []Identity {
	merged := make([]Identity, 0)
	index := make(map[string]int)

	for _, group := range groups {
		for _, fragment := range group {
			key := NormalizeEmail(fragment.Email)
			if pos, ok := index[key]; ok {
				merged[pos].Providers = append(merged[pos].Providers, cloneProviders(fragment.Providers)...)
				if merged[pos].Name == "" {
					merged[pos].Name = fragment.Name
				}
				continue
			}

			index[key] = len(merged)
			merged = append(merged, Identity{
				Email:     key,
				Name:      fragment.Name,
				Providers: cloneProviders(fragment.Providers),
			})
		}
	}

	return merged
}

// MergeNested is Merge over an already nested input, one group per element.
func MergeNested(groups [][]Identity) []Identity {
	return Merge(groups...)
}

func cloneProviders(providers []ProviderMembership) []ProviderMembership {
	out := make([]ProviderMembership, len(providers))
	for i, p := range providers {
		out[i] = p
		if p.APIKeys != nil {
			out[i].APIKeys = append([]APIKeyRef(nil), p.APIKeys...)
		}
		if p.CreditsUsed != nil {
			v := *p.CreditsUsed
			out[i].CreditsUsed = &v
		}
	}
	return out
}
