package domain

// OffendingForDeposit returns the requested ids that are missing from found or no longer depositable.
func OffendingForDeposit(requested []string, found []Collection) []string {
	return offending(requested, found, Collection.IsDepositable)
}

// OffendingForRemittance returns the requested ids that are missing, not remittable, or owned by
// another client.
func OffendingForRemittance(requested []string, found []Collection, clientID string) []string {
	return offending(requested, found, func(c Collection) bool {
		return c.IsRemittable() && c.ClientID == clientID
	})
}

func offending(requested []string, found []Collection, eligible func(Collection) bool) []string {
	byID := make(map[string]Collection, len(found))
	for _, c := range found {
		byID[c.CollectionID] = c
	}
	var out []string
	for _, id := range requested {
		c, ok := byID[id]
		if !ok || !eligible(c) {
			out = append(out, id)
		}
	}
	return out
}
