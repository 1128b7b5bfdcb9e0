package dataset

// TokenSet is the set of cell values recognized as missing. Matching is exact
// (no trimming), mirroring how csv readers hand cells to the loader.
type TokenSet map[string]struct{}

// DefaultMissingTokens returns the default set of values treated as missing.
// The list matches the common NA tokens of mainstream dataframe tooling.
func DefaultMissingTokens() TokenSet {
	tokens := []string{
		"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
		"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "n/a",
		"nan", "null", "None",
	}
	set := make(TokenSet, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// NewTokenSet builds a token set from the default list plus caller extras.
func NewTokenSet(extra ...string) TokenSet {
	set := DefaultMissingTokens()
	for _, t := range extra {
		set[t] = struct{}{}
	}
	return set
}

// Contains reports whether v is a missing token.
func (s TokenSet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}
