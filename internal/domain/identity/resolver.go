package identity

// Resolver turns a (name, alias) pair into a key known to a lookup table.
type Resolver struct {
	dict *Dictionary
}

// NewResolver creates a resolver over dict. A nil dictionary resolves only
// by name and alias.
func NewResolver(dict *Dictionary) *Resolver {
	if dict == nil {
		dict = NewDictionary(nil)
	}
	return &Resolver{dict: dict}
}

// Dictionary exposes the alias tables the resolver was built with.
func (r *Resolver) Dictionary() *Dictionary { return r.dict }

// Candidates returns the normalized lookup keys for a team in precedence
// order: name, alias, the alias's nickname, then the alias's full name.
// Empty keys are skipped.
func (r *Resolver) Candidates(name, alias string) []string {
	keys := make([]string, 0, 4)
	add := func(s string) {
		if k := Normalize(s); k != "" {
			keys = append(keys, k)
		}
	}
	add(name)
	add(alias)
	if nick, ok := r.dict.Nickname(alias); ok {
		add(nick)
	}
	if full, ok := r.dict.FullName(alias); ok {
		add(full)
	}
	return keys
}

// Resolve returns the first candidate key for which has reports true.
func (r *Resolver) Resolve(name, alias string, has func(key string) bool) (string, bool) {
	for _, k := range r.Candidates(name, alias) {
		if has(k) {
			return k, true
		}
	}
	return "", false
}

// Keys returns the keys a table should register for label: the label
// itself and, when label is a known nickname, its alias and full name.
func (r *Resolver) Keys(label string) []string {
	base := Normalize(label)
	if base == "" {
		return nil
	}
	keys := []string{base}
	alias, ok := r.dict.AliasOf(label)
	if !ok {
		return keys
	}
	keys = append(keys, Normalize(alias))
	if full, ok := r.dict.FullName(alias); ok {
		keys = append(keys, Normalize(full))
	}
	return keys
}
