package sqlite

// scope is the owner predicate applied to every query of a TodoStore. The
// zero value is unscoped: no predicate, and new rows carry a NULL owner.
type scope struct {
	owner  string
	scoped bool
}

// and returns the predicate to append after an existing WHERE clause.
func (s scope) and() string {
	if !s.scoped {
		return ""
	}
	return " AND username = ?"
}

// where returns the predicate as a complete WHERE clause.
func (s scope) where() string {
	if !s.scoped {
		return ""
	}
	return " WHERE username = ?"
}

// args appends the owner argument, when scoped, to args.
func (s scope) args(args ...any) []any {
	if !s.scoped {
		return args
	}
	return append(args, s.owner)
}

// ownerValue is the value stored in username columns on insert.
func (s scope) ownerValue() any {
	if !s.scoped {
		return nil
	}
	return s.owner
}
