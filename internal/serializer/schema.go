package serializer

import "slices"

// Values is a flat structured record: the wire-side representation of an
// entity before field composition is applied.
type Values map[string]any

// FlattenGroup declares that a set of top-level field names actually belong
// to a named related entity and must be split out on write and merged back
// in on read. Optional groups tolerate an absent related record on read.
type FlattenGroup struct {
	Relation string
	Fields   []string
	Optional bool
}

// Schema is the declarative configuration of one serializer: the full field
// set, the server-owned subset, the required subset, the flatten groups, and
// the owner-attachment field. Schemas are value objects; variants derive new
// schemas instead of mutating existing ones.
type Schema struct {
	Fields     []string
	ReadOnly   []string
	Required   []string
	Flatten    []FlattenGroup
	OwnerField string
}

// NewSchema validates a schema declaration and returns a defensive copy.
// Any inconsistency is a ConfigurationError, caught before the schema
// serves its first request.
func NewSchema(s Schema) (Schema, error) {
	if len(s.Fields) == 0 {
		return Schema{}, configErrorf("schema must declare at least one field")
	}

	declared := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f == "" {
			return Schema{}, configErrorf("field names cannot be empty")
		}
		if declared[f] {
			return Schema{}, configErrorf("field %q declared twice", f)
		}
		declared[f] = true
	}

	for _, f := range s.ReadOnly {
		if !declared[f] {
			return Schema{}, configErrorf("read-only field %q is not declared", f)
		}
	}
	for _, f := range s.Required {
		if !declared[f] {
			return Schema{}, configErrorf("required field %q is not declared", f)
		}
	}

	claimed := make(map[string]string) // field -> relation
	for _, g := range s.Flatten {
		if g.Relation == "" {
			return Schema{}, configErrorf("flatten group relation name cannot be empty")
		}
		if declared[g.Relation] {
			return Schema{}, configErrorf("flatten relation %q collides with a declared field", g.Relation)
		}
		if len(g.Fields) == 0 {
			return Schema{}, configErrorf("flatten group %q declares no fields", g.Relation)
		}
		for _, f := range g.Fields {
			if !declared[f] {
				return Schema{}, configErrorf("flatten group %q borrows unknown field %q", g.Relation, f)
			}
			if owner, dup := claimed[f]; dup {
				return Schema{}, configErrorf("field %q claimed by both %q and %q", f, owner, g.Relation)
			}
			claimed[f] = g.Relation
		}
	}

	if s.OwnerField != "" && !declared[s.OwnerField] {
		return Schema{}, configErrorf("owner field %q is not declared", s.OwnerField)
	}

	return s.clone(), nil
}

// Must returns the schema or panics on a configuration error. Intended for
// package-level schema declarations, where a bad schema must abort startup.
func Must(s Schema, err error) Schema {
	if err != nil {
		panic(err)
	}
	return s
}

// Has reports whether the field is declared
func (s Schema) Has(field string) bool {
	return slices.Contains(s.Fields, field)
}

// IsReadOnly reports whether the field is server-owned
func (s Schema) IsReadOnly(field string) bool {
	return slices.Contains(s.ReadOnly, field)
}

// IsRequired reports whether the field must appear in a write payload
func (s Schema) IsRequired(field string) bool {
	return slices.Contains(s.Required, field)
}

// WritableFields returns the declared fields a client may supply
func (s Schema) WritableFields() []string {
	writable := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !s.IsReadOnly(f) {
			writable = append(writable, f)
		}
	}
	return writable
}

// groupOf returns the flatten group claiming the field, if any
func (s Schema) groupOf(field string) (FlattenGroup, bool) {
	for _, g := range s.Flatten {
		if slices.Contains(g.Fields, field) {
			return g, true
		}
	}
	return FlattenGroup{}, false
}

// Omit derives a variant without the given fields. The fields are removed
// from the read-only and required sets and from flatten groups as well;
// groups left empty are dropped. Omitting the owner field clears it.
func (s Schema) Omit(fields ...string) (Schema, error) {
	out := s.clone()
	drop := func(f string) bool { return slices.Contains(fields, f) }

	out.Fields = slices.DeleteFunc(out.Fields, drop)
	out.ReadOnly = slices.DeleteFunc(out.ReadOnly, drop)
	out.Required = slices.DeleteFunc(out.Required, drop)

	groups := out.Flatten[:0]
	for _, g := range out.Flatten {
		g.Fields = slices.DeleteFunc(g.Fields, drop)
		if len(g.Fields) > 0 {
			groups = append(groups, g)
		}
	}
	out.Flatten = groups

	if drop(out.OwnerField) {
		out.OwnerField = ""
	}

	return NewSchema(out)
}

// Add derives a variant with extra writable fields appended after the
// existing ones.
func (s Schema) Add(fields ...string) (Schema, error) {
	out := s.clone()
	out.Fields = append(out.Fields, fields...)
	return NewSchema(out)
}

// RequireAll derives a variant in which every writable field is required,
// matching creation semantics.
func (s Schema) RequireAll() (Schema, error) {
	out := s.clone()
	out.Required = out.WritableFields()
	return NewSchema(out)
}

func (s Schema) clone() Schema {
	out := Schema{
		Fields:     slices.Clone(s.Fields),
		ReadOnly:   slices.Clone(s.ReadOnly),
		Required:   slices.Clone(s.Required),
		Flatten:    make([]FlattenGroup, len(s.Flatten)),
		OwnerField: s.OwnerField,
	}
	for i, g := range s.Flatten {
		g.Fields = slices.Clone(g.Fields)
		out.Flatten[i] = g
	}
	return out
}
