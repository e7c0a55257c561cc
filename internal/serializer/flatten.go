package serializer

import "fmt"

// Composer implements flat field composition over a schema. On the write
// path it splits a flat payload into the parent's own values plus one
// sub-payload per flatten group; on the read path it merges related values
// back into a single flat record in declared field order.
type Composer struct {
	schema Schema
}

// NewComposer validates the schema and returns a composer for it
func NewComposer(schema Schema) (*Composer, error) {
	validated, err := NewSchema(schema)
	if err != nil {
		return nil, err
	}
	return &Composer{schema: validated}, nil
}

// Schema returns the composer's validated schema
func (c *Composer) Schema() Schema {
	return c.schema
}

// Split partitions a flat payload into the parent's own values and one
// sub-payload per flatten group. Field names keep their top-level spelling;
// no renaming happens in either direction. The input payload is not
// mutated. A sub-payload is present for every declared group, possibly
// empty.
func (c *Composer) Split(payload Values) (Values, map[string]Values) {
	own := make(Values, len(payload))
	for k, v := range payload {
		own[k] = v
	}

	groups := make(map[string]Values, len(c.schema.Flatten))
	for _, g := range c.schema.Flatten {
		sub := make(Values, len(g.Fields))
		for _, f := range g.Fields {
			if v, ok := own[f]; ok {
				sub[f] = v
				delete(own, f)
			}
		}
		groups[g.Relation] = sub
	}

	return own, groups
}

// Collapse merges the parent's own values and the related records' values
// into one flat record, ordered by the schema's declared field list. A
// missing related record is tolerated for optional groups (its fields are
// simply absent from the output) and is an error otherwise.
func (c *Composer) Collapse(own Values, related map[string]Values) (*Flat, error) {
	out := newFlat(len(c.schema.Fields))
	for _, f := range c.schema.Fields {
		if g, borrowed := c.schema.groupOf(f); borrowed {
			sub, ok := related[g.Relation]
			if !ok || sub == nil {
				if g.Optional {
					continue
				}
				return nil, fmt.Errorf("relation %q: %w", g.Relation, ErrMissingRelation)
			}
			if v, ok := sub[f]; ok {
				out.set(f, v)
			}
			continue
		}
		if v, ok := own[f]; ok {
			out.set(f, v)
		}
	}
	return out, nil
}
