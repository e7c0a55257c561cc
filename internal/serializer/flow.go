package serializer

import (
	"context"

	"github.com/marketplace/backend/internal/domain/shared"
)

// RelatedWriter validates and persists one flatten group's sub-payload,
// returning the reference to store under the relation name on the parent.
// Implementations participate in the ambient transaction of the call.
type RelatedWriter interface {
	Write(ctx context.Context, sctx Context, values Values) (any, error)
}

// RelatedWriterFunc adapts a function to the RelatedWriter interface
type RelatedWriterFunc func(ctx context.Context, sctx Context, values Values) (any, error)

// Write implements RelatedWriter
func (f RelatedWriterFunc) Write(ctx context.Context, sctx Context, values Values) (any, error) {
	return f(ctx, sctx, values)
}

// WriteFlow runs the write path of a composed serializer: strip read-only
// fields, check required ones, attach the owner reference, split the
// payload, persist each related record in declared group order, and hand
// back the parent's own values with relation references resolved.
//
// Owner attachment is applied to the original flat payload, before the
// split. If the owner field belongs to a flatten group, the injected
// reference therefore travels into that group's sub-payload.
//
// The flow itself persists nothing at the parent level and holds no request
// state; callers run Deserialize inside their transaction scope so related
// writes and the parent write commit or roll back together.
type WriteFlow struct {
	composer *Composer
	owner    *OwnerAttachment
	writers  map[string]RelatedWriter
}

// NewWriteFlow wires a composer, an optional owner attachment, and one
// writer per flatten group. A group without a writer, or a writer for an
// undeclared relation, is a configuration error.
func NewWriteFlow(composer *Composer, owner *OwnerAttachment, writers map[string]RelatedWriter) (*WriteFlow, error) {
	declared := make(map[string]bool, len(composer.schema.Flatten))
	for _, g := range composer.schema.Flatten {
		declared[g.Relation] = true
		if writers[g.Relation] == nil {
			return nil, configErrorf("flatten group %q has no related writer", g.Relation)
		}
	}
	for relation := range writers {
		if !declared[relation] {
			return nil, configErrorf("writer registered for unknown relation %q", relation)
		}
	}
	return &WriteFlow{composer: composer, owner: owner, writers: writers}, nil
}

// Deserialize turns a flat payload into the parent's own values, with every
// flatten group persisted and replaced by its resolved reference. The
// returned values are ready for parent-entity construction; persisting the
// parent is the caller's job, inside the same transaction.
func (f *WriteFlow) Deserialize(ctx context.Context, sctx Context, payload Values) (Values, error) {
	schema := f.composer.schema

	flat := make(Values, len(payload))
	for k, v := range payload {
		if schema.Has(k) && !schema.IsReadOnly(k) {
			flat[k] = v
		}
	}

	for _, field := range schema.Required {
		if schema.IsReadOnly(field) {
			continue
		}
		if _, ok := flat[field]; !ok {
			return nil, shared.NewValidationError(field, "this field is required")
		}
	}

	if f.owner != nil {
		if err := f.owner.Apply(flat, sctx); err != nil {
			return nil, err
		}
	}

	own, groups := f.composer.Split(flat)

	for _, g := range schema.Flatten {
		ref, err := f.writers[g.Relation].Write(ctx, sctx, groups[g.Relation])
		if err != nil {
			return nil, err
		}
		own[g.Relation] = ref
	}

	return own, nil
}
