package serializer

import "github.com/marketplace/backend/internal/domain/shared"

// OwnerAttachment injects the current actor's profile reference into a
// configured field on record creation. The server is authoritative on
// ownership: whatever the client supplied for the field is overwritten.
type OwnerAttachment struct {
	field string
}

// NewOwnerAttachment builds the attachment strategy for a schema. A schema
// without an owner field is a configuration error, surfaced here rather
// than on the first request.
func NewOwnerAttachment(schema Schema) (*OwnerAttachment, error) {
	if schema.OwnerField == "" {
		return nil, configErrorf("schema declares no owner field; set Schema.OwnerField")
	}
	if !schema.Has(schema.OwnerField) {
		return nil, configErrorf("owner field %q is not declared", schema.OwnerField)
	}
	return &OwnerAttachment{field: schema.OwnerField}, nil
}

// FieldName returns the field the owner reference is written to
func (a *OwnerAttachment) FieldName() string {
	return a.field
}

// Apply writes the actor's profile reference into the payload, replacing
// any client-supplied value. An actor without a profile cannot own records,
// which is a request-time validation failure, not a configuration one.
func (a *OwnerAttachment) Apply(payload Values, sctx Context) error {
	profileID, ok := sctx.Profile()
	if !ok {
		return shared.NewValidationError(a.field, "an authenticated actor with a store profile is required")
	}
	payload[a.field] = profileID
	return nil
}
