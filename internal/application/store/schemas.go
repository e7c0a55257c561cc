package store

import (
	appidentity "github.com/marketplace/backend/internal/application/identity"
	"github.com/marketplace/backend/internal/serializer"
)

// Serialization schemas for the store context. These are declarations only;
// the composition behavior lives in the serializer package.

// ProfileSchema is the base store profile schema. The user group flattens
// the owning user's attributes into the profile's own representation.
func ProfileSchema() serializer.Schema {
	fields := appidentity.UserFields()
	fields = append(fields, "id", "is_self", "phone", "city", "address", "person_type", "seller_type", "products")
	return serializer.Must(serializer.NewSchema(serializer.Schema{
		Fields:   fields,
		ReadOnly: []string{"id", "email", "is_self", "products"},
		Flatten: []serializer.FlattenGroup{
			{Relation: "user", Fields: appidentity.UserFields()},
		},
	}))
}

// ProfileCreateSchema is the creation variant: no product list, every
// writable field required.
func ProfileCreateSchema() serializer.Schema {
	s := serializer.Must(ProfileSchema().Omit("products"))
	return serializer.Must(s.RequireAll())
}

// ProfileNestedSchema is the variant embedded inside other records: the
// base schema without the product list.
func ProfileNestedSchema() serializer.Schema {
	return serializer.Must(ProfileSchema().Omit("products"))
}

// ProductSchema is the base product schema used for nested rendering and
// writes. The seller field is owner-attached: on create it is resolved from
// the acting user's profile, never from the client.
func ProductSchema() serializer.Schema {
	return serializer.Must(serializer.NewSchema(serializer.Schema{
		Fields:     []string{"id", "category", "category_name", "seller", "title", "unit", "unit_price", "quantity", "created", "modified"},
		ReadOnly:   []string{"id", "seller", "category_name", "created", "modified"},
		Required:   []string{"category", "title", "unit", "unit_price", "quantity"},
		OwnerField: "seller",
	}))
}

// ProductDetailSchema is the detail variant: the list shape plus the
// long-form description.
func ProductDetailSchema() serializer.Schema {
	return serializer.Must(ProductSchema().Add("description"))
}

// CategoryTreeSchema describes one node of the recursive category tree.
// The same schema applies at every depth.
func CategoryTreeSchema() serializer.Schema {
	return serializer.Must(serializer.NewSchema(serializer.Schema{
		Fields:   []string{"name", "slug", "children"},
		ReadOnly: []string{"children"},
		Required: []string{"name", "slug"},
	}))
}

// CategoryFlatSchema is the non-recursive category shape with a parent
// slug reference instead of children. The parent is writable so a category
// can be created directly under another.
func CategoryFlatSchema() serializer.Schema {
	return serializer.Must(serializer.NewSchema(serializer.Schema{
		Fields:   []string{"name", "slug", "parent"},
		Required: []string{"name", "slug"},
	}))
}
