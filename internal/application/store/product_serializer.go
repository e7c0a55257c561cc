package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/store"
	"github.com/marketplace/backend/internal/serializer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductSerializer converts products to and from their flat wire
// representation. The seller field is owner-attached: on create it always
// resolves to the acting user's store profile, regardless of what the
// client sends. Categories travel as slugs on the wire.
type ProductSerializer struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	profiles   store.StoreProfileRepository
	profileSer *ProfileSerializer
	logger     *zap.Logger

	base   *serializer.Composer
	detail *serializer.Composer
	owner  *serializer.OwnerAttachment
}

// NewProductSerializer creates a ProductSerializer. Schema misconfiguration
// surfaces here, before any request is served.
func NewProductSerializer(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	profiles store.StoreProfileRepository,
	profileSer *ProfileSerializer,
	logger *zap.Logger,
) (*ProductSerializer, error) {
	base, err := serializer.NewComposer(ProductSchema())
	if err != nil {
		return nil, err
	}
	detail, err := serializer.NewComposer(ProductDetailSchema())
	if err != nil {
		return nil, err
	}
	owner, err := serializer.NewOwnerAttachment(ProductSchema())
	if err != nil {
		return nil, err
	}
	return &ProductSerializer{
		products:   products,
		categories: categories,
		profiles:   profiles,
		profileSer: profileSer,
		logger:     logger,
		base:       base,
		detail:     detail,
		owner:      owner,
	}, nil
}

// Create deserializes a flat payload into a new product listed by the
// acting user's store profile.
func (s *ProductSerializer) Create(ctx context.Context, sctx serializer.Context, payload serializer.Values) (*catalog.Product, error) {
	flow, err := serializer.NewWriteFlow(s.base, s.owner, nil)
	if err != nil {
		return nil, err
	}
	own, err := flow.Deserialize(ctx, sctx, payload)
	if err != nil {
		return nil, err
	}

	sellerID, ok := own["seller"].(uuid.UUID)
	if !ok {
		return nil, shared.NewValidationError("seller", "seller profile could not be resolved")
	}

	category, err := s.resolveCategory(ctx, own["category"])
	if err != nil {
		return nil, err
	}
	title, err := stringField(own, "title")
	if err != nil {
		return nil, err
	}
	unit, err := stringField(own, "unit")
	if err != nil {
		return nil, err
	}
	price, err := decimalField(own, "unit_price")
	if err != nil {
		return nil, err
	}
	quantity, err := intField(own, "quantity")
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(sellerID, category.ID, title, unit, price, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.String("category", category.Slug),
	)
	return product, nil
}

// Update applies a flat payload to an existing product. The seller never
// changes; the detail schema additionally accepts the description.
func (s *ProductSerializer) Update(ctx context.Context, sctx serializer.Context, product *catalog.Product, payload serializer.Values) (*catalog.Product, error) {
	flow, err := serializer.NewWriteFlow(s.detail, nil, nil)
	if err != nil {
		return nil, err
	}
	own, err := flow.Deserialize(ctx, sctx, payload)
	if err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, own["category"])
	if err != nil {
		return nil, err
	}
	title, err := stringField(own, "title")
	if err != nil {
		return nil, err
	}
	unit, err := stringField(own, "unit")
	if err != nil {
		return nil, err
	}
	price, err := decimalField(own, "unit_price")
	if err != nil {
		return nil, err
	}
	quantity, err := intField(own, "quantity")
	if err != nil {
		return nil, err
	}

	if err := product.UpdateListing(title, unit, price, quantity); err != nil {
		return nil, err
	}
	product.SetCategory(category.ID)
	if raw, ok := own["description"]; ok {
		description, ok := raw.(string)
		if !ok {
			return nil, shared.NewValidationError("description", "must be a string")
		}
		product.SetDescription(description)
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// SerializeNested produces the embedded representation used inside a
// seller's profile: the base shape with the seller as a bare profile ID.
func (s *ProductSerializer) SerializeNested(ctx context.Context, product *catalog.Product) (*serializer.Flat, error) {
	category, err := s.categories.FindByID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	return productNestedFlat(s.base, product, category)
}

// SerializeList produces the listing representation: the base shape with
// the seller expanded to their nested profile.
func (s *ProductSerializer) SerializeList(ctx context.Context, sctx serializer.Context, product *catalog.Product) (*serializer.Flat, error) {
	return s.serialize(ctx, sctx, s.base, product)
}

// SerializeDetail produces the detail representation: the listing shape
// plus the long-form description.
func (s *ProductSerializer) SerializeDetail(ctx context.Context, sctx serializer.Context, product *catalog.Product) (*serializer.Flat, error) {
	return s.serialize(ctx, sctx, s.detail, product)
}

func (s *ProductSerializer) serialize(ctx context.Context, sctx serializer.Context, composer *serializer.Composer, product *catalog.Product) (*serializer.Flat, error) {
	category, err := s.categories.FindByID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.FindByID(ctx, product.SellerID)
	if err != nil {
		return nil, err
	}
	seller, err := s.profileSer.SerializeNested(ctx, sctx, profile)
	if err != nil {
		return nil, err
	}

	own := productOwnValues(product, category)
	own["seller"] = seller
	if composer == s.detail {
		own["description"] = product.Description
	}
	return composer.Collapse(own, nil)
}

// resolveCategory turns a wire category slug into the category record.
// An unknown slug is a request-time validation failure, not a server error.
func (s *ProductSerializer) resolveCategory(ctx context.Context, raw any) (*catalog.Category, error) {
	slug, ok := raw.(string)
	if !ok {
		return nil, shared.NewValidationError("category", "must be a string")
	}
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError("category", fmt.Sprintf("unknown category slug %q", slug))
		}
		return nil, err
	}
	return category, nil
}

// productNestedFlat renders a product through the given composer with the
// seller left as a bare profile ID.
func productNestedFlat(composer *serializer.Composer, product *catalog.Product, category *catalog.Category) (*serializer.Flat, error) {
	own := productOwnValues(product, category)
	own["seller"] = product.SellerID
	return composer.Collapse(own, nil)
}

func productOwnValues(product *catalog.Product, category *catalog.Category) serializer.Values {
	return serializer.Values{
		"id":            product.ID,
		"category":      category.Slug,
		"category_name": category.Name,
		"title":         product.Title,
		"unit":          product.Unit,
		"unit_price":    product.UnitPrice,
		"quantity":      product.Quantity,
		"created":       product.CreatedAt,
		"modified":      product.UpdatedAt,
	}
}

func stringField(values serializer.Values, name string) (string, error) {
	str, ok := values[name].(string)
	if !ok {
		return "", shared.NewValidationError(name, "must be a string")
	}
	return str, nil
}

// intField accepts the integer shapes JSON decoding produces. A float with
// a fractional part is rejected rather than truncated.
func intField(values serializer.Values, name string) (int, error) {
	switch v := values[name].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, shared.NewValidationError(name, "must be a whole number")
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, shared.NewValidationError(name, "must be a whole number")
		}
		return int(n), nil
	default:
		return 0, shared.NewValidationError(name, "must be a whole number")
	}
}

// decimalField accepts string and numeric wire shapes for money values.
func decimalField(values serializer.Values, name string) (decimal.Decimal, error) {
	switch v := values[name].(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, shared.NewValidationError(name, "must be a valid decimal number")
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, shared.NewValidationError(name, "must be a valid decimal number")
		}
		return d, nil
	default:
		return decimal.Zero, shared.NewValidationError(name, "must be a valid decimal number")
	}
}
