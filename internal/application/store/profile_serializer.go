package store

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	appidentity "github.com/marketplace/backend/internal/application/identity"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/store"
	"github.com/marketplace/backend/internal/serializer"
	"go.uber.org/zap"
)

// ProfileSerializer converts store profiles to and from their flat wire
// representation. The user relation is flattened: email, first_name and
// last_name appear as top-level profile fields, and on write they are
// applied to the acting user's record before the profile itself is saved,
// inside one transaction.
type ProfileSerializer struct {
	users      identity.UserRepository
	profiles   store.StoreProfileRepository
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	scope      TransactionScope
	userSer    *appidentity.UserSerializer
	validate   *validator.Validate
	logger     *zap.Logger

	base          *serializer.Composer
	create        *serializer.Composer
	nested        *serializer.Composer
	productNested *serializer.Composer
}

// NewProfileSerializer creates a ProfileSerializer. Schema misconfiguration
// surfaces here, before any request is served.
func NewProfileSerializer(
	users identity.UserRepository,
	profiles store.StoreProfileRepository,
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	scope TransactionScope,
	logger *zap.Logger,
) (*ProfileSerializer, error) {
	base, err := serializer.NewComposer(ProfileSchema())
	if err != nil {
		return nil, err
	}
	create, err := serializer.NewComposer(ProfileCreateSchema())
	if err != nil {
		return nil, err
	}
	nested, err := serializer.NewComposer(ProfileNestedSchema())
	if err != nil {
		return nil, err
	}
	productNested, err := serializer.NewComposer(ProductSchema())
	if err != nil {
		return nil, err
	}
	return &ProfileSerializer{
		users:         users,
		profiles:      profiles,
		products:      products,
		categories:    categories,
		scope:         scope,
		userSer:       appidentity.NewUserSerializer(),
		validate:      validator.New(),
		logger:        logger,
		base:          base,
		create:        create,
		nested:        nested,
		productNested: productNested,
	}, nil
}

// Create deserializes a flat payload into a new store profile for the
// acting user. A user already owning a profile is a validation failure.
// The user sub-payload and the profile itself are written in one
// transaction.
func (s *ProfileSerializer) Create(ctx context.Context, sctx serializer.Context, payload serializer.Values) (*store.StoreProfile, error) {
	if !sctx.Authenticated() {
		return nil, shared.ErrUnauthorized
	}

	var created *store.StoreProfile
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.Profiles().ExistsByUserID(ctx, sctx.Actor.UserID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewRecordValidationError("user already has a store profile")
		}

		flow, err := serializer.NewWriteFlow(s.create, nil, map[string]serializer.RelatedWriter{
			"user": s.userSer.Writer(repos.Users(), sctx.Actor.UserID),
		})
		if err != nil {
			return err
		}

		own, err := flow.Deserialize(ctx, sctx, payload)
		if err != nil {
			return err
		}

		userID, ok := own["user"].(uuid.UUID)
		if !ok {
			return shared.NewRecordValidationError("user reference could not be resolved")
		}

		profile := store.NewStoreProfile(userID)
		if err := s.applyValues(profile, own); err != nil {
			return err
		}
		if err := repos.Profiles().Save(ctx, profile); err != nil {
			return err
		}
		created = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("store profile created",
		zap.String("profile_id", created.ID.String()),
		zap.String("user_id", created.UserID.String()),
	)
	return created, nil
}

// Update applies a flat payload to an existing profile. The flattened user
// fields update the profile's owning user in the same transaction.
func (s *ProfileSerializer) Update(ctx context.Context, sctx serializer.Context, profile *store.StoreProfile, payload serializer.Values) (*store.StoreProfile, error) {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		flow, err := serializer.NewWriteFlow(s.nested, nil, map[string]serializer.RelatedWriter{
			"user": s.userSer.Writer(repos.Users(), profile.UserID),
		})
		if err != nil {
			return err
		}

		own, err := flow.Deserialize(ctx, sctx, payload)
		if err != nil {
			return err
		}

		if err := s.applyValues(profile, own); err != nil {
			return err
		}
		return repos.Profiles().Save(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Serialize produces the full flat representation, including the seller's
// product list rendered through the nested product schema.
func (s *ProfileSerializer) Serialize(ctx context.Context, sctx serializer.Context, profile *store.StoreProfile) (*serializer.Flat, error) {
	user, err := s.users.FindByID(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.FindBySeller(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	list := make([]*serializer.Flat, 0, len(products))
	for i := range products {
		category, err := s.categories.FindByID(ctx, products[i].CategoryID)
		if err != nil {
			return nil, err
		}
		flat, err := productNestedFlat(s.productNested, &products[i], category)
		if err != nil {
			return nil, err
		}
		list = append(list, flat)
	}

	own := s.ownValues(sctx, profile)
	own["products"] = list
	return s.base.Collapse(own, map[string]serializer.Values{"user": s.userSer.Serialize(user)})
}

// SerializeNested produces the embedded representation used inside other
// records: the base shape without the product list.
func (s *ProfileSerializer) SerializeNested(ctx context.Context, sctx serializer.Context, profile *store.StoreProfile) (*serializer.Flat, error) {
	user, err := s.users.FindByID(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	own := s.ownValues(sctx, profile)
	return s.nested.Collapse(own, map[string]serializer.Values{"user": s.userSer.Serialize(user)})
}

func (s *ProfileSerializer) ownValues(sctx serializer.Context, profile *store.StoreProfile) serializer.Values {
	return serializer.Values{
		"id":          profile.ID,
		"is_self":     isSelf(sctx, profile),
		"phone":       profile.Phone,
		"city":        profile.City,
		"address":     profile.Address,
		"person_type": string(profile.PersonType),
		"seller_type": string(profile.SellerType),
	}
}

// applyValues writes the profile's own writable fields from a flat value
// set. Absent keys keep their current value.
func (s *ProfileSerializer) applyValues(profile *store.StoreProfile, values serializer.Values) error {
	phone, city, address := profile.Phone, profile.City, profile.Address

	if raw, ok := values["phone"]; ok {
		str, ok := raw.(string)
		if !ok {
			return shared.NewValidationError("phone", "must be a string")
		}
		if err := s.validate.Var(str, "max=50"); err != nil {
			return shared.NewValidationError("phone", "cannot exceed 50 characters")
		}
		phone = str
	}
	if raw, ok := values["city"]; ok {
		str, ok := raw.(string)
		if !ok {
			return shared.NewValidationError("city", "must be a string")
		}
		city = str
	}
	if raw, ok := values["address"]; ok {
		str, ok := raw.(string)
		if !ok {
			return shared.NewValidationError("address", "must be a string")
		}
		address = str
	}
	if err := profile.SetContact(phone, city, address); err != nil {
		return err
	}

	if raw, ok := values["person_type"]; ok {
		str, ok := raw.(string)
		if !ok {
			return shared.NewValidationError("person_type", "must be a string")
		}
		if err := profile.SetPersonType(store.PersonType(str)); err != nil {
			return shared.NewValidationError("person_type", "must be natural or juridical")
		}
	}
	if raw, ok := values["seller_type"]; ok {
		str, ok := raw.(string)
		if !ok {
			return shared.NewValidationError("seller_type", "must be a string")
		}
		if err := profile.SetSellerType(store.SellerType(str)); err != nil {
			return shared.NewValidationError("seller_type", "must be individual or company")
		}
	}

	return nil
}

// isSelf reports whether the serialized profile is the acting user's own
// profile. An anonymous actor, or one without a profile, is never self.
func isSelf(sctx serializer.Context, profile *store.StoreProfile) bool {
	profileID, ok := sctx.Profile()
	return ok && profileID == profile.ID
}
