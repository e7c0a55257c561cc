package identity

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/serializer"
)

// UserFields are the user attributes exposed on the wire. Parent schemas
// borrow exactly these names when they flatten a user relation.
func UserFields() []string {
	return []string{"email", "first_name", "last_name"}
}

// UserSchema is the standalone serialization schema for users
func UserSchema() serializer.Schema {
	return serializer.Must(serializer.NewSchema(serializer.Schema{
		Fields:   UserFields(),
		Required: []string{"email"},
	}))
}

// UserSerializer converts users to and from their flat representation
type UserSerializer struct {
	schema   serializer.Schema
	validate *validator.Validate
}

// NewUserSerializer creates a UserSerializer
func NewUserSerializer() *UserSerializer {
	return &UserSerializer{
		schema:   UserSchema(),
		validate: validator.New(),
	}
}

// Serialize returns the user's flat values
func (s *UserSerializer) Serialize(u *identity.User) serializer.Values {
	return serializer.Values{
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}
}

// Apply writes a flat sub-payload onto an existing user. Unknown keys were
// already dropped by the parent flow; bad value types or formats are
// request-time validation failures.
func (s *UserSerializer) Apply(u *identity.User, values serializer.Values) error {
	if raw, ok := values["email"]; ok {
		email, ok := raw.(string)
		if !ok {
			return shared.NewValidationError("email", "must be a string")
		}
		if err := s.validate.Var(email, "required,email"); err != nil {
			return shared.NewValidationError("email", "must be a valid email address")
		}
		if err := u.SetEmail(email); err != nil {
			return shared.NewValidationError("email", err.Error())
		}
	}

	firstName := u.FirstName
	lastName := u.LastName
	if raw, ok := values["first_name"]; ok {
		name, ok := raw.(string)
		if !ok {
			return shared.NewValidationError("first_name", "must be a string")
		}
		firstName = name
	}
	if raw, ok := values["last_name"]; ok {
		name, ok := raw.(string)
		if !ok {
			return shared.NewValidationError("last_name", "must be a string")
		}
		lastName = name
	}
	if firstName != u.FirstName || lastName != u.LastName {
		if err := u.SetName(firstName, lastName); err != nil {
			return shared.NewValidationError("first_name", err.Error())
		}
	}

	return nil
}

// Writer returns a related writer that applies a user sub-payload to the
// given existing user and yields the user's ID as the relation reference.
// The repository is expected to be transaction-scoped by the caller.
func (s *UserSerializer) Writer(users identity.UserRepository, userID uuid.UUID) serializer.RelatedWriter {
	return serializer.RelatedWriterFunc(func(ctx context.Context, _ serializer.Context, values serializer.Values) (any, error) {
		user, err := users.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.Apply(user, values); err != nil {
			return nil, err
		}
		if err := users.Save(ctx, user); err != nil {
			return nil, err
		}
		return user.ID, nil
	})
}
