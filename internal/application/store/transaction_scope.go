package store

import (
	"context"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/store"
)

// TransactionScope provides transactional access to marketplace repositories.
// When a function executes within a scope, all repository operations are part
// of the same database transaction and commit or roll back atomically. The
// composite write path depends on this: related records are persisted before
// the parent, and a parent failure must undo them.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories participating
// in a composite write. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Users returns the user repository scoped to the current transaction
	Users() identity.UserRepository
	// Profiles returns the store profile repository scoped to the current transaction
	Profiles() store.StoreProfileRepository
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where rollback behavior is not under test.
type NoOpTransactionScope struct {
	users    identity.UserRepository
	profiles store.StoreProfileRepository
	products catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	users identity.UserRepository,
	profiles store.StoreProfileRepository,
	products catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		users:    users,
		profiles: profiles,
		products: products,
	}
}

// Execute runs the function directly, without transaction semantics.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Users returns the user repository.
func (s *NoOpTransactionScope) Users() identity.UserRepository {
	return s.users
}

// Profiles returns the store profile repository.
func (s *NoOpTransactionScope) Profiles() store.StoreProfileRepository {
	return s.profiles
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.products
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
