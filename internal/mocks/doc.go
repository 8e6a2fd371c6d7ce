// Package mocks provides hand-written test doubles for the store, service,
// and auth interfaces.
//
// Most mocks use function fields: set the field for the behavior under test
// and leave the rest nil to get the default. MockPlaceStore and
// MockReviewStore use testify/mock instead, for tests that assert on call
// arguments and counts.
//
//	users := mocks.NewMockUserStore()
//	users.GetByPhoneFn = func(ctx context.Context, phone string) (*domain.User, error) {
//	    return nil, store.ErrUserNotFound
//	}
package mocks
