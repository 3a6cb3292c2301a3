package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/pamsentry/pam-intel/pkg/config"
	"github.com/pamsentry/pam-intel/pkg/identity"
)

// testNow is the fixed clock every analytics test runs against.
var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// errExplodingStore stands in for an unexpected persistence fault.
var errExplodingStore = errors.New("store exploded")

type engineMocks struct {
	accounts  *MockAccountsStore
	checkouts *MockCheckoutsStore
	sessions  *MockSessionsStore
	safes     *MockSafeAccessStore
}

func newTestEngine(t *testing.T) (*Engine, *engineMocks) {
	t.Helper()

	mocks := &engineMocks{
		accounts:  &MockAccountsStore{},
		checkouts: &MockCheckoutsStore{},
		sessions:  &MockSessionsStore{},
		safes:     &MockSafeAccessStore{},
	}
	engine := NewEngine(mocks.accounts, mocks.checkouts, mocks.sessions, mocks.safes, config.Default())
	engine.now = func() time.Time { return testNow }
	return engine, mocks
}

func testCaller() *identity.Identity {
	return identity.New("u-1001")
}

func daysAgo(days int) time.Time {
	return testNow.AddDate(0, 0, -days)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
