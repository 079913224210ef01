package mocks

import "github.com/phrazzld/tasklist-api/internal/service/auth"

// MockPasswordVerifier accepts every password when ShouldSucceed is set and
// rejects with auth.ErrPasswordMismatch otherwise, unless CompareFn overrides.
type MockPasswordVerifier struct {
	ShouldSucceed    bool
	CompareFn        func(stored, password string) error
	CompareCallCount int
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements auth.PasswordVerifier
func (m *MockPasswordVerifier) Compare(stored, password string) error {
	m.CompareCallCount++
	if m.CompareFn != nil {
		return m.CompareFn(stored, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return auth.ErrPasswordMismatch
}
