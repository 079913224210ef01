// Package mocks provides centralized mock implementations for testing.
//
// Store mocks embed testify's mock.Mock and are configured with On/Return.
// Their WithTx methods return the receiver, so expectations set on a store
// also apply inside store.RunInTransaction. Service and JWT mocks use
// function fields with fixed fallback values:
//
//	jwtService := &mocks.MockJWTService{
//	    GenerateTokenFn: func(ctx context.Context, p domain.Principal) (string, error) {
//	        return "mocked-token", nil
//	    },
//	}
package mocks
