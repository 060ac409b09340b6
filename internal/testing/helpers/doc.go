// Package helpers provides HTTP test utilities: bearer tokens signed with an
// in-memory key, a request builder and problem-details assertions.
//
//	tokens := helpers.NewTokens(t)
//	rr := helpers.NewRequest(t, http.MethodGet, "/v1/recommendations").
//	    WithToken(tokens.User(t, "user:ada")).
//	    Do(router)
//	helpers.AssertStatus(t, rr, http.StatusOK)
package helpers
