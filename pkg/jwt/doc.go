// Package jwt issues and validates RS256 JSON Web Tokens for the Cuppa API.
//
// The API only needs the public key to validate bearer tokens; the private
// key is loaded where tokens are minted (the dev-token command, tests).
//
// # Token Generation
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/private.pem",
//	    Issuer:         "cuppa.coffee",
//	    ExpirationMins: 60,
//	})
//	token, err := svc.Issue(userID, jwt.RoleUser)
//
// # Token Validation
//
//	claims, err := svc.Validate(tokenString)
//	if errors.Is(err, jwt.ErrTokenExpired) {
//	    // ask the client to re-authenticate
//	}
//	userID := claims.UserID()
//
// Validation checks the signature, the algorithm (RS256 only), the issuer,
// expiry and not-before with a small leeway for clock skew.
package jwt
