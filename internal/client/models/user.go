// Package models contains the data types exchanged with the stock
// prediction backend and held in client memory.
package models

// User is the identity record returned by the auth-health endpoint.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// TokenPair is the credential pair issued by login, register, refresh
// and reactivate. AccessToken proves identity on every request;
// RefreshToken is redeemed for a new pair when the access token expires.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
