package auth

import (
	"crypto/rsa"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/admin-portal-service/internal/domain"
)

// TokenManager signs and verifies RS256 JWTs. Signing needs the private key;
// verification only uses the public key, so a verify-only manager can live in
// a separate process.
type TokenManager struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager parses PEM key material and builds a manager.
func NewTokenManager(privatePEM, publicPEM string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privatePEM))
	if err != nil {
		return nil, err
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicPEM))
	if err != nil {
		return nil, err
	}
	return NewTokenManagerFromKeys(privateKey, publicKey, accessTTL, refreshTTL), nil
}

// NewTokenManagerFromKeys builds a manager from parsed keys.
func NewTokenManagerFromKeys(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		privateKey: privateKey,
		publicKey:  publicKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Claims describes the JWT payload. Access tokens carry the full account
// snapshot; refresh tokens carry only account and session ids.
type Claims struct {
	Account   *domain.AccountSnapshot `json:"account,omitempty"`
	AccountID string                  `json:"account_id,omitempty"`
	SessionID string                  `json:"session_id"`
	jwt.RegisteredClaims
}

// VerifyResult is the tri-state outcome of token verification. Callers
// branch on data; Verify never returns an error.
type VerifyResult struct {
	Valid   bool
	Expired bool
	Claims  *Claims
}

// AccessTTL exposes the configured access token lifetime.
func (tm *TokenManager) AccessTTL() time.Duration {
	return tm.accessTTL
}

// RefreshTTL exposes the configured refresh token lifetime.
func (tm *TokenManager) RefreshTTL() time.Duration {
	return tm.refreshTTL
}

// SignAccessToken mints a short-lived token carrying the account snapshot
// and session id. The snapshot type has no password field, so the hash can
// never end up in a token.
func (tm *TokenManager) SignAccessToken(account domain.AccountSnapshot, sessionID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.accessTTL)
	claims := &Claims{
		Account:   &account,
		AccountID: account.ID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return tm.sign(claims, expiresAt)
}

// SignRefreshToken mints a long-lived token carrying only ids.
func (tm *TokenManager) SignRefreshToken(accountID, sessionID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.refreshTTL)
	claims := &Claims{
		AccountID: accountID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return tm.sign(claims, expiresAt)
}

func (tm *TokenManager) sign(claims *Claims, expiresAt time.Time) (string, time.Time, error) {
	if tm.privateKey == nil {
		return "", time.Time{}, errors.New("token manager has no signing key")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenString, err := token.SignedString(tm.privateKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks signature and expiry. Expired or malformed tokens yield a
// result with Valid=false and no claims.
func (tm *TokenManager) Verify(tokenStr string) VerifyResult {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodRS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.publicKey, nil
	})
	if err != nil {
		return VerifyResult{Valid: false, Expired: errors.Is(err, jwt.ErrTokenExpired)}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return VerifyResult{Valid: false}
	}
	return VerifyResult{Valid: true, Claims: claims}
}
