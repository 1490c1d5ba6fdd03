package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Default secret untuk development, samakan dengan .env
		secret = "PosSecretKeyAUTH2024"
	}
	JWTSecret = []byte(secret)
}

// Jenis token yang di-encode di claim "token_type".
const (
	TokenTypeStaff = "staff"
	TokenTypeGuest = "guest"
)

type IdentityKind string

const (
	IdentityStaff IdentityKind = "staff"
	IdentityGuest IdentityKind = "guest"
)

// Identity adalah hasil verifikasi token: staff ATAU guest, tidak pernah dua-duanya.
type Identity struct {
	Kind IdentityKind

	// Terisi jika Kind == IdentityStaff
	AccountID uint
	Role      string

	// Terisi jika Kind == IdentityGuest
	GuestID     uint
	TableNumber int
}

func (id Identity) IsStaff() bool {
	return id.Kind == IdentityStaff
}

func (id Identity) IsGuest() bool {
	return id.Kind == IdentityGuest
}

type CustomClaims struct {
	TokenType   string `json:"token_type"`
	AccountID   uint   `json:"account_id,omitempty"`
	Role        string `json:"role,omitempty"`
	GuestID     uint   `json:"guest_id,omitempty"`
	TableNumber int    `json:"table_number,omitempty"`
	jwt.RegisteredClaims
}

// GenerateStaffToken membuat access token staff yang self-contained
// (account id + role), berumur pendek.
func GenerateStaffToken(accountID uint, role string, ttl time.Duration) (string, error) {
	claims := &CustomClaims{
		TokenType: TokenTypeStaff,
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "RestaurantPOS",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// GenerateGuestToken membuat token sesi guest (guest id + nomor meja).
func GenerateGuestToken(guestID uint, tableNumber int, ttl time.Duration) (string, error) {
	claims := &CustomClaims{
		TokenType:   TokenTypeGuest,
		GuestID:     guestID,
		TableNumber: tableNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "RestaurantPOS",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// ParseToken memverifikasi signature + expiry lalu mengembalikan Identity.
func ParseToken(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JWTSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken("token has expired")
		}
		return Identity{}, ErrMalformedToken("token is malformed or has an invalid signature")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return Identity{}, ErrMalformedToken("invalid token claims")
	}

	switch claims.TokenType {
	case TokenTypeStaff:
		if claims.AccountID == 0 {
			return Identity{}, ErrMalformedToken("staff token without account id")
		}
		return Identity{Kind: IdentityStaff, AccountID: claims.AccountID, Role: claims.Role}, nil
	case TokenTypeGuest:
		if claims.GuestID == 0 {
			return Identity{}, ErrMalformedToken("guest token without guest id")
		}
		return Identity{Kind: IdentityGuest, GuestID: claims.GuestID, TableNumber: claims.TableNumber}, nil
	default:
		return Identity{}, ErrMalformedToken("unknown token type")
	}
}
