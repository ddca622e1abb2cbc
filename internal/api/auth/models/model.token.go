// Package models - model thuộc domain auth (JWT claims).
package models

import (
	"github.com/dgrijalva/jwt-go"
)

// JwtClaims là payload của access token cấp cho user.
// Token được cấp ngoài luồng (lệnh seed hoặc admin cấp cho user mới), hệ thống chỉ verify.
type JwtClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.StandardClaims
}
