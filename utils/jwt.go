// file: utils/jwt.go
package utils

import (
	"crypto/rand"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// 签名密钥进程启动时随机生成：主持人令牌只需在单次比赛进程内有效
var jwtSecret = func() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}()

// 口令只保存 bcrypt 哈希，明文在 InitAdminSecret 返回后即不再持有
var adminSecretHash []byte

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// InitAdminSecret 启动时对配置的主持人口令做一次哈希。传空串表示未配置口令。
func InitAdminSecret(secret string) error {
	if secret == "" {
		adminSecretHash = nil
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	adminSecretHash = hash
	return nil
}

// AdminSecretConfigured 是否配置了主持人口令
func AdminSecretConfigured() bool {
	return adminSecretHash != nil
}

// VerifyAdminSecret 校验调用方出示的口令
func VerifyAdminSecret(secret string) bool {
	if adminSecretHash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(adminSecretHash, []byte(secret)) == nil
}

// GenerateFacilitatorToken 口令校验通过后签发主持人令牌，有效期覆盖一场比赛
func GenerateFacilitatorToken() (string, error) {
	claims := Claims{
		Role: "facilitator",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, err
}
