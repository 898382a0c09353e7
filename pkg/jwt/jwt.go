package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Manager JWT管理器
// 设计说明：
// 1. 目录的写操作（添加、更新）需要编辑身份，读操作公开
// 2. 只签发单个Access Token，没有登录流程，Token由cmd/token离线签发
// 3. 无状态校验，不依赖Redis
type Manager struct {
	secret string        // JWT签名密钥
	expire time.Duration // Token有效期
	issuer string        // 签发方
}

// NewManager 创建JWT管理器
func NewManager(secret string, expire time.Duration, issuer string) *Manager {
	return &Manager{
		secret: secret,
		expire: expire,
		issuer: issuer,
	}
}

// Claims 自定义JWT Claims
// 嵌入jwt.RegisteredClaims获取标准字段（exp、iat、nbf等）
type Claims struct {
	Editor string `json:"editor"`
	jwt.RegisteredClaims
}

// Token 签发结果
type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // 过期时间（秒）
}

// GenerateToken 为编辑签发Token
func (m *Manager) GenerateToken(editor string) (*Token, error) {
	if editor == "" {
		return nil, apperrors.ErrInvalidArgument.WithCause(errors.New("editor不能为空"))
	}

	now := time.Now()
	claims := Claims{
		Editor: editor,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   editor,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Token失败")
	}

	return &Token{
		AccessToken: signed,
		ExpiresIn:   int64(m.expire.Seconds()),
	}, nil
}

// ParseToken 解析并验证Token
// 校验签名算法、过期时间、生效时间和签发方
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithIssuer(m.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken.WithCause(err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.ErrInvalidToken
}
