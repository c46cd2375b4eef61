package echoapi

import (
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/account"
)

const (
	contextTokenKey = "userToken"
	contextAdminKey = "admin"
	audience        = "Arbitres"
)

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

// Claims represents the authorization claims transmitted via a JWT.
// Access is the backend token forwarded on every backend call.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Email        string `json:"email,omitempty"`
	FullName     string `json:"name,omitempty"`
	IsStaff      bool   `json:"is_staff,omitempty"`
	IsSuperuser  bool   `json:"is_superuser,omitempty"`
	Access       string `json:"bat,omitempty"`
}

func (c Claims) Admin() account.Admin {
	id, _ := strconv.Atoi(c.Subject)
	return account.Admin{
		ID:          id,
		Email:       c.Email,
		FullName:    c.FullName,
		IsStaff:     c.IsStaff,
		IsSuperuser: c.IsSuperuser,
	}
}

func GetAdminClaims(adm account.Admin, access string, conf *core.Config, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   strconv.Itoa(adm.ID),
			Audience:  audience,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Email:        adm.Email,
		FullName:     adm.FullName,
		IsStaff:      adm.IsStaff,
		IsSuperuser:  adm.IsSuperuser,
		Access:       access,
	}
}

// GenerateToken generates a signed JWT token string representing the admin Claims.
func GenerateToken(claims *Claims, conf *core.Config) (string, error) {
	jwtConf := newJWTConfig(conf)
	method := jwt.GetSigningMethod(jwtConf.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(jwtConf.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// contextAdmin returns the authenticated admin, or a zero Admin.
func contextAdmin(ctx echo.Context) account.Admin {
	if adm, ok := ctx.Get(contextAdminKey).(account.Admin); ok {
		return adm
	}
	if claims, err := getContextClaims(ctx); err == nil {
		return claims.Admin()
	}
	return account.Admin{}
}

func refreshToken(ctx echo.Context, svc *account.Service, conf *core.Config) (string, account.Admin, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", account.Admin{}, errors.Wrap(err, "getting context claims")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", account.Admin{}, errRefreshExpired
	}

	// check if the backend still knows the admin
	adm, err := svc.Profile(core.WithAccessToken(ctx.Request().Context(), claims.Access))
	if err != nil {
		return "", account.Admin{}, errors.Wrap(err, "fetching profile")
	}

	newClaims := GetAdminClaims(adm, claims.Access, conf, claims.OrigIssuedAt)
	token, err := GenerateToken(newClaims, conf)
	return token, adm, errors.Wrap(err, "generating token")
}
