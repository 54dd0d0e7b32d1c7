package authService

import (
	"context"
	"github.com/sirupsen/logrus"
	"intentbot/internal/entity"
	"intentbot/pkg/bcrypt"
	jwtPkg "intentbot/pkg/jwt"
	"intentbot/pkg/redis"
	"time"
)

type ConfigProvider interface {
	CurrentConfig(ctx context.Context) (entity.Config, error)
}

type IAuthService interface {
	Login(ctx context.Context, password string, host string) (string, time.Time, error)
	Logout(ctx context.Context, token string, host string) error
}

type authService struct {
	log     *logrus.Logger
	configs ConfigProvider
	bcrypt  bcrypt.IBcrypt
	signer  jwtPkg.ITokenSigner
	revoked redis.IRedis
}

func New(
	log *logrus.Logger,
	configs ConfigProvider,
	bcrypt bcrypt.IBcrypt,
	signer jwtPkg.ITokenSigner,
	revoked redis.IRedis,
) IAuthService {
	return &authService{
		log:     log,
		configs: configs,
		bcrypt:  bcrypt,
		signer:  signer,
		revoked: revoked,
	}
}
