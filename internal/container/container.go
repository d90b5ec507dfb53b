package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/config"
	"github.com/oksasatya/go-account-service/internal/application"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	userRepo    repo.UserRepository
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager

	publisher application.EventPublisher
	userIndex application.UserIndex
)

func SetConfig(c *config.Config)                { cfg = c }
func GetConfig() *config.Config                 { return cfg }
func SetLogger(l *logrus.Logger)                { logger = l }
func GetLogger() *logrus.Logger                 { return logger }
func SetUserRepo(r repo.UserRepository)         { userRepo = r }
func GetUserRepo() repo.UserRepository          { return userRepo }
func SetRedis(r *redis.Client)                  { redisClient = r }
func GetRedis() *redis.Client                   { return redisClient }
func SetJWT(m *helpers.JWTManager)              { jwtManager = m }
func GetJWT() *helpers.JWTManager               { return jwtManager }
func SetPublisher(p application.EventPublisher) { publisher = p }
func GetPublisher() application.EventPublisher  { return publisher }
func SetUserIndex(i application.UserIndex)      { userIndex = i }
func GetUserIndex() application.UserIndex       { return userIndex }
