package testutil

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// StackConfig names the images and credentials of the local stack
type StackConfig struct {
	DBImage          string
	DBHost           string
	DBPort           string
	DBDatabase       string
	DBRootUser       string
	DBRootPassword   string
	DBAppUser        string
	DBAppPassword    string
	DBUser           string
	DBPassword       string
	AuthzImage       string
	AuthzPort        string
	AuthzDatabase    string
	AuthzClientID    string
	AuthzAdminSecret string
}

// StackConfigFromEnv reads the stack settings, falling back to local defaults
func StackConfigFromEnv() StackConfig {
	return StackConfig{
		DBImage:          envOr("DB_IMAGE", "postgres:16-alpine"),
		DBHost:           envOr("DB_HOST", "db"),
		DBPort:           envOr("DB_PORT", "5432"),
		DBDatabase:       envOr("DB_DATABASE", "cycles"),
		DBRootUser:       envOr("DB_ROOT_USER", "postgres"),
		DBRootPassword:   envOr("DB_ROOT_PASSWORD", "postgres"),
		DBAppUser:        envOr("DB_APP_USER", "cycles_catalog"),
		DBAppPassword:    envOr("DB_APP_PASSWORD", "catalog"),
		DBUser:           envOr("DB_USER", "cycles_user"),
		DBPassword:       envOr("DB_PASSWORD", "user"),
		AuthzImage:       envOr("AUTHZ_IMAGE", "lakhansamani/authorizer:latest"),
		AuthzPort:        envOr("AUTHZ_PORT", "8080"),
		AuthzDatabase:    envOr("AUTHZ_DATABASE", "authorizer"),
		AuthzClientID:    envOr("AUTHZ_CLIENT_ID", "cycle-companion"),
		AuthzAdminSecret: envOr("AUTHZ_ADMIN_SECRET", "admin"),
	}
}

// Stack is a running PostgreSQL, optionally with an Authorizer beside it
type Stack struct {
	Config     StackConfig
	Network    *testcontainers.DockerNetwork
	Database   testcontainers.Container
	Authorizer testcontainers.Container
	Logf       func(format string, args ...any)
}

// DockerAvailable pings the daemon the containers would run on
func DockerAvailable(ctx context.Context) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("docker client: %w", err)
	}
	defer cli.Close()

	if _, err := cli.Ping(ctx); err != nil {
		return fmt.Errorf("docker daemon not reachable: %w", err)
	}
	return nil
}

// StartDatabase starts PostgreSQL on a fresh network and creates the catalog
// and user roles. The user role owns the schema; the catalog role can only
// read what the user role creates.
func StartDatabase(ctx context.Context, cfg StackConfig, logf func(string, ...any)) (*Stack, error) {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	stack := &Stack{Config: cfg, Logf: logf}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	stack.Network = nw

	dbPort, err := nat.NewPort("tcp", cfg.DBPort)
	if err != nil {
		stack.Terminate(ctx)
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	db, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        cfg.DBImage,
			ExposedPorts: []string{string(dbPort)},
			Env: map[string]string{
				"POSTGRES_USER":     cfg.DBRootUser,
				"POSTGRES_PASSWORD": cfg.DBRootPassword,
				"POSTGRES_DB":       cfg.DBDatabase,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
			Networks: []string{nw.Name},
			NetworkAliases: map[string][]string{
				nw.Name: {cfg.DBHost},
			},
		},
		Started: true,
	})
	if err != nil {
		stack.Terminate(ctx)
		return nil, fmt.Errorf("failed to start database: %w", err)
	}
	stack.Database = db

	if err := stack.provision(ctx); err != nil {
		stack.Terminate(ctx)
		return nil, err
	}

	host, port, _ := stack.DatabaseAddr(ctx)
	logf("DB_HOST=%s DB_PORT=%s", host, port)
	return stack, nil
}

// DatabaseAddr is the host and mapped port of the database
func (s *Stack) DatabaseAddr(ctx context.Context) (string, string, error) {
	host, err := s.Database.Host(ctx)
	if err != nil {
		return "", "", err
	}
	port, err := s.Database.MappedPort(ctx, nat.Port(s.Config.DBPort+"/tcp"))
	if err != nil {
		return "", "", err
	}
	return host, port.Port(), nil
}

// DSN is a host-side connection string for the given role
func (s *Stack) DSN(ctx context.Context, user, password string) (string, error) {
	host, port, err := s.DatabaseAddr(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		host, user, password, s.Config.DBDatabase, port), nil
}

func (s *Stack) provision(ctx context.Context) error {
	dsn, err := s.DSN(ctx, s.Config.DBRootUser, s.Config.DBRootPassword)
	if err != nil {
		return fmt.Errorf("failed to resolve database address: %w", err)
	}

	var root *gorm.DB
	for i := 0; i < 30; i++ {
		root, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		return fmt.Errorf("database not ready after 30 seconds: %w", err)
	}
	sqlDB, _ := root.DB()
	defer sqlDB.Close()

	statements := []string{
		fmt.Sprintf("CREATE ROLE %s LOGIN PASSWORD '%s'", s.Config.DBUser, s.Config.DBPassword),
		fmt.Sprintf("CREATE ROLE %s LOGIN PASSWORD '%s'", s.Config.DBAppUser, s.Config.DBAppPassword),
		fmt.Sprintf("GRANT ALL ON SCHEMA public TO %s", s.Config.DBUser),
		fmt.Sprintf("GRANT USAGE ON SCHEMA public TO %s", s.Config.DBAppUser),
		fmt.Sprintf("ALTER DEFAULT PRIVILEGES FOR ROLE %s IN SCHEMA public GRANT SELECT ON TABLES TO %s",
			s.Config.DBUser, s.Config.DBAppUser),
		fmt.Sprintf("CREATE DATABASE %s", s.Config.AuthzDatabase),
	}
	for _, stmt := range statements {
		if err := root.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("provisioning failed at %q: %w", stmt, err)
		}
	}
	return nil
}

// StartAuthorizer runs an Authorizer backed by the stack's database
func (s *Stack) StartAuthorizer(ctx context.Context) error {
	cfg := s.Config
	authzPort, err := nat.NewPort("tcp", cfg.AuthzPort)
	if err != nil {
		return fmt.Errorf("failed to create Authorizer port: %w", err)
	}

	dbURL := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		cfg.DBRootUser, cfg.DBRootPassword, net.JoinHostPort(cfg.DBHost, cfg.DBPort), cfg.AuthzDatabase)

	authz, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        cfg.AuthzImage,
			ExposedPorts: []string{string(authzPort)},
			Env: map[string]string{
				"ENV":           "production",
				"CLIENT_ID":     cfg.AuthzClientID,
				"PORT":          cfg.AuthzPort,
				"DATABASE_TYPE": "postgres",
				"DATABASE_NAME": cfg.AuthzDatabase,
				"DATABASE_URL":  dbURL,
				"ADMIN_SECRET":  cfg.AuthzAdminSecret,
				"ROLES":         "admin,user",
				"DEFAULT_ROLES": "user",
			},
			WaitingFor: wait.ForLog("Authorizer running at PORT:").WithStartupTimeout(30 * time.Second),
			Networks:   []string{s.Network.Name},
			NetworkAliases: map[string][]string{
				s.Network.Name: {"authorizer"},
			},
		},
		Started: true,
	})
	if err != nil {
		return fmt.Errorf("failed to start Authorizer: %w", err)
	}
	s.Authorizer = authz

	host, _ := authz.Host(ctx)
	port, _ := authz.MappedPort(ctx, authzPort)
	s.Logf("AUTHZ_URL=http://%s:%s", host, port.Port())
	return nil
}

// Terminate stops every container and removes the network
func (s *Stack) Terminate(ctx context.Context) {
	if s.Authorizer != nil {
		if err := s.Authorizer.Terminate(ctx); err != nil {
			s.Logf("Failed to terminate Authorizer: %v", err)
		}
	}
	if s.Database != nil {
		if err := s.Database.Terminate(ctx); err != nil {
			s.Logf("Failed to terminate database: %v", err)
		}
	}
	if s.Network != nil {
		if err := s.Network.Remove(ctx); err != nil {
			s.Logf("Failed to remove network: %v", err)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
