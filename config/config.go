// Package config loads securecore deployment configuration from the
// environment. Secrets are sourced from environment variables (optionally
// via a .env file in development); the package decodes and validates them
// but never logs or echoes secret values.
//
// Two provisioning modes are supported for the 32-byte context key:
//
//   - SECURECORE_SECRET_KEY: the key itself, base64 or hex encoded.
//   - SECURECORE_MASTER_SECRET + SECURECORE_KEY_SALT: the key is derived
//     with HKDF-SHA-512, so many deployments can share one master secret
//     with per-deployment salts.
package config

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	securecore "github.com/fedshare/securecore-go"
)

// Environment selects a configuration profile.
type Environment string

const (
	// Development enables verbose diagnostics and experimental features.
	Development Environment = "development"
	// Staging mirrors production with metrics always on.
	Staging Environment = "staging"
	// Production is the default hardened profile.
	Production Environment = "production"
)

// Environment variable names read by Load.
const (
	EnvEnvironment  = "ENVIRONMENT"
	EnvSecretKey    = "SECURECORE_SECRET_KEY"
	EnvMasterSecret = "SECURECORE_MASTER_SECRET"
	EnvKeySalt      = "SECURECORE_KEY_SALT"
	EnvScheme       = "SECURECORE_SIGNATURE_SCHEME"
	EnvMetrics      = "SECURECORE_ENABLE_METRICS"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingSecret is returned when neither a secret key nor a master
	// secret is provided.
	ErrMissingSecret = errors.New("no secret key configured: set " + EnvSecretKey + " or " + EnvMasterSecret)

	// ErrInvalidSecret is returned when the configured secret cannot be
	// decoded to a 32-byte key.
	ErrInvalidSecret = errors.New("invalid secret key")

	// ErrInvalidEnvironment is returned for an unrecognized ENVIRONMENT
	// value.
	ErrInvalidEnvironment = errors.New("invalid environment")
)

// Config is the loaded deployment configuration.
type Config struct {
	// Environment is the active profile.
	Environment Environment
	// ContextKey is the 32-byte key for securecore.New. Wipe it once the
	// SecurityContext is constructed.
	ContextKey []byte
	// Scheme is the signature scheme for generated key pairs.
	Scheme securecore.SignatureScheme
	// EnableMetrics toggles health monitoring exports.
	EnableMetrics bool
	// InstanceID identifies this process in audit records and health
	// snapshots.
	InstanceID string
}

// loadConfig holds options for Load.
type loadConfig struct {
	dotenvPath string
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

// WithDotenv loads the given .env file before reading the environment.
// Missing files are ignored so the same code path works outside
// development.
func WithDotenv(path string) LoadOption {
	return func(c *loadConfig) {
		c.dotenvPath = path
	}
}

// Load reads configuration from the environment.
func Load(opts ...LoadOption) (*Config, error) {
	var lc loadConfig
	for _, opt := range opts {
		opt(&lc)
	}

	if lc.dotenvPath != "" {
		// Load .env file if it exists (won't error if missing)
		if err := godotenv.Load(lc.dotenvPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", lc.dotenvPath, err)
		}
	}

	env, err := parseEnvironment(os.Getenv(EnvEnvironment))
	if err != nil {
		return nil, err
	}

	key, err := loadContextKey()
	if err != nil {
		return nil, err
	}

	scheme := securecore.SchemeRSAPSS
	if s := os.Getenv(EnvScheme); s != "" {
		switch securecore.SignatureScheme(s) {
		case securecore.SchemeRSAPSS, securecore.SchemeMLDSA65:
			scheme = securecore.SignatureScheme(s)
		default:
			return nil, fmt.Errorf("%w: %q", securecore.ErrUnknownScheme, s)
		}
	}

	cfg := &Config{
		Environment:   env,
		ContextKey:    key,
		Scheme:        scheme,
		EnableMetrics: env != Development,
		InstanceID:    uuid.NewString(),
	}

	if v := os.Getenv(EnvMetrics); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", EnvMetrics, err)
		}
		cfg.EnableMetrics = enabled
	}

	return cfg, nil
}

// NewContext constructs a SecurityContext from the loaded configuration
// and wipes the config's copy of the key.
func (c *Config) NewContext(opts ...securecore.Option) (*securecore.SecurityContext, error) {
	opts = append(opts, securecore.WithSignatureScheme(c.Scheme))
	ctx, err := securecore.New(c.ContextKey, opts...)
	for i := range c.ContextKey {
		c.ContextKey[i] = 0
	}
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

func parseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case Development, Staging, Production:
		return Environment(s), nil
	case "":
		return Development, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEnvironment, s)
	}
}

// loadContextKey reads or derives the 32-byte context key.
func loadContextKey() ([]byte, error) {
	if encoded := os.Getenv(EnvSecretKey); encoded != "" {
		key, err := decodeKey(encoded)
		if err != nil {
			return nil, err
		}
		return key, nil
	}

	master := os.Getenv(EnvMasterSecret)
	if master == "" {
		return nil, ErrMissingSecret
	}

	salt := []byte(os.Getenv(EnvKeySalt))
	key, err := securecore.DeriveContextKey([]byte(master), salt)
	if err != nil {
		return nil, fmt.Errorf("derive context key: %w", err)
	}
	return key, nil
}

// decodeKey accepts base64url, standard base64, or hex encodings. The
// encodings overlap (a hex string is also valid base64url), so the
// winner is whichever decoding yields exactly 32 bytes.
func decodeKey(encoded string) ([]byte, error) {
	for _, decode := range []func(string) ([]byte, error){
		hex.DecodeString,
		func(s string) ([]byte, error) { return base64.RawURLEncoding.DecodeString(s) },
		base64.StdEncoding.DecodeString,
	} {
		if key, err := decode(encoded); err == nil && len(key) == securecore.KeySize {
			return key, nil
		}
	}
	return nil, fmt.Errorf("%w: not a 32-byte key in hex or base64", ErrInvalidSecret)
}
