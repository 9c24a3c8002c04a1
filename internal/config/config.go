package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config application configuration structure
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Chain    ChainConfig    `yaml:"chain"`
	Fees     FeeConfig      `yaml:"fees"`
	Pinata   PinataConfig   `yaml:"pinata"`
	NATS     NATSConfig     `yaml:"nats"`
	CORS     CORSConfig     `yaml:"cors"`
	Admin    AdminConfig    `yaml:"admin"`
}

// ServerConfig server configuration
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig database configuration. DSN empty disables persistence.
type DatabaseConfig struct {
	DSN    string `yaml:"dsn"`
	Driver string `yaml:"driver"`
}

// ChainConfig target network configuration
type ChainConfig struct {
	ChainID        int64    `yaml:"chainId"`
	Name           string   `yaml:"name"`
	RPCEndpoints   []string `yaml:"rpcEndpoints"`
	FactoryAddress string   `yaml:"factoryAddress"`

	// Manual gas limit for createToken calls. Dynamic estimation reverts
	// on this factory, so the limit is fixed rather than estimated.
	GasLimit uint64 `yaml:"gasLimit"`

	// Funding account private key (hex, without 0x prefix). Empty means no
	// wallet is connected and submissions are deferred until one is.
	PrivateKey string `yaml:"privateKey"`
}

// FeeConfig factory deployment fee policy, amounts in wei (18 decimals)
type FeeConfig struct {
	BaseFeeWei        string `yaml:"baseFeeWei"`
	DisableMintFeeWei string `yaml:"disableMintFeeWei"`
}

// PinataConfig IPFS pinning service configuration
type PinataConfig struct {
	BaseURL string `yaml:"baseUrl"`
	JWT     string `yaml:"jwt"`
	Timeout int    `yaml:"timeout"` // seconds
}

// NATSConfig event publishing configuration. URL empty disables publishing.
type NATSConfig struct {
	URL           string `yaml:"url"`
	Timeout       int    `yaml:"timeout"`
	ReconnectWait int    `yaml:"reconnect_wait"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// CORSConfig CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowedOrigins"`
	AllowCredentials bool     `yaml:"allowCredentials"`
	MaxAge           int      `yaml:"maxAge"`
}

// AdminConfig admin API access configuration
type AdminConfig struct {
	AllowedIPs []string `yaml:"allowedIPs"`
}

const (
	// DefaultGasLimit is the manual gas limit used when none is configured.
	DefaultGasLimit = uint64(10_000_000)

	// DefaultBaseFeeWei is 5 native tokens with 18 decimals.
	DefaultBaseFeeWei = "5000000000000000000"

	// DefaultDisableMintFeeWei is the surcharge for revoking mint authority.
	DefaultDisableMintFeeWei = "5000000000000000000"

	// DefaultPinataBaseURL is the public Pinata pinning API.
	DefaultPinataBaseURL = "https://api.pinata.cloud"
)

var AppConfig *Config

// LoadConfig loads the configuration file, preferring config.local.yaml when
// present, then applies environment variable overrides.
func LoadConfig(configPath string) error {
	if configPath == "" {
		configPath = "config.yaml"
		if _, err := os.Stat("config.local.yaml"); err == nil {
			configPath = "config.local.yaml"
			log.Printf("🔧 Using local configuration file: config.local.yaml")
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	overrideFromEnv(&config)
	applyDefaults(&config)

	AppConfig = &config
	log.Printf("✅ [Config] Loaded configuration from %s (chain=%s, chainId=%d)",
		configPath, config.Chain.Name, config.Chain.ChainID)
	return nil
}

// applyDefaults fills policy defaults for values the file omitted
func applyDefaults(config *Config) {
	if config.Chain.GasLimit == 0 {
		config.Chain.GasLimit = DefaultGasLimit
	}
	if config.Fees.BaseFeeWei == "" {
		config.Fees.BaseFeeWei = DefaultBaseFeeWei
	}
	if config.Fees.DisableMintFeeWei == "" {
		config.Fees.DisableMintFeeWei = DefaultDisableMintFeeWei
	}
	if config.Pinata.BaseURL == "" {
		config.Pinata.BaseURL = DefaultPinataBaseURL
	}
	if config.Pinata.Timeout == 0 {
		config.Pinata.Timeout = 60
	}
	if config.NATS.SubjectPrefix == "" {
		config.NATS.SubjectPrefix = "launchpad"
	}
}

// overrideFromEnv applies environment variable overrides
func overrideFromEnv(config *Config) {
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		config.Database.DSN = dsn
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if rpcEndpoints := os.Getenv("CHAIN_RPC_ENDPOINTS"); rpcEndpoints != "" {
		config.Chain.RPCEndpoints = strings.Split(rpcEndpoints, ",")
	}
	if chainID := os.Getenv("CHAIN_ID"); chainID != "" {
		if id, err := strconv.ParseInt(chainID, 10, 64); err == nil {
			config.Chain.ChainID = id
		}
	}
	if factory := os.Getenv("FACTORY_ADDRESS"); factory != "" {
		config.Chain.FactoryAddress = factory
	}
	if gasLimit := os.Getenv("CHAIN_GAS_LIMIT"); gasLimit != "" {
		if limit, err := strconv.ParseUint(gasLimit, 10, 64); err == nil {
			config.Chain.GasLimit = limit
		}
	}
	if privateKey := os.Getenv("PRIVATE_KEY"); privateKey != "" {
		config.Chain.PrivateKey = privateKey
		log.Printf("✅ [Config] Loaded funding account private key from environment")
	}

	if baseFee := os.Getenv("BASE_FEE_WEI"); baseFee != "" {
		config.Fees.BaseFeeWei = baseFee
	}
	if mintFee := os.Getenv("DISABLE_MINT_FEE_WEI"); mintFee != "" {
		config.Fees.DisableMintFeeWei = mintFee
	}

	if pinataURL := os.Getenv("PINATA_BASE_URL"); pinataURL != "" {
		config.Pinata.BaseURL = pinataURL
	}
	if pinataJWT := os.Getenv("PINATA_JWT_SECRET"); pinataJWT != "" {
		config.Pinata.JWT = pinataJWT
	}

	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		config.NATS.URL = natsURL
	}

	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		origins := strings.Split(corsOrigins, ",")
		config.CORS.AllowedOrigins = make([]string, 0, len(origins))
		for _, origin := range origins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				config.CORS.AllowedOrigins = append(config.CORS.AllowedOrigins, trimmed)
			}
		}
	}
}
