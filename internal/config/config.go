package config

import (
	"github.com/joho/godotenv"
	"github.com/mintduck/nft-marketplace/internal/log"
	"go.uber.org/zap"
	"math/big"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env   string
	Index string
	Debug bool

	MarketplaceAddress string

	ApiPort    string
	HealthPort string

	Registry      RegistryConfig
	Payments      PaymentsConfig
	ElasticSearch ElasticSearchConfig
	Aws           AwsConfig
}

type RegistryConfig struct {
	Url     string
	Debug   bool
	Timeout int
}

type PaymentsConfig struct {
	GatewayUrl string
	AccessKey  string
}

type AwsConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	QueueUrl  string
}

type ElasticSearchConfig struct {
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	MappingDir       string
	BulkPersistCount int
	Refresh          string
}

func Init() {
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env config")
	}

	initLogger()
}

func initLogger() {
	log.NewLogger(Get().Debug)
}

func Get() *Config {
	return &Config{
		Env:                getString("ENV", ""),
		Index:              getString("INDEX_NAME", "marketplace"),
		Debug:              getBool("DEBUG", false),
		MarketplaceAddress: getString("MARKETPLACE_ADDRESS", ""),
		ApiPort:            getString("API_PORT", "8080"),
		HealthPort:         getString("HEALTH_PORT", "8090"),
		Registry: RegistryConfig{
			Url:     getString("REGISTRY_URL", ""),
			Timeout: getInt("REGISTRY_TIMEOUT", 30),
			Debug:   getBool("REGISTRY_DEBUG", false),
		},
		Payments: PaymentsConfig{
			GatewayUrl: getString("PAYMENTS_GATEWAY_URL", ""),
			AccessKey:  getString("PAYMENTS_ACCESS_KEY", ""),
		},
		Aws: AwsConfig{
			AccessKey: getString("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getString("AWS_SECRET_KEY_ID", ""),
			Region:    getString("AWS_REGION", ""),
			QueueUrl:  getString("AWS_QUEUE_URL", ""),
		},
		ElasticSearch: ElasticSearchConfig{
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			MappingDir:       getString("ELASTIC_SEARCH_MAPPING_DIR", "/data/mappings"),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 300),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	val, _, err := big.ParseFloat(valStr, 10, 0, big.ToNearestEven)
	if err != nil {
		return defaultValue
	}

	intVal, _ := val.Int64()
	return int(intVal)
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}
