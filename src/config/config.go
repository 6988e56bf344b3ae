package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	xzap "github.com/pinkyblu/bp-tracker-test/src/logger"
)

type Config struct {
	Api         Api          `toml:"api" mapstructure:"api" json:"api"`
	ProjectCfg  *ProjectCfg  `toml:"project_cfg" mapstructure:"project_cfg" json:"project_cfg"`
	Log         xzap.Config  `toml:"log" mapstructure:"log" json:"log"`
	Kv          *KvConfig    `toml:"kv" mapstructure:"kv" json:"kv"`
	Chain       Chain        `toml:"chain" mapstructure:"chain" json:"chain"`
	Collection  Collection   `toml:"collection" mapstructure:"collection" json:"collection"`
	Marketplace Marketplace  `toml:"marketplace" mapstructure:"marketplace" json:"marketplace"`
	Enrich      Enrich       `toml:"enrich" mapstructure:"enrich" json:"enrich"`
	Mint        Mint         `toml:"mint" mapstructure:"mint" json:"mint"`
	Frame       *FrameConfig `toml:"frame" mapstructure:"frame" json:"frame"`
}

type Api struct {
	Port   string `toml:"port" mapstructure:"port" json:"port"`
	MaxNum int64  `toml:"max_num" mapstructure:"max_num" json:"max_num"`
}

type ProjectCfg struct {
	Name string `toml:"name" mapstructure:"name" json:"name"`
}

type KvConfig struct {
	Redis []*Redis `toml:"redis" mapstructure:"redis" json:"redis"`
}

type Redis struct {
	MasterName string `toml:"master_name" mapstructure:"master_name" json:"master_name"`
	Host       string `toml:"host" json:"host"`
	Type       string `toml:"type" json:"type"`
	Pass       string `toml:"pass" json:"pass"`
}

// Chain holds the single supported network. Both the display constants and
// the wallet_addEthereumChain request are built from it.
type Chain struct {
	Name            string `toml:"name" mapstructure:"name" json:"name"`
	ChainId         int    `toml:"chain_id" mapstructure:"chain_id" json:"chain_id"`
	Endpoint        string `toml:"endpoint" mapstructure:"endpoint" json:"endpoint"`
	ExplorerUrl     string `toml:"explorer_url" mapstructure:"explorer_url" json:"explorer_url"`
	CurrencyName    string `toml:"currency_name" mapstructure:"currency_name" json:"currency_name"`
	CurrencySymbol  string `toml:"currency_symbol" mapstructure:"currency_symbol" json:"currency_symbol"`
	CurrencyDecimal int    `toml:"currency_decimal" mapstructure:"currency_decimal" json:"currency_decimal"`
}

type Collection struct {
	Address     string `toml:"address" mapstructure:"address" json:"address"`
	Slug        string `toml:"slug" mapstructure:"slug" json:"slug"`
	Name        string `toml:"name" mapstructure:"name" json:"name"`
	GenesisTime int64  `toml:"genesis_time" mapstructure:"genesis_time" json:"genesis_time"`
}

type Marketplace struct {
	BaseUrl        string `toml:"base_url" mapstructure:"base_url" json:"base_url"`
	ApiKey         string `toml:"api_key" mapstructure:"api_key" json:"api_key"`
	Protocol       string `toml:"protocol" mapstructure:"protocol" json:"protocol"`
	PageSize       int    `toml:"page_size" mapstructure:"page_size" json:"page_size"`
	MaxItems       int    `toml:"max_items" mapstructure:"max_items" json:"max_items"`
	TimeoutSeconds int    `toml:"timeout_seconds" mapstructure:"timeout_seconds" json:"timeout_seconds"`
	FloorCacheSecs int    `toml:"floor_cache_secs" mapstructure:"floor_cache_secs" json:"floor_cache_secs"`
}

type Enrich struct {
	BatchSize int `toml:"batch_size" mapstructure:"batch_size" json:"batch_size"`
}

type Mint struct {
	PriceEth    string `toml:"price_eth" mapstructure:"price_eth" json:"price_eth"`
	MaxQuantity int64  `toml:"max_quantity" mapstructure:"max_quantity" json:"max_quantity"`
}

type FrameConfig struct {
	ComposeUrl  string `toml:"compose_url" mapstructure:"compose_url" json:"compose_url"`
	FallbackUrl string `toml:"fallback_url" mapstructure:"fallback_url" json:"fallback_url"`
}

func UnmarshalConfig(configFilePath string) (*Config, error) {
	viper.SetConfigFile(configFilePath)
	viper.SetConfigType("toml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("BP")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}
	return config, nil
}

func DefaultConfig() *Config {
	return &Config{
		Api: Api{Port: ":9000", MaxNum: 500},
		Chain: Chain{
			Name:            "Base",
			ChainId:         8453,
			Endpoint:        "https://mainnet.base.org",
			ExplorerUrl:     "https://basescan.org",
			CurrencyName:    "Ether",
			CurrencySymbol:  "ETH",
			CurrencyDecimal: 18,
		},
		Marketplace: Marketplace{
			PageSize:       50,
			MaxItems:       200,
			TimeoutSeconds: 15,
			FloorCacheSecs: 30,
		},
		Enrich: Enrich{BatchSize: 4},
		Mint:   Mint{PriceEth: "0.0026", MaxQuantity: 10},
	}
}

// Validate rejects configs the service cannot start with.
func (c *Config) Validate() error {
	if c.Chain.ChainId == 0 || c.Chain.Name == "" {
		return errors.New("invalid chain config")
	}
	if c.Collection.Address == "" {
		return errors.New("collection address is required")
	}
	if c.Enrich.BatchSize <= 0 {
		return errors.New("enrich batch_size must be positive")
	}
	if _, err := decimal.NewFromString(c.Mint.PriceEth); err != nil {
		return errors.Wrap(err, "invalid mint price")
	}
	return nil
}
