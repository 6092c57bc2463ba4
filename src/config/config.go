package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/ProjectsTask/TraitSigner/base/kit/validator"
	logging "github.com/ProjectsTask/TraitSigner/base/logger"
	"github.com/ProjectsTask/TraitSigner/base/stores/gdb"
	"github.com/ProjectsTask/TraitSigner/src/common/utils"
)

const EnvPrefix = "TRAITS"

// Config 服务全局配置, 启动时加载一次后以指针传入各组件
type Config struct {
	Api      Api             `toml:"api" mapstructure:"api" json:"api"`
	Log      logging.LogConf `toml:"log" mapstructure:"log" json:"log"`
	DB       gdb.Config      `toml:"db" mapstructure:"db" json:"db"`
	Chain    ChainCfg        `toml:"chain" mapstructure:"chain" json:"chain"`
	Contract ContractCfg     `toml:"contract" mapstructure:"contract" json:"contract"`
	Auth     AuthCfg         `toml:"auth" mapstructure:"auth" json:"-"` // 含私钥, 不输出到日志
	Monitor  Monitor         `toml:"monitor" mapstructure:"monitor" json:"monitor"`
}

type Api struct {
	Port            string `toml:"port" mapstructure:"port" json:"port" validate:"required"`
	ShutdownTimeout int    `toml:"shutdown_timeout" mapstructure:"shutdown_timeout" json:"shutdown_timeout"` // 秒
}

// ChainCfg 节点配置
type ChainCfg struct {
	JsonRPC      string `toml:"json_rpc" mapstructure:"json_rpc" json:"json_rpc" validate:"required"`
	ChainID      int64  `toml:"chain_id" mapstructure:"chain_id" json:"chain_id"`
	DialAttempts int    `toml:"dial_attempts" mapstructure:"dial_attempts" json:"dial_attempts"`
	DialInterval int    `toml:"dial_interval" mapstructure:"dial_interval" json:"dial_interval"` // 秒
}

// ContractCfg 合约地址
type ContractCfg struct {
	BankAddress    string `toml:"bank_address" mapstructure:"bank_address" json:"bank_address" validate:"required,address"`       // 质押合约
	PrimaryAddress string `toml:"primary_address" mapstructure:"primary_address" json:"primary_address" validate:"required,address"` // 主系列 NFT 合约
	UtilityAddress string `toml:"utility_address" mapstructure:"utility_address" json:"utility_address" validate:"required,address"` // utility 系列 NFT 合约
}

// AuthCfg 签名私钥与管理员 JWT
type AuthCfg struct {
	PrivateKey string `toml:"private_key" mapstructure:"private_key" json:"private_key" validate:"required,privkey"`
	JwtSecret  string `toml:"jwt_secret" mapstructure:"jwt_secret" json:"jwt_secret" validate:"required,min=16"`
	JwtIssuer  string `toml:"jwt_issuer" mapstructure:"jwt_issuer" json:"jwt_issuer"`
	TokenTTL   int    `toml:"token_ttl" mapstructure:"token_ttl" json:"token_ttl"` // 小时
}

type Monitor struct {
	PprofEnable bool  `toml:"pprof_enable" mapstructure:"pprof_enable" json:"pprof_enable"`
	PprofPort   int64 `toml:"pprof_port" mapstructure:"pprof_port" json:"pprof_port"`
}

// UnmarshalConfig 加载并解析指定路径的 TOML 配置
// 环境变量可覆盖配置项, 如 TRAITS_AUTH_PRIVATE_KEY 覆盖 auth.private_key
func UnmarshalConfig(configFilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configFilePath)
	v.SetConfigType("toml")
	return unmarshal(v)
}

// UnmarshalCmdConfig 使用 cobra 初始化好的全局 viper
func UnmarshalCmdConfig() (*Config, error) {
	return unmarshal(viper.GetViper())
}

func unmarshal(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "failed on read config")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "failed on unmarshal config")
	}
	c.setDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// bindEnvs 配置文件中缺省的 key 也能通过环境变量注入 (AutomaticEnv 只覆盖已存在的 key)
func bindEnvs(v *viper.Viper) {
	for _, key := range []string{
		"auth.private_key", "auth.jwt_secret",
		"db.password", "chain.json_rpc",
	} {
		_ = v.BindEnv(key)
	}
}

func (c *Config) setDefaults() {
	if c.Api.ShutdownTimeout <= 0 {
		c.Api.ShutdownTimeout = 10
	}
	if c.Chain.DialAttempts <= 0 {
		c.Chain.DialAttempts = 3
	}
	if c.Chain.DialInterval <= 0 {
		c.Chain.DialInterval = 2
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24
	}
	if c.Auth.JwtIssuer == "" {
		c.Auth.JwtIssuer = "trait-signer"
	}
}

// Validate 校验必填项与地址格式
func (c *Config) Validate() error {
	if err := utils.RegisterValidators(); err != nil {
		return err
	}
	if err := validator.Verify(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}
