package config

import (
	"github.com/barakahchain/charity-platform-sub001/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Ipfs     IpfsConfig     `mapstructure:"ipfs"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ChainConfig 链配置
type ChainConfig struct {
	ChainId      int64  `mapstructure:"chain_id"`      // 链ID
	RpcUrl       string `mapstructure:"rpc_url"`       // RPC节点URL
	FactoryABI   string `mapstructure:"factory_abi"`   // 工厂合约ABI文件路径（为空时使用内置ABI）
	CreatedEvent string `mapstructure:"created_event"` // 项目创建事件名称
}

// IpfsConfig 元数据网关配置
type IpfsConfig struct {
	Gateways []string `mapstructure:"gateways"` // 网关URL模板，{cid}为占位符，按顺序尝试
	Timeout  int      `mapstructure:"timeout"`  // 单个网关超时（秒）
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 秒
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/charity-platform")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "charity")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("chain.chain_id", 1)
	viper.SetDefault("chain.rpc_url", "")
	viper.SetDefault("chain.created_event", "ProjectCreated")
	viper.SetDefault("ipfs.gateways", []string{
		"https://ipfs.io/ipfs/{cid}",
		"https://cloudflare-ipfs.com/ipfs/{cid}",
		"https://{cid}.ipfs.dweb.link/",
		"https://gateway.pinata.cloud/ipfs/{cid}",
	})
	viper.SetDefault("ipfs.timeout", 5)
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
