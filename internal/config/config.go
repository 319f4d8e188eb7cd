package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 结构体包含所有应用的配置
// 在 main 中构建一次, 之后以只读方式注入各组件, 不提供全局实例
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	MySQL     MySQLConfig     `mapstructure:"mysql"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	AliyunOSS AliyunOSSConfig `mapstructure:"aliyun_oss"`
	Storage   StorageConfig   `mapstructure:"storageconfig"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// MySQLConfig 数据库配置
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type AliyunOSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"` // 例如: oss-cn-hangzhou.aliyuncs.com
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// StorageConfig 对象存储的路由配置
// PublicBucket/PrivateBucket 二者都配置时按类别公私分流;
// 只配置 PublicBucket 时所有类别落在同一个桶, 对象键以 public/ 或 private/ 前缀区分
type StorageConfig struct {
	Type               string        `mapstructure:"type"` // minio 或 aliyun_oss
	PublicBucket       string        `mapstructure:"public_bucket"`
	PrivateBucket      string        `mapstructure:"private_bucket"`
	PublicBaseURL      string        `mapstructure:"public_base_url"` // 公开访问域名, 为空时回退到桶地址
	PresignedURLExpiry time.Duration `mapstructure:"presigned_url_expiry"`
	SessionExpiry      time.Duration `mapstructure:"session_expiry"` // 上传会话固定有效期
}

// JWTConfig JWT配置
type JWTConfig struct {
	SecretKey string        `mapstructure:"secret_key"`
	ExpiresIn time.Duration `mapstructure:"expires_in"`
	Issuer    string        `mapstructure:"issuer"`
}

// zap日志配置
type LogConfig struct {
	OutputPath string `mapstructure:"output_path"`
	ErrorPath  string `mapstructure:"error_path"`
	Level      string `mapstructure:"level"`
}

// LoadConfig 加载配置
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")            // 配置文件名 (不带扩展名)
	viper.SetConfigType("yaml")              // 配置文件类型
	viper.AddConfigPath(".")                 // 在当前目录查找配置文件
	viper.AddConfigPath("./configs")         // 也可以添加其他路径，例如 ./configs/
	viper.AddConfigPath("/etc/go-edumedia/") // 生产环境常见路径

	// 读取环境变量，环境变量名将自动转换为大写，并用下划线替换点
	// 例如：SERVER.PORT 对应环境变量 GO_EDUMEDIA_SERVER_PORT
	viper.SetEnvPrefix("GO_EDUMEDIA")
	viper.AutomaticEnv()

	// 替换环境变量中的点为下划线, 确保 Viper 能正确映射如 MYSQL_DSN 到 mysql.dsn
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	// 默认值: 预签名URL默认一小时, 上传会话默认24小时
	viper.SetDefault("storageconfig.presigned_url_expiry", time.Hour)
	viper.SetDefault("storageconfig.session_expiry", 24*time.Hour)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// 配置文件未找到，但这不是致命错误，因为我们可以依赖环境变量或默认值
			log.Println("Warning: config file not found, using environment variables or default values.")
		} else {
			log.Fatalf("Fatal error reading config file: %s \n", err)
			return nil, err
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		log.Fatalf("Fatal error unmarshaling config: %s \n", err)
		return nil, err
	}

	log.Println("Configuration loaded successfully with Viper.")
	return cfg, nil
}
