package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig 定义 HTTP 服务器的监听配置参数
type ServerConfig struct {
	Host string // 监听地址，默认 "0.0.0.0"
	Port int    // 监听端口，默认 8080
}

// AdminConfig 定义管理后台的共享密钥配置
//
// Secret 与 SecretHash 二选一：
//   - Secret: 明文密钥，使用常量时间比较
//   - SecretHash: bcrypt 哈希，优先于明文
//
// 两者都为空属于配置错误，Load 会直接失败，
// 不能与"密码错误"混为一谈。
type AdminConfig struct {
	Secret     string // 明文管理密钥
	SecretHash string // bcrypt 哈希后的管理密钥（可选）
}

// SessionConfig 定义管理会话与 Cookie 的配置
type SessionConfig struct {
	TTL        time.Duration // 会话生存时间，默认 24h
	CookieName string        // 会话 Cookie 名称，默认 "promarch_session"
	Secure     bool          // 是否仅在 HTTPS 下发送 Cookie
	SameSite   string        // Cookie 跨站策略: "lax", "strict", "none"
	Backend    string        // 会话存储后端: "memory" 或 "redis"
}

// ContactConfig 定义联系表单的业务配置
type ContactConfig struct {
	DefaultSubject  string // 未填写主题时的默认值
	MaxMessageBytes int    // 正文最大字节数，超出直接拒绝
}

// NotifyConfig 定义新询盘的邮件通知配置
//
// Host 为空表示关闭通知，提交流程不受影响。
type NotifyConfig struct {
	Host     string        // SMTP 服务器地址
	Port     int           // SMTP 端口，默认 587
	Username string        // SMTP 用户名
	Password string        // SMTP 密码
	From     string        // 发件人地址
	To       string        // 收件人地址（站点收件箱）
	Timeout  time.Duration // 单次发送超时，默认 5s
}

// CORSConfig 定义跨域资源共享 (CORS) 配置
type CORSConfig struct {
	AllowedOrigins []string // 允许的来源列表，"*" 表示允许所有来源
}

// LogConfig 定义日志系统配置
type LogConfig struct {
	Level       string // 日志级别: debug, info, warn, error
	Development bool   // 开发模式: 启用彩色输出和详细堆栈信息
	File        string // 日志文件路径，留空输出到 stdout
}

// DatabaseConfig 定义数据库连接配置
type DatabaseConfig struct {
	Type            string        // 存储类型: "" (内存)、"mysql"、"postgres"、"pgx"
	DSN             string        // 数据库连接字符串
	MaxOpenConns    int           // 最大打开连接数，默认 25
	MaxIdleConns    int           // 最大空闲连接数，默认 5
	ConnMaxLifetime time.Duration // 连接最大生命周期，默认 5 分钟
}

// RedisConfig 定义 Redis 会话存储配置
type RedisConfig struct {
	Address  string // Redis 服务地址，格式 "host:port"，默认 "localhost:6379"
	Password string // Redis 认证密码，留空表示无密码
	DB       int    // Redis 数据库编号，默认 0
}

// Config 是系统核心配置的根结构体，包含所有子系统的配置
type Config struct {
	Server   ServerConfig
	Admin    AdminConfig
	Session  SessionConfig
	Contact  ContactConfig
	Notify   NotifyConfig
	CORS     CORSConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

// Load 从环境变量和 .env 文件加载系统配置
//
// 配置加载优先级（从高到低）：
//   1. 系统环境变量（最高优先级）
//   2. .env 文件（如果存在）
//   3. 默认值
//
// 环境变量前缀: PROMARCH_
// 例如: PROMARCH_SERVER_PORT, PROMARCH_ADMIN_SECRET
//
// 返回值:
//   - *Config: 加载成功的配置对象
//   - error: 配置验证失败时返回错误
func Load() (*Config, error) {
	// 尝试加载 .env 文件（静默失败，因为 .env 文件是可选的）
	loadEnvFile()

	viper.SetEnvPrefix("promarch")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("admin.secret", "")
	viper.SetDefault("admin.secret_hash", "")
	viper.SetDefault("session.ttl", "24h")
	viper.SetDefault("session.cookie_name", "promarch_session")
	viper.SetDefault("session.secure", false)
	viper.SetDefault("session.same_site", "lax")
	viper.SetDefault("session.backend", "memory")
	viper.SetDefault("contact.default_subject", "No Subject")
	viper.SetDefault("contact.max_message_bytes", 8192)
	viper.SetDefault("notify.host", "")
	viper.SetDefault("notify.port", 587)
	viper.SetDefault("notify.username", "")
	viper.SetDefault("notify.password", "")
	viper.SetDefault("notify.from", "")
	viper.SetDefault("notify.to", "")
	viper.SetDefault("notify.timeout", "5s")
	viper.SetDefault("cors.allowed_origins", "*")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.development", false)
	viper.SetDefault("log.file", "")
	viper.SetDefault("database.type", "") // 默认为空，使用内存存储
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "5m")
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	adminSecret := viper.GetString("admin.secret")
	adminSecretHash := viper.GetString("admin.secret_hash")

	// 管理密钥是硬性要求：没有密钥的后台等于没有门
	if adminSecret == "" && adminSecretHash == "" {
		return nil, fmt.Errorf("admin secret is not configured: set PROMARCH_ADMIN_SECRET or PROMARCH_ADMIN_SECRET_HASH")
	}

	sessionTTL, err := time.ParseDuration(viper.GetString("session.ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid session.ttl: %w", err)
	}

	sameSite := strings.ToLower(viper.GetString("session.same_site"))
	switch sameSite {
	case "lax", "strict", "none":
	default:
		return nil, fmt.Errorf("invalid session.same_site: %q (expected lax, strict or none)", sameSite)
	}

	sessionBackend := viper.GetString("session.backend")
	if sessionBackend != "memory" && sessionBackend != "redis" {
		return nil, fmt.Errorf("invalid session.backend: %q (expected memory or redis)", sessionBackend)
	}

	maxMessageBytes := viper.GetInt("contact.max_message_bytes")
	if maxMessageBytes <= 0 {
		maxMessageBytes = 8192
	}

	notifyTimeout, err := time.ParseDuration(viper.GetString("notify.timeout"))
	if err != nil {
		notifyTimeout = 5 * time.Second
	}

	corsOrigins := parseList(viper.GetString("cors.allowed_origins"))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	connMaxLifetime, err := time.ParseDuration(viper.GetString("database.conn_max_lifetime"))
	if err != nil {
		connMaxLifetime = 5 * time.Minute
	}

	dbType := viper.GetString("database.type")
	switch dbType {
	case "", "mysql", "postgres", "pgx":
	default:
		return nil, fmt.Errorf("invalid database.type: %q (expected mysql, postgres, pgx or empty for memory)", dbType)
	}
	if dbType != "" && viper.GetString("database.dsn") == "" {
		return nil, fmt.Errorf("database.dsn is required when database.type is %q", dbType)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("server.host"),
			Port: viper.GetInt("server.port"),
		},
		Admin: AdminConfig{
			Secret:     adminSecret,
			SecretHash: adminSecretHash,
		},
		Session: SessionConfig{
			TTL:        sessionTTL,
			CookieName: viper.GetString("session.cookie_name"),
			Secure:     viper.GetBool("session.secure"),
			SameSite:   sameSite,
			Backend:    sessionBackend,
		},
		Contact: ContactConfig{
			DefaultSubject:  viper.GetString("contact.default_subject"),
			MaxMessageBytes: maxMessageBytes,
		},
		Notify: NotifyConfig{
			Host:     viper.GetString("notify.host"),
			Port:     viper.GetInt("notify.port"),
			Username: viper.GetString("notify.username"),
			Password: viper.GetString("notify.password"),
			From:     viper.GetString("notify.from"),
			To:       viper.GetString("notify.to"),
			Timeout:  notifyTimeout,
		},
		CORS: CORSConfig{
			AllowedOrigins: corsOrigins,
		},
		Log: LogConfig{
			Level:       viper.GetString("log.level"),
			Development: viper.GetBool("log.development"),
			File:        viper.GetString("log.file"),
		},
		Database: DatabaseConfig{
			Type:            dbType,
			DSN:             viper.GetString("database.dsn"),
			MaxOpenConns:    viper.GetInt("database.max_open_conns"),
			MaxIdleConns:    viper.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
	}

	return cfg, nil
}

// parseList 将逗号分隔的字符串解析为字符串切片
func parseList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// loadEnvFile 尝试加载 .env 文件
//
// 加载顺序：
//   1. 当前目录的 .env
//   2. 父目录的 .env（用于从子目录运行的情况）
//
// 环境变量不会被覆盖（已存在的环境变量优先级更高）。
func loadEnvFile() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}

	parentEnv := filepath.Join("..", ".env")
	if _, err := os.Stat(parentEnv); err == nil {
		_ = godotenv.Load(parentEnv)
	}
}
