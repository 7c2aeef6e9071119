package config

import (
	"fmt"
	"os"
	"time"

	"ix-decoder-sol/internal/pkg/logger"
	"ix-decoder-sol/internal/pkg/mq"
	"ix-decoder-sol/internal/schema"

	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Format   string `yaml:"format"`   // 日志格式，支持 "console" 或 "json"
	LogDir   string `yaml:"log_dir"`  // 日志目录（可为相对路径或绝对路径）
	Level    string `yaml:"level"`    // 日志级别：debug / info / warn / error
	Compress bool   `yaml:"compress"` // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// KafkaProducerConfig 表示 Kafka 生产者相关配置
type KafkaProducerConfig struct {
	Brokers     string `yaml:"brokers"`      // Kafka broker 地址，多个用英文逗号分隔
	BatchSize   int    `yaml:"batch_size"`   // 批处理大小（单位字节）
	LingerMs    int    `yaml:"linger_ms"`    // 批处理最大延迟（毫秒）
	TopicPrefix string `yaml:"topic_prefix"` // topic = topic_prefix + 表名
	Partitions  int    `yaml:"partitions"`   // 每个 topic 的分区数
}

// ToKafkaOption 每张已注册的输出表对应一个 topic
func (c *KafkaProducerConfig) ToKafkaOption() mq.KafkaProducerOption {
	return mq.KafkaProducerOption{
		Brokers:   c.Brokers,
		BatchSize: c.BatchSize,
		LingerMs:  c.LingerMs,
		Topics:    mq.TableTopics(c.TopicPrefix, schema.Tables(), c.Partitions),
	}
}

// TimeConfig 表示各种超时配置（单位：毫秒）
type TimeConfig struct {
	SlotDispatchTimeoutMs int `yaml:"slot_dispatch_timeout_ms"` // 每个 slot 的处理最大耗时（Kafka + Redis）
	EventSendTimeoutMs    int `yaml:"event_send_timeout_ms"`    // 单条消息发送到 Kafka 并等待 ack 的超时时间
}

func (c TimeConfig) SlotDispatchTimeout() time.Duration {
	return msOrDefault(c.SlotDispatchTimeoutMs, 5000)
}

func (c TimeConfig) EventSendTimeout() time.Duration {
	return msOrDefault(c.EventSendTimeoutMs, 3000)
}

// ProgressConfig 进度管理配置
type ProgressConfig struct {
	RecentThresholdSec int    `yaml:"recent_threshold_sec"` // 判定为“近期 block”的时间阈值（秒）
	FlushIntervalMs    int    `yaml:"flush_interval_ms"`    // 失败指令、slot 记录落库间隔（毫秒）
	RedisTTLHours      int    `yaml:"redis_ttl_hours"`      // Redis slot 状态保留时长（小时）
	GCIntervalMin      int    `yaml:"gc_interval_min"`      // 历史 slot 清理间隔（分钟），0 表示不清理
	KeepSlots          uint64 `yaml:"keep_slots"`           // 清理时保留的最近 slot 数
}

func (c ProgressConfig) RecentThreshold() time.Duration {
	if c.RecentThresholdSec <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.RecentThresholdSec) * time.Second
}

func (c ProgressConfig) FlushInterval() time.Duration {
	return msOrDefault(c.FlushIntervalMs, 2000)
}

func (c ProgressConfig) GCInterval() time.Duration {
	return time.Duration(c.GCIntervalMin) * time.Minute
}

func (c ProgressConfig) RedisTTL() time.Duration {
	return time.Duration(c.RedisTTLHours) * time.Hour
}

// GrpcConnConfig gRPC 客户端连接相关配置
type GrpcConnConfig struct {
	Endpoint string `yaml:"endpoint"` // gRPC 服务端地址
	XToken   string `yaml:"x_token"`  // x-token 认证

	// 应用级逻辑心跳（ping）配置
	StreamPingIntervalSec int `yaml:"stream_ping_interval_sec"` // 应用层 ping 心跳间隔（秒）

	// gRPC Keepalive 底层连接检测配置
	KeepalivePingIntervalSec int `yaml:"keepalive_ping_interval_sec"` // 底层 keepalive 间隔（秒）
	KeepalivePingTimeoutSec  int `yaml:"keepalive_ping_timeout_sec"`  // 底层 keepalive 超时（秒）

	// gRPC 窗口大小调优（用于大数据流推送）
	InitialWindowSize     int `yaml:"initial_window_size"`      // 单流窗口大小（字节）
	InitialConnWindowSize int `yaml:"initial_conn_window_size"` // 整体连接窗口大小（字节）

	// 消息体大小限制
	MaxCallSendMsgSize int `yaml:"max_call_send_msg_size"` // 单条消息最大发送字节数
	MaxCallRecvMsgSize int `yaml:"max_call_recv_msg_size"` // 单条消息最大接收字节数

	// 超时与重连策略
	ReconnectIntervalSec int `yaml:"reconnect_interval_sec"` // 重连最小间隔（秒）
	ConnectTimeoutSec    int `yaml:"connect_timeout_sec"`    // 连接建立超时（秒）
	SendTimeoutSec       int `yaml:"send_timeout_sec"`       // 发送超时（秒）
	BlockRecvTimeoutSec  int `yaml:"block_recv_timeout_sec"` // 超过该时长未收到 block 则重连（秒）
	MaxLatencyWarnMs     int `yaml:"max_latency_warn_ms"`    // 延迟告警阈值（毫秒）
}

// GrpcConfig 是主配置结构体，用于驱动解码服务
type GrpcConfig struct {
	LogConf           LogConfig           `yaml:"logger"`         // 日志配置
	KafkaProducerConf KafkaProducerConfig `yaml:"kafka_producer"` // Kafka 生产者配置
	TimeConf          TimeConfig          `yaml:"time_conf"`      // 时间相关配置

	RedisAddr    string         `yaml:"redis_addr"`   // Redis 地址
	PostgresDSN  string         `yaml:"postgres_dsn"` // PostgreSQL 数据源
	ProgressConf ProgressConfig `yaml:"progress"`     // 进度管理配置
	RpcEndpoint  string         `yaml:"rpc_endpoint"` // Solana RPC，用于漏块检测，为空时不启用
	Workers      int            `yaml:"workers"`      // 解码并发数，<=0 时按 CPU 数

	Grpc GrpcConnConfig `yaml:"grpc"`
}

// Validate 检查启动必需的配置项
func (c *GrpcConfig) Validate() error {
	switch {
	case c.Grpc.Endpoint == "":
		return fmt.Errorf("grpc.endpoint is required")
	case c.KafkaProducerConf.Brokers == "":
		return fmt.Errorf("kafka_producer.brokers is required")
	case c.RedisAddr == "":
		return fmt.Errorf("redis_addr is required")
	case c.PostgresDSN == "":
		return fmt.Errorf("postgres_dsn is required")
	}
	return nil
}

// Load 读取 yaml 配置文件，字符串中的 ${VAR} 按环境变量展开
func Load(path string, c *GrpcConfig) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(content))), c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return c.Validate()
}

// MustLoad 加载失败直接退出
func MustLoad(path string, c *GrpcConfig) {
	if err := Load(path, c); err != nil {
		logger.Errorf("[config] %v", err)
		logger.Sync()
		os.Exit(1)
	}
}

func msOrDefault(ms, def int) time.Duration {
	if ms <= 0 {
		ms = def
	}
	return time.Duration(ms) * time.Millisecond
}
