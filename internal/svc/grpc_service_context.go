package svc

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ix-decoder-sol/internal/config"
	"ix-decoder-sol/internal/logic/progress"
	"ix-decoder-sol/internal/pkg/logger"
	"ix-decoder-sol/internal/pkg/mq"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/redis/go-redis/v9"
)

// GrpcServiceContext 包含 gRPC 解码服务的共享资源
type GrpcServiceContext struct {
	Config          config.GrpcConfig
	Producer        *kafka.Producer
	Redis           *redis.Client
	DB              *sql.DB
	ProgressManager *progress.ProgressManager
}

// NewGrpcServiceContext 依次初始化 Kafka、Redis、PostgreSQL 与进度管理器，任一失败则释放已创建的资源
func NewGrpcServiceContext(c config.GrpcConfig) (_ *GrpcServiceContext, err error) {
	sc := &GrpcServiceContext{Config: c}
	defer func() {
		if err != nil {
			sc.Close()
		}
	}()

	// 1. Kafka 生产者（会预先创建每张输出表的 topic）
	sc.Producer, err = mq.NewKafkaProducer(c.KafkaProducerConf.ToKafkaOption())
	if err != nil {
		return nil, fmt.Errorf("kafka producer 初始化失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 2. Redis（slot 状态判重）
	sc.Redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
	if err = sc.Redis.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	// 3. PostgreSQL（slot 记录与失败指令归档）
	sc.DB, err = progress.OpenPostgres(ctx, c.PostgresDSN)
	if err != nil {
		return nil, err
	}
	dbStore := progress.NewDBProgressStore(sc.DB)
	if err = dbStore.EnsureTables(ctx); err != nil {
		return nil, err
	}

	// 4. 进度管理器
	sc.ProgressManager = progress.NewProgressManager(
		progress.NewRedisProgressStore(sc.Redis, c.ProgressConf.RedisTTL()),
		dbStore,
		c.ProgressConf.RecentThreshold(),
	)

	logger.Infof("[svc] gRPC 服务上下文初始化完成")
	return sc, nil
}

// Close 关闭服务上下文中的资源，Kafka 先 flush 未发送的消息
func (sc *GrpcServiceContext) Close() {
	if sc.Producer != nil {
		if remain := sc.Producer.Flush(5000); remain > 0 {
			logger.Warnf("[svc] kafka producer closed with %d unsent messages", remain)
		}
		sc.Producer.Close()
	}
	if sc.Redis != nil {
		_ = sc.Redis.Close()
	}
	if sc.DB != nil {
		_ = sc.DB.Close()
	}
}
