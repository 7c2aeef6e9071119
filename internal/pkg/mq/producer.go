package mq

import (
	"context"
	"fmt"
	"time"

	"ix-decoder-sol/internal/consts"
	"ix-decoder-sol/internal/pkg/logger"
	"ix-decoder-sol/internal/pkg/utils"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

const (
	defaultBatchSize = 32 * 1024
	defaultLingerMs  = 5
)

// TopicSpec 需要预先创建的 topic
type TopicSpec struct {
	Topic      string
	Partitions int
}

type KafkaProducerOption struct {
	Brokers   string // Kafka broker 地址，多个用英文逗号分隔（如 "localhost:9092,localhost:9093"）
	BatchSize int    // 批处理大小（单位字节），如 32768 = 32KB
	LingerMs  int    // 批处理最大延迟（毫秒），建议 5~20ms 之间
	ClientID  string // 为空时使用 ix-decoder-sol-<本机IP>

	Topics []TopicSpec
}

// TableTopics 每张输出表对应一个 topic：prefix + 表名
func TableTopics(prefix string, tables []string, partitions int) []TopicSpec {
	if partitions <= 0 {
		partitions = consts.DefaultKafkaPartitions
	}
	specs := make([]TopicSpec, 0, len(tables))
	for _, table := range tables {
		specs = append(specs, TopicSpec{Topic: prefix + table, Partitions: partitions})
	}
	return specs
}

// missingTopics 过滤出 broker 上尚不存在的 topic
func missingTopics(existing map[string]kafka.TopicMetadata, wanted []TopicSpec, replicationFactor int) []kafka.TopicSpecification {
	var out []kafka.TopicSpecification
	for _, topic := range wanted {
		if _, ok := existing[topic.Topic]; ok {
			continue
		}
		partitions := topic.Partitions
		if partitions <= 0 {
			partitions = consts.DefaultKafkaPartitions
		}
		out = append(out, kafka.TopicSpecification{
			Topic:             topic.Topic,
			NumPartitions:     partitions,
			ReplicationFactor: replicationFactor,
		})
	}
	return out
}

// producerConfig 生成生产者配置，未设置的批处理参数取默认值
func producerConfig(cfg KafkaProducerOption) *kafka.ConfigMap {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	lingerMs := cfg.LingerMs
	if lingerMs < 0 {
		lingerMs = defaultLingerMs
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("ix-decoder-sol-%s", utils.GetLocalIP())
	}

	return &kafka.ConfigMap{
		// 基础连接
		"bootstrap.servers": cfg.Brokers,
		"client.id":         clientID,

		// 生产环境建议 SASL_SSL
		//"security.protocol":  "SASL_SSL",
		//"sasl.mechanisms":    "SCRAM-SHA-256",
		//"sasl.username":      "user",
		//"sasl.password":      "password",

		// 可靠性保障
		"acks":                                  "all", // 必须
		"enable.idempotence":                    true,  // 幂等开启
		"max.in.flight.requests.per.connection": 5,     // 幂等场景下最大值为 5

		// 超时与重试
		"delivery.timeout.ms": 30000,
		"request.timeout.ms":  30000,
		"retries":             5,
		"retry.backoff.ms":    100,

		// avro 行体积小，批量压缩收益明显
		"batch.size":       batchSize,
		"linger.ms":        lingerMs,
		"compression.type": "lz4",

		"message.max.bytes": 2 * 1024 * 1024, // 2MB
	}
}

// NewKafkaProducer 确保输出 topic 存在后创建 Kafka 生产者
func NewKafkaProducer(cfg KafkaProducerOption) (*kafka.Producer, error) {
	adminClient, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": cfg.Brokers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	meta, err := adminClient.GetMetadata(nil, true, 10000)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	brokerCount := len(meta.Brokers)

	// 每个分区的副本数
	replicationFactor := 1
	if brokerCount > 1 {
		replicationFactor = 2
	}
	logger.Infof("[mq] Kafka broker count = %d, using replication factor = %d", brokerCount, replicationFactor)

	if topicsToCreate := missingTopics(meta.Topics, cfg.Topics, replicationFactor); len(topicsToCreate) > 0 {
		results, err := adminClient.CreateTopics(ctx, topicsToCreate)
		if err != nil {
			return nil, fmt.Errorf("failed to create topics: %w", err)
		}
		for _, result := range results {
			if result.Error.Code() != kafka.ErrNoError && result.Error.Code() != kafka.ErrTopicAlreadyExists {
				return nil, fmt.Errorf("failed to create topic %s: %w", result.Topic, result.Error)
			}
		}
		logger.Infof("[mq] created %d topics", len(topicsToCreate))
	}

	producer, err := kafka.NewProducer(producerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}
	return producer, nil
}
