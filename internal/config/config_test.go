package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYaml = `
logger:
  format: json
  level: debug
kafka_producer:
  brokers: 127.0.0.1:9092
  topic_prefix: sol.decoded.
  partitions: 12
time_conf:
  event_send_timeout_ms: 800
redis_addr: 127.0.0.1:6379
postgres_dsn: ${TEST_PG_DSN}
progress:
  recent_threshold_sec: 30
grpc:
  endpoint: grpc.example:443
  x_token: abc
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "grpc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_PG_DSN", "postgres://u:p@localhost/db?sslmode=disable")

	var c GrpcConfig
	require.NoError(t, Load(writeConfig(t, sampleYaml), &c))

	assert.Equal(t, "json", c.LogConf.Format)
	assert.Equal(t, "debug", c.LogConf.ToLogOption().Level)
	assert.Equal(t, "postgres://u:p@localhost/db?sslmode=disable", c.PostgresDSN, "环境变量展开")
	assert.Equal(t, "grpc.example:443", c.Grpc.Endpoint)
	assert.Equal(t, 12, c.KafkaProducerConf.Partitions)

	assert.Equal(t, 800*time.Millisecond, c.TimeConf.EventSendTimeout())
	assert.Equal(t, 5*time.Second, c.TimeConf.SlotDispatchTimeout(), "未配置取默认值")
	assert.Equal(t, 30*time.Second, c.ProgressConf.RecentThreshold())
	assert.Equal(t, 2*time.Second, c.ProgressConf.FlushInterval())
}

func TestLoadErrors(t *testing.T) {
	var c GrpcConfig
	assert.Error(t, Load(filepath.Join(t.TempDir(), "missing.yaml"), &c))

	c = GrpcConfig{}
	assert.Error(t, Load(writeConfig(t, "logger: [unclosed"), &c))

	c = GrpcConfig{}
	err := Load(writeConfig(t, "grpc:\n  endpoint: x\n"), &c)
	assert.ErrorContains(t, err, "kafka_producer.brokers")
}

func TestToKafkaOption(t *testing.T) {
	kc := KafkaProducerConfig{Brokers: "b", TopicPrefix: "sol.", Partitions: 3}
	opt := kc.ToKafkaOption()
	assert.Equal(t, "b", opt.Brokers)
	for _, topic := range opt.Topics {
		assert.Equal(t, 3, topic.Partitions)
		assert.Contains(t, topic.Topic, "sol.")
	}
}
