package mq

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// KafkaJob 表示一条需要发送的 Kafka 消息
type KafkaJob struct {
	Topic     string
	Key       []byte
	Partition int32 // kafka.PartitionAny 表示交给 broker 选择
	Value     []byte
	Headers   map[string]string
}

// KafkaSendResult 表示每条消息的发送结果
type KafkaSendResult struct {
	Job *KafkaJob
	Err error
}

var errDeliveryClosed = errors.New("delivery channel closed unexpectedly")

// Producer confluent 生产者中发送所需的最小子集
type Producer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
}

// buildMessage 把 KafkaJob 转成 kafka.Message，header 按 key 排序保证输出稳定
func buildMessage(job *KafkaJob) *kafka.Message {
	topic := job.Topic
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: job.Partition,
		},
		Key:   job.Key,
		Value: job.Value,
	}
	if len(job.Headers) > 0 {
		keys := sortedKeys(job.Headers)
		msg.Headers = make([]kafka.Header, 0, len(keys))
		for _, k := range keys {
			msg.Headers = append(msg.Headers, kafka.Header{Key: k, Value: []byte(job.Headers[k])})
		}
	}
	return msg
}

// deliveryResult 解析投递回执
func deliveryResult(e kafka.Event, ok bool) error {
	if !ok {
		return errDeliveryClosed
	}
	msg, isMsg := e.(*kafka.Message)
	if !isMsg {
		return fmt.Errorf("invalid message type: %T", e)
	}
	return msg.TopicPartition.Error
}

// SendKafkaJobs 并发发送多条 Kafka 消息，支持外部 context 控制超时/取消
func SendKafkaJobs(
	ctx context.Context,
	producer Producer,
	jobs []*KafkaJob,
	perMessageTimeout time.Duration,
) (ok []*KafkaJob, failed []KafkaSendResult) {
	var wg sync.WaitGroup
	resultCh := make(chan KafkaSendResult, len(jobs)) // 缓冲避免阻塞

	for _, job := range jobs {
		wg.Add(1)
		go func(job *KafkaJob) {
			defer wg.Done()

			deliveryChan := make(chan kafka.Event, 1)
			if err := producer.Produce(buildMessage(job), deliveryChan); err != nil {
				resultCh <- KafkaSendResult{Job: job, Err: fmt.Errorf("produce error: %w", err)}
				return
			}

			timer := time.NewTimer(perMessageTimeout)
			defer timer.Stop()

			select {
			case e, open := <-deliveryChan:
				resultCh <- KafkaSendResult{Job: job, Err: deliveryResult(e, open)}
			case <-timer.C:
				go safeDrain(deliveryChan)
				resultCh <- KafkaSendResult{Job: job, Err: fmt.Errorf("delivery timeout (>%v)", perMessageTimeout)}
			case <-ctx.Done():
				go safeDrain(deliveryChan)
				resultCh <- KafkaSendResult{Job: job, Err: fmt.Errorf("ctx cancelled: %w", ctx.Err())}
			}
		}(job)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	for res := range resultCh {
		if res.Err != nil {
			failed = append(failed, res)
		} else {
			ok = append(ok, res.Job)
		}
	}
	return ok, failed
}

// safeDrain 确保 deliveryChan 被 drain，避免 Kafka 回调阻塞
func safeDrain(ch <-chan kafka.Event) {
	defer func() {
		_ = recover()
	}()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
