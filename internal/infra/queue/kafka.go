package queue

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/jobs"

	"github.com/segmentio/kafka-go"
)

// Kafkaに低在庫アラートを流すキュー。
// キーはproduct_idにして同一商品のアラートを同じパーティションへ寄せる。
type KafkaQueue struct {
	writer *kafka.Writer
}

func NewKafkaQueue(brokers []string, topic string) *KafkaQueue {
	return &KafkaQueue{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (q *KafkaQueue) Enqueue(ctx context.Context, alert jobs.LowStockAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}

	return q.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(alert.ProductID, 10)),
		Value: payload,
	})
}

func (q *KafkaQueue) Close() error {
	return q.writer.Close()
}

// ワーカー側のコンシューマ
type KafkaConsumer struct {
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, topic string, groupID string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
	}
}

func (c *KafkaConsumer) Next(ctx context.Context) (jobs.LowStockAlert, error) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return jobs.LowStockAlert{}, err
	}

	var alert jobs.LowStockAlert
	if err := json.Unmarshal(msg.Value, &alert); err != nil {
		return jobs.LowStockAlert{}, err
	}
	return alert, nil
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
