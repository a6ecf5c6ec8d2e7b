package services

import (
	"encoding/json"
	"log"

	"health_record_ms/config"
	"health_record_ms/dtos/request"

	"github.com/IBM/sarama"
)

type IEventPublisher interface {
	PublishReminderDue(event *request.ReminderDueEvent) error
}

type KafkaPublisher struct{}

func NewKafkaPublisher() IEventPublisher {
	return &KafkaPublisher{}
}

func (p *KafkaPublisher) PublishReminderDue(event *request.ReminderDueEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	producer, err := sarama.NewSyncProducer(config.Conf.Application.Kafka.Brokers, nil)
	if err != nil {
		log.Println("Failed to create sync producer:", err)
		return err
	}
	defer producer.Close()
	msg := &sarama.ProducerMessage{
		Topic: config.Conf.Application.Kafka.ReminderTopic,
		Value: sarama.StringEncoder(data),
	}
	partition, offset, err := producer.SendMessage(msg)
	if err != nil {
		log.Println("Failed to send reminder event:", err)
		return err
	}
	log.Printf("Sent reminder event to partition %d at offset %d\n", partition, offset)
	return nil
}
