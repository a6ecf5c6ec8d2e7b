package services

import (
	"encoding/json"
	"log"

	"health_record_ms/config"
	"health_record_ms/dtos/request"

	"github.com/IBM/sarama"
	twilio "github.com/kevinburke/twilio-go"
)

// NotifierService consumes reminder events and delivers them as SMS.
type NotifierService struct {
	client *twilio.Client
}

func NewNotifierService() *NotifierService {
	cfg := config.Conf.Application.Twilio
	return &NotifierService{
		client: twilio.NewClient(cfg.AccountSid, cfg.AuthToken, nil),
	}
}

func (service *NotifierService) SendReminderSMS(event *request.ReminderDueEvent) error {
	_, err := service.client.Messages.SendMessage(
		config.Conf.Application.Twilio.From,
		event.Phone,
		event.Message,
		nil,
	)
	if err != nil {
		log.Println("Twilio error:", err)
		return err
	}
	return nil
}

func (service *NotifierService) ConsumeReminderEvents(stop <-chan struct{}) {
	consumer, err := sarama.NewConsumer(config.Conf.Application.Kafka.Brokers, nil)
	if err != nil {
		log.Fatal("Failed to start Kafka consumer:", err)
	}
	defer consumer.Close()

	partitionConsumer, err := consumer.ConsumePartition(config.Conf.Application.Kafka.ReminderTopic, 0, sarama.OffsetNewest)
	if err != nil {
		log.Fatal("Failed to consume partition:", err)
	}
	defer partitionConsumer.Close()

	for {
		select {
		case <-stop:
			return
		case msg, ok := <-partitionConsumer.Messages():
			if !ok {
				return
			}
			var event *request.ReminderDueEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Println("Invalid message:", err)
				continue
			}
			if err := service.SendReminderSMS(event); err != nil {
				log.Println(err)
				continue
			}
			log.Printf("Sent reminder SMS to %s", event.Phone)
		}
	}
}
