package publishers

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// PropertyMessage es el mensaje que se publica cuando cambia una propiedad
// Lo consume el indexador de búsqueda del resto de la plataforma
type PropertyMessage struct {
	Action     string `json:"action"` // "create", "update", "delete"
	PropertyID string `json:"property_id"`
}

// EventPublisher define la interfaz del publicador de eventos
// La publicación nunca hace fallar el request: los errores solo se loguean
type EventPublisher interface {
	PublishPropertyEvent(action, propertyID string)
	Close() error
}

// RabbitMQPublisher publica mensajes en la queue "properties_queue"
type RabbitMQPublisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
}

// NewRabbitMQPublisher crea una nueva instancia de RabbitMQPublisher
func NewRabbitMQPublisher(rabbitURL, queueName string) (*RabbitMQPublisher, error) {
	log.Printf("Connecting to RabbitMQ at %s", rabbitURL)

	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if queueName == "" {
		queueName = "properties_queue"
	}

	// La queue se declara durable, igual que del lado del consumidor
	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	log.Printf("Queue '%s' declared successfully", queueName)

	return &RabbitMQPublisher{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
	}, nil
}

// PublishPropertyEvent publica un evento de cambio de propiedad
func (p *RabbitMQPublisher) PublishPropertyEvent(action, propertyID string) {
	msg := PropertyMessage{Action: action, PropertyID: propertyID}

	body, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling property event: %v", err)
		return
	}

	err = p.channel.Publish(
		"",          // exchange (default)
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		log.Printf("Error publishing property event (Action=%s, PropertyID=%s): %v", action, propertyID, err)
		return
	}

	log.Printf("Published property event: Action=%s, PropertyID=%s", action, propertyID)
}

// Close cierra el channel y la conexión
func (p *RabbitMQPublisher) Close() error {
	var errs []error

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing channel: %w", err))
		}
	}
	if p.connection != nil {
		if err := p.connection.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing connection: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ publisher: %v", errs)
	}
	return nil
}

// NoopPublisher descarta los eventos
// Se usa cuando RabbitMQ no está disponible al arrancar
type NoopPublisher struct{}

// PublishPropertyEvent no hace nada
func (NoopPublisher) PublishPropertyEvent(action, propertyID string) {}

// Close no hace nada
func (NoopPublisher) Close() error { return nil }
