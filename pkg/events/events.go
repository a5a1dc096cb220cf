// Package events publishes dashboard-initiated moderation actions over MQTT
// so the bot runtime can react without polling the store.
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// ModerationEvent announces one dashboard-initiated moderation action
type ModerationEvent struct {
	GuildID     string         `json:"guildId"`
	Action      string         `json:"action"`
	UserID      string         `json:"userId"`
	ModeratorID string         `json:"moderatorId"`
	Reason      string         `json:"reason,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Publisher sends dashboard events to the MQTT broker. A nil or disabled
// Publisher swallows every publish, so callers never need to branch on
// whether MQTT is configured.
type Publisher struct {
	client  mqtt.Client
	enabled bool
}

var (
	publisher *Publisher
	once      sync.Once
)

// Init initializes the global event publisher. An empty host disables
// publishing entirely.
func Init(host, port, username, password string) *Publisher {
	once.Do(func() {
		publisher = NewPublisher(host, port, username, password)
	})
	return publisher
}

// Get returns the global event publisher
func Get() *Publisher {
	return publisher
}

// NewPublisher creates a Publisher connected to the broker, or a disabled
// one when host is empty
func NewPublisher(host, port, username, password string) *Publisher {
	if host == "" {
		logger.Warn("MQTT host not configured, event publishing disabled.", "Events")
		return &Publisher{}
	}

	clientID := fmt.Sprintf("sharddash_%s", uuid.New().String())

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%s", host, port)).
		SetClientID(clientID).
		SetUsername(username).
		SetPassword(password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c mqtt.Client) {
			logger.Success("Connected to the MQTT broker.", "Events")
		}).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			logger.Error(fmt.Sprintf("MQTT connection lost: %v", err), "Events")
		})

	p := &Publisher{client: mqtt.NewClient(opts), enabled: true}

	token := p.client.Connect()
	if token.Wait() && token.Error() != nil {
		logger.Error(fmt.Sprintf("MQTT connection error: %v", token.Error()), "Events")
	}
	return p
}

// Destroy closes the broker connection
func (p *Publisher) Destroy() {
	if p == nil || p.client == nil || !p.client.IsConnected() {
		return
	}
	p.client.Disconnect(250)
	logger.System("MQTT connection closed.", "Events")
}

// Enabled reports whether publishing is configured and connected
func (p *Publisher) Enabled() bool {
	return p != nil && p.enabled && p.client != nil && p.client.IsConnected()
}

// Publish sends a JSON payload to a topic. Disabled publishers drop the
// message silently.
func (p *Publisher) Publish(topic string, payload any) error {
	if !p.Enabled() {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	token := p.client.Publish(topic, 0, false, data)
	token.Wait()
	return token.Error()
}

// PublishModeration announces a moderation action on the guild's event topic
func (p *Publisher) PublishModeration(event ModerationEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	topic := fmt.Sprintf("shard/events/%s/moderation", event.GuildID)
	if err := p.Publish(topic, event); err != nil {
		logger.Error(fmt.Sprintf("Failed to publish moderation event: %v", err), "Events")
	}
}

// Subscribe registers a handler for an inbound topic (bot status updates)
func (p *Publisher) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	if !p.Enabled() {
		return nil
	}

	token := p.client.Subscribe(topic, 0, func(c mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	token.Wait()
	return token.Error()
}
