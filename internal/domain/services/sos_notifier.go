package services

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
)

// SOSEventType is the transition an SOSEvent reports.
type SOSEventType string

const (
	SOSEventActivated SOSEventType = "activated"
	SOSEventUpdated   SOSEventType = "updated"
	SOSEventCancelled SOSEventType = "cancelled"
)

// SOSEvent is published after every committed SOS transition.
type SOSEvent struct {
	Type      SOSEventType     `json:"type"`
	UserID    string           `json:"userId"`
	SessionID string           `json:"sessionId"`
	Message   *string          `json:"message,omitempty"`
	Location  *models.Location `json:"location,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// InterfaceSOSNotifier fans SOS transitions out to subscribers.
type InterfaceSOSNotifier interface {
	PublishSOSEvent(event SOSEvent) error
	Close()
}

// NoopSOSNotifier drops every event.
type NoopSOSNotifier struct{}

func (NoopSOSNotifier) PublishSOSEvent(SOSEvent) error { return nil }
func (NoopSOSNotifier) Close()                         {}

// NewSOSNotifier returns an MQTT notifier when enabled, otherwise a no-op.
func NewSOSNotifier(cfg *config.Config) InterfaceSOSNotifier {
	if !cfg.MQTTEnabled {
		return NoopSOSNotifier{}
	}
	notifier := NewMQTTSOSNotifier(cfg)
	if err := notifier.Connect(); err != nil {
		logger.Error("[MQTT] %v; SOS events will be dropped until the broker is reachable", err)
	}
	return notifier
}

// MQTTSOSNotifier publishes SOS events to {prefix}/users/{userId}/sos.
type MQTTSOSNotifier struct {
	Config         *config.Config
	Client         mqtt.Client
	MaxRetries     int
	isConnected    bool
	connectedMutex sync.RWMutex
	connectMutex   sync.Mutex
}

// NewMQTTSOSNotifier prepares the client without connecting.
func NewMQTTSOSNotifier(cfg *config.Config) *MQTTSOSNotifier {
	n := &MQTTSOSNotifier{Config: cfg, MaxRetries: 5}
	n.setupMQTTClient()
	return n
}

// Topic is where events for userID are published.
func (n *MQTTSOSNotifier) Topic(userID string) string {
	return SOSTopic(n.Config.MQTTTopicPrefix, userID)
}

// SOSTopic builds the per-user SOS topic.
func SOSTopic(prefix, userID string) string {
	return fmt.Sprintf("%s/users/%s/sos", strings.TrimSuffix(prefix, "/"), userID)
}

func (n *MQTTSOSNotifier) setupMQTTClient() {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(n.Config.MQTTBrokerURL)
	// unique per instance so replicas do not kick each other off the broker
	opts.SetClientID(fmt.Sprintf("%s-%s-%d", n.Config.MQTTClientID, uuid.New().String()[:8], time.Now().UnixNano()))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Second * 30)
	opts.SetKeepAlive(time.Second * 60)
	opts.SetPingTimeout(time.Second * 10)
	opts.SetCleanSession(true)
	opts.SetOrderMatters(true)

	if n.Config.MQTTUsername != "" {
		opts.SetUsername(n.Config.MQTTUsername)
		opts.SetPassword(n.Config.MQTTPassword)
	}

	if strings.HasPrefix(n.Config.MQTTBrokerURL, "ssl://") || strings.HasPrefix(n.Config.MQTTBrokerURL, "tls://") {
		logger.Info("[MQTT] using TLS")
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		logger.Warning("[MQTT] connection lost: %v", err)
		n.setConnected(false)
	})

	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Info("[MQTT] connected to %s", n.Config.MQTTBrokerURL)
		n.setConnected(true)
	})

	opts.SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
		logger.Info("[MQTT] reconnecting...")
	})

	n.Client = mqtt.NewClient(opts)
}

func (n *MQTTSOSNotifier) setConnected(v bool) {
	n.connectedMutex.Lock()
	n.isConnected = v
	n.connectedMutex.Unlock()
}

// IsConnected reports the last known link state.
func (n *MQTTSOSNotifier) IsConnected() bool {
	n.connectedMutex.RLock()
	defer n.connectedMutex.RUnlock()
	return n.isConnected && n.Client.IsConnected()
}

// Connect dials the broker with exponential backoff: 1s, 2s, 4s, ...
func (n *MQTTSOSNotifier) Connect() error {
	n.connectMutex.Lock()
	defer n.connectMutex.Unlock()

	if n.IsConnected() {
		return nil
	}

	logger.Info("[MQTT] connecting to %s...", n.Config.MQTTBrokerURL)
	var err error
	for i := 0; i < n.MaxRetries; i++ {
		token := n.Client.Connect()
		if token.WaitTimeout(5*time.Second) && token.Error() == nil {
			n.setConnected(true)
			return nil
		}

		err = token.Error()
		if i == n.MaxRetries-1 {
			break
		}
		backoff := time.Duration(1<<uint(i)) * time.Second
		logger.Warning("[MQTT] connect attempt %d/%d failed: %v, retrying in %v", i+1, n.MaxRetries, err, backoff)
		time.Sleep(backoff)
	}

	return fmt.Errorf("connect to %s failed after %d attempts: %v", n.Config.MQTTBrokerURL, n.MaxRetries, err)
}

// PublishSOSEvent sends event with the configured QoS. It does not wait for
// a reconnect; paho's auto reconnect restores the link in the background.
func (n *MQTTSOSNotifier) PublishSOSEvent(event SOSEvent) error {
	if !n.IsConnected() {
		return fmt.Errorf("mqtt client not connected")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode sos event: %w", err)
	}

	topic := n.Topic(event.UserID)
	token := n.Client.Publish(topic, byte(n.Config.MQTTQoS), false, payload)
	if !token.WaitTimeout(3 * time.Second) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("publish to %s: %w", topic, token.Error())
	}

	logger.Info("[MQTT] published sos %s for user %s to %s", event.Type, event.UserID, topic)
	return nil
}

// Close disconnects, letting in-flight publishes drain for 250ms.
func (n *MQTTSOSNotifier) Close() {
	if n.Client != nil && n.Client.IsConnected() {
		n.Client.Disconnect(250)
	}
	n.setConnected(false)
}
