package events

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const topicPrefix = "vegukin"

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("[mqtt] connected to broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("[mqtt] connection lost")
}

// MQTTBridge republishes bus events to an MQTT broker so external athan
// display screens can follow location and prayer updates. It is an optional
// consumer: broker trouble is logged and never propagates into the core.
type MQTTBridge struct {
	client mqtt.Client
}

// NewMQTTBridge connects to the broker.
func NewMQTTBridge(brokerURL, clientID string) (*MQTTBridge, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", brokerURL, token.Error())
	}
	return &MQTTBridge{client: client}, nil
}

// Attach subscribes the bridge to both core events on the bus.
func (b *MQTTBridge) Attach(bus *Bus) {
	bus.Subscribe(LocationUpdated, func(payload any) {
		b.publish("location", payload)
	})
	bus.Subscribe(PrayerDataUpdated, func(payload any) {
		b.publish("prayer", payload)
	})
}

func (b *MQTTBridge) publish(topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("[mqtt] marshal failed")
		return
	}
	full := topicPrefix + "/" + topic
	token := b.client.Publish(full, 0, false, data)
	token.Wait()
	if token.Error() != nil {
		log.Warn().Err(token.Error()).Str("topic", full).Msg("[mqtt] publish failed")
		return
	}
	log.Debug().Str("topic", full).Msg("[mqtt] published")
}

// Close disconnects from the broker.
func (b *MQTTBridge) Close() {
	b.client.Disconnect(250)
	log.Info().Msg("[mqtt] disconnected")
}
