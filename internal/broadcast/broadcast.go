// Package broadcast pushes campaign events to display surfaces over MQTT:
// a change event after every successful curation replace, and a 1 Hz
// countdown feed while the pre-Ramadan window is open.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/amanah-digital/ramadan30/internal/falak"
	"github.com/amanah-digital/ramadan30/internal/schedule"
)

const (
	topicCampaignChanged = "campaign/changed"
	topicCountdown       = "campaign/countdown"
)

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// Publisher owns the MQTT client and, while running, the countdown ticker.
type Publisher struct {
	client    mqtt.Client
	countdown *schedule.Countdown
}

func NewPublisher(brokerURL, clientID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &Publisher{client: client}, nil
}

type changedEvent struct {
	Year      int    `json:"year"`
	Persisted int    `json:"persisted"`
	ChangedAt string `json:"changed_at"`
}

// CampaignChanged tells every display surface that a year's schedule was
// replaced and their cached copy is stale.
func (p *Publisher) CampaignChanged(year, persisted int) {
	p.publish(topicCampaignChanged, changedEvent{
		Year:      year,
		Persisted: persisted,
		ChangedAt: time.Now().Format(time.RFC3339),
	})
}

type countdownTick struct {
	Applicable bool `json:"applicable"`
	Days       int  `json:"days"`
	Hours      int  `json:"hours"`
	Minutes    int  `json:"minutes"`
}

// StartCountdownFeed publishes the countdown state once per second until
// ctx is cancelled or Close is called. The Ramadan start is re-resolved
// on each tick so the feed rolls over lunar years on its own.
func (p *Publisher) StartCountdownFeed(ctx context.Context, resolver *falak.StartResolver, loc falak.Location) {
	p.countdown = schedule.StartCountdown(ctx, time.Second, func(now time.Time) {
		start, err := resolver.NextStart(loc)
		if err != nil {
			log.Error().Err(err).Msg("countdown feed: could not resolve ramadan start")
			return
		}
		status, ok := falak.EvaluateCountdown(now, start, loc)
		p.publish(topicCountdown, countdownTick{
			Applicable: ok,
			Days:       status.Days,
			Hours:      status.Hours,
			Minutes:    status.Minutes,
		})
	})
}

func (p *Publisher) publish(topic string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to marshal MQTT payload")
		return
	}
	token := p.client.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Str("topic", topic).Msg("failed to publish MQTT message")
	}
}

// Close stops the countdown ticker and disconnects from the broker.
func (p *Publisher) Close() {
	if p.countdown != nil {
		p.countdown.Stop()
	}
	p.client.Disconnect(250)
}
