package clientmqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"artnetnode/internal/artnet"
	"artnetnode/internal/logger"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// ClientMQTT publishes accepted DMX frames to an MQTT broker. It is the
// output sink for the Art-Net receiver.
type ClientMQTT struct {
	ctx       context.Context
	log       logger.Logger
	cfgClient MQTTConf
	client    mqtt.Client
	opts      *mqtt.ClientOptions
}

// Publisher is a convenience interface to use within this application.
type Publisher interface {
	Start(ctx context.Context) error
	Stop() error
	WriteFrame(frame artnet.Frame) error
}

// NewClient builds an unconnected publisher.
func NewClient(log logger.Logger, cfgClient MQTTConf) *ClientMQTT {
	return &ClientMQTT{
		log:       log,
		cfgClient: cfgClient,
	}
}

// Start connects to the broker, retrying until the context is canceled.
func (c *ClientMQTT) Start(ctx context.Context) error {
	if c.log.GetLevel() == "debug" {
		mqtt.ERROR = log.New(os.Stdout, "[ERROR] ", 0)
		mqtt.CRITICAL = log.New(os.Stdout, "[CRIT] ", 0)
		mqtt.WARN = log.New(os.Stdout, "[WARN]  ", 0)
	}

	c.ctx = ctx

	c.opts = mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("%s://%s:%s", c.cfgClient.Schema, c.cfgClient.Host, c.cfgClient.Port)).
		SetUsername(c.cfgClient.User).
		SetPassword(c.cfgClient.Password).
		SetOnConnectHandler(c.connectHandler).
		SetConnectionLostHandler(c.connectLostHandler).
		SetClientID(c.cfgClient.ClientID).
		SetOrderMatters(false).
		SetCleanSession(false).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetMaxReconnectInterval(5 * time.Second).
		SetKeepAlive(30 * time.Second)

	c.client = mqtt.NewClient(c.opts)

	token := c.client.Connect()
	select {
	case <-token.Done():
		if token.Error() != nil {
			return token.Error()
		}
	case <-c.ctx.Done():
		return errors.New("context canceled")
	}

	c.log.With(logger.Fields{"module": "mqtt"}).Infof("Status: %v", c.client.IsConnected())
	return nil
}

// Stop disconnects from the broker.
func (c *ClientMQTT) Stop() error {
	if c.client != nil && c.client.IsConnected() {
		c.client.Disconnect(500)
	}
	return nil
}

func (c *ClientMQTT) connectHandler(_ mqtt.Client) {
	c.log.With(logger.Fields{"module": "mqtt"}).Info("client connected to server")
}

func (c *ClientMQTT) connectLostHandler(_ mqtt.Client, err error) {
	c.log.With(logger.Fields{"module": "mqtt"}).Errorf("server connect lost: %v\n", err)
}

// WriteFrame publishes one DMX frame as JSON under the configured topic
// prefix with the universe byte appended. Delivery is confirmed in the
// background so the receive loop never blocks on the broker.
func (c *ClientMQTT) WriteFrame(frame artnet.Frame) error {
	slots := make([]int, len(frame.Slots))
	for i, v := range frame.Slots {
		slots[i] = int(v)
	}

	msg, err := json.Marshal(FramePayload{Universe: frame.Universe, Slots: slots})
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}

	topic := fmt.Sprintf("%s/%d", c.cfgClient.Topic, frame.Universe)
	token := c.client.Publish(topic, c.cfgClient.Qos, false, msg)
	go func() {
		topic := topic
		token := token
		select {
		case <-c.ctx.Done():
			return
		case <-token.Done():
			if token.Error() != nil {
				c.log.With(logger.Fields{"module": "mqtt"}).Errorf("error publish topic %s. %v\n", topic, token.Error())
				return
			}
		}
		c.log.With(logger.Fields{"module": "mqtt"}).Debugf("frame published to %s\n", topic)
	}()
	return nil
}
