package config

import (
	"github.com/BurntSushi/toml"
)

// Config is the application configuration.
type Config struct {
	Logger LogConf  // Logger - logging configuration.
	Node   NodeConf // Node - Art-Net node configuration.
	MQTT   MQTTConf // MQTT - frame publisher configuration.
}

// LogConf configures the logger.
type LogConf struct {
	Level string `toml:"log-level"` // Level - logging level.
}

// NodeConf configures the Art-Net node and its UDP socket.
type NodeConf struct {
	Bind       string `toml:"bind"`        // Bind - listen address for the Art-Net socket.
	CIDR       string `toml:"cidr"`        // CIDR - network used to pick the node's own IP.
	Subnet     uint8  `toml:"subnet"`      // Subnet - Art-Net subnet 0-15 (high nibble).
	Universe   uint8  `toml:"universe"`    // Universe - Art-Net universe 0-15 (low nibble).
	Slots      int    `toml:"slots"`       // Slots - DMX slots to output, 1-512.
	ShortName  string `toml:"short-name"`  // ShortName - node name in poll replies, 17 chars max.
	LongName   string `toml:"long-name"`   // LongName - long node name, 63 chars max.
	Broadcast  bool   `toml:"broadcast"`   // Broadcast - broadcast poll replies instead of unicasting.
	SubnetMask string `toml:"subnet-mask"` // SubnetMask - mask used to compute the broadcast address.
}

// MQTTConf configures the optional MQTT frame publisher.
type MQTTConf struct {
	Enabled  bool   `toml:"enabled"`  // Enabled - publish accepted DMX frames to MQTT.
	ClientID string `toml:"clientID"` // ClientID - client name for the broker.
	Host     string `toml:"server"`   // Host - MQTT server address.
	Port     string `toml:"port"`     // Port - MQTT server port.
	User     string `toml:"user"`     // User - MQTT login.
	Password string `toml:"password"` // Password - MQTT password.
	Qos      byte   `toml:"qos"`      // Qos - quality of service.
	Topic    string `toml:"topic"`    // Topic - topic prefix for published frames.
}

// NewConfig loads the configuration file over the defaults.
func NewConfig(path string) (*Config, error) {
	// default values
	cfg := Config{
		Logger: LogConf{Level: "info"},
		Node: NodeConf{
			Bind:       "0.0.0.0",
			CIDR:       "192.168.6.0/24",
			Slots:      512,
			SubnetMask: "255.255.255.0",
		},
		MQTT: MQTTConf{Topic: "artnet/frames"},
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return &cfg, err
	}
	return &cfg, nil
}
