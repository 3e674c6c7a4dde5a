package clientmqtt

// MQTTConf configures the connection to the broker.
type MQTTConf struct {
	ClientID string // ClientID - unique client name for the broker.
	Schema   string // Schema - connection type.
	Host     string // Host - MQTT server address.
	Port     string // Port - MQTT server port.
	User     string // User - MQTT login.
	Password string // Password - MQTT password.
	Qos      byte   // Qos - quality of service for published frames.
	Topic    string // Topic - topic prefix, universe number is appended.
}

// FramePayload is the JSON body published for each accepted DMX frame.
type FramePayload struct {
	Universe uint8 `json:"universe"` // Universe - combined subnet/universe byte.
	Slots    []int `json:"slots"`    // Slots - level per slot, slot 1 first.
}
