package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"artnetnode/internal/artnet"
	"artnetnode/internal/clientmqtt"
	"artnetnode/internal/config"
	"artnetnode/internal/logger"
	"artnetnode/internal/transport"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "configs/conf.toml", "Path to configuration file")
}

func main() {
	flag.Parse()
	cfg, err := config.NewConfig(configFile)
	if err != nil {
		fmt.Printf("configuration file read error: %v", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Printf("failed to create a logger: %v", err)
		os.Exit(1)
	}

	log.With(logger.Fields{"module": "logger"}).Debug("newLogger created ok")

	node, err := buildNode(cfg.Node)
	if err != nil {
		log.With(logger.Fields{"module": "art-net"}).Errorf("error while creating the art-net node. %v", err)
		os.Exit(1)
	}
	log.With(logger.Fields{"module": "art-net"}).Infof("node universe 0x%02x, %d slots", node.Universe(), node.DMX().SlotCount())

	udp, err := transport.Listen(cfg.Node.Bind, artnet.Port)
	if err != nil {
		log.With(logger.Fields{"module": "art-net"}).Errorf("failed to open the art-net socket. %v", err)
		os.Exit(1)
	}
	log.With(logger.Fields{"module": "art-net"}).Infof("listening on %s", udp.LocalAddr())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	var sink artnet.FrameSink
	var client *clientmqtt.ClientMQTT
	if cfg.MQTT.Enabled {
		client = clientmqtt.NewClient(log, ConvertConfigClientMQTT(cfg.MQTT))
		if err = client.Start(ctx); err != nil {
			log.Error("failed to start MQTT service:", err.Error())
			cancel()
		}
		sink = client
	}

	receiver := artnet.NewReceiver(log, node, udp, sink)
	receiver.Start(ctx)

	<-ctx.Done()

	if client != nil {
		if err := client.Stop(); err != nil {
			log.Error("failed to stop MQTT service:", err.Error())
		}
	}

	if err := udp.Close(); err != nil {
		log.Error("failed to close the art-net socket:", err.Error())
	}

	log.Info("shutdown complete")
}

// buildNode constructs the node from configuration: picks the node's own
// IP, applies the universe address and names, and enables broadcast poll
// replies when configured.
func buildNode(cfg config.NodeConf) (*artnet.Node, error) {
	ip, err := artnet.FindInterfaceIP(cfg.CIDR)
	if err != nil {
		return nil, fmt.Errorf("failed to find the art-net IP: %w", err)
	}
	if len(ip) == 0 {
		return nil, fmt.Errorf("failed to find the art-net IP: no interface inside %s", cfg.CIDR)
	}

	var node *artnet.Node
	if cfg.Broadcast {
		mask := net.IPMask(net.ParseIP(cfg.SubnetMask).To4())
		if mask == nil {
			return nil, fmt.Errorf("invalid subnet mask %q", cfg.SubnetMask)
		}
		node = artnet.NewBroadcastNode(ip, mask)
	} else {
		node = artnet.NewNode(ip)
	}

	node.SetSubnetUniverse(cfg.Subnet, cfg.Universe)
	node.SetNames(cfg.ShortName, cfg.LongName)
	node.DMX().SetSlotCount(cfg.Slots)
	return node, nil
}

// ConvertConfigClientMQTT maps the file configuration onto the client.
func ConvertConfigClientMQTT(cfg config.MQTTConf) clientmqtt.MQTTConf {
	return clientmqtt.MQTTConf{
		ClientID: cfg.ClientID,
		Schema:   "tcp",
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Qos:      cfg.Qos,
		Topic:    cfg.Topic,
	}
}
