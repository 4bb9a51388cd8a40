package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cecd/cec"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config file")
	bindAddr := flag.String("bind", "", "Bind address (overrides config)")
	devicePath := flag.String("device", "", "CEC device path (overrides config, auto-detect if empty)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *bindAddr != "" {
		cfg.Bind = *bindAddr
	}
	if *devicePath != "" {
		cfg.Device = *devicePath
	}

	// Find an adapter if none was configured.
	if cfg.Device == "" {
		log.Println("Searching for CEC adapters...")
		adapters, err := cec.ListAdapters()
		if err != nil || len(adapters) == 0 {
			log.Fatalf("No CEC adapters found")
		}
		cfg.Device = adapters[0].Path
		log.Printf("Found adapter: %s (%s)", adapters[0].Path, adapters[0].Caps.Name)
	}

	log.Printf("Opening CEC device: %s", cfg.Device)
	dev, err := cec.OpenNonBlocking(cfg.Device)
	if err != nil {
		log.Fatalf("Failed to open CEC device: %v", err)
	}
	defer dev.Close()

	caps, err := dev.Capabilities()
	if err != nil {
		log.Fatalf("Failed to query adapter: %v", err)
	}
	log.Printf("Adapter: %s", caps)

	// See all directed traffic, not just replies to our own transmits.
	if err := dev.SetMode(cec.InitiatorSend, cec.FollowerAll); err != nil {
		log.Printf("Follower mode unavailable, falling back to replies only: %v", err)
	}

	// Claim a playback logical address if the adapter leaves that to us.
	if caps.Capabilities.Has(cec.CapLogAddrs) {
		la, err := dev.LogicalAddresses()
		if err == nil && !la.Configured() {
			_, err := dev.SetLogicalAddresses(cec.LogicalAddresses{
				Version: cec.Version1_4,
				OSDName: cfg.OSDName,
				Flags:   cec.LogAddrFlagAllowUnregFallback,
				DeviceTypes: []cec.DeviceTypePair{
					{Primary: cec.DeviceTypePlaybackDevice, Type: cec.LogAddrTypePlayback},
				},
			})
			if err != nil {
				log.Printf("Failed to claim logical address: %v", err)
			}
		}
	}

	hist := newHistory(cfg.History)
	server := NewServer(dev, hist)

	var bridge *MQTTBridge
	if cfg.MQTT.Broker != "" {
		log.Printf("Connecting to MQTT broker %s", cfg.MQTT.Broker)
		bridge, err = NewMQTTBridge(cfg.MQTT, dev)
		if err != nil {
			log.Fatalf("Failed to connect to MQTT: %v", err)
		}
		defer bridge.Close()
	}

	// Pump the bus into the history buffer and the MQTT bridge.
	monitor := cec.NewMonitor(dev)
	defer monitor.Close()
	go func() {
		for {
			select {
			case msg, ok := <-monitor.Messages():
				if !ok {
					return
				}
				hist.add(msg)
				if bridge != nil {
					bridge.PublishMessage(msg)
				}
			case ev, ok := <-monitor.Events():
				if !ok {
					return
				}
				log.Printf("Adapter event: %s", ev)
				if bridge != nil {
					bridge.PublishEvent(ev)
				}
			case err := <-monitor.Errs():
				log.Printf("Bus monitor error: %v", err)
			}
		}
	}()

	httpServer := &http.Server{Addr: cfg.Bind, Handler: server.Router()}
	go func() {
		log.Printf("Starting HTTP server on %s", cfg.Bind)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Println("Shutting down")
	httpServer.Close()
}
