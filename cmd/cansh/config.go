package main

import "github.com/caarlos0/env/v6"

// shellConfig is the ground station's identity and transport configuration,
// loaded from the process environment. Grounded on
// CodedInternet-godynastat/main.go's EnvConfig / caarlos0/env usage.
type shellConfig struct {
	NodeType    uint8  `env:"CANSH_NODE_TYPE" envDefault:"50"` // NodeTypeGroundSupport
	NodeID      uint16 `env:"CANSH_NODE_ID" envDefault:"1"`
	SerialPort  string `env:"CANSH_SERIAL_PORT"`
	SerialBaud  int    `env:"CANSH_SERIAL_BAUD" envDefault:"115200"`
	AcceptTypes string `env:"CANSH_ACCEPT_TYPES"` // comma-separated message_type list, empty means accept all
	LogVerbose  bool   `env:"CANSH_VERBOSE" envDefault:"0"`
}

func loadConfig() (shellConfig, error) {
	cfg := shellConfig{}
	if err := env.Parse(&cfg); err != nil {
		return shellConfig{}, err
	}
	return cfg, nil
}
