package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"osmium/http3"
)

const DefaultConfig = `# Osmium HTTP/3 Frame Inspector Configuration File

decoder:
  # Largest declared frame payload accepted, in bytes. Frames above it abort
  # the stream before any payload byte is read.
  max_frame_size: 1048576
  # Treat CANCEL_PUSH and PUSH_PROMISE frames as fatal, as an endpoint that
  # disabled server push would.
  reject_push: false
  # Parse frame type 0x0f as the draft PRIORITY_UPDATE encoding with an
  # explicit element-type byte. Off, it is reported as an unknown frame.
  accept_legacy_priority_update: false
  # Recognize the WEBTRANSPORT_STREAM signal and stop at the point where the
  # stream is handed to the session.
  allow_webtransport: false

input:
  # Bytes handed to the decoder per read. Mostly useful to exercise
  # fragmentation behaviour; results are identical for any value.
  chunk_size: 4096
  # Compression of the capture file. Options: none, deflate, gzip, zstd.
  # "auto" picks by file extension.
  encoding: auto

logging:
  file: osmium.log
  # Options: trace, debug, info, warn, error
  level: info
  # Log every payload chunk as hex at debug level.
  hex_payloads: false
`

var config *Config

type Config struct {
	Decoder DecoderConfig `yaml:"decoder"`
	Input   InputConfig   `yaml:"input"`
	Logging LoggingConfig `yaml:"logging"`
}

type DecoderConfig struct {
	MaxFrameSize               uint64 `yaml:"max_frame_size"`
	RejectPush                 bool   `yaml:"reject_push"`
	AcceptLegacyPriorityUpdate bool   `yaml:"accept_legacy_priority_update"`
	AllowWebTransport          bool   `yaml:"allow_webtransport"`
}

type InputConfig struct {
	ChunkSize int    `yaml:"chunk_size"`
	Encoding  string `yaml:"encoding"`
}

type LoggingConfig struct {
	File        string `yaml:"file"`
	Level       string `yaml:"level"`
	HexPayloads bool   `yaml:"hex_payloads"`
}

// DecoderOptions translates the YAML section into the decoder's config.
func (c DecoderConfig) DecoderOptions() http3.Config {
	return http3.Config{
		MaxFrameSize:               c.MaxFrameSize,
		RejectPush:                 c.RejectPush,
		AcceptLegacyPriorityUpdate: c.AcceptLegacyPriorityUpdate,
		AllowWebTransportStream:    c.AllowWebTransport,
	}
}

// Validate catches values the decoder or reader would choke on.
func (c Config) Validate() error {
	if c.Decoder.MaxFrameSize == 0 {
		return errors.New("decoder.max_frame_size must be greater than zero")
	}
	if c.Input.ChunkSize <= 0 {
		return errors.New("input.chunk_size must be greater than zero")
	}
	switch c.Input.Encoding {
	case "auto", "none", "deflate", "gzip", "zstd":
	default:
		return fmt.Errorf("unknown input.encoding %q", c.Input.Encoding)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	return nil
}

func CreateDefaultConfig() error {
	path := GetConfigPath()
	if _, err := os.Stat(GetDataDirectory()); os.IsNotExist(err) {
		err := os.MkdirAll(GetDataDirectory(), 0755)
		if err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}
	}
	if _, err := os.Stat(path); err == nil {
		// Config file already exists, do nothing
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create default config file: %v", err)
	}
	defer f.Close()
	_, err = f.WriteString(DefaultConfig)
	if err != nil {
		return fmt.Errorf("failed to write default config file: %v", err)
	}
	return nil
}

func GetConfigPath() string {
	return GetDataDirectory() + string(os.PathSeparator) + "config.yaml"
}

func GetConfig() (Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err := CreateDefaultConfig()
			if err != nil {
				return Config{}, fmt.Errorf("failed to create default config file: %v", err)
			}
			return GetConfig()
		}
		return Config{}, fmt.Errorf("failed to read config file: %v", err)
	}

	var conf Config
	if err := yaml.Unmarshal([]byte(DefaultConfig), &conf); err != nil {
		return Config{}, fmt.Errorf("failed to parse built-in defaults: %v", err)
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %v", err)
	}
	config = &conf
	return conf, nil
}
