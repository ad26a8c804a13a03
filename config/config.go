package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"time"

	"github.com/adrianliechti/nimbus/pkg/auth"
	"github.com/adrianliechti/nimbus/pkg/relay"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string
	Public  string

	Authorizers []auth.Provider

	Relay *relay.Service
}

func Parse(ctx context.Context, path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	return load(ctx, file)
}

func load(ctx context.Context, file *configFile) (*Config, error) {
	c := &Config{
		Address: ":8080",
		Public:  file.Public,
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if err := c.registerAuthorizer(ctx, file); err != nil {
		return nil, err
	}

	if err := c.registerRelay(ctx, file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`
	Public  string `yaml:"public"`

	Authorizers []authorizerConfig `yaml:"authorizers"`

	Credentials *credentialConfig `yaml:"credentials"`

	Completer   completerConfig   `yaml:"completer"`
	Synthesizer synthesizerConfig `yaml:"synthesizer"`

	Proxy *proxyConfig `yaml:"proxy"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) registerRelay(ctx context.Context, f *configFile) error {
	client, err := f.Proxy.proxyClient()

	if err != nil {
		return err
	}

	completer, err := createCompleter(ctx, f.Completer, f.Credentials, client)

	if err != nil {
		return err
	}

	synthesizer, err := createSynthesizer(f.Synthesizer, client)

	if err != nil {
		return err
	}

	completeTimeout, err := parseDuration(f.Completer.Timeout)

	if err != nil {
		return err
	}

	synthesizeTimeout, err := parseDuration(f.Synthesizer.Timeout)

	if err != nil {
		return err
	}

	voicesTimeout, err := parseDuration(f.Synthesizer.VoicesTimeout)

	if err != nil {
		return err
	}

	service, err := relay.New(completer, synthesizer, synthesizer,
		relay.WithSystem(f.Completer.System),
		relay.WithTemperature(f.Completer.Temperature),
		relay.WithMaxTokens(f.Completer.MaxTokens),
		relay.WithPlainSpeech(f.Synthesizer.Plain),
		relay.WithFormat(f.Synthesizer.Format),
		relay.WithCompleteTimeout(completeTimeout),
		relay.WithSynthesizeTimeout(synthesizeTimeout),
		relay.WithVoicesTimeout(voicesTimeout),
	)

	if err != nil {
		return err
	}

	c.Relay = service

	return nil
}

func parseDuration(val string) (time.Duration, error) {
	if val == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(val)

	if err != nil {
		return 0, errors.New("invalid timeout: " + val)
	}

	return d, nil
}
