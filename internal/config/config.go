package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	REST      RESTConfig      `yaml:"rest"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Security  SecurityConfig  `yaml:"security"`
	Websocket WebsocketConfig `yaml:"websocket"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type RESTConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	Directory string `yaml:"directory"`
}

type LoggingConfig struct {
	Directory string `yaml:"directory"`
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	GroupID string   `yaml:"groupId"`
	// Topics maps an entity name to the kafka topics carrying its change events.
	Topics map[string][]string `yaml:"topics"`
}

type SecurityConfig struct {
	JWTSecret    string `yaml:"jwtSecret"`
	JWTPublicKey string `yaml:"jwtPublicKey"`
}

type WebsocketConfig struct {
	AllowedActions []string `yaml:"allowedActions"`
	SendBuffer     int      `yaml:"sendBuffer"`
}

func defaults() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8090"},
		REST:    RESTConfig{BaseURL: "http://localhost:3000", Timeout: 10 * time.Second},
		Storage: StorageConfig{Directory: "./.storage"},
		Logging: LoggingConfig{Directory: "./logs", Level: "info", Format: "text"},
		Kafka:   KafkaConfig{GroupID: "delivery-client", Topics: map[string][]string{}},
		Websocket: WebsocketConfig{
			AllowedActions: []string{"created", "updated", "deleted"},
			SendBuffer:     32,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by CONFIG_FILE and
// finally the environment. Environment values win over the file.
func Load() (*Config, error) {
	cfg := defaults()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.REST.BaseURL, "REST_BASE_URL")
	if raw := strings.TrimSpace(os.Getenv("REST_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid REST_TIMEOUT %q: %w", raw, err)
		}
		cfg.REST.Timeout = timeout
	}
	setString(&cfg.Storage.Directory, "STORAGE_DIR")
	setString(&cfg.Logging.Directory, "LOG_DIR")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")

	brokers := splitList(os.Getenv("KAFKA_BROKERS"), ",")
	if len(brokers) == 0 {
		brokers = splitList(os.Getenv("KAFKA_BROKER"), ",")
	}
	if len(brokers) > 0 {
		cfg.Kafka.Brokers = brokers
	}
	setString(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")
	if raw := strings.TrimSpace(os.Getenv("KAFKA_TOPICS")); raw != "" {
		topics, err := parseTopics(raw)
		if err != nil {
			return err
		}
		cfg.Kafka.Topics = topics
	}

	setString(&cfg.Security.JWTSecret, "JWT_SECRET")
	setString(&cfg.Security.JWTPublicKey, "JWT_PUBLIC_KEY")
	if actions := splitList(os.Getenv("WS_ALLOWED_ACTIONS"), ","); len(actions) > 0 {
		cfg.Websocket.AllowedActions = actions
	}
	return nil
}

// parseTopics reads "entity:topicA|topicB,entity2:topicC".
func parseTopics(raw string) (map[string][]string, error) {
	topics := make(map[string][]string)
	for _, entry := range splitList(raw, ",") {
		entity, list, ok := strings.Cut(entry, ":")
		entity = strings.TrimSpace(entity)
		if !ok || entity == "" {
			return nil, fmt.Errorf("invalid KAFKA_TOPICS entry %q", entry)
		}
		names := splitList(list, "|")
		if len(names) == 0 {
			return nil, fmt.Errorf("KAFKA_TOPICS entry %q lists no topics", entry)
		}
		topics[entity] = append(topics[entity], names...)
	}
	return topics, nil
}

// AllTopics flattens the entity topic map.
func (k KafkaConfig) AllTopics() []string {
	seen := make(map[string]struct{})
	all := make([]string, 0)
	for _, list := range k.Topics {
		for _, topic := range list {
			if _, ok := seen[topic]; ok {
				continue
			}
			seen[topic] = struct{}{}
			all = append(all, topic)
		}
	}
	return all
}

func setString(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}

func splitList(raw, sep string) []string {
	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
