package cmd

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	KafkaHosts          string
	KafkaConsumerGroup  string
	RiderServiceURL     string
	RiderServiceTimeout time.Duration
	ItemServiceURL      string
	ItemServiceTimeout  time.Duration
	OpsEmail            string
	ETAWindow           time.Duration
}

// DSN builds the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits the comma-separated broker list.
func (c Config) KafkaBrokers() []string {
	hosts := strings.Split(c.KafkaHosts, ",")
	brokers := make([]string, 0, len(hosts))
	for _, host := range hosts {
		if trimmed := strings.TrimSpace(host); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
