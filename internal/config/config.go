package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	StorePath         string `envconfig:"SEGMATRIX_DB" default:""`
	WarehouseHost     string `envconfig:"WAREHOUSE_HOST" default:"127.0.0.1"`
	WarehousePort     string `envconfig:"WAREHOUSE_PORT" default:"5432"`
	WarehouseName     string `envconfig:"WAREHOUSE_NAME" default:"sales_reporting"`
	WarehouseUser     string `envconfig:"WAREHOUSE_USER" default:"postgres"`
	WarehousePassword string `envconfig:"WAREHOUSE_PASSWORD" default:"postgres"`
	WarehouseTable    string `envconfig:"WAREHOUSE_TABLE" default:"customer_metrics"`
	BatchSize         int    `envconfig:"BATCH_SIZE" default:"500"`
	OutputDir         string `envconfig:"OUTPUT_DIR" default:"."`
	LogPath           string `envconfig:"LOG_PATH" default:"log/segmatrix.log"`
	LogCleanupMaxAge  int    `envconfig:"LOG_CLEANUP_MAX_AGE" default:"7"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return &cfg, err
}
