package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SeedUser struct {
	ID       int64  `yaml:"id"`
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
}

type SeedCategory struct {
	ID          int64  `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type SeedProduct struct {
	ID         int64  `yaml:"id"`
	Name       string `yaml:"name"`
	Price      string `yaml:"price"`
	Stock      int    `yaml:"stock"`
	CategoryID int64  `yaml:"category_id"`
	Featured   bool   `yaml:"featured"`
	ImageURL   string `yaml:"image_url"`
}

// SeedConfig 開發環境的初始資料
type SeedConfig struct {
	Users      []SeedUser     `yaml:"users"`
	Categories []SeedCategory `yaml:"categories"`
	Products   []SeedProduct  `yaml:"products"`
}

func LoadSeedConfig(path string) (*SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &SeedConfig{}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
