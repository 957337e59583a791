package car

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Cars []seedCar `yaml:"cars"`
}

type seedCar struct {
	Name        string `yaml:"name"`
	CarNumber   string `yaml:"car_number"`
	PricePerDay int64  `yaml:"price_per_day"`
	Image       string `yaml:"image"`
	Description string `yaml:"description"`
}

// LoadSeedFile reads the initial catalog from a YAML file.
func LoadSeedFile(path string) ([]CreateInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) ([]CreateInput, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	inputs := make([]CreateInput, 0, len(f.Cars))
	for _, c := range f.Cars {
		in := CreateInput{
			Name:        c.Name,
			CarNumber:   c.CarNumber,
			PricePerDay: c.PricePerDay,
			Description: c.Description,
		}
		if c.Image != "" {
			img := c.Image
			in.Image = &img
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}
