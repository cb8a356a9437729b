package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sammiviz/sammi/internal/domain"
)

func LoadPlot(path string) (domain.PlotSpec, error) {
	var dto YAMLPlot
	if err := readYAML("config.load_plot", path, &dto); err != nil {
		return domain.PlotSpec{}, err
	}
	return MapPlot(path, dto)
}

func LoadDataset(path string) (domain.OverlaySpec, error) {
	var dto YAMLDataset
	if err := readYAML("config.load_dataset", path, &dto); err != nil {
		return domain.OverlaySpec{}, err
	}
	return MapDataset(path, dto)
}

// ReadName returns the top-level name of a plot or dataset file, if any.
func ReadName(path string) (string, error) {
	var v struct {
		Name string `yaml:"name"`
	}
	if err := readYAML("config.read_name", path, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

func readYAML(op, path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return &domain.OpError{
			Op:   op,
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	if err := yaml.Unmarshal(b, out); err != nil {
		return &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return nil
}
