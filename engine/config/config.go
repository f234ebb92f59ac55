package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/ember/engine/renderer/metadata"
)

// AttributeConfig is one entry of a configured vertex layout, in
// buffer order.
type AttributeConfig struct {
	Name   string `toml:"name"`
	Format string `toml:"format"`
}

type LayoutConfig struct {
	Attributes []AttributeConfig `toml:"attributes"`
}

// RendererConfig is the renderer's startup configuration. Named
// vertex layouts are declared here and handed to the provisioning
// system at construction; there is no ambient layout registry.
type RendererConfig struct {
	ApplicationName string `toml:"application_name"`
	/** @brief Directory watched for mesh assets. Empty disables watching. */
	AssetsDir string `toml:"assets_dir"`
	/** @brief Packed index width: 16 or 32. */
	IndexWidth int `toml:"index_width"`
	/** @brief The layout meshes are provisioned against. */
	DefaultLayout string                  `toml:"default_layout"`
	Layouts       map[string]LayoutConfig `toml:"layouts"`
}

// Load reads and validates a renderer configuration file.
func Load(path string) (*RendererConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates TOML configuration bytes.
func Parse(data []byte) (*RendererConfig, error) {
	cfg := &RendererConfig{
		IndexWidth: 16,
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse renderer config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *RendererConfig) validate() error {
	if c.IndexWidth != 16 && c.IndexWidth != 32 {
		return fmt.Errorf("index_width must be 16 or 32, got %d", c.IndexWidth)
	}
	if len(c.Layouts) == 0 {
		return fmt.Errorf("at least one vertex layout must be configured")
	}
	if c.DefaultLayout == "" {
		return fmt.Errorf("default_layout is required")
	}
	if _, ok := c.Layouts[c.DefaultLayout]; !ok {
		return fmt.Errorf("default_layout %q is not a configured layout", c.DefaultLayout)
	}
	for name, layout := range c.Layouts {
		if len(layout.Attributes) == 0 {
			return fmt.Errorf("layout %q has no attributes", name)
		}
	}
	return nil
}

// IndexFormat returns the configured index width as a packer format.
func (c *RendererConfig) IndexFormat() metadata.IndexFormat {
	if c.IndexWidth == 16 {
		return metadata.IndexFormatUint16
	}
	return metadata.IndexFormatUint32
}

// VertexLayouts builds the named layout registry, computing offsets
// and strides from the configured attribute order.
func (c *RendererConfig) VertexLayouts() (map[string]*metadata.VertexLayout, error) {
	layouts := make(map[string]*metadata.VertexLayout, len(c.Layouts))
	for name, layoutConfig := range c.Layouts {
		attributes := make([]metadata.VertexLayoutAttribute, 0, len(layoutConfig.Attributes))
		for _, attributeConfig := range layoutConfig.Attributes {
			format, err := metadata.ParseVertexFormat(attributeConfig.Format)
			if err != nil {
				return nil, fmt.Errorf("layout %q: %w", name, err)
			}
			attributes = append(attributes, metadata.VertexLayoutAttribute{
				Name:   attributeConfig.Name,
				Format: format,
			})
		}
		layouts[name] = metadata.NewVertexLayout(attributes...)
	}
	return layouts, nil
}
