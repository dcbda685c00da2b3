package tools

// Config class for tools within the agent toolsets
type Config struct {
	// name the wire name of the tool
	name string
	// description the default description of the tool
	description string
}

func (c *Config) SetName(v string) {
	c.name = v
}

func (c Config) Name() string {
	return c.name
}

func (c *Config) SetDescription(v string) {
	c.description = v
}

func (c Config) Description() string {
	return c.description
}
