package printshare

import (
	"context"
	"math"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/printshare/model"
	"github.com/viant/printshare/policy"
	"github.com/viant/printshare/service/meta"
)

// Config is a serialisable representation of a simulation.  Groups are either
// listed explicitly or derived from Students and GroupSize.  Mean is the
// arrival delay mean and PrintMean the print duration mean (defaults to
// Mean), both in time units.
type Config struct {
	Name      string         `json:"name,omitempty" yaml:"name,omitempty"`
	Printers  int            `json:"printers" yaml:"printers"`
	Students  int            `json:"students,omitempty" yaml:"students,omitempty"`
	GroupSize int            `json:"groupSize,omitempty" yaml:"groupSize,omitempty"`
	Groups    []GroupConfig  `json:"groups,omitempty" yaml:"groups,omitempty"`
	Mean      float64        `json:"mean" yaml:"mean"`
	PrintMean float64        `json:"printMean,omitempty" yaml:"printMean,omitempty"`
	TimeUnit  string         `json:"timeUnit,omitempty" yaml:"timeUnit,omitempty"`
	Timeout   string         `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Seed      uint64         `json:"seed,omitempty" yaml:"seed,omitempty"`
	Policy    *policy.Policy `json:"policy,omitempty" yaml:"policy,omitempty"`
}

// GroupConfig is a contiguous student range; Leader defaults per policy.
type GroupConfig struct {
	From   int  `json:"from" yaml:"from"`
	To     int  `json:"to" yaml:"to"`
	Leader *int `json:"leader,omitempty" yaml:"leader,omitempty"`
}

// DefaultConfig returns a small simulation: 6 students in groups of 3
// sharing one printer.
func DefaultConfig() *Config {
	return &Config{
		Name:      "printshare",
		Printers:  1,
		Students:  6,
		GroupSize: 3,
		Mean:      5,
		TimeUnit:  "1ms",
		Policy:    policy.Default(),
	}
}

// Validate returns the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return model.NewConfigError("", "config is nil")
	}
	if c.Mean <= 0 || math.IsNaN(c.Mean) || math.IsInf(c.Mean, 0) {
		return model.NewConfigError("mean", "must be a positive number, got %v", c.Mean)
	}
	if c.PrintMean < 0 || math.IsNaN(c.PrintMean) || math.IsInf(c.PrintMean, 0) {
		return model.NewConfigError("printMean", "must be a positive number, got %v", c.PrintMean)
	}
	if _, err := c.TimeUnitDuration(); err != nil {
		return err
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if err := c.Policy.Validate(); err != nil {
		return err
	}
	_, err := c.Topology()
	return err
}

// EffectivePrintMean returns PrintMean, or Mean when unset.
func (c *Config) EffectivePrintMean() float64 {
	if c.PrintMean > 0 {
		return c.PrintMean
	}
	return c.Mean
}

// TimeUnitDuration returns the wall-clock length of one timer unit.
func (c *Config) TimeUnitDuration() (time.Duration, error) {
	if c.TimeUnit == "" {
		return time.Millisecond, nil
	}
	ret, err := time.ParseDuration(c.TimeUnit)
	if err != nil {
		return 0, model.NewConfigError("timeUnit", "%v", err)
	}
	if ret <= 0 {
		return 0, model.NewConfigError("timeUnit", "must be > 0, got %v", ret)
	}
	return ret, nil
}

// TimeoutDuration returns the run timeout, 0 meaning none.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	ret, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, model.NewConfigError("timeout", "%v", err)
	}
	if ret < 0 {
		return 0, model.NewConfigError("timeout", "must be >= 0, got %v", ret)
	}
	return ret, nil
}

// GroupModels builds the group records, applying the leader policy to groups
// without an explicit leader.
func (c *Config) GroupModels() ([]*model.Group, error) {
	if len(c.Groups) == 0 {
		groups, err := model.Partition(c.Students, c.GroupSize)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			g.Leader = c.Policy.LeaderOf(g.From, g.To)
		}
		return groups, nil
	}
	ret := make([]*model.Group, 0, len(c.Groups))
	for i, g := range c.Groups {
		group := &model.Group{ID: i, From: g.From, To: g.To, Leader: c.Policy.LeaderOf(g.From, g.To)}
		if g.Leader != nil {
			group.Leader = *g.Leader
		}
		ret = append(ret, group)
	}
	return ret, nil
}

// Topology builds and validates printers, groups and students.
func (c *Config) Topology() (*model.Topology, error) {
	groups, err := c.GroupModels()
	if err != nil {
		return nil, err
	}
	return model.NewTopology(c.Printers, groups)
}

// LoadConfig loads a YAML or JSON config by URL on top of DefaultConfig and
// validates it.  ${env.NAME} expressions are expanded first.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(afs.New(), "", options...).Load(ctx, URL, ret); err != nil {
		return nil, err
	}
	if len(ret.Groups) > 0 {
		ret.Students, ret.GroupSize = 0, 0
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
