package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath overrides the config path given on the command line.
const EnvPath = "FRONTDESK_CONFIG"

// Weights holds spawn weights per role. Zero disables the role.
type Weights struct {
	Patron   int `yaml:"patron"`
	Searcher int `yaml:"searcher"`
	Officer  int `yaml:"officer"`
}

// Spawner configures automatic visitor spawning.
type Spawner struct {
	EnableAutoSpawn  bool          `yaml:"enable_auto_spawn"`
	AutoSpawnOfficer bool          `yaml:"auto_spawn_officer"`
	SearcherCanLie   bool          `yaml:"searcher_can_lie"`
	MinDelay         time.Duration `yaml:"min_delay"`
	MaxDelay         time.Duration `yaml:"max_delay"`
	Weights          Weights       `yaml:"weights"`
}

// Station describes one service point. Roles sharing a name share the
// station and its capacity.
type Station struct {
	Name           string  `yaml:"name"`
	Capacity       int     `yaml:"capacity"`
	Approach       Vec3    `yaml:"approach"`
	Exit           Vec3    `yaml:"exit"`
	Door           Vec3    `yaml:"door"`  // optional
	Spawn          Vec3    `yaml:"spawn"` // optional, defaults to exit
	QueueDirection Vec3    `yaml:"queue_direction"`
	QueueSpacing   float64 `yaml:"queue_spacing"`
}

// Agent holds visitor movement tuning.
type Agent struct {
	DoorArriveRadius    float64       `yaml:"door_arrive_radius"`
	StationArriveRadius float64       `yaml:"station_arrive_radius"`
	ArriveRadius        float64       `yaml:"arrive_radius"`
	DespawnThreshold    float64       `yaml:"despawn_threshold"`
	QueueSettleRadius   float64       `yaml:"queue_settle_radius"`
	DoorOpenDelay       time.Duration `yaml:"door_open_delay"`
	ExitDoorPause       time.Duration `yaml:"exit_door_pause"`
	FarewellDelay       time.Duration `yaml:"farewell_delay"` // closing line stays up this long
	Speed               float64       `yaml:"speed"` // units per second
}

// Proximity configures the yield monitor.
type Proximity struct {
	Interval    time.Duration `yaml:"interval"`
	MinDistance float64       `yaml:"min_distance"`
}

// Rewards holds terminal side effect amounts.
type Rewards struct {
	PatronAcceptExp      int   `yaml:"patron_accept_exp"`
	SearcherReturnExp    int   `yaml:"searcher_return_exp"`
	OfficerContrabandExp int   `yaml:"officer_contraband_exp"`
	SearcherReturnMoney  int64 `yaml:"searcher_return_money"`
	ContrabandReputation int   `yaml:"contraband_reputation"`
	FalseCallFine        int64 `yaml:"false_call_fine"`
}

// Player holds the player's starting state and progression curve.
type Player struct {
	StartingBalance int64 `yaml:"starting_balance"`

	ReputationStart int `yaml:"reputation_start"`
	ReputationMin   int `yaml:"reputation_min"`
	ReputationMax   int `yaml:"reputation_max"`

	BaseExpToLevel2 int `yaml:"base_exp_to_level2"`
	ExpIncrement    int `yaml:"exp_increment"`
	MaxLevel        int `yaml:"max_level"`
}

// Autopilot drives the player in headless runs.
type Autopilot struct {
	Enabled          bool          `yaml:"enabled"`
	ThinkDelay       time.Duration `yaml:"think_delay"`
	InterruptChance  float64       `yaml:"interrupt_chance"`   // 0..1
	CallOfficerEvery time.Duration `yaml:"call_officer_every"` // 0 = never
}

// Journal configures the compressed event trace.
type Journal struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Level   string `yaml:"level"` // fastest|default|better|best
}

// Panels configures dialog panel texts.
type Panels struct {
	TemplatesDir string `yaml:"templates_dir"` // optional override directory
	Lazy         bool   `yaml:"lazy"`
}

// Item is a catalog entry.
type Item struct {
	ID          int32  `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Contraband  bool   `yaml:"contraband"`
}

// Simulation holds all configuration for the visitor simulation.
type Simulation struct {
	LogLevel     string        `yaml:"log_level"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Duration     time.Duration `yaml:"duration"` // 0 = until interrupted
	Seed         uint64        `yaml:"seed"`     // 0 = random

	Spawner   Spawner            `yaml:"spawner"`
	Stations  map[string]Station `yaml:"stations"` // role name → station
	Agent     Agent              `yaml:"agent"`
	Proximity Proximity          `yaml:"proximity"`
	Rewards   Rewards            `yaml:"rewards"`
	Player    Player             `yaml:"player"`
	Autopilot Autopilot          `yaml:"autopilot"`

	Database DatabaseConfig `yaml:"database"`
	Journal  Journal        `yaml:"journal"`
	Panels   Panels         `yaml:"panels"`

	Catalog    []Item `yaml:"catalog"`
	Fictitious []Item `yaml:"fictitious"` // items searchers may lie about
}

// DefaultSimulation returns config with a working hall layout.
func DefaultSimulation() Simulation {
	desk := Station{
		Name:           "front_desk",
		Capacity:       4,
		Approach:       Vec3{0, 0, 0},
		Exit:           Vec3{0, 0, -16},
		Door:           Vec3{0, 0, -8},
		QueueDirection: Vec3{1, 0, 0},
		QueueSpacing:   2,
	}
	post := Station{
		Name:           "officer_post",
		Capacity:       1,
		Approach:       Vec3{-3, 0, 0},
		Exit:           Vec3{-3, 0, -16},
		Door:           Vec3{-3, 0, -8},
		QueueDirection: Vec3{-1, 0, 0},
		QueueSpacing:   2,
	}

	return Simulation{
		LogLevel:     "info",
		TickInterval: 100 * time.Millisecond,
		Spawner: Spawner{
			EnableAutoSpawn:  true,
			AutoSpawnOfficer: true,
			SearcherCanLie:   true,
			MinDelay:         4 * time.Second,
			MaxDelay:         10 * time.Second,
			Weights:          Weights{Patron: 75, Searcher: 20, Officer: 5},
		},
		Stations: map[string]Station{
			"patron":   desk,
			"searcher": desk,
			"officer":  post,
		},
		Agent: Agent{
			DoorArriveRadius:    0.6,
			StationArriveRadius: 2.5,
			ArriveRadius:        2.0,
			DespawnThreshold:    0.3,
			QueueSettleRadius:   0.3,
			DoorOpenDelay:       time.Second,
			ExitDoorPause:       500 * time.Millisecond,
			FarewellDelay:       2 * time.Second,
			Speed:               3.5,
		},
		Proximity: Proximity{
			Interval:    500 * time.Millisecond,
			MinDistance: 1.2,
		},
		Rewards: Rewards{
			PatronAcceptExp:      5,
			SearcherReturnExp:    10,
			OfficerContrabandExp: 15,
			SearcherReturnMoney:  100,
			ContrabandReputation: 10,
			FalseCallFine:        500,
		},
		Player: Player{
			StartingBalance: 1000,
			ReputationStart: 50,
			ReputationMin:   0,
			ReputationMax:   100,
			BaseExpToLevel2: 100,
			ExpIncrement:    50,
			MaxLevel:        10,
		},
		Autopilot: Autopilot{
			Enabled:         true,
			ThinkDelay:      1500 * time.Millisecond,
			InterruptChance: 0.1,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "frontdesk",
			Password: "frontdesk",
			DBName:   "frontdesk",
			SSLMode:  "disable",
		},
		Journal: Journal{
			Path:  "visits.jsonl.zst",
			Level: "default",
		},
		Catalog: []Item{
			{ID: 1, Name: "Umbrella", Description: "A black umbrella with a wooden handle. One spoke is bent. Smells of rain."},
			{ID: 2, Name: "Wallet", Description: "A brown leather wallet. It holds a library card and two old tickets."},
			{ID: 3, Name: "Scarf", Description: "A long knitted scarf in red and grey stripes. Slightly frayed at one end."},
			{ID: 4, Name: "Phone", Description: "A phone in a cracked blue case. The screen lights up with a cat photo."},
			{ID: 5, Name: "Strange Vial", Description: "A sealed glass vial with a green liquid. There is no label on it.", Contraband: true},
			{ID: 6, Name: "Unmarked Package", Description: "A heavy package wrapped in brown tape. Something rattles inside.", Contraband: true},
		},
		Fictitious: []Item{
			{Name: "Golden Compass", Description: "A compass made of solid gold. It always points to the treasure."},
			{Name: "Silver Locket", Description: "A silver locket with my grandmother's portrait. It was engraved in Vienna."},
		},
	}
}

// LoadSimulation loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// ResolvePath returns the config path, honoring FRONTDESK_CONFIG.
func ResolvePath(flagPath string) string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return flagPath
}

// Validate reports every problem in the config at once.
// A station without approach or exit points is not an error here: the
// spawner skips such roles at runtime.
func (c Simulation) Validate() error {
	var errs []error

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval))
	}

	s := c.Spawner
	if s.MinDelay < 0 || s.MaxDelay < s.MinDelay {
		errs = append(errs, fmt.Errorf("spawner delays: need 0 <= min_delay <= max_delay, got %s..%s", s.MinDelay, s.MaxDelay))
	}
	if s.Weights.Patron < 0 || s.Weights.Searcher < 0 || s.Weights.Officer < 0 {
		errs = append(errs, errors.New("spawner weights must not be negative"))
	}

	for role, st := range c.Stations {
		switch role {
		case "patron", "searcher", "officer":
		default:
			errs = append(errs, fmt.Errorf("stations: unknown role %q", role))
		}
		if st.Name == "" {
			errs = append(errs, fmt.Errorf("stations.%s: name is required", role))
		}
		if st.Capacity < 0 {
			errs = append(errs, fmt.Errorf("stations.%s: capacity must not be negative", role))
		}
		for field, v := range map[string]Vec3{
			"approach":        st.Approach,
			"exit":            st.Exit,
			"door":            st.Door,
			"spawn":           st.Spawn,
			"queue_direction": st.QueueDirection,
		} {
			if err := v.validate("stations." + role + "." + field); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if c.Agent.Speed <= 0 {
		errs = append(errs, fmt.Errorf("agent.speed must be positive, got %g", c.Agent.Speed))
	}
	if c.Agent.DoorOpenDelay < 0 || c.Agent.ExitDoorPause < 0 || c.Agent.FarewellDelay < 0 {
		errs = append(errs, errors.New("agent delays must not be negative"))
	}
	if c.Proximity.Interval <= 0 || c.Proximity.MinDistance < 0 {
		errs = append(errs, errors.New("proximity: interval must be positive and min_distance not negative"))
	}

	p := c.Player
	if p.ReputationMin > p.ReputationMax {
		errs = append(errs, fmt.Errorf("player reputation bounds inverted: %d > %d", p.ReputationMin, p.ReputationMax))
	}
	if p.BaseExpToLevel2 <= 0 || p.ExpIncrement < 0 || p.MaxLevel < 1 {
		errs = append(errs, errors.New("player experience curve: base_exp_to_level2 > 0, exp_increment >= 0, max_level >= 1"))
	}

	if a := c.Autopilot; a.InterruptChance < 0 || a.InterruptChance > 1 {
		errs = append(errs, fmt.Errorf("autopilot.interrupt_chance must be within [0, 1], got %g", a.InterruptChance))
	}

	seen := make(map[int32]bool, len(c.Catalog))
	for _, it := range c.Catalog {
		if it.Name == "" {
			errs = append(errs, fmt.Errorf("catalog item %d: name is required", it.ID))
		}
		if seen[it.ID] {
			errs = append(errs, fmt.Errorf("catalog item %d: duplicate id", it.ID))
		}
		seen[it.ID] = true
	}

	return errors.Join(errs...)
}
