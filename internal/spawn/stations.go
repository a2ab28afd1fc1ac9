package spawn

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/frontdesk/internal/config"
	"github.com/udisondev/frontdesk/internal/model"
)

// BuildStations creates stations from config, keyed by role.
// Roles naming the same station share one instance and its capacity;
// the first definition in role order wins.
func BuildStations(cfg map[string]config.Station) (map[model.Role]*model.Station, error) {
	byName := make(map[string]*model.Station)
	out := make(map[model.Role]*model.Station, len(cfg))

	for _, role := range model.Roles() {
		sc, ok := cfg[role.String()]
		if !ok {
			continue
		}
		if sc.Name == "" {
			return nil, fmt.Errorf("station for role %s: name is required", role)
		}
		for _, v := range []config.Vec3{sc.Approach, sc.Exit, sc.Door, sc.Spawn, sc.QueueDirection} {
			if v.IsSet() && len(v) != 3 {
				return nil, fmt.Errorf("station %q: point %v is not [x, y, z]", sc.Name, []float64(v))
			}
		}

		if st, ok := byName[sc.Name]; ok {
			out[role] = st
			continue
		}

		st := model.NewStation(sc.Name, sc.Capacity)
		if sc.Approach.IsSet() {
			st.SetApproachPoint(point(sc.Approach))
		}
		if sc.Exit.IsSet() {
			st.SetExitPoint(point(sc.Exit))
		}
		if sc.Door.IsSet() {
			st.SetDoorWaypoint(point(sc.Door))
		}
		if sc.Spawn.IsSet() {
			st.SetSpawnPoint(point(sc.Spawn))
		}
		var dir model.Point
		if sc.QueueDirection.IsSet() {
			dir = point(sc.QueueDirection)
		}
		st.SetQueueLayout(dir, sc.QueueSpacing)

		if err := st.Validate(); err != nil {
			// not fatal: the role just never spawns
			slog.Warn("station misconfigured", "role", role, "station", sc.Name, "error", err)
		}

		byName[sc.Name] = st
		out[role] = st
	}

	for name := range cfg {
		if _, err := model.ParseRole(name); err != nil {
			return nil, fmt.Errorf("stations: %w", err)
		}
	}

	return out, nil
}

func point(v config.Vec3) model.Point {
	x, y, z := v.XYZ()
	return model.NewPoint(x, y, z)
}
