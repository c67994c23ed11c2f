package data

import "fmt"

// OccupantDef places an actor on a scenario map before the run starts.
type OccupantDef struct {
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Blocks bool   `json:"blocks"` // True for occupants other movers cannot share a cell with
}

// ScenarioDef defines one navigation scenario: a map drawn as rows of tile
// runes, a start and a destination, a sight radius, and optional occupants.
type ScenarioDef struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Rows   []string `json:"rows"`   // Tile runes, one string per map row
	Origin [2]int   `json:"origin"` // Start cell [x, y]
	Target [2]int   `json:"target"` // Destination cell [x, y]
	Radius int      `json:"radius"` // Sight radius; 0 falls back to the configured default

	Occupants []OccupantDef `json:"occupants,omitempty"`

	// Doors the runner opens when the first route attempt fails, by cell.
	OpenDoors [][2]int `json:"open_doors,omitempty"`
}

// ScenariosFile represents the structure of scenarios.json.
type ScenariosFile struct {
	Scenarios []ScenarioDef `json:"scenarios"`
}

// LoadScenarios loads all scenario definitions from the embedded
// scenarios.json.
func LoadScenarios() ([]ScenarioDef, error) {
	file, err := Load[ScenariosFile]("scenarios.json")
	if err != nil {
		return nil, err
	}
	return file.Scenarios, nil
}

// OriginXY returns the start cell.
func (s *ScenarioDef) OriginXY() (int, int) {
	return s.Origin[0], s.Origin[1]
}

// TargetXY returns the destination cell.
func (s *ScenarioDef) TargetXY() (int, int) {
	return s.Target[0], s.Target[1]
}

// Validate checks that the scenario is internally consistent: a rectangular
// map, with the origin, target, and every occupant on an in-bounds floor
// cell.
func (s *ScenarioDef) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("scenario has no id")
	}
	if len(s.Rows) == 0 {
		return fmt.Errorf("scenario %s: no map rows", s.ID)
	}

	width := len([]rune(s.Rows[0]))
	for y, row := range s.Rows {
		if len([]rune(row)) != width {
			return fmt.Errorf("scenario %s: row %d has %d cells, want %d", s.ID, y, len([]rune(row)), width)
		}
	}

	cells := map[string][2]int{
		"origin": s.Origin,
		"target": s.Target,
	}
	for what, cell := range cells {
		if err := s.checkFloor(what, cell[0], cell[1], width); err != nil {
			return err
		}
	}
	for _, o := range s.Occupants {
		if err := s.checkFloor("occupant "+o.Name, o.X, o.Y, width); err != nil {
			return err
		}
	}
	for _, d := range s.OpenDoors {
		x, y := d[0], d[1]
		if y < 0 || y >= len(s.Rows) || x < 0 || x >= width {
			return fmt.Errorf("scenario %s: door (%d, %d) is out of bounds", s.ID, x, y)
		}
		if []rune(s.Rows[y])[x] != '+' {
			return fmt.Errorf("scenario %s: cell (%d, %d) is not a door", s.ID, x, y)
		}
	}
	return nil
}

func (s *ScenarioDef) checkFloor(what string, x, y, width int) error {
	if y < 0 || y >= len(s.Rows) || x < 0 || x >= width {
		return fmt.Errorf("scenario %s: %s (%d, %d) is out of bounds", s.ID, what, x, y)
	}
	if []rune(s.Rows[y])[x] != '.' {
		return fmt.Errorf("scenario %s: %s (%d, %d) is not on open floor", s.ID, what, x, y)
	}
	return nil
}
