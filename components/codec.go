package components

import "encoding/json"

// Records with private fields encode through wire structs so field order
// stays fixed. Decoding goes back through the constructors and setters, so
// a snapshot can never produce a record that violates its invariants.

type healthWire struct {
	Current float32 `json:"current"`
	Max     float32 `json:"max"`
}

func (h Health) MarshalJSON() ([]byte, error) {
	return json.Marshal(healthWire{Current: h.current, Max: h.max})
}

func (h *Health) UnmarshalJSON(data []byte) error {
	var w healthWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded := NewHealth(w.Max)
	decoded.SetCurrent(w.Current)
	*h = decoded
	return nil
}

type energyWire struct {
	Current      float32 `json:"current"`
	Max          float32 `json:"max"`
	MovementCost float32 `json:"movement_cost"`
	RegenRate    float32 `json:"regen_rate"`
}

func (e Energy) MarshalJSON() ([]byte, error) {
	return json.Marshal(energyWire{
		Current:      e.current,
		Max:          e.max,
		MovementCost: e.movementCost,
		RegenRate:    e.regenRate,
	})
}

func (e *Energy) UnmarshalJSON(data []byte) error {
	var w energyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded := NewEnergy(w.Max, w.MovementCost, w.RegenRate)
	decoded.SetCurrent(w.Current)
	*e = decoded
	return nil
}

type collisionWire struct {
	Radius float32 `json:"radius"`
}

func (c Collision) MarshalJSON() ([]byte, error) {
	return json.Marshal(collisionWire{Radius: c.radius})
}

func (c *Collision) UnmarshalJSON(data []byte) error {
	var w collisionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = NewCollision(w.Radius)
	return nil
}

func (v *Vision) UnmarshalJSON(data []byte) error {
	type plain Vision
	var w plain
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*v = NewVision(w.Range)
	return nil
}

func (s *SelfState) UnmarshalJSON(data []byte) error {
	type plain SelfState
	var w plain
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = NewSelfState(w.HealthRatio, w.EnergyRatio, w.CurrentPosition)
	return nil
}
