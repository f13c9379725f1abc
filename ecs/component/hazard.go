package component

// Hazard makes an entity hurt the player on overlap.
type Hazard struct {
	Damage int
}

var HazardComponent = NewComponent[Hazard]()
